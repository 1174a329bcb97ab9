package impl

import (
	"bytes"
	"context"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"billmap/internal/domain/entity"
	domainerrors "billmap/internal/domain/errors"
	"billmap/internal/domain/repository"
	"billmap/internal/usecase"
)

func newExportService(provider *stubProvider) (usecase.ExportUsecase, repository.InventoryRepository, repository.MapStateRepository) {
	cfg := newTestConfig()
	items, mapState := newTestStores(cfg)
	svc := NewExportService(testLogger(), items, mapState, provider)
	return svc, items, mapState
}

func readSheet(t *testing.T, data []byte) [][]string {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	return rows
}

func TestExportService_ExportInRange(t *testing.T) {
	near := entity.LatLng{Lat: 46.7700, Lng: 23.5910}
	far := entity.LatLng{Lat: 46.8500, Lng: 23.7000}
	provider := &stubProvider{distFn: func(a, _ entity.LatLng) float64 {
		if a == near {
			return 512.4
		}
		return 5000
	}}
	svc, items, mapState := newExportService(provider)

	items.Replace([]entity.Billboard{
		{ID: uuid.New(), Name: "Panou A", Location: near, LocationText: "Centru, zona pietonala"},
		{ID: uuid.New(), Name: "Panou B", Location: far, Address: "Calea Turzii 100"},
	})
	mapState.SetReference(entity.ReferencePoint{
		Name:     "Magazin Mărăști",
		Location: entity.LatLng{Lat: 46.7694, Lng: 23.5899},
		Origin:   entity.OriginStore,
	})

	file, err := svc.ExportInRange(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "panouri_in_radius_Magazin_M_r__ti.xlsx", file.Filename)

	rows := readSheet(t, file.Data)
	require.Len(t, rows, 2, "header plus the single in-range item")
	assert.Equal(t,
		[]string{"Denumire", "Adresa", "Latitudine", "Longitudine", "Distanța (m)", "În radius"},
		rows[0])
	assert.Equal(t, "Panou A", rows[1][0])
	assert.Equal(t, "Centru, zona pietonala", rows[1][1], "location text wins over the address")
	assert.Equal(t, "512", rows[1][4], "distance is rounded to whole meters")
	assert.Equal(t, "Da", rows[1][5])
}

func TestExportService_ExportInRange_RequiresExternalReference(t *testing.T) {
	svc, items, mapState := newExportService(&stubProvider{})
	items.Replace([]entity.Billboard{{ID: uuid.New(), Name: "Panou A"}})

	_, err := svc.ExportInRange(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrNoReference)

	mapState.SetReference(entity.ReferencePoint{
		Name:   "Panou A",
		Origin: entity.OriginBillboard,
	})
	_, err = svc.ExportInRange(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrNoReference,
		"a promoted item is not an exportable reference")
}

func TestExportService_ExportInRange_NothingInside(t *testing.T) {
	provider := &stubProvider{distFn: func(_, _ entity.LatLng) float64 { return 99999 }}
	svc, items, mapState := newExportService(provider)

	items.Replace([]entity.Billboard{{ID: uuid.New(), Name: "Panou A"}})
	mapState.SetReference(entity.ReferencePoint{Name: "Magazin", Origin: entity.OriginStore})

	_, err := svc.ExportInRange(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrNothingToExport)
}

func TestExportService_ExportGrouped(t *testing.T) {
	itemLoc := entity.LatLng{Lat: 46.7700, Lng: 23.5910}
	nearPOI := entity.LatLng{Lat: 46.7705, Lng: 23.5915}
	farPOI := entity.LatLng{Lat: 46.9000, Lng: 23.9000}
	provider := &stubProvider{distFn: func(a, _ entity.LatLng) float64 {
		if a == nearPOI {
			return 80.6
		}
		return 9999
	}}
	svc, items, mapState := newExportService(provider)

	id := uuid.New()
	items.Replace([]entity.Billboard{
		{ID: id, Name: "Panou A", Location: itemLoc},
		{ID: uuid.New(), Name: "Panou B", Location: farPOI},
	})
	mapState.SetPeek(id, true)
	mapState.ReplacePlaces([]entity.Place{
		{Name: "Profi", Address: "Str. Horea 2", Location: nearPOI},
		{Name: "Kaufland", Address: "Calea Florești 75", Location: farPOI},
	})

	file, err := svc.ExportGrouped(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "poi_per_billboard_grouped.xlsx", file.Filename)

	rows := readSheet(t, file.Data)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"BILLBOARD", "Panou A", "46.77", "23.591"}, rows[0])
	assert.Equal(t, []string{"name", "address", "lat", "lng", "distance_m"}, rows[1])
	assert.Equal(t, "Profi", rows[2][0])
	assert.Equal(t, "Str. Horea 2", rows[2][1])
	assert.Equal(t, "81", rows[2][4])
}

func TestExportService_ExportGrouped_BlankRowBetweenGroups(t *testing.T) {
	provider := &stubProvider{distFn: func(_, _ entity.LatLng) float64 { return 100 }}
	svc, items, mapState := newExportService(provider)

	a, b := uuid.New(), uuid.New()
	items.Replace([]entity.Billboard{
		{ID: a, Name: "Panou A", Location: entity.LatLng{Lat: 46.77, Lng: 23.59}},
		{ID: b, Name: "Panou B", Location: entity.LatLng{Lat: 46.78, Lng: 23.60}},
	})
	mapState.SetPeek(a, true)
	mapState.SetPeek(b, true)
	mapState.ReplacePlaces([]entity.Place{
		{Name: "Profi", Location: entity.LatLng{Lat: 46.771, Lng: 23.591}},
	})

	file, err := svc.ExportGrouped(context.Background())
	require.NoError(t, err)

	rows := readSheet(t, file.Data)
	// Two groups of three rows separated by one blank row. The trailing
	// group has no separator.
	require.Len(t, rows, 7)
	assert.Equal(t, "BILLBOARD", rows[0][0])
	assert.Empty(t, rows[3], "groups are separated by a blank row")
	assert.Equal(t, "BILLBOARD", rows[4][0])
}

func TestExportService_ExportGrouped_RequiresPeeksAndPlaces(t *testing.T) {
	svc, items, mapState := newExportService(&stubProvider{})
	id := uuid.New()
	items.Replace([]entity.Billboard{{ID: id, Name: "Panou A"}})

	_, err := svc.ExportGrouped(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrNothingToExport, "no places loaded")

	mapState.ReplacePlaces([]entity.Place{{Name: "Profi"}})
	_, err = svc.ExportGrouped(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrNothingToExport, "no peeked items")
}

func TestExportService_ExportWorkbook_ReinstatesHyperlinks(t *testing.T) {
	cfg := newTestConfig()
	items, mapState := newTestStores(cfg)
	provider := &stubProvider{}

	// Import a workbook through the inventory service so the original bytes
	// and header row are stored the same way production does it.
	ingest := NewInventoryService(cfg, testLogger(), items, mapState, provider)
	raw := buildTestWorkbook(t)
	_, err := ingest.Ingest(context.Background(), &usecase.IngestInput{
		Filename: "inventar.xlsx",
		Data:     raw,
	})
	require.NoError(t, err)

	svc := NewExportService(testLogger(), items, mapState, provider)
	file, err := svc.ExportWorkbook(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "panouri_cu_linkuri.xlsx", file.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	formula, err := f.GetCellFormula(sheet, "E5")
	require.NoError(t, err)
	assert.Contains(t, formula, "HYPERLINK")
	assert.Contains(t, formula, "https://img.example.com/cj002.jpg",
		"a literal url cell becomes a HYPERLINK formula")
}

func TestExportService_ExportWorkbook_RequiresImport(t *testing.T) {
	svc, _, _ := newExportService(&stubProvider{})

	_, err := svc.ExportWorkbook(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrNoOriginalWorkbook)
}

func TestExportService_CoordinateColumnsRoundTrip(t *testing.T) {
	loc := entity.LatLng{Lat: 46.770439, Lng: 23.591423}
	provider := &stubProvider{distFn: func(_, _ entity.LatLng) float64 { return 100 }}
	svc, items, mapState := newExportService(provider)

	items.Replace([]entity.Billboard{{ID: uuid.New(), Name: "Panou A", Location: loc}})
	mapState.SetReference(entity.ReferencePoint{Name: "Magazin", Origin: entity.OriginStore})

	file, err := svc.ExportInRange(context.Background())
	require.NoError(t, err)

	rows := readSheet(t, file.Data)
	lat, err := strconv.ParseFloat(rows[1][2], 64)
	require.NoError(t, err)
	lng, err := strconv.ParseFloat(rows[1][3], 64)
	require.NoError(t, err)
	assert.InDelta(t, loc.Lat, lat, 1e-6)
	assert.InDelta(t, loc.Lng, lng, 1e-6)
}
