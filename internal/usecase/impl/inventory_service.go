package impl

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"billmap/config"
	"billmap/internal/domain/entity"
	domainerrors "billmap/internal/domain/errors"
	"billmap/internal/domain/repository"
	"billmap/internal/domain/service"
	"billmap/internal/usecase"
	"billmap/internal/util"
)

// headerTokens mark a row as the header row during Excel header detection.
var headerTokens = map[string]struct{}{
	"latitudine": {}, "longitudine": {}, "locatie": {},
	"lat": {}, "lng": {}, "longitude": {}, "latitude": {},
}

// hyperlinkColumns are matched by substring against normalized headers.
var hyperlinkColumns = []string{"Imagini 1", "Imagini 2", "Imagini 3", "Schita", "StreetView"}

var hyperlinkFormulaRe = regexp.MustCompile(`HYPERLINK\("([^"]+)"`)

// rawRow is one parsed upload row before coordinate resolution.
type rawRow struct {
	name         string
	latRaw       string
	lngRaw       string
	address      string
	locationText string
	spaceID      string
	periods      string
	images       []string
}

type inventoryService struct {
	config   *config.Config
	logger   *slog.Logger
	items    repository.InventoryRepository
	mapState repository.MapStateRepository
	provider service.MapProvider
}

// NewInventoryService creates a new inventory service instance
func NewInventoryService(
	cfg *config.Config,
	logger *slog.Logger,
	items repository.InventoryRepository,
	mapState repository.MapStateRepository,
	provider service.MapProvider,
) usecase.InventoryUsecase {
	return &inventoryService{
		config:   cfg,
		logger:   logger,
		items:    items,
		mapState: mapState,
		provider: provider,
	}
}

// Ingest parses the upload, resolves address-only rows sequentially through
// the provider and appends the resolved items to the collection.
func (s *inventoryService) Ingest(ctx context.Context, input *usecase.IngestInput) (*usecase.IngestSummary, error) {
	var (
		rows []rawRow
		err  error
	)

	switch strings.ToLower(filepath.Ext(input.Filename)) {
	case ".csv":
		rows, err = s.parseCSV(input.Data)
	case ".xlsx", ".xls":
		rows, err = s.parseExcel(input.Filename, input.Data)
	default:
		return nil, domainerrors.ErrUnsupportedFormat
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse upload: %w", err)
	}

	// Resolution runs against the generation seen at upload time. A clear or
	// competing upload while geocoding is in flight discards this batch.
	generation := s.items.Generation()

	summary := &usecase.IngestSummary{Total: len(rows)}
	out := make([]entity.Billboard, 0, len(rows))

	for i, r := range rows {
		lat, latOK := util.ParseLooseNumber(r.latRaw)
		lng, lngOK := util.ParseLooseNumber(r.lngRaw)
		if latOK && lngOK {
			summary.WithCoords++
		}

		if (!latOK || !lngOK) && r.address != "" {
			s.logger.InfoContext(ctx, "geocoding address",
				slog.String("address", r.address),
				slog.String("progress", fmt.Sprintf("%d/%d", i+1, len(rows))),
			)

			loc, found, geoErr := s.provider.Geocode(ctx, r.address)
			switch {
			case geoErr != nil:
				s.logger.WarnContext(ctx, "geocoding failed",
					slog.String("address", r.address), slog.Any("error", geoErr))
				summary.FailedLookup = append(summary.FailedLookup, r.address)
			case found:
				lat, lng = loc.Lat, loc.Lng
				latOK, lngOK = true, true
				summary.Geocoded++
			default:
				summary.FailedLookup = append(summary.FailedLookup, r.address)
			}
		}

		if !latOK || !lngOK {
			summary.Dropped++
			continue
		}

		name := r.name
		if name == "" {
			name = s.config.Inventory.PlaceholderName
		}

		out = append(out, entity.Billboard{
			ID:           uuid.New(),
			Name:         name,
			Location:     entity.LatLng{Lat: lat, Lng: lng},
			Address:      r.address,
			LocationText: r.locationText,
			SpaceID:      r.spaceID,
			Images:       r.images,
			RawPeriods:   r.periods,
			Visible:      true,
		})
	}

	if len(out) == 0 {
		return nil, domainerrors.ErrNoUsableRows
	}

	if s.items.Generation() != generation {
		s.logger.WarnContext(ctx, "discarding stale ingest batch",
			slog.Int("items", len(out)))
		return summary, nil
	}

	s.items.Replace(append(s.items.List(), out...))
	return summary, nil
}

// List returns the current collection.
func (s *inventoryService) List(_ context.Context) ([]entity.Billboard, error) {
	return s.items.List(), nil
}

// Clear drops the collection together with peek circles and search results.
func (s *inventoryService) Clear(_ context.Context) error {
	s.items.Clear()
	s.mapState.ClearPeeks()
	return nil
}

// TemplateCSV returns the downloadable import template.
func (s *inventoryService) TemplateCSV() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.WriteAll([][]string{
		{"name", "lat", "lng", "address"},
		{"Panou exemplu (coordonate)", "46.770439", "23.591423", ""},
		{"Panou exemplu (adresa)", "", "", "Bd. Eroilor 10, Cluj-Napoca"},
	})
	return buf.Bytes()
}

func (s *inventoryService) parseCSV(data []byte) ([]rawRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = util.NormalizeKey(h)
	}

	var rows []rawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}

		cells := make(map[string]string, len(keys))
		for i, key := range keys {
			if i < len(record) {
				cells[key] = record[i]
			}
		}
		rows = append(rows, buildRow(cells, nil, s.config.Inventory.MaxImages))
	}
	return rows, nil
}

func (s *inventoryService) parseExcel(filename string, data []byte) ([]rawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	grid, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	headerRow := detectHeaderRow(grid, s.config.Inventory.HeaderScanRows)
	if headerRow >= len(grid) {
		return nil, domainerrors.ErrNoUsableRows
	}

	keys := make([]string, len(grid[headerRow]))
	for i, h := range grid[headerRow] {
		keys[i] = util.NormalizeKey(h)
	}
	linkCols := matchHyperlinkColumns(keys)

	var rows []rawRow
	for rowIdx := headerRow + 1; rowIdx < len(grid); rowIdx++ {
		record := grid[rowIdx]
		if isBlank(record) {
			continue
		}

		cells := make(map[string]string, len(keys))
		for i, key := range keys {
			if i < len(record) {
				cells[key] = record[i]
			}
		}

		links := make(map[string]string, len(linkCols))
		for colName, colIdx := range linkCols {
			links[colName] = s.extractHyperlink(f, sheet, colIdx, rowIdx, record)
		}

		rows = append(rows, buildRow(cells, links, s.config.Inventory.MaxImages))
	}

	s.items.SetOriginal(entity.OriginalWorkbook{
		Filename:  filename,
		SheetName: sheet,
		HeaderRow: headerRow,
		Raw:       data,
	})
	return rows, nil
}

// extractHyperlink resolves the URL behind a cell, trying the explicit link
// target, then a HYPERLINK formula, then a literal http value.
func (s *inventoryService) extractHyperlink(f *excelize.File, sheet string, colIdx, rowIdx int, record []string) string {
	cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
	if err != nil {
		return ""
	}

	if ok, target, err := f.GetCellHyperLink(sheet, cell); err == nil && ok && target != "" {
		return target
	}

	if formula, err := f.GetCellFormula(sheet, cell); err == nil && formula != "" {
		if m := hyperlinkFormulaRe.FindStringSubmatch(formula); m != nil {
			return m[1]
		}
	}

	if colIdx < len(record) && strings.Contains(record[colIdx], "http") {
		return record[colIdx]
	}
	return ""
}

// detectHeaderRow scans the first scanRows rows for a known coordinate or
// location header token. Falls back to the first row.
func detectHeaderRow(grid [][]string, scanRows int) int {
	limit := min(scanRows, len(grid))
	for i := range limit {
		for _, cell := range grid[i] {
			if _, ok := headerTokens[util.NormalizeKey(cell)]; ok {
				return i
			}
		}
	}
	return 0
}

// matchHyperlinkColumns maps each known hyperlink column to its index, using
// substring matching on normalized headers.
func matchHyperlinkColumns(keys []string) map[string]int {
	out := make(map[string]int)
	for _, colName := range hyperlinkColumns {
		norm := util.NormalizeKey(colName)
		for i, key := range keys {
			if strings.Contains(key, norm) {
				out[colName] = i
				break
			}
		}
	}
	return out
}

func buildRow(cells map[string]string, links map[string]string, maxImages int) rawRow {
	r := rawRow{
		name:         util.PickField(cells, "name", "nume", "title", "denumire", "Spatiu ID"),
		latRaw:       util.PickField(cells, "lat", "latitude", "latitudine"),
		lngRaw:       util.PickField(cells, "lng", "lon", "long", "longitude", "longitudine"),
		address:      util.PickField(cells, "address", "adresa", "location", "locatie"),
		locationText: util.PickField(cells, "locatie", "location_text"),
		spaceID:      util.PickField(cells, "Spatiu ID"),
		periods:      util.PickField(cells, "Perioade Disponibile", "PerioadeDisponibile", "perioade"),
	}

	for _, col := range []string{"Imagini 1", "Imagini 2", "Imagini 3"} {
		if len(r.images) >= maxImages {
			break
		}
		var img string
		if links != nil {
			img = links[col]
		}
		if img == "" {
			img = util.PickField(cells, col+"_url", col, "img"+col[len(col)-1:], "Imagine"+col[len(col)-1:], "Poza"+col[len(col)-1:])
		}
		if strings.TrimSpace(img) != "" {
			r.images = append(r.images, img)
		}
	}
	return r
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
