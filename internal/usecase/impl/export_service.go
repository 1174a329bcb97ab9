package impl

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"

	"billmap/internal/domain/entity"
	domainerrors "billmap/internal/domain/errors"
	"billmap/internal/domain/repository"
	"billmap/internal/domain/service"
	"billmap/internal/usecase"
	"billmap/internal/util"
)

const (
	exportSheetName  = "data"
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	groupedFilename  = "poi_per_billboard_grouped.xlsx"
	workbookFilename = "panouri_cu_linkuri.xlsx"
)

type exportService struct {
	logger   *slog.Logger
	items    repository.InventoryRepository
	mapState repository.MapStateRepository
	provider service.MapProvider
}

// NewExportService creates a new export service instance
func NewExportService(
	logger *slog.Logger,
	items repository.InventoryRepository,
	mapState repository.MapStateRepository,
	provider service.MapProvider,
) usecase.ExportUsecase {
	return &exportService{
		logger:   logger,
		items:    items,
		mapState: mapState,
		provider: provider,
	}
}

// ExportInRange writes the items inside the active radius. Only an external
// reference point qualifies; a promoted item does not.
func (s *exportService) ExportInRange(_ context.Context) (*usecase.ExportFile, error) {
	ref, ok := s.mapState.Reference()
	if !ok || ref.Origin != entity.OriginStore {
		return nil, domainerrors.ErrNoReference
	}

	radius := s.mapState.Radius()
	rows := [][]any{
		{"Denumire", "Adresa", "Latitudine", "Longitudine", "Distanța (m)", "În radius"},
	}

	for _, item := range s.items.List() {
		d := s.provider.Distance(item.Location, ref.Location)
		if d > radius {
			continue
		}

		address := item.LocationText
		if address == "" {
			address = item.Address
		}
		if address == "" {
			address = "N/A"
		}

		rows = append(rows, []any{
			item.Name, address, item.Location.Lat, item.Location.Lng,
			int(math.Round(d)), "Da",
		})
	}

	if len(rows) == 1 {
		return nil, domainerrors.ErrNothingToExport
	}

	data, err := writeRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return &usecase.ExportFile{
		Filename:    util.SanitizeFilename("panouri_in_radius_" + ref.Name),
		ContentType: xlsxContentType,
		Data:        data,
	}, nil
}

// ExportWorkbook re-exports the imported Excel rows with every hyperlink
// reinstated as a HYPERLINK formula, so the links survive a round trip
// through plain spreadsheet viewers.
func (s *exportService) ExportWorkbook(_ context.Context) (*usecase.ExportFile, error) {
	original, ok := s.items.Original()
	if !ok {
		return nil, domainerrors.ErrNoOriginalWorkbook
	}

	f, err := excelize.OpenReader(bytes.NewReader(original.Raw))
	if err != nil {
		return nil, fmt.Errorf("failed to reopen workbook: %w", err)
	}
	defer f.Close()

	grid, err := f.GetRows(original.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", original.SheetName, err)
	}
	if original.HeaderRow >= len(grid) {
		return nil, domainerrors.ErrNoOriginalWorkbook
	}

	keys := make([]string, len(grid[original.HeaderRow]))
	for i, h := range grid[original.HeaderRow] {
		keys[i] = util.NormalizeKey(h)
	}

	for _, colIdx := range matchHyperlinkColumns(keys) {
		for rowIdx := original.HeaderRow + 1; rowIdx < len(grid); rowIdx++ {
			record := grid[rowIdx]
			if colIdx >= len(record) || strings.TrimSpace(record[colIdx]) == "" {
				continue
			}

			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				continue
			}

			url := ""
			if ok, target, err := f.GetCellHyperLink(original.SheetName, cell); err == nil && ok && target != "" {
				url = target
			} else if strings.Contains(record[colIdx], "http") {
				url = record[colIdx]
			}
			if url == "" {
				continue
			}

			formula := fmt.Sprintf("HYPERLINK(%q,%q)", url, record[colIdx])
			if err := f.SetCellFormula(original.SheetName, cell, formula); err != nil {
				return nil, fmt.Errorf("failed to set formula on %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return &usecase.ExportFile{
		Filename:    workbookFilename,
		ContentType: xlsxContentType,
		Data:        buf.Bytes(),
	}, nil
}

// ExportGrouped writes one group per peeked item: a group header row, a
// column header row and the places inside the item's circle, groups
// separated by a blank row.
func (s *exportService) ExportGrouped(_ context.Context) (*usecase.ExportFile, error) {
	places := s.mapState.Places()
	if len(places) == 0 {
		return nil, domainerrors.ErrNothingToExport
	}

	peeked := make(map[string]struct{}, len(s.mapState.PeekIDs()))
	for _, id := range s.mapState.PeekIDs() {
		peeked[id.String()] = struct{}{}
	}
	if len(peeked) == 0 {
		return nil, domainerrors.ErrNothingToExport
	}

	radius := s.mapState.Radius()
	var rows [][]any
	var selected []entity.Billboard

	for _, item := range s.items.List() {
		if _, ok := peeked[item.ID.String()]; ok {
			selected = append(selected, item)
		}
	}

	for idx, item := range selected {
		rows = append(rows,
			[]any{"BILLBOARD", item.Name, item.Location.Lat, item.Location.Lng},
			[]any{"name", "address", "lat", "lng", "distance_m"},
		)

		for _, p := range places {
			d := s.provider.Distance(p.Location, item.Location)
			if d > radius {
				continue
			}

			name := p.Name
			if name == "" {
				name = "Loc"
			}
			rows = append(rows, []any{
				name, p.Address, p.Location.Lat, p.Location.Lng, int(math.Round(d)),
			})
		}

		if idx != len(selected)-1 {
			rows = append(rows, []any{""})
		}
	}

	data, err := writeRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return &usecase.ExportFile{
		Filename:    groupedFilename,
		ContentType: xlsxContentType,
		Data:        data,
	}, nil
}

// writeRows builds a single-sheet workbook from cell rows.
func writeRows(rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
