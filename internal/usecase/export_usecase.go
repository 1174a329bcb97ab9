package usecase

import "context"

// ExportFile is a generated download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportUsecase defines the interface for spreadsheet export use cases
type ExportUsecase interface {
	// ExportInRange writes the items inside the active radius as a fresh
	// spreadsheet with name, coordinates and rounded distance.
	ExportInRange(ctx context.Context) (*ExportFile, error)

	// ExportWorkbook re-exports the originally imported Excel rows for the
	// in-range items, preserving their columns and hyperlink formulas.
	ExportWorkbook(ctx context.Context) (*ExportFile, error)

	// ExportGrouped writes one group per peeked item: the item itself
	// followed by the places inside its circle.
	ExportGrouped(ctx context.Context) (*ExportFile, error)
}
