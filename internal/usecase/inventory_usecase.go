package usecase

import (
	"context"

	"billmap/internal/domain/entity"
)

// IngestInput carries an uploaded inventory file.
type IngestInput struct {
	Filename string
	Data     []byte
}

// IngestSummary reports the outcome of an import and its resolution pass.
type IngestSummary struct {
	Total        int      `json:"total"`
	WithCoords   int      `json:"with_coords"`
	Geocoded     int      `json:"geocoded"`
	Dropped      int      `json:"dropped"`
	FailedLookup []string `json:"failed_lookup,omitempty"`
}

// InventoryUsecase defines the interface for inventory ingestion use cases
type InventoryUsecase interface {
	// Ingest parses an uploaded CSV or Excel file, resolves address-only
	// rows through the mapping provider and replaces the collection.
	Ingest(ctx context.Context, input *IngestInput) (*IngestSummary, error)

	// List returns the current collection.
	List(ctx context.Context) ([]entity.Billboard, error)

	// Clear drops the collection and all derived state.
	Clear(ctx context.Context) error

	// TemplateCSV returns the downloadable import template.
	TemplateCSV() []byte
}
