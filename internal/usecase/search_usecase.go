package usecase

import (
	"context"

	"billmap/internal/domain/entity"
)

// SearchInput is a place text search over an optional viewport.
type SearchInput struct {
	Query        string   `json:"query" validate:"required"`
	KeepExisting bool     `json:"keep_existing"`
	SouthWestLat *float64 `json:"sw_lat,omitempty"`
	SouthWestLng *float64 `json:"sw_lng,omitempty"`
	NorthEastLat *float64 `json:"ne_lat,omitempty"`
	NorthEastLng *float64 `json:"ne_lng,omitempty"`
}

// SearchUsecase defines the interface for place search use cases
type SearchUsecase interface {
	// Search runs a paged provider text search and stores the results as
	// the session's places.
	Search(ctx context.Context, input *SearchInput) ([]entity.Place, error)

	// Refresh re-runs the last search after a quiet interval, coalescing
	// bursts of viewport changes. It returns immediately.
	Refresh()

	// ClearPlaces drops the stored search results.
	ClearPlaces(ctx context.Context) error
}
