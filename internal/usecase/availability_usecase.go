package usecase

import (
	"context"

	"billmap/internal/domain/entity"
)

// AvailabilityInput is a closed date window, both bounds in ISO form
// (2006-01-02) and inclusive.
type AvailabilityInput struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end" validate:"required,datetime=2006-01-02"`
}

// AvailabilityMatch is one item whose booking text declares a free interval
// overlapping the query window.
type AvailabilityMatch struct {
	Item    entity.Billboard `json:"item"`
	Periods []entity.Period  `json:"periods"`
}

// AvailabilityUsecase defines the interface for availability filtering
type AvailabilityUsecase interface {
	// Filter returns the items available inside the window. Items without
	// any parseable period are excluded.
	Filter(ctx context.Context, input *AvailabilityInput) ([]AvailabilityMatch, error)

	// Periods parses the declared availability intervals of a single raw
	// booking text.
	Periods(raw string) []entity.Period
}
