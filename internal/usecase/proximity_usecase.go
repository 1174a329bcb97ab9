package usecase

import (
	"context"

	"github.com/google/uuid"

	"billmap/internal/domain/entity"
)

// SetReferenceInput activates a reference point from free coordinates or an
// address. When Address is set it is geocoded first.
type SetReferenceInput struct {
	Name    string   `json:"name"`
	Address string   `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// ItemDistance pairs an inventory item with its computed distance.
type ItemDistance struct {
	Item           entity.Billboard `json:"item"`
	DistanceMeters float64          `json:"distance_m"`
}

// MapSnapshot is the full derived view of the session: every item and place
// with its distance, range flag and visibility under the current reference.
type MapSnapshot struct {
	Reference *entity.ReferencePoint `json:"reference,omitempty"`
	Radius    float64                `json:"radius"`
	Items     []entity.Billboard     `json:"items"`
	Places    []entity.Place         `json:"places"`
	Circles   []entity.RadiusCircle  `json:"circles"`

	// Nearest is the closest item to the reference, when one exists.
	Nearest *ItemDistance `json:"nearest,omitempty"`

	InRangeCount    int  `json:"in_range_count"`
	ShowOnlyInRange bool `json:"show_only_in_range"`
}

// ProximityUsecase defines the interface for reference and radius use cases
type ProximityUsecase interface {
	// SetReference activates an external reference point.
	SetReference(ctx context.Context, input *SetReferenceInput) (*MapSnapshot, error)

	// PromoteItem makes an inventory item the reference point.
	PromoteItem(ctx context.Context, id uuid.UUID) (*MapSnapshot, error)

	// ClearReference deactivates the reference and resets derived state.
	ClearReference(ctx context.Context) (*MapSnapshot, error)

	// SetRadius updates the shared radius in meters.
	SetRadius(ctx context.Context, meters float64) (*MapSnapshot, error)

	// ToggleCircle flips the peek circle on an inventory item.
	ToggleCircle(ctx context.Context, id uuid.UUID) (*MapSnapshot, error)

	// ShowAllCircles draws a peek circle on every item.
	ShowAllCircles(ctx context.Context) (*MapSnapshot, error)

	// HideAllCircles removes every peek circle.
	HideAllCircles(ctx context.Context) (*MapSnapshot, error)

	// SetVisibility sets the show-only-in-range toggle.
	SetVisibility(ctx context.Context, showOnlyInRange bool) (*MapSnapshot, error)

	// Snapshot recomputes and returns the current derived view.
	Snapshot(ctx context.Context) (*MapSnapshot, error)
}
