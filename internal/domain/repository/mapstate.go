package repository

import (
	"github.com/google/uuid"

	"billmap/internal/domain/entity"
)

// MapStateRepository stores the per-session proximity state: the active
// reference point, the shared radius, peek circles and search results.
type MapStateRepository interface {
	// SetReference activates a reference point, replacing any previous one.
	SetReference(ref entity.ReferencePoint)

	// Reference returns the active reference point, if any.
	Reference() (entity.ReferencePoint, bool)

	// ClearReference deactivates the reference point and resets the
	// visibility toggle.
	ClearReference()

	// SetRadius sets the shared radius in meters. It applies to the
	// reference circle and to every peek circle alike.
	SetRadius(r float64)

	// Radius returns the shared radius in meters.
	Radius() float64

	// TogglePeek flips the peek circle for an item and reports the new state.
	TogglePeek(id uuid.UUID) bool

	// SetPeek sets the peek circle for an item explicitly.
	SetPeek(id uuid.UUID, on bool)

	// PeekIDs returns the ids of items with an active peek circle.
	PeekIDs() []uuid.UUID

	// ClearPeeks removes every peek circle.
	ClearPeeks()

	// SetShowOnlyInRange sets the visibility toggle.
	SetShowOnlyInRange(v bool)

	// ShowOnlyInRange reports the visibility toggle.
	ShowOnlyInRange() bool

	// ReplacePlaces swaps the place search results and bumps the search
	// generation.
	ReplacePlaces(ps []entity.Place)

	// AppendPlaces adds a further page of results without bumping the
	// generation.
	AppendPlaces(ps []entity.Place)

	// Places returns a snapshot of the current search results.
	Places() []entity.Place

	// ClearPlaces drops the search results and bumps the search generation.
	ClearPlaces()

	// SearchGeneration identifies the current result set. A paged search
	// started against an older generation must discard late pages.
	SearchGeneration() uint64
}
