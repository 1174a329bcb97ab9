package entity

import "github.com/google/uuid"

// Origin tags where the active reference point came from.
type Origin string

const (
	// OriginStore marks a reference produced by a location search.
	OriginStore Origin = "store"
	// OriginBillboard marks an inventory item promoted to reference.
	OriginBillboard Origin = "billboard"
)

// ReferencePoint is the single active distance origin. Replacing it retires
// the previous one; no history is kept.
type ReferencePoint struct {
	Name     string `json:"name"`
	Location LatLng `json:"location"`
	Origin   Origin `json:"origin"`
}

// RadiusCircle is a rendered (center, radius) pair. Peek circles are keyed by
// the owning item's ID with at most one circle per item; the primary circle
// belongs to the active reference and carries a nil owner.
type RadiusCircle struct {
	Owner  *uuid.UUID `json:"owner,omitempty"`
	Center LatLng     `json:"center"`
	Radius float64    `json:"radius"`
}
