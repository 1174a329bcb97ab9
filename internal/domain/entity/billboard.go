// Package entity contains the core business objects of the project.
package entity

import (
	"github.com/google/uuid"
)

// Billboard is the core entity for one advertising placement.
// It enters the inventory only once both coordinates are known; rows that
// cannot be resolved to a coordinate are dropped during ingestion.
type Billboard struct {
	// Stable identifier assigned at ingestion time, never reused.
	ID uuid.UUID `json:"id"`

	Name string `json:"name"`

	// Geographic position in decimal degrees.
	Location LatLng `json:"location"`

	// Free-text address, used for geocoding when coordinates are missing.
	Address string `json:"address,omitempty"`

	// Human-readable location label from the source sheet.
	LocationText string `json:"location_text,omitempty"`

	// External space identifier, if the sheet carries one.
	SpaceID string `json:"space_id,omitempty"`

	// Up to three image reference strings.
	Images []string `json:"images,omitempty"`

	// Free-text availability description, parsed on demand.
	RawPeriods string `json:"raw_periods,omitempty"`

	// Computed per active reference; never persisted.
	DistanceMeters *float64 `json:"distance_m,omitempty"`
	InRange        bool     `json:"in_range"`
	Visible        bool     `json:"visible"`
}

// LatLng is a geographic coordinate pair in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
