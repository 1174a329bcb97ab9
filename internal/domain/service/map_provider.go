// Package service declares interfaces for capabilities supplied by
// infrastructure, consumed by the use case layer.
package service

import (
	"context"

	"billmap/internal/domain/entity"
)

// Bound is a rectangular viewport constraining a text search.
type Bound struct {
	SouthWest entity.LatLng
	NorthEast entity.LatLng
}

// TextSearchPage is one page of place search results. NextPageToken is empty
// on the last page.
type TextSearchPage struct {
	Places        []entity.Place
	NextPageToken string
}

// MapProvider is the narrow surface of the external mapping provider the
// core depends on. Nothing above infrastructure may see provider-specific
// request or response shapes.
type MapProvider interface {
	// Geocode resolves a free-text address to a coordinate. The boolean is
	// false when the provider has no result; that is not an error.
	Geocode(ctx context.Context, address string) (entity.LatLng, bool, error)

	// TextSearch runs one page of a place search. Pass the previous page's
	// token to fetch the next page.
	TextSearch(ctx context.Context, query string, bound *Bound, pageToken string) (TextSearchPage, error)

	// Distance returns the great-circle surface distance between two points
	// in meters. It is symmetric and non-negative.
	Distance(a, b entity.LatLng) float64
}
