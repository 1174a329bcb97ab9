// Package google implements the mapping provider against the Google Maps
// Web Service APIs (Geocoding and Places Text Search).
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"

	"billmap/config"
	"billmap/internal/domain/entity"
	"billmap/internal/domain/service"
)

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// Client calls the Google Maps Web Service APIs.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a provider client from configuration.
func NewClient(cfg *config.Config) (service.MapProvider, error) {
	if cfg.Maps == nil || cfg.Maps.APIKey == "" {
		return nil, errors.New("maps api key is not configured")
	}

	baseURL := cfg.Maps.BaseURL
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com/maps/api"
	}

	return &Client{
		apiKey:  cfg.Maps.APIKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: cfg.Maps.Timeout},
	}, nil
}

type latLngPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location latLngPayload `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a free-text address to a coordinate.
func (c *Client) Geocode(ctx context.Context, address string) (entity.LatLng, bool, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.apiKey)

	var resp geocodeResponse
	if err := c.getJSON(ctx, "/geocode/json", q, &resp); err != nil {
		return entity.LatLng{}, false, err
	}

	switch resp.Status {
	case statusOK:
	case statusZeroResults:
		return entity.LatLng{}, false, nil
	default:
		return entity.LatLng{}, false, errors.Errorf("geocode status %s: %s", resp.Status, resp.ErrorMessage)
	}

	if len(resp.Results) == 0 {
		return entity.LatLng{}, false, nil
	}

	loc := resp.Results[0].Geometry.Location
	return entity.LatLng{Lat: loc.Lat, Lng: loc.Lng}, true, nil
}

type textSearchResponse struct {
	Status        string `json:"status"`
	ErrorMessage  string `json:"error_message"`
	NextPageToken string `json:"next_page_token"`
	Results       []struct {
		Name             string `json:"name"`
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location latLngPayload `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// TextSearch runs one page of a place text search.
func (c *Client) TextSearch(ctx context.Context, query string, bound *service.Bound, pageToken string) (service.TextSearchPage, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	if pageToken != "" {
		// A page token carries the whole original request.
		q.Set("pagetoken", pageToken)
	} else {
		q.Set("query", query)
		if bound != nil {
			center := entity.LatLng{
				Lat: (bound.SouthWest.Lat + bound.NorthEast.Lat) / 2,
				Lng: (bound.SouthWest.Lng + bound.NorthEast.Lng) / 2,
			}
			radius := c.Distance(bound.SouthWest, bound.NorthEast) / 2
			q.Set("location", fmt.Sprintf("%f,%f", center.Lat, center.Lng))
			q.Set("radius", fmt.Sprintf("%.0f", radius))
		}
	}

	var resp textSearchResponse
	if err := c.getJSON(ctx, "/place/textsearch/json", q, &resp); err != nil {
		return service.TextSearchPage{}, err
	}

	switch resp.Status {
	case statusOK:
	case statusZeroResults:
		return service.TextSearchPage{}, nil
	default:
		return service.TextSearchPage{}, errors.Errorf("text search status %s: %s", resp.Status, resp.ErrorMessage)
	}

	page := service.TextSearchPage{
		Places:        make([]entity.Place, 0, len(resp.Results)),
		NextPageToken: resp.NextPageToken,
	}
	for _, r := range resp.Results {
		page.Places = append(page.Places, entity.Place{
			Name:    r.Name,
			Address: r.FormattedAddress,
			Location: entity.LatLng{
				Lat: r.Geometry.Location.Lat,
				Lng: r.Geometry.Location.Lng,
			},
		})
	}
	return page, nil
}

// Distance returns the great-circle surface distance in meters.
func (c *Client) Distance(a, b entity.LatLng) float64 {
	return geo.Distance(orb.Point{a.Lng, a.Lat}, orb.Point{b.Lng, b.Lat})
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return errors.Wrap(err, "build maps request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "call maps api")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("maps api returned http %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode maps response")
	}
	return nil
}
