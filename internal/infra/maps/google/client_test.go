package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billmap/config"
	"billmap/internal/domain/entity"
	"billmap/internal/domain/service"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	provider, err := NewClient(&config.Config{Maps: &config.MapsConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}})
	require.NoError(t, err)
	return provider.(*Client)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(&config.Config{})
	assert.Error(t, err)

	_, err = NewClient(&config.Config{Maps: &config.MapsConfig{}})
	assert.Error(t, err)
}

func TestClient_Geocode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/json", r.URL.Path)
		assert.Equal(t, "Bd. Eroilor 10, Cluj-Napoca", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{"geometry": {"location": {"lat": 46.769, "lng": 23.589}}}]
		}`))
	})

	loc, found, err := client.Geocode(context.Background(), "Bd. Eroilor 10, Cluj-Napoca")
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, 46.769, loc.Lat, 1e-9)
	assert.InDelta(t, 23.589, loc.Lng, 1e-9)
}

func TestClient_Geocode_ZeroResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})

	_, found, err := client.Geocode(context.Background(), "Strada Inexistenta 99")
	require.NoError(t, err)
	assert.False(t, found, "no result is not an error")
}

func TestClient_Geocode_ProviderStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "REQUEST_DENIED", "error_message": "bad key"}`))
	})

	_, _, err := client.Geocode(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
}

func TestClient_TextSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/place/textsearch/json", r.URL.Path)
		assert.Equal(t, "profi", r.URL.Query().Get("query"))
		assert.NotEmpty(t, r.URL.Query().Get("location"), "viewport center is forwarded")

		_, _ = w.Write([]byte(`{
			"status": "OK",
			"next_page_token": "page2",
			"results": [{
				"name": "Profi City",
				"formatted_address": "Str. Horea 2, Cluj-Napoca",
				"geometry": {"location": {"lat": 46.7705, "lng": 23.5915}}
			}]
		}`))
	})

	bound := &service.Bound{
		SouthWest: entity.LatLng{Lat: 46.76, Lng: 23.58},
		NorthEast: entity.LatLng{Lat: 46.78, Lng: 23.60},
	}
	page, err := client.TextSearch(context.Background(), "profi", bound, "")
	require.NoError(t, err)
	assert.Equal(t, "page2", page.NextPageToken)
	require.Len(t, page.Places, 1)
	assert.Equal(t, "Profi City", page.Places[0].Name)
	assert.Equal(t, "Str. Horea 2, Cluj-Napoca", page.Places[0].Address)
}

func TestClient_TextSearch_PageTokenReplacesQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token123", r.URL.Query().Get("pagetoken"))
		assert.Empty(t, r.URL.Query().Get("query"))

		_, _ = w.Write([]byte(`{"status": "OK", "results": []}`))
	})

	_, err := client.TextSearch(context.Background(), "profi", nil, "token123")
	require.NoError(t, err)
}

func TestClient_Distance(t *testing.T) {
	client := newTestClient(t, func(http.ResponseWriter, *http.Request) {})

	a := entity.LatLng{Lat: 46.7694, Lng: 23.5899}
	b := entity.LatLng{Lat: 46.7700, Lng: 23.5910}

	d := client.Distance(a, b)
	assert.Positive(t, d)
	assert.Less(t, d, 200.0, "points a block apart are within 200 m")
	assert.InDelta(t, d, client.Distance(b, a), 1e-9, "distance is symmetric")
	assert.Zero(t, client.Distance(a, a))
}
