package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"billmap/config"
	"billmap/internal/domain/entity"
	"billmap/internal/domain/repository"
	"billmap/internal/domain/service"
	"billmap/internal/infra/memory"
)

// stubProvider is a scriptable MapProvider for service tests.
type stubProvider struct {
	mu sync.Mutex

	// geocode maps addresses to fixed results.
	geocode    map[string]entity.LatLng
	geocodeErr error

	// pages are served in order; each call past the end returns an empty page.
	pages       []service.TextSearchPage
	searchCalls int

	// distFn overrides the great-circle distance when set.
	distFn func(a, b entity.LatLng) float64
}

func (p *stubProvider) Geocode(_ context.Context, address string) (entity.LatLng, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.geocodeErr != nil {
		return entity.LatLng{}, false, p.geocodeErr
	}
	loc, ok := p.geocode[address]
	return loc, ok, nil
}

func (p *stubProvider) TextSearch(_ context.Context, _ string, _ *service.Bound, _ string) (service.TextSearchPage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := p.searchCalls
	p.searchCalls++
	if idx >= len(p.pages) {
		return service.TextSearchPage{}, nil
	}
	return p.pages[idx], nil
}

func (p *stubProvider) Distance(a, b entity.LatLng) float64 {
	if p.distFn != nil {
		return p.distFn(a, b)
	}
	return geo.Distance(orb.Point{a.Lng, a.Lat}, orb.Point{b.Lng, b.Lat})
}

func (p *stubProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.searchCalls
}

func newTestConfig() *config.Config {
	return &config.Config{
		Inventory: &config.InventoryConfig{
			HeaderScanRows:  20,
			MaxImages:       3,
			PlaceholderName: "Panou",
		},
		Proximity: &config.ProximityConfig{
			DefaultRadius: 1000,
			MaxRadius:     10000,
		},
		Search: &config.SearchConfig{
			PageDelay:        time.Millisecond,
			DebounceInterval: 10 * time.Millisecond,
		},
	}
}

func newTestStores(cfg *config.Config) (repository.InventoryRepository, repository.MapStateRepository) {
	return memory.NewInventoryStore(), memory.NewMapStateStore(cfg.Proximity.DefaultRadius)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
