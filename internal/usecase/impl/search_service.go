package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"billmap/config"
	"billmap/internal/domain/entity"
	domainerrors "billmap/internal/domain/errors"
	"billmap/internal/domain/repository"
	"billmap/internal/domain/service"
	"billmap/internal/usecase"
	"billmap/internal/util"
)

// maxSearchPages bounds the paging loop; the provider caps text search at
// three pages anyway.
const maxSearchPages = 3

type searchService struct {
	config    *config.Config
	logger    *slog.Logger
	mapState  repository.MapStateRepository
	provider  service.MapProvider
	debouncer *util.Debouncer

	mu        sync.Mutex
	lastInput *usecase.SearchInput
}

// NewSearchService creates a new search service instance
func NewSearchService(
	cfg *config.Config,
	logger *slog.Logger,
	mapState repository.MapStateRepository,
	provider service.MapProvider,
) usecase.SearchUsecase {
	return &searchService{
		config:    cfg,
		logger:    logger,
		mapState:  mapState,
		provider:  provider,
		debouncer: util.NewDebouncer(cfg.Search.DebounceInterval),
	}
}

// Search runs a paged provider text search, keeps the results whose name
// contains every query token and stores them as the session's places.
func (s *searchService) Search(ctx context.Context, input *usecase.SearchInput) ([]entity.Place, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, domainerrors.ErrEmptyQuery
	}

	s.mu.Lock()
	s.lastInput = input
	s.mu.Unlock()

	var bound *service.Bound
	if input.SouthWestLat != nil && input.SouthWestLng != nil &&
		input.NorthEastLat != nil && input.NorthEastLng != nil {
		bound = &service.Bound{
			SouthWest: entity.LatLng{Lat: *input.SouthWestLat, Lng: *input.SouthWestLng},
			NorthEast: entity.LatLng{Lat: *input.NorthEastLat, Lng: *input.NorthEastLng},
		}
	}

	// A competing search bumps the generation; late pages of this one are
	// then thrown away instead of clobbering the newer results.
	generation := s.mapState.SearchGeneration()
	tokens := strings.Fields(strings.ToLower(query))

	var collected []entity.Place
	pageToken := ""
	for page := 0; page < maxSearchPages; page++ {
		if page > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.config.Search.PageDelay):
			}
		}

		result, err := s.provider.TextSearch(ctx, query, bound, pageToken)
		if err != nil {
			return nil, domainerrors.NewProviderError(err, query)
		}

		for _, p := range result.Places {
			if matchesTokens(p.Name, tokens) {
				p.Visible = true
				collected = append(collected, p)
			}
		}

		pageToken = result.NextPageToken
		if pageToken == "" {
			break
		}
	}

	if s.mapState.SearchGeneration() != generation {
		s.logger.DebugContext(ctx, "discarding stale search results",
			slog.String("query", query), slog.Int("places", len(collected)))
		return s.mapState.Places(), nil
	}

	if input.KeepExisting {
		s.mapState.AppendPlaces(collected)
	} else {
		s.mapState.ReplacePlaces(collected)
	}
	return s.mapState.Places(), nil
}

// Refresh re-runs the last search after a quiet interval. Bursts of viewport
// changes collapse into a single provider round trip.
func (s *searchService) Refresh() {
	s.debouncer.Trigger(func() {
		s.mu.Lock()
		input := s.lastInput
		s.mu.Unlock()
		if input == nil {
			return
		}

		refreshed := *input
		refreshed.KeepExisting = false

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := s.Search(ctx, &refreshed); err != nil {
			s.logger.Warn("background search refresh failed",
				slog.String("query", refreshed.Query), slog.Any("error", err))
		}
	})
}

// ClearPlaces drops the stored search results.
func (s *searchService) ClearPlaces(_ context.Context) error {
	s.mapState.ClearPlaces()
	return nil
}

func matchesTokens(name string, tokens []string) bool {
	lower := strings.ToLower(name)
	for _, t := range tokens {
		if !strings.Contains(lower, t) {
			return false
		}
	}
	return true
}
