package impl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"billmap/config"
	"billmap/internal/domain/entity"
	domainerrors "billmap/internal/domain/errors"
	"billmap/internal/domain/repository"
	"billmap/internal/domain/service"
	"billmap/internal/usecase"
)

type proximityService struct {
	config   *config.Config
	logger   *slog.Logger
	items    repository.InventoryRepository
	mapState repository.MapStateRepository
	provider service.MapProvider
}

// NewProximityService creates a new proximity service instance
func NewProximityService(
	cfg *config.Config,
	logger *slog.Logger,
	items repository.InventoryRepository,
	mapState repository.MapStateRepository,
	provider service.MapProvider,
) usecase.ProximityUsecase {
	return &proximityService{
		config:   cfg,
		logger:   logger,
		items:    items,
		mapState: mapState,
		provider: provider,
	}
}

// SetReference activates an external reference point, geocoding the address
// when no coordinates are given.
func (s *proximityService) SetReference(ctx context.Context, input *usecase.SetReferenceInput) (*usecase.MapSnapshot, error) {
	var loc entity.LatLng

	switch {
	case input.Lat != nil && input.Lng != nil:
		loc = entity.LatLng{Lat: *input.Lat, Lng: *input.Lng}
	case input.Address != "":
		resolved, found, err := s.provider.Geocode(ctx, input.Address)
		if err != nil {
			return nil, domainerrors.NewProviderError(err, input.Address)
		}
		if !found {
			return nil, domainerrors.ErrValidationFailed.WithDetails("address could not be resolved")
		}
		loc = resolved
	default:
		return nil, domainerrors.ErrValidationFailed.WithDetails("either coordinates or an address is required")
	}

	name := input.Name
	if name == "" {
		name = input.Address
	}

	s.mapState.SetReference(entity.ReferencePoint{
		Name:     name,
		Location: loc,
		Origin:   entity.OriginStore,
	})
	return s.Snapshot(ctx)
}

// PromoteItem makes an inventory item the reference point. Promoting the
// item that already is the reference demotes it back.
func (s *proximityService) PromoteItem(ctx context.Context, id uuid.UUID) (*usecase.MapSnapshot, error) {
	item, ok := s.items.Get(id)
	if !ok {
		return nil, domainerrors.ErrItemNotFound
	}

	if ref, active := s.mapState.Reference(); active &&
		ref.Origin == entity.OriginBillboard && ref.Location == item.Location {
		return s.ClearReference(ctx)
	}

	s.mapState.SetReference(entity.ReferencePoint{
		Name:     item.Name,
		Location: item.Location,
		Origin:   entity.OriginBillboard,
	})
	return s.Snapshot(ctx)
}

// ClearReference deactivates the reference point and resets derived state.
func (s *proximityService) ClearReference(ctx context.Context) (*usecase.MapSnapshot, error) {
	s.mapState.ClearReference()
	s.items.Update(func(item *entity.Billboard) {
		item.DistanceMeters = nil
		item.InRange = false
		item.Visible = true
	})
	return s.Snapshot(ctx)
}

// SetRadius updates the shared radius in meters.
func (s *proximityService) SetRadius(ctx context.Context, meters float64) (*usecase.MapSnapshot, error) {
	if meters <= 0 || meters > s.config.Proximity.MaxRadius {
		return nil, domainerrors.ErrRadiusOutOfRange.WithDetails(
			fmt.Sprintf("radius must be in (0, %.0f]", s.config.Proximity.MaxRadius))
	}

	s.mapState.SetRadius(meters)
	return s.Snapshot(ctx)
}

// ToggleCircle flips the peek circle on an item without making it the
// reference.
func (s *proximityService) ToggleCircle(ctx context.Context, id uuid.UUID) (*usecase.MapSnapshot, error) {
	if _, ok := s.items.Get(id); !ok {
		return nil, domainerrors.ErrItemNotFound
	}

	on := s.mapState.TogglePeek(id)
	s.logger.DebugContext(ctx, "peek circle toggled",
		slog.String("item_id", id.String()), slog.Bool("on", on))
	return s.Snapshot(ctx)
}

// ShowAllCircles draws a peek circle on every item.
func (s *proximityService) ShowAllCircles(ctx context.Context) (*usecase.MapSnapshot, error) {
	for _, item := range s.items.List() {
		s.mapState.SetPeek(item.ID, true)
	}
	return s.Snapshot(ctx)
}

// HideAllCircles removes every peek circle.
func (s *proximityService) HideAllCircles(ctx context.Context) (*usecase.MapSnapshot, error) {
	s.mapState.ClearPeeks()
	return s.Snapshot(ctx)
}

// SetVisibility sets the show-only-in-range toggle.
func (s *proximityService) SetVisibility(ctx context.Context, showOnlyInRange bool) (*usecase.MapSnapshot, error) {
	s.mapState.SetShowOnlyInRange(showOnlyInRange)
	return s.Snapshot(ctx)
}

// Snapshot recomputes every derived value under the current reference.
//
// The visibility policy is asymmetric. With an external reference the toggle
// filters inventory items and places stay visible; with a promoted item the
// toggle filters places and items stay visible.
func (s *proximityService) Snapshot(_ context.Context) (*usecase.MapSnapshot, error) {
	radius := s.mapState.Radius()
	showOnly := s.mapState.ShowOnlyInRange()
	ref, hasRef := s.mapState.Reference()

	snapshot := &usecase.MapSnapshot{
		Radius:          radius,
		ShowOnlyInRange: showOnly,
	}
	if hasRef {
		snapshot.Reference = &ref
	}

	if hasRef {
		s.items.Update(func(item *entity.Billboard) {
			d := s.provider.Distance(item.Location, ref.Location)
			inRange := d <= radius
			item.DistanceMeters = &d
			item.InRange = inRange
			if ref.Origin == entity.OriginStore && showOnly {
				item.Visible = inRange
			} else {
				item.Visible = true
			}
		})
	}

	items := s.items.List()
	snapshot.Items = items
	for i := range items {
		if !items[i].InRange {
			continue
		}
		snapshot.InRangeCount++
	}

	for i := range items {
		d := items[i].DistanceMeters
		if d == nil {
			continue
		}
		if snapshot.Nearest == nil || *d < snapshot.Nearest.DistanceMeters {
			snapshot.Nearest = &usecase.ItemDistance{Item: items[i], DistanceMeters: *d}
		}
	}

	places := s.mapState.Places()
	for i := range places {
		places[i].Visible = true
		if hasRef && ref.Origin == entity.OriginBillboard && showOnly {
			d := s.provider.Distance(places[i].Location, ref.Location)
			places[i].Visible = d <= radius
		}
	}
	snapshot.Places = places

	if hasRef {
		snapshot.Circles = append(snapshot.Circles, entity.RadiusCircle{
			Center: ref.Location,
			Radius: radius,
		})
	}
	for _, id := range s.mapState.PeekIDs() {
		item, ok := s.items.Get(id)
		if !ok {
			continue
		}
		owner := id
		snapshot.Circles = append(snapshot.Circles, entity.RadiusCircle{
			Owner:  &owner,
			Center: item.Location,
			Radius: radius,
		})
	}

	return snapshot, nil
}
