package memory

import (
	"sync"

	"github.com/google/uuid"

	"billmap/internal/domain/entity"
	"billmap/internal/domain/repository"
)

// MapStateStore is the in-memory MapStateRepository.
type MapStateStore struct {
	mu              sync.RWMutex
	reference       *entity.ReferencePoint
	radius          float64
	peeks           map[uuid.UUID]struct{}
	showOnlyInRange bool
	places          []entity.Place
	searchGen       uint64
}

// NewMapStateStore creates a map state store with the given starting radius.
func NewMapStateStore(defaultRadius float64) repository.MapStateRepository {
	return &MapStateStore{
		radius: defaultRadius,
		peeks:  make(map[uuid.UUID]struct{}),
	}
}

func (s *MapStateStore) SetReference(ref entity.ReferencePoint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reference = &ref
}

func (s *MapStateStore) Reference() (entity.ReferencePoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.reference == nil {
		return entity.ReferencePoint{}, false
	}
	return *s.reference, true
}

func (s *MapStateStore) ClearReference() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reference = nil
	s.showOnlyInRange = false
}

func (s *MapStateStore) SetRadius(r float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.radius = r
}

func (s *MapStateStore) Radius() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.radius
}

func (s *MapStateStore) TogglePeek(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.peeks[id]; ok {
		delete(s.peeks, id)
		return false
	}
	s.peeks[id] = struct{}{}
	return true
}

func (s *MapStateStore) SetPeek(id uuid.UUID, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if on {
		s.peeks[id] = struct{}{}
	} else {
		delete(s.peeks, id)
	}
}

func (s *MapStateStore) PeekIDs() []uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]uuid.UUID, 0, len(s.peeks))
	for id := range s.peeks {
		out = append(out, id)
	}
	return out
}

func (s *MapStateStore) ClearPeeks() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.peeks)
}

func (s *MapStateStore) SetShowOnlyInRange(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.showOnlyInRange = v
}

func (s *MapStateStore) ShowOnlyInRange() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.showOnlyInRange
}

func (s *MapStateStore) ReplacePlaces(ps []entity.Place) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.places = make([]entity.Place, len(ps))
	copy(s.places, ps)
	s.searchGen++
}

func (s *MapStateStore) AppendPlaces(ps []entity.Place) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.places = append(s.places, ps...)
}

func (s *MapStateStore) Places() []entity.Place {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Place, len(s.places))
	copy(out, s.places)
	return out
}

func (s *MapStateStore) ClearPlaces() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.places = nil
	s.searchGen++
}

func (s *MapStateStore) SearchGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.searchGen
}
