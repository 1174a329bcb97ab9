// Package memory provides in-memory repository implementations. The service
// keeps all session state resident; nothing survives a restart.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"billmap/internal/domain/entity"
	"billmap/internal/domain/repository"
)

// InventoryStore is the in-memory InventoryRepository.
type InventoryStore struct {
	mu         sync.RWMutex
	items      []entity.Billboard
	generation uint64
	original   *entity.OriginalWorkbook
}

// NewInventoryStore creates an empty inventory store.
func NewInventoryStore() repository.InventoryRepository {
	return &InventoryStore{}
}

func (s *InventoryStore) Replace(items []entity.Billboard) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]entity.Billboard, len(items))
	copy(s.items, items)
	s.generation++
}

func (s *InventoryStore) List() []entity.Billboard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Billboard, len(s.items))
	copy(out, s.items)
	return out
}

func (s *InventoryStore) Get(id uuid.UUID) (entity.Billboard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.items {
		if s.items[i].ID == id {
			return s.items[i], true
		}
	}
	return entity.Billboard{}, false
}

func (s *InventoryStore) Update(fn func(item *entity.Billboard)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		fn(&s.items[i])
	}
}

func (s *InventoryStore) UpdateOne(id uuid.UUID, fn func(item *entity.Billboard)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			fn(&s.items[i])
			return true
		}
	}
	return false
}

func (s *InventoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.original = nil
	s.generation++
}

func (s *InventoryStore) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.generation
}

func (s *InventoryStore) SetOriginal(doc entity.OriginalWorkbook) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.original = &doc
}

func (s *InventoryStore) Original() (entity.OriginalWorkbook, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.original == nil {
		return entity.OriginalWorkbook{}, false
	}
	return *s.original, true
}
