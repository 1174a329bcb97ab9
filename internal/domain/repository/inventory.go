// Package repository declares persistence interfaces for the domain layer.
package repository

import (
	"github.com/google/uuid"

	"billmap/internal/domain/entity"
)

// InventoryRepository stores the current billboard collection. Implementations
// must hand out copies; callers never see shared slices.
type InventoryRepository interface {
	// Replace swaps the whole collection atomically and bumps the generation.
	Replace(items []entity.Billboard)

	// List returns a snapshot of the collection in insertion order.
	List() []entity.Billboard

	// Get returns the item with the given id.
	Get(id uuid.UUID) (entity.Billboard, bool)

	// Update applies fn to every item under the write lock.
	Update(fn func(item *entity.Billboard))

	// UpdateOne applies fn to the item with the given id under the write
	// lock. Reports false when the id is unknown.
	UpdateOne(id uuid.UUID, fn func(item *entity.Billboard)) bool

	// Clear drops the collection and the stored workbook and bumps the
	// generation, invalidating in-flight resolution work.
	Clear()

	// Generation identifies the current collection instance. A resolution
	// pass started against an older generation must discard its results.
	Generation() uint64

	// SetOriginal stores the imported workbook for later re-export.
	SetOriginal(doc entity.OriginalWorkbook)

	// Original returns the stored workbook, if any.
	Original() (entity.OriginalWorkbook, bool)
}
