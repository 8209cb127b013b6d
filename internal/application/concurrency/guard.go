// Package concurrency wraps the store's conditional primitives into one
// optimistic-concurrency guard. Every StockItem mutation in the system goes
// through it: edits, transfer decrements and increments, and deletes.
package concurrency

import (
	"fmt"

	"github.com/jhoicas/labstock-api/internal/domain"
	"github.com/jhoicas/labstock-api/internal/domain/entity"
)

// VersionedStore is the slice of the stock item repository the guard needs.
// The full repository satisfies it, bound to a pool or to a transaction.
type VersionedStore interface {
	GetByID(id string) (*entity.StockItem, error)
	UpdateVersioned(item *entity.StockItem, expectedVersion int64) error
	DeleteVersioned(id string, expectedVersion int64) error
}

// Guard applies read-mutate-write cycles conditional on an expected version.
// It performs no retries: conflict resolution belongs to the caller, so user
// intents are never silently reordered or merged.
type Guard struct {
	store VersionedStore
}

// NewGuard builds a guard over a store. Construct it per transaction when the
// update must be part of a larger atomic unit.
func NewGuard(store VersionedStore) *Guard {
	return &Guard{store: store}
}

// ConditionalUpdate reads the item, applies mutate to produce the candidate
// state, and commits it only if the stored version still equals
// expectedVersion. On success the stored version is incremented by exactly one
// and the new version is returned. Returns domain.ErrNotFound when the item
// does not exist, domain.ErrConflict when the precondition fails (no change is
// made), or the mutator's error verbatim.
func (g *Guard) ConditionalUpdate(id string, expectedVersion int64, mutate func(*entity.StockItem) error) (int64, error) {
	item, err := g.store.GetByID(id)
	if err != nil {
		return 0, fmt.Errorf("guard read: %w", err)
	}
	if item == nil {
		return 0, domain.ErrNotFound
	}
	if item.Version != expectedVersion {
		return 0, domain.ErrConflict
	}
	if err := mutate(item); err != nil {
		return 0, err
	}
	if err := g.store.UpdateVersioned(item, expectedVersion); err != nil {
		return 0, err
	}
	return item.Version, nil
}

// ConditionalDelete removes the item only if the stored version still equals
// expectedVersion, so a delete cannot race a pending transfer.
func (g *Guard) ConditionalDelete(id string, expectedVersion int64) error {
	return g.store.DeleteVersioned(id, expectedVersion)
}
