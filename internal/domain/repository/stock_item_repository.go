package repository

import "github.com/jhoicas/labstock-api/internal/domain/entity"

// StockItemRepository is the persistence port for StockItem (DIP).
//
// UpdateVersioned and DeleteVersioned are the store-level conditional
// primitives: they take effect only when the stored version still equals
// expectedVersion, and return domain.ErrConflict otherwise. A successful
// UpdateVersioned increments the stored version by exactly one and reflects
// the new version on the passed item. Create returns domain.ErrDuplicate on a
// (registry_number, lab_id) uniqueness violation.
type StockItemRepository interface {
	Create(item *entity.StockItem) error
	GetByID(id string) (*entity.StockItem, error)
	GetByRegistryAndLab(registryNumber, labID string) (*entity.StockItem, error)
	UpdateVersioned(item *entity.StockItem, expectedVersion int64) error
	DeleteVersioned(id string, expectedVersion int64) error
	ListByLab(labID string, limit, offset int) ([]*entity.StockItem, error)
	Search(query string, labID string, limit, offset int) ([]*entity.StockItem, error)
}
