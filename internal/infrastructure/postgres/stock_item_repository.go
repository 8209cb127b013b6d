package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/labstock-api/internal/domain"
	"github.com/jhoicas/labstock-api/internal/domain/entity"
	"github.com/jhoicas/labstock-api/internal/domain/repository"
	"github.com/jhoicas/labstock-api/pkg/strutil"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implements StockItemRepository over PostgreSQL (usable with
// pool or tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository builds the adapter. Pass pool or tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, name, registry_number, quantity, unit, minimum_quantity,
		location_type, location_number, location_position, notes, lab_id, version, created_at, updated_at`

// Create inserts a new item at version 0. Returns domain.ErrDuplicate when
// (registry_number, lab_id) is already taken.
func (r *StockItemRepo) Create(item *entity.StockItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	item.Version = 0
	item.CreatedAt = now
	item.UpdatedAt = now
	query := `
		INSERT INTO stock_items (id, name, name_search, registry_number, quantity, unit, minimum_quantity,
			location_type, location_number, location_position, notes, lab_id, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, strutil.Fold(item.Name), item.RegistryNumber, item.Quantity,
		item.Unit, item.MinimumQuantity, item.LocationType, item.LocationNumber,
		item.LocationPosition, item.Notes, item.LabID, item.Version, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: registry number %q already exists in lab", domain.ErrDuplicate, item.RegistryNumber)
		}
		return fmt.Errorf("create stock item: %w", err)
	}
	return nil
}

// GetByID returns the item or nil when it does not exist.
func (r *StockItemRepo) GetByID(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	item, err := scanStockItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return item, nil
}

// GetByRegistryAndLab returns the item with that registry number in the lab,
// or nil when no such row exists.
func (r *StockItemRepo) GetByRegistryAndLab(registryNumber, labID string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE registry_number = $1 AND lab_id = $2`
	item, err := scanStockItem(r.q.QueryRow(context.Background(), query, registryNumber, labID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item by registry: %w", err)
	}
	return item, nil
}

// UpdateVersioned writes the item only when the stored version still equals
// expectedVersion, bumping the version by one. Zero rows affected means
// another writer got there first (domain.ErrConflict).
func (r *StockItemRepo) UpdateVersioned(item *entity.StockItem, expectedVersion int64) error {
	query := `
		UPDATE stock_items
		SET name = $1, name_search = $2, registry_number = $3, quantity = $4, unit = $5,
			minimum_quantity = $6, location_type = $7, location_number = $8,
			location_position = $9, notes = $10, version = version + 1, updated_at = now()
		WHERE id = $11 AND version = $12`
	tag, err := r.q.Exec(context.Background(), query,
		item.Name, strutil.Fold(item.Name), item.RegistryNumber, item.Quantity, item.Unit,
		item.MinimumQuantity, item.LocationType, item.LocationNumber,
		item.LocationPosition, item.Notes, item.ID, expectedVersion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: registry number %q already exists in lab", domain.ErrDuplicate, item.RegistryNumber)
		}
		return fmt.Errorf("update stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: stock item %s changed since version %d", domain.ErrConflict, item.ID, expectedVersion)
	}
	item.Version = expectedVersion + 1
	return nil
}

// DeleteVersioned removes the item only when the stored version still equals
// expectedVersion.
func (r *StockItemRepo) DeleteVersioned(id string, expectedVersion int64) error {
	query := `DELETE FROM stock_items WHERE id = $1 AND version = $2`
	tag, err := r.q.Exec(context.Background(), query, id, expectedVersion)
	if err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: stock item %s changed since version %d", domain.ErrConflict, id, expectedVersion)
	}
	return nil
}

// ListByLab lists the lab's items ordered by name.
func (r *StockItemRepo) ListByLab(labID string, limit, offset int) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + `
		FROM stock_items WHERE lab_id = $1
		ORDER BY name, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, labID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	return scanStockItems(rows)
}

// Search matches the folded query against name_search and the registry
// number. labID narrows to one lab when non-empty.
func (r *StockItemRepo) Search(query string, labID string, limit, offset int) ([]*entity.StockItem, error) {
	folded := "%" + strutil.Fold(query) + "%"
	sql := `SELECT ` + stockItemColumns + `
		FROM stock_items
		WHERE (name_search LIKE $1 OR registry_number ILIKE $1)`
	args := []any{folded}
	pos := 2
	if labID != "" {
		sql += fmt.Sprintf(" AND lab_id = $%d", pos)
		args = append(args, labID)
		pos++
	}
	sql += fmt.Sprintf(" ORDER BY name, id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search stock items: %w", err)
	}
	defer rows.Close()
	return scanStockItems(rows)
}

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var it entity.StockItem
	err := row.Scan(
		&it.ID, &it.Name, &it.RegistryNumber, &it.Quantity, &it.Unit, &it.MinimumQuantity,
		&it.LocationType, &it.LocationNumber, &it.LocationPosition, &it.Notes,
		&it.LabID, &it.Version, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func scanStockItems(rows pgx.Rows) ([]*entity.StockItem, error) {
	var list []*entity.StockItem
	for rows.Next() {
		it, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
