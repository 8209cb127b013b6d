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
)

var _ repository.LabRepository = (*LabRepo)(nil)

// LabRepo implements LabRepository over PostgreSQL.
type LabRepo struct {
	q Querier
}

// NewLabRepository builds the adapter. Pass pool or tx (Querier).
func NewLabRepository(q Querier) *LabRepo {
	return &LabRepo{q: q}
}

// Create inserts a lab. Returns domain.ErrDuplicate when the code is taken.
func (r *LabRepo) Create(lab *entity.Lab) error {
	if lab.ID == "" {
		lab.ID = uuid.New().String()
	}
	if lab.CreatedAt.IsZero() {
		lab.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO labs (id, code, name, description, location, max_cabinets, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		lab.ID, lab.Code, lab.Name, lab.Description, lab.Location, lab.MaxCabinets, lab.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: lab code %q already exists", domain.ErrDuplicate, lab.Code)
		}
		return fmt.Errorf("create lab: %w", err)
	}
	return nil
}

// GetByID returns the lab or nil when it does not exist.
func (r *LabRepo) GetByID(id string) (*entity.Lab, error) {
	query := `SELECT id, code, name, description, location, max_cabinets, created_at FROM labs WHERE id = $1`
	return r.getOne(query, id)
}

// GetByCode returns the lab by its code or nil when it does not exist.
func (r *LabRepo) GetByCode(code string) (*entity.Lab, error) {
	query := `SELECT id, code, name, description, location, max_cabinets, created_at FROM labs WHERE code = $1`
	return r.getOne(query, code)
}

func (r *LabRepo) getOne(query string, arg any) (*entity.Lab, error) {
	var l entity.Lab
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&l.ID, &l.Code, &l.Name, &l.Description, &l.Location, &l.MaxCabinets, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lab: %w", err)
	}
	return &l, nil
}

// List returns all labs ordered by code.
func (r *LabRepo) List() ([]*entity.Lab, error) {
	query := `SELECT id, code, name, description, location, max_cabinets, created_at FROM labs ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list labs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lab
	for rows.Next() {
		var l entity.Lab
		if err := rows.Scan(&l.ID, &l.Code, &l.Name, &l.Description, &l.Location, &l.MaxCabinets, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lab: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
