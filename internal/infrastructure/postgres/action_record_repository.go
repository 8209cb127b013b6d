package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/labstock-api/internal/domain/entity"
	"github.com/jhoicas/labstock-api/internal/domain/repository"
)

var _ repository.ActionRecordRepository = (*ActionRecordRepo)(nil)

// ActionRecordRepo implements the append-only user action trail over
// PostgreSQL. Rows are never updated or deleted.
type ActionRecordRepo struct {
	q Querier
}

// NewActionRecordRepository builds the adapter. Pass pool or tx (Querier).
func NewActionRecordRepository(q Querier) *ActionRecordRepo {
	return &ActionRecordRepo{q: q}
}

// Create appends an action record.
func (r *ActionRecordRepo) Create(record *entity.ActionRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	query := `
		INSERT INTO action_records (id, actor_id, action_type, product_id, lab_id, quantity_delta, notes, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.ActorID, record.ActionType, record.ProductID,
		record.LabID, record.QuantityDelta, record.Notes, record.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("create action record: %w", err)
	}
	return nil
}

// List returns action records newest first, (timestamp, id) descending.
func (r *ActionRecordRepo) List(filter repository.ActionFilter, limit, offset int) ([]*entity.ActionRecord, error) {
	query := `
		SELECT id, actor_id, action_type, product_id, lab_id, quantity_delta, notes, timestamp
		FROM action_records WHERE 1=1`
	var args []any
	pos := 1
	if filter.ActorID != "" {
		query += fmt.Sprintf(" AND actor_id = $%d", pos)
		args = append(args, filter.ActorID)
		pos++
	}
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.LabID != "" {
		query += fmt.Sprintf(" AND lab_id = $%d", pos)
		args = append(args, filter.LabID)
		pos++
	}
	if filter.ActionType != "" {
		query += fmt.Sprintf(" AND action_type = $%d", pos)
		args = append(args, filter.ActionType)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND timestamp >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND timestamp <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY timestamp DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list action records: %w", err)
	}
	defer rows.Close()
	var list []*entity.ActionRecord
	for rows.Next() {
		var a entity.ActionRecord
		if err := rows.Scan(&a.ID, &a.ActorID, &a.ActionType, &a.ProductID,
			&a.LabID, &a.QuantityDelta, &a.Notes, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("scan action record: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
