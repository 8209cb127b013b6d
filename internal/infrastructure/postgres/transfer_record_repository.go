package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/labstock-api/internal/domain/entity"
	"github.com/jhoicas/labstock-api/internal/domain/repository"
)

var _ repository.TransferRecordRepository = (*TransferRecordRepo)(nil)

// TransferRecordRepo implements the append-only transfer history over
// PostgreSQL. Rows are never updated or deleted.
type TransferRecordRepo struct {
	q Querier
}

// NewTransferRecordRepository builds the adapter. Pass pool or tx (Querier).
func NewTransferRecordRepository(q Querier) *TransferRecordRepo {
	return &TransferRecordRepo{q: q}
}

// Create appends a transfer record.
func (r *TransferRecordRepo) Create(record *entity.TransferRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	query := `
		INSERT INTO transfer_records (id, product_id, source_lab_id, destination_lab_id, quantity, notes, actor_id, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.ProductID, record.SourceLabID, record.DestinationLabID,
		record.Quantity, record.Notes, record.ActorID, record.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("create transfer record: %w", err)
	}
	return nil
}

// List returns transfer records newest first. Ordering by (timestamp, id)
// keeps pages stable when timestamps collide.
func (r *TransferRecordRepo) List(filter repository.TransferFilter, limit, offset int) ([]*entity.TransferRecord, error) {
	query := `
		SELECT id, product_id, source_lab_id, destination_lab_id, quantity, notes, actor_id, timestamp
		FROM transfer_records WHERE 1=1`
	var args []any
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.LabID != "" {
		query += fmt.Sprintf(" AND (source_lab_id = $%d OR destination_lab_id = $%d)", pos, pos)
		args = append(args, filter.LabID)
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
		return nil, fmt.Errorf("list transfer records: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransferRecord
	for rows.Next() {
		var t entity.TransferRecord
		if err := rows.Scan(&t.ID, &t.ProductID, &t.SourceLabID, &t.DestinationLabID,
			&t.Quantity, &t.Notes, &t.ActorID, &t.Timestamp); err != nil {
			return nil, fmt.Errorf("scan transfer record: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
