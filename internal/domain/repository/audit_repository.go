package repository

import (
	"time"

	"github.com/jhoicas/labstock-api/internal/domain/entity"
)

// TransferRecordRepository is the append-only port for transfer history.
// Create never mutates or deletes existing rows; List orders by
// (timestamp, id) descending so pages stay stable between requests.
type TransferRecordRepository interface {
	Create(record *entity.TransferRecord) error
	List(filter TransferFilter, limit, offset int) ([]*entity.TransferRecord, error)
}

// TransferFilter narrows a transfer history listing. Nil/empty fields match all.
type TransferFilter struct {
	ProductID string
	LabID     string // matches source or destination
	From      *time.Time
	To        *time.Time
}

// ActionRecordRepository is the append-only port for the user action trail.
type ActionRecordRepository interface {
	Create(record *entity.ActionRecord) error
	List(filter ActionFilter, limit, offset int) ([]*entity.ActionRecord, error)
}

// ActionFilter narrows an action history listing. Nil/empty fields match all.
type ActionFilter struct {
	ActorID    string
	ProductID  string
	LabID      string
	ActionType string
	From       *time.Time
	To         *time.Time
}
