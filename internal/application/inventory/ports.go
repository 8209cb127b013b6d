package inventory

import (
	"context"

	"github.com/jhoicas/labstock-api/internal/domain/repository"
	"github.com/jhoicas/labstock-api/internal/domain/stocklevel"
)

// TxRunner executes fn inside one database transaction, passing repositories
// bound to that transaction. Item mutations, transfer records and action
// records written through those repositories commit or roll back together;
// this is the atomicity boundary of the whole engine.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.StockItemRepository,
		transfers repository.TransferRecordRepository,
		actions repository.ActionRecordRepository,
	) error) error
}

// Notifier publishes fire-and-forget events after a committed mutation.
// At-most-once, non-blocking; callers log failures and never let them affect
// the outcome of the mutation they follow.
type Notifier interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// Event types carried by the Notifier.
const (
	EventInventoryUpdate = "inventory_update"
	EventStockAlert      = "stock_alert"
)

// InventoryUpdateEvent is published after add, edit, delete and transfer.
type InventoryUpdateEvent struct {
	ItemID string         `json:"item_id"`
	Action string         `json:"action"`
	Data   map[string]any `json:"data,omitempty"`
}

// StockAlertEvent is published when a committed mutation leaves an item at or
// below its minimum quantity.
type StockAlertEvent struct {
	ItemID   string           `json:"item_id"`
	ItemName string           `json:"item_name"`
	LabID    string           `json:"lab_id"`
	Level    stocklevel.Level `json:"level"`
	Quantity int64            `json:"quantity"`
	Minimum  int64            `json:"minimum"`
}
