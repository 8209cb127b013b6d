// Package transfer implements the inventory transfer engine: the atomic move
// of a quantity from one stock item to a (possibly newly created) item in
// another lab, safe under concurrent writers.
package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/labstock-api/internal/application/concurrency"
	"github.com/jhoicas/labstock-api/internal/application/inventory"
	"github.com/jhoicas/labstock-api/internal/domain"
	"github.com/jhoicas/labstock-api/internal/domain/entity"
	"github.com/jhoicas/labstock-api/internal/domain/repository"
	"github.com/jhoicas/labstock-api/internal/domain/stocklevel"
	"github.com/jhoicas/labstock-api/pkg/logger"
)

// UseCase orchestrates transfers. It owns no state: safety comes from per-row
// versioning (concurrency.Guard) plus single-transaction atomicity across the
// at most two rows a transfer touches. There is no global lock, no retry and
// no sleep anywhere in the path.
type UseCase struct {
	txRunner inventory.TxRunner
	itemRepo repository.StockItemRepository
	labRepo  repository.LabRepository
	notifier inventory.Notifier
	log      *logger.Logger
}

// NewUseCase builds the coordinator.
func NewUseCase(
	txRunner inventory.TxRunner,
	itemRepo repository.StockItemRepository,
	labRepo repository.LabRepository,
	notifier inventory.Notifier,
	log *logger.Logger,
) *UseCase {
	return &UseCase{txRunner: txRunner, itemRepo: itemRepo, labRepo: labRepo, notifier: notifier, log: log}
}

// Input is one transfer request.
type Input struct {
	SourceItemID     string
	DestinationLabID string
	Quantity         int64
	ActorID          string
	Notes            string
}

// Result carries the post-transfer state of both rows.
// Conservation law: Source.Quantity + Destination.Quantity equals the
// pre-transfer total of the two rows (destination counted as zero when it did
// not exist).
type Result struct {
	Source      *entity.StockItem
	Destination *entity.StockItem
	Created     bool // destination row was created by this transfer
}

// Transfer moves in.Quantity units of the source item into the destination
// lab. Preconditions are checked before any write; the mutation itself runs in
// one transaction: conditional decrement of the source, conditional increment
// (or creation) of the destination, one TransferRecord and two ActionRecords.
// Any error leaves zero net state change.
//
// Error taxonomy: domain.ErrInvalidInput / ErrInsufficientStock (rejected
// before any write), domain.ErrNotFound, domain.ErrConflict (a concurrent
// writer touched a row; re-read and retry), domain.ErrDuplicate (a concurrent
// creator won the destination race; a retry will find the row). Anything else
// is an infrastructure failure, wrapped and never retried here.
func (uc *UseCase) Transfer(ctx context.Context, in Input) (*Result, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: transfer quantity must be positive", domain.ErrInvalidInput)
	}

	source, err := uc.itemRepo.GetByID(in.SourceItemID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, domain.ErrNotFound
	}
	destLab, err := uc.labRepo.GetByID(in.DestinationLabID)
	if err != nil {
		return nil, err
	}
	if destLab == nil {
		return nil, domain.ErrNotFound
	}
	if source.LabID == in.DestinationLabID {
		return nil, fmt.Errorf("%w: source and destination labs are the same", domain.ErrInvalidInput)
	}
	if source.Quantity < in.Quantity {
		return nil, fmt.Errorf("%w: have %d, requested %d", domain.ErrInsufficientStock, source.Quantity, in.Quantity)
	}

	now := time.Now().UTC()
	res := &Result{}

	err = uc.txRunner.Run(ctx, func(
		items repository.StockItemRepository,
		transfers repository.TransferRecordRepository,
		actions repository.ActionRecordRepository,
	) error {
		guard := concurrency.NewGuard(items)

		// Decrement the source conditionally on the version read above. The
		// available quantity is re-checked here so two racing transfers can
		// never jointly overdraw the row.
		_, err := guard.ConditionalUpdate(source.ID, source.Version, func(it *entity.StockItem) error {
			if it.Quantity < in.Quantity {
				return fmt.Errorf("%w: have %d, requested %d", domain.ErrInsufficientStock, it.Quantity, in.Quantity)
			}
			it.Quantity -= in.Quantity
			it.UpdatedAt = now
			res.Source = it
			return nil
		})
		if err != nil {
			return err
		}

		// Merge into an existing destination row, or create one. Repeated
		// transfers accumulate into the same (registry_number, lab) row.
		dest, err := items.GetByRegistryAndLab(source.RegistryNumber, in.DestinationLabID)
		if err != nil {
			return err
		}
		if dest != nil {
			_, err = guard.ConditionalUpdate(dest.ID, dest.Version, func(it *entity.StockItem) error {
				it.Quantity += in.Quantity
				it.UpdatedAt = now
				res.Destination = it
				return nil
			})
			if err != nil {
				return err
			}
		} else {
			// New destination rows land in the workspace; placement inside
			// the receiving lab is a later manual edit. A unique-violation
			// here means a concurrent creator won the race: the whole
			// transfer aborts and a retry will find the row.
			dest = &entity.StockItem{
				ID:              uuid.New().String(),
				Name:            source.Name,
				RegistryNumber:  source.RegistryNumber,
				Quantity:        in.Quantity,
				Unit:            source.Unit,
				MinimumQuantity: source.MinimumQuantity,
				LocationType:    entity.LocationTypeWorkspace,
				Notes:           source.Notes,
				LabID:           in.DestinationLabID,
				Version:         0,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := items.Create(dest); err != nil {
				return err
			}
			res.Destination = dest
			res.Created = true
		}

		// Audit trail, same transaction: one transfer record, two action
		// records with opposite signs and equal magnitude.
		if err := transfers.Create(&entity.TransferRecord{
			ID:               uuid.New().String(),
			ProductID:        source.ID,
			SourceLabID:      source.LabID,
			DestinationLabID: in.DestinationLabID,
			Quantity:         in.Quantity,
			Notes:            in.Notes,
			ActorID:          in.ActorID,
			Timestamp:        now,
		}); err != nil {
			return err
		}
		if err := actions.Create(&entity.ActionRecord{
			ID:            uuid.New().String(),
			ActorID:       in.ActorID,
			ActionType:    entity.ActionTransfer,
			ProductID:     source.ID,
			LabID:         source.LabID,
			QuantityDelta: -in.Quantity,
			Notes:         fmt.Sprintf("Transferred out %d to lab %s", in.Quantity, destLab.Code),
			Timestamp:     now,
		}); err != nil {
			return err
		}
		return actions.Create(&entity.ActionRecord{
			ID:            uuid.New().String(),
			ActorID:       in.ActorID,
			ActionType:    entity.ActionTransfer,
			ProductID:     res.Destination.ID,
			LabID:         in.DestinationLabID,
			QuantityDelta: in.Quantity,
			Notes:         fmt.Sprintf("Received %d into lab %s", in.Quantity, destLab.Code),
			Timestamp:     now,
		})
	})
	if err != nil {
		return nil, err
	}

	// Only after the commit: best-effort notifications, decoupled from the
	// transaction outcome.
	uc.notifyTransfer(ctx, res, in)
	uc.notifyAlert(ctx, res.Source)
	uc.notifyAlert(ctx, res.Destination)

	return res, nil
}

func (uc *UseCase) notifyTransfer(ctx context.Context, res *Result, in Input) {
	err := uc.notifier.Publish(ctx, inventory.EventInventoryUpdate, inventory.InventoryUpdateEvent{
		ItemID: res.Source.ID,
		Action: entity.ActionTransfer,
		Data: map[string]any{
			"name":                res.Source.Name,
			"registry_number":     res.Source.RegistryNumber,
			"quantity":            res.Source.Quantity,
			"source_lab_id":       res.Source.LabID,
			"destination_lab_id":  in.DestinationLabID,
			"destination_item_id": res.Destination.ID,
			"transferred":         in.Quantity,
		},
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("item_id", res.Source.ID).Msg("inventory_update publish failed")
	}
}

func (uc *UseCase) notifyAlert(ctx context.Context, item *entity.StockItem) {
	level := stocklevel.Evaluate(item.Quantity, item.MinimumQuantity)
	if !level.Alerting() {
		return
	}
	err := uc.notifier.Publish(ctx, inventory.EventStockAlert, inventory.StockAlertEvent{
		ItemID:   item.ID,
		ItemName: item.Name,
		LabID:    item.LabID,
		Level:    level,
		Quantity: item.Quantity,
		Minimum:  item.MinimumQuantity,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("item_id", item.ID).Msg("stock_alert publish failed")
	}
}
