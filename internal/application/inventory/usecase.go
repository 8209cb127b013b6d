package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/labstock-api/internal/application/concurrency"
	"github.com/jhoicas/labstock-api/internal/domain"
	"github.com/jhoicas/labstock-api/internal/domain/entity"
	"github.com/jhoicas/labstock-api/internal/domain/location"
	"github.com/jhoicas/labstock-api/internal/domain/repository"
	"github.com/jhoicas/labstock-api/internal/domain/stocklevel"
	"github.com/jhoicas/labstock-api/internal/domain/validation"
	"github.com/jhoicas/labstock-api/pkg/logger"
)

// UseCase covers the item lifecycle outside transfers: add, edit, delete,
// lookups and search. Every mutation runs in one transaction together with
// the action record that documents it, and edits/deletes are conditional on
// the version the caller last read.
type UseCase struct {
	txRunner TxRunner
	itemRepo repository.StockItemRepository
	labRepo  repository.LabRepository
	notifier Notifier
	log      *logger.Logger
}

// NewUseCase builds the use case.
func NewUseCase(
	txRunner TxRunner,
	itemRepo repository.StockItemRepository,
	labRepo repository.LabRepository,
	notifier Notifier,
	log *logger.Logger,
) *UseCase {
	return &UseCase{txRunner: txRunner, itemRepo: itemRepo, labRepo: labRepo, notifier: notifier, log: log}
}

// AddItemInput is the payload for AddItem. Location uses the wire encoding
// ("workspace" or "cabinet-<n>-<upper|lower>").
type AddItemInput struct {
	Name            string
	RegistryNumber  string
	Quantity        int64
	Unit            string
	MinimumQuantity int64
	Location        string
	Notes           string
	LabID           string
	ActorID         string
}

// AddItem creates a new item in a lab, writing the "add" action record in the
// same transaction. The (registry_number, lab_id) pair must be free.
func (uc *UseCase) AddItem(ctx context.Context, in AddItemInput) (*entity.StockItem, error) {
	if errs := validation.StockItem(validation.StockItemInput{
		Name:            in.Name,
		RegistryNumber:  in.RegistryNumber,
		Quantity:        in.Quantity,
		Unit:            in.Unit,
		MinimumQuantity: in.MinimumQuantity,
	}); errs != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, errs.Error())
	}

	lab, err := uc.labRepo.GetByID(in.LabID)
	if err != nil {
		return nil, err
	}
	if lab == nil {
		return nil, domain.ErrNotFound
	}

	loc, err := location.Parse(in.Location, lab.MaxCabinets)
	if err != nil {
		return nil, err
	}

	existing, err := uc.itemRepo.GetByRegistryAndLab(in.RegistryNumber, in.LabID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: registry number %s already exists in lab %s", domain.ErrDuplicate, in.RegistryNumber, lab.Code)
	}

	now := time.Now().UTC()
	item := &entity.StockItem{
		ID:              uuid.New().String(),
		Name:            in.Name,
		RegistryNumber:  in.RegistryNumber,
		Quantity:        in.Quantity,
		Unit:            in.Unit,
		MinimumQuantity: in.MinimumQuantity,
		Notes:           in.Notes,
		LabID:           in.LabID,
		Version:         0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	loc.Apply(item)

	err = uc.txRunner.Run(ctx, func(
		items repository.StockItemRepository,
		_ repository.TransferRecordRepository,
		actions repository.ActionRecordRepository,
	) error {
		if err := items.Create(item); err != nil {
			return err
		}
		return actions.Create(&entity.ActionRecord{
			ID:            uuid.New().String(),
			ActorID:       in.ActorID,
			ActionType:    entity.ActionAdd,
			ProductID:     item.ID,
			LabID:         item.LabID,
			QuantityDelta: item.Quantity,
			Notes:         fmt.Sprintf("Added new item: %s", item.Name),
			Timestamp:     now,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.notifyUpdate(ctx, item, entity.ActionAdd)
	uc.notifyAlert(ctx, item)
	return item, nil
}

// EditItemInput is the payload for EditItem. ExpectedVersion is the version
// the caller last read; the edit is rejected with a conflict if the item
// moved on since.
type EditItemInput struct {
	ItemID          string
	ExpectedVersion int64
	Name            string
	RegistryNumber  string
	Quantity        int64
	Unit            string
	MinimumQuantity int64
	Location        string
	Notes           string
	ActorID         string
}

// EditItem applies a full-record edit through the concurrency guard, writing
// the "edit" action record (with the signed quantity delta) in the same
// transaction.
func (uc *UseCase) EditItem(ctx context.Context, in EditItemInput) (*entity.StockItem, error) {
	if errs := validation.StockItem(validation.StockItemInput{
		Name:            in.Name,
		RegistryNumber:  in.RegistryNumber,
		Quantity:        in.Quantity,
		Unit:            in.Unit,
		MinimumQuantity: in.MinimumQuantity,
	}); errs != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, errs.Error())
	}

	current, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	lab, err := uc.labRepo.GetByID(current.LabID)
	if err != nil {
		return nil, err
	}
	if lab == nil {
		return nil, domain.ErrNotFound
	}
	loc, err := location.Parse(in.Location, lab.MaxCabinets)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var updated *entity.StockItem

	err = uc.txRunner.Run(ctx, func(
		items repository.StockItemRepository,
		_ repository.TransferRecordRepository,
		actions repository.ActionRecordRepository,
	) error {
		guard := concurrency.NewGuard(items)
		var delta int64
		_, err := guard.ConditionalUpdate(in.ItemID, in.ExpectedVersion, func(it *entity.StockItem) error {
			delta = in.Quantity - it.Quantity
			it.Name = in.Name
			it.RegistryNumber = in.RegistryNumber
			it.Quantity = in.Quantity
			it.Unit = in.Unit
			it.MinimumQuantity = in.MinimumQuantity
			it.Notes = in.Notes
			it.UpdatedAt = now
			loc.Apply(it)
			updated = it
			return nil
		})
		if err != nil {
			return err
		}
		return actions.Create(&entity.ActionRecord{
			ID:            uuid.New().String(),
			ActorID:       in.ActorID,
			ActionType:    entity.ActionEdit,
			ProductID:     in.ItemID,
			LabID:         lab.ID,
			QuantityDelta: delta,
			Notes:         fmt.Sprintf("Edited item: %s", in.Name),
			Timestamp:     now,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.notifyUpdate(ctx, updated, entity.ActionEdit)
	uc.notifyAlert(ctx, updated)
	return updated, nil
}

// DeleteItem removes an item conditionally on its version, so an admin delete
// cannot race a pending transfer. The "delete" action record carries the full
// negative quantity.
func (uc *UseCase) DeleteItem(ctx context.Context, itemID string, expectedVersion int64, actorID string) error {
	current, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrNotFound
	}

	now := time.Now().UTC()
	err = uc.txRunner.Run(ctx, func(
		items repository.StockItemRepository,
		_ repository.TransferRecordRepository,
		actions repository.ActionRecordRepository,
	) error {
		guard := concurrency.NewGuard(items)
		if err := guard.ConditionalDelete(itemID, expectedVersion); err != nil {
			return err
		}
		return actions.Create(&entity.ActionRecord{
			ID:            uuid.New().String(),
			ActorID:       actorID,
			ActionType:    entity.ActionDelete,
			ProductID:     itemID,
			LabID:         current.LabID,
			QuantityDelta: -current.Quantity,
			Notes:         fmt.Sprintf("Deleted item: %s", current.Name),
			Timestamp:     now,
		})
	})
	if err != nil {
		return err
	}

	uc.notifyUpdate(ctx, current, entity.ActionDelete)
	return nil
}

// GetItem returns one item by ID.
func (uc *UseCase) GetItem(_ context.Context, itemID string) (*entity.StockItem, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// ListByLab lists a lab's items.
func (uc *UseCase) ListByLab(_ context.Context, labID string, limit, offset int) ([]*entity.StockItem, error) {
	return uc.itemRepo.ListByLab(labID, clampLimit(limit), offset)
}

// Search finds items by name or registry number, optionally scoped to a lab.
// Matching is case- and diacritic-insensitive (item names are Turkish).
func (uc *UseCase) Search(_ context.Context, query, labID string, limit, offset int) ([]*entity.StockItem, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", domain.ErrInvalidInput)
	}
	return uc.itemRepo.Search(query, labID, clampLimit(limit), offset)
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 50
	}
	return limit
}

func (uc *UseCase) notifyUpdate(ctx context.Context, item *entity.StockItem, action string) {
	err := uc.notifier.Publish(ctx, EventInventoryUpdate, InventoryUpdateEvent{
		ItemID: item.ID,
		Action: action,
		Data: map[string]any{
			"name":            item.Name,
			"registry_number": item.RegistryNumber,
			"quantity":        item.Quantity,
			"lab_id":          item.LabID,
			"location":        location.Of(item).String(),
		},
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("item_id", item.ID).Str("action", action).Msg("inventory_update publish failed")
	}
}

func (uc *UseCase) notifyAlert(ctx context.Context, item *entity.StockItem) {
	level := stocklevel.Evaluate(item.Quantity, item.MinimumQuantity)
	if !level.Alerting() {
		return
	}
	err := uc.notifier.Publish(ctx, EventStockAlert, StockAlertEvent{
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
