package transfer_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labstock-api/internal/application/inventory"
	"github.com/jhoicas/labstock-api/internal/application/transfer"
	"github.com/jhoicas/labstock-api/internal/domain"
	"github.com/jhoicas/labstock-api/internal/domain/entity"
	"github.com/jhoicas/labstock-api/internal/domain/repository"
	"github.com/jhoicas/labstock-api/internal/domain/stocklevel"
	"github.com/jhoicas/labstock-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes for the engine's ports. memItems enforces versioned writes
// the way the postgres repository does (rows-affected semantics), and memTx
// snapshots state before the callback so a failed "transaction" rolls back.
// ──────────────────────────────────────────────────────────────────────────────

type memItems struct {
	byID map[string]*entity.StockItem
	// journal undoes writes made through the repository when the enclosing
	// fake transaction fails. Direct mutations (the simulated concurrent
	// writer below) are not journaled: they stand for another committed
	// transaction and survive the rollback.
	journal []func()
	// beforeUpdate simulates a concurrent writer between the caller's read
	// and its conditional write; invoked once, then cleared.
	beforeUpdate func(id string)
	// failCreate forces Create to report a uniqueness race.
	failCreate bool
}

func newMemItems(items ...*entity.StockItem) *memItems {
	m := &memItems{byID: make(map[string]*entity.StockItem)}
	for _, it := range items {
		cp := *it
		m.byID[it.ID] = &cp
	}
	return m
}

func (m *memItems) Create(item *entity.StockItem) error {
	if m.failCreate {
		m.failCreate = false
		return domain.ErrDuplicate
	}
	for _, it := range m.byID {
		if it.RegistryNumber == item.RegistryNumber && it.LabID == item.LabID {
			return domain.ErrDuplicate
		}
	}
	cp := *item
	m.byID[item.ID] = &cp
	id := item.ID
	m.journal = append(m.journal, func() { delete(m.byID, id) })
	return nil
}

func (m *memItems) GetByID(id string) (*entity.StockItem, error) {
	it, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (m *memItems) GetByRegistryAndLab(registryNumber, labID string) (*entity.StockItem, error) {
	for _, it := range m.byID {
		if it.RegistryNumber == registryNumber && it.LabID == labID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memItems) UpdateVersioned(item *entity.StockItem, expectedVersion int64) error {
	if m.beforeUpdate != nil {
		hook := m.beforeUpdate
		m.beforeUpdate = nil
		hook(item.ID)
	}
	stored, ok := m.byID[item.ID]
	if !ok || stored.Version != expectedVersion {
		return domain.ErrConflict
	}
	prev := stored
	cp := *item
	cp.Version = expectedVersion + 1
	m.byID[item.ID] = &cp
	item.Version = cp.Version
	m.journal = append(m.journal, func() { m.byID[prev.ID] = prev })
	return nil
}

func (m *memItems) DeleteVersioned(id string, expectedVersion int64) error {
	stored, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return domain.ErrConflict
	}
	delete(m.byID, id)
	m.journal = append(m.journal, func() { m.byID[id] = stored })
	return nil
}

func (m *memItems) ListByLab(labID string, limit, offset int) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, it := range m.byID {
		if it.LabID == labID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memItems) Search(query, labID string, limit, offset int) ([]*entity.StockItem, error) {
	return nil, nil
}

func (m *memItems) totalQuantity() int64 {
	var total int64
	for _, it := range m.byID {
		total += it.Quantity
	}
	return total
}

type memTransfers struct{ records []*entity.TransferRecord }

func (m *memTransfers) Create(r *entity.TransferRecord) error {
	cp := *r
	m.records = append(m.records, &cp)
	return nil
}

func (m *memTransfers) List(repository.TransferFilter, int, int) ([]*entity.TransferRecord, error) {
	return m.records, nil
}

type memActions struct{ records []*entity.ActionRecord }

func (m *memActions) Create(r *entity.ActionRecord) error {
	cp := *r
	m.records = append(m.records, &cp)
	return nil
}

func (m *memActions) List(repository.ActionFilter, int, int) ([]*entity.ActionRecord, error) {
	return m.records, nil
}

type memLabs struct{ byID map[string]*entity.Lab }

func (m *memLabs) Create(lab *entity.Lab) error { m.byID[lab.ID] = lab; return nil }

func (m *memLabs) GetByID(id string) (*entity.Lab, error) {
	lab, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return lab, nil
}

func (m *memLabs) GetByCode(code string) (*entity.Lab, error) {
	for _, lab := range m.byID {
		if lab.Code == code {
			return lab, nil
		}
	}
	return nil, nil
}

func (m *memLabs) List() ([]*entity.Lab, error) { return nil, nil }

// memTx runs the callback against the shared fakes and unwinds repository
// writes when it fails, mirroring a rolled-back database transaction.
type memTx struct {
	items     *memItems
	transfers *memTransfers
	actions   *memActions
}

func (tx *memTx) Run(_ context.Context, fn func(
	items repository.StockItemRepository,
	transfers repository.TransferRecordRepository,
	actions repository.ActionRecordRepository,
) error) error {
	tx.items.journal = nil
	transferSnap := len(tx.transfers.records)
	actionSnap := len(tx.actions.records)

	if err := fn(tx.items, tx.transfers, tx.actions); err != nil {
		for i := len(tx.items.journal) - 1; i >= 0; i-- {
			tx.items.journal[i]()
		}
		tx.transfers.records = tx.transfers.records[:transferSnap]
		tx.actions.records = tx.actions.records[:actionSnap]
		return err
	}
	return nil
}

type publishedEvent struct {
	eventType string
	payload   any
}

type memNotifier struct {
	events []publishedEvent
	err    error
}

func (n *memNotifier) Publish(_ context.Context, eventType string, payload any) error {
	if n.err != nil {
		return n.err
	}
	n.events = append(n.events, publishedEvent{eventType: eventType, payload: payload})
	return nil
}

func (n *memNotifier) alerts() []inventory.StockAlertEvent {
	var out []inventory.StockAlertEvent
	for _, e := range n.events {
		if e.eventType == inventory.EventStockAlert {
			out = append(out, e.payload.(inventory.StockAlertEvent))
		}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	labElectric = "lab-1"
	labPower    = "lab-2"
	actorID     = "user-1"
)

type fixture struct {
	uc        *transfer.UseCase
	items     *memItems
	transfers *memTransfers
	actions   *memActions
	notifier  *memNotifier
}

func newFixture(t *testing.T, items ...*entity.StockItem) *fixture {
	t.Helper()
	f := &fixture{
		items:     newMemItems(items...),
		transfers: &memTransfers{},
		actions:   &memActions{},
		notifier:  &memNotifier{},
	}
	labs := &memLabs{byID: map[string]*entity.Lab{
		labElectric: {ID: labElectric, Code: "1", Name: "Elektrik Makineler", MaxCabinets: 8},
		labPower:    {ID: labPower, Code: "2", Name: "Güç Elektroniği", MaxCabinets: 8},
	}}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	tx := &memTx{items: f.items, transfers: f.transfers, actions: f.actions}
	f.uc = transfer.NewUseCase(tx, f.items, labs, f.notifier, log)
	return f
}

func sourceItem(quantity, minimum int64) *entity.StockItem {
	return &entity.StockItem{
		ID:              "item-1",
		Name:            "Osiloskop",
		RegistryNumber:  "EM-1001",
		Quantity:        quantity,
		Unit:            "pcs",
		MinimumQuantity: minimum,
		LocationType:    entity.LocationTypeCabinet,
		LocationNumber:  2,
		LocationPosition: entity.CabinetPositionUpper,
		LabID:           labElectric,
		Version:         3,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Happy paths
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_CreatesDestination(t *testing.T) {
	f := newFixture(t, sourceItem(10, 5))

	res, err := f.uc.Transfer(context.Background(), transfer.Input{
		SourceItemID:     "item-1",
		DestinationLabID: labPower,
		Quantity:         3,
		ActorID:          actorID,
		Notes:            "loan for the lab course",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), res.Source.Quantity)
	assert.True(t, res.Created)
	assert.Equal(t, int64(3), res.Destination.Quantity)
	assert.Equal(t, labPower, res.Destination.LabID)
	assert.Equal(t, "EM-1001", res.Destination.RegistryNumber)
	assert.Equal(t, "Osiloskop", res.Destination.Name)
	assert.Equal(t, "pcs", res.Destination.Unit)
	assert.Equal(t, int64(5), res.Destination.MinimumQuantity)
	assert.Equal(t, entity.LocationTypeWorkspace, res.Destination.LocationType, "new destination rows land in the workspace")
	assert.Equal(t, int64(0), res.Destination.Version)

	// Conservation law.
	assert.Equal(t, int64(10), f.items.totalQuantity())

	// Source version advanced by exactly one.
	src, _ := f.items.GetByID("item-1")
	assert.Equal(t, int64(4), src.Version)
}

func TestTransfer_AuditCompleteness(t *testing.T) {
	f := newFixture(t, sourceItem(10, 2))

	_, err := f.uc.Transfer(context.Background(), transfer.Input{
		SourceItemID:     "item-1",
		DestinationLabID: labPower,
		Quantity:         4,
		ActorID:          actorID,
	})
	require.NoError(t, err)

	require.Len(t, f.transfers.records, 1)
	tr := f.transfers.records[0]
	assert.Equal(t, "item-1", tr.ProductID)
	assert.Equal(t, labElectric, tr.SourceLabID)
	assert.Equal(t, labPower, tr.DestinationLabID)
	assert.Equal(t, int64(4), tr.Quantity)
	assert.Equal(t, actorID, tr.ActorID)

	require.Len(t, f.actions.records, 2)
	out, in := f.actions.records[0], f.actions.records[1]
	assert.Equal(t, entity.ActionTransfer, out.ActionType)
	assert.Equal(t, entity.ActionTransfer, in.ActionType)
	assert.Equal(t, labElectric, out.LabID)
	assert.Equal(t, labPower, in.LabID)
	assert.Equal(t, -in.QuantityDelta, out.QuantityDelta, "opposite signs, equal magnitude")
	assert.Equal(t, int64(-4), out.QuantityDelta)
}

// Transferring twice into an empty lab must accumulate in a single row.
func TestTransfer_AccumulatesIntoSingleRow(t *testing.T) {
	f := newFixture(t, sourceItem(20, 2))

	for i := 0; i < 2; i++ {
		_, err := f.uc.Transfer(context.Background(), transfer.Input{
			SourceItemID:     "item-1",
			DestinationLabID: labPower,
			Quantity:         4,
			ActorID:          actorID,
		})
		require.NoError(t, err, "transfer %d", i+1)
	}

	rows, err := f.items.ListByLab(labPower, 100, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1, "one destination row, not two")
	assert.Equal(t, int64(8), rows[0].Quantity)
	assert.Equal(t, int64(1), rows[0].Version, "created at 0, merged once")

	assert.Equal(t, int64(20), f.items.totalQuantity())
	assert.Len(t, f.transfers.records, 2)
	assert.Len(t, f.actions.records, 4)
}

// ──────────────────────────────────────────────────────────────────────────────
// Preconditions: rejected before any write
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_Preconditions(t *testing.T) {
	cases := []struct {
		name    string
		input   transfer.Input
		wantErr error
	}{
		{
			"zero quantity",
			transfer.Input{SourceItemID: "item-1", DestinationLabID: labPower, Quantity: 0},
			domain.ErrInvalidInput,
		},
		{
			"negative quantity",
			transfer.Input{SourceItemID: "item-1", DestinationLabID: labPower, Quantity: -2},
			domain.ErrInvalidInput,
		},
		{
			"unknown source item",
			transfer.Input{SourceItemID: "nope", DestinationLabID: labPower, Quantity: 1},
			domain.ErrNotFound,
		},
		{
			"unknown destination lab",
			transfer.Input{SourceItemID: "item-1", DestinationLabID: "lab-99", Quantity: 1},
			domain.ErrNotFound,
		},
		{
			"same source and destination lab",
			transfer.Input{SourceItemID: "item-1", DestinationLabID: labElectric, Quantity: 1},
			domain.ErrInvalidInput,
		},
		{
			"insufficient quantity",
			transfer.Input{SourceItemID: "item-1", DestinationLabID: labPower, Quantity: 15},
			domain.ErrInsufficientStock,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, sourceItem(10, 5))

			_, err := f.uc.Transfer(context.Background(), tc.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)

			// Zero net state change, no orphan records, no events.
			src, _ := f.items.GetByID("item-1")
			assert.Equal(t, int64(10), src.Quantity)
			assert.Equal(t, int64(3), src.Version)
			assert.Empty(t, f.transfers.records)
			assert.Empty(t, f.actions.records)
			assert.Empty(t, f.notifier.events)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrency
// ──────────────────────────────────────────────────────────────────────────────

// A writer committing between the coordinator's read and its conditional
// decrement must abort the whole transfer: exactly one of two overdraining
// writers wins and the quantity never goes negative.
func TestTransfer_SourceConflict(t *testing.T) {
	f := newFixture(t, sourceItem(5, 0))

	// The competing transfer of 3 units commits first.
	f.items.beforeUpdate = func(string) {
		stored := f.items.byID["item-1"]
		stored.Quantity -= 3
		stored.Version++
	}

	_, err := f.uc.Transfer(context.Background(), transfer.Input{
		SourceItemID:     "item-1",
		DestinationLabID: labPower,
		Quantity:         5,
		ActorID:          actorID,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	src, _ := f.items.GetByID("item-1")
	assert.Equal(t, int64(2), src.Quantity, "only the competing writer's decrement survives")
	assert.GreaterOrEqual(t, src.Quantity, int64(0))
	assert.Empty(t, f.transfers.records)
	assert.Empty(t, f.actions.records)
	assert.Empty(t, f.notifier.events)
}

// A retry after the conflict re-reads the fresh version. With only 2 units
// left, a transfer of 5 is now rejected as insufficient rather than silently
// overdrawing.
func TestTransfer_ConflictThenRetry(t *testing.T) {
	f := newFixture(t, sourceItem(5, 0))
	f.items.beforeUpdate = func(string) {
		stored := f.items.byID["item-1"]
		stored.Quantity -= 3
		stored.Version++
	}

	in := transfer.Input{SourceItemID: "item-1", DestinationLabID: labPower, Quantity: 5, ActorID: actorID}
	_, err := f.uc.Transfer(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.Transfer(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	in.Quantity = 2
	res, err := f.uc.Transfer(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Source.Quantity)
	assert.Equal(t, int64(2), res.Destination.Quantity)
}

// A conflict on the destination row must roll the source decrement back too.
func TestTransfer_DestinationConflictRollsBackSource(t *testing.T) {
	dest := &entity.StockItem{
		ID:             "item-2",
		Name:           "Osiloskop",
		RegistryNumber: "EM-1001",
		Quantity:       1,
		Unit:           "pcs",
		LocationType:   entity.LocationTypeWorkspace,
		LabID:          labPower,
		Version:        7,
	}
	f := newFixture(t, sourceItem(10, 0), dest)

	f.items.beforeUpdate = func(id string) {
		if id == "item-2" {
			f.items.byID["item-2"].Version++
			return
		}
		// First update targets the source; re-arm for the destination.
		f.items.beforeUpdate = func(id string) {
			if id == "item-2" {
				f.items.byID["item-2"].Version++
			}
		}
	}

	_, err := f.uc.Transfer(context.Background(), transfer.Input{
		SourceItemID:     "item-1",
		DestinationLabID: labPower,
		Quantity:         4,
		ActorID:          actorID,
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	src, _ := f.items.GetByID("item-1")
	assert.Equal(t, int64(10), src.Quantity, "source decrement rolled back")
	assert.Equal(t, int64(3), src.Version)
	got, _ := f.items.GetByID("item-2")
	assert.Equal(t, int64(1), got.Quantity)
	assert.Empty(t, f.transfers.records)
	assert.Empty(t, f.actions.records)
}

// A concurrent creator winning the destination race surfaces as a duplicate;
// the retry finds the now-existing row and merges into it.
func TestTransfer_DestinationCreateRace(t *testing.T) {
	f := newFixture(t, sourceItem(10, 0))
	f.items.failCreate = true

	in := transfer.Input{SourceItemID: "item-1", DestinationLabID: labPower, Quantity: 4, ActorID: actorID}
	_, err := f.uc.Transfer(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrDuplicate)

	src, _ := f.items.GetByID("item-1")
	assert.Equal(t, int64(10), src.Quantity, "whole transfer aborted")
	assert.Empty(t, f.transfers.records)

	// The row the concurrent creator inserted.
	require.NoError(t, f.items.Create(&entity.StockItem{
		ID:             "item-race",
		Name:           "Osiloskop",
		RegistryNumber: "EM-1001",
		Quantity:       2,
		Unit:           "pcs",
		LocationType:   entity.LocationTypeWorkspace,
		LabID:          labPower,
	}))

	res, err := f.uc.Transfer(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, "item-race", res.Destination.ID)
	assert.Equal(t, int64(6), res.Destination.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alerts and notifications
// ──────────────────────────────────────────────────────────────────────────────

// Dropping the source to 0 < qty <= minimum fires exactly one Low alert.
func TestTransfer_LowAlertOnSource(t *testing.T) {
	dest := &entity.StockItem{
		ID:             "item-2",
		Name:           "Osiloskop",
		RegistryNumber: "EM-1001",
		Quantity:       20,
		Unit:           "pcs",
		LocationType:   entity.LocationTypeWorkspace,
		LabID:          labPower,
		Version:        0,
	}
	f := newFixture(t, sourceItem(9, 5), dest)

	_, err := f.uc.Transfer(context.Background(), transfer.Input{
		SourceItemID:     "item-1",
		DestinationLabID: labPower,
		Quantity:         5,
		ActorID:          actorID,
	})
	require.NoError(t, err)

	alerts := f.notifier.alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, "item-1", alerts[0].ItemID)
	assert.Equal(t, stocklevel.Low, alerts[0].Level)
	assert.Equal(t, int64(4), alerts[0].Quantity)
	assert.Equal(t, int64(5), alerts[0].Minimum)
}

func TestTransfer_OutAlertOnSource(t *testing.T) {
	dest := &entity.StockItem{
		ID:             "item-2",
		Name:           "Osiloskop",
		RegistryNumber: "EM-1001",
		Quantity:       20,
		Unit:           "pcs",
		LocationType:   entity.LocationTypeWorkspace,
		LabID:          labPower,
	}
	f := newFixture(t, sourceItem(9, 5), dest)

	_, err := f.uc.Transfer(context.Background(), transfer.Input{
		SourceItemID:     "item-1",
		DestinationLabID: labPower,
		Quantity:         9,
		ActorID:          actorID,
	})
	require.NoError(t, err)

	alerts := f.notifier.alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, stocklevel.Out, alerts[0].Level)
	assert.Equal(t, int64(0), alerts[0].Quantity)
}

func TestTransfer_NoAlertAboveMinimum(t *testing.T) {
	dest := &entity.StockItem{
		ID:             "item-2",
		Name:           "Osiloskop",
		RegistryNumber: "EM-1001",
		Quantity:       20,
		Unit:           "pcs",
		LocationType:   entity.LocationTypeWorkspace,
		LabID:          labPower,
	}
	f := newFixture(t, sourceItem(10, 5), dest)

	_, err := f.uc.Transfer(context.Background(), transfer.Input{
		SourceItemID:     "item-1",
		DestinationLabID: labPower,
		Quantity:         3,
		ActorID:          actorID,
	})
	require.NoError(t, err)
	assert.Empty(t, f.notifier.alerts())
}

// Notification failures are logged, never surfaced: the committed transfer
// still reports success.
func TestTransfer_NotifierFailureDoesNotFailTransfer(t *testing.T) {
	f := newFixture(t, sourceItem(10, 5))
	f.notifier.err = fmt.Errorf("broker unavailable")

	res, err := f.uc.Transfer(context.Background(), transfer.Input{
		SourceItemID:     "item-1",
		DestinationLabID: labPower,
		Quantity:         3,
		ActorID:          actorID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.Source.Quantity)
}
