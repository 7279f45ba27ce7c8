package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/entity"
	"stockyard/internal/core/id"
)

type ledgerFixture struct {
	svc       *Service
	levels    *fakeLevels
	stockIn   *fakeStockInRepo
	stockOut  *fakeStockOutRepo
	transfers *fakeTransferRepo
}

func newLedgerFixture() *ledgerFixture {
	levels := newFakeLevels()
	stockIn := newFakeStockInRepo()
	stockOut := newFakeStockOutRepo()
	transfers := newFakeTransferRepo()
	txm := newFakeTxManager(levels, stockIn, stockOut, transfers)

	svc := NewService(Config{
		TxManager: txm,
		StockIn:   stockIn,
		StockOut:  stockOut,
		Transfers: transfers,
		Levels:    levels,
	})

	return &ledgerFixture{
		svc:       svc,
		levels:    levels,
		stockIn:   stockIn,
		stockOut:  stockOut,
		transfers: transfers,
	}
}

func newStockIn(productID, warehouseID id.ID, qty int64, reference string) *StockIn {
	return &StockIn{
		BaseEntity:    entity.NewBaseEntity(),
		Date:          time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		ProductID:     productID,
		WarehouseID:   warehouseID,
		Quantity:      qty,
		ReferenceCode: reference,
	}
}

func newStockOut(productID, warehouseID id.ID, qty int64, reference string) *StockOut {
	return &StockOut{
		BaseEntity:    entity.NewBaseEntity(),
		Date:          time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		ProductID:     productID,
		WarehouseID:   warehouseID,
		Quantity:      qty,
		ReferenceCode: reference,
	}
}

// journalSum computes the ledger invariant input for one pair:
// sum of inbound quantities minus sum of outbound quantities.
func (f *ledgerFixture) journalSum(t *testing.T, productID, warehouseID id.ID) int64 {
	t.Helper()
	ctx := context.Background()

	var sum int64
	ins, err := f.stockIn.List(ctx, MovementFilter{})
	require.NoError(t, err)
	for _, m := range ins {
		if m.ProductID == productID && m.WarehouseID == warehouseID {
			sum += m.Quantity
		}
	}
	outs, err := f.stockOut.List(ctx, MovementFilter{})
	require.NoError(t, err)
	for _, m := range outs {
		if m.ProductID == productID && m.WarehouseID == warehouseID {
			sum -= m.Quantity
		}
	}
	return sum
}

func TestCreateStockIn_IncreasesLevel(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	productID, warehouseID := id.New(), id.New()

	created, err := f.svc.CreateStockIn(ctx, newStockIn(productID, warehouseID, 5, "IN-001"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), f.levels.quantity(productID, warehouseID))
	assert.Equal(t, f.journalSum(t, productID, warehouseID), f.levels.quantity(productID, warehouseID))

	// Round-trip: deleting the movement restores the prior quantity.
	require.NoError(t, f.svc.DeleteStockIn(ctx, created.ID))
	assert.Equal(t, int64(0), f.levels.quantity(productID, warehouseID))
}

func TestCreateStockIn_RejectsNonPositiveQuantity(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()

	_, err := f.svc.CreateStockIn(ctx, newStockIn(id.New(), id.New(), 0, "IN-002"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	_, err = f.svc.CreateStockIn(ctx, newStockIn(id.New(), id.New(), -3, "IN-003"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestCreateStockIn_DuplicateReference(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	productID, warehouseID := id.New(), id.New()

	_, err := f.svc.CreateStockIn(ctx, newStockIn(productID, warehouseID, 5, "IN-010"))
	require.NoError(t, err)

	_, err = f.svc.CreateStockIn(ctx, newStockIn(productID, warehouseID, 3, "IN-010"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeDuplicateReference))

	// The failed create must not have touched the level.
	assert.Equal(t, int64(5), f.levels.quantity(productID, warehouseID))
}

func TestCreateStockIn_DuplicateReference_Racing(t *testing.T) {
	f := newLedgerFixture()
	productID, warehouseID := id.New(), id.New()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.CreateStockIn(context.Background(), newStockIn(productID, warehouseID, 5, "IN-RACE"))
		}(i)
	}
	wg.Wait()

	var dup, ok int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case apperror.IsCode(err, apperror.CodeDuplicateReference):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactly one create must succeed")
	assert.Equal(t, 1, dup, "the other must fail with DuplicateReference")
	assert.Equal(t, int64(5), f.levels.quantity(productID, warehouseID))
}

func TestCreateStockOut_InsufficientStock_RollsBackInsert(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	productID, warehouseID := id.New(), id.New()

	_, err := f.svc.CreateStockIn(ctx, newStockIn(productID, warehouseID, 4, "IN-020"))
	require.NoError(t, err)

	_, err = f.svc.CreateStockOut(ctx, newStockOut(productID, warehouseID, 10, "OUT-020"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))

	// Whole operation rolled back: no journal entry, level unchanged.
	outs, err := f.stockOut.List(ctx, MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, outs)
	assert.Equal(t, int64(4), f.levels.quantity(productID, warehouseID))
}

func TestCreateStockOut_RacingWithdrawals(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	productID, warehouseID := id.New(), id.New()

	_, err := f.svc.CreateStockIn(ctx, newStockIn(productID, warehouseID, 10, "IN-030"))
	require.NoError(t, err)

	// Two concurrent withdrawals of 6 against 10 on hand: exactly one
	// succeeds, the other fails, the final quantity is 4, never negative.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	refs := []string{"OUT-030A", "OUT-030B"}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.CreateStockOut(context.Background(), newStockOut(productID, warehouseID, 6, refs[i]))
		}(i)
	}
	wg.Wait()

	var insufficient, ok int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case apperror.IsCode(err, apperror.CodeInsufficientStock):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, int64(4), f.levels.quantity(productID, warehouseID))
	assert.Equal(t, f.journalSum(t, productID, warehouseID), f.levels.quantity(productID, warehouseID))
}

func TestUpdateStockIn_MoveBetweenPairs(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	productID, w1, w2 := id.New(), id.New(), id.New()

	created, err := f.svc.CreateStockIn(ctx, newStockIn(productID, w1, 5, "IN-040"))
	require.NoError(t, err)
	require.Equal(t, int64(5), f.levels.quantity(productID, w1))

	updated := *created
	updated.WarehouseID = w2
	_, err = f.svc.UpdateStockIn(ctx, &updated)
	require.NoError(t, err)

	assert.Equal(t, int64(0), f.levels.quantity(productID, w1))
	assert.Equal(t, int64(5), f.levels.quantity(productID, w2))
	assert.Equal(t, f.journalSum(t, productID, w1), f.levels.quantity(productID, w1))
	assert.Equal(t, f.journalSum(t, productID, w2), f.levels.quantity(productID, w2))
}

func TestUpdateStockIn_InsufficientStock_LeavesEverythingUntouched(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	productID, warehouseID := id.New(), id.New()

	created, err := f.svc.CreateStockIn(ctx, newStockIn(productID, warehouseID, 5, "IN-050"))
	require.NoError(t, err)
	// Consume the received quantity so the receipt can no longer shrink.
	_, err = f.svc.CreateStockOut(ctx, newStockOut(productID, warehouseID, 4, "OUT-050"))
	require.NoError(t, err)
	require.Equal(t, int64(1), f.levels.quantity(productID, warehouseID))

	updated := *created
	updated.Quantity = 2 // reversing -5 would leave 1-5 < 0
	_, err = f.svc.UpdateStockIn(ctx, &updated)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))

	// Atomicity: journal record and level exactly as before the call.
	current, err := f.svc.GetStockIn(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), current.Quantity)
	assert.Equal(t, int64(1), f.levels.quantity(productID, warehouseID))
}

func TestUpdateStockIn_DuplicateReference(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	productID, warehouseID := id.New(), id.New()

	_, err := f.svc.CreateStockIn(ctx, newStockIn(productID, warehouseID, 5, "IN-060"))
	require.NoError(t, err)
	second, err := f.svc.CreateStockIn(ctx, newStockIn(productID, warehouseID, 3, "IN-061"))
	require.NoError(t, err)

	updated := *second
	updated.ReferenceCode = "IN-060"
	_, err = f.svc.UpdateStockIn(ctx, &updated)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeDuplicateReference))

	// Rolled back: level still reflects both receipts.
	assert.Equal(t, int64(8), f.levels.quantity(productID, warehouseID))
}

func TestUpdateStockIn_KeepingOwnReference(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	productID, warehouseID := id.New(), id.New()

	created, err := f.svc.CreateStockIn(ctx, newStockIn(productID, warehouseID, 5, "IN-070"))
	require.NoError(t, err)

	updated := *created
	updated.Quantity = 8
	_, err = f.svc.UpdateStockIn(ctx, &updated)
	require.NoError(t, err)
	assert.Equal(t, int64(8), f.levels.quantity(productID, warehouseID))
}

func TestDeleteStockIn_InsufficientStock(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	productID, warehouseID := id.New(), id.New()

	created, err := f.svc.CreateStockIn(ctx, newStockIn(productID, warehouseID, 5, "IN-080"))
	require.NoError(t, err)
	_, err = f.svc.CreateStockOut(ctx, newStockOut(productID, warehouseID, 3, "OUT-080"))
	require.NoError(t, err)

	// Reversing the receipt would drive 2-5 below zero.
	err = f.svc.DeleteStockIn(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))

	// Untouched on failure.
	_, err = f.svc.GetStockIn(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), f.levels.quantity(productID, warehouseID))
}

func TestDeleteStockOut_RestoresLevel(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	productID, warehouseID := id.New(), id.New()

	_, err := f.svc.CreateStockIn(ctx, newStockIn(productID, warehouseID, 10, "IN-090"))
	require.NoError(t, err)
	created, err := f.svc.CreateStockOut(ctx, newStockOut(productID, warehouseID, 4, "OUT-090"))
	require.NoError(t, err)
	require.Equal(t, int64(6), f.levels.quantity(productID, warehouseID))

	require.NoError(t, f.svc.DeleteStockOut(ctx, created.ID))
	assert.Equal(t, int64(10), f.levels.quantity(productID, warehouseID))
}

func TestMovementOps_NotFound(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()

	_, err := f.svc.GetStockIn(ctx, id.New())
	assert.True(t, apperror.IsNotFound(err))

	err = f.svc.DeleteStockOut(ctx, id.New())
	assert.True(t, apperror.IsNotFound(err))

	missing := newStockIn(id.New(), id.New(), 5, "IN-100")
	_, err = f.svc.UpdateStockIn(ctx, missing)
	assert.True(t, apperror.IsNotFound(err))
}

// --- Transfers ---

func newTransfer(productID, from, to id.ID, qty int64, reference string) *Transfer {
	return &Transfer{
		BaseEntity:      entity.NewBaseEntity(),
		Date:            time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		ProductID:       productID,
		FromWarehouseID: from,
		ToWarehouseID:   to,
		Quantity:        qty,
		ReferenceCode:   reference,
		Status:          TransferPending,
	}
}

func TestCreateTransfer_DoesNotMoveStock(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	productID, from, to := id.New(), id.New(), id.New()

	_, err := f.svc.CreateStockIn(ctx, newStockIn(productID, from, 10, "IN-110"))
	require.NoError(t, err)

	created, err := f.svc.CreateTransfer(ctx, newTransfer(productID, from, to, 4, "TR-110"))
	require.NoError(t, err)
	assert.Equal(t, TransferPending, created.Status)

	// Status is a plain attribute: no level changes on any transition.
	updated := *created
	updated.Status = TransferCompleted
	_, err = f.svc.UpdateTransfer(ctx, &updated)
	require.NoError(t, err)

	assert.Equal(t, int64(10), f.levels.quantity(productID, from))
	assert.Equal(t, int64(0), f.levels.quantity(productID, to))
}

func TestCreateTransfer_Validation(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	productID, warehouseID := id.New(), id.New()

	// Same source and destination.
	_, err := f.svc.CreateTransfer(ctx, newTransfer(productID, warehouseID, warehouseID, 4, "TR-120"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	bad := newTransfer(productID, warehouseID, id.New(), 4, "TR-121")
	bad.Status = TransferStatus("shipped")
	_, err = f.svc.CreateTransfer(ctx, bad)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestCreateTransfer_DuplicateReference(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()
	productID := id.New()

	_, err := f.svc.CreateTransfer(ctx, newTransfer(productID, id.New(), id.New(), 4, "TR-130"))
	require.NoError(t, err)

	_, err = f.svc.CreateTransfer(ctx, newTransfer(productID, id.New(), id.New(), 2, "TR-130"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeDuplicateReference))
}

func TestDeleteTransfer(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()

	created, err := f.svc.CreateTransfer(ctx, newTransfer(id.New(), id.New(), id.New(), 4, "TR-140"))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteTransfer(ctx, created.ID))

	_, err = f.svc.GetTransfer(ctx, created.ID)
	assert.True(t, apperror.IsNotFound(err))
}
