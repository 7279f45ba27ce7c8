package stocklevel

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
)

type pairKey struct {
	productID   id.ID
	warehouseID id.ID
}

// fakeRepo is an in-memory Repository. Movement references are seeded
// directly by tests via the movements set.
type fakeRepo struct {
	mu        sync.Mutex
	byID      map[id.ID]Level
	movements map[pairKey]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:      make(map[id.ID]Level),
		movements: make(map[pairKey]bool),
	}
}

func (f *fakeRepo) GetByID(ctx context.Context, levelID id.ID) (*Level, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.byID[levelID]
	if !ok {
		return nil, apperror.NewNotFound("stock level", levelID.String())
	}
	copied := rec
	return &copied, nil
}

func (f *fakeRepo) GetByPair(ctx context.Context, productID, warehouseID id.ID) (*Level, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.byID {
		if rec.ProductID == productID && rec.WarehouseID == warehouseID {
			copied := rec
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFound("stock level", productID.String())
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) ([]*Level, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*Level, 0, len(f.byID))
	for _, rec := range f.byID {
		copied := rec
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeRepo) Create(ctx context.Context, level *Level) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.byID {
		if rec.ProductID == level.ProductID && rec.WarehouseID == level.WarehouseID {
			return apperror.NewDuplicatePair(level.ProductID.String(), level.WarehouseID.String())
		}
	}
	f.byID[level.ID] = *level
	return nil
}

func (f *fakeRepo) Adjust(ctx context.Context, productID, warehouseID id.ID, delta int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for levelID, rec := range f.byID {
		if rec.ProductID == productID && rec.WarehouseID == warehouseID {
			next := rec.Quantity + delta
			if next < 0 {
				return 0, apperror.NewInsufficientStock(productID.String(), warehouseID.String(), -delta, rec.Quantity)
			}
			rec.Quantity = next
			f.byID[levelID] = rec
			return next, nil
		}
	}
	if delta < 0 {
		return 0, apperror.NewInsufficientStock(productID.String(), warehouseID.String(), -delta, 0)
	}
	level := NewLevel(productID, warehouseID, delta)
	f.byID[level.ID] = *level
	return delta, nil
}

func (f *fakeRepo) SetQuantity(ctx context.Context, levelID id.ID, quantity int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.byID[levelID]
	if !ok {
		return apperror.NewNotFound("stock level", levelID.String())
	}
	rec.Quantity = quantity
	f.byID[levelID] = rec
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, levelID id.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[levelID]; !ok {
		return apperror.NewNotFound("stock level", levelID.String())
	}
	delete(f.byID, levelID)
	return nil
}

func (f *fakeRepo) HasMovements(ctx context.Context, productID, warehouseID id.ID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.movements[pairKey{productID, warehouseID}], nil
}

// passthroughTxManager runs the function directly; rollback semantics are
// covered by the ledger engine tests.
type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newFixture() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, passthroughTxManager{}), repo
}

func TestCreate_ClampsNegativeToZero(t *testing.T) {
	svc, _ := newFixture()
	ctx := context.Background()

	level, err := svc.Create(ctx, id.New(), id.New(), -7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), level.Quantity)
}

func TestCreate_DuplicatePair(t *testing.T) {
	svc, _ := newFixture()
	ctx := context.Background()
	productID, warehouseID := id.New(), id.New()

	_, err := svc.Create(ctx, productID, warehouseID, 10)
	require.NoError(t, err)

	_, err = svc.Create(ctx, productID, warehouseID, 3)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeDuplicatePair))
}

func TestCreate_MissingIDs(t *testing.T) {
	svc, _ := newFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, id.Nil(), id.New(), 1)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	_, err = svc.Create(ctx, id.New(), id.Nil(), 1)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestUpdate_ClampsNegativeToZero(t *testing.T) {
	svc, _ := newFixture()
	ctx := context.Background()

	level, err := svc.Create(ctx, id.New(), id.New(), 10)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, level.ID, -5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated.Quantity)

	got, err := svc.Get(ctx, level.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Quantity)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newFixture()

	_, err := svc.Update(context.Background(), id.New(), 5)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDelete_StillReferenced(t *testing.T) {
	svc, repo := newFixture()
	ctx := context.Background()
	productID, warehouseID := id.New(), id.New()

	level, err := svc.Create(ctx, productID, warehouseID, 10)
	require.NoError(t, err)

	repo.movements[pairKey{productID, warehouseID}] = true

	err = svc.Delete(ctx, level.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeStillReferenced))

	// Still there.
	_, err = svc.Get(ctx, level.ID)
	require.NoError(t, err)
}

func TestDelete_Unreferenced(t *testing.T) {
	svc, _ := newFixture()
	ctx := context.Background()

	level, err := svc.Create(ctx, id.New(), id.New(), 10)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, level.ID))

	_, err = svc.Get(ctx, level.ID)
	assert.True(t, apperror.IsNotFound(err))
}
