package ledger

import (
	"context"
	"sync"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
)

// pairKey identifies one (product, warehouse) stock level.
type pairKey struct {
	productID   id.ID
	warehouseID id.ID
}

// snapshotter is implemented by fakes that support transactional rollback.
type snapshotter interface {
	snapshot() any
	restore(state any)
}

// fakeTxManager simulates the transactional guarantees the engine relies
// on: a global lock serializes transactions (standing in for per-pair row
// locks) and every registered store is snapshotted on entry and restored
// when the function fails.
type fakeTxManager struct {
	mu     sync.Mutex
	stores []snapshotter
}

func newFakeTxManager(stores ...snapshotter) *fakeTxManager {
	return &fakeTxManager{stores: stores}
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	states := make([]any, len(m.stores))
	for i, s := range m.stores {
		states[i] = s.snapshot()
	}

	if err := fn(ctx); err != nil {
		for i, s := range m.stores {
			s.restore(states[i])
		}
		return err
	}
	return nil
}

// --- Quantity store fake ---

type fakeLevels struct {
	mu     sync.Mutex
	levels map[pairKey]int64
}

func newFakeLevels() *fakeLevels {
	return &fakeLevels{levels: make(map[pairKey]int64)}
}

func (f *fakeLevels) Adjust(ctx context.Context, productID, warehouseID id.ID, delta int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := pairKey{productID, warehouseID}
	next := f.levels[key] + delta
	if next < 0 {
		return 0, apperror.NewInsufficientStock(productID.String(), warehouseID.String(), -delta, f.levels[key])
	}
	f.levels[key] = next
	return next, nil
}

func (f *fakeLevels) quantity(productID, warehouseID id.ID) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.levels[pairKey{productID, warehouseID}]
}

func (f *fakeLevels) snapshot() any {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := make(map[pairKey]int64, len(f.levels))
	for k, v := range f.levels {
		copied[k] = v
	}
	return copied
}

func (f *fakeLevels) restore(state any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.levels = state.(map[pairKey]int64)
}

// --- Inbound journal fake ---

type fakeStockInRepo struct {
	mu      sync.Mutex
	records map[id.ID]StockIn
}

func newFakeStockInRepo() *fakeStockInRepo {
	return &fakeStockInRepo{records: make(map[id.ID]StockIn)}
}

func (f *fakeStockInRepo) Create(ctx context.Context, m *StockIn) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.ReferenceCode == m.ReferenceCode {
			return apperror.NewDuplicateReference("stock in", m.ReferenceCode)
		}
	}
	f.records[m.ID] = *m
	return nil
}

func (f *fakeStockInRepo) GetByID(ctx context.Context, movementID id.ID) (*StockIn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[movementID]
	if !ok {
		return nil, apperror.NewNotFound("stock in", movementID.String())
	}
	copied := rec
	return &copied, nil
}

func (f *fakeStockInRepo) Update(ctx context.Context, m *StockIn) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[m.ID]; !ok {
		return apperror.NewNotFound("stock in", m.ID.String())
	}
	for otherID, rec := range f.records {
		if otherID != m.ID && rec.ReferenceCode == m.ReferenceCode {
			return apperror.NewDuplicateReference("stock in", m.ReferenceCode)
		}
	}
	f.records[m.ID] = *m
	return nil
}

func (f *fakeStockInRepo) Delete(ctx context.Context, movementID id.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[movementID]; !ok {
		return apperror.NewNotFound("stock in", movementID.String())
	}
	delete(f.records, movementID)
	return nil
}

func (f *fakeStockInRepo) List(ctx context.Context, filter MovementFilter) ([]*StockIn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*StockIn, 0, len(f.records))
	for _, rec := range f.records {
		copied := rec
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeStockInRepo) ExistsByReference(ctx context.Context, reference string, excludeID *id.ID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for recID, rec := range f.records {
		if excludeID != nil && recID == *excludeID {
			continue
		}
		if rec.ReferenceCode == reference {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStockInRepo) snapshot() any {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := make(map[id.ID]StockIn, len(f.records))
	for k, v := range f.records {
		copied[k] = v
	}
	return copied
}

func (f *fakeStockInRepo) restore(state any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = state.(map[id.ID]StockIn)
}

// --- Outbound journal fake ---

type fakeStockOutRepo struct {
	mu      sync.Mutex
	records map[id.ID]StockOut
}

func newFakeStockOutRepo() *fakeStockOutRepo {
	return &fakeStockOutRepo{records: make(map[id.ID]StockOut)}
}

func (f *fakeStockOutRepo) Create(ctx context.Context, m *StockOut) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.ReferenceCode == m.ReferenceCode {
			return apperror.NewDuplicateReference("stock out", m.ReferenceCode)
		}
	}
	f.records[m.ID] = *m
	return nil
}

func (f *fakeStockOutRepo) GetByID(ctx context.Context, movementID id.ID) (*StockOut, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[movementID]
	if !ok {
		return nil, apperror.NewNotFound("stock out", movementID.String())
	}
	copied := rec
	return &copied, nil
}

func (f *fakeStockOutRepo) Update(ctx context.Context, m *StockOut) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[m.ID]; !ok {
		return apperror.NewNotFound("stock out", m.ID.String())
	}
	for otherID, rec := range f.records {
		if otherID != m.ID && rec.ReferenceCode == m.ReferenceCode {
			return apperror.NewDuplicateReference("stock out", m.ReferenceCode)
		}
	}
	f.records[m.ID] = *m
	return nil
}

func (f *fakeStockOutRepo) Delete(ctx context.Context, movementID id.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[movementID]; !ok {
		return apperror.NewNotFound("stock out", movementID.String())
	}
	delete(f.records, movementID)
	return nil
}

func (f *fakeStockOutRepo) List(ctx context.Context, filter MovementFilter) ([]*StockOut, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*StockOut, 0, len(f.records))
	for _, rec := range f.records {
		copied := rec
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeStockOutRepo) ExistsByReference(ctx context.Context, reference string, excludeID *id.ID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for recID, rec := range f.records {
		if excludeID != nil && recID == *excludeID {
			continue
		}
		if rec.ReferenceCode == reference {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStockOutRepo) snapshot() any {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := make(map[id.ID]StockOut, len(f.records))
	for k, v := range f.records {
		copied[k] = v
	}
	return copied
}

func (f *fakeStockOutRepo) restore(state any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = state.(map[id.ID]StockOut)
}

// --- Transfer journal fake ---

type fakeTransferRepo struct {
	mu      sync.Mutex
	records map[id.ID]Transfer
}

func newFakeTransferRepo() *fakeTransferRepo {
	return &fakeTransferRepo{records: make(map[id.ID]Transfer)}
}

func (f *fakeTransferRepo) Create(ctx context.Context, t *Transfer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.ReferenceCode == t.ReferenceCode {
			return apperror.NewDuplicateReference("transfer", t.ReferenceCode)
		}
	}
	f.records[t.ID] = *t
	return nil
}

func (f *fakeTransferRepo) GetByID(ctx context.Context, transferID id.ID) (*Transfer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[transferID]
	if !ok {
		return nil, apperror.NewNotFound("transfer", transferID.String())
	}
	copied := rec
	return &copied, nil
}

func (f *fakeTransferRepo) Update(ctx context.Context, t *Transfer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[t.ID]; !ok {
		return apperror.NewNotFound("transfer", t.ID.String())
	}
	f.records[t.ID] = *t
	return nil
}

func (f *fakeTransferRepo) Delete(ctx context.Context, transferID id.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[transferID]; !ok {
		return apperror.NewNotFound("transfer", transferID.String())
	}
	delete(f.records, transferID)
	return nil
}

func (f *fakeTransferRepo) List(ctx context.Context, filter TransferFilter) ([]*Transfer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*Transfer, 0, len(f.records))
	for _, rec := range f.records {
		copied := rec
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeTransferRepo) ExistsByReference(ctx context.Context, reference string, excludeID *id.ID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for recID, rec := range f.records {
		if excludeID != nil && recID == *excludeID {
			continue
		}
		if rec.ReferenceCode == reference {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTransferRepo) snapshot() any {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := make(map[id.ID]Transfer, len(f.records))
	for k, v := range f.records {
		copied[k] = v
	}
	return copied
}

func (f *fakeTransferRepo) restore(state any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = state.(map[id.ID]Transfer)
}
