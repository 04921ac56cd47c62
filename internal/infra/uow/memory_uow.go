package uow

import (
	"context"

	"seatly/internal/domain/reservation"
	"seatly/internal/infra/memstore"
	"seatly/internal/pkg/config"
	"seatly/internal/usecase/shared"
)

type MemoryUoW struct {
	store *memstore.Store
	retry retryPolicy
}

func NewMemoryUoW(store *memstore.Store, cfg config.FinalizeConfig) shared.UnitOfWork {
	return &MemoryUoW{store: store, retry: newRetryPolicy(cfg)}
}

// Reads inside a transaction see committed state; the write set is validated
// against it again at commit.
func (u *MemoryUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.retry.run(ctx, func() error {
		tx := &memTx{store: u.store, batch: &memstore.Batch{}}
		if err := fn(ctx, tx); err != nil {
			return err
		}
		return u.store.Commit(tx.batch)
	})
}

func (u *MemoryUoW) Reads() shared.Reads {
	return u.store
}

type memTx struct {
	store *memstore.Store
	batch *memstore.Batch
}

func (t *memTx) Reads() shared.Reads                    { return t.store }
func (t *memTx) Reservations() shared.ReservationWriter { return memWriter{t.batch} }
func (t *memTx) Slots() shared.SlotFence                { return memFence{t} }

type memWriter struct {
	batch *memstore.Batch
}

func (w memWriter) Create(_ context.Context, r *reservation.Reservation) error {
	w.batch.Creates = append(w.batch.Creates, r.Snapshot())
	return nil
}

func (w memWriter) Update(_ context.Context, r *reservation.Reservation) error {
	w.batch.Updates = append(w.batch.Updates, r.Snapshot())
	return nil
}

type memFence struct {
	tx *memTx
}

func (f memFence) Read(_ context.Context, key shared.SlotKey) (int64, error) {
	return f.tx.store.Fence(key), nil
}

func (f memFence) Advance(_ context.Context, key shared.SlotKey, expected int64) error {
	if f.tx.batch.Fences == nil {
		f.tx.batch.Fences = make(map[shared.SlotKey]int64)
	}
	f.tx.batch.Fences[key] = expected
	return nil
}
