package uow

import (
	"context"
	"errors"
	"log/slog"

	"seatly/internal/infra/repository"
	"seatly/internal/pkg/config"
	"seatly/internal/pkg/errs"
	"seatly/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUoW struct {
	pool  *pgxpool.Pool
	reads *repository.Reads
	retry retryPolicy
}

func NewPostgresUoW(pool *pgxpool.Pool, cfg config.FinalizeConfig) shared.UnitOfWork {
	return &PostgresUoW{
		pool:  pool,
		reads: repository.NewReads(pool),
		retry: newRetryPolicy(cfg),
	}
}

// ReadCommitted is enough: the slot fence and reservation version turn lost
// updates into conflicts that retry the whole transaction.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.retry.run(ctx, func() error {
		return u.runOnce(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
	})
}

func (u *PostgresUoW) Reads() shared.Reads {
	return u.reads
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runOnce(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	err = fn(ctx, newPgTx(pgxTx))
	if err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}

	if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
		if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("rollback failed", "error", rollbackErr.Error())
		}
	}
	return err
}

type pgTx struct {
	reads        *repository.Reads
	reservations *repository.ReservationRepository
	slots        *repository.SlotFenceRepository
}

func newPgTx(db repository.DBTX) *pgTx {
	return &pgTx{
		reads:        repository.NewReads(db),
		reservations: repository.NewReservationRepository(db),
		slots:        repository.NewSlotFenceRepository(db),
	}
}

func (t *pgTx) Reads() shared.Reads                    { return t.reads }
func (t *pgTx) Reservations() shared.ReservationWriter { return t.reservations }
func (t *pgTx) Slots() shared.SlotFence                { return t.slots }
