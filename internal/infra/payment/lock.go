package payment

import (
	"context"
	"log/slog"
	"time"

	"seatly/internal/usecase/commands"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const finalizeLockPrefix = "seatly:finalize:"

// RedisFinalizeLocker holds a redsync mutex per reservation so duplicate
// triggers on different replicas queue behind each other and then replay.
type RedisFinalizeLocker struct {
	rs     *redsync.Redsync
	expiry time.Duration
}

var _ commands.FinalizeLocker = (*RedisFinalizeLocker)(nil)

func NewRedisFinalizeLocker(client *redis.Client, expiry time.Duration) *RedisFinalizeLocker {
	return &RedisFinalizeLocker{
		rs:     redsync.New(goredis.NewPool(client)),
		expiry: expiry,
	}
}

func (l *RedisFinalizeLocker) Lock(ctx context.Context, reservationID string) (func(), error) {
	mutex := l.rs.NewMutex(finalizeLockPrefix+reservationID,
		redsync.WithExpiry(l.expiry),
		redsync.WithTries(20),
		redsync.WithRetryDelay(100*time.Millisecond),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() {
		// The caller's context may already be done; release regardless.
		if _, err := mutex.UnlockContext(context.Background()); err != nil {
			slog.Warn("failed to release finalize lock", "reservation_id", reservationID, "error", err.Error())
		}
	}, nil
}

type NoopFinalizeLocker struct{}

func (NoopFinalizeLocker) Lock(context.Context, string) (func(), error) {
	return func() {}, nil
}
