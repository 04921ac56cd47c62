package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"seatly/internal/infra"
	"seatly/internal/pkg/config"
	"seatly/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type retryPolicy struct {
	maxRetries int
	base       time.Duration
}

func newRetryPolicy(cfg config.FinalizeConfig) retryPolicy {
	p := retryPolicy{maxRetries: cfg.MaxRetries, base: cfg.BaseBackoff}
	if p.maxRetries < 0 {
		p.maxRetries = 0
	}
	if p.base <= 0 {
		p.base = 100 * time.Millisecond
	}
	return p
}

// run calls attempt until it succeeds, fails with a non-retryable error or
// the retry budget is spent.
func (p retryPolicy) run(ctx context.Context, attempt func() error) error {
	for n := 0; n <= p.maxRetries; n++ {
		err := attempt()
		if err == nil {
			return nil
		}

		if !shouldRetry(err, n, p.maxRetries) {
			if n == p.maxRetries && isRetryableError(err) {
				slog.Error("transaction failed after max retries",
					"attempts", n+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(n, p.base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", n+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

// Conditional-write conflicts and Postgres serialization failures both mean
// another transaction won; the whole read-plan-write sequence runs again.
func isRetryableError(err error) bool {
	if infra.IsKind(err, infra.KindConflict) {
		return true
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}
