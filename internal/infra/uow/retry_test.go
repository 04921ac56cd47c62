//go:build unit

package uow

import (
	"context"
	"testing"
	"time"

	"seatly/internal/infra"
	"seatly/internal/infra/memstore"
	"seatly/internal/pkg/config"
	"seatly/internal/pkg/errs"
	"seatly/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "conditional write conflict", err: infra.WrapRepoErr("stale", nil, infra.KindConflict), want: true},
		{name: "serialization failure", err: &pgconn.PgError{Code: pgErrCodeSerializationFailure}, want: true},
		{name: "deadlock", err: &pgconn.PgError{Code: pgErrCodeDeadlockDetected}, want: true},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}},
		{name: "not found", err: infra.WrapRepoErr("gone", nil, infra.KindNotFound)},
		{name: "plain error", err: assert.AnError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	base := 10 * time.Millisecond
	for attempt := 0; attempt < 4; attempt++ {
		want := time.Duration(1<<attempt) * base
		got := calculateBackoff(attempt, base)
		assert.GreaterOrEqual(t, got, want)
		assert.Less(t, got, want+want/5+time.Nanosecond)
	}
}

func TestRetryPolicy_Run(t *testing.T) {
	conflict := infra.WrapRepoErr("stale", nil, infra.KindConflict)
	policy := newRetryPolicy(config.FinalizeConfig{MaxRetries: 2, BaseBackoff: time.Microsecond})

	t.Run("succeeds after conflicts", func(t *testing.T) {
		calls := 0
		err := policy.run(context.Background(), func() error {
			calls++
			if calls < 3 {
				return conflict
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after the budget", func(t *testing.T) {
		calls := 0
		err := policy.run(context.Background(), func() error {
			calls++
			return conflict
		})
		require.Error(t, err)
		assert.True(t, errs.Is(err, errMaxRetriesExceeded))
		assert.True(t, infra.IsKind(err, infra.KindConflict))
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry other errors", func(t *testing.T) {
		calls := 0
		err := policy.run(context.Background(), func() error {
			calls++
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when the context ends", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		slow := newRetryPolicy(config.FinalizeConfig{MaxRetries: 5, BaseBackoff: time.Hour})
		err := slow.run(ctx, func() error {
			cancel()
			return conflict
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestMemoryUoW_RetriesLostFenceRace(t *testing.T) {
	store := memstore.New()
	key := shared.SlotKey{BarID: "bar-1", MatchID: "match-1"}
	u := NewMemoryUoW(store, config.FinalizeConfig{MaxRetries: 3, BaseBackoff: time.Microsecond})

	attempts := 0
	err := u.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		attempts++
		v, err := tx.Slots().Read(ctx, key)
		if err != nil {
			return err
		}
		if attempts == 1 {
			// a competing transaction commits between read and commit
			require.NoError(t, store.Commit(&memstore.Batch{Fences: map[shared.SlotKey]int64{key: v}}))
		}
		return tx.Slots().Advance(ctx, key, v)
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, int64(2), store.Fence(key))
}
