//go:build unit

package repository

import (
	"context"
	"testing"

	"seatly/internal/infra"
	"seatly/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testSlot = shared.SlotKey{BarID: "bar-1", MatchID: "match-1"}

func TestSlotFenceRepository_Read(t *testing.T) {
	tests := []struct {
		name    string
		row     errRow
		want    int64
		wantErr bool
	}{
		{name: "missing fence reads as zero", row: errRow{err: pgx.ErrNoRows}, want: 0},
		{name: "existing fence", row: errRow{version: 7}, want: 7},
		{name: "database error", row: errRow{err: assert.AnError}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDBTX)
			db.On("QueryRow", mock.Anything, selectFence, []any{"bar-1", "match-1"}).Return(tt.row)

			got, err := NewSlotFenceRepository(db).Read(context.Background(), testSlot)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlotFenceRepository_Advance(t *testing.T) {
	tests := []struct {
		name     string
		tag      pgconn.CommandTag
		execErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "advanced", tag: pgconn.NewCommandTag("INSERT 0 1")},
		{name: "version moved on", tag: pgconn.NewCommandTag("INSERT 0 0"), wantKind: infra.KindConflict},
		{
			name:     "first fence raced",
			execErr:  &pgconn.PgError{Code: pgErrCodeUniqueViolation},
			wantKind: infra.KindConflict,
		},
		{name: "database error", execErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDBTX)
			db.On("Exec", mock.Anything, advanceFence, []any{"bar-1", "match-1", int64(2)}).Return(tt.tag, tt.execErr)

			err := NewSlotFenceRepository(db).Advance(context.Background(), testSlot, 2)

			if tt.wantKind == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tt.wantKind))
		})
	}
}
