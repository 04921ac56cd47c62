package repository

import (
	"context"

	"seatly/internal/infra"
	"seatly/internal/pkg/pgconv"
	"seatly/internal/usecase/shared"
)

const selectFence = `SELECT version FROM slot_fences WHERE bar_id = $1 AND match_id = $2`

// A concurrent advance holds the row lock; once it commits the WHERE clause
// sees the new version and this statement affects no row.
const advanceFence = `INSERT INTO slot_fences (bar_id, match_id, version)
VALUES ($1, $2, $3 + 1)
ON CONFLICT (bar_id, match_id) DO UPDATE
SET version = slot_fences.version + 1
WHERE slot_fences.version = $3`

type SlotFenceRepository struct {
	db DBTX
}

func NewSlotFenceRepository(db DBTX) *SlotFenceRepository {
	return &SlotFenceRepository{db: db}
}

func (r *SlotFenceRepository) Read(ctx context.Context, key shared.SlotKey) (int64, error) {
	var version int64
	err := r.db.QueryRow(ctx, selectFence, key.BarID, key.MatchID).Scan(&version)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return 0, nil
		}
		return 0, infra.WrapRepoErr("failed to read slot fence", err)
	}
	return version, nil
}

func (r *SlotFenceRepository) Advance(ctx context.Context, key shared.SlotKey, expected int64) error {
	tag, err := r.db.Exec(ctx, advanceFence, key.BarID, key.MatchID, expected)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("slot fence created concurrently", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to advance slot fence", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("slot fence advanced concurrently", nil, infra.KindConflict)
	}
	return nil
}
