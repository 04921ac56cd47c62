//go:build integration || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"seatly/internal/domain/reservation"
	"seatly/internal/infra/repository"
	"seatly/tests/common/builder"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// SeedVenue writes the builder's bar, match and promotions.
func SeedVenue(t *testing.T, db DBLike, v *builder.VenueBuilder) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, v.Seed(ctx, repository.NewCatalogRepository(db)))
}

// CreateTestReservation inserts a reservation exactly as built, bypassing checkout.
func CreateTestReservation(t *testing.T, db DBLike, b *builder.ReservationBuilder) *reservation.Reservation {
	t.Helper()

	r := b.BuildReconstructed()
	err := repository.NewReservationRepository(db).Create(context.Background(), r)
	require.NoError(t, err)
	return r
}

type ReservationRow struct {
	Status    string
	Paid      bool
	TableIDs  []string
	PaymentID *string
	Version   int64
}

func GetReservationRow(t *testing.T, db DBLike, id string) ReservationRow {
	t.Helper()

	var row ReservationRow
	err := db.QueryRow(context.Background(),
		"SELECT status, paid, table_ids, payment_id, version FROM reservations WHERE id = $1", id).
		Scan(&row.Status, &row.Paid, &row.TableIDs, &row.PaymentID, &row.Version)
	require.NoError(t, err)
	return row
}

func GetFenceVersion(t *testing.T, db DBLike, barID, matchID string) int64 {
	t.Helper()

	var version int64
	err := db.QueryRow(context.Background(),
		"SELECT COALESCE((SELECT version FROM slot_fences WHERE bar_id = $1 AND match_id = $2), 0)", barID, matchID).
		Scan(&version)
	require.NoError(t, err)
	return version
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
