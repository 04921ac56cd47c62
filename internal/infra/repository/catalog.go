package repository

import (
	"context"

	"seatly/internal/domain/venue"
	"seatly/internal/infra"
	"seatly/internal/pkg/pgconv"
)

const upsertBar = `INSERT INTO bars (id, name, location, lat, lng, capacity)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name, location = EXCLUDED.location, lat = EXCLUDED.lat,
    lng = EXCLUDED.lng, capacity = EXCLUDED.capacity`

const upsertTable = `INSERT INTO bar_tables (bar_id, id, capacity, status, position)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (bar_id, id) DO UPDATE
SET capacity = EXCLUDED.capacity, status = EXCLUDED.status, position = EXCLUDED.position`

const upsertMatch = `INSERT INTO matches (id, teams, date, sport, league)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET teams = EXCLUDED.teams, date = EXCLUDED.date, sport = EXCLUDED.sport, league = EXCLUDED.league`

const deleteBroadcasts = `DELETE FROM match_broadcast_bars WHERE match_id = $1`

const insertBroadcast = `INSERT INTO match_broadcast_bars (match_id, bar_id, table_ids, promotion_id, position)
VALUES ($1, $2, $3, $4, $5)`

const upsertPromotion = `INSERT INTO promotions (id, bar_id, match_id, price_cents, included)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (bar_id, id) DO UPDATE
SET match_id = EXCLUDED.match_id, price_cents = EXCLUDED.price_cents, included = EXCLUDED.included`

// CatalogRepository writes the bar and match catalogue. The reconciliation
// engine never calls it; it backs seeding and tests.
type CatalogRepository struct {
	db DBTX
}

func NewCatalogRepository(db DBTX) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) PutBar(ctx context.Context, bar venue.Bar, tables []venue.Table) error {
	_, err := r.db.Exec(ctx, upsertBar,
		bar.ID, bar.Name, bar.Location, bar.Coordinates.Lat, bar.Coordinates.Lng, bar.Capacity)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert bar", err)
	}
	for i, t := range tables {
		var status *string
		if t.Status != "" {
			s := string(t.Status)
			status = &s
		}
		if _, err := r.db.Exec(ctx, upsertTable, bar.ID, t.ID, t.Capacity, pgconv.TextFromPtr(status), i); err != nil {
			return infra.WrapRepoErr("failed to upsert table", err)
		}
	}
	return nil
}

func (r *CatalogRepository) PutMatch(ctx context.Context, m venue.Match) error {
	if _, err := r.db.Exec(ctx, upsertMatch, m.ID, m.Teams, pgconv.Timestamptz(m.Date), m.Sport, m.League); err != nil {
		return infra.WrapRepoErr("failed to upsert match", err)
	}
	if _, err := r.db.Exec(ctx, deleteBroadcasts, m.ID); err != nil {
		return infra.WrapRepoErr("failed to reset broadcast bars", err)
	}
	for i, bb := range m.BroadcastBars {
		_, err := r.db.Exec(ctx, insertBroadcast,
			m.ID, bb.BarID, pgconv.NonNilStrings(bb.TableIDs), pgconv.TextFromPtr(bb.PromotionID), i)
		if err != nil {
			return infra.WrapRepoErr("failed to insert broadcast bar", err)
		}
	}
	return nil
}

func (r *CatalogRepository) PutPromotion(ctx context.Context, p venue.Promotion) error {
	_, err := r.db.Exec(ctx, upsertPromotion,
		p.ID, p.BarID, pgconv.TextFromPtr(p.MatchID), pgconv.Int8FromPtr(p.PriceCents), pgconv.NonNilStrings(p.Included))
	if err != nil {
		return infra.WrapRepoErr("failed to upsert promotion", err)
	}
	return nil
}
