package repository

import (
	"context"

	"seatly/internal/domain/venue"
	"seatly/internal/infra"
	"seatly/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

const selectBarByID = `SELECT id, name, location, lat, lng, capacity FROM bars WHERE id = $1`

const selectTablesByBar = `SELECT id, capacity, status FROM bar_tables
WHERE bar_id = $1
ORDER BY position, id`

const selectMatchByID = `SELECT id, teams, date, sport, league FROM matches WHERE id = $1`

const selectMatches = `SELECT id, teams, date, sport, league FROM matches ORDER BY date, id`

const selectBroadcastsByMatch = `SELECT match_id, bar_id, table_ids, promotion_id FROM match_broadcast_bars
WHERE match_id = $1
ORDER BY position, bar_id`

const selectBroadcasts = `SELECT match_id, bar_id, table_ids, promotion_id FROM match_broadcast_bars
ORDER BY match_id, position, bar_id`

const selectMatchPromotion = `SELECT id, bar_id, match_id, price_cents, included FROM promotions
WHERE bar_id = $1 AND match_id = $2`

const selectDefaultPromotion = `SELECT id, bar_id, match_id, price_cents, included FROM promotions
WHERE bar_id = $1 AND id = $2`

type VenueRepository struct {
	db DBTX
}

func NewVenueRepository(db DBTX) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) BarByID(ctx context.Context, id string) (*venue.Bar, error) {
	var b venue.Bar
	err := r.db.QueryRow(ctx, selectBarByID, id).Scan(
		&b.ID, &b.Name, &b.Location, &b.Coordinates.Lat, &b.Coordinates.Lng, &b.Capacity,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("bar not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find bar by ID", err)
	}
	return &b, nil
}

func (r *VenueRepository) TablesByBar(ctx context.Context, barID string) ([]venue.Table, error) {
	rows, err := r.db.Query(ctx, selectTablesByBar, barID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list tables", err)
	}
	defer rows.Close()

	var out []venue.Table
	for rows.Next() {
		var (
			t      venue.Table
			status pgtype.Text
		)
		if err := rows.Scan(&t.ID, &t.Capacity, &status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan table", err)
		}
		if status.Valid {
			t.Status = venue.TableStatus(status.String)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list tables", err)
	}
	return out, nil
}

func (r *VenueRepository) MatchByID(ctx context.Context, id string) (*venue.Match, error) {
	m, err := scanMatch(r.db.QueryRow(ctx, selectMatchByID, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("match not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find match by ID", err)
	}

	byMatch, err := r.broadcasts(ctx, selectBroadcastsByMatch, id)
	if err != nil {
		return nil, err
	}
	m.BroadcastBars = byMatch[id]
	return &m, nil
}

func (r *VenueRepository) ListMatches(ctx context.Context) ([]venue.Match, error) {
	rows, err := r.db.Query(ctx, selectMatches)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list matches", err)
	}
	defer rows.Close()

	var out []venue.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan match", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list matches", err)
	}

	byMatch, err := r.broadcasts(ctx, selectBroadcasts)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].BroadcastBars = byMatch[out[i].ID]
	}
	return out, nil
}

func (r *VenueRepository) PromotionFor(ctx context.Context, barID, matchID string, defaultID *string) (*venue.Promotion, error) {
	p, err := scanPromotion(r.db.QueryRow(ctx, selectMatchPromotion, barID, matchID))
	if err == nil {
		return p, nil
	}
	if !pgconv.IsNoRows(err) {
		return nil, infra.WrapRepoErr("failed to find match promotion", err)
	}
	if defaultID == nil {
		return nil, nil
	}

	p, err = scanPromotion(r.db.QueryRow(ctx, selectDefaultPromotion, barID, *defaultID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find default promotion", err)
	}
	return p, nil
}

func (r *VenueRepository) broadcasts(ctx context.Context, query string, args ...any) (map[string][]venue.BroadcastBar, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list broadcast bars", err)
	}
	defer rows.Close()

	out := make(map[string][]venue.BroadcastBar)
	for rows.Next() {
		var (
			matchID     string
			bb          venue.BroadcastBar
			promotionID pgtype.Text
		)
		if err := rows.Scan(&matchID, &bb.BarID, &bb.TableIDs, &promotionID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan broadcast bar", err)
		}
		bb.PromotionID = pgconv.StringPtrFromPgtype(promotionID)
		out[matchID] = append(out[matchID], bb)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list broadcast bars", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (venue.Match, error) {
	var (
		m    venue.Match
		date pgtype.Timestamptz
	)
	if err := row.Scan(&m.ID, &m.Teams, &date, &m.Sport, &m.League); err != nil {
		return venue.Match{}, err
	}
	if date.Valid {
		m.Date = pgconv.TimeFromPgtype(date)
	}
	return m, nil
}

func scanPromotion(row rowScanner) (*venue.Promotion, error) {
	var (
		p       venue.Promotion
		matchID pgtype.Text
		price   pgtype.Int8
	)
	if err := row.Scan(&p.ID, &p.BarID, &matchID, &price, &p.Included); err != nil {
		return nil, err
	}
	p.MatchID = pgconv.StringPtrFromPgtype(matchID)
	p.PriceCents = pgconv.Int64PtrFromPgtype(price)
	return &p, nil
}
