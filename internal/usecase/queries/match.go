package queries

//go:generate mockgen -source=match.go -destination=../../../tests/mock/queries/match.go -package=queriesmock

import (
	"context"
	"sort"
	"time"

	"seatly/internal/domain/tableassign"
	"seatly/internal/pkg/errs"
	"seatly/internal/usecase/shared"
)

type MatchView struct {
	ID       string    `json:"id"`
	Teams    string    `json:"teams"`
	Date     time.Time `json:"date"`
	Sport    string    `json:"sport"`
	League   string    `json:"league"`
	BarCount int       `json:"bar_count"`
}

type BarAvailabilityView struct {
	BarID      string   `json:"bar_id"`
	Name       string   `json:"name"`
	Location   string   `json:"location"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	PriceCents *int64   `json:"price_cents,omitempty"`
	Included   []string `json:"included,omitempty"`
	FreeSeats  int      `json:"free_seats"`
}

type AvailabilityView struct {
	BarID     string   `json:"bar_id"`
	MatchID   string   `json:"match_id"`
	People    int      `json:"people"`
	Available bool     `json:"available"`
	FreeSeats int      `json:"free_seats"`
	TableIDs  []string `json:"table_ids,omitempty"`
}

type MatchQueries interface {
	ListMatches(ctx context.Context, from time.Time) ([]*MatchView, error)
	ListBarsForMatch(ctx context.Context, matchID string) ([]*BarAvailabilityView, error)
	CheckAvailability(ctx context.Context, barID, matchID string, people int) (*AvailabilityView, error)
}

type matchQueriesImpl struct {
	reads shared.Reads
}

func NewMatchQueries(uow shared.UnitOfWork) MatchQueries {
	return &matchQueriesImpl{reads: uow.Reads()}
}

// ListMatches returns matches starting at or after from, soonest first.
func (q *matchQueriesImpl) ListMatches(ctx context.Context, from time.Time) ([]*MatchView, error) {
	matches, err := q.reads.ListMatches(ctx)
	if err != nil {
		return nil, shared.StoreError(err)
	}
	out := make([]*MatchView, 0, len(matches))
	for _, m := range matches {
		if !from.IsZero() && m.Date.Before(from) {
			continue
		}
		out = append(out, &MatchView{
			ID:       m.ID,
			Teams:    m.Teams,
			Date:     m.Date,
			Sport:    m.Sport,
			League:   m.League,
			BarCount: len(m.BroadcastBars),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (q *matchQueriesImpl) ListBarsForMatch(ctx context.Context, matchID string) ([]*BarAvailabilityView, error) {
	match, err := q.reads.MatchByID(ctx, matchID)
	if err != nil {
		return nil, shared.StoreError(err)
	}

	out := make([]*BarAvailabilityView, 0, len(match.BroadcastBars))
	for _, bb := range match.BroadcastBars {
		bar, err := q.reads.BarByID(ctx, bb.BarID)
		if err != nil {
			return nil, shared.StoreError(err)
		}
		promo, err := q.reads.PromotionFor(ctx, bb.BarID, matchID, bb.PromotionID)
		if err != nil {
			return nil, shared.StoreError(err)
		}
		free, err := shared.FreeCandidates(ctx, q.reads, bb.BarID, match, "")
		if err != nil {
			return nil, shared.StoreError(err)
		}

		view := &BarAvailabilityView{
			BarID:     bar.ID,
			Name:      bar.Name,
			Location:  bar.Location,
			Lat:       bar.Coordinates.Lat,
			Lng:       bar.Coordinates.Lng,
			FreeSeats: tableassign.FreeSeats(free),
		}
		if promo != nil {
			view.PriceCents = promo.PriceCents
			view.Included = promo.Included
		}
		out = append(out, view)
	}
	return out, nil
}

// CheckAvailability runs the same selection finalize will run, without claiming anything.
func (q *matchQueriesImpl) CheckAvailability(ctx context.Context, barID, matchID string, people int) (*AvailabilityView, error) {
	if people <= 0 {
		return nil, errs.Mark(errs.Newf("people must be positive, got %d", people), errs.ErrInvalidInput)
	}
	match, err := q.reads.MatchByID(ctx, matchID)
	if err != nil {
		return nil, shared.StoreError(err)
	}
	if _, ok := match.BroadcastFor(barID); !ok {
		return nil, errs.Mark(errs.Newf("bar %s does not broadcast match %s", barID, matchID), errs.ErrNotFound)
	}
	free, err := shared.FreeCandidates(ctx, q.reads, barID, match, "")
	if err != nil {
		return nil, shared.StoreError(err)
	}

	view := &AvailabilityView{
		BarID:     barID,
		MatchID:   matchID,
		People:    people,
		FreeSeats: tableassign.FreeSeats(free),
	}
	if res, err := tableassign.Assign(free, people); err == nil {
		view.Available = true
		view.TableIDs = res.TableIDs
	}
	return view, nil
}
