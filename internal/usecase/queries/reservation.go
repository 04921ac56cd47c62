package queries

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation.go -package=queriesmock

import (
	"context"
	"time"

	"seatly/internal/domain/reservation"
	"seatly/internal/pkg/errs"
	"seatly/internal/usecase/shared"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	UserEmail      string     `json:"user_email"`
	BarID          string     `json:"bar_id"`
	BarName        string     `json:"bar_name"`
	MatchID        string     `json:"match_id"`
	MatchTeams     string     `json:"match_teams"`
	MatchDate      *time.Time `json:"match_date,omitempty"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	People         int        `json:"people"`
	PricePerPerson int64      `json:"price_per_person_cents"`
	TotalPrice     int64      `json:"total_price_cents"`
	TableIDs       []string   `json:"table_ids"`
	Status         string     `json:"status"`
	Paid           bool       `json:"paid"`
	PaymentID      *string    `json:"payment_id,omitempty"`
	Source         string     `json:"source"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func NewReservationView(r *reservation.Reservation, matchDate *time.Time) *ReservationView {
	tableIDs := r.TableIDs()
	if tableIDs == nil {
		tableIDs = []string{}
	}
	return &ReservationView{
		ID:             r.ID(),
		UserID:         r.UserID(),
		UserEmail:      r.UserEmail(),
		BarID:          r.BarID(),
		BarName:        r.BarName(),
		MatchID:        r.MatchID(),
		MatchTeams:     r.MatchTeams(),
		MatchDate:      matchDate,
		Name:           r.Name(),
		Phone:          r.Phone(),
		People:         r.People(),
		PricePerPerson: r.PricePerPerson(),
		TotalPrice:     r.TotalPrice(),
		TableIDs:       tableIDs,
		Status:         r.Status().String(),
		Paid:           r.Paid(),
		PaymentID:      r.PaymentID(),
		Source:         r.Source(),
		CreatedAt:      r.CreatedAt(),
		UpdatedAt:      r.UpdatedAt(),
	}
}

type ReservationQueries interface {
	GetByID(ctx context.Context, actorID, id string) (*ReservationView, error)
	ListByUser(ctx context.Context, userID string) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	reads shared.Reads
}

func NewReservationQueries(uow shared.UnitOfWork) ReservationQueries {
	return &reservationQueriesImpl{reads: uow.Reads()}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actorID, id string) (*ReservationView, error) {
	r, err := q.reads.ReservationByID(ctx, id)
	if err != nil {
		return nil, shared.StoreError(err)
	}
	if r.UserID() != actorID {
		return nil, errs.Mark(errs.New("reservation belongs to another user"), errs.ErrForbidden)
	}
	return NewReservationView(r, matchDates(ctx, q.reads).of(r.MatchID())), nil
}

func (q *reservationQueriesImpl) ListByUser(ctx context.Context, userID string) ([]*ReservationView, error) {
	rows, err := q.reads.ReservationsByUser(ctx, userID)
	if err != nil {
		return nil, shared.StoreError(err)
	}
	dates := matchDates(ctx, q.reads)
	out := make([]*ReservationView, 0, len(rows))
	for _, r := range rows {
		out = append(out, NewReservationView(r, dates.of(r.MatchID())))
	}
	return out, nil
}

// matchDateLookup memoizes match dates; a match that cannot be read has no date.
type matchDateLookup struct {
	ctx   context.Context
	reads shared.Reads
	seen  map[string]*time.Time
}

func matchDates(ctx context.Context, reads shared.Reads) *matchDateLookup {
	return &matchDateLookup{ctx: ctx, reads: reads, seen: map[string]*time.Time{}}
}

func (l *matchDateLookup) of(matchID string) *time.Time {
	if d, ok := l.seen[matchID]; ok {
		return d
	}
	var date *time.Time
	if m, err := l.reads.MatchByID(l.ctx, matchID); err == nil && !m.Date.IsZero() {
		d := m.Date
		date = &d
	}
	l.seen[matchID] = date
	return date
}
