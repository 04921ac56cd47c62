package shared

import (
	"context"

	"seatly/internal/domain/reservation"
	"seatly/internal/domain/tableassign"
	"seatly/internal/domain/venue"
)

// UnitOfWork is the store abstraction every use case goes through. Both the
// Postgres and the in-memory store implement it with conditional writes.
type UnitOfWork interface {
	// Within runs fn in one store transaction. Write conflicts abort the
	// transaction and fn is run again from the start.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: committed-state reads outside a transaction
	Reads() Reads
}

type Tx interface {
	Reads() Reads
	Reservations() ReservationWriter
	Slots() SlotFence
}

// Reads return an infra.RepositoryError of kind NOT_FOUND for missing documents.
type Reads interface {
	ReservationByID(ctx context.Context, id string) (*reservation.Reservation, error)
	ReservationsByUser(ctx context.Context, userID string) ([]*reservation.Reservation, error)
	// ClaimingReservations lists table claims of pending and confirmed reservations.
	ClaimingReservations(ctx context.Context, barID, matchID string) ([]tableassign.Claim, error)

	BarByID(ctx context.Context, id string) (*venue.Bar, error)
	TablesByBar(ctx context.Context, barID string) ([]venue.Table, error)
	MatchByID(ctx context.Context, id string) (*venue.Match, error)
	ListMatches(ctx context.Context) ([]venue.Match, error)
	// PromotionFor returns the match promotion of the bar, else the bar default
	// with defaultID, else nil.
	PromotionFor(ctx context.Context, barID, matchID string, defaultID *string) (*venue.Promotion, error)
}

type ReservationWriter interface {
	Create(ctx context.Context, r *reservation.Reservation) error
	// Update writes r only if the stored version still equals r.Version();
	// otherwise it fails with kind CONFLICT.
	Update(ctx context.Context, r *reservation.Reservation) error
}

// SlotKey names the contended resource: the tables of one bar for one match.
type SlotKey struct {
	BarID   string
	MatchID string
}

// SlotFence is the compare-and-swap document that serializes table claims per SlotKey.
type SlotFence interface {
	// Read returns the current fence version, 0 when no claim was ever committed.
	Read(ctx context.Context, key SlotKey) (int64, error)
	// Advance bumps the fence if it still equals expected; otherwise kind CONFLICT.
	Advance(ctx context.Context, key SlotKey, expected int64) error
}
