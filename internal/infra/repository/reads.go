package repository

import (
	"context"

	"seatly/internal/domain/reservation"
	"seatly/internal/domain/tableassign"
	"seatly/internal/usecase/shared"
)

// Reads binds the read side of every repository to one DBTX.
type Reads struct {
	*VenueRepository
	reservations *ReservationRepository
}

var _ shared.Reads = (*Reads)(nil)

func NewReads(db DBTX) *Reads {
	return &Reads{
		VenueRepository: NewVenueRepository(db),
		reservations:    NewReservationRepository(db),
	}
}

func (r *Reads) ReservationByID(ctx context.Context, id string) (*reservation.Reservation, error) {
	return r.reservations.FindByID(ctx, id)
}

func (r *Reads) ReservationsByUser(ctx context.Context, userID string) ([]*reservation.Reservation, error) {
	return r.reservations.FindByUser(ctx, userID)
}

func (r *Reads) ClaimingReservations(ctx context.Context, barID, matchID string) ([]tableassign.Claim, error) {
	return r.reservations.Claims(ctx, barID, matchID)
}
