package commands

import (
	"context"
	"log/slog"

	"seatly/internal/domain/reservation"
	"seatly/internal/pkg/errs"
	"seatly/internal/usecase/queries"
	"seatly/internal/usecase/shared"
)

// CancelReservation lets the owner abandon a reservation that was never paid.
// Cancelling twice is a no-op.
func (u *reservationCommandsImpl) CancelReservation(ctx context.Context, reservationID, actorID string) (*queries.ReservationView, error) {
	var out *reservation.Reservation

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reads().ReservationByID(ctx, reservationID)
		if err != nil {
			return err
		}
		if res.UserID() != actorID {
			return errs.Mark(ErrNotOwner, errs.ErrForbidden)
		}
		out = res

		switch err := res.Cancel(u.clock.Now()); {
		case err == nil:
			return tx.Reservations().Update(ctx, res)
		case errs.Is(err, reservation.ErrAlreadyCancelled):
			return nil
		default:
			return errs.MarkAll(errs.Wrap(err, "cancel reservation"), ErrReservationNotPending, errs.ErrReservationClosed)
		}
	})
	if err != nil {
		return nil, shared.StoreError(err)
	}

	slog.InfoContext(ctx, "reservation cancelled", "reservation_id", reservationID, "user_id", actorID)
	return queries.NewReservationView(out, nil), nil
}
