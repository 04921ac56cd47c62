package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"seatly/internal/domain/reservation"
	"seatly/internal/domain/tableassign"
	"seatly/internal/pkg/errs"
	"seatly/internal/pkg/ptr"
	"seatly/internal/usecase/shared"
)

// FinalizeReservation moves a paid reservation from pending to confirmed at most once.
//
// Every channel may call it any number of times for the same payment: a
// finalized reservation is answered from storage without writes, and table
// claims are serialized per bar and match by the slot fence.
func (u *reservationCommandsImpl) FinalizeReservation(ctx context.Context, req FinalizeRequest) (*FinalizeResult, error) {
	reservationID := strings.TrimSpace(req.ReservationID)
	paymentID := strings.TrimSpace(req.PaymentID)

	if paymentID == "" {
		if reservationID == "" {
			return nil, errs.Mark(ErrMissingReservationID, errs.ErrInvalidInput)
		}
		return u.awaitingPayment(ctx, reservationID)
	}

	var verification *Verification
	if reservationID == "" {
		v, err := u.verify(ctx, paymentID)
		if err != nil {
			return nil, err
		}
		verification = v
		reservationID = ptr.Deref(v.ExternalReference)
		if reservationID == "" {
			return nil, errs.Mark(ErrMissingReservationID, errs.ErrInvalidInput)
		}
	}

	unlock := u.lock(ctx, reservationID)
	defer unlock()

	current, err := u.uow.Reads().ReservationByID(ctx, reservationID)
	if err != nil {
		return nil, shared.StoreError(err)
	}
	if current.IsFinalized() {
		return u.stored(ctx, u.uow.Reads(), current), nil
	}
	if current.IsCancelled() {
		return nil, errs.Mark(errs.Newf("reservation %s is cancelled", reservationID), errs.ErrReservationClosed)
	}

	if verification == nil {
		if verification, err = u.verify(ctx, paymentID); err != nil {
			return nil, err
		}
	}
	if ref := ptr.Deref(verification.ExternalReference); ref != "" && ref != reservationID {
		return nil, errs.Mark(errs.Wrapf(ErrReferenceMismatch, "payment %s references %s", paymentID, ref), errs.ErrInvalidInput)
	}
	if !verification.Approved() {
		slog.InfoContext(ctx, "payment not approved yet",
			"reservation_id", reservationID,
			"payment_id", paymentID,
			"status", verification.Status,
			"channel", string(req.Channel))
		return &FinalizeResult{Outcome: OutcomePaymentPending, ReservationID: reservationID}, nil
	}

	return u.commitConfirmation(ctx, reservationID, paymentID, req)
}

func (u *reservationCommandsImpl) commitConfirmation(ctx context.Context, reservationID, paymentID string, req FinalizeRequest) (*FinalizeResult, error) {
	var (
		result    *FinalizeResult
		shortfall error
	)

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result, shortfall = nil, nil

		res, err := tx.Reads().ReservationByID(ctx, reservationID)
		if err != nil {
			return err
		}
		if res.IsFinalized() {
			result = u.stored(ctx, tx.Reads(), res)
			return nil
		}
		if res.IsCancelled() {
			return errs.Mark(errs.Newf("reservation %s is cancelled", reservationID), errs.ErrReservationClosed)
		}

		key := shared.SlotKey{BarID: res.BarID(), MatchID: res.MatchID()}
		fence, err := tx.Slots().Read(ctx, key)
		if err != nil {
			return err
		}
		match, err := tx.Reads().MatchByID(ctx, res.MatchID())
		if err != nil {
			return err
		}
		free, err := shared.FreeCandidates(ctx, tx.Reads(), res.BarID(), match, res.ID())
		if err != nil {
			return err
		}

		plan, err := tableassign.Assign(free, res.People())
		if err != nil {
			if !errs.Is(err, errs.ErrInsufficientCapacity) || !req.CancelOnShortfall {
				return err
			}
			shortfall = err
			if err := res.CancelPaid(paymentID, u.clock.Now()); err != nil {
				return errs.Mark(err, errs.ErrReservationClosed)
			}
			return tx.Reservations().Update(ctx, res)
		}

		if err := res.Confirm(paymentID, plan.TableIDs, plan.Seats, u.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrReservationClosed)
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return err
		}
		if err := tx.Slots().Advance(ctx, key, fence); err != nil {
			return err
		}

		result = &FinalizeResult{
			Outcome:       OutcomeConfirmed,
			ReservationID: res.ID(),
			TableIDs:      res.TableIDs(),
			Confirmation:  confirmationOf(res, ptr.Of(match.Date)),
		}
		return nil
	})
	if err != nil {
		if errs.Is(err, errs.ErrInsufficientCapacity) {
			slog.WarnContext(ctx, "no tables left for paid reservation",
				"reservation_id", reservationID,
				"payment_id", paymentID)
		}
		return nil, shared.StoreError(err)
	}
	if shortfall != nil {
		slog.WarnContext(ctx, "paid reservation cancelled for lack of tables",
			"reservation_id", reservationID,
			"payment_id", paymentID)
		return nil, shortfall
	}

	if !result.Replayed {
		slog.InfoContext(ctx, "reservation confirmed",
			"reservation_id", reservationID,
			"payment_id", paymentID,
			"table_ids", result.TableIDs,
			"channel", string(req.Channel))
	}
	return result, nil
}

// awaitingPayment answers a trigger that carries no payment id. Nothing is written.
func (u *reservationCommandsImpl) awaitingPayment(ctx context.Context, reservationID string) (*FinalizeResult, error) {
	res, err := u.uow.Reads().ReservationByID(ctx, reservationID)
	if err != nil {
		return nil, shared.StoreError(err)
	}
	if res.IsFinalized() {
		return u.stored(ctx, u.uow.Reads(), res), nil
	}
	return &FinalizeResult{Outcome: OutcomePaymentPending, ReservationID: reservationID}, nil
}

// stored reads through r so a caller inside a transaction stays on its connection.
func (u *reservationCommandsImpl) stored(ctx context.Context, r shared.Reads, res *reservation.Reservation) *FinalizeResult {
	var matchDate *time.Time
	if m, err := r.MatchByID(ctx, res.MatchID()); err == nil {
		matchDate = ptr.Of(m.Date)
	} else {
		slog.WarnContext(ctx, "match unavailable for stored confirmation",
			"reservation_id", res.ID(),
			"match_id", res.MatchID(),
			"error", err.Error())
	}
	return &FinalizeResult{
		Outcome:       OutcomeConfirmed,
		Replayed:      true,
		ReservationID: res.ID(),
		TableIDs:      res.TableIDs(),
		Confirmation:  confirmationOf(res, matchDate),
	}
}

func confirmationOf(res *reservation.Reservation, matchDate *time.Time) *Confirmation {
	if matchDate != nil && matchDate.IsZero() {
		matchDate = nil
	}
	return &Confirmation{
		BarName:    res.BarName(),
		MatchTeams: res.MatchTeams(),
		People:     res.People(),
		MatchDate:  matchDate,
	}
}

// verify consults the cache before the verification endpoint. Only approved
// answers are cached since any other status may still change.
func (u *reservationCommandsImpl) verify(ctx context.Context, paymentID string) (*Verification, error) {
	if cached, err := u.cache.Get(ctx, paymentID); err != nil {
		slog.WarnContext(ctx, "verification cache read failed", "payment_id", paymentID, "error", err.Error())
	} else if cached != nil {
		return cached, nil
	}

	v, err := u.verifier.Verify(ctx, paymentID)
	if err != nil {
		return nil, errs.MarkAll(errs.Wrapf(err, "verify payment %s", paymentID), errs.ErrVerificationUnavailable, errs.ErrRetryable)
	}
	if v.Approved() {
		if err := u.cache.Put(ctx, paymentID, v); err != nil {
			slog.WarnContext(ctx, "verification cache write failed", "payment_id", paymentID, "error", err.Error())
		}
	}
	return v, nil
}

func (u *reservationCommandsImpl) lock(ctx context.Context, reservationID string) func() {
	unlock, err := u.locker.Lock(ctx, reservationID)
	if err != nil {
		slog.WarnContext(ctx, "finalize lock unavailable, continuing without it",
			"reservation_id", reservationID,
			"error", err.Error())
		return func() {}
	}
	return unlock
}
