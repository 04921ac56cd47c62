package commands

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"seatly/internal/domain/reservation"
	"seatly/internal/domain/tableassign"
	"seatly/internal/pkg/errs"
	"seatly/internal/usecase/queries"
	"seatly/internal/usecase/shared"
)

var guestErrors = []error{
	reservation.ErrInvalidName,
	reservation.ErrInvalidPhone,
	reservation.ErrInvalidPartySize,
	reservation.ErrNegativePrice,
	reservation.ErrMissingPromotionPrice,
}

// StartCheckout records a pending reservation and returns the back urls the
// payment provider redirects to once the user pays.
func (u *reservationCommandsImpl) StartCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	input := reservation.CheckoutInput{
		UserID:    req.UserID,
		UserEmail: req.UserEmail,
		Name:      req.Name,
		Phone:     req.Phone,
		People:    req.People,
	}
	if err := reservation.ValidateCheckout(input); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInput)
	}

	reads := u.uow.Reads()
	bar, err := reads.BarByID(ctx, req.BarID)
	if err != nil {
		return nil, shared.StoreError(err)
	}
	match, err := reads.MatchByID(ctx, req.MatchID)
	if err != nil {
		return nil, shared.StoreError(err)
	}
	broadcast, ok := match.BroadcastFor(bar.ID)
	if !ok {
		return nil, errs.Mark(errs.Wrapf(ErrBarNotBroadcasting, "bar %s match %s", bar.ID, match.ID), errs.ErrNotFound)
	}
	promo, err := reads.PromotionFor(ctx, bar.ID, match.ID, broadcast.PromotionID)
	if err != nil {
		return nil, shared.StoreError(err)
	}

	// Finalize re-checks inside its transaction; this only stops checkouts that cannot succeed.
	free, err := shared.FreeCandidates(ctx, reads, bar.ID, match, "")
	if err != nil {
		return nil, shared.StoreError(err)
	}
	if _, err := tableassign.Assign(free, req.People); err != nil {
		return nil, err
	}

	listing := reservation.Listing{
		BarID:      bar.ID,
		BarName:    bar.Name,
		MatchID:    match.ID,
		MatchTeams: match.Teams,
	}
	if promo != nil {
		listing.PriceCents = promo.PriceCents
	}
	res, err := u.factory.CreatePending(input, listing)
	if err != nil {
		if isGuestError(err) {
			return nil, errs.Mark(err, errs.ErrInvalidInput)
		}
		return nil, err
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Reservations().Create(ctx, res)
	})
	if err != nil {
		return nil, shared.StoreError(err)
	}

	slog.InfoContext(ctx, "checkout started",
		"reservation_id", res.ID(),
		"bar_id", bar.ID,
		"match_id", match.ID,
		"people", res.People())

	date := match.Date
	return &CheckoutResult{
		Reservation: queries.NewReservationView(res, &date),
		BackURLs:    u.backURLs(res.ID()),
	}, nil
}

func (u *reservationCommandsImpl) backURLs(reservationID string) BackURLs {
	base := strings.TrimSuffix(u.redirect.PublicBaseURL, "/")
	q := url.Values{"reservationId": {reservationID}}.Encode()
	return BackURLs{
		Success: base + "/payment/success?" + q,
		Failure: base + "/payment/failure?" + q,
		Pending: base + "/payment/pending?" + q,
	}
}

func isGuestError(err error) bool {
	for _, ref := range guestErrors {
		if errs.Is(err, ref) {
			return true
		}
	}
	return false
}
