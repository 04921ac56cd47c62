package commands

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation.go -package=commandsmock

import (
	"context"
	"time"

	"seatly/internal/domain/redirect"
	"seatly/internal/domain/reservation"
	"seatly/internal/pkg/clock"
	"seatly/internal/pkg/config"
	"seatly/internal/pkg/errs"
	"seatly/internal/usecase/queries"
	"seatly/internal/usecase/shared"
)

var (
	ErrMissingReservationID  = errs.New("reservation id is required")
	ErrReferenceMismatch     = errs.New("payment belongs to another reservation")
	ErrBarNotBroadcasting    = errs.New("bar does not broadcast this match")
	ErrReservationNotPending = errs.New("reservation can no longer change")
	ErrNotOwner              = errs.New("reservation belongs to another user")
)

type Outcome string

const (
	OutcomeConfirmed      Outcome = "confirmed"
	OutcomePaymentPending Outcome = "payment_pending"
	OutcomePaymentFailed  Outcome = "payment_failed"
	OutcomeIgnored        Outcome = "ignored"
)

// Confirmation is what the success screen and the push notification show.
type Confirmation struct {
	BarName    string     `json:"bar_name"`
	MatchTeams string     `json:"match_teams"`
	People     int        `json:"people"`
	MatchDate  *time.Time `json:"match_date,omitempty"`
}

type FinalizeRequest struct {
	ReservationID string
	PaymentID     string
	Channel       redirect.Channel
	// CancelOnShortfall commits an approved but unseatable reservation as cancelled.
	CancelOnShortfall bool
}

type FinalizeResult struct {
	Outcome       Outcome       `json:"outcome"`
	Replayed      bool          `json:"replayed"`
	ReservationID string        `json:"reservation_id,omitempty"`
	TableIDs      []string      `json:"table_ids,omitempty"`
	Confirmation  *Confirmation `json:"confirmation,omitempty"`
}

type CheckoutRequest struct {
	UserID    string
	UserEmail string
	BarID     string
	MatchID   string
	Name      string
	Phone     string
	People    int
}

// BackURLs are handed to the payment provider when the preference is created.
type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

type CheckoutResult struct {
	Reservation *queries.ReservationView
	BackURLs    BackURLs
}

type ReservationCommands interface {
	StartCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)
	FinalizeReservation(ctx context.Context, req FinalizeRequest) (*FinalizeResult, error)
	CancelReservation(ctx context.Context, reservationID, actorID string) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	uow      shared.UnitOfWork
	verifier PaymentVerifier
	cache    VerificationCache
	locker   FinalizeLocker
	factory  *reservation.Factory
	clock    clock.Clock
	redirect config.RedirectConfig
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	verifier PaymentVerifier,
	cache VerificationCache,
	locker FinalizeLocker,
	factory *reservation.Factory,
	clock clock.Clock,
	redirectCfg config.RedirectConfig,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:      uow,
		verifier: verifier,
		cache:    cache,
		locker:   locker,
		factory:  factory,
		clock:    clock,
		redirect: redirectCfg,
	}
}
