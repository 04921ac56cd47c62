package commands

//go:generate mockgen -source=redirect.go -destination=../../../tests/mock/commands/redirect.go -package=commandsmock

import (
	"context"
	"log/slog"

	"seatly/internal/domain/redirect"
)

// RedirectCommands turns a normalized redirect into an outcome for the app screens.
type RedirectCommands interface {
	HandleRedirect(ctx context.Context, ev redirect.Event) (*FinalizeResult, error)
}

type redirectCommandsImpl struct {
	reservations ReservationCommands
}

func NewRedirectCommands(reservations ReservationCommands) RedirectCommands {
	return &redirectCommandsImpl{reservations: reservations}
}

func (r *redirectCommandsImpl) HandleRedirect(ctx context.Context, ev redirect.Event) (*FinalizeResult, error) {
	sig := ev.Signal

	switch sig.Kind {
	case redirect.KindSuccess:
		return r.reservations.FinalizeReservation(ctx, FinalizeRequest{
			ReservationID:     sig.ReservationID,
			PaymentID:         sig.PaymentID,
			Channel:           ev.Channel,
			CancelOnShortfall: ev.CancelOnShortfall,
		})
	case redirect.KindPending:
		return &FinalizeResult{Outcome: OutcomePaymentPending, ReservationID: sig.ReservationID}, nil
	case redirect.KindFailure:
		return &FinalizeResult{Outcome: OutcomePaymentFailed, ReservationID: sig.ReservationID}, nil
	default:
		slog.DebugContext(ctx, "ignoring unrecognised redirect", "channel", string(ev.Channel), "url", ev.RawURL)
		return &FinalizeResult{Outcome: OutcomeIgnored}, nil
	}
}
