//go:build unit

package commands_test

import (
	"context"
	"testing"

	"seatly/internal/domain/redirect"
	"seatly/internal/usecase/commands"
	commandsmock "seatly/tests/mock/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHandleRedirect(t *testing.T) {
	t.Run("success finalizes with the signal identifiers", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reservations := commandsmock.NewMockReservationCommands(ctrl)
		want := &commands.FinalizeResult{Outcome: commands.OutcomeConfirmed, ReservationID: "r-1"}
		reservations.EXPECT().FinalizeReservation(gomock.Any(), commands.FinalizeRequest{
			ReservationID:     "r-1",
			PaymentID:         "pay-1",
			Channel:           redirect.ChannelWebView,
			CancelOnShortfall: true,
		}).Return(want, nil)

		got, err := commands.NewRedirectCommands(reservations).HandleRedirect(context.Background(), redirect.Event{
			Channel:           redirect.ChannelWebView,
			Signal:            redirect.Signal{Kind: redirect.KindSuccess, ReservationID: "r-1", PaymentID: "pay-1"},
			CancelOnShortfall: true,
		})
		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	tests := []struct {
		name string
		kind redirect.Kind
		want commands.Outcome
	}{
		{name: "pending never finalizes", kind: redirect.KindPending, want: commands.OutcomePaymentPending},
		{name: "failure never finalizes", kind: redirect.KindFailure, want: commands.OutcomePaymentFailed},
		{name: "unknown is ignored", kind: redirect.KindUnknown, want: commands.OutcomeIgnored},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			// no expectations: any finalize call fails the test
			reservations := commandsmock.NewMockReservationCommands(ctrl)

			got, err := commands.NewRedirectCommands(reservations).HandleRedirect(context.Background(), redirect.Event{
				Channel: redirect.ChannelBrowser,
				Signal:  redirect.Signal{Kind: tt.kind, ReservationID: "r-1", PaymentID: "pay-1"},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Outcome)
			assert.False(t, got.Replayed)
		})
	}
}
