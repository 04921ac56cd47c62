//go:build unit

package redirect_test

import (
	"testing"

	"seatly/internal/domain/redirect"

	"github.com/stretchr/testify/assert"
)

func TestParser_Parse(t *testing.T) {
	p := redirect.NewParser("seatly")

	tests := []struct {
		name string
		raw  string
		want redirect.Signal
	}{
		{
			name: "deep link success",
			raw:  "seatly://payment/success?rid=abc",
			want: redirect.Signal{Kind: redirect.KindSuccess, ReservationID: "abc"},
		},
		{
			name: "deep link pending",
			raw:  "seatly://payment/pending?rid=abc",
			want: redirect.Signal{Kind: redirect.KindPending, ReservationID: "abc"},
		},
		{
			name: "https back url with payment id",
			raw:  "https://host/payment/success?reservationId=abc&payment_id=xyz",
			want: redirect.Signal{Kind: redirect.KindSuccess, ReservationID: "abc", PaymentID: "xyz"},
		},
		{
			name: "https back url under a prefix with trailing slash",
			raw:  "https://admin.seatlyapp.com/app/payment/failure/?reservationId=abc",
			want: redirect.Signal{Kind: redirect.KindFailure, ReservationID: "abc"},
		},
		{
			name: "approved collection id",
			raw:  "https://host/payment/success?reservationId=abc&collection_id=col-1&collection_status=approved",
			want: redirect.Signal{Kind: redirect.KindSuccess, ReservationID: "abc", PaymentID: "col-1", ApprovedHint: true},
		},
		{
			name: "collection id without approval is not a payment id",
			raw:  "https://host/payment/success?reservationId=abc&collection_id=col-1&collection_status=in_process",
			want: redirect.Signal{Kind: redirect.KindSuccess, ReservationID: "abc"},
		},
		{
			name: "payment_id wins over collection_id",
			raw:  "https://host/payment/success?reservationId=abc&payment_id=xyz&collection_id=col-1&collection_status=approved",
			want: redirect.Signal{Kind: redirect.KindSuccess, ReservationID: "abc", PaymentID: "xyz", ApprovedHint: true},
		},
		{
			name: "reservationId wins over rid",
			raw:  "https://host/payment/success?reservationId=abc&rid=other",
			want: redirect.Signal{Kind: redirect.KindSuccess, ReservationID: "abc"},
		},
		{
			name: "scheme is case insensitive",
			raw:  "SEATLY://payment/success?rid=abc",
			want: redirect.Signal{Kind: redirect.KindSuccess, ReservationID: "abc"},
		},
		{name: "unrelated url", raw: "https://example.com/about"},
		{name: "other app scheme", raw: "otherapp://payment/success?rid=abc"},
		{name: "deep link with wrong host", raw: "seatly://checkout/success?rid=abc"},
		{name: "unknown result segment", raw: "https://host/payment/refunded?reservationId=abc"},
		{name: "garbage", raw: "%%%::not a url"},
		{name: "empty", raw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.raw)
			assert.Equal(t, tt.want, got)
			if tt.want.IsZero() {
				assert.Equal(t, redirect.KindUnknown, got.Kind)
			}
		})
	}
}

func TestChannel_IsValid(t *testing.T) {
	assert.True(t, redirect.ChannelWebView.IsValid())
	assert.False(t, redirect.Channel("sms").IsValid())
}
