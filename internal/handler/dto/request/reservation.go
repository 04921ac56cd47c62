package request

import (
	"strings"

	"seatly/internal/usecase"
	"seatly/internal/usecase/commands"
)

type CheckoutRequest struct {
	BarID   string `json:"barId" binding:"required"`
	MatchID string `json:"matchId" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	People  int    `json:"people" binding:"required,gt=0"`
	// Email overrides the token e-mail when the user typed a different contact address.
	Email *string `json:"email,omitempty"`
}

func (r CheckoutRequest) ToCommand(p usecase.Principal) commands.CheckoutRequest {
	email := p.Email
	if r.Email != nil {
		if trimmed := strings.TrimSpace(*r.Email); trimmed != "" {
			email = trimmed
		}
	}
	return commands.CheckoutRequest{
		UserID:    p.UserID,
		UserEmail: email,
		BarID:     strings.TrimSpace(r.BarID),
		MatchID:   strings.TrimSpace(r.MatchID),
		Name:      r.Name,
		Phone:     r.Phone,
		People:    r.People,
	}
}

// FinalizeRequest is what the app posts after it intercepted a redirect on its own.
type FinalizeRequest struct {
	PaymentID         *string `json:"paymentId,omitempty"`
	CancelOnShortfall bool    `json:"cancelOnShortfall"`
}

func (r FinalizeRequest) GetPaymentID() string {
	if r.PaymentID == nil {
		return ""
	}
	return strings.TrimSpace(*r.PaymentID)
}
