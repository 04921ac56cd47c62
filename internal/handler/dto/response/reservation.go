package response

import (
	"time"

	"seatly/internal/usecase/commands"
	"seatly/internal/usecase/queries"
)

type ReservationResponse struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	UserEmail      string     `json:"userEmail"`
	BarID          string     `json:"barId"`
	BarName        string     `json:"barName"`
	MatchID        string     `json:"matchId"`
	MatchTeams     string     `json:"matchTeams"`
	MatchDate      *time.Time `json:"matchDate,omitempty"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	People         int        `json:"people"`
	PricePerPerson int64      `json:"pricePerPersonCents"`
	TotalPrice     int64      `json:"totalPriceCents"`
	TableIDs       []string   `json:"tableIds"`
	Status         string     `json:"status"`
	Paid           bool       `json:"paid"`
	PaymentID      *string    `json:"paymentId,omitempty"`
	Source         string     `json:"source"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type ReservationListResponse struct {
	ID         string     `json:"id"`
	BarName    string     `json:"barName"`
	MatchTeams string     `json:"matchTeams"`
	MatchDate  *time.Time `json:"matchDate,omitempty"`
	People     int        `json:"people"`
	TotalPrice int64      `json:"totalPriceCents"`
	Status     string     `json:"status"`
	Paid       bool       `json:"paid"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type BackURLsResponse struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

type CheckoutResponse struct {
	Reservation *ReservationResponse `json:"reservation"`
	BackURLs    BackURLsResponse     `json:"backUrls"`
}

type ConfirmationResponse struct {
	BarName    string     `json:"barName"`
	MatchTeams string     `json:"matchTeams"`
	People     int        `json:"people"`
	MatchDate  *time.Time `json:"matchDate,omitempty"`
}

// OutcomeResponse drives the app screen: success, payment pending or an actionable error.
type OutcomeResponse struct {
	Outcome       string                `json:"outcome"`
	Replayed      bool                  `json:"replayed"`
	ReservationID string                `json:"reservationId,omitempty"`
	TableIDs      []string              `json:"tableIds,omitempty"`
	Confirmation  *ConfirmationResponse `json:"confirmation,omitempty"`
}

func FromReservationView(rv *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:             rv.ID,
		UserID:         rv.UserID,
		UserEmail:      rv.UserEmail,
		BarID:          rv.BarID,
		BarName:        rv.BarName,
		MatchID:        rv.MatchID,
		MatchTeams:     rv.MatchTeams,
		MatchDate:      rv.MatchDate,
		Name:           rv.Name,
		Phone:          rv.Phone,
		People:         rv.People,
		PricePerPerson: rv.PricePerPerson,
		TotalPrice:     rv.TotalPrice,
		TableIDs:       rv.TableIDs,
		Status:         rv.Status,
		Paid:           rv.Paid,
		PaymentID:      rv.PaymentID,
		Source:         rv.Source,
		CreatedAt:      rv.CreatedAt,
		UpdatedAt:      rv.UpdatedAt,
	}
}

func FromReservationListItem(rv *queries.ReservationView) *ReservationListResponse {
	return &ReservationListResponse{
		ID:         rv.ID,
		BarName:    rv.BarName,
		MatchTeams: rv.MatchTeams,
		MatchDate:  rv.MatchDate,
		People:     rv.People,
		TotalPrice: rv.TotalPrice,
		Status:     rv.Status,
		Paid:       rv.Paid,
		CreatedAt:  rv.CreatedAt,
	}
}

func FromCheckoutResult(r *commands.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		Reservation: FromReservationView(r.Reservation),
		BackURLs: BackURLsResponse{
			Success: r.BackURLs.Success,
			Failure: r.BackURLs.Failure,
			Pending: r.BackURLs.Pending,
		},
	}
}

func FromFinalizeResult(r *commands.FinalizeResult) *OutcomeResponse {
	resp := &OutcomeResponse{
		Outcome:       string(r.Outcome),
		Replayed:      r.Replayed,
		ReservationID: r.ReservationID,
		TableIDs:      r.TableIDs,
	}
	if c := r.Confirmation; c != nil {
		resp.Confirmation = &ConfirmationResponse{
			BarName:    c.BarName,
			MatchTeams: c.MatchTeams,
			People:     c.People,
			MatchDate:  c.MatchDate,
		}
	}
	return resp
}
