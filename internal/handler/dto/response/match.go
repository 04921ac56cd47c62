package response

import (
	"time"

	"seatly/internal/usecase/queries"
)

type MatchResponse struct {
	ID       string    `json:"id"`
	Teams    string    `json:"teams"`
	Date     time.Time `json:"date"`
	Sport    string    `json:"sport"`
	League   string    `json:"league"`
	BarCount int       `json:"barCount"`
}

type BarAvailabilityResponse struct {
	BarID      string   `json:"barId"`
	Name       string   `json:"name"`
	Location   string   `json:"location"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	PriceCents *int64   `json:"priceCents,omitempty"`
	Included   []string `json:"included,omitempty"`
	FreeSeats  int      `json:"freeSeats"`
}

type AvailabilityResponse struct {
	BarID     string   `json:"barId"`
	MatchID   string   `json:"matchId"`
	People    int      `json:"people"`
	Available bool     `json:"available"`
	FreeSeats int      `json:"freeSeats"`
	TableIDs  []string `json:"tableIds,omitempty"`
}

func FromMatchView(v *queries.MatchView) *MatchResponse {
	return &MatchResponse{
		ID:       v.ID,
		Teams:    v.Teams,
		Date:     v.Date,
		Sport:    v.Sport,
		League:   v.League,
		BarCount: v.BarCount,
	}
}

func FromBarAvailabilityView(v *queries.BarAvailabilityView) *BarAvailabilityResponse {
	return &BarAvailabilityResponse{
		BarID:      v.BarID,
		Name:       v.Name,
		Location:   v.Location,
		Lat:        v.Lat,
		Lng:        v.Lng,
		PriceCents: v.PriceCents,
		Included:   v.Included,
		FreeSeats:  v.FreeSeats,
	}
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	return &AvailabilityResponse{
		BarID:     v.BarID,
		MatchID:   v.MatchID,
		People:    v.People,
		Available: v.Available,
		FreeSeats: v.FreeSeats,
		TableIDs:  v.TableIDs,
	}
}
