// Package venue holds the read-only catalogue the reservation engine works against:
// bars, their tables, matches and promotions.
package venue

import "time"

type TableStatus string

const (
	TableActive   TableStatus = "active"
	TableInactive TableStatus = "inactive"
)

type Table struct {
	ID       string
	Capacity int
	Status   TableStatus
}

// IsActive treats a missing status as active.
func (t Table) IsActive() bool {
	return t.Status != TableInactive
}

type Coordinates struct {
	Lat float64
	Lng float64
}

type Bar struct {
	ID          string
	Name        string
	Location    string
	Coordinates Coordinates
	Capacity    int
}

type BroadcastBar struct {
	BarID       string
	TableIDs    []string
	PromotionID *string
}

type Match struct {
	ID            string
	Teams         string
	Date          time.Time
	Sport         string
	League        string
	BroadcastBars []BroadcastBar
}

// BroadcastFor returns the broadcast entry of barID, if the bar shows the match.
func (m Match) BroadcastFor(barID string) (BroadcastBar, bool) {
	for _, b := range m.BroadcastBars {
		if b.BarID == barID {
			return b, true
		}
	}
	return BroadcastBar{}, false
}

type Promotion struct {
	ID         string
	BarID      string
	MatchID    *string
	PriceCents *int64
	Included   []string
}
