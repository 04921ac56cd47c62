// Package tableassign picks the tables that seat a party for one bar and match.
//
// It is a pure function over a snapshot of tables, the match allow-list and the
// tables already claimed by other reservations. Callers run it inside the store
// transaction that commits the result.
package tableassign

import (
	"sort"

	"seatly/internal/domain/venue"
	"seatly/internal/pkg/errs"
)

type Candidate struct {
	ID       string
	Capacity int
}

type Result struct {
	TableIDs []string
	Seats    int
	// Split is set when no single table was large enough.
	Split bool
}

// Claim is the table set held by another reservation of the same bar and match.
type Claim struct {
	ReservationID string
	TableIDs      []string
}

// Candidates keeps tables that are enabled for the match, active, unclaimed and
// have a positive capacity. Source order is preserved.
func Candidates(tables []venue.Table, enabled []string, claimed map[string]struct{}) []Candidate {
	allowed := make(map[string]struct{}, len(enabled))
	for _, id := range enabled {
		allowed[id] = struct{}{}
	}

	out := make([]Candidate, 0, len(tables))
	for _, t := range tables {
		if _, ok := allowed[t.ID]; !ok {
			continue
		}
		if !t.IsActive() || t.Capacity <= 0 {
			continue
		}
		if _, taken := claimed[t.ID]; taken {
			continue
		}
		out = append(out, Candidate{ID: t.ID, Capacity: t.Capacity})
	}
	return out
}

// ClaimedBy unions the tables of every claim except the one owned by excludeID.
func ClaimedBy(claims []Claim, excludeID string) map[string]struct{} {
	claimed := make(map[string]struct{})
	for _, c := range claims {
		if c.ReservationID == excludeID {
			continue
		}
		for _, id := range c.TableIDs {
			claimed[id] = struct{}{}
		}
	}
	return claimed
}

// Assign prefers the smallest single table that fits, then falls back to
// accumulating tables in ascending capacity until the party is seated.
func Assign(candidates []Candidate, people int) (Result, error) {
	if people <= 0 {
		return Result{}, errs.Mark(errs.Newf("party size must be positive, got %d", people), errs.ErrInvalidInput)
	}

	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Capacity < sorted[j].Capacity
	})

	for _, c := range sorted {
		if c.Capacity >= people {
			return Result{TableIDs: []string{c.ID}, Seats: c.Capacity}, nil
		}
	}

	var (
		ids   []string
		seats int
	)
	for _, c := range sorted {
		ids = append(ids, c.ID)
		seats += c.Capacity
		if seats >= people {
			return Result{TableIDs: ids, Seats: seats, Split: true}, nil
		}
	}

	return Result{}, errs.Mark(
		errs.Newf("need %d seats, %d free", people, seats),
		errs.ErrInsufficientCapacity,
	)
}

// Plan runs the whole selection for reservationID.
func Plan(tables []venue.Table, enabled []string, claims []Claim, reservationID string, people int) (Result, error) {
	return Assign(Candidates(tables, enabled, ClaimedBy(claims, reservationID)), people)
}

// FreeSeats is the total capacity still assignable.
func FreeSeats(candidates []Candidate) int {
	total := 0
	for _, c := range candidates {
		total += c.Capacity
	}
	return total
}
