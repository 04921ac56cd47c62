// Package memstore is an in-process document store with versioned documents.
//
// Writes are buffered by the caller and applied by Commit, which validates
// every expected version under one lock. It backs the memory store driver
// and the use-case tests.
package memstore

import (
	"context"
	"slices"
	"sort"
	"sync"

	"seatly/internal/domain/reservation"
	"seatly/internal/domain/tableassign"
	"seatly/internal/domain/venue"
	"seatly/internal/infra"
	"seatly/internal/usecase/shared"
)

type Store struct {
	mu sync.RWMutex

	bars         map[string]venue.Bar
	tables       map[string][]venue.Table
	matches      map[string]venue.Match
	promotions   []venue.Promotion
	reservations map[string]reservation.Snapshot
	fences       map[shared.SlotKey]int64

	commits int64
}

func New() *Store {
	return &Store{
		bars:         make(map[string]venue.Bar),
		tables:       make(map[string][]venue.Table),
		matches:      make(map[string]venue.Match),
		reservations: make(map[string]reservation.Snapshot),
		fences:       make(map[shared.SlotKey]int64),
	}
}

var _ shared.Reads = (*Store)(nil)

// Batch is the write set of one transaction.
type Batch struct {
	Creates []reservation.Snapshot
	// Updates carry the version they were read at.
	Updates []reservation.Snapshot
	Fences  map[shared.SlotKey]int64
}

func (b *Batch) IsEmpty() bool {
	return len(b.Creates) == 0 && len(b.Updates) == 0 && len(b.Fences) == 0
}

// Commit applies b atomically or not at all.
func (s *Store) Commit(b *Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range b.Creates {
		if _, exists := s.reservations[c.ID]; exists {
			return infra.WrapRepoErr("reservation already exists", nil, infra.KindDuplicateKey)
		}
	}
	for _, u := range b.Updates {
		cur, ok := s.reservations[u.ID]
		if !ok {
			return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
		}
		if cur.Version != u.Version {
			return infra.WrapRepoErr("reservation changed concurrently", nil, infra.KindConflict)
		}
	}
	for key, expected := range b.Fences {
		if s.fences[key] != expected {
			return infra.WrapRepoErr("slot fence advanced concurrently", nil, infra.KindConflict)
		}
	}

	for _, c := range b.Creates {
		s.reservations[c.ID] = clone(c)
	}
	for _, u := range b.Updates {
		u = clone(u)
		u.Version++
		s.reservations[u.ID] = u
	}
	for key, expected := range b.Fences {
		s.fences[key] = expected + 1
	}
	if !b.IsEmpty() {
		s.commits++
	}
	return nil
}

// Commits counts non-empty commits.
func (s *Store) Commits() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.commits
}

func (s *Store) Fence(key shared.SlotKey) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fences[key]
}

// Catalogue

func (s *Store) PutBar(_ context.Context, bar venue.Bar, tables []venue.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bars[bar.ID] = bar
	s.tables[bar.ID] = slices.Clone(tables)
	return nil
}

func (s *Store) PutMatch(_ context.Context, m venue.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[m.ID] = cloneMatch(m)
	return nil
}

func (s *Store) PutPromotion(_ context.Context, p venue.Promotion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.promotions {
		if existing.BarID == p.BarID && existing.ID == p.ID {
			s.promotions[i] = p
			return nil
		}
	}
	s.promotions = append(s.promotions, p)
	return nil
}

// PutReservation stores a document as is, bypassing version checks.
func (s *Store) PutReservation(snap reservation.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations[snap.ID] = clone(snap)
}

// Reads

func (s *Store) ReservationByID(_ context.Context, id string) (*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return reservation.Reconstruct(snap), nil
}

func (s *Store) ReservationsByUser(_ context.Context, userID string) ([]*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var snaps []reservation.Snapshot
	for _, snap := range s.reservations {
		if snap.UserID == userID {
			snaps = append(snaps, snap)
		}
	}
	sort.Slice(snaps, func(i, j int) bool {
		if !snaps[i].CreatedAt.Equal(snaps[j].CreatedAt) {
			return snaps[i].CreatedAt.After(snaps[j].CreatedAt)
		}
		return snaps[i].ID < snaps[j].ID
	})
	out := make([]*reservation.Reservation, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, reservation.Reconstruct(snap))
	}
	return out, nil
}

func (s *Store) ClaimingReservations(_ context.Context, barID, matchID string) ([]tableassign.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []tableassign.Claim
	for _, snap := range s.reservations {
		if snap.BarID != barID || snap.MatchID != matchID || !snap.Status.ClaimsTables() {
			continue
		}
		out = append(out, tableassign.Claim{ReservationID: snap.ID, TableIDs: slices.Clone(snap.TableIDs)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReservationID < out[j].ReservationID })
	return out, nil
}

func (s *Store) BarByID(_ context.Context, id string) (*venue.Bar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bars[id]
	if !ok {
		return nil, infra.WrapRepoErr("bar not found", nil, infra.KindNotFound)
	}
	return &b, nil
}

func (s *Store) TablesByBar(_ context.Context, barID string) ([]venue.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tables[barID]), nil
}

func (s *Store) MatchByID(_ context.Context, id string) (*venue.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[id]
	if !ok {
		return nil, infra.WrapRepoErr("match not found", nil, infra.KindNotFound)
	}
	m = cloneMatch(m)
	return &m, nil
}

func (s *Store) ListMatches(_ context.Context) ([]venue.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]venue.Match, 0, len(s.matches))
	for _, m := range s.matches {
		out = append(out, cloneMatch(m))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) PromotionFor(_ context.Context, barID, matchID string, defaultID *string) (*venue.Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.promotions {
		if p.BarID == barID && p.MatchID != nil && *p.MatchID == matchID {
			return &p, nil
		}
	}
	if defaultID == nil {
		return nil, nil
	}
	for _, p := range s.promotions {
		if p.BarID == barID && p.ID == *defaultID {
			return &p, nil
		}
	}
	return nil, nil
}

func clone(s reservation.Snapshot) reservation.Snapshot {
	return reservation.Reconstruct(s).Snapshot()
}

func cloneMatch(m venue.Match) venue.Match {
	bbs := make([]venue.BroadcastBar, len(m.BroadcastBars))
	for i, bb := range m.BroadcastBars {
		bb.TableIDs = slices.Clone(bb.TableIDs)
		bbs[i] = bb
	}
	m.BroadcastBars = bbs
	return m
}
