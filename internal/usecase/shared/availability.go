package shared

import (
	"context"

	"seatly/internal/domain/tableassign"
	"seatly/internal/domain/venue"
)

// FreeCandidates loads the tables of barID that match still has free,
// ignoring the claim of excludeID.
func FreeCandidates(ctx context.Context, reads Reads, barID string, match *venue.Match, excludeID string) ([]tableassign.Candidate, error) {
	broadcast, ok := match.BroadcastFor(barID)
	if !ok {
		return nil, nil
	}
	tables, err := reads.TablesByBar(ctx, barID)
	if err != nil {
		return nil, err
	}
	claims, err := reads.ClaimingReservations(ctx, barID, match.ID)
	if err != nil {
		return nil, err
	}
	return tableassign.Candidates(tables, broadcast.TableIDs, tableassign.ClaimedBy(claims, excludeID)), nil
}
