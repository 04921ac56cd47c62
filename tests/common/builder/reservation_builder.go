//go:build unit || integration || e2e

package builder

import (
	"time"

	"seatly/internal/domain/reservation"
	"seatly/internal/pkg/clock"
	"seatly/internal/pkg/ptr"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID             string
	UserID         string
	UserEmail      string
	BarID          string
	BarName        string
	MatchID        string
	MatchTeams     string
	Name           string
	Phone          string
	People         int
	PricePerPerson *int64
	TableIDs       []string
	Status         reservation.Status
	Paid           bool
	PaymentID      *string
	Version        int64
	CreatedAt      time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:             uuid.NewString(),
		UserID:         "user-1",
		UserEmail:      "guest@example.com",
		BarID:          "bar-1",
		BarName:        "The Corner Pub",
		MatchID:        "match-1",
		MatchTeams:     "Boca vs River",
		Name:           "Juan Perez",
		Phone:          "1123456789",
		People:         4,
		PricePerPerson: ptr.Of(int64(1500_00)),
		Status:         reservation.StatusPending,
		CreatedAt:      time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithPeople(n int) *ReservationBuilder {
	b.People = n
	return b
}

func (b *ReservationBuilder) WithPhone(phone string) *ReservationBuilder {
	b.Phone = phone
	return b
}

func (b *ReservationBuilder) WithName(name string) *ReservationBuilder {
	b.Name = name
	return b
}

func (b *ReservationBuilder) WithPrice(cents *int64) *ReservationBuilder {
	b.PricePerPerson = cents
	return b
}

func (b *ReservationBuilder) WithVenue(barID, matchID string) *ReservationBuilder {
	b.BarID = barID
	b.MatchID = matchID
	return b
}

func (b *ReservationBuilder) Confirmed(paymentID string, tableIDs ...string) *ReservationBuilder {
	b.Status = reservation.StatusConfirmed
	b.Paid = true
	b.PaymentID = &paymentID
	b.TableIDs = tableIDs
	return b
}

func (b *ReservationBuilder) Cancelled() *ReservationBuilder {
	b.Status = reservation.StatusCancelled
	return b
}

func (b *ReservationBuilder) BuildCheckoutInput() reservation.CheckoutInput {
	return reservation.CheckoutInput{
		UserID:    b.UserID,
		UserEmail: b.UserEmail,
		Name:      b.Name,
		Phone:     b.Phone,
		People:    b.People,
	}
}

func (b *ReservationBuilder) BuildListing() reservation.Listing {
	return reservation.Listing{
		BarID:      b.BarID,
		BarName:    b.BarName,
		MatchID:    b.MatchID,
		MatchTeams: b.MatchTeams,
		PriceCents: b.PricePerPerson,
	}
}

// BuildDomain goes through the checkout factory, so it fails on invalid guest data.
func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	f := reservation.NewFactory(clock.NewMockClock(b.CreatedAt))
	return f.CreatePending(b.BuildCheckoutInput(), b.BuildListing())
}

// BuildSnapshot builds a stored document in any status without validation.
func (b *ReservationBuilder) BuildSnapshot() reservation.Snapshot {
	price := ptr.Deref(b.PricePerPerson)
	return reservation.Snapshot{
		ID:             b.ID,
		UserID:         b.UserID,
		UserEmail:      b.UserEmail,
		BarID:          b.BarID,
		BarName:        b.BarName,
		MatchID:        b.MatchID,
		MatchTeams:     b.MatchTeams,
		Name:           b.Name,
		Phone:          b.Phone,
		People:         b.People,
		PricePerPerson: price,
		TotalPrice:     price * int64(b.People),
		TableIDs:       b.TableIDs,
		Status:         b.Status,
		Paid:           b.Paid,
		PaymentID:      b.PaymentID,
		Source:         reservation.SourceApp,
		Version:        b.Version,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.CreatedAt,
	}
}

func (b *ReservationBuilder) BuildReconstructed() *reservation.Reservation {
	return reservation.Reconstruct(b.BuildSnapshot())
}
