package reservation

import (
	"errors"

	"seatly/internal/pkg/clock"
)

var ErrMissingPromotionPrice = errors.New("no promotion price for this bar and match")

// CheckoutInput is the raw guest data entered on the reserve screen.
type CheckoutInput struct {
	UserID    string
	UserEmail string
	Name      string
	Phone     string
	People    int
}

// Listing is the bar/match pair being reserved, resolved by the caller.
type Listing struct {
	BarID      string
	BarName    string
	MatchID    string
	MatchTeams string
	// PriceCents is nil when neither a match promotion nor a bar default exists.
	PriceCents *int64
}

type Factory struct {
	Clock clock.Clock
}

func NewFactory(clock clock.Clock) *Factory {
	return &Factory{Clock: clock}
}

// ValidateCheckout checks the guest data alone, before anything is loaded.
func ValidateCheckout(in CheckoutInput) error {
	if _, err := NewGuestName(in.Name); err != nil {
		return err
	}
	if _, err := NewPhone(in.Phone); err != nil {
		return err
	}
	_, err := NewPartySize(in.People)
	return err
}

func (f *Factory) CreatePending(in CheckoutInput, l Listing) (*Reservation, error) {
	name, err := NewGuestName(in.Name)
	if err != nil {
		return nil, err
	}
	phone, err := NewPhone(in.Phone)
	if err != nil {
		return nil, err
	}
	people, err := NewPartySize(in.People)
	if err != nil {
		return nil, err
	}
	if l.PriceCents == nil {
		return nil, ErrMissingPromotionPrice
	}
	price, err := NewMoney(*l.PriceCents)
	if err != nil {
		return nil, err
	}

	return NewPending(Details{
		UserID:         in.UserID,
		UserEmail:      in.UserEmail,
		BarID:          l.BarID,
		BarName:        l.BarName,
		MatchID:        l.MatchID,
		MatchTeams:     l.MatchTeams,
		Name:           name,
		Phone:          phone,
		People:         people,
		PricePerPerson: price,
		Source:         SourceApp,
	}, f.Clock.Now()), nil
}
