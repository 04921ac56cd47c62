package reservation

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidPartySize = errors.New("people must be a positive integer")
	ErrInvalidPhone     = errors.New("phone must have 10 digits")
	ErrInvalidName      = errors.New("name is required")
	ErrNegativePrice    = errors.New("price cannot be negative")
)

type PartySize struct {
	value int
}

func NewPartySize(n int) (PartySize, error) {
	if n <= 0 {
		return PartySize{}, ErrInvalidPartySize
	}
	return PartySize{value: n}, nil
}

func (p PartySize) Int() int {
	return p.value
}

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

type Phone struct {
	value string
}

func NewPhone(raw string) (Phone, error) {
	v := strings.TrimSpace(raw)
	if !phonePattern.MatchString(v) {
		return Phone{}, ErrInvalidPhone
	}
	return Phone{value: v}, nil
}

func (p Phone) String() string {
	return p.value
}

type GuestName struct {
	value string
}

func NewGuestName(raw string) (GuestName, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return GuestName{}, ErrInvalidName
	}
	return GuestName{value: v}, nil
}

func (n GuestName) String() string {
	return n.value
}

// Money is an amount in cents of the bar's currency.
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Times(n int) Money {
	return Money{cents: m.cents * int64(n)}
}
