package reservation

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotPending         = errors.New("reservation is not pending")
	ErrAlreadyConfirmed   = errors.New("reservation is already confirmed")
	ErrAlreadyCancelled   = errors.New("reservation is already cancelled")
	ErrEmptyAssignment    = errors.New("assignment has no tables")
	ErrAssignmentTooSmall = errors.New("assignment does not seat the party")
	ErrDuplicateTable     = errors.New("assignment repeats a table")
	ErrMissingPaymentID   = errors.New("payment id is required")
)

// Details is everything captured when checkout starts.
type Details struct {
	UserID         string
	UserEmail      string
	BarID          string
	BarName        string
	MatchID        string
	MatchTeams     string
	Name           GuestName
	Phone          Phone
	People         PartySize
	PricePerPerson Money
	Source         string
}

// Snapshot is the flat persisted form of a reservation document.
type Snapshot struct {
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
	PricePerPerson int64
	TotalPrice     int64
	TableIDs       []string
	Status         Status
	Paid           bool
	PaymentID      *string
	Source         string
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Reservation struct {
	s Snapshot
}

func NewPending(d Details, now time.Time) *Reservation {
	return &Reservation{s: Snapshot{
		ID:             uuid.NewString(),
		UserID:         d.UserID,
		UserEmail:      d.UserEmail,
		BarID:          d.BarID,
		BarName:        d.BarName,
		MatchID:        d.MatchID,
		MatchTeams:     d.MatchTeams,
		Name:           d.Name.String(),
		Phone:          d.Phone.String(),
		People:         d.People.Int(),
		PricePerPerson: d.PricePerPerson.Cents(),
		TotalPrice:     d.PricePerPerson.Times(d.People.Int()).Cents(),
		Status:         StatusPending,
		Source:         d.Source,
		CreatedAt:      now,
		UpdatedAt:      now,
	}}
}

func Reconstruct(s Snapshot) *Reservation {
	s.TableIDs = slices.Clone(s.TableIDs)
	if s.PaymentID != nil {
		id := *s.PaymentID
		s.PaymentID = &id
	}
	return &Reservation{s: s}
}

// Snapshot returns a copy safe to hand to a store.
func (r *Reservation) Snapshot() Snapshot {
	return Reconstruct(r.s).s
}

// IsFinalized is the idempotence guard: a confirmed and paid reservation is never mutated again.
func (r *Reservation) IsFinalized() bool {
	return r.s.Status == StatusConfirmed && r.s.Paid
}

func (r *Reservation) IsCancelled() bool {
	return r.s.Status == StatusCancelled
}

// Confirm applies the single committing transition pending -> confirmed.
// seats is the combined capacity of tableIDs.
func (r *Reservation) Confirm(paymentID string, tableIDs []string, seats int, now time.Time) error {
	if err := r.requirePending(); err != nil {
		return err
	}
	if paymentID == "" {
		return ErrMissingPaymentID
	}
	if len(tableIDs) == 0 {
		return ErrEmptyAssignment
	}
	if seats < r.s.People {
		return ErrAssignmentTooSmall
	}
	seen := make(map[string]struct{}, len(tableIDs))
	for _, id := range tableIDs {
		if _, dup := seen[id]; dup {
			return ErrDuplicateTable
		}
		seen[id] = struct{}{}
	}

	r.s.TableIDs = slices.Clone(tableIDs)
	r.s.Paid = true
	r.s.Status = StatusConfirmed
	r.s.PaymentID = &paymentID
	r.s.UpdatedAt = now
	return nil
}

// Cancel closes a pending reservation without a payment.
func (r *Reservation) Cancel(now time.Time) error {
	if r.s.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if err := r.requirePending(); err != nil {
		return err
	}
	r.s.Status = StatusCancelled
	r.s.UpdatedAt = now
	return nil
}

// CancelPaid closes a pending reservation whose payment was approved but that
// could not be seated; paid and paymentId stay for the refund follow-up.
func (r *Reservation) CancelPaid(paymentID string, now time.Time) error {
	if err := r.requirePending(); err != nil {
		return err
	}
	if paymentID == "" {
		return ErrMissingPaymentID
	}
	r.s.Status = StatusCancelled
	r.s.Paid = true
	r.s.PaymentID = &paymentID
	r.s.UpdatedAt = now
	return nil
}

func (r *Reservation) requirePending() error {
	switch r.s.Status {
	case StatusPending:
		return nil
	case StatusConfirmed:
		return ErrAlreadyConfirmed
	case StatusCancelled:
		return ErrAlreadyCancelled
	default:
		return ErrNotPending
	}
}

func (r *Reservation) ID() string { return r.s.ID }
func (r *Reservation) UserID() string { return r.s.UserID }
func (r *Reservation) UserEmail() string { return r.s.UserEmail }
func (r *Reservation) BarID() string { return r.s.BarID }
func (r *Reservation) BarName() string { return r.s.BarName }
func (r *Reservation) MatchID() string { return r.s.MatchID }
func (r *Reservation) MatchTeams() string { return r.s.MatchTeams }
func (r *Reservation) Name() string { return r.s.Name }
func (r *Reservation) Phone() string { return r.s.Phone }
func (r *Reservation) People() int { return r.s.People }
func (r *Reservation) PricePerPerson() int64 { return r.s.PricePerPerson }
func (r *Reservation) TotalPrice() int64 { return r.s.TotalPrice }
func (r *Reservation) TableIDs() []string { return slices.Clone(r.s.TableIDs) }
func (r *Reservation) Status() Status { return r.s.Status }
func (r *Reservation) Paid() bool { return r.s.Paid }
func (r *Reservation) Source() string { return r.s.Source }
func (r *Reservation) Version() int64 { return r.s.Version }
func (r *Reservation) CreatedAt() time.Time { return r.s.CreatedAt }
func (r *Reservation) UpdatedAt() time.Time { return r.s.UpdatedAt }

func (r *Reservation) PaymentID() *string {
	if r.s.PaymentID == nil {
		return nil
	}
	id := *r.s.PaymentID
	return &id
}
