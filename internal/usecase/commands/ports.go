package commands

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/commands/ports.go -package=commandsmock

import (
	"context"
)

const VerificationApproved = "approved"

// Verification is the answer of the payment verification endpoint.
type Verification struct {
	Status            string  `json:"status"`
	ExternalReference *string `json:"external_reference,omitempty"`
}

func (v Verification) Approved() bool {
	return v.Status == VerificationApproved
}

type PaymentVerifier interface {
	Verify(ctx context.Context, paymentID string) (*Verification, error)
}

// VerificationCache only ever holds approved verifications.
type VerificationCache interface {
	// Get returns nil, nil on a miss.
	Get(ctx context.Context, paymentID string) (*Verification, error)
	Put(ctx context.Context, paymentID string, v *Verification) error
}

// FinalizeLocker collapses duplicate concurrent finalize triggers for one
// reservation. Correctness never depends on it.
type FinalizeLocker interface {
	Lock(ctx context.Context, reservationID string) (unlock func(), err error)
}
