package errs

import "errors"

// Error kinds surfaced at the reconciliation boundary. Use-case errors are
// marked with one of these so handlers can map them with errors.Is.
var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrNotFound                = errors.New("not found")
	ErrVerificationUnavailable = errors.New("payment verification unavailable")
	ErrStoreUnavailable        = errors.New("store unavailable")
	ErrInsufficientCapacity    = errors.New("insufficient capacity")
	ErrReservationClosed       = errors.New("reservation closed")
	ErrForbidden               = errors.New("forbidden")

	// Retryable marks failures the caller may simply try again.
	ErrRetryable = errors.New("retryable")
)
