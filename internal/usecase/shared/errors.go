package shared

import (
	"context"
	"errors"

	"seatly/internal/infra"
	"seatly/internal/pkg/errs"
)

var classified = []error{
	errs.ErrInvalidInput,
	errs.ErrNotFound,
	errs.ErrVerificationUnavailable,
	errs.ErrStoreUnavailable,
	errs.ErrInsufficientCapacity,
	errs.ErrReservationClosed,
	errs.ErrForbidden,
}

// StoreError maps a repository failure onto the use-case error kinds. Errors
// that already carry a kind pass through unchanged.
func StoreError(err error) error {
	if err == nil {
		return nil
	}
	for _, ref := range classified {
		if errs.Is(err, ref) {
			return err
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrNotFound)
	}
	return errs.MarkAll(err, errs.ErrStoreUnavailable, errs.ErrRetryable)
}
