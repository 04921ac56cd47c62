package api

import (
	"net/http"

	"seatly/internal/handler/httperr"
	"seatly/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// abortWithUseCaseError maps the error taxonomy onto the three app screens.
// 409 and 400 are actionable errors, 503 tells the client to retry later.
func abortWithUseCaseError(c *gin.Context, err error, fallback string) {
	switch {
	case errs.Is(err, errs.ErrInvalidInput):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", errorDetail(err))
	case errs.Is(err, errs.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
	case errs.Is(err, errs.ErrNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	case errs.Is(err, errs.ErrInsufficientCapacity):
		httperr.AbortWithError(c, http.StatusConflict, err, "Not enough free tables for this party", nil)
	case errs.Is(err, errs.ErrReservationClosed):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation is closed", errorDetail(err))
	case errs.Is(err, errs.ErrRetryable):
		c.Header("Retry-After", "5")
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Temporarily unavailable, please retry", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, fallback, nil)
	}
}

// errorDetail exposes the innermost sentinel message, never wrapped infrastructure text.
func errorDetail(err error) any {
	return gin.H{"reason": errs.UnwrapAll(err).Error()}
}
