package api

import (
	"context"
	"errors"
	"net/http"

	"seatly/internal/domain/redirect"
	resdto "seatly/internal/handler/dto/response"
	"seatly/internal/pkg/errs"
	"seatly/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

func submitAndRespond(c *gin.Context, inbox RedirectSubmitter, ev redirect.Event) {
	result, err := inbox.Submit(c.Request.Context(), ev)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			err = errs.Mark(errs.Wrap(err, "waiting for redirect outcome"), errs.ErrRetryable)
		}
		abortWithUseCaseError(c, err, "Failed to process payment redirect")
		return
	}

	c.JSON(outcomeStatus(result.Outcome), resdto.FromFinalizeResult(result))
}

func outcomeStatus(o commands.Outcome) int {
	if o == commands.OutcomePaymentPending {
		return http.StatusAccepted
	}
	return http.StatusOK
}
