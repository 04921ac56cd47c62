package api

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/api/reservation.go -package=apimock

import (
	"context"
	"net/http"
	"strings"

	"seatly/internal/domain/redirect"
	reqdto "seatly/internal/handler/dto/request"
	resdto "seatly/internal/handler/dto/response"
	"seatly/internal/handler/httperr"
	"seatly/internal/handler/middleware"
	"seatly/internal/pkg/clock"
	"seatly/internal/pkg/errs"
	"seatly/internal/usecase/commands"
	"seatly/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errUnauthenticated = errs.New("no authenticated user in context")

// RedirectSubmitter hands an event to the redirect inbox and waits for its outcome.
type RedirectSubmitter interface {
	Submit(ctx context.Context, ev redirect.Event) (*commands.FinalizeResult, error)
}

type ReservationHandler struct {
	cmds  commands.ReservationCommands
	q     queries.ReservationQueries
	inbox RedirectSubmitter
	clock clock.Clock
}

func NewReservationHandler(
	cmds commands.ReservationCommands,
	q queries.ReservationQueries,
	inbox RedirectSubmitter,
	clock clock.Clock,
) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q, inbox: inbox, clock: clock}
}

// @Summary Start checkout
// @Description Create a pending reservation and the payment provider back urls
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/reservations [post]
func (h *ReservationHandler) StartCheckout(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.StartCheckout(c.Request.Context(), req.ToCommand(principal))
	if err != nil {
		abortWithUseCaseError(c, err, "Checkout failed")
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCheckoutResult(result))
}

// @Summary Get reservation
// @Description Get one of the caller's reservations
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), userID, strings.TrimSpace(c.Param("id")))
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to load reservation")
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List reservations
// @Description List the caller's reservations, newest first
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationListResponse
// @Failure 401 {object} httperr.Response
// @Router /api/reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	views, err := h.q.ListByUser(c.Request.Context(), userID)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to list reservations")
		return
	}

	out := make([]*resdto.ReservationListResponse, 0, len(views))
	for _, v := range views {
		out = append(out, resdto.FromReservationListItem(v))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Cancel reservation
// @Description Cancel a pending reservation owned by the caller
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/reservations/{id}/cancel [post]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	view, err := h.cmds.CancelReservation(c.Request.Context(), strings.TrimSpace(c.Param("id")), userID)
	if err != nil {
		abortWithUseCaseError(c, err, "Cancel failed")
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Finalize reservation
// @Description Reconcile a reservation with its payment; safe to call any number of times
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.FinalizeRequest true "Finalize request"
// @Success 200 {object} resdto.OutcomeResponse
// @Success 202 {object} resdto.OutcomeResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/reservations/{id}/finalize [post]
func (h *ReservationHandler) FinalizeReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	var req reqdto.FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	// ownership check; finalize itself is driven by the payment, not the caller
	if _, err := h.q.GetByID(c.Request.Context(), userID, id); err != nil {
		abortWithUseCaseError(c, err, "Failed to load reservation")
		return
	}

	ev := redirect.Event{
		Channel: redirect.ChannelAPI,
		Signal: redirect.Signal{
			Kind:          redirect.KindSuccess,
			ReservationID: id,
			PaymentID:     req.GetPaymentID(),
		},
		ReceivedAt:        h.clock.Now(),
		CancelOnShortfall: req.CancelOnShortfall,
	}
	submitAndRespond(c, h.inbox, ev)
}
