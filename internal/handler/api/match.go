package api

import (
	"net/http"
	"strings"

	reqdto "seatly/internal/handler/dto/request"
	resdto "seatly/internal/handler/dto/response"
	"seatly/internal/handler/httperr"
	"seatly/internal/pkg/clock"
	"seatly/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	q     queries.MatchQueries
	clock clock.Clock
}

func NewMatchHandler(q queries.MatchQueries, clock clock.Clock) *MatchHandler {
	return &MatchHandler{q: q, clock: clock}
}

// @Summary List matches
// @Description Upcoming matches, soonest first
// @Tags matches
// @Produce json
// @Param from query string false "RFC3339 lower bound, defaults to now"
// @Success 200 {array} resdto.MatchResponse
// @Failure 400 {object} httperr.Response
// @Router /api/matches [get]
func (h *MatchHandler) ListMatches(c *gin.Context) {
	var query reqdto.ListMatchesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	from := h.clock.Now()
	if query.From != nil {
		from = *query.From
	}

	views, err := h.q.ListMatches(c.Request.Context(), from)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to list matches")
		return
	}

	out := make([]*resdto.MatchResponse, 0, len(views))
	for _, v := range views {
		out = append(out, resdto.FromMatchView(v))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Bars broadcasting a match
// @Description Bars with their promotion price and free seats for the match
// @Tags matches
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {array} resdto.BarAvailabilityResponse
// @Failure 404 {object} httperr.Response
// @Router /api/matches/{id}/bars [get]
func (h *MatchHandler) ListBars(c *gin.Context) {
	views, err := h.q.ListBarsForMatch(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to list bars")
		return
	}

	out := make([]*resdto.BarAvailabilityResponse, 0, len(views))
	for _, v := range views {
		out = append(out, resdto.FromBarAvailabilityView(v))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Check availability
// @Description Whether a party fits in the bar's free tables for the match
// @Tags matches
// @Produce json
// @Param id path string true "Match ID"
// @Param barId query string true "Bar ID"
// @Param people query int true "Party size"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/matches/{id}/availability [get]
func (h *MatchHandler) CheckAvailability(c *gin.Context) {
	var query reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	view, err := h.q.CheckAvailability(c.Request.Context(), query.BarID, strings.TrimSpace(c.Param("id")), query.People)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to check availability")
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}
