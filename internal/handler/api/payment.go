package api

import (
	"net/http"

	"seatly/internal/domain/redirect"
	reqdto "seatly/internal/handler/dto/request"
	"seatly/internal/handler/httperr"
	"seatly/internal/pkg/clock"
	"seatly/internal/pkg/config"
	"seatly/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var errUnknownChannel = errs.New("unknown redirect channel")

// PaymentHandler receives payment provider redirects from every channel and
// feeds them to the redirect inbox.
type PaymentHandler struct {
	parser *redirect.Parser
	inbox  RedirectSubmitter
	clock  clock.Clock
}

func NewPaymentHandler(cfg config.Config, inbox RedirectSubmitter, clock clock.Clock) *PaymentHandler {
	return &PaymentHandler{
		parser: redirect.NewParser(cfg.Redirect.AppScheme),
		inbox:  inbox,
		clock:  clock,
	}
}

// @Summary Payment back url
// @Description Landing page of the provider back urls when opened in a browser tab
// @Tags payments
// @Produce json
// @Param result path string true "success, failure or pending"
// @Param reservationId query string false "Reservation ID"
// @Param payment_id query string false "Payment ID"
// @Param collection_id query string false "Legacy payment ID"
// @Param collection_status query string false "Legacy payment status"
// @Success 200 {object} resdto.OutcomeResponse
// @Success 202 {object} resdto.OutcomeResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /payment/{result} [get]
func (h *PaymentHandler) BackURL(c *gin.Context) {
	raw := requestURL(c)
	ev := redirect.Event{
		Channel:    redirect.ChannelBrowser,
		Signal:     h.parser.Parse(raw),
		RawURL:     raw,
		ReceivedAt: h.clock.Now(),
	}
	submitAndRespond(c, h.inbox, ev)
}

// @Summary Submit intercepted redirect
// @Description The app posts a redirect it intercepted as a deep link or inside the checkout webview
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.RedirectRequest true "Redirect"
// @Success 200 {object} resdto.OutcomeResponse
// @Success 202 {object} resdto.OutcomeResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/payments/redirects [post]
func (h *PaymentHandler) SubmitRedirect(c *gin.Context) {
	var req reqdto.RedirectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	channel, ok := req.GetChannel()
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errUnknownChannel, "Unknown channel", gin.H{"channel": req.Channel})
		return
	}

	ev := redirect.Event{
		Channel:    channel,
		Signal:     h.parser.Parse(req.URL),
		RawURL:     req.URL,
		ReceivedAt: h.clock.Now(),
	}
	submitAndRespond(c, h.inbox, ev)
}

// requestURL rebuilds the absolute URL the browser opened, honouring the proxy headers.
func requestURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	host := c.Request.Host
	if fwd := c.GetHeader("X-Forwarded-Host"); fwd != "" {
		host = fwd
	}
	return scheme + "://" + host + c.Request.URL.RequestURI()
}
