package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"seatly/internal/infra/metrics"
	"seatly/internal/pkg/config"
	"seatly/internal/pkg/errs"
	"seatly/internal/usecase/commands"

	circuit "github.com/rubyist/circuitbreaker"
	"golang.org/x/time/rate"
)

const verifyPath = "/api/verifyPayment"

var (
	ErrVerifierStatus    = errs.New("verification endpoint failed")
	ErrVerifierBadBody   = errs.New("verification endpoint returned an unreadable body")
	ErrVerifierThrottled = errs.New("verification rate limit wait aborted")
)

// HTTPVerifier asks the payment backend whether a payment is approved. Calls go
// through a rate limiter and a threshold circuit breaker.
type HTTPVerifier struct {
	baseURL string
	client  *circuit.HTTPClient
	limiter *rate.Limiter
	metrics *metrics.Collector
}

var _ commands.PaymentVerifier = (*HTTPVerifier)(nil)

func NewHTTPVerifier(cfg config.PaymentConfig, m *metrics.Collector) *HTTPVerifier {
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &HTTPVerifier{
		baseURL: strings.TrimSuffix(cfg.VerifyBaseURL, "/"),
		client:  circuit.NewHTTPClient(cfg.Timeout, cfg.BreakerThreshold, &http.Client{Timeout: cfg.Timeout}),
		limiter: rate.NewLimiter(limit, burst),
		metrics: m,
	}
}

func (v *HTTPVerifier) Verify(ctx context.Context, paymentID string) (*commands.Verification, error) {
	if err := v.limiter.Wait(ctx); err != nil {
		return nil, errs.Mark(err, ErrVerifierThrottled)
	}

	endpoint := v.baseURL + verifyPath + "?" + url.Values{"payment_id": {paymentID}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errs.Wrap(err, "build verification request")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := v.client.Do(req)
	if err != nil {
		result := "error"
		if errors.Is(err, circuit.ErrBreakerOpen) {
			result = "breaker_open"
		}
		v.metrics.ObserveVerification(result, time.Since(start))
		return nil, errs.Wrap(err, "call verification endpoint")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		v.metrics.ObserveVerification("error", time.Since(start))
		return nil, errs.Wrapf(ErrVerifierStatus, "status %d", resp.StatusCode)
	}

	var body commands.Verification
	if resp.StatusCode != http.StatusOK {
		// The backend answers 4xx for payments it does not know yet; that is not an approval.
		body.Status = fmt.Sprintf("http_%d", resp.StatusCode)
		v.metrics.ObserveVerification("not_approved", time.Since(start))
		slog.WarnContext(ctx, "verification endpoint rejected payment id",
			"payment_id", paymentID,
			"status_code", resp.StatusCode)
		return &body, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		v.metrics.ObserveVerification("error", time.Since(start))
		return nil, errs.Mark(err, ErrVerifierBadBody)
	}
	if body.ExternalReference != nil && *body.ExternalReference == "" {
		body.ExternalReference = nil
	}

	result := "not_approved"
	if body.Approved() {
		result = "approved"
	}
	v.metrics.ObserveVerification(result, time.Since(start))
	return &body, nil
}
