//go:build unit

package middleware_test

import (
	"net/http"
	"strings"
	"testing"

	"seatly/internal/handler/middleware"
	"seatly/internal/infra/metrics"
	"seatly/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.NewCollector()
	router := gin.New()
	router.Use(middleware.MetricsMiddleware(m))
	router.GET("/api/reservations/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	httptest.PerformRequest(t, router, http.MethodGet, "/api/reservations/r-1", nil, "")
	httptest.PerformRequest(t, router, http.MethodGet, "/api/reservations/r-2", nil, "")
	httptest.PerformRequest(t, router, http.MethodGet, "/nowhere", nil, "")

	expected := `
# HELP seatly_http_requests_total HTTP requests by route and status code.
# TYPE seatly_http_requests_total counter
seatly_http_requests_total{code="204",route="/api/reservations/:id"} 2
seatly_http_requests_total{code="404",route="unmatched"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "seatly_http_requests_total"))
}
