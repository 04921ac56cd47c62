package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "seatly"

// Collector owns a private registry so tests can build as many as they like.
type Collector struct {
	registry *prometheus.Registry

	redirects      *prometheus.CounterVec
	finalizeTime   *prometheus.HistogramVec
	verifications  *prometheus.CounterVec
	verifyDuration prometheus.Histogram
	httpRequests   *prometheus.CounterVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		redirects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redirects_total",
			Help:      "Redirect events handled by the inbox, by channel and outcome.",
		}, []string{"channel", "outcome"}),
		finalizeTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "redirect_handle_seconds",
			Help:      "Time spent handling one redirect event.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"channel"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_verifications_total",
			Help:      "Calls to the payment verification endpoint, by result.",
		}, []string{"result"}),
		verifyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "payment_verification_seconds",
			Help:      "Latency of the payment verification endpoint.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2, 4, 8},
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.redirects,
		c.finalizeTime,
		c.verifications,
		c.verifyDuration,
		c.httpRequests,
	)
	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) ObserveRedirect(channel, outcome string, took time.Duration) {
	c.redirects.WithLabelValues(channel, outcome).Inc()
	c.finalizeTime.WithLabelValues(channel).Observe(took.Seconds())
}

func (c *Collector) ObserveVerification(result string, took time.Duration) {
	c.verifications.WithLabelValues(result).Inc()
	c.verifyDuration.Observe(took.Seconds())
}

// VerificationCounter exposes one series for assertions.
func (c *Collector) VerificationCounter(result string) prometheus.Counter {
	return c.verifications.WithLabelValues(result)
}

func (c *Collector) ObserveHTTP(route, code string) {
	c.httpRequests.WithLabelValues(route, code).Inc()
}
