package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PricingMetrics records pricing engine outcomes.
type PricingMetrics struct {
	linesPriced     *prometheus.CounterVec
	unavailable     *prometheus.CounterVec
	quotesSubmitted prometheus.Counter
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	linesPriced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_lines_priced_total",
		Help: "Line items resolved against the dimension matrix.",
	}, []string{"product"})
	unavailable := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_lookup_unavailable_total",
		Help: "Matrix lookups that found no price for the rounded cell.",
	}, []string{"product"})
	quotesSubmitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quotes_submitted_total",
		Help: "Quote snapshots persisted.",
	})
	reg.MustRegister(linesPriced, unavailable, quotesSubmitted)
	return &PricingMetrics{
		linesPriced:     linesPriced,
		unavailable:     unavailable,
		quotesSubmitted: quotesSubmitted,
	}
}

// IncLinePriced counts a successfully priced line for the named product.
func (p *PricingMetrics) IncLinePriced(product string) {
	if p == nil || p.linesPriced == nil {
		return
	}
	p.linesPriced.WithLabelValues(normalizeLabel(product)).Inc()
}

// IncUnavailable counts a lookup that hit an empty matrix cell.
func (p *PricingMetrics) IncUnavailable(product string) {
	if p == nil || p.unavailable == nil {
		return
	}
	p.unavailable.WithLabelValues(normalizeLabel(product)).Inc()
}

// IncQuoteSubmitted counts one persisted quote snapshot.
func (p *PricingMetrics) IncQuoteSubmitted() {
	if p == nil || p.quotesSubmitted == nil {
		return
	}
	p.quotesSubmitted.Inc()
}

// HTTPMetrics records request durations by route and status class.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	reg.MustRegister(duration)
	return &HTTPMetrics{duration: duration}
}

// Observe records one request.
func (h *HTTPMetrics) Observe(method, route, status string, elapsed time.Duration) {
	if h == nil || h.duration == nil {
		return
	}
	h.duration.WithLabelValues(normalizeLabel(method), route, status).Observe(elapsed.Seconds())
}

func normalizeLabel(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return "unknown"
	}
	return trimmed
}
