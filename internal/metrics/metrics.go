package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gamecatalog"

var histogramBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

// Metrics holds the collectors of the service. A nil *Metrics records nothing.
type Metrics struct {
	requestTotal     *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	rateLimitHits    *prometheus.CounterVec
	suspiciousLogins prometheus.Counter
	authResults      *prometheus.CounterVec
	interactions     *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. Collectors that are
// already registered are reused.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"}),
		rateLimitHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limit_hits_total",
			Help:      "Number of rate-limited responses",
		}, []string{"route"}),
		suspiciousLogins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "suspicious_logins_total",
			Help:      "Logins further than the configured distance from the previous one",
		}),
		authResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "results_total",
			Help:      "Outcomes of register and login attempts",
		}, []string{"operation", "outcome"}),
		interactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "interactions_total",
			Help:      "Interaction attempts by kind and whether the membership was new",
		}, []string{"kind", "added"}),
	}

	m.requestTotal = register(reg, m.requestTotal)
	m.requestDuration = register(reg, m.requestDuration)
	m.rateLimitHits = register(reg, m.rateLimitHits)
	m.suspiciousLogins = register(reg, m.suspiciousLogins)
	m.authResults = register(reg, m.authResults)
	m.interactions = register(reg, m.interactions)
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if reg == nil {
		return c
	}
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

// ObserveRequest records one handled HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"route":  route,
		"status": strconv.Itoa(status),
	}
	m.requestTotal.With(labels).Inc()
	m.requestDuration.With(labels).Observe(d.Seconds())
}

// RateLimited records a rejected request.
func (m *Metrics) RateLimited(route string) {
	if m == nil {
		return
	}
	m.rateLimitHits.WithLabelValues(route).Inc()
}

// SuspiciousLogin records a login flagged by the distance check.
func (m *Metrics) SuspiciousLogin() {
	if m == nil {
		return
	}
	m.suspiciousLogins.Inc()
}

// AuthResult records the outcome of a register or login attempt.
func (m *Metrics) AuthResult(operation, outcome string) {
	if m == nil {
		return
	}
	m.authResults.WithLabelValues(operation, outcome).Inc()
}

// Interaction records an interaction attempt.
func (m *Metrics) Interaction(kind string, added bool) {
	if m == nil {
		return
	}
	m.interactions.WithLabelValues(kind, strconv.FormatBool(added)).Inc()
}
