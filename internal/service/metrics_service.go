package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the enrollment
// flow. All record methods tolerate a nil receiver so callers never need to
// guard on whether metrics are enabled.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	sessionsActive  prometheus.Gauge
	sessionsCreated prometheus.Counter
	sessionsExpired prometheus.Counter
	promoApplies    *prometheus.CounterVec
	submissions     *prometheus.CounterVec
	exportDuration  *prometheus.HistogramVec
}

// NewMetricsService registers the enrollment collectors on a fresh registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	sessionsActive := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "enrollment_sessions_active",
		Help: "Number of live enrollment sessions",
	})

	sessionsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "enrollment_sessions_created_total",
		Help: "Total enrollment sessions created",
	})

	sessionsExpired := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "enrollment_sessions_expired_total",
		Help: "Total enrollment sessions ended by the countdown",
	})

	promoApplies := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "enrollment_promo_applies_total",
		Help: "Promocode application attempts by result",
	}, []string{"result"})

	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "enrollment_submissions_total",
		Help: "Enrollment submissions by result",
	}, []string{"result"})

	exportDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "enrollment_export_duration_seconds",
		Help:    "Duration of summary export rendering",
		Buckets: prometheus.DefBuckets,
	}, []string{"format"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, sessionsActive, sessionsCreated, sessionsExpired, promoApplies, submissions, exportDuration, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		sessionsActive:  sessionsActive,
		sessionsCreated: sessionsCreated,
		sessionsExpired: sessionsExpired,
		promoApplies:    promoApplies,
		submissions:     submissions,
		exportDuration:  exportDuration,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// SessionCreated bumps the active gauge alongside the created counter.
func (m *MetricsService) SessionCreated() {
	if m == nil {
		return
	}
	m.sessionsCreated.Inc()
	m.sessionsActive.Inc()
}

// SessionRemoved decrements the active gauge.
func (m *MetricsService) SessionRemoved() {
	if m == nil {
		return
	}
	m.sessionsActive.Dec()
}

// SessionExpired counts a countdown-triggered reset.
func (m *MetricsService) SessionExpired() {
	if m == nil {
		return
	}
	m.sessionsExpired.Inc()
}

// RecordPromoApply counts an application attempt by outcome.
func (m *MetricsService) RecordPromoApply(success bool) {
	if m == nil {
		return
	}
	result := "rejected"
	if success {
		result = "applied"
	}
	m.promoApplies.WithLabelValues(result).Inc()
}

// RecordSubmission counts a submission outcome ("complete", "invalid",
// "aborted").
func (m *MetricsService) RecordSubmission(result string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(result).Inc()
}

// ObserveExport records summary export rendering time by format.
func (m *MetricsService) ObserveExport(format string, duration time.Duration) {
	if m == nil {
		return
	}
	m.exportDuration.WithLabelValues(format).Observe(duration.Seconds())
}
