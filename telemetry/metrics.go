package telemetry

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP metrics
var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests received, partitioned by method, route and status class.",
		},
		[]string{"method", "route", "status_class"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds, partitioned by method, route and status class.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5},
		},
		[]string{"method", "route", "status_class"},
	)
)

// Partner call metrics
var (
	outboundCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbound_calls_total",
			Help: "Total number of partner API calls, partitioned by target and outcome.",
		},
		[]string{"target", "outcome"}, // outcome: rejected | succeeded | failed | panicked
	)

	outboundCallDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outbound_call_duration_seconds",
			Help:    "Partner API call duration in seconds, partitioned by target.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"target"},
	)

	cpfValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cpf_validations_total",
			Help: "Total number of CPF validations, partitioned by result.",
		},
		[]string{"result"}, // valid | invalid
	)
)

// Loan request metrics
var (
	loanRequestsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "loan_requests_created_total",
			Help: "Total number of loan requests successfully stored.",
		},
	)

	loanRequestsDeletedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "loan_requests_deleted_total",
			Help: "Total number of loan requests deleted.",
		},
	)

	loanRequestsFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loan_requests_failed_total",
			Help: "Total number of failed loan request operations, partitioned by reason.",
		},
		[]string{"reason"}, // reasons: validation | db | not_found
	)
)

// Event metrics
var (
	eventsPublishedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of loan request events published.",
		},
	)

	eventsFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_failed_total",
			Help: "Total number of loan request events that could not be published, partitioned by reason.",
		},
		[]string{"reason"}, // reasons: schema | kafka
	)

	eventsDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "events_dropped_total",
			Help: "Total number of events dropped because the queue was full.",
		},
	)

	eventsQueueCurrent = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "events_queue_current",
			Help: "Current number of events waiting in the in-process queue (approximate).",
		},
	)
)

// Rate limit metrics
var rateLimitDecisionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "rate_limit_decisions_total",
		Help: "Total number of rate limit decisions, partitioned by result.",
	},
	[]string{"result"}, // allowed | denied
)

// InitMetrics called on startup
func InitMetrics() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDurationSeconds,
		outboundCallsTotal,
		outboundCallDurationSeconds,
		cpfValidationsTotal,
		loanRequestsCreatedTotal,
		loanRequestsDeletedTotal,
		loanRequestsFailedTotal,
		eventsPublishedTotal,
		eventsFailedTotal,
		eventsDroppedTotal,
		eventsQueueCurrent,
		rateLimitDecisionsTotal,
	)
}

// PrometheusMiddleware measures one HTTP request: increments counter and observes latency.
// It uses gin.Context.FullPath() to record the *route template* (e.g., /consultarCpf/:cpf).
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next() // execute handler chain

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		method := c.Request.Method
		status := c.Writer.Status()
		statusClass := fmt.Sprintf("%dxx", status/100)

		httpRequestsTotal.WithLabelValues(method, route, statusClass).Inc()
		httpRequestDurationSeconds.WithLabelValues(method, route, statusClass).Observe(time.Since(start).Seconds())
	}
}

// MetricsHandler exposes /metrics in Prometheus text exposition format.
func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
