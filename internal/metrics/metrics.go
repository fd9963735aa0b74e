// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "exec_assistant_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"method", "route", "status"},
	)

	LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "exec_assistant_llm_call_duration_seconds",
			Help:    "Language model call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"operation", "status"},
	)

	DownstreamCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "exec_assistant_downstream_call_duration_seconds",
			Help:    "Internal API call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"method", "status"},
	)

	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exec_assistant_commands_total",
			Help: "Dispatched commands by intent and outcome",
		},
		[]string{"intent", "outcome"},
	)
)

// RecordHTTPRequest observes one served HTTP request.
func RecordHTTPRequest(method, route, status string, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}

// RecordLLMCall observes one language model completion.
func RecordLLMCall(operation, status string, d time.Duration) {
	LLMCallDuration.WithLabelValues(operation, status).Observe(d.Seconds())
}

// RecordDownstreamCall observes one internal API call.
func RecordDownstreamCall(method, status string, d time.Duration) {
	DownstreamCallDuration.WithLabelValues(method, status).Observe(d.Seconds())
}

// IncCommand counts a dispatched command.
func IncCommand(intent, outcome string) {
	CommandsTotal.WithLabelValues(intent, outcome).Inc()
}
