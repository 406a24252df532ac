// Package metrics defines Prometheus metrics for price-scout.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pscout"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HTTPPanicsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_panics_total",
		Help:      "Total number of handler panics recovered.",
	}, []string{"method", "path"})
)

// LLM invocation metrics.
var (
	LLMCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "llm_call_duration_seconds",
		Help:      "Duration of LLM calls in seconds, by task.",
		Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
	}, []string{"task", "backend"})

	LLMFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "llm_failures_total",
		Help:      "Total number of failed LLM calls, by task and failure kind.",
	}, []string{"task", "kind"})

	LLMTokensTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "llm_tokens_total",
		Help:      "Total LLM tokens consumed, by task and direction.",
	}, []string{"task", "direction"})

	GroundingSourcesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "grounding_sources_total",
		Help:      "Total number of web sources returned by grounded calls.",
	}, []string{"task"})
)

// Extraction metrics.
var (
	ExtractionFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "extraction_fallbacks_total",
		Help:      "Total number of degraded fallback results, by task and reason.",
	}, []string{"task", "reason"})

	SuggestShortCircuitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "suggest_short_circuits_total",
		Help:      "Total number of suggestion requests answered without a model call.",
	})
)

// Search metrics.
var (
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of dual searches, by outcome.",
	}, []string{"outcome"})

	PricesAvailable = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prices_available",
		Help:      "Distribution of platforms with an available price per lookup.",
		Buckets:   prometheus.LinearBuckets(0, 1, 6), // 0, 1, ..., 5
	})
)

// Health metrics.
var (
	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the liveness check last succeeded (1) or failed (0).",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Whether the readiness check last succeeded (1) or failed (0).",
	})
)
