package engine

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/donaldgifford/price-scout/internal/metrics"
	"github.com/donaldgifford/price-scout/pkg/extract"
	domain "github.com/donaldgifford/price-scout/pkg/types"
)

// MetricsObserver records invocation and fallback events as Prometheus
// metrics. It implements extract.Observer.
type MetricsObserver struct{}

var _ extract.Observer = MetricsObserver{}

// ObserveInvocation records one model call.
func (MetricsObserver) ObserveInvocation(
	task domain.TaskKind,
	backend string,
	elapsed time.Duration,
	res extract.InvokeResult,
	err error,
) {
	metrics.LLMCallDuration.WithLabelValues(string(task), backend).Observe(elapsed.Seconds())

	if err != nil {
		metrics.LLMFailuresTotal.WithLabelValues(string(task), failureKind(err)).Inc()
		return
	}

	metrics.LLMTokensTotal.WithLabelValues(string(task), "prompt").Add(float64(res.Usage.PromptTokens))
	metrics.LLMTokensTotal.WithLabelValues(string(task), "completion").Add(float64(res.Usage.CompletionTokens))
	metrics.GroundingSourcesTotal.WithLabelValues(string(task)).Add(float64(len(res.Citations)))
}

// ObserveFallback records a degraded result.
func (MetricsObserver) ObserveFallback(task domain.TaskKind, reason string) {
	if task == domain.TaskAutocomplete && reason == extract.FallbackShortQuery {
		metrics.SuggestShortCircuitsTotal.Inc()
		return
	}
	metrics.ExtractionFallbacksTotal.WithLabelValues(string(task), reason).Inc()
}

func failureKind(err error) string {
	var invErr *extract.InvocationError
	switch {
	case extract.IsAuthFailure(err):
		return "auth"
	case errors.As(err, &invErr) && invErr.StatusCode == http.StatusTooManyRequests:
		return "quota"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &invErr) && invErr.StatusCode >= http.StatusInternalServerError:
		return "server"
	default:
		return "transport"
	}
}
