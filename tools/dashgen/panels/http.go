package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RequestRate returns a timeseries panel showing the HTTP request rate.
func RequestRate() *timeseries.PanelBuilder {
	return timeSeries("Request Rate", "HTTP requests per second").
		WithTarget(PromQuery(`pscout:http_requests:rate5m`, "req/s", "A")).
		Unit("reqps").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// LatencyPercentiles returns a timeseries panel showing p50, p95 and p99
// HTTP request latencies.
func LatencyPercentiles() *timeseries.PanelBuilder {
	p := timeSeries("Latency Percentiles", "HTTP request duration percentiles").
		Unit("s").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
	return withTargets(p, quantileTargets("pscout_http_request_duration_seconds", "5m", 0.50, 0.95, 0.99))
}

// ErrorRate returns a timeseries panel showing the HTTP 5xx error rate
// as a percentage.
func ErrorRate() *timeseries.PanelBuilder {
	return timeSeries("Error Rate %", "HTTP 5xx error rate as percentage of total requests").
		WithTarget(PromQuery(`pscout:http_errors:rate5m / pscout:http_requests:rate5m * 100`, "error %", "A")).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds())
}

// HandlerPanics returns a timeseries panel showing recovered handler
// panics per route. Any non-zero value is a bug.
func HandlerPanics() *timeseries.PanelBuilder {
	return timeSeries("Handler Panics", "Recovered handler panics per route over 10m").
		WithTarget(PromQuery(
			fmt.Sprintf(`sum(increase(pscout_http_panics_total%s[10m])) by (path)`, JobSelector()),
			"{{path}}", "A",
		)).
		Min(0).
		Thresholds(ThresholdsGreenYellowRed(0.5, 1)).
		ColorScheme(ColorSchemeThresholds())
}
