package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// SearchOutcomes returns a timeseries panel showing search outcomes.
func SearchOutcomes() *timeseries.PanelBuilder {
	return timeSeries("Search Outcomes", "Complete, partial and failed searches per second").
		WithTarget(PromQuery(`sum(rate(pscout_searches_total[5m])) by (outcome)`, "{{outcome}}", "A")).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// ExtractionFallbacks returns a timeseries panel showing degraded results
// by task and reason.
func ExtractionFallbacks() *timeseries.PanelBuilder {
	return timeSeries("Fallbacks", "Results replaced by a fallback, by task and reason").
		WithTarget(PromQuery(`pscout:extraction_fallbacks:rate5m`, "{{task}} {{reason}}", "A")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(0.01, 0.1))
}

// PricesAvailable returns a timeseries panel showing how many of the four
// platforms had a real price per search.
func PricesAvailable() *timeseries.PanelBuilder {
	p := timeSeries("Platforms Priced", "Median and p10 of platforms with a real price per search").
		Min(0).
		Max(4)
	return withTargets(p, quantileTargets("pscout_prices_available", "15m", 0.50, 0.10))
}

// SuggestShortCircuits returns a timeseries panel showing autocomplete
// requests answered without a model call.
func SuggestShortCircuits() *timeseries.PanelBuilder {
	return timeSeries("Suggest Short-Circuits", "Autocomplete requests too short to reach the model").
		WithTarget(PromQuery(`rate(pscout_suggest_short_circuits_total[5m])`, "req/s", "A"))
}
