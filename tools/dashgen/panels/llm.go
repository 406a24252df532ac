package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// LLMCallDuration returns a timeseries panel showing p95 model call latency
// per task.
func LLMCallDuration() *timeseries.PanelBuilder {
	return timeSeries("Model Call Duration p95", "Model call latency per task; grounded calls are the slow ones").
		WithTarget(PromQuery(Quantile(0.95, "pscout_llm_call_duration_seconds", "5m", "task"), "{{task}}", "A")).
		Unit("s").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// LLMFailures returns a timeseries panel showing model call failures by kind.
func LLMFailures() *timeseries.PanelBuilder {
	return timeSeries("Model Call Failures",
		"Failed model calls per second by kind (auth, quota, timeout, server, transport)").
		WithTarget(PromQuery(`pscout:llm_failures:rate5m`, "{{kind}}", "A")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(0.01, 0.1))
}

// LLMTokens returns a timeseries panel showing token throughput.
func LLMTokens() *timeseries.PanelBuilder {
	return timeSeries("Tokens", "Prompt and completion tokens per second").
		WithTarget(PromQuery(`sum(rate(pscout_llm_tokens_total[5m])) by (direction)`, "{{direction}}", "A")).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// GroundingSources returns a timeseries panel showing citations per
// grounded call.
func GroundingSources() *timeseries.PanelBuilder {
	return timeSeries("Sources per Call", "Average web sources attached to a grounded call").
		WithTarget(PromQuery(
			`sum(rate(pscout_grounding_sources_total[5m])) by (task) / `+
				`sum(rate(pscout_llm_call_duration_seconds_count{task!="autocomplete"}[5m])) by (task)`,
			"{{task}}",
			"A",
		))
}
