package rules

// RecordingRules returns the pre-computed rates used by the overview
// dashboard and the alert rules.
func RecordingRules() PrometheusRule {
	return newResource("pscout-recording-rules", "pscout-recording",
		record("pscout:http_requests:rate5m", `sum(rate(pscout_http_requests_total[5m]))`),
		record("pscout:http_errors:rate5m", `sum(rate(pscout_http_requests_total{status=~"5.."}[5m]))`),
		record("pscout:llm_failures:rate5m", `sum(rate(pscout_llm_failures_total[5m])) by (kind)`),
		record(
			"pscout:extraction_fallbacks:rate5m",
			`sum(rate(pscout_extraction_fallbacks_total[5m])) by (task, reason)`,
		),
		record("pscout:searches:rate5m", `sum(rate(pscout_searches_total[5m]))`),
		record("pscout:searches_failed:rate5m", `sum(rate(pscout_searches_total{outcome="failed"}[5m]))`),
	)
}
