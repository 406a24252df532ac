package rules

// AlertRules returns the price-scout operational alerts.
func AlertRules() PrometheusRule {
	return newResource("pscout-alerts", "pscout-alerts",
		alert("PscoutDown", `absent(up{job="price-scout"})`, "2m", SeverityCritical,
			"Price Scout is down",
			"The price-scout job has been absent for more than 2 minutes."),
		alert("PscoutReadinessDown", `pscout_readyz_up == 0`, "2m", SeverityCritical,
			"Price Scout readiness check is failing",
			"The model backend has been unconfigured or unreachable for more than 2 minutes."),
		alert("PscoutHighErrorRate", `pscout:http_errors:rate5m / pscout:http_requests:rate5m > 0.05`,
			"5m", SeverityWarning,
			"High HTTP error rate on Price Scout",
			"More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes."),
		alert("PscoutHandlerPanics", `sum(increase(pscout_http_panics_total[10m])) > 0`, "", SeverityWarning,
			"Price Scout handlers are panicking",
			"At least one request handler panicked in the last 10 minutes. Check the logs for the stack."),
		alert("PscoutModelAuthFailures", `pscout:llm_failures:rate5m{kind="auth"} > 0`, "1m", SeverityCritical,
			"Model backend is rejecting credentials",
			"Model calls are failing with authentication errors. Check the configured API key."),
		alert("PscoutModelQuotaExhausted", `pscout:llm_failures:rate5m{kind="quota"} > 0`, "5m", SeverityWarning,
			"Model backend quota exhausted",
			"Model calls have been rate limited for more than 5 minutes."),
		alert("PscoutHighFallbackRate", `sum(pscout:extraction_fallbacks:rate5m{reason="extraction"}) > 0.1`,
			"10m", SeverityWarning,
			"Model responses are frequently unparseable",
			"Extraction fallbacks are occurring at more than 0.1/s for the last 10 minutes."),
		alert("PscoutSearchFailures", `pscout:searches_failed:rate5m / pscout:searches:rate5m > 0.25`,
			"10m", SeverityWarning,
			"Searches are failing",
			"More than 25% of searches returned neither an analysis nor any price over the last 10 minutes."),
	)
}
