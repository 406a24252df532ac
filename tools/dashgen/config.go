package main

import "errors"

// KnownMetrics is the set of metric names exported by price-scout plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"pscout_http_request_duration_seconds": true,
	"pscout_http_requests_total":           true,
	"pscout_http_panics_total":             true,

	// Health metrics.
	"pscout_healthz_up": true,
	"pscout_readyz_up":  true,

	// Model call metrics.
	"pscout_llm_call_duration_seconds": true,
	"pscout_llm_failures_total":        true,
	"pscout_llm_tokens_total":          true,
	"pscout_grounding_sources_total":   true,

	// Extraction metrics.
	"pscout_extraction_fallbacks_total":   true,
	"pscout_suggest_short_circuits_total": true,

	// Search metrics.
	"pscout_searches_total":   true,
	"pscout_prices_available": true,

	// Recording rules.
	"pscout:http_requests:rate5m":        true,
	"pscout:http_errors:rate5m":          true,
	"pscout:llm_failures:rate5m":         true,
	"pscout:extraction_fallbacks:rate5m": true,
	"pscout:searches:rate5m":             true,
	"pscout:searches_failed:rate5m":      true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
