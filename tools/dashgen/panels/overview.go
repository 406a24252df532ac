package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// HealthzStat returns a stat panel showing the health check status.
func HealthzStat() *stat.PanelBuilder {
	return statusStat("Healthz", "Health check status (1 = ok, 0 = failing)", `pscout_healthz_up`)
}

// ReadyzStat returns a stat panel showing the readiness check status. The
// service is not ready while the model backend lacks credentials.
func ReadyzStat() *stat.PanelBuilder {
	return statusStat("Readyz", "Readiness check status (1 = ready, 0 = backend not configured)", `pscout_readyz_up`)
}

// SearchSuccessGauge returns a gauge panel showing the share of searches
// that produced a result.
func SearchSuccessGauge() *gauge.PanelBuilder {
	return gauge.NewPanelBuilder().
		Title("Search Success %").
		Description("Searches with an analysis or at least one price row, last hour").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`(1 - sum(increase(pscout_searches_total{outcome="failed"}[1h])) / sum(increase(pscout_searches_total[1h]))) * 100`,
			"", "A",
		)).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(ThresholdsRedGreen(90)).
		ColorScheme(ColorSchemeThresholds())
}

// UptimeStat returns a stat panel showing process uptime.
func UptimeStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Uptime").
		Description("Time since process start").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`time() - process_start_time_seconds`+JobSelector(), "", "A")).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeNone)
}
