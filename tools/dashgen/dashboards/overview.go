// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/price-scout/tools/dashgen/panels"
)

// BuildOverview constructs the Price Scout overview dashboard with all
// metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Price Scout Overview").
		Uid("pscout-overview").
		Tags([]string{"pscout", "price-scout"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.SearchSuccessGauge()).
		WithPanel(panels.UptimeStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()).
		WithPanel(panels.HandlerPanics()))

	// Row 3: Model calls.
	b.WithRow(dashboard.NewRowBuilder("Model Calls").
		WithPanel(panels.LLMCallDuration()).
		WithPanel(panels.LLMFailures()).
		WithPanel(panels.LLMTokens()).
		WithPanel(panels.GroundingSources()))

	// Row 4: Search.
	b.WithRow(dashboard.NewRowBuilder("Search").
		WithPanel(panels.SearchOutcomes()).
		WithPanel(panels.ExtractionFallbacks()).
		WithPanel(panels.PricesAvailable()).
		WithPanel(panels.SuggestShortCircuits()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
