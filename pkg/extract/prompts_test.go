package extract_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/price-scout/pkg/extract"
	domain "github.com/donaldgifford/price-scout/pkg/types"
)

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		kind     domain.TaskKind
		query    string
		currency domain.Currency
		wantSubs []string
	}{
		{
			name:  "autocomplete",
			kind:  domain.TaskAutocomplete,
			query: "  poke ",
			wantSubs: []string{
				`Input: "poke"`,
				"JSON array of up to 5 short strings",
				"No markdown",
			},
		},
		{
			name:     "analysis",
			kind:     domain.TaskAnalysis,
			query:    "Zelda Tears of the Kingdom",
			currency: domain.CurrencyJPY,
			wantSubs: []string{
				`Analyze item: "Zelda Tears of the Kingdom"`,
				"Estimate Market Value in JPY",
				"JP, US, ASIA",
				"MUST use the Google Search tool",
				"ONLY trust official sources: nintendo.co.jp",
				"direct link to the specific product page",
				`"estimatedValue": "JPY XX"`,
				`{ "region": "ASIA"`,
			},
		},
		{
			name:     "prices",
			kind:     domain.TaskPrices,
			query:    "Mario Kart 8",
			currency: domain.CurrencyMYR,
			wantSubs: []string{
				`REAL-TIME market prices for "Mario Kart 8" in MYR`,
				"DO NOT INVENT ONE",
				`set status to "Check Website" and price to "---"`,
				"1. PriceCharting",
				"4. CeX / Webuy MY",
				"Exactly 4 entries",
				`"price": "MYR XX"`,
			},
		},
		{
			name:     "missing currency defaults",
			kind:     domain.TaskPrices,
			query:    "Switch OLED",
			wantSubs: []string{"in MYR"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := extract.BuildPrompt(tt.kind, tt.query, tt.currency)
			require.NoError(t, err)
			for _, sub := range tt.wantSubs {
				assert.Contains(t, got, sub)
			}
		})
	}
}

func TestBuildPrompt_Errors(t *testing.T) {
	t.Parallel()

	_, err := extract.BuildPrompt(domain.TaskAnalysis, "   ", domain.CurrencyUSD)
	require.Error(t, err)
	assert.ErrorIs(t, err, extract.ErrInvalidInput)

	_, err = extract.BuildPrompt("translate", "zelda", domain.CurrencyUSD)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no prompt for task")
}

func TestRenderPricePrompt_TemplateIsValidJSONShape(t *testing.T) {
	t.Parallel()

	got, err := extract.RenderPricePrompt("Pokemon Emerald", domain.CurrencyUSD)
	require.NoError(t, err)

	// The example object in the prompt must itself be extractable.
	start := strings.Index(got, "{\n")
	require.GreaterOrEqual(t, start, 0)

	var example domain.PriceInsight
	_, err = extract.DecodeJSON(got[start:], &example)
	require.NoError(t, err)
	require.Len(t, example.Prices, len(extract.DefaultPriceTargets))
	assert.Equal(t, "PriceCharting", example.Prices[0].Platform)
}

func TestRenderAnalysisPrompt_ExampleIsValidJSON(t *testing.T) {
	t.Parallel()

	got, err := extract.RenderAnalysisPrompt("Pokemon Emerald", domain.CurrencyUSD)
	require.NoError(t, err)

	start := strings.Index(got, "{\n")
	require.GreaterOrEqual(t, start, 0)

	var example domain.ItemAnalysis
	_, err = extract.DecodeJSON(got[start:], &example)
	require.NoError(t, err)
	require.Len(t, example.Versions, 3)
	assert.Equal(t, "JP", example.Versions[0].Region)
}
