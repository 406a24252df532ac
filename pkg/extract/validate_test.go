package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/price-scout/pkg/extract"
	domain "github.com/donaldgifford/price-scout/pkg/types"
)

func TestValidateAnalysis(t *testing.T) {
	t.Parallel()

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()

		err := extract.ValidateAnalysis(&domain.ItemAnalysis{Name: "  ", Category: "Game"})
		require.Error(t, err)
		assert.ErrorIs(t, err, extract.ErrMissingField)
	})

	t.Run("nil analysis", func(t *testing.T) {
		t.Parallel()

		err := extract.ValidateAnalysis(nil)
		assert.ErrorIs(t, err, extract.ErrMissingField)
	})

	t.Run("normalizes fields", func(t *testing.T) {
		t.Parallel()

		a := &domain.ItemAnalysis{
			Name:       " Pokemon Emerald ",
			SearchTips: []string{"gba", " ", "emerald", "rpg", "gen 3", "hoenn", "extra"},
			Versions: []domain.RegionVersion{
				{Region: "japan", Languages: "Japanese "},
				{Region: "EU", Languages: "English"},
				{Region: "USA", Languages: "English", SourceURL: " https://www.nintendo.com/x "},
				{Region: "asia", Languages: "Chinese"},
			},
		}

		require.NoError(t, extract.ValidateAnalysis(a))
		assert.Equal(t, "Pokemon Emerald", a.Name)
		assert.Equal(t, "N/A", a.EstimatedValue)
		assert.Equal(t, []string{"gba", "emerald", "rpg", "gen 3", "hoenn"}, a.SearchTips)
		require.Len(t, a.Versions, 3)
		assert.Equal(t, "JP", a.Versions[0].Region)
		assert.Equal(t, "Japanese", a.Versions[0].Languages)
		assert.Equal(t, "US", a.Versions[1].Region)
		assert.Equal(t, "https://www.nintendo.com/x", a.Versions[1].SourceURL)
		assert.Equal(t, "ASIA", a.Versions[2].Region)
	})
}

func TestNormalizePriceInsight(t *testing.T) {
	t.Parallel()

	p := &domain.PriceInsight{
		Prices: []domain.PlatformPrice{
			{Platform: "PriceCharting", Price: "USD 30", Status: "market price"},
			{Platform: "eBay", Price: "---", Status: "Avg Listed"},
			{Platform: "", Price: "USD 1", Status: "Avg Listed"},
			{Platform: "Shopee Malaysia", Price: "N/A", Status: "not found"},
			{Platform: "CeX / Webuy MY", Price: "MYR 90", Status: ""},
		},
	}

	extract.NormalizePriceInsight(p)

	require.Len(t, p.Prices, 4)
	assert.Equal(t, string(domain.StatusMarketPrice), p.Prices[0].Status)
	assert.Equal(t, string(domain.StatusCheckWebsite), p.Prices[1].Status)
	assert.Equal(t, domain.PlaceholderPrice, p.Prices[2].Price)
	assert.Equal(t, string(domain.StatusNotFound), p.Prices[2].Status)
	assert.Equal(t, string(domain.StatusCheckWebsite), p.Prices[3].Status)
	assert.Equal(t, "No details available.", p.Overview)

	assert.NotPanics(t, func() { extract.NormalizePriceInsight(nil) })
}

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  domain.PriceStatus
	}{
		{input: "Market Price", want: domain.StatusMarketPrice},
		{input: "  avg listed ", want: domain.StatusAvgListed},
		{input: "Average Listed", want: domain.StatusAvgListed},
		{input: "WeSell", want: domain.StatusWeSell},
		{input: "Check the website", want: domain.StatusCheckWebsite},
		{input: "", want: domain.StatusCheckWebsite},
		{input: "Out of stock", want: domain.StatusNotFound},
		{input: "Mint, sealed", want: domain.PriceStatus("Mint, sealed")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, extract.NormalizeStatus(tt.input))
		})
	}
}
