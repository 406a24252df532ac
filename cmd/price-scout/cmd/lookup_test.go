package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/price-scout/internal/engine"
	extractMocks "github.com/donaldgifford/price-scout/pkg/extract/mocks"
	"github.com/donaldgifford/price-scout/pkg/logger"
	domain "github.com/donaldgifford/price-scout/pkg/types"
)

func TestRunSearch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flags lookupFlags
		check func(*testing.T, string)
	}{
		{
			name:  "json output carries links",
			flags: lookupFlags{json: true},
			check: func(t *testing.T, out string) {
				var got struct {
					Query string `json:"query"`
					Links []struct {
						ID    string                `json:"id"`
						Price *domain.PlatformPrice `json:"price"`
					} `json:"links"`
				}
				require.NoError(t, json.Unmarshal([]byte(out), &got))
				assert.Equal(t, "Pokemon Emerald", got.Query)
				require.Len(t, got.Links, 4)
				assert.Equal(t, "ebay", got.Links[1].ID)
				require.NotNil(t, got.Links[1].Price)
				assert.Equal(t, "RM 210", got.Links[1].Price.Price)
			},
		},
		{
			name:  "plain tables",
			flags: lookupFlags{plain: true},
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "RM 210")
				assert.Contains(t, out, "Video Game")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := extractMocks.NewMockScout(t)
			m.EXPECT().AnalyzeItem(mock.Anything, "Pokemon Emerald", domain.CurrencyMYR).
				Return(&domain.ItemAnalysis{Name: "Pokemon Emerald", Category: "Video Game"}, nil).Once()
			m.EXPECT().SearchItemPrices(mock.Anything, "Pokemon Emerald", domain.CurrencyMYR).
				Return(insight("eBay", "RM 210")).Once()

			eng := engine.NewEngine(m, engine.WithLogger(logger.Discard()))

			var buf bytes.Buffer
			require.NoError(t, runSearch(context.Background(), eng, "Pokemon Emerald", domain.CurrencyMYR, &tt.flags, &buf))
			tt.check(t, buf.String())
		})
	}
}
