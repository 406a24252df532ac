package extract

import (
	"strings"

	domain "github.com/donaldgifford/price-scout/pkg/types"
)

// statusMap maps lower-cased status strings from the model to canonical
// statuses.
var statusMap = map[string]domain.PriceStatus{
	// canonical values (identity mappings)
	"market price":  domain.StatusMarketPrice,
	"avg listed":    domain.StatusAvgListed,
	"recently sold": domain.StatusRecentSold,
	"low-high":      domain.StatusLowHigh,
	"wesell price":  domain.StatusWeSell,
	"check website": domain.StatusCheckWebsite,
	"not found":     domain.StatusNotFound,
	// model variants
	"average listed":    domain.StatusAvgListed,
	"avg. listed":       domain.StatusAvgListed,
	"average price":     domain.StatusAvgListed,
	"recent sold":       domain.StatusRecentSold,
	"sold":              domain.StatusRecentSold,
	"low - high":        domain.StatusLowHigh,
	"low to high":       domain.StatusLowHigh,
	"range":             domain.StatusLowHigh,
	"we sell":           domain.StatusWeSell,
	"we sell price":     domain.StatusWeSell,
	"wesell":            domain.StatusWeSell,
	"check site":        domain.StatusCheckWebsite,
	"check the website": domain.StatusCheckWebsite,
	"see website":       domain.StatusCheckWebsite,
	"unavailable":       domain.StatusNotFound,
	"no price found":    domain.StatusNotFound,
	"no data":           domain.StatusNotFound,
	"out of stock":      domain.StatusNotFound,
}

// NormalizeStatus maps a raw status string from the model to a canonical
// status. Unknown non-empty statuses are returned trimmed; an empty status
// becomes StatusCheckWebsite.
func NormalizeStatus(raw string) domain.PriceStatus {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return domain.StatusCheckWebsite
	}

	if s, ok := statusMap[strings.ToLower(trimmed)]; ok {
		return s
	}

	return domain.PriceStatus(trimmed)
}
