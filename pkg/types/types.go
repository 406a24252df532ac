// Package domain defines the core types shared by the price-scout packages.
package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Currency is a 3-letter currency code from a fixed set.
type Currency string

// Supported currencies.
const (
	CurrencyMYR Currency = "MYR"
	CurrencyUSD Currency = "USD"
	CurrencyJPY Currency = "JPY"
	CurrencySGD Currency = "SGD"
	CurrencyHKD Currency = "HKD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// DefaultCurrency is used when no currency is selected.
const DefaultCurrency = CurrencyMYR

var currencies = []Currency{
	CurrencyMYR,
	CurrencyUSD,
	CurrencyJPY,
	CurrencySGD,
	CurrencyHKD,
	CurrencyEUR,
	CurrencyGBP,
}

// Currencies returns the supported currency codes in display order.
func Currencies() []Currency {
	return slices.Clone(currencies)
}

// ParseCurrency returns the Currency for code, ignoring case and surrounding
// whitespace. It fails for codes outside the supported set.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if !slices.Contains(currencies, c) {
		return "", fmt.Errorf("unsupported currency %q", code)
	}
	return c, nil
}

// TaskKind identifies one of the three model tasks.
type TaskKind string

// Task kinds.
const (
	TaskAutocomplete TaskKind = "autocomplete"
	TaskAnalysis     TaskKind = "analysis"
	TaskPrices       TaskKind = "prices"
)

// MaxSuggestions is the upper bound on autocomplete results.
const MaxSuggestions = 5

// MinSuggestQueryLen is the shortest partial query that reaches the model.
const MinSuggestQueryLen = 2

// WebSource is a citation attached to a result. Sources are advisory and
// are not deduplicated.
type WebSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// RegionVersion describes language support for one regional release.
type RegionVersion struct {
	Region    string `json:"region"`
	Languages string `json:"languages"`
	SourceURL string `json:"sourceUrl"`
}

// ItemAnalysis is the identification of a searched item. A new search
// replaces it wholesale.
type ItemAnalysis struct {
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Description    string          `json:"description"`
	EstimatedValue string          `json:"estimatedValue"`
	SearchTips     []string        `json:"searchTips"`
	Versions       []RegionVersion `json:"versions"`
	Sources        []WebSource     `json:"sources"`
}

// PriceStatus is the canonical status of a platform price entry.
type PriceStatus string

// Canonical statuses. Model-provided statuses that do not map onto one of
// these are kept verbatim.
const (
	StatusMarketPrice  PriceStatus = "Market Price"
	StatusAvgListed    PriceStatus = "Avg Listed"
	StatusRecentSold   PriceStatus = "Recently Sold"
	StatusLowHigh      PriceStatus = "Low-High"
	StatusWeSell       PriceStatus = "WeSell Price"
	StatusCheckWebsite PriceStatus = "Check Website"
	StatusNotFound     PriceStatus = "Not Found"
)

// PlaceholderPrice is the price string used when no price was found.
const PlaceholderPrice = "---"

// PlatformPrice is one marketplace row of a price lookup.
type PlatformPrice struct {
	Platform string `json:"platform"`
	Price    string `json:"price"`
	Status   string `json:"status"`
}

// Available reports whether the entry carries a real price. Unavailable
// rows are rendered struck through.
func (p PlatformPrice) Available() bool {
	if IsPlaceholderPrice(p.Price) {
		return false
	}
	switch PriceStatus(p.Status) {
	case StatusCheckWebsite, StatusNotFound:
		return false
	default:
		return true
	}
}

// IsPlaceholderPrice reports whether price is empty or a "no price" marker.
func IsPlaceholderPrice(price string) bool {
	switch strings.ToLower(strings.TrimSpace(price)) {
	case "", "---", "--", "-", "n/a", "na", "none", "unknown":
		return true
	default:
		return false
	}
}

// PriceInsight is the result of a price lookup. A new search replaces it
// wholesale.
type PriceInsight struct {
	Prices   []PlatformPrice `json:"prices"`
	Overview string          `json:"overview"`
	Sources  []WebSource     `json:"sources"`
}

// AvailableCount returns the number of entries with a real price.
func (p *PriceInsight) AvailableCount() int {
	if p == nil {
		return 0
	}
	n := 0
	for i := range p.Prices {
		if p.Prices[i].Available() {
			n++
		}
	}
	return n
}
