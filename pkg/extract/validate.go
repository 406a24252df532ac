package extract

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	domain "github.com/donaldgifford/price-scout/pkg/types"
)

// Validation errors.
var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidEnum  = errors.New("invalid enum value")
)

// ValidateAnalysis checks a parsed analysis and normalizes it in place:
// strings are trimmed, empty search tips are dropped, tips are capped, and
// regions outside AnalysisRegions are removed. A missing name is an error.
func ValidateAnalysis(a *domain.ItemAnalysis) error {
	if a == nil {
		return fmt.Errorf("analysis: %w", ErrMissingField)
	}

	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return fmt.Errorf("name: %w", ErrMissingField)
	}
	a.Category = strings.TrimSpace(a.Category)
	a.Description = strings.TrimSpace(a.Description)
	a.EstimatedValue = strings.TrimSpace(a.EstimatedValue)
	if a.EstimatedValue == "" {
		a.EstimatedValue = "N/A"
	}

	tips := make([]string, 0, len(a.SearchTips))
	for _, tip := range a.SearchTips {
		if tip = strings.TrimSpace(tip); tip != "" {
			tips = append(tips, tip)
		}
	}
	if len(tips) > maxSearchTips {
		tips = tips[:maxSearchTips]
	}
	a.SearchTips = tips

	versions := make([]domain.RegionVersion, 0, len(a.Versions))
	for _, v := range a.Versions {
		region, err := normalizeRegion(v.Region)
		if err != nil {
			continue
		}
		v.Region = region
		v.Languages = strings.TrimSpace(v.Languages)
		v.SourceURL = strings.TrimSpace(v.SourceURL)
		versions = append(versions, v)
	}
	a.Versions = versions

	return nil
}

const maxSearchTips = 5

var regionAliases = map[string]string{
	"JP":    "JP",
	"JPN":   "JP",
	"JAPAN": "JP",
	"US":    "US",
	"USA":   "US",
	"NA":    "US",
	"ASIA":  "ASIA",
	"HK":    "ASIA",
	"AS":    "ASIA",
}

func normalizeRegion(raw string) (string, error) {
	r, ok := regionAliases[strings.ToUpper(strings.TrimSpace(raw))]
	if !ok || !slices.Contains(AnalysisRegions, r) {
		return "", fmt.Errorf("region %q: %w", raw, ErrInvalidEnum)
	}
	return r, nil
}

// NormalizePriceInsight cleans a parsed price insight in place. Rows without
// a platform are dropped, statuses are canonicalized, and any row whose price
// is a placeholder is marked StatusCheckWebsite so that no entry presents an
// invented number. An empty overview becomes "No details available.".
func NormalizePriceInsight(p *domain.PriceInsight) {
	if p == nil {
		return
	}

	prices := make([]domain.PlatformPrice, 0, len(p.Prices))
	for _, row := range p.Prices {
		row.Platform = strings.TrimSpace(row.Platform)
		if row.Platform == "" {
			continue
		}
		row.Price = strings.TrimSpace(row.Price)
		row.Status = string(NormalizeStatus(row.Status))

		if domain.IsPlaceholderPrice(row.Price) {
			row.Price = domain.PlaceholderPrice
			if row.Status != string(domain.StatusNotFound) {
				row.Status = string(domain.StatusCheckWebsite)
			}
		}
		prices = append(prices, row)
	}
	p.Prices = prices

	p.Overview = strings.TrimSpace(p.Overview)
	if p.Overview == "" {
		p.Overview = noDetailsOverview
	}
}

const noDetailsOverview = "No details available."
