// Package platform is the static registry of marketplaces a search is
// compared across, with their search URL templates and fuzzy name matching
// for the platform labels a model returns.
package platform

import (
	"net/url"
	"strings"
	"unicode"

	domain "github.com/donaldgifford/price-scout/pkg/types"
)

// Platform describes one marketplace.
type Platform struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
	// SearchURL is a URL with a single %s placeholder for the escaped query.
	SearchURL string `json:"-"`
}

// URL returns the "search on this platform" link for query.
func (p Platform) URL(query string) string {
	return strings.Replace(p.SearchURL, "%s", url.QueryEscape(strings.TrimSpace(query)), 1)
}

var registry = []Platform{
	{
		ID:          "pricecharting",
		Name:        "PriceCharting",
		Color:       "#2563eb",
		Description: "Loose, CIB and new market prices",
		SearchURL:   "https://www.pricecharting.com/search-products?type=prices&q=%s",
	},
	{
		ID:          "ebay",
		Name:        "eBay",
		Color:       "#e53238",
		Description: "Global listings and sold history",
		SearchURL:   "https://www.ebay.com/sch/i.html?_nkw=%s",
	},
	{
		ID:          "shopee",
		Name:        "Shopee Malaysia",
		Color:       "#ee4d2d",
		Description: "Local marketplace listings",
		SearchURL:   "https://shopee.com.my/search?keyword=%s",
	},
	{
		ID:          "cex",
		Name:        "CeX",
		Color:       "#e30613",
		Description: "Webuy Malaysia sell and trade-in prices",
		SearchURL:   "https://my.webuy.com/search?stext=%s",
	},
}

// All returns a copy of the registry in display order.
func All() []Platform {
	out := make([]Platform, len(registry))
	copy(out, registry)
	return out
}

// ByID returns the platform with the given id.
func ByID(id string) (Platform, bool) {
	for _, p := range registry {
		if p.ID == id {
			return p, true
		}
	}
	return Platform{}, false
}

// Match finds the registry entry a model-provided platform label refers to.
// Both sides are lower-cased and stripped of non-alphanumerics, then matched
// by containment in either direction, so "CeX / Webuy MY" matches CeX.
func Match(label string) (Platform, bool) {
	key := normalize(label)
	if key == "" {
		return Platform{}, false
	}

	for _, p := range registry {
		name := normalize(p.Name)
		if strings.Contains(key, name) || strings.Contains(name, key) {
			return p, true
		}
	}
	return Platform{}, false
}

// Link is a platform paired with its search URL for a query.
type Link struct {
	Platform
	URL   string                `json:"url"`
	Price *domain.PlatformPrice `json:"price,omitempty"`
}

// Links returns one search link per platform, in display order.
func Links(query string) []Link {
	links := make([]Link, 0, len(registry))
	for _, p := range registry {
		links = append(links, Link{Platform: p, URL: p.URL(query)})
	}
	return links
}

// Attach pairs each link with the price row that matches its platform. Rows
// that match no platform are ignored; the first matching row wins.
func Attach(links []Link, insight *domain.PriceInsight) []Link {
	if insight == nil {
		return links
	}
	for i := range links {
		for j := range insight.Prices {
			p, ok := Match(insight.Prices[j].Platform)
			if ok && p.ID == links[i].ID {
				row := insight.Prices[j]
				links[i].Price = &row
				break
			}
		}
	}
	return links
}

func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
