package client

import (
	"context"
	"net/url"

	"github.com/donaldgifford/price-scout/pkg/platform"
	domain "github.com/donaldgifford/price-scout/pkg/types"
)

type lookupRequest struct {
	Query    string          `json:"query"`
	Currency domain.Currency `json:"currency,omitempty"`
}

// PricesResponse is the response of the prices endpoint.
type PricesResponse struct {
	Insight *domain.PriceInsight `json:"insight"`
	Links   []platform.Link      `json:"links"`
}

// SearchResponse is the response of the search endpoint. Error is set when
// neither half produced a usable result.
type SearchResponse struct {
	Query    string               `json:"query"`
	Currency domain.Currency      `json:"currency"`
	Analysis *domain.ItemAnalysis `json:"analysis"`
	Prices   *domain.PriceInsight `json:"prices"`
	Error    string               `json:"error,omitempty"`
	AuthHint string               `json:"authHint,omitempty"`
	Links    []platform.Link      `json:"links"`
}

// Suggest returns autocomplete suggestions for a partial item name.
func (c *Client) Suggest(ctx context.Context, partial string) ([]string, error) {
	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := c.post(ctx, "/api/v1/suggest", lookupRequest{Query: partial}, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// Analyze identifies an item.
func (c *Client) Analyze(ctx context.Context, query string, currency domain.Currency) (*domain.ItemAnalysis, error) {
	var analysis domain.ItemAnalysis
	req := lookupRequest{Query: query, Currency: currency}
	if err := c.post(ctx, "/api/v1/analyze", req, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// Prices looks up marketplace prices for an item.
func (c *Client) Prices(ctx context.Context, query string, currency domain.Currency) (*PricesResponse, error) {
	var resp PricesResponse
	req := lookupRequest{Query: query, Currency: currency}
	if err := c.post(ctx, "/api/v1/prices", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Search runs the combined analysis and price lookup.
func (c *Client) Search(ctx context.Context, query string, currency domain.Currency) (*SearchResponse, error) {
	var resp SearchResponse
	req := lookupRequest{Query: query, Currency: currency}
	if err := c.post(ctx, "/api/v1/search", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Platforms lists the compared marketplaces. With a non-empty query each
// entry carries its search URL.
func (c *Client) Platforms(ctx context.Context, query string) ([]platform.Link, error) {
	path := "/api/v1/platforms"
	if query != "" {
		path += "?query=" + url.QueryEscape(query)
	}

	var resp struct {
		Platforms []platform.Link `json:"platforms"`
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Platforms, nil
}

// Currencies lists the supported currencies and the default.
func (c *Client) Currencies(ctx context.Context) ([]domain.Currency, domain.Currency, error) {
	var resp struct {
		Currencies []domain.Currency `json:"currencies"`
		Default    domain.Currency   `json:"default"`
	}
	if err := c.get(ctx, "/api/v1/currencies", &resp); err != nil {
		return nil, "", err
	}
	return resp.Currencies, resp.Default, nil
}
