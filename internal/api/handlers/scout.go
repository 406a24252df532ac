package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/price-scout/internal/engine"
	"github.com/donaldgifford/price-scout/pkg/extract"
	"github.com/donaldgifford/price-scout/pkg/platform"
	domain "github.com/donaldgifford/price-scout/pkg/types"
)

// ScoutHandler serves the item lookup endpoints.
type ScoutHandler struct {
	engine *engine.Engine
}

// NewScoutHandler creates a new ScoutHandler.
func NewScoutHandler(eng *engine.Engine) *ScoutHandler {
	return &ScoutHandler{engine: eng}
}

// SuggestInput is the request body for the suggest endpoint.
type SuggestInput struct {
	Body struct {
		Query string `json:"query" doc:"Partial item name" example:"pokemon em"`
	}
}

// SuggestOutput is the response body for the suggest endpoint.
type SuggestOutput struct {
	Body struct {
		Suggestions []string `json:"suggestions" doc:"Up to 5 completions, possibly empty"`
	}
}

// LookupInput is the request body shared by analyze, prices and search.
type LookupInput struct {
	Body struct {
		Query    string          `json:"query" minLength:"1" doc:"Item to look up" example:"Pokemon Emerald GBA"`
		Currency domain.Currency `json:"currency,omitempty" enum:"MYR,USD,JPY,SGD,HKD,EUR,GBP" doc:"Currency for prices (default MYR)"`
	}
}

func (in *LookupInput) currency() domain.Currency {
	if in.Body.Currency == "" {
		return domain.DefaultCurrency
	}
	return in.Body.Currency
}

// AnalyzeOutput is the response body for the analyze endpoint.
type AnalyzeOutput struct {
	Body *domain.ItemAnalysis
}

// PricesOutput is the response body for the prices endpoint.
type PricesOutput struct {
	Body struct {
		Insight *domain.PriceInsight `json:"insight" doc:"Per-platform prices and market overview"`
		Links   []platform.Link      `json:"links" doc:"Search links per platform with the matching price row"`
	}
}

// SearchOutput is the response body for the search endpoint.
type SearchOutput struct {
	Body struct {
		engine.SearchResult
		Links []platform.Link `json:"links" doc:"Search links per platform with the matching price row"`
	}
}

// Suggest returns autocomplete suggestions. It never fails.
func (h *ScoutHandler) Suggest(ctx context.Context, input *SuggestInput) (*SuggestOutput, error) {
	out := &SuggestOutput{}
	out.Body.Suggestions = h.engine.Suggest(ctx, input.Body.Query)
	return out, nil
}

// Analyze identifies an item. A failed model call maps to 502.
func (h *ScoutHandler) Analyze(ctx context.Context, input *LookupInput) (*AnalyzeOutput, error) {
	analysis, err := h.engine.Scout().AnalyzeItem(ctx, input.Body.Query, input.currency())
	if err != nil {
		return nil, lookupError("item analysis failed", err)
	}
	return &AnalyzeOutput{Body: analysis}, nil
}

// Prices looks up marketplace prices. Lookup failures are reported in the
// overview with a 200.
func (h *ScoutHandler) Prices(ctx context.Context, input *LookupInput) (*PricesOutput, error) {
	insight := h.engine.Scout().SearchItemPrices(ctx, input.Body.Query, input.currency())

	out := &PricesOutput{}
	out.Body.Insight = insight
	out.Body.Links = platform.Attach(platform.Links(input.Body.Query), insight)
	return out, nil
}

// Search runs the analysis and price lookup concurrently. A search where
// both halves failed is still a 200 whose body carries the error message.
func (h *ScoutHandler) Search(ctx context.Context, input *LookupInput) (*SearchOutput, error) {
	res, err := h.engine.Search(ctx, input.Body.Query, input.currency())
	if err != nil {
		return nil, lookupError("search failed", err)
	}

	out := &SearchOutput{}
	out.Body.SearchResult = res
	out.Body.Links = platform.Attach(platform.Links(res.Query), res.Prices)
	return out, nil
}

func lookupError(msg string, err error) error {
	switch {
	case engine.IsInvalidInput(err):
		return huma.Error422UnprocessableEntity(msg, err)
	case extract.IsAuthFailure(err):
		return huma.Error502BadGateway(msg+": "+engine.AuthHintMessage, err)
	default:
		return huma.Error502BadGateway(msg, err)
	}
}

// RegisterScoutRoutes registers the lookup endpoints with the Huma API.
func RegisterScoutRoutes(api huma.API, h *ScoutHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "suggest",
		Method:      http.MethodPost,
		Path:        "/api/v1/suggest",
		Summary:     "Autocomplete an item name",
		Description: "Returns up to 5 completions for a partial item name. " +
			"Partials shorter than 2 characters return an empty list without calling the model.",
		Tags: []string{"scout"},
	}, h.Suggest)

	huma.Register(api, huma.Operation{
		OperationID: "analyze-item",
		Method:      http.MethodPost,
		Path:        "/api/v1/analyze",
		Summary:     "Identify an item",
		Description: "Identifies the item with web-search grounding and returns its category, " +
			"estimated value, search tips and regional versions.",
		Tags:   []string{"scout"},
		Errors: []int{http.StatusUnprocessableEntity, http.StatusBadGateway},
	}, h.Analyze)

	huma.Register(api, huma.Operation{
		OperationID: "item-prices",
		Method:      http.MethodPost,
		Path:        "/api/v1/prices",
		Summary:     "Look up marketplace prices",
		Description: "Looks up per-platform prices with web-search grounding. " +
			"Failures are reported in the overview text.",
		Tags: []string{"scout"},
	}, h.Prices)

	huma.Register(api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodPost,
		Path:        "/api/v1/search",
		Summary:     "Analyze an item and look up its prices",
		Description: "Runs the item analysis and the price lookup concurrently and " +
			"returns whatever each half produced.",
		Tags:   []string{"scout"},
		Errors: []int{http.StatusUnprocessableEntity},
	}, h.Search)
}
