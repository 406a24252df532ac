package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/price-scout/pkg/platform"
	domain "github.com/donaldgifford/price-scout/pkg/types"
)

// PlatformsInput holds the optional query used to build search links.
type PlatformsInput struct {
	Query string `query:"query" doc:"Item name to build search links for" example:"Pokemon Emerald"`
}

// PlatformsOutput is the response body for the platforms endpoint.
type PlatformsOutput struct {
	Body struct {
		Platforms []platform.Link `json:"platforms" doc:"Supported marketplaces; url is empty without a query"`
	}
}

// PlatformInput selects one marketplace.
type PlatformInput struct {
	ID    string `path:"id" doc:"Platform id" example:"ebay"`
	Query string `query:"query" doc:"Item name to build the search link for" example:"Pokemon Emerald"`
}

// PlatformOutput is the response body for the single platform endpoint.
type PlatformOutput struct {
	Body platform.Link
}

// CurrenciesOutput is the response body for the currencies endpoint.
type CurrenciesOutput struct {
	Body struct {
		Currencies []domain.Currency `json:"currencies" doc:"Supported currency codes"`
		Default    domain.Currency   `json:"default" example:"MYR"`
	}
}

// ListPlatforms returns the marketplace registry.
func ListPlatforms(_ context.Context, input *PlatformsInput) (*PlatformsOutput, error) {
	out := &PlatformsOutput{}
	if input.Query == "" {
		all := platform.All()
		out.Body.Platforms = make([]platform.Link, 0, len(all))
		for _, p := range all {
			out.Body.Platforms = append(out.Body.Platforms, platform.Link{Platform: p})
		}
		return out, nil
	}
	out.Body.Platforms = platform.Links(input.Query)
	return out, nil
}

// GetPlatform returns one marketplace, with its search link when a query is
// given.
func GetPlatform(_ context.Context, input *PlatformInput) (*PlatformOutput, error) {
	p, ok := platform.ByID(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("unknown platform " + input.ID)
	}
	out := &PlatformOutput{Body: platform.Link{Platform: p}}
	if input.Query != "" {
		out.Body.URL = p.URL(input.Query)
	}
	return out, nil
}

// ListCurrencies returns the supported currencies.
func ListCurrencies(_ context.Context, _ *struct{}) (*CurrenciesOutput, error) {
	out := &CurrenciesOutput{}
	out.Body.Currencies = domain.Currencies()
	out.Body.Default = domain.DefaultCurrency
	return out, nil
}

// RegisterCatalogRoutes registers the static catalog endpoints.
func RegisterCatalogRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-platforms",
		Method:      http.MethodGet,
		Path:        "/api/v1/platforms",
		Summary:     "List marketplaces",
		Description: "Lists the compared marketplaces, with search links when a query is given.",
		Tags:        []string{"catalog"},
	}, ListPlatforms)

	huma.Register(api, huma.Operation{
		OperationID: "get-platform",
		Method:      http.MethodGet,
		Path:        "/api/v1/platforms/{id}",
		Summary:     "Get a marketplace",
		Tags:        []string{"catalog"},
	}, GetPlatform)

	huma.Register(api, huma.Operation{
		OperationID: "list-currencies",
		Method:      http.MethodGet,
		Path:        "/api/v1/currencies",
		Summary:     "List supported currencies",
		Tags:        []string{"catalog"},
	}, ListCurrencies)
}
