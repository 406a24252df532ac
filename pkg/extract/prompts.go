package extract

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	domain "github.com/donaldgifford/price-scout/pkg/types"
)

// SystemInstruction is sent as the system message with every scout call.
const SystemInstruction = "You are a pricing assistant for video games and collectibles. " +
	"Answer with the requested JSON only."

// autocompleteTmpl is the autocomplete prompt template.
const autocompleteTmpl = `Task: Autocomplete video game and collectible item titles.
Input: "{{.Query}}"
Output: JSON array of up to {{.MaxSuggestions}} short strings. No markdown. No explanation.

Example: "poke" -> ["Pokemon Red", "Pokemon Emerald", "Pokemon Switch", "Pokemon Cards", "Pokemon Plush"]`

// analysisTmpl is the item analysis prompt template.
const analysisTmpl = `Analyze item: "{{.Query}}".
Tasks:
1. Identify exact Name, Category, and a short Description.
2. Estimate Market Value in {{.Currency}} strictly based on search results.
3. Generate 3 smart Search Keywords.
4. Research Language Support for {{join .Regions ", "}} versions.

CRITICAL - SOURCE OF TRUTH:
- You MUST use the Google Search tool. Do not answer from memory.
- For Language Support, ONLY trust official sources: {{join .OfficialSources ", "}}.
- Do NOT use wikis, forums, or reddit.
- "sourceUrl" MUST be the direct link to the specific product page found in search, never a general site or home page.

Output JSON ONLY. No markdown.
{
  "name": "Full Exact Name",
  "category": "Console/Game/Accessory",
  "description": "Short accurate description (max 20 words).",
  "estimatedValue": "{{.Currency}} XX",
  "searchTips": ["Tag1", "Tag2"],
  "versions": [
{{- range $i, $r := .Regions}}{{if $i}},{{end}}
    { "region": "{{$r}}", "languages": "Supported Languages", "sourceUrl": "https://..." }
{{- end}}
  ]
}`

// pricesTmpl is the price lookup prompt template.
const pricesTmpl = `Task: Find REAL-TIME market prices for "{{.Query}}" in {{.Currency}}.

Strict Rules:
1. USE Google Search.
2. If the search result does not explicitly show a price for this item, DO NOT INVENT ONE.
3. If no price is found for a platform, set status to "{{.CheckWebsite}}" and price to "{{.Placeholder}}".
4. Do not estimate conversions unless the search result provides them.

Targets:
{{- range $i, $t := .Targets}}
{{inc $i}}. {{$t.Name}} ({{$t.Hint}}).
{{- end}}

Output JSON ONLY. No markdown. Exactly {{len .Targets}} entries in "prices", one per target, in the order above.
{
  "prices": [
{{- range $i, $t := .Targets}}{{if $i}},{{end}}
    { "platform": "{{$t.Name}}", "price": "{{$.Currency}} XX", "status": "{{$t.Status}}" }
{{- end}}
  ],
  "overview": "One sentence factual summary. If data is missing, say so."
}`

// PriceTarget is a marketplace the price prompt asks the model to cover.
type PriceTarget struct {
	Name   string
	Hint   string
	Status domain.PriceStatus
}

// DefaultPriceTargets is the fixed roster of marketplaces for price lookups.
var DefaultPriceTargets = []PriceTarget{
	{Name: "PriceCharting", Hint: "look for 'loose', 'cib', or 'new' price", Status: domain.StatusMarketPrice},
	{Name: "eBay", Hint: "look for 'buy it now' or recent sold", Status: domain.StatusAvgListed},
	{Name: "Shopee Malaysia", Hint: "look for actual listing prices", Status: domain.StatusLowHigh},
	{Name: "CeX / Webuy MY", Hint: "look for 'WeSell' price", Status: domain.StatusWeSell},
}

// AnalysisRegions are the logical regions covered by the language table.
var AnalysisRegions = []string{"JP", "US", "ASIA"}

// OfficialSources are the only sites trusted for language support claims.
var OfficialSources = []string{"nintendo.co.jp", "nintendo.com", "playstation.com", "nintendo.com.hk"}

// PromptData holds the template variables for scout prompts.
type PromptData struct {
	Query           string
	Currency        domain.Currency
	MaxSuggestions  int
	Regions         []string
	OfficialSources []string
	Targets         []PriceTarget
	CheckWebsite    domain.PriceStatus
	Placeholder     string
}

var funcs = template.FuncMap{
	"join": strings.Join,
	"inc":  func(i int) int { return i + 1 },
}

var templates = map[domain.TaskKind]*template.Template{
	domain.TaskAutocomplete: template.Must(template.New("autocomplete").Funcs(funcs).Parse(autocompleteTmpl)),
	domain.TaskAnalysis:     template.Must(template.New("analysis").Funcs(funcs).Parse(analysisTmpl)),
	domain.TaskPrices:       template.Must(template.New("prices").Funcs(funcs).Parse(pricesTmpl)),
}

// BuildPrompt renders the instruction text for a task. The query is
// trimmed; an empty query is rejected with ErrInvalidInput.
func BuildPrompt(kind domain.TaskKind, query string, currency domain.Currency) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("empty query: %w", ErrInvalidInput)
	}

	tmpl, ok := templates[kind]
	if !ok {
		return "", fmt.Errorf("no prompt for task %q", kind)
	}

	if currency == "" {
		currency = domain.DefaultCurrency
	}

	data := PromptData{
		Query:           query,
		Currency:        currency,
		MaxSuggestions:  domain.MaxSuggestions,
		Regions:         AnalysisRegions,
		OfficialSources: OfficialSources,
		Targets:         DefaultPriceTargets,
		CheckWebsite:    domain.StatusCheckWebsite,
		Placeholder:     domain.PlaceholderPrice,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", kind, err)
	}
	return buf.String(), nil
}

// RenderAutocompletePrompt renders the autocomplete prompt for a partial query.
func RenderAutocompletePrompt(partial string) (string, error) {
	return BuildPrompt(domain.TaskAutocomplete, partial, "")
}

// RenderAnalysisPrompt renders the item analysis prompt.
func RenderAnalysisPrompt(query string, currency domain.Currency) (string, error) {
	return BuildPrompt(domain.TaskAnalysis, query, currency)
}

// RenderPricePrompt renders the price lookup prompt.
func RenderPricePrompt(query string, currency domain.Currency) (string, error) {
	return BuildPrompt(domain.TaskPrices, query, currency)
}
