package extract

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domain "github.com/donaldgifford/price-scout/pkg/types"
)

// Default models per task.
const (
	DefaultAutocompleteModel = "gemini-flash-lite-latest"
	DefaultAnalysisModel     = "gemini-3-pro-preview"
	DefaultPricesModel       = "gemini-3-pro-preview"
)

// User-facing fallback texts.
const (
	AnalysisFallbackDescription = "Could not analyze details automatically."
	PricesUnavailableOverview   = "Could not fetch live prices. Please check your API key or network connection."
	EmptyQueryOverview          = "Enter an item name to search."
)

// Scout defines the interface for the three item-lookup operations.
type Scout interface {
	Suggest(ctx context.Context, partial string) []string
	AnalyzeItem(ctx context.Context, query string, currency domain.Currency) (*domain.ItemAnalysis, error)
	SearchItemPrices(ctx context.Context, query string, currency domain.Currency) *domain.PriceInsight
}

// Models selects the model identifier for each task.
type Models struct {
	Autocomplete string
	Analysis     string
	Prices       string
}

// DefaultModels returns the default model per task.
func DefaultModels() Models {
	return Models{
		Autocomplete: DefaultAutocompleteModel,
		Analysis:     DefaultAnalysisModel,
		Prices:       DefaultPricesModel,
	}
}

// LLMScout implements Scout on top of an Invoker. It holds no mutable state
// and is safe for concurrent use.
type LLMScout struct {
	invoker *Invoker
	models  Models
	log     *slog.Logger
}

// ScoutOption configures the LLMScout.
type ScoutOption func(*LLMScout)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) ScoutOption {
	return func(s *LLMScout) {
		s.log = l
	}
}

// WithModels overrides the per-task models. Empty fields keep the default.
func WithModels(m Models) ScoutOption {
	return func(s *LLMScout) {
		if m.Autocomplete != "" {
			s.models.Autocomplete = m.Autocomplete
		}
		if m.Analysis != "" {
			s.models.Analysis = m.Analysis
		}
		if m.Prices != "" {
			s.models.Prices = m.Prices
		}
	}
}

// NewLLMScout creates a new LLMScout.
func NewLLMScout(inv *Invoker, opts ...ScoutOption) *LLMScout {
	s := &LLMScout{
		invoker: inv,
		models:  DefaultModels(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Models returns the per-task models in use.
func (s *LLMScout) Models() Models {
	return s.models
}

// Suggest returns up to MaxSuggestions completions for a partial query. It
// never fails: any problem yields an empty slice. Partials shorter than
// MinSuggestQueryLen do not reach the model.
func (s *LLMScout) Suggest(ctx context.Context, partial string) []string {
	partial = strings.TrimSpace(partial)
	if len([]rune(partial)) < domain.MinSuggestQueryLen {
		s.invoker.observer.ObserveFallback(domain.TaskAutocomplete, FallbackShortQuery)
		return []string{}
	}

	prompt, err := RenderAutocompletePrompt(partial)
	if err != nil {
		s.log.DebugContext(ctx, "autocomplete prompt failed", "error", err)
		return []string{}
	}

	res, err := s.invoker.Invoke(ctx, InvokeRequest{
		Prompt: prompt,
		System: SystemInstruction,
		Model:  s.models.Autocomplete,
		Task:   domain.TaskAutocomplete,
	})
	if err != nil {
		s.log.DebugContext(ctx, "autocomplete failed", "partial", partial, "error", err)
		s.invoker.observer.ObserveFallback(domain.TaskAutocomplete, FallbackInvocation)
		return []string{}
	}

	var raw []string
	if err := s.decode(ctx, domain.TaskAutocomplete, res.Text, &raw); err != nil {
		s.log.DebugContext(ctx, "autocomplete response not a string array", "error", err)
		s.invoker.observer.ObserveFallback(domain.TaskAutocomplete, FallbackExtraction)
		return []string{}
	}

	out := make([]string, 0, domain.MaxSuggestions)
	for _, suggestion := range raw {
		suggestion = strings.TrimSpace(suggestion)
		if suggestion == "" {
			continue
		}
		out = append(out, suggestion)
		if len(out) == domain.MaxSuggestions {
			break
		}
	}
	return out
}

// AnalyzeItem identifies an item with search grounding. An invocation
// failure returns a nil analysis and the error. When the model answered but
// its text could not be recovered, a degraded analysis built from the query
// is returned with a nil error.
func (s *LLMScout) AnalyzeItem(
	ctx context.Context,
	query string,
	currency domain.Currency,
) (*domain.ItemAnalysis, error) {
	query = strings.TrimSpace(query)
	prompt, err := RenderAnalysisPrompt(query, currency)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			s.invoker.observer.ObserveFallback(domain.TaskAnalysis, FallbackEmptyQuery)
		}
		return nil, err
	}

	res, err := s.invoker.Invoke(ctx, InvokeRequest{
		Prompt:    prompt,
		System:    SystemInstruction,
		Model:     s.models.Analysis,
		UseSearch: true,
		Task:      domain.TaskAnalysis,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "item analysis failed", "query", query, "error", err)
		s.invoker.observer.ObserveFallback(domain.TaskAnalysis, FallbackInvocation)
		return nil, err
	}

	var analysis domain.ItemAnalysis
	if err := s.decode(ctx, domain.TaskAnalysis, res.Text, &analysis); err != nil {
		s.log.WarnContext(ctx, "analysis response not parseable, using fallback", "query", query, "error", err)
		s.invoker.observer.ObserveFallback(domain.TaskAnalysis, FallbackExtraction)
		return fallbackAnalysis(query, res.Citations), nil
	}

	if err := ValidateAnalysis(&analysis); err != nil {
		s.log.WarnContext(ctx, "analysis response invalid, using fallback", "query", query, "error", err)
		s.invoker.observer.ObserveFallback(domain.TaskAnalysis, FallbackExtraction)
		return fallbackAnalysis(query, res.Citations), nil
	}

	analysis.Sources = res.Citations
	return &analysis, nil
}

// SearchItemPrices looks up marketplace prices with search grounding. It
// never returns nil: failures are reported through the overview text.
func (s *LLMScout) SearchItemPrices(
	ctx context.Context,
	query string,
	currency domain.Currency,
) *domain.PriceInsight {
	query = strings.TrimSpace(query)
	prompt, err := RenderPricePrompt(query, currency)
	if err != nil {
		s.invoker.observer.ObserveFallback(domain.TaskPrices, FallbackEmptyQuery)
		return &domain.PriceInsight{
			Prices:   []domain.PlatformPrice{},
			Overview: EmptyQueryOverview,
			Sources:  []domain.WebSource{},
		}
	}

	res, err := s.invoker.Invoke(ctx, InvokeRequest{
		Prompt:    prompt,
		System:    SystemInstruction,
		Model:     s.models.Prices,
		UseSearch: true,
		Task:      domain.TaskPrices,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "price lookup failed", "query", query, "error", err)
		s.invoker.observer.ObserveFallback(domain.TaskPrices, FallbackInvocation)
		return &domain.PriceInsight{
			Prices:   []domain.PlatformPrice{},
			Overview: PricesUnavailableOverview,
			Sources:  []domain.WebSource{},
		}
	}

	var insight domain.PriceInsight
	if err := s.decode(ctx, domain.TaskPrices, res.Text, &insight); err != nil {
		s.log.WarnContext(ctx, "price response not parseable, returning raw text", "query", query, "error", err)
		s.invoker.observer.ObserveFallback(domain.TaskPrices, FallbackExtraction)
		return &domain.PriceInsight{
			Prices:   []domain.PlatformPrice{},
			Overview: res.Text,
			Sources:  res.Citations,
		}
	}

	NormalizePriceInsight(&insight)
	insight.Sources = res.Citations
	return &insight
}

// decode recovers the model's JSON into dst and logs which extraction
// stage was needed.
func (s *LLMScout) decode(ctx context.Context, task domain.TaskKind, text string, dst any) error {
	stage, err := DecodeJSON(text, dst)
	if err != nil {
		return err
	}
	s.log.DebugContext(ctx, "model JSON recovered", "task", task, "stage", stage)
	return nil
}

// fallbackAnalysis is the degraded analysis used when the model's text
// could not be recovered.
func fallbackAnalysis(query string, sources []domain.WebSource) *domain.ItemAnalysis {
	if sources == nil {
		sources = []domain.WebSource{}
	}
	return &domain.ItemAnalysis{
		Name:           query,
		Category:       "Unknown",
		Description:    AnalysisFallbackDescription,
		EstimatedValue: "N/A",
		SearchTips:     []string{query},
		Versions:       []domain.RegionVersion{},
		Sources:        sources,
	}
}
