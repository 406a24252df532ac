package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/price-scout/internal/metrics"
	"github.com/donaldgifford/price-scout/pkg/extract"
	domain "github.com/donaldgifford/price-scout/pkg/types"
)

// User-facing search errors.
const (
	SearchFailedMessage = "Failed to complete analysis. Please try again."
	AuthHintMessage     = "The model service rejected the request. Check that GEMINI_API_KEY is set and valid."
)

// Search outcomes recorded in metrics.
const (
	outcomeComplete = "complete"
	outcomePartial  = "partial"
	outcomeFailed   = "failed"
)

// SearchResult is the combined outcome of a dual search. Err is non-empty
// only when the analysis is absent and the price lookup produced no prices.
type SearchResult struct {
	Query       string               `json:"query"`
	Currency    domain.Currency      `json:"currency"`
	Analysis    *domain.ItemAnalysis `json:"analysis"`
	Prices      *domain.PriceInsight `json:"prices"`
	Err         string               `json:"error,omitempty"`
	AuthHint    string               `json:"authHint,omitempty"`
	AnalysisErr error                `json:"-"`
}

// Engine orchestrates the concurrent analysis and price lookup of a search.
type Engine struct {
	scout  extract.Scout
	log    *slog.Logger
	tracer trace.Tracer
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithTracerProvider overrides the global OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) EngineOption {
	return func(e *Engine) {
		e.tracer = tp.Tracer("github.com/donaldgifford/price-scout/internal/engine")
	}
}

// NewEngine creates a new Engine over s.
func NewEngine(s extract.Scout, opts ...EngineOption) *Engine {
	eng := &Engine{
		scout:  s,
		log:    slog.Default(),
		tracer: otel.Tracer("github.com/donaldgifford/price-scout/internal/engine"),
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// Scout returns the underlying scout.
func (eng *Engine) Scout() extract.Scout {
	return eng.scout
}

// Suggest returns autocomplete suggestions for a partial query.
func (eng *Engine) Suggest(ctx context.Context, partial string) []string {
	return eng.scout.Suggest(ctx, partial)
}

// Search runs the item analysis and the price lookup concurrently and waits
// for both. Neither half blocks or cancels the other. An empty query is
// rejected with extract.ErrInvalidInput before any call.
func (eng *Engine) Search(
	ctx context.Context,
	query string,
	currency domain.Currency,
) (SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResult{}, fmt.Errorf("empty query: %w", extract.ErrInvalidInput)
	}
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	ctx, span := eng.tracer.Start(ctx, "engine.Search", trace.WithAttributes(
		attribute.String("search.query", query),
		attribute.String("search.currency", string(currency)),
	))
	defer span.End()

	res := SearchResult{Query: query, Currency: currency}

	// Both goroutines return nil so that a failing half never cancels the
	// group context of the other.
	var g errgroup.Group
	g.Go(func() error {
		res.Analysis, res.AnalysisErr = eng.scout.AnalyzeItem(ctx, query, currency)
		return nil
	})
	g.Go(func() error {
		res.Prices = eng.scout.SearchItemPrices(ctx, query, currency)
		return nil
	})
	_ = g.Wait()

	outcome := outcomeComplete
	switch {
	case SearchFailed(res.Analysis, res.Prices):
		outcome = outcomeFailed
		res.Err = SearchFailedMessage
		if extract.IsAuthFailure(res.AnalysisErr) {
			res.AuthHint = AuthHintMessage
		}
		eng.log.WarnContext(ctx, "search produced no usable result",
			"query", query,
			"error", res.AnalysisErr,
		)
	case res.Analysis == nil || res.Prices == nil || res.Prices.AvailableCount() == 0:
		outcome = outcomePartial
	}

	metrics.SearchesTotal.WithLabelValues(outcome).Inc()
	if res.Prices != nil {
		metrics.PricesAvailable.Observe(float64(res.Prices.AvailableCount()))
	}
	span.SetAttributes(attribute.String("search.outcome", outcome))

	eng.log.InfoContext(ctx, "search complete",
		"query", query,
		"currency", currency,
		"outcome", outcome,
	)

	return res, nil
}

// SearchFailed reports whether a search produced nothing to show: no
// analysis and no price rows.
func SearchFailed(analysis *domain.ItemAnalysis, prices *domain.PriceInsight) bool {
	return analysis == nil && (prices == nil || len(prices.Prices) == 0)
}

// IsInvalidInput reports whether err is an input rejection.
func IsInvalidInput(err error) bool {
	return errors.Is(err, extract.ErrInvalidInput)
}
