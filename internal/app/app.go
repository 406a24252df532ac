// Package app assembles the lookup pipeline from configuration: the model
// backend, the invoker, the scout and the search engine.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/price-scout/internal/config"
	"github.com/donaldgifford/price-scout/internal/engine"
	"github.com/donaldgifford/price-scout/pkg/extract"
	domain "github.com/donaldgifford/price-scout/pkg/types"
)

// App is the assembled pipeline.
type App struct {
	Config  *config.Config
	Backend extract.LLMBackend
	Scout   *extract.LLMScout
	Engine  *engine.Engine

	// unready is set when the backend is missing credentials. Lookups still
	// run and fail with an auth error so callers can show the hint.
	unready error
}

// Option configures New.
type Option func(*options)

type options struct {
	log        *slog.Logger
	tp         trace.TracerProvider
	httpClient *http.Client
}

// WithLogger sets the logger passed to the scout and engine.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithTracerProvider sets the tracer provider for the invoker and engine.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tp = tp
	}
}

// WithHTTPClient sets the HTTP client used by the model backend.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// New builds the pipeline described by cfg.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := &options{log: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	backend, unready, err := NewBackend(ctx, cfg.LLM, o.httpClient)
	if err != nil {
		return nil, err
	}
	if unready != nil {
		o.log.WarnContext(ctx, "model backend is not ready", "backend", backend.Name(), "error", unready)
	}

	invOpts := []extract.InvokerOption{
		extract.WithTimeout(cfg.LLM.Timeout),
		extract.WithGenerationDefaults(cfg.LLM.Temperature, cfg.LLM.MaxTokens),
		extract.WithObserver(engine.MetricsObserver{}),
	}
	engOpts := []engine.EngineOption{engine.WithLogger(o.log)}
	if o.tp != nil {
		invOpts = append(invOpts, extract.WithTracerProvider(o.tp))
		engOpts = append(engOpts, engine.WithTracerProvider(o.tp))
	}

	scout := extract.NewLLMScout(
		extract.NewInvoker(backend, invOpts...),
		extract.WithLogger(o.log),
		extract.WithModels(extract.Models{
			Autocomplete: cfg.LLM.Models.Autocomplete,
			Analysis:     cfg.LLM.Models.Analysis,
			Prices:       cfg.LLM.Models.Prices,
		}),
	)

	return &App{
		Config:  cfg,
		Backend: backend,
		Scout:   scout,
		Engine:  engine.NewEngine(scout, engOpts...),
		unready: unready,
	}, nil
}

// Ready reports whether the backend has the credentials it needs.
func (a *App) Ready(context.Context) error {
	return a.unready
}

// Currency returns the configured default currency.
func (a *App) Currency() domain.Currency {
	return a.Config.Search.Currency()
}

// NewBackend creates the configured LLM backend. When a hosted backend has
// no API key, a stand-in backend that fails every call with an auth error is
// returned together with a non-nil unready error.
func NewBackend(
	ctx context.Context,
	cfg config.LLMConfig,
	hc *http.Client,
) (backend extract.LLMBackend, unready error, err error) {
	switch cfg.Backend {
	case config.BackendGemini:
		gOpts := []extract.GeminiOption{extract.WithGeminiModel(cfg.Models.Analysis)}
		if cfg.Gemini.APIKey != "" {
			gOpts = append(gOpts, extract.WithGeminiAPIKey(cfg.Gemini.APIKey))
		}
		if cfg.Gemini.BaseURL != "" {
			gOpts = append(gOpts, extract.WithGeminiBaseURL(cfg.Gemini.BaseURL))
		}
		if hc != nil {
			gOpts = append(gOpts, extract.WithGeminiHTTPClient(hc))
		}

		if cfg.Gemini.APIKey == "" && extract.GeminiAPIKeyFromEnv() == "" {
			missing := errors.New("GEMINI_API_KEY is not set")
			return missingKeyBackend{name: config.BackendGemini, err: missing}, missing, nil
		}

		b, err := extract.NewGeminiBackend(ctx, gOpts...)
		if err != nil {
			return nil, nil, fmt.Errorf("creating gemini backend: %w", err)
		}
		return b, nil, nil

	case config.BackendAnthropic:
		aOpts := []extract.AnthropicOption{extract.WithAnthropicModel(cfg.Models.Analysis)}
		if cfg.Anthropic.Endpoint != "" {
			aOpts = append(aOpts, extract.WithAnthropicEndpoint(cfg.Anthropic.Endpoint))
		}
		if hc != nil {
			aOpts = append(aOpts, extract.WithAnthropicHTTPClient(hc))
		}
		if os.Getenv("ANTHROPIC_API_KEY") == "" {
			unready = errors.New("ANTHROPIC_API_KEY is not set")
		}
		return extract.NewAnthropicBackend(aOpts...), unready, nil

	case config.BackendOpenAICompat:
		var oOpts []extract.OpenAICompatOption
		if hc != nil {
			oOpts = append(oOpts, extract.WithOpenAICompatHTTPClient(hc))
		}
		return extract.NewOpenAICompatBackend(cfg.OpenAICompat.Endpoint, cfg.Models.Analysis, oOpts...), nil, nil

	case config.BackendOllama:
		var oOpts []extract.OllamaOption
		if hc != nil {
			oOpts = append(oOpts, extract.WithOllamaHTTPClient(hc))
		}
		return extract.NewOllamaBackend(cfg.Ollama.Endpoint, cfg.Models.Analysis, oOpts...), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown llm backend %q", cfg.Backend)
	}
}

// missingKeyBackend stands in for a hosted backend without credentials.
type missingKeyBackend struct {
	name string
	err  error
}

func (b missingKeyBackend) Name() string { return b.name }

func (b missingKeyBackend) Generate(context.Context, extract.GenerateRequest) (extract.GenerateResponse, error) {
	return extract.GenerateResponse{}, &extract.InvocationError{
		Backend:    b.name,
		StatusCode: http.StatusUnauthorized,
		Message:    b.err.Error(),
	}
}
