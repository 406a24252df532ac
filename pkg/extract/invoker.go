package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	domain "github.com/donaldgifford/price-scout/pkg/types"
)

const (
	tracerName     = "github.com/donaldgifford/price-scout/pkg/extract"
	defaultTimeout = 60 * time.Second
)

// InvokeRequest is a single model call. Zero Temperature and MaxTokens
// fall back to the Invoker's generation defaults.
type InvokeRequest struct {
	Prompt      string
	System      string
	Model       string
	UseSearch   bool
	Task        domain.TaskKind
	Temperature float64
	MaxTokens   int
}

// InvokeResult is the raw text of a model call plus the web sources that
// grounded it. Citations is never nil.
type InvokeResult struct {
	Text      string
	Citations []domain.WebSource
	Model     string
	Usage     TokenUsage
}

// Observer receives invocation and fallback events. internal/engine wires
// it to Prometheus.
type Observer interface {
	ObserveInvocation(task domain.TaskKind, backend string, elapsed time.Duration, res InvokeResult, err error)
	ObserveFallback(task domain.TaskKind, reason string)
}

// Fallback reasons reported to the Observer.
const (
	FallbackEmptyQuery = "empty_query"
	FallbackShortQuery = "short_query"
	FallbackInvocation = "invocation"
	FallbackExtraction = "extraction"
)

type nopObserver struct{}

func (nopObserver) ObserveInvocation(domain.TaskKind, string, time.Duration, InvokeResult, error) {}

func (nopObserver) ObserveFallback(domain.TaskKind, string) {}

// Invoker performs one model call per request through an LLMBackend. Calls
// are never retried.
type Invoker struct {
	backend     LLMBackend
	timeout     time.Duration
	temperature float64
	maxTokens   int
	observer    Observer
	tracer      trace.Tracer
}

// InvokerOption configures the Invoker.
type InvokerOption func(*Invoker)

// WithTimeout bounds each call. Zero disables the bound.
func WithTimeout(d time.Duration) InvokerOption {
	return func(inv *Invoker) {
		inv.timeout = d
	}
}

// WithGenerationDefaults sets the sampling temperature and output token
// limit used when a request leaves them zero. Zero keeps the backend's own
// default.
func WithGenerationDefaults(temperature float64, maxTokens int) InvokerOption {
	return func(inv *Invoker) {
		inv.temperature = temperature
		inv.maxTokens = maxTokens
	}
}

// WithObserver sets the invocation observer.
func WithObserver(o Observer) InvokerOption {
	return func(inv *Invoker) {
		if o != nil {
			inv.observer = o
		}
	}
}

// WithTracerProvider overrides the global OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) InvokerOption {
	return func(inv *Invoker) {
		inv.tracer = tp.Tracer(tracerName)
	}
}

// NewInvoker creates an Invoker over backend.
func NewInvoker(backend LLMBackend, opts ...InvokerOption) *Invoker {
	inv := &Invoker{
		backend:  backend,
		timeout:  defaultTimeout,
		observer: nopObserver{},
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Backend returns the name of the underlying backend.
func (inv *Invoker) Backend() string {
	return inv.backend.Name()
}

// Invoke sends req.Prompt to the model. A blank prompt is rejected with
// ErrInvalidInput before any call is made; every backend failure is
// returned as an *InvocationError.
func (inv *Invoker) Invoke(ctx context.Context, req InvokeRequest) (InvokeResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return InvokeResult{}, fmt.Errorf("empty prompt: %w", ErrInvalidInput)
	}

	ctx, span := inv.tracer.Start(ctx, "extract.Invoke", trace.WithAttributes(
		attribute.String("llm.backend", inv.backend.Name()),
		attribute.String("llm.task", string(req.Task)),
		attribute.String("llm.model", req.Model),
		attribute.Bool("llm.use_search", req.UseSearch),
	))
	defer span.End()

	if inv.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.timeout)
		defer cancel()
	}

	gen := GenerateRequest{
		Prompt:      req.Prompt,
		SystemMsg:   req.System,
		Model:       req.Model,
		Format:      FormatJSON,
		UseSearch:   req.UseSearch,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if gen.Temperature == 0 {
		gen.Temperature = inv.temperature
	}
	if gen.MaxTokens == 0 {
		gen.MaxTokens = inv.maxTokens
	}

	start := time.Now()
	resp, err := inv.backend.Generate(ctx, gen)
	elapsed := time.Since(start)

	if err != nil {
		err = asInvocationError(inv.backend.Name(), err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		inv.observer.ObserveInvocation(req.Task, inv.backend.Name(), elapsed, InvokeResult{}, err)
		return InvokeResult{}, err
	}

	res := InvokeResult{
		Text:      resp.Content,
		Citations: resp.Citations,
		Model:     resp.Model,
		Usage:     resp.Usage,
	}
	if res.Citations == nil {
		res.Citations = []domain.WebSource{}
	}

	span.SetAttributes(
		attribute.Int("llm.sources", len(res.Citations)),
		attribute.Int("llm.total_tokens", res.Usage.TotalTokens),
	)
	inv.observer.ObserveInvocation(req.Task, inv.backend.Name(), elapsed, res, nil)

	return res, nil
}

func asInvocationError(backend string, err error) error {
	var invErr *InvocationError
	if errors.As(err, &invErr) {
		return err
	}
	return &InvocationError{Backend: backend, Err: err}
}
