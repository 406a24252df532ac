// Package extract builds scout prompts, invokes LLM backends with optional
// web-search grounding, and recovers structured item analyses and price
// insights from the model's text.
package extract

import (
	"context"

	domain "github.com/donaldgifford/price-scout/pkg/types"
)

// FormatJSON is the format string for requesting JSON mode from LLM backends.
const FormatJSON = "json"

// GenerateRequest defines the input for an LLM generation call.
type GenerateRequest struct {
	Prompt      string
	SystemMsg   string
	Model       string // overrides the backend default when set
	Format      string // FormatJSON for JSON mode
	UseSearch   bool   // request web-search grounding where supported
	Temperature float64
	MaxTokens   int
}

// TokenUsage tracks LLM token consumption.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Content   string
	Model     string
	Usage     TokenUsage
	Citations []domain.WebSource
}

// LLMBackend defines the interface for LLM text generation.
type LLMBackend interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
	Name() string
}
