package extract

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"google.golang.org/genai"

	domain "github.com/donaldgifford/price-scout/pkg/types"
)

const defaultGeminiModel = "gemini-flash-latest"

// GeminiBackend implements LLMBackend using the Gemini API. It is the only
// backend that supports Google Search grounding.
type GeminiBackend struct {
	client *genai.Client
	model  string
}

type geminiSettings struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// GeminiOption configures the GeminiBackend.
type GeminiOption func(*geminiSettings)

// WithGeminiAPIKey overrides the API key (instead of reading from env).
func WithGeminiAPIKey(key string) GeminiOption {
	return func(s *geminiSettings) {
		s.apiKey = key
	}
}

// WithGeminiBaseURL overrides the API base URL, e.g. for a proxy or a mock server.
func WithGeminiBaseURL(url string) GeminiOption {
	return func(s *geminiSettings) {
		s.baseURL = url
	}
}

// WithGeminiModel overrides the default model.
func WithGeminiModel(model string) GeminiOption {
	return func(s *geminiSettings) {
		s.model = model
	}
}

// WithGeminiHTTPClient overrides the default HTTP client.
func WithGeminiHTTPClient(c *http.Client) GeminiOption {
	return func(s *geminiSettings) {
		s.httpClient = c
	}
}

// GeminiAPIKeyFromEnv returns GEMINI_API_KEY, falling back to API_KEY.
func GeminiAPIKeyFromEnv() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("API_KEY")
}

// NewGeminiBackend creates a Gemini backend. The API key is read from the
// environment if not provided via options.
func NewGeminiBackend(ctx context.Context, opts ...GeminiOption) (*GeminiBackend, error) {
	s := &geminiSettings{
		apiKey: GeminiAPIKeyFromEnv(),
		model:  defaultGeminiModel,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}

	cfg := &genai.ClientConfig{
		APIKey:     s.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: s.httpClient,
	}
	if s.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: s.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiBackend{client: client, model: s.model}, nil
}

// Name returns the backend name.
func (*GeminiBackend) Name() string {
	return "gemini"
}

// Generate calls generateContent, attaching the Google Search tool when
// req.UseSearch is set.
func (b *GeminiBackend) Generate(
	ctx context.Context,
	req GenerateRequest,
) (GenerateResponse, error) {
	model := req.Model
	if model == "" {
		model = b.model
	}

	cfg := &genai.GenerateContentConfig{}
	if req.SystemMsg != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemMsg}},
		}
	}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		cfg.Temperature = &temp
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	// Search grounding and JSON mode cannot be combined on the Gemini API;
	// grounded calls rely on the prompt's output contract instead.
	if req.UseSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	} else if req.Format == FormatJSON {
		cfg.ResponseMIMEType = "application/json"
	}

	resp, err := b.client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return GenerateResponse{}, geminiInvocationError(err)
	}

	out := GenerateResponse{
		Content:   resp.Text(),
		Model:     model,
		Citations: groundingSources(resp),
	}
	if resp.ModelVersion != "" {
		out.Model = resp.ModelVersion
	}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = TokenUsage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}

	return out, nil
}

// groundingSources collects the web chunks of the first candidate's
// grounding metadata. Chunks without a web reference are dropped.
func groundingSources(resp *genai.GenerateContentResponse) []domain.WebSource {
	sources := []domain.WebSource{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return sources
	}

	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return sources
	}

	for _, chunk := range meta.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		if strings.TrimSpace(chunk.Web.URI) == "" {
			continue
		}
		sources = append(sources, domain.WebSource{
			Title: chunk.Web.Title,
			URI:   chunk.Web.URI,
		})
	}

	return sources
}

func geminiInvocationError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &InvocationError{
			Backend:    "gemini",
			StatusCode: apiErr.Code,
			Message:    strings.TrimSpace(apiErr.Status + ": " + apiErr.Message),
			Err:        err,
		}
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &InvocationError{
			Backend:    "gemini",
			StatusCode: apiErrPtr.Code,
			Message:    strings.TrimSpace(apiErrPtr.Status + ": " + apiErrPtr.Message),
			Err:        err,
		}
	}

	return &InvocationError{Backend: "gemini", Err: err}
}
