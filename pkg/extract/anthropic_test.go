package extract_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/price-scout/pkg/extract"
	domain "github.com/donaldgifford/price-scout/pkg/types"
)

func TestAnthropicBackend_Name(t *testing.T) {
	t.Parallel()
	b := extract.NewAnthropicBackend()
	assert.Equal(t, "anthropic", b.Name())
}

func TestAnthropicBackend_Generate(t *testing.T) {
	t.Parallel()

	successResponse := `{
		"content": [{"type": "text", "text": "[\"Pokemon Red\"]"}],
		"model": "claude-haiku-4-5",
		"usage": {"input_tokens": 10, "output_tokens": 1}
	}`

	groundedResponse := `{
		"content": [
			{"type": "server_tool_use", "id": "srvtoolu_1", "name": "web_search"},
			{"type": "web_search_tool_result", "tool_use_id": "srvtoolu_1"},
			{"type": "text", "text": "{\"prices\": []",
			 "citations": [{"type": "web_search_result_location", "url": "https://www.pricecharting.com/game/gameboy/pokemon-red", "title": "Pokemon Red Prices"}]},
			{"type": "text", "text": ", \"overview\": \"ok\"}",
			 "citations": [{"type": "web_search_result_location", "url": "", "title": "no url"}]}
		],
		"model": "claude-haiku-4-5",
		"usage": {"input_tokens": 120, "output_tokens": 30}
	}`

	tests := []struct {
		name          string
		apiKey        string
		handler       http.HandlerFunc
		req           extract.GenerateRequest
		wantErr       bool
		wantErrMsg    string
		wantAuth      bool
		wantResp      string
		wantUsage     int
		wantCitations []domain.WebSource
	}{
		{
			name:   "successful generation",
			apiKey: "test-key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
				assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
				var req map[string]any
				_ = json.NewDecoder(r.Body).Decode(&req)
				assert.NotContains(t, req, "tools")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(successResponse))
			},
			req: extract.GenerateRequest{
				Prompt:      "autocomplete poke",
				Temperature: 0.1,
				MaxTokens:   50,
			},
			wantResp:      `["Pokemon Red"]`,
			wantUsage:     11,
			wantCitations: []domain.WebSource{},
		},
		{
			name:   "search attaches web search tool and collects citations",
			apiKey: "test-key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var req map[string]any
				_ = json.NewDecoder(r.Body).Decode(&req)
				assert.Equal(t, "claude-sonnet-4-5", req["model"])
				tools, _ := req["tools"].([]any)
				if assert.Len(t, tools, 1) {
					tool := tools[0].(map[string]any)
					assert.Equal(t, "web_search_20250305", tool["type"])
					assert.Equal(t, "web_search", tool["name"])
				}
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(groundedResponse))
			},
			req: extract.GenerateRequest{
				Prompt:    "prices for pokemon red",
				Model:     "claude-sonnet-4-5",
				UseSearch: true,
			},
			wantResp:  `{"prices": [], "overview": "ok"}`,
			wantUsage: 150,
			wantCitations: []domain.WebSource{
				{Title: "Pokemon Red Prices", URI: "https://www.pricecharting.com/game/gameboy/pokemon-red"},
			},
		},
		{
			name:       "missing API key",
			apiKey:     "",
			handler:    func(_ http.ResponseWriter, _ *http.Request) {},
			req:        extract.GenerateRequest{Prompt: "test"},
			wantErr:    true,
			wantErrMsg: "ANTHROPIC_API_KEY",
			wantAuth:   true,
		},
		{
			name:   "invalid key 401",
			apiKey: "bad-key",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{
					"error": {"type": "authentication_error", "message": "invalid x-api-key"}
				}`))
			},
			req:        extract.GenerateRequest{Prompt: "test"},
			wantErr:    true,
			wantErrMsg: "authentication_error",
			wantAuth:   true,
		},
		{
			name:   "rate limited 429",
			apiKey: "test-key",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{
					"error": {"type": "rate_limit_error", "message": "rate limit exceeded"}
				}`))
			},
			req:        extract.GenerateRequest{Prompt: "test"},
			wantErr:    true,
			wantErrMsg: "rate_limit_error",
		},
		{
			name:   "server error 500",
			apiKey: "test-key",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{
					"error": {"type": "api_error", "message": "internal server error"}
				}`))
			},
			req:        extract.GenerateRequest{Prompt: "test"},
			wantErr:    true,
			wantErrMsg: "api_error",
		},
		{
			name:   "invalid JSON response",
			apiKey: "test-key",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`not json`))
			},
			req:        extract.GenerateRequest{Prompt: "test"},
			wantErr:    true,
			wantErrMsg: "parsing anthropic",
		},
		{
			name:   "empty content array",
			apiKey: "test-key",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{"content":[],"model":"test","usage":{}}`))
			},
			req:        extract.GenerateRequest{Prompt: "test"},
			wantErr:    true,
			wantErrMsg: "empty response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			backend := extract.NewAnthropicBackend(
				extract.WithAnthropicEndpoint(srv.URL),
				extract.WithAnthropicHTTPClient(srv.Client()),
				extract.WithAnthropicAPIKey(tt.apiKey),
			)

			resp, err := backend.Generate(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				assert.ErrorIs(t, err, extract.ErrInvocationFailed)
				assert.Equal(t, tt.wantAuth, extract.IsAuthFailure(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantResp, resp.Content)
			assert.Equal(t, tt.wantCitations, resp.Citations)
			if tt.wantUsage > 0 {
				assert.Equal(t, tt.wantUsage, resp.Usage.TotalTokens)
			}
		})
	}
}
