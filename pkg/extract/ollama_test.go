package extract_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/price-scout/pkg/extract"
)

func TestOllamaBackend_Name(t *testing.T) {
	t.Parallel()
	b := extract.NewOllamaBackend("http://localhost:11434", "mistral")
	assert.Equal(t, "ollama", b.Name())
}

func TestOllamaBackend_Generate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		req        extract.GenerateRequest
		wantErr    bool
		wantErrMsg string
		wantStatus int
		wantResp   string
		wantModel  string
	}{
		{
			name: "successful generation",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{"model":"mistral","response":"[\"Zelda\"]","prompt_eval_count":12,"eval_count":4}`))
			},
			req: extract.GenerateRequest{
				Prompt:      "autocomplete this",
				Temperature: 0.1,
				MaxTokens:   50,
			},
			wantResp:  `["Zelda"]`,
			wantModel: "mistral",
		},
		{
			name: "request model overrides default",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var body map[string]any
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "llama3", body["model"])
				assert.Equal(t, "json", body["format"])
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{"model":"llama3","response":"{\"key\":\"val\"}"}`))
			},
			req: extract.GenerateRequest{
				Prompt: "extract",
				Model:  "llama3",
				Format: extract.FormatJSON,
			},
			wantResp:  `{"key":"val"}`,
			wantModel: "llama3",
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`internal error`))
			},
			req:        extract.GenerateRequest{Prompt: "test"},
			wantErr:    true,
			wantErrMsg: "ollama API error (status 500)",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "invalid JSON response",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`not json`))
			},
			req:        extract.GenerateRequest{Prompt: "test"},
			wantErr:    true,
			wantErrMsg: "parsing ollama",
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				time.Sleep(200 * time.Millisecond)
				w.WriteHeader(http.StatusOK)
			},
			req:        extract.GenerateRequest{Prompt: "test"},
			wantErr:    true,
			wantErrMsg: "calling ollama",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			clientTimeout := 5 * time.Second
			if tt.name == "timeout" {
				clientTimeout = 50 * time.Millisecond
			}

			backend := extract.NewOllamaBackend(
				srv.URL,
				"mistral",
				extract.WithOllamaHTTPClient(&http.Client{Timeout: clientTimeout}),
			)

			resp, err := backend.Generate(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				assert.ErrorIs(t, err, extract.ErrInvocationFailed)

				var invErr *extract.InvocationError
				require.True(t, errors.As(err, &invErr))
				assert.Equal(t, tt.wantStatus, invErr.StatusCode)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantResp, resp.Content)
			assert.Equal(t, tt.wantModel, resp.Model)
			assert.Empty(t, resp.Citations)
		})
	}
}
