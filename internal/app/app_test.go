package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/price-scout/internal/config"
	"github.com/donaldgifford/price-scout/pkg/extract"
	"github.com/donaldgifford/price-scout/pkg/logger"
	domain "github.com/donaldgifford/price-scout/pkg/types"
)

func TestNewBackend(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	tests := []struct {
		name        string
		cfg         config.LLMConfig
		wantName    string
		wantUnready bool
		wantErr     bool
	}{
		{
			name:        "gemini without key is unready",
			cfg:         config.LLMConfig{Backend: config.BackendGemini},
			wantName:    "gemini",
			wantUnready: true,
		},
		{
			name:     "gemini with configured key",
			cfg:      config.LLMConfig{Backend: config.BackendGemini, Gemini: config.GeminiConfig{APIKey: "k"}},
			wantName: "gemini",
		},
		{
			name:        "anthropic without key is unready",
			cfg:         config.LLMConfig{Backend: config.BackendAnthropic},
			wantName:    "anthropic",
			wantUnready: true,
		},
		{
			name: "openai compat",
			cfg: config.LLMConfig{
				Backend:      config.BackendOpenAICompat,
				OpenAICompat: config.OpenAICompatConfig{Endpoint: "http://localhost:8000"},
				Models:       config.ModelsConfig{Analysis: "qwen2.5"},
			},
			wantName: "openai_compat",
		},
		{
			name: "ollama",
			cfg: config.LLMConfig{
				Backend: config.BackendOllama,
				Ollama:  config.OllamaConfig{Endpoint: "http://localhost:11434"},
				Models:  config.ModelsConfig{Analysis: "llama3.2"},
			},
			wantName: "ollama",
		},
		{
			name:    "unknown backend",
			cfg:     config.LLMConfig{Backend: "bard"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, unready, err := NewBackend(context.Background(), tt.cfg, nil)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, b.Name())
			assert.Equal(t, tt.wantUnready, unready != nil)
		})
	}
}

func TestApp_MissingKeyFailsWithAuthHint(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	a, err := New(context.Background(), config.Default(), WithLogger(logger.Discard()))
	require.NoError(t, err)
	require.Error(t, a.Ready(context.Background()))

	res, err := a.Engine.Search(context.Background(), "Pokemon Emerald", domain.CurrencyMYR)
	require.NoError(t, err)
	assert.Nil(t, res.Analysis)
	assert.True(t, extract.IsAuthFailure(res.AnalysisErr))
	assert.NotEmpty(t, res.Err)
	assert.NotEmpty(t, res.AuthHint)
	assert.Equal(t, extract.PricesUnavailableOverview, res.Prices.Overview)
}

func TestApp_OllamaPipeline(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama3.2","response":"[\"Pokemon Emerald\",\"Pokemon Ruby\"]","done":true}`))
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.LLM.Backend = config.BackendOllama
	cfg.LLM.Ollama.Endpoint = srv.URL
	cfg.LLM.Models = config.ModelsConfig{Autocomplete: "llama3.2", Analysis: "llama3.2", Prices: "llama3.2"}

	a, err := New(context.Background(), cfg, WithLogger(logger.Discard()), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	require.NoError(t, a.Ready(context.Background()))
	assert.Equal(t, domain.CurrencyMYR, a.Currency())
	assert.Equal(t, "llama3.2", a.Scout.Models().Autocomplete)

	got := a.Engine.Suggest(context.Background(), "poke")
	assert.Equal(t, []string{"Pokemon Emerald", "Pokemon Ruby"}, got)
}
