// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	domain "github.com/donaldgifford/price-scout/pkg/types"
)

// Supported LLM backends.
const (
	BackendGemini       = "gemini"
	BackendAnthropic    = "anthropic"
	BackendOpenAICompat = "openai_compat"
	BackendOllama       = "ollama"
)

// Config is the top-level application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	LLM       LLMConfig       `yaml:"llm"`
	Search    SearchConfig    `yaml:"search"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// LLMConfig defines LLM backend settings.
type LLMConfig struct {
	Backend      string             `yaml:"backend"` // gemini, anthropic, openai_compat, ollama
	Gemini       GeminiConfig       `yaml:"gemini"`
	Anthropic    AnthropicConfig    `yaml:"anthropic"`
	OpenAICompat OpenAICompatConfig `yaml:"openai_compat"`
	Ollama       OllamaConfig       `yaml:"ollama"`
	Models       ModelsConfig       `yaml:"models"`
	Timeout      time.Duration      `yaml:"timeout"`
	Temperature  float64            `yaml:"temperature"` // 0 keeps the backend default
	MaxTokens    int                `yaml:"max_tokens"`  // 0 keeps the backend default
}

// GeminiConfig defines Gemini API settings. An empty APIKey falls back to
// GEMINI_API_KEY, then API_KEY.
type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// AnthropicConfig defines Anthropic API settings.
type AnthropicConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// OpenAICompatConfig defines OpenAI-compatible endpoint settings.
type OpenAICompatConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// OllamaConfig defines Ollama-specific settings.
type OllamaConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// ModelsConfig selects the model per task.
type ModelsConfig struct {
	Autocomplete string `yaml:"autocomplete"`
	Analysis     string `yaml:"analysis"`
	Prices       string `yaml:"prices"`
}

// SearchConfig defines search defaults.
type SearchConfig struct {
	DefaultCurrency string `yaml:"default_currency"`
}

// TelemetryConfig defines OpenTelemetry export settings.
type TelemetryConfig struct {
	Enabled         bool          `yaml:"enabled"`
	Endpoint        string        `yaml:"endpoint"` // OTLP gRPC host:port
	Insecure        bool          `yaml:"insecure"`
	ServiceName     string        `yaml:"service_name"`
	SampleRatio     float64       `yaml:"sample_ratio"`
	ExportMetrics   bool          `yaml:"export_metrics"`
	MetricsInterval time.Duration `yaml:"metrics_interval"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse parses YAML config content, performing environment variable
// substitution and validation.
func Parse(data []byte) (*Config, error) {
	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Currency returns the validated default search currency.
func (s SearchConfig) Currency() domain.Currency {
	c, err := domain.ParseCurrency(s.DefaultCurrency)
	if err != nil {
		return domain.DefaultCurrency
	}
	return c
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyLLMDefaults(&cfg.LLM)
	applySearchDefaults(&cfg.Search)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 150 * time.Second
	}
}

func applyLLMDefaults(l *LLMConfig) {
	if l.Backend == "" {
		l.Backend = BackendGemini
	}
	if l.Timeout == 0 {
		l.Timeout = 60 * time.Second
	}
	if l.Ollama.Endpoint == "" {
		l.Ollama.Endpoint = "http://localhost:11434"
	}
	applyModelDefaults(l.Backend, &l.Models)
}

// defaultModels holds per-backend task models. Self-hosted backends have
// none: their models must be configured.
var defaultModels = map[string]ModelsConfig{
	BackendGemini: {
		Autocomplete: "gemini-flash-lite-latest",
		Analysis:     "gemini-3-pro-preview",
		Prices:       "gemini-3-pro-preview",
	},
	BackendAnthropic: {
		Autocomplete: "claude-haiku-4-5",
		Analysis:     "claude-sonnet-4-5",
		Prices:       "claude-sonnet-4-5",
	},
}

func applyModelDefaults(backend string, m *ModelsConfig) {
	d := defaultModels[backend]
	if d == (ModelsConfig{}) {
		// The analysis model doubles as the default for the other tasks.
		d = ModelsConfig{Autocomplete: m.Analysis, Analysis: m.Analysis, Prices: m.Analysis}
	}
	if m.Autocomplete == "" {
		m.Autocomplete = d.Autocomplete
	}
	if m.Analysis == "" {
		m.Analysis = d.Analysis
	}
	if m.Prices == "" {
		m.Prices = d.Prices
	}
}

func applySearchDefaults(s *SearchConfig) {
	if s.DefaultCurrency == "" {
		s.DefaultCurrency = string(domain.DefaultCurrency)
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.ServiceName == "" {
		t.ServiceName = "price-scout"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
	}
	if t.MetricsInterval == 0 {
		t.MetricsInterval = 30 * time.Second
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	switch cfg.LLM.Backend {
	case BackendGemini, BackendAnthropic:
	case BackendOpenAICompat:
		if cfg.LLM.OpenAICompat.Endpoint == "" {
			errs = append(
				errs,
				errors.New("llm.openai_compat.endpoint is required when backend is openai_compat"),
			)
		}
		if cfg.LLM.Models.Analysis == "" {
			errs = append(
				errs,
				errors.New("llm.models.analysis is required when backend is openai_compat"),
			)
		}
	case BackendOllama:
		if cfg.LLM.Models.Analysis == "" {
			errs = append(
				errs,
				errors.New("llm.models.analysis is required when backend is ollama"),
			)
		}
	default:
		errs = append(
			errs,
			fmt.Errorf(
				"llm.backend must be one of: gemini, anthropic, openai_compat, ollama (got %q)",
				cfg.LLM.Backend,
			),
		)
	}

	if cfg.LLM.Timeout < 0 {
		errs = append(errs, errors.New("llm.timeout must not be negative"))
	}

	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		errs = append(errs, fmt.Errorf("llm.temperature must be between 0 and 2 (got %g)", cfg.LLM.Temperature))
	}

	if cfg.LLM.MaxTokens < 0 {
		errs = append(errs, errors.New("llm.max_tokens must not be negative"))
	}

	if _, err := domain.ParseCurrency(cfg.Search.DefaultCurrency); err != nil {
		errs = append(errs, fmt.Errorf("search.default_currency: %w", err))
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535 (got %d)", cfg.Server.Port))
	}

	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf(
			"telemetry.sample_ratio must be between 0 and 1 (got %g)",
			cfg.Telemetry.SampleRatio,
		))
	}

	return errors.Join(errs...)
}
