// Package main implements a mock Gemini API server for local development.
// It answers generateContent calls with canned model text from a JSON
// fixture, so price-scout can run without a real API key:
//
//	go run ./tools/mock-gemini &
//	GEMINI_API_KEY=dev price-scout search "Pokemon Emerald" --config config.mock.yaml
//
// where config.mock.yaml is config.example.yaml with llm.gemini.base_url set
// to http://localhost:8089/.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

type fixtures struct {
	Autocomplete string   `json:"autocomplete"`
	Analysis     string   `json:"analysis"`
	Prices       string   `json:"prices"`
	Sources      []source `json:"sources"`
}

type source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type generateRequest struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	Tools []map[string]any `json:"tools"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-gemini/testdata/fixtures.json", "path to model response fixtures")
	delay := flag.Duration("delay", 0, "artificial latency per call")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fx, err := loadFixtures(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /{version}/models/{action}", generateHandler(logger, fx, *delay))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock Gemini server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixtures(path string) (*fixtures, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var fx fixtures
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &fx, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// task classifies a prompt by its opening line.
func task(prompt string) string {
	switch {
	case strings.HasPrefix(prompt, "Task: Autocomplete"):
		return "autocomplete"
	case strings.HasPrefix(prompt, "Analyze item:"):
		return "analysis"
	case strings.HasPrefix(prompt, "Task: Find REAL-TIME market prices"):
		return "prices"
	default:
		return ""
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    status,
			"message": msg,
			"status":  http.StatusText(status),
		},
	})
}

func generateHandler(logger *slog.Logger, fx *fixtures, delay time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		model, ok := strings.CutSuffix(r.PathValue("action"), ":generateContent")
		if !ok {
			writeError(w, http.StatusNotFound, "unsupported method")
			return
		}

		if r.Header.Get("x-goog-api-key") == "" {
			logger.Warn("request missing API key")
			writeError(w, http.StatusForbidden, "API key not valid. Please pass a valid API key.")
			return
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}

		prompt := ""
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			prompt = req.Contents[0].Parts[0].Text
		}

		var text string
		switch task(prompt) {
		case "autocomplete":
			text = fx.Autocomplete
		case "analysis":
			text = fx.Analysis
		case "prices":
			text = fx.Prices
		default:
			writeError(w, http.StatusBadRequest, "unrecognized prompt")
			return
		}

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		candidate := map[string]any{
			"content": map[string]any{
				"role":  "model",
				"parts": []map[string]any{{"text": text}},
			},
			"finishReason": "STOP",
		}

		grounded := len(req.Tools) > 0
		if grounded {
			chunks := make([]map[string]any, 0, len(fx.Sources))
			for _, s := range fx.Sources {
				chunks = append(chunks, map[string]any{"web": map[string]string{"title": s.Title, "uri": s.URI}})
			}
			candidate["groundingMetadata"] = map[string]any{"groundingChunks": chunks}
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{
			"candidates":   []any{candidate},
			"modelVersion": model,
			"usageMetadata": map[string]int{
				"promptTokenCount":     len(prompt) / 4,
				"candidatesTokenCount": len(text) / 4,
				"totalTokenCount":      (len(prompt) + len(text)) / 4,
			},
		})
		logger.Info("generate", "model", model, "task", task(prompt), "grounded", grounded)
	}
}
