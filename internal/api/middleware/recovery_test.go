package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/donaldgifford/price-scout/internal/metrics"
)

func TestRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		path       string
		handler    echo.HandlerFunc
		wantStatus int
		wantPanic  bool
		wantLog    []string
	}{
		{
			name:   "no panic passes through",
			method: http.MethodGet,
			path:   "/api/v1/recovery/ok",
			handler: func(c echo.Context) error {
				return c.String(http.StatusOK, "ok")
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "string panic",
			method: http.MethodPost,
			path:   "/api/v1/recovery/string",
			handler: func(echo.Context) error {
				panic("scout exploded")
			},
			wantStatus: http.StatusInternalServerError,
			wantPanic:  true,
			wantLog:    []string{"panic recovered", "scout exploded", "method=POST", "path=/api/v1/recovery/string"},
		},
		{
			name:   "error panic",
			method: http.MethodGet,
			path:   "/api/v1/recovery/error",
			handler: func(echo.Context) error {
				panic(errors.New("nil analysis"))
			},
			wantStatus: http.StatusInternalServerError,
			wantPanic:  true,
			wantLog:    []string{"nil analysis", "stack="},
		},
		{
			name:   "non-error value panic",
			method: http.MethodGet,
			path:   "/api/v1/recovery/int",
			handler: func(echo.Context) error {
				panic(42)
			},
			wantStatus: http.StatusInternalServerError,
			wantPanic:  true,
			wantLog:    []string{"error=42"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			exporter := tracetest.NewInMemoryExporter()
			tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

			e := echo.New()
			e.Use(RequestLog(logger))
			e.Use(Tracing(tp))
			e.Use(Recovery(logger))
			e.Add(tt.method, tt.path, tt.handler)

			panics := metrics.HTTPPanicsTotal.WithLabelValues(tt.method, tt.path)
			before := testutil.ToFloat64(panics)

			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			req.Header.Set(requestIDHeader, "req-"+tt.name)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)

			spans := exporter.GetSpans()
			require.Len(t, spans, 1)

			if !tt.wantPanic {
				assert.NotContains(t, buf.String(), "panic recovered")
				assert.InDelta(t, before, testutil.ToFloat64(panics), 0.001)
				return
			}

			var body PanicResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "internal server error", body.Error)
			assert.Equal(t, "req-"+tt.name, body.RequestID)

			for _, want := range tt.wantLog {
				assert.Contains(t, buf.String(), want)
			}
			assert.Contains(t, buf.String(), "request_id=\"req-"+tt.name+"\"")
			assert.InDelta(t, before+1, testutil.ToFloat64(panics), 0.001)

			assert.Equal(t, codes.Error, spans[0].Status.Code)
			require.NotEmpty(t, spans[0].Events)
			assert.Equal(t, "exception", spans[0].Events[0].Name)
		})
	}
}

func TestRecovery_AfterResponseCommitted(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	e.Use(Recovery(logger))
	e.GET("/api/v1/recovery/committed", func(c echo.Context) error {
		c.Response().WriteHeader(http.StatusOK)
		panic("late failure")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recovery/committed", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Contains(t, buf.String(), "late failure")
}

func TestRecovery_AbortHandlerIsReraised(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	handler := Recovery(logger)(func(echo.Context) error {
		panic(http.ErrAbortHandler)
	})

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", http.NoBody), httptest.NewRecorder())

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		_ = handler(c)
	})
}
