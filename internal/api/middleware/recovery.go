package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/price-scout/internal/metrics"
)

// PanicResponse is the body returned for a recovered panic.
type PanicResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// Recovery returns Echo middleware that turns a handler panic into a 500
// response carrying the request id. It is registered after RequestLog,
// Tracing and Metrics so that a panicking request is still logged, traced
// and counted as a 500. The panic is recorded on the request span and in
// pscout_http_panics_total. http.ErrAbortHandler is re-raised.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if e, ok := r.(error); ok && errors.Is(e, http.ErrAbortHandler) {
					panic(r)
				}

				req := c.Request()
				ctx := req.Context()
				perr := panicError(r)
				reqID := RequestID(ctx)

				route := c.Path()
				if route == "" {
					route = req.URL.Path
				}
				metrics.HTTPPanicsTotal.WithLabelValues(req.Method, route).Inc()

				span := trace.SpanFromContext(ctx)
				span.RecordError(perr)
				span.SetStatus(codes.Error, "panic: "+perr.Error())

				log.ErrorContext(ctx, "panic recovered",
					"error", perr.Error(),
					"method", req.Method,
					"path", req.URL.Path,
					"request_id", reqID,
					"stack", string(debug.Stack()),
				)

				if c.Response().Committed {
					err = nil
					return
				}
				err = c.JSON(http.StatusInternalServerError, PanicResponse{
					Error:     "internal server error",
					RequestID: reqID,
				})
			}()
			return next(c)
		}
	}
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
