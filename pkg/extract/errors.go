package extract

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for the three failure classes of the scout pipeline.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvocationFailed = errors.New("model invocation failed")
	ErrExtractionFailed = errors.New("could not parse JSON response")
)

// InvocationError wraps a transport, authentication, or quota failure from
// an LLM backend. StatusCode is zero when no HTTP response was received.
type InvocationError struct {
	Backend    string
	StatusCode int
	Message    string
	Err        error
}

func (e *InvocationError) Error() string {
	switch {
	case e.StatusCode > 0 && e.Message != "":
		return fmt.Sprintf("%s API error (status %d): %s", e.Backend, e.StatusCode, e.Message)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s API error (status %d)", e.Backend, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("calling %s: %v", e.Backend, e.Err)
	default:
		return fmt.Sprintf("calling %s: %s", e.Backend, e.Message)
	}
}

func (e *InvocationError) Unwrap() error { return e.Err }

// Is makes every InvocationError match ErrInvocationFailed.
func (*InvocationError) Is(target error) bool {
	return target == ErrInvocationFailed
}

// ExtractionError is returned when model text cannot be recovered as JSON.
// Raw holds the original text for diagnostics.
type ExtractionError struct {
	Raw string
	Err error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", ErrExtractionFailed, e.Err)
	}
	return ErrExtractionFailed.Error()
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Is makes every ExtractionError match ErrExtractionFailed.
func (*ExtractionError) Is(target error) bool {
	return target == ErrExtractionFailed
}

// IsAuthFailure reports whether err looks like a credential problem: a
// missing, invalid, or unauthorized API key. Structured status codes are
// checked first; the substring match is a best-effort fallback for errors
// that carry no status.
func IsAuthFailure(err error) bool {
	if err == nil {
		return false
	}

	var invErr *InvocationError
	if errors.As(err, &invErr) && invErr.StatusCode > 0 {
		switch invErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return true
		case http.StatusBadRequest:
			return mentionsAPIKey(invErr.Message)
		default:
			return false
		}
	}

	msg := err.Error()
	return strings.Contains(msg, "400") ||
		strings.Contains(msg, "403") ||
		mentionsAPIKey(msg)
}

func mentionsAPIKey(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "api key") ||
		strings.Contains(lower, "api_key") ||
		strings.Contains(lower, "apikey")
}
