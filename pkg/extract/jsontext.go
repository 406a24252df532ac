package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Stage identifies which extraction step recovered a JSON value.
type Stage int

// Extraction stages, cheapest and most likely to be correct first.
const (
	StageDirect Stage = iota + 1
	StageFenceStripped
	StageObject
	StageArray
)

func (s Stage) String() string {
	switch s {
	case StageDirect:
		return "direct"
	case StageFenceStripped:
		return "fence_stripped"
	case StageObject:
		return "object"
	case StageArray:
		return "array"
	default:
		return "none"
	}
}

// ExtractJSON recovers a JSON value from model output. Models do not
// reliably honor "JSON only" instructions, so the text is tried as-is,
// then with code fences removed, then as the outermost {...} span, then as
// the outermost [...] span. The returned message is valid JSON. On failure
// the error is an *ExtractionError carrying the original text.
func ExtractJSON(text string) (json.RawMessage, error) {
	raw, _, err := extractJSON(text)
	return raw, err
}

// Extract returns the recovered JSON value decoded into generic Go values
// (map[string]any, []any, float64, string, bool, nil).
func Extract(text string) (any, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &ExtractionError{Raw: text, Err: err}
	}
	return v, nil
}

// DecodeJSON recovers JSON from text and decodes it into dst, reporting the
// stage that recovered it. A value that is valid JSON but does not fit dst
// is also an extraction failure.
func DecodeJSON(text string, dst any) (Stage, error) {
	raw, stage, err := extractJSON(text)
	if err != nil {
		return 0, err
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return stage, &ExtractionError{Raw: text, Err: fmt.Errorf("decoding %T: %w", dst, err)}
	}
	return stage, nil
}

func extractJSON(text string) (json.RawMessage, Stage, error) {
	if raw, ok := parseJSON(text); ok {
		return raw, StageDirect, nil
	}

	clean := stripCodeFences(text)
	if raw, ok := parseJSON(clean); ok {
		return raw, StageFenceStripped, nil
	}

	if span, found := outermostSpan(clean, '{', '}'); found {
		if raw, ok := parseJSON(span); ok {
			return raw, StageObject, nil
		}
	}

	if span, found := outermostSpan(clean, '[', ']'); found {
		if raw, ok := parseJSON(span); ok && bytes.HasPrefix(raw, []byte("[")) {
			return raw, StageArray, nil
		}
	}

	return nil, 0, &ExtractionError{
		Raw: text,
		Err: errors.New("no JSON value found in response text"),
	}
}

func parseJSON(s string) (json.RawMessage, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || !json.Valid([]byte(trimmed)) {
		return nil, false
	}
	return json.RawMessage(trimmed), true
}

func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// outermostSpan returns the substring from the first open rune to the last
// close rune that follows it.
func outermostSpan(s string, open, closing byte) (string, bool) {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(s, closing)
	if end <= start {
		return "", false
	}
	return s[start : end+1], true
}
