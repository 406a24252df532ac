package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Model output is decoded leniently: text fields accept numbers, booleans
// and arrays, and list elements of the wrong shape are skipped instead of
// failing the whole value.

// UnmarshalJSON implements json.Unmarshaler.
func (a *ItemAnalysis) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name           json.RawMessage `json:"name"`
		Category       json.RawMessage `json:"category"`
		Description    json.RawMessage `json:"description"`
		EstimatedValue json.RawMessage `json:"estimatedValue"`
		SearchTips     json.RawMessage `json:"searchTips"`
		Versions       json.RawMessage `json:"versions"`
		Sources        json.RawMessage `json:"sources"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*a = ItemAnalysis{
		Name:           flexString(raw.Name),
		Category:       flexString(raw.Category),
		Description:    flexString(raw.Description),
		EstimatedValue: flexString(raw.EstimatedValue),
		SearchTips:     flexStrings(raw.SearchTips),
		Versions:       decodeEach[RegionVersion](raw.Versions),
		Sources:        decodeEach[WebSource](raw.Sources),
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. A languages list is joined
// with ", ".
func (v *RegionVersion) UnmarshalJSON(data []byte) error {
	var raw struct {
		Region    json.RawMessage `json:"region"`
		Languages json.RawMessage `json:"languages"`
		SourceURL json.RawMessage `json:"sourceUrl"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*v = RegionVersion{
		Region:    flexString(raw.Region),
		Languages: flexString(raw.Languages),
		SourceURL: flexString(raw.SourceURL),
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *PriceInsight) UnmarshalJSON(data []byte) error {
	var raw struct {
		Prices   json.RawMessage `json:"prices"`
		Overview json.RawMessage `json:"overview"`
		Sources  json.RawMessage `json:"sources"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = PriceInsight{
		Prices:   decodeEach[PlatformPrice](raw.Prices),
		Overview: flexString(raw.Overview),
		Sources:  decodeEach[WebSource](raw.Sources),
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. A numeric price keeps its
// literal digits.
func (pp *PlatformPrice) UnmarshalJSON(data []byte) error {
	var raw struct {
		Platform json.RawMessage `json:"platform"`
		Price    json.RawMessage `json:"price"`
		Status   json.RawMessage `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*pp = PlatformPrice{
		Platform: flexString(raw.Platform),
		Price:    flexString(raw.Price),
		Status:   flexString(raw.Status),
	}
	return nil
}

// flexString renders any JSON value as text. Strings are unquoted, arrays
// are joined with ", ", null and absent values are empty, and everything
// else keeps its literal JSON form.
func flexString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	case '[':
		return strings.Join(flexStrings(raw), ", ")
	}
	return string(raw)
}

// flexStrings renders a JSON array as a list of non-empty strings. A
// single non-array value becomes a one-element list.
func flexStrings(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	if raw[0] != '[' {
		if s := flexString(raw); s != "" {
			return []string{s}
		}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(flexString(item)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// decodeEach decodes a JSON array element by element, skipping elements
// that do not decode into T. A non-array value yields nil.
func decodeEach[T any](raw json.RawMessage) []T {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
