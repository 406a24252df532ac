// Package session holds the caller-owned state of one search box: the
// current query, its results, and a generation counter that keeps results
// of superseded searches from being applied.
package session

import (
	"strings"
	"sync"

	domain "github.com/donaldgifford/price-scout/pkg/types"
)

// Ticket identifies one search. Results are applied only while the ticket
// is current.
type Ticket struct {
	gen      uint64
	Query    string
	Currency domain.Currency
}

// Snapshot is a copy of the session state.
type Snapshot struct {
	Query       string
	Currency    domain.Currency
	Searching   bool
	Analysis    *domain.ItemAnalysis
	Prices      *domain.PriceInsight
	Err         string
	Suggestions []string
}

// Session is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	gen     uint64
	pending int

	query     string
	currency  domain.Currency
	searching bool
	analysis  *domain.ItemAnalysis
	prices    *domain.PriceInsight
	err       string

	suggestGen  uint64
	suggestions []string
}

// New creates an empty session.
func New(currency domain.Currency) *Session {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return &Session{currency: currency, suggestions: []string{}}
}

// SetCurrency changes the currency used by the next search.
func (s *Session) SetCurrency(c domain.Currency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currency = c
}

// Begin starts a search for query. Prior results and errors are cleared and
// any search still in flight is superseded. parts is the number of Apply
// calls that complete the search. ok is false for an empty query, in which
// case nothing changes.
func (s *Session) Begin(query string, parts int) (Ticket, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Ticket{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.suggestGen++
	s.pending = parts
	s.query = query
	s.searching = parts > 0
	s.analysis = nil
	s.prices = nil
	s.err = ""
	s.suggestions = []string{}

	return Ticket{gen: s.gen, Query: query, Currency: s.currency}, true
}

// Current reports whether t belongs to the latest search.
func (s *Session) Current(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.gen == s.gen
}

// ApplyAnalysis commits an analysis result. It returns false and drops the
// result when t has been superseded.
func (s *Session) ApplyAnalysis(t Ticket, a *domain.ItemAnalysis) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.gen != s.gen {
		return false
	}
	s.analysis = a
	s.done()
	return true
}

// ApplyPrices commits a price lookup result. It returns false and drops the
// result when t has been superseded.
func (s *Session) ApplyPrices(t Ticket, p *domain.PriceInsight) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.gen != s.gen {
		return false
	}
	s.prices = p
	s.done()
	return true
}

// ApplyError records a user-facing error for the current search.
func (s *Session) ApplyError(t Ticket, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.gen != s.gen {
		return false
	}
	s.err = msg
	return true
}

func (s *Session) done() {
	if s.pending > 0 {
		s.pending--
	}
	if s.pending == 0 {
		s.searching = false
	}
}

// BeginSuggest starts a suggestion lookup. Suggestion lookups have their
// own counter so that typing does not supersede a running search.
func (s *Session) BeginSuggest() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestGen++
	return s.suggestGen
}

// ApplySuggestions commits suggestions from lookup gen. It returns false
// when a newer lookup has started.
func (s *Session) ApplySuggestions(gen uint64, suggestions []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.suggestGen {
		return false
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	s.suggestions = suggestions
	return true
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Query:       s.query,
		Currency:    s.currency,
		Searching:   s.searching,
		Analysis:    s.analysis,
		Prices:      s.prices,
		Err:         s.err,
		Suggestions: append([]string(nil), s.suggestions...),
	}
}
