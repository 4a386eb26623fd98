// Package filter decides whether a record passes a facet filter state.
//
// Criteria combine with AND: free-text query, date lower bound, date upper
// bound, and every facet of the state. Within one facet the selected values
// combine with OR. An empty facet selection never excludes a record.
package filter

import (
	"strings"
	"time"

	"github.com/DeafMist/trt-intel/internal/facet"
)

// Record is one filterable unit of content.
type Record interface {
	RecordID() string
	// RecordDate returns the record's calendar date as stored (YYYY-MM-DD).
	RecordDate() string
	// FacetValues returns the record's values for f. Single-valued fields
	// return at most one element; an absent field returns nil.
	FacetValues(f facet.Facet) []string
	// SearchFields returns the texts matched by the free-text query.
	SearchFields() []string
}

// Rejection names the first criterion a record failed.
type Rejection int

const (
	Accepted Rejection = iota
	RejectQuery
	RejectMalformedDate
	RejectBeforeStart
	RejectAfterEnd
	RejectFacet
)

func (r Rejection) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case RejectQuery:
		return "query"
	case RejectMalformedDate:
		return "malformed_date"
	case RejectBeforeStart:
		return "before_start"
	case RejectAfterEnd:
		return "after_end"
	case RejectFacet:
		return "facet"
	default:
		return "unknown"
	}
}

// Predicate is a compiled filter state. It holds no mutable state and may be
// shared across goroutines.
type Predicate struct {
	query      string
	start      *time.Time
	end        *time.Time
	selections map[facet.Facet]map[string]struct{}
}

// Compile prepares st for repeated evaluation.
func Compile(st facet.State) Predicate {
	p := Predicate{
		query: strings.ToLower(strings.TrimSpace(st.Query)),
		start: st.DateRange.Start,
		end:   st.DateRange.End,
	}

	for f, values := range st.Selections {
		if len(values) == 0 {
			continue
		}
		if p.selections == nil {
			p.selections = make(map[facet.Facet]map[string]struct{}, len(st.Selections))
		}
		set := make(map[string]struct{}, len(values))
		for _, v := range values {
			set[v] = struct{}{}
		}
		p.selections[f] = set
	}

	return p
}

// Matches evaluates a single record against st.
func Matches(rec Record, st facet.State) bool {
	return Compile(st).Match(rec)
}

// Match reports whether rec passes every criterion.
func (p Predicate) Match(rec Record) bool {
	return p.Explain(rec) == Accepted
}

// Explain returns Accepted or the first criterion rec failed.
func (p Predicate) Explain(rec Record) Rejection {
	if p.query != "" && !p.matchesQuery(rec) {
		return RejectQuery
	}

	if p.start != nil || p.end != nil {
		date, err := facet.ParseDate(rec.RecordDate())
		if err != nil {
			return RejectMalformedDate
		}
		if p.start != nil && date.Before(*p.start) {
			return RejectBeforeStart
		}
		if p.end != nil && date.After(*p.end) {
			return RejectAfterEnd
		}
	}

	for f, selected := range p.selections {
		if !matchesFacet(rec.FacetValues(f), selected) {
			return RejectFacet
		}
	}

	return Accepted
}

func (p Predicate) matchesQuery(rec Record) bool {
	for _, field := range rec.SearchFields() {
		if strings.Contains(strings.ToLower(field), p.query) {
			return true
		}
	}
	return false
}

func matchesFacet(values []string, selected map[string]struct{}) bool {
	for _, v := range values {
		if _, ok := selected[v]; ok {
			return true
		}
	}
	return false
}
