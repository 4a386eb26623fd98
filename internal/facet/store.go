package facet

import (
	"slices"
	"strings"
)

// State is the serializable filter state of one page.
// An empty selection for a facet means the facet does not restrict results.
type State struct {
	Selections map[Facet][]string `json:"selections,omitempty"`
	DateRange  DateRange          `json:"dateRange"`
	Query      string             `json:"query"`
}

// Selected returns the active values of f in selection order.
func (s State) Selected(f Facet) []string {
	return s.Selections[f]
}

// Active reports whether any facet, date bound, or query is set.
func (s State) Active() bool {
	for _, values := range s.Selections {
		if len(values) > 0 {
			return true
		}
	}
	return !s.DateRange.IsZero() || strings.TrimSpace(s.Query) != ""
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := State{
		DateRange: s.DateRange.clone(),
		Query:     s.Query,
	}
	if len(s.Selections) > 0 {
		out.Selections = make(map[Facet][]string, len(s.Selections))
		for f, values := range s.Selections {
			if len(values) == 0 {
				continue
			}
			out.Selections[f] = slices.Clone(values)
		}
	}
	return out
}

// Store holds and mutates filter state for a fixed schema. It never touches records.
// A Store is owned by one page session and is not safe for concurrent use.
type Store struct {
	schema Schema
	state  State
}

// NewStore creates a store with every facet empty.
func NewStore(schema Schema) *Store {
	return &Store{schema: schema}
}

// Schema returns the facets this store accepts.
func (s *Store) Schema() Schema {
	return s.schema
}

// State returns a snapshot that later mutations do not affect.
func (s *Store) State() State {
	return s.state.Clone()
}

// Restore replaces the whole state, e.g. after loading it from persistence.
func (s *Store) Restore(st State) error {
	for f := range st.Selections {
		if err := s.schema.Check(f); err != nil {
			return err
		}
	}
	s.state = st.Clone()
	return nil
}

// Toggle adds value to the facet's selection, or removes it if already present.
func (s *Store) Toggle(f Facet, value string) error {
	if err := s.schema.Check(f); err != nil {
		return err
	}

	current := s.state.Selections[f]
	if i := slices.Index(current, value); i >= 0 {
		updated := slices.Delete(slices.Clone(current), i, i+1)
		if len(updated) == 0 {
			delete(s.state.Selections, f)
		} else {
			s.state.Selections[f] = updated
		}
		return nil
	}

	if s.state.Selections == nil {
		s.state.Selections = make(map[Facet][]string)
	}
	s.state.Selections[f] = append(slices.Clone(current), value)
	return nil
}

// ClearFacet empties the selection of one facet.
func (s *Store) ClearFacet(f Facet) error {
	if err := s.schema.Check(f); err != nil {
		return err
	}
	delete(s.state.Selections, f)
	return nil
}

// ClearAll resets every facet, the date range, and the query.
func (s *Store) ClearAll() {
	s.state = State{}
}

// SetDateRange replaces the date range. Inverted ranges are not rejected.
func (s *Store) SetDateRange(r DateRange) {
	s.state.DateRange = r.clone()
}

// SetQuery stores the query verbatim; trimming and case folding happen at evaluation.
func (s *Store) SetQuery(text string) {
	s.state.Query = text
}
