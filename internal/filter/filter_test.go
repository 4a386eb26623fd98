package filter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/trt-intel/internal/facet"
	"github.com/DeafMist/trt-intel/internal/filter"
)

type item struct {
	id      string
	date    string
	title   string
	summary string
	fields  map[facet.Facet][]string
}

func (i item) RecordID() string                   { return i.id }
func (i item) RecordDate() string                 { return i.date }
func (i item) FacetValues(f facet.Facet) []string { return i.fields[f] }
func (i item) SearchFields() []string {
	out := []string{i.title, i.summary}
	out = append(out, i.fields[facet.Companies]...)
	return out
}

func partnership() item {
	return item{
		id:      "1",
		date:    "2024-04-12",
		title:   "Fusion deal closes",
		summary: "Acquisition completed",
		fields: map[facet.Facet][]string{
			facet.NewsType:  {"Partnership"},
			facet.Companies: {"AstraZeneca", "Fusion Pharmaceuticals"},
			facet.Region:    {"Global"},
		},
	}
}

func state(t *testing.T, mutate func(s *facet.Store)) facet.State {
	t.Helper()
	s := facet.NewStore(facet.NewsSchema)
	mutate(s)
	return s.State()
}

func TestEmptyStateMatchesEverything(t *testing.T) {
	bare := item{id: "x"}
	require.True(t, filter.Matches(bare, facet.State{}))
	require.True(t, filter.Matches(partnership(), facet.State{}))
}

func TestFacetOrWithinAndAcross(t *testing.T) {
	rec := partnership()

	tests := []struct {
		name   string
		mutate func(s *facet.Store)
		want   bool
	}{
		{
			name:   "one of many companies",
			mutate: func(s *facet.Store) { _ = s.Toggle(facet.Companies, "Fusion Pharmaceuticals") },
			want:   true,
		},
		{
			name:   "company not present",
			mutate: func(s *facet.Store) { _ = s.Toggle(facet.Companies, "Curium") },
			want:   false,
		},
		{
			name: "any selected value suffices",
			mutate: func(s *facet.Store) {
				_ = s.Toggle(facet.Companies, "Curium")
				_ = s.Toggle(facet.Companies, "AstraZeneca")
			},
			want: true,
		},
		{
			name: "other facet must also match",
			mutate: func(s *facet.Store) {
				_ = s.Toggle(facet.Companies, "AstraZeneca")
				_ = s.Toggle(facet.Region, "Europe")
			},
			want: false,
		},
		{
			name: "both facets match",
			mutate: func(s *facet.Store) {
				_ = s.Toggle(facet.Companies, "AstraZeneca")
				_ = s.Toggle(facet.Region, "Global")
			},
			want: true,
		},
		{
			name:   "absent field fails active facet",
			mutate: func(s *facet.Store) { _ = s.Toggle(facet.Isotope, "177Lu") },
			want:   false,
		},
		{
			name:   "value unknown to any label list still filters",
			mutate: func(s *facet.Store) { _ = s.Toggle(facet.NewsType, "Partnership") },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, filter.Matches(rec, state(t, tt.mutate)))
		})
	}
}

func TestQueryIsCaseInsensitiveAndTrimmed(t *testing.T) {
	rec := partnership()

	require.True(t, filter.Matches(rec, facet.State{Query: "  ASTRA "}))
	require.True(t, filter.Matches(rec, facet.State{Query: "acquisition"}))
	require.False(t, filter.Matches(rec, facet.State{Query: "curium"}))

	p := filter.Compile(facet.State{Query: "curium"})
	require.Equal(t, filter.RejectQuery, p.Explain(rec))
}

func TestWhitespaceQueryIsInactive(t *testing.T) {
	require.True(t, filter.Matches(partnership(), facet.State{Query: "   "}))
}

func TestDateBoundsInclusive(t *testing.T) {
	rec := partnership()

	onStart, err := facet.NewDateRange("2024-04-12", "")
	require.NoError(t, err)
	require.True(t, filter.Matches(rec, facet.State{DateRange: onStart}))

	onEnd, err := facet.NewDateRange("", "2024-04-12")
	require.NoError(t, err)
	require.True(t, filter.Matches(rec, facet.State{DateRange: onEnd}))

	after, err := facet.NewDateRange("2024-04-13", "")
	require.NoError(t, err)
	require.Equal(t, filter.RejectBeforeStart, filter.Compile(facet.State{DateRange: after}).Explain(rec))

	before, err := facet.NewDateRange("", "2024-04-11")
	require.NoError(t, err)
	require.Equal(t, filter.RejectAfterEnd, filter.Compile(facet.State{DateRange: before}).Explain(rec))
}

func TestInvertedRangeMatchesNothing(t *testing.T) {
	r, err := facet.NewDateRange("2025-06-01", "2025-01-01")
	require.NoError(t, err)
	st := facet.State{DateRange: r}

	for _, d := range []string{"2024-12-31", "2025-01-01", "2025-03-15", "2025-06-01", "2025-07-01"} {
		rec := partnership()
		rec.date = d
		require.False(t, filter.Matches(rec, st), d)
	}
}

func TestMalformedDate(t *testing.T) {
	rec := partnership()
	rec.date = "12/04/2024"

	require.True(t, filter.Matches(rec, facet.State{}))

	r, err := facet.NewDateRange("2020-01-01", "")
	require.NoError(t, err)
	require.Equal(t, filter.RejectMalformedDate, filter.Compile(facet.State{DateRange: r}).Explain(rec))

	rec.date = ""
	require.Equal(t, filter.RejectMalformedDate, filter.Compile(facet.State{DateRange: r}).Explain(rec))
}

func TestPredicateIsDeterministic(t *testing.T) {
	st := state(t, func(s *facet.Store) {
		_ = s.Toggle(facet.Companies, "AstraZeneca")
		s.SetQuery("fusion")
	})
	p := filter.Compile(st)
	rec := partnership()

	first := p.Match(rec)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, p.Match(rec))
	}
	require.True(t, first)
}

func TestRejectionString(t *testing.T) {
	require.Equal(t, "malformed_date", filter.RejectMalformedDate.String())
	require.Equal(t, "accepted", filter.Accepted.String())
}
