package facet_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/trt-intel/internal/facet"
)

func TestToggleAddsAndRemoves(t *testing.T) {
	s := facet.NewStore(facet.NewsSchema)

	require.NoError(t, s.Toggle(facet.Region, "Europe"))
	require.NoError(t, s.Toggle(facet.Region, "APAC"))
	require.Equal(t, []string{"Europe", "APAC"}, s.State().Selected(facet.Region))

	require.NoError(t, s.Toggle(facet.Region, "Europe"))
	require.Equal(t, []string{"APAC"}, s.State().Selected(facet.Region))

	require.NoError(t, s.Toggle(facet.Region, "APAC"))
	require.Empty(t, s.State().Selected(facet.Region))
	require.False(t, s.State().Active())
}

func TestUnknownFacetFails(t *testing.T) {
	s := facet.NewStore(facet.DocumentSchema)

	err := s.Toggle(facet.Isotope, "177Lu")
	require.ErrorIs(t, err, facet.ErrUnknownFacet)

	err = s.ClearFacet("nope")
	require.ErrorIs(t, err, facet.ErrUnknownFacet)

	_, err = facet.NewsSchema.Parse("author")
	require.ErrorIs(t, err, facet.ErrUnknownFacet)

	f, err := facet.NewsSchema.Parse("isotope")
	require.NoError(t, err)
	require.Equal(t, facet.Isotope, f)
}

func TestClearFacetLeavesOthers(t *testing.T) {
	s := facet.NewStore(facet.NewsSchema)
	require.NoError(t, s.Toggle(facet.Region, "Global"))
	require.NoError(t, s.Toggle(facet.Target, "PSMA"))

	require.NoError(t, s.ClearFacet(facet.Region))

	st := s.State()
	require.Empty(t, st.Selected(facet.Region))
	require.Equal(t, []string{"PSMA"}, st.Selected(facet.Target))
}

func TestClearAllResetsEverything(t *testing.T) {
	s := facet.NewStore(facet.NewsSchema)
	require.NoError(t, s.Toggle(facet.NewsType, "Clinical"))
	r, err := facet.NewDateRange("2024-01-01", "2024-12-31")
	require.NoError(t, err)
	s.SetDateRange(r)
	s.SetQuery("lutetium")
	require.True(t, s.State().Active())

	s.ClearAll()

	st := s.State()
	require.False(t, st.Active())
	require.True(t, st.DateRange.IsZero())
	require.Equal(t, "", st.Query)
}

func TestSetQueryKeepsKeystrokes(t *testing.T) {
	s := facet.NewStore(facet.NewsSchema)
	s.SetQuery("  AstraZeneca ")
	require.Equal(t, "  AstraZeneca ", s.State().Query)
}

func TestInvertedRangeAccepted(t *testing.T) {
	r, err := facet.NewDateRange("2025-06-01", "2025-01-01")
	require.NoError(t, err)

	s := facet.NewStore(facet.NewsSchema)
	s.SetDateRange(r)
	st := s.State()
	require.True(t, st.DateRange.Start.After(*st.DateRange.End))
}

func TestStateSnapshotIsolated(t *testing.T) {
	s := facet.NewStore(facet.NewsSchema)
	require.NoError(t, s.Toggle(facet.Isotope, "225Ac"))

	snap := s.State()
	require.NoError(t, s.Toggle(facet.Isotope, "177Lu"))

	require.Equal(t, []string{"225Ac"}, snap.Selected(facet.Isotope))
}

func TestStateJSONRoundTrip(t *testing.T) {
	s := facet.NewStore(facet.NewsSchema)
	require.NoError(t, s.Toggle(facet.Companies, "Curium"))
	r, err := facet.NewDateRange("2024-04-11", "")
	require.NoError(t, err)
	s.SetDateRange(r)
	s.SetQuery("astra")

	data, err := json.Marshal(s.State())
	require.NoError(t, err)
	require.JSONEq(t, `{"selections":{"companies":["Curium"]},"dateRange":{"start":"2024-04-11"},"query":"astra"}`, string(data))

	var decoded facet.State
	require.NoError(t, json.Unmarshal(data, &decoded))

	restored := facet.NewStore(facet.NewsSchema)
	require.NoError(t, restored.Restore(decoded))
	require.Equal(t, s.State(), restored.State())
}

func TestRestoreRejectsForeignFacet(t *testing.T) {
	s := facet.NewStore(facet.DocumentSchema)
	err := s.Restore(facet.State{Selections: map[facet.Facet][]string{facet.Region: {"Europe"}}})
	require.ErrorIs(t, err, facet.ErrUnknownFacet)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "calendar date", raw: "2024-04-12", want: "2024-04-12"},
		{name: "padded", raw: " 2024-04-12 ", want: "2024-04-12"},
		{name: "rfc3339", raw: "2024-04-12T23:10:00Z", want: "2024-04-12"},
		{name: "empty", raw: "", wantErr: true},
		{name: "garbage", raw: "April twelfth", wantErr: true},
		{name: "impossible day", raw: "2024-02-31", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := facet.ParseDate(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got.Format(facet.DateLayout))
		})
	}
}
