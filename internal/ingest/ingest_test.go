package ingest_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/trt-intel/internal/ingest"
	"github.com/DeafMist/trt-intel/internal/models"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "blank", input: "  ", want: nil},
		{name: "single", input: "Novartis", want: []string{"Novartis"}},
		{name: "trimmed", input: " Novartis ,Bayer,, Telix ", want: []string{"Novartis", "Bayer", "Telix"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ingest.SplitList(tt.input))
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "iso", input: "2024-05-20", want: "2024-05-20", wantOK: true},
		{name: "us slashes", input: "05/20/2024", want: "2024-05-20", wantOK: true},
		{name: "long form", input: "May 20, 2024", want: "2024-05-20", wantOK: true},
		{name: "timestamp", input: "2024-05-20T10:30:00Z", want: "2024-05-20", wantOK: true},
		{name: "serial", input: "45432", want: "2024-05-20", wantOK: true},
		{name: "year only", input: "2024", want: "2024-01-01", wantOK: true},
		{name: "small serial", input: "367", want: "1901-01-01", wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "garbage", input: "next tuesday", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ingest.NormalizeDate(tt.input)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestGenerateTitle(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWords int
		want     string
	}{
		{name: "empty", text: "", maxWords: 10, want: ""},
		{name: "first sentence", text: "Telix doses first patient. More to follow.", maxWords: 10, want: "Telix doses first patient"},
		{name: "truncated", text: "Novartis expands radioligand manufacturing capacity in Indianapolis facility", maxWords: 4, want: "Novartis expands radioligand manufacturing..."},
		{name: "url ignored", text: "See https://example.com/a.b for details", maxWords: 10, want: "See for details"},
		{name: "unlimited", text: "Lutathera label update", maxWords: 0, want: "Lutathera label update"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ingest.GenerateTitle(tt.text, tt.maxWords))
		})
	}
}

func TestBuildIDDeterministic(t *testing.T) {
	a := ingest.BuildID("2024-05-20", "Title", 0)
	require.NotEmpty(t, a)
	require.Equal(t, a, ingest.BuildID("2024-05-20", "Title", 0))
	require.NotEqual(t, a, ingest.BuildID("2024-05-20", "Title", 1))
}

func TestNewsFromRowTemplate(t *testing.T) {
	now := time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)
	item := ingest.NewsFromRow(ingest.TemplateRow, now, 0)

	require.Equal(t, "2024-05-20", item.Date)
	require.Equal(t, "Example Title", item.Title)
	require.Equal(t, []string{"Novartis"}, item.Companies)
	require.Equal(t, []string{"Pluvicto"}, item.Assets)
	require.Equal(t, "Beta", item.IsotopeType)
	require.Equal(t, models.PriorityKey, item.Priority)
	require.Equal(t, ingest.Reviewer, item.Reviewer)
	require.True(t, item.IsHumanReviewed)
	require.NoError(t, item.Validate())
}

func TestNewsFromRowDefaults(t *testing.T) {
	now := time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)
	item := ingest.NewsFromRow(map[string]string{
		"Date":     "sometime",
		"Summary":  "Curium opens new 177Lu plant. Output doubles.",
		"Priority": "key",
	}, now, 3)

	require.Equal(t, "2025-01-02", item.Date)
	require.Equal(t, "Curium opens new 177Lu plant", item.Title)
	require.Equal(t, "News", item.EntryType)
	require.Equal(t, "Commercial", item.Type)
	require.Equal(t, "Global", item.Region)
	require.Equal(t, models.PriorityOther, item.Priority)
	require.Nil(t, item.Companies)
	require.NotEmpty(t, item.ID)

	untitled := ingest.NewsFromRow(map[string]string{"Type": "Clinical"}, now, 4)
	require.Equal(t, "Untitled", untitled.Title)
}

func TestNewsFromRowsSkipsBlank(t *testing.T) {
	rows := []map[string]string{
		{"Title": "One"},
		{"Title": " ", "Summary": ""},
		{"Title": "Two"},
	}
	items := ingest.NewsFromRows(rows, time.Now())
	require.Len(t, items, 2)
	require.Equal(t, "Two", items[1].Title)
	require.NotEqual(t, items[0].ID, items[1].ID)
}
