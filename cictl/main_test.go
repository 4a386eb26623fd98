package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/trt-intel/internal/models"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeFeed(t *testing.T, items any) string {
	t.Helper()
	data, err := json.Marshal(items)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "feed.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func feed() []models.NewsItem {
	return []models.NewsItem{
		{ID: "1", Date: "2024-04-12", Type: "Partnership", Title: "AstraZeneca completes acquisition",
			Companies: []string{"AstraZeneca", "Fusion Pharmaceuticals"}, Region: "Global"},
		{ID: "2", Date: "2024-04-10", Type: "Clinical", Title: "Curium trial update",
			Companies: []string{"Curium"}, Region: "North America"},
		{ID: "3", Date: "04/2024", Type: "Clinical", Title: "Undated", Region: "Global"},
	}
}

func TestFilterJSON(t *testing.T) {
	path := writeFeed(t, feed())

	out, _, err := run(t, "filter", "--input", path, "--facet", "type=Clinical", "--json")
	require.NoError(t, err)

	var v struct {
		Items []models.NewsItem `json:"items"`
		Count int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	require.Equal(t, 2, v.Count)
	require.Equal(t, "2", v.Items[0].ID)
}

func TestFilterTableAndMalformedWarning(t *testing.T) {
	path := writeFeed(t, feed())

	out, errOut, err := run(t, "filter", "-i", path, "--start", "2024-04-11", "-q", " ASTRA ")
	require.NoError(t, err)
	require.Contains(t, out, "AstraZeneca completes acquisition")
	require.NotContains(t, out, "Curium")
	require.Contains(t, out, "1 matching")
	require.Contains(t, errOut, "malformed dates")
}

func TestFilterFacetValueWithComma(t *testing.T) {
	items := append(feed(), models.NewsItem{ID: "4", Date: "2024-04-09", Type: "Clinical", Title: "RYZ101 update",
		Companies: []string{"Bristol Myers Squibb, Inc."}, Region: "Global"})
	path := writeFeed(t, items)

	out, _, err := run(t, "filter", "-i", path, "-f", "companies=Bristol Myers Squibb, Inc.", "-f", "companies=Curium")
	require.NoError(t, err)
	require.Contains(t, out, "RYZ101 update")
	require.Contains(t, out, "Curium trial update")
	require.Contains(t, out, "2 matching")
}

func TestFilterDocuments(t *testing.T) {
	path := writeFeed(t, []models.Document{
		{ID: "d1", Title: "Landscape", Date: "2024-03-01", Format: "PDF", Author: []string{"R. Lee"}},
		{ID: "d2", Title: "Deck", Date: "2024-03-02", Format: "PPTX"},
	})

	out, _, err := run(t, "filter", "-i", path, "--kind", "documents", "-f", "author=R. Lee")
	require.NoError(t, err)
	require.Contains(t, out, "Landscape")
	require.NotContains(t, out, "Deck")
}

func TestFilterErrors(t *testing.T) {
	path := writeFeed(t, feed())

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown facet", args: []string{"filter", "-i", path, "-f", "format=PDF"}},
		{name: "missing equals", args: []string{"filter", "-i", path, "-f", "region"}},
		{name: "bad date", args: []string{"filter", "-i", path, "--end", "later"}},
		{name: "bad kind", args: []string{"filter", "-i", path, "--kind", "chats"}},
		{name: "bad extension", args: []string{"filter", "-i", "feed.csv"}},
		{name: "no input", args: []string{"filter"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			require.Error(t, err)
		})
	}
}

func TestTemplateConvertFilter(t *testing.T) {
	dir := t.TempDir()
	book := filepath.Join(dir, "template.xlsx")
	converted := filepath.Join(dir, "items.json")

	out, _, err := run(t, "template", "--out", book)
	require.NoError(t, err)
	require.Contains(t, out, book)

	out, _, err = run(t, "convert", "-i", book, "-o", converted)
	require.NoError(t, err)
	require.Contains(t, out, "1 items written")

	data, err := os.ReadFile(converted)
	require.NoError(t, err)
	var items []models.NewsItem
	require.NoError(t, json.Unmarshal(data, &items))
	require.Len(t, items, 1)
	require.Equal(t, "Example Title", items[0].Title)

	out, _, err = run(t, "filter", "-i", book, "-f", "companies=Novartis", "-f", "isotope=177Lu")
	require.NoError(t, err)
	require.Contains(t, out, "Example Title")
}
