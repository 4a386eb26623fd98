package models_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/trt-intel/internal/facet"
	"github.com/DeafMist/trt-intel/internal/filter"
	"github.com/DeafMist/trt-intel/internal/models"
)

var (
	_ filter.Record = models.NewsItem{}
	_ filter.Record = models.Document{}
)

func completeNews() models.NewsItem {
	return models.NewsItem{
		ID:         "42",
		Date:       "2024-05-20",
		EntryType:  "News",
		Type:       "Commercial",
		SubType:    "M&A",
		Title:      "Deal",
		Companies:  []string{"Novartis"},
		Target:     "PSMA",
		TumorType:  "Prostate Cancer",
		AssetFocus: "Therapeutic",
		Region:     "Global",
		SourceName: "Press Release",
		SourceURL:  "https://example.com",
	}
}

func TestNewsFacetValues(t *testing.T) {
	n := completeNews()
	n.Assets = []string{"Pluvicto", "Lutathera"}

	require.Equal(t, []string{"Commercial"}, n.FacetValues(facet.NewsType))
	require.Equal(t, []string{"Pluvicto", "Lutathera"}, n.FacetValues(facet.Assets))
	require.Nil(t, n.FacetValues(facet.Isotope), "empty single field is absent")
	require.Nil(t, n.FacetValues(facet.Tags), "document facet on news item")
}

func TestNewsValidate(t *testing.T) {
	require.NoError(t, completeNews().Validate())

	n := completeNews()
	n.Title = " "
	n.Companies = nil
	err := n.Validate()
	require.ErrorIs(t, err, models.ErrMissingFields)
	require.Contains(t, err.Error(), "title")
	require.Contains(t, err.Error(), "companies")

	n = completeNews()
	n.Date = "someday"
	require.Error(t, n.Validate())
}

func TestDocumentSearchJoinsAuthors(t *testing.T) {
	d := models.Document{
		ID:     "d1",
		Title:  "Q3 Newsletter",
		Date:   "2024-09-30",
		Author: []string{"CI Team", "Dr. Emily Weiss"},
		Tags:   []string{"Market Share"},
	}

	require.True(t, filter.Matches(d, facet.State{Query: "team dr. emily"}))
	require.True(t, filter.Matches(d, facet.State{Query: "market"}))
	require.False(t, filter.Matches(d, facet.State{Query: "pluvicto"}))
	require.Equal(t, []string{"CI Team", "Dr. Emily Weiss"}, d.FacetValues(facet.Author))
}

func TestDocumentValidateAndDefaults(t *testing.T) {
	d := models.Document{Title: "Landscape", Type: "Report", UploadedBy: "R. Lee", UserGroup: "Medical"}
	require.NoError(t, d.Validate())

	d = d.WithDefaults()
	require.Equal(t, []string{"R. Lee"}, d.Author)
	require.Equal(t, models.DefaultThumbnailURL, d.ThumbnailURL)

	kept := models.Document{Author: []string{"CI Team"}, ThumbnailURL: "https://example.com/t.png"}.WithDefaults()
	require.Equal(t, []string{"CI Team"}, kept.Author)
	require.Equal(t, "https://example.com/t.png", kept.ThumbnailURL)

	err := models.Document{Title: "Deck"}.Validate()
	require.ErrorIs(t, err, models.ErrMissingFields)
	require.Contains(t, err.Error(), "uploadedBy")
	require.Contains(t, err.Error(), "userGroup")
	require.Contains(t, err.Error(), "type")
}
