// Package ingest turns bulk-upload spreadsheet rows into news items.
package ingest

import (
	"strings"
	"time"

	"github.com/DeafMist/trt-intel/internal/facet"
	"github.com/DeafMist/trt-intel/internal/models"
)

// Columns of the bulk upload template, in template order.
var Columns = []string{
	"Date", "Entry Type", "Type", "Sub-Type", "Title", "Summary", "CI Note", "Companies",
	"Assets", "Target", "Tumor Type", "Isotope", "Isotope Type", "Asset Focus", "Region",
	"Phase", "Line of Therapy", "Source Name", "Source URL", "Priority",
}

// TemplateRow is the example row shipped with the template.
var TemplateRow = map[string]string{
	"Date": "2024-05-20", "Entry Type": "News", "Type": "Commercial", "Sub-Type": "M&A",
	"Title": "Example Title", "Summary": "Summary...", "CI Note": "Note...", "Companies": "Novartis",
	"Assets": "Pluvicto", "Target": "PSMA", "Tumor Type": "Prostate Cancer", "Isotope": "177Lu",
	"Isotope Type": "Beta", "Asset Focus": "Therapeutic", "Region": "Global", "Phase": "Phase 3",
	"Line of Therapy": "1L", "Source Name": "Press Release", "Source URL": "https://example.com", "Priority": "Key",
}

const (
	// Reviewer is recorded on every imported item.
	Reviewer = "Bulk Upload"

	titleWords = 12
)

// NewsFromRow maps one header-keyed row to a news item. index is the row's
// position in the sheet; now supplies the date when the cell is empty or unreadable.
func NewsFromRow(row map[string]string, now time.Time, index int) models.NewsItem {
	get := func(col string) string { return strings.TrimSpace(row[col]) }
	or := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}

	date, ok := NormalizeDate(get("Date"))
	if !ok {
		date = now.UTC().Format(facet.DateLayout)
	}

	summary := get("Summary")
	title := get("Title")
	if title == "" {
		title = or(GenerateTitle(summary, titleWords), "Untitled")
	}

	priority := models.PriorityOther
	if get("Priority") == models.PriorityKey {
		priority = models.PriorityKey
	}

	return models.NewsItem{
		ID:              BuildID(date, title, index),
		Date:            date,
		EntryType:       or(get("Entry Type"), "News"),
		Type:            or(get("Type"), "Commercial"),
		SubType:         get("Sub-Type"),
		Title:           title,
		Summary:         summary,
		CINote:          get("CI Note"),
		Companies:       SplitList(row["Companies"]),
		Assets:          SplitList(row["Assets"]),
		Target:          get("Target"),
		TumorType:       get("Tumor Type"),
		Isotope:         get("Isotope"),
		IsotopeType:     get("Isotope Type"),
		AssetFocus:      get("Asset Focus"),
		Region:          or(get("Region"), "Global"),
		Phase:           get("Phase"),
		LineOfTherapy:   get("Line of Therapy"),
		SourceName:      get("Source Name"),
		SourceURL:       get("Source URL"),
		Priority:        priority,
		IsHumanReviewed: true,
		Reviewer:        Reviewer,
	}
}

// NewsFromRows maps every row, skipping rows with no cell content.
func NewsFromRows(rows []map[string]string, now time.Time) []models.NewsItem {
	out := make([]models.NewsItem, 0, len(rows))
	for i, row := range rows {
		if blank(row) {
			continue
		}
		out = append(out, NewsFromRow(row, now, i))
	}
	return out
}

func blank(row map[string]string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
