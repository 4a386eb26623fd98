package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DeafMist/trt-intel/internal/facet"
)

// ErrMissingFields is returned when a news item lacks compulsory fields.
var ErrMissingFields = errors.New("missing compulsory fields")

// NewsItem is one entry of the intelligence feed as stored in Elasticsearch.
type NewsItem struct {
	ID              string   `json:"id"`
	Date            string   `json:"date"`
	EntryType       string   `json:"entryType"`
	Type            string   `json:"type"`
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	TumorType       string   `json:"tumorType,omitempty"`
	Target          string   `json:"target,omitempty"`
	Isotope         string   `json:"isotope,omitempty"`
	Region          string   `json:"region"`
	SourceURL       string   `json:"sourceUrl,omitempty"`
	AISummary       bool     `json:"aiSummary"`
	IsHumanReviewed bool     `json:"isHumanReviewed"`
	SubType         string   `json:"subType,omitempty"`
	CINote          string   `json:"ciNote,omitempty"`
	BreakingText    string   `json:"breakingText,omitempty"`
	Comment         string   `json:"comment,omitempty"`
	Companies       []string `json:"companies,omitempty"`
	Assets          []string `json:"assets,omitempty"`
	LineOfTherapy   string   `json:"lineOfTherapy,omitempty"`
	AssetFocus      string   `json:"assetFocus,omitempty"`
	IsotopeType     string   `json:"isotopeType,omitempty"`
	Phase           string   `json:"phase,omitempty"`
	TrialID         string   `json:"trialId,omitempty"`
	SourceName      string   `json:"sourceName,omitempty"`
	IsBreaking      bool     `json:"isBreaking,omitempty"`
	Priority        string   `json:"priority,omitempty"`
	Reviewer        string   `json:"reviewer,omitempty"`
}

// Priority values.
const (
	PriorityKey   = "Key"
	PriorityOther = "Other"
)

func (n NewsItem) RecordID() string   { return n.ID }
func (n NewsItem) RecordDate() string { return n.Date }

// FacetValues maps news facets onto item fields.
func (n NewsItem) FacetValues(f facet.Facet) []string {
	switch f {
	case facet.NewsType:
		return single(n.Type)
	case facet.SubType:
		return single(n.SubType)
	case facet.Isotope:
		return single(n.Isotope)
	case facet.IsotopeType:
		return single(n.IsotopeType)
	case facet.Target:
		return single(n.Target)
	case facet.TumorType:
		return single(n.TumorType)
	case facet.AssetFocus:
		return single(n.AssetFocus)
	case facet.Region:
		return single(n.Region)
	case facet.Companies:
		return n.Companies
	case facet.Assets:
		return n.Assets
	default:
		return nil
	}
}

// SearchFields returns title, summary, companies and assets.
func (n NewsItem) SearchFields() []string {
	out := make([]string, 0, 2+len(n.Companies)+len(n.Assets))
	out = append(out, n.Title, n.Summary)
	out = append(out, n.Companies...)
	out = append(out, n.Assets...)
	return out
}

// Validate checks the fields the admin editor marks as compulsory.
func (n NewsItem) Validate() error {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}

	check("title", n.Title)
	check("date", n.Date)
	check("entryType", n.EntryType)
	check("type", n.Type)
	check("subType", n.SubType)
	if len(n.Companies) == 0 {
		missing = append(missing, "companies")
	}
	check("target", n.Target)
	check("tumorType", n.TumorType)
	check("assetFocus", n.AssetFocus)
	check("region", n.Region)
	check("sourceName", n.SourceName)
	check("sourceUrl", n.SourceURL)

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	if _, err := facet.ParseDate(n.Date); err != nil {
		return fmt.Errorf("validate date: %w", err)
	}
	return nil
}

func single(v string) []string {
	if v == "" {
		return nil
	}
	return []string{v}
}
