package models

import (
	"fmt"
	"strings"

	"github.com/DeafMist/trt-intel/internal/facet"
)

// Document is a Library entry: newsletter, publication, conference coverage or internal report.
type Document struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Type             string   `json:"type"`
	Date             string   `json:"date"`
	Format           string   `json:"format"`
	FileSize         string   `json:"fileSize"`
	Author           []string `json:"author"`
	UploadedBy       string   `json:"uploadedBy"`
	Tags             []string `json:"tags"`
	UserGroup        string   `json:"userGroup"`
	ThumbnailURL     string   `json:"thumbnailUrl,omitempty"`
	ExecutiveSummary string   `json:"executiveSummary"`
}

// DefaultThumbnailURL is shown for documents saved without a cover image.
const DefaultThumbnailURL = "https://images.unsplash.com/photo-1565538420870-da58537bbf3d?auto=format&fit=crop&q=80&w=600"

func (d Document) RecordID() string   { return d.ID }
func (d Document) RecordDate() string { return d.Date }

// FacetValues maps library facets onto document fields.
func (d Document) FacetValues(f facet.Facet) []string {
	switch f {
	case facet.Category:
		return single(d.Type)
	case facet.UploadedBy:
		return single(d.UploadedBy)
	case facet.Format:
		return single(d.Format)
	case facet.Author:
		return d.Author
	case facet.Tags:
		return d.Tags
	default:
		return nil
	}
}

// SearchFields returns the title, each tag, and the authors joined by spaces.
func (d Document) SearchFields() []string {
	out := make([]string, 0, 2+len(d.Tags))
	out = append(out, d.Title)
	out = append(out, d.Tags...)
	if len(d.Author) > 0 {
		out = append(out, strings.Join(d.Author, " "))
	}
	return out
}

// Validate checks the fields the library editor marks as compulsory.
func (d Document) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"title", d.Title},
		{"uploadedBy", d.UploadedBy},
		{"userGroup", d.UserGroup},
		{"type", d.Type},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	return nil
}

// WithDefaults credits the uploader when no author is given and fills the
// thumbnail.
func (d Document) WithDefaults() Document {
	if len(d.Author) == 0 {
		uploader := strings.TrimSpace(d.UploadedBy)
		if uploader == "" {
			uploader = "System"
		}
		d.Author = []string{uploader}
	}
	if strings.TrimSpace(d.ThumbnailURL) == "" {
		d.ThumbnailURL = DefaultThumbnailURL
	}
	return d
}
