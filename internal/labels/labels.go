// Package labels manages the admin-editable option lists shown in filter panels and editors.
// The lists are advisory: records keep and filter on values that were later removed here.
package labels

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/DeafMist/trt-intel/internal/facet"
	"github.com/DeafMist/trt-intel/internal/models"
)

var (
	// ErrUnknownCategory is returned for a category outside Defaults.
	ErrUnknownCategory = errors.New("unknown label category")
	// ErrEmptyLabel is returned when adding a blank value.
	ErrEmptyLabel = errors.New("empty label")
)

// Backend persists ordered option lists per category.
type Backend interface {
	// List returns the options of category and whether the category has been stored at all.
	List(ctx context.Context, category string) ([]string, bool, error)
	// Append adds value at the end unless present; it reports whether it was added.
	Append(ctx context.Context, category, value string) (bool, error)
	// Delete removes value; it reports whether it was present.
	Delete(ctx context.Context, category, value string) (bool, error)
	// Seed stores values for category if the category does not exist yet.
	Seed(ctx context.Context, category string, values []string) error
}

// Catalog validates categories and delegates storage to a Backend.
type Catalog struct {
	backend  Backend
	defaults map[string][]string
}

// NewCatalog builds a catalog over backend with the portal's default lists.
func NewCatalog(backend Backend) *Catalog {
	return &Catalog{backend: backend, defaults: Defaults()}
}

// Init seeds every category that has never been stored.
func (c *Catalog) Init(ctx context.Context) error {
	for _, category := range c.Categories() {
		if err := c.backend.Seed(ctx, category, c.defaults[category]); err != nil {
			return fmt.Errorf("seed %s: %w", category, err)
		}
	}
	return nil
}

// Categories returns category names in display order.
func (c *Catalog) Categories() []string {
	return slices.Clone(categoryOrder)
}

// Options lists the labels of one category.
func (c *Catalog) Options(ctx context.Context, category string) ([]string, error) {
	if err := c.check(category); err != nil {
		return nil, err
	}
	values, ok, err := c.backend.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", category, err)
	}
	if !ok {
		return slices.Clone(c.defaults[category]), nil
	}
	return values, nil
}

// All returns every category with its options.
func (c *Catalog) All(ctx context.Context) (map[string][]string, error) {
	out := make(map[string][]string, len(categoryOrder))
	for _, category := range categoryOrder {
		values, err := c.Options(ctx, category)
		if err != nil {
			return nil, err
		}
		out[category] = values
	}
	return out, nil
}

// Add appends a label. Adding an existing label is a no-op reported as false.
func (c *Catalog) Add(ctx context.Context, category, value string) (bool, error) {
	if err := c.check(category); err != nil {
		return false, err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return false, ErrEmptyLabel
	}
	if err := c.backend.Seed(ctx, category, c.defaults[category]); err != nil {
		return false, fmt.Errorf("seed %s: %w", category, err)
	}
	added, err := c.backend.Append(ctx, category, value)
	if err != nil {
		return false, fmt.Errorf("add %s label: %w", category, err)
	}
	return added, nil
}

// Remove deletes a label from the list. Records carrying it are unaffected.
func (c *Catalog) Remove(ctx context.Context, category, value string) (bool, error) {
	if err := c.check(category); err != nil {
		return false, err
	}
	if err := c.backend.Seed(ctx, category, c.defaults[category]); err != nil {
		return false, fmt.Errorf("seed %s: %w", category, err)
	}
	removed, err := c.backend.Delete(ctx, category, value)
	if err != nil {
		return false, fmt.Errorf("remove %s label: %w", category, err)
	}
	return removed, nil
}

// Learn adds every value carried by items to its category and returns how many labels were new.
func (c *Catalog) Learn(ctx context.Context, items ...models.NewsItem) (int, error) {
	added := 0
	for _, item := range items {
		for category, values := range newsValues(item) {
			for _, v := range values {
				if strings.TrimSpace(v) == "" {
					continue
				}
				ok, err := c.Add(ctx, category, v)
				if err != nil {
					return added, err
				}
				if ok {
					added++
				}
			}
		}
	}
	return added, nil
}

// PanelOptions returns the checkbox options for a news facet, or false if the facet has no label category.
func (c *Catalog) PanelOptions(ctx context.Context, f facet.Facet) ([]string, bool, error) {
	category, ok := facetCategories[f]
	if !ok {
		return nil, false, nil
	}
	values, err := c.Options(ctx, category)
	if err != nil {
		return nil, true, err
	}
	return values, true, nil
}

func (c *Catalog) check(category string) error {
	if _, ok := c.defaults[category]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return nil
}

func newsValues(n models.NewsItem) map[string][]string {
	return map[string][]string{
		"entryTypes":     {n.EntryType},
		"types":          {n.Type},
		"subTypes":       {n.SubType},
		"regions":        {n.Region},
		"targets":        {n.Target},
		"tumorTypes":     {n.TumorType},
		"isotopes":       {n.Isotope},
		"isotopeTypes":   {n.IsotopeType},
		"assetFocus":     {n.AssetFocus},
		"phases":         {n.Phase},
		"linesOfTherapy": {n.LineOfTherapy},
		"companies":      n.Companies,
		"assets":         n.Assets,
	}
}

var facetCategories = map[facet.Facet]string{
	facet.NewsType:    "types",
	facet.SubType:     "subTypes",
	facet.Isotope:     "isotopes",
	facet.IsotopeType: "isotopeTypes",
	facet.Target:      "targets",
	facet.TumorType:   "tumorTypes",
	facet.AssetFocus:  "assetFocus",
	facet.Region:      "regions",
	facet.Companies:   "companies",
	facet.Assets:      "assets",
	facet.Category:    "docCategories",
	facet.UploadedBy:  "uploadTeams",
	facet.Author:      "authors",
	facet.Tags:        "tags",
}
