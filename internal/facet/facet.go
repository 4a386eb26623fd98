package facet

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownFacet is returned when an operation names a facet outside the store's schema.
var ErrUnknownFacet = errors.New("unknown facet")

// Facet names one filterable dimension of a record.
type Facet string

const (
	NewsType    Facet = "type"
	SubType     Facet = "subType"
	Isotope     Facet = "isotope"
	IsotopeType Facet = "isotopeType"
	Target      Facet = "target"
	TumorType   Facet = "tumorType"
	AssetFocus  Facet = "assetFocus"
	Region      Facet = "region"
	Companies   Facet = "companies"
	Assets      Facet = "assets"

	Category   Facet = "category"
	UploadedBy Facet = "uploadedBy"
	Format     Facet = "format"
	Author     Facet = "author"
	Tags       Facet = "tags"
)

// Schema is the ordered set of facets known for one record kind.
type Schema []Facet

var (
	// NewsSchema lists the facets of the News Feed page.
	NewsSchema = Schema{NewsType, SubType, Isotope, IsotopeType, Target, TumorType, AssetFocus, Region, Companies, Assets}
	// DocumentSchema lists the facets of the Library page.
	DocumentSchema = Schema{Category, UploadedBy, Format, Author, Tags}
)

// Has reports whether f belongs to the schema.
func (s Schema) Has(f Facet) bool {
	return slices.Contains(s, f)
}

// Check returns ErrUnknownFacet when f is not part of the schema.
func (s Schema) Check(f Facet) error {
	if !s.Has(f) {
		return fmt.Errorf("%w: %q", ErrUnknownFacet, string(f))
	}
	return nil
}

// Parse converts a raw name into a Facet of this schema.
func (s Schema) Parse(raw string) (Facet, error) {
	f := Facet(raw)
	if err := s.Check(f); err != nil {
		return "", err
	}
	return f, nil
}
