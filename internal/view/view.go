package view

import (
	"io"
	"log/slog"
	"slices"

	"github.com/DeafMist/trt-intel/internal/facet"
	"github.com/DeafMist/trt-intel/internal/filter"
)

// View is the filtered, order-preserving projection of a record set.
type View[R filter.Record] struct {
	Records []R `json:"items"`
	Count   int `json:"count"`
	// Malformed holds IDs of records dropped only because their date could
	// not be parsed while a date bound was active.
	Malformed []string `json:"malformed,omitempty"`

	rejections map[filter.Rejection]int
}

// Rejections returns how many records failed on each criterion.
func (v View[R]) Rejections() map[filter.Rejection]int {
	return v.rejections
}

// Apply evaluates st against every record. The result is a stable subsequence
// of records; the input slice is not modified.
func Apply[R filter.Record](records []R, st facet.State) View[R] {
	p := filter.Compile(st)

	out := make([]R, 0, len(records))
	var malformed []string
	var rejections map[filter.Rejection]int

	for _, rec := range records {
		reason := p.Explain(rec)
		if reason == filter.Accepted {
			out = append(out, rec)
			continue
		}
		if rejections == nil {
			rejections = make(map[filter.Rejection]int)
		}
		rejections[reason]++
		if reason == filter.RejectMalformedDate {
			malformed = append(malformed, rec.RecordID())
		}
	}

	return View[R]{
		Records:    out,
		Count:      len(out),
		Malformed:  malformed,
		rejections: rejections,
	}
}

// Recorder receives view statistics.
type Recorder interface {
	ObserveView(kind string, count int)
	ObserveRejection(reason string, n int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveView(string, int)      {}
func (nopRecorder) ObserveRejection(string, int) {}

// Builder applies filter state for one record kind and reports what it dropped.
type Builder[R filter.Record] struct {
	kind string
	log  *slog.Logger
	rec  Recorder
}

// NewBuilder returns a builder. A nil logger or recorder disables that output.
func NewBuilder[R filter.Record](kind string, log *slog.Logger, rec Recorder) *Builder[R] {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Builder[R]{kind: kind, log: log, rec: rec}
}

// Build runs Apply and logs records excluded for malformed dates.
func (b *Builder[R]) Build(records []R, st facet.State) View[R] {
	v := Apply(records, st)

	b.rec.ObserveView(b.kind, v.Count)
	for reason, n := range v.rejections {
		b.rec.ObserveRejection(reason.String(), n)
	}

	if len(v.Malformed) > 0 {
		b.log.Warn("records with malformed dates excluded from date filter",
			slog.String("kind", b.kind),
			slog.Int("count", len(v.Malformed)),
			slog.Any("ids", v.Malformed),
		)
	}

	return v
}

// Options returns the distinct values of f present in records, sorted.
func Options[R filter.Record](records []R, f facet.Facet) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for _, v := range rec.FacetValues(f) {
			seen[v] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Tally counts records per value of f. A record with several values counts once for each.
func Tally[R filter.Record](records []R, f facet.Facet) map[string]int {
	counts := make(map[string]int)
	for _, rec := range records {
		for _, v := range rec.FacetValues(f) {
			counts[v]++
		}
	}
	return counts
}
