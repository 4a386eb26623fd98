package facet

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date wire format used by records and ranges.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date and returns midnight UTC of that day.
// RFC 3339 timestamps are accepted and truncated to their date.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("parse date: empty value")
	}

	if d, err := time.Parse(DateLayout, raw); err == nil {
		return d, nil
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("parse date %q: unsupported format", raw)
}

// DateRange bounds records by calendar date. Either bound may be nil.
// An inverted range is legal and matches nothing.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// NewDateRange builds a range from raw bounds; empty strings leave a bound open.
func NewDateRange(start, end string) (DateRange, error) {
	var r DateRange
	if strings.TrimSpace(start) != "" {
		d, err := ParseDate(start)
		if err != nil {
			return DateRange{}, fmt.Errorf("range start: %w", err)
		}
		r.Start = &d
	}
	if strings.TrimSpace(end) != "" {
		d, err := ParseDate(end)
		if err != nil {
			return DateRange{}, fmt.Errorf("range end: %w", err)
		}
		r.End = &d
	}
	return r, nil
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool {
	return r.Start == nil && r.End == nil
}

type dateRangeJSON struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// MarshalJSON encodes bounds as YYYY-MM-DD strings.
func (r DateRange) MarshalJSON() ([]byte, error) {
	var out dateRangeJSON
	if r.Start != nil {
		out.Start = r.Start.Format(DateLayout)
	}
	if r.End != nil {
		out.End = r.End.Format(DateLayout)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes YYYY-MM-DD bounds.
func (r *DateRange) UnmarshalJSON(data []byte) error {
	var in dateRangeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	parsed, err := NewDateRange(in.Start, in.End)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r DateRange) clone() DateRange {
	var out DateRange
	if r.Start != nil {
		s := *r.Start
		out.Start = &s
	}
	if r.End != nil {
		e := *r.End
		out.End = &e
	}
	return out
}
