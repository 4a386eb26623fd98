package ingest

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/DeafMist/trt-intel/internal/facet"
)

var (
	urlRegex   = regexp.MustCompile(`https?://[^\s]+`)
	whitespace = regexp.MustCompile(`\s+`)
	yearOnly   = regexp.MustCompile(`^[12][0-9]{3}$`)
)

// excelEpoch is day zero of spreadsheet serial dates.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// SplitList splits a comma-separated cell into trimmed, non-empty values.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// NormalizeDate converts a spreadsheet date cell to YYYY-MM-DD.
// It accepts a bare year, serial day numbers and anything dateparse understands.
// A four-digit integer is read as a year, never as a serial.
func NormalizeDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	if yearOnly.MatchString(raw) {
		year, _ := strconv.Atoi(raw)
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Format(facet.DateLayout), true
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if serial < 1 || serial > 2958465 {
			return "", false
		}
		return excelEpoch.AddDate(0, 0, int(serial)).Format(facet.DateLayout), true
	}

	ts, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return "", false
	}
	return ts.Format(facet.DateLayout), true
}

// GenerateTitle derives a title from the first sentence of text, capped at maxWords.
// URLs are ignored. It returns "" when text has no words.
func GenerateTitle(text string, maxWords int) string {
	text = strings.TrimSpace(urlRegex.ReplaceAllString(text, " "))
	if text == "" {
		return ""
	}

	if end := strings.IndexAny(text, ".!?"); end > 0 {
		text = text[:end]
	}

	words := strings.Fields(whitespace.ReplaceAllString(text, " "))
	if len(words) == 0 {
		return ""
	}
	if maxWords > 0 && len(words) > maxWords {
		return strings.Join(words[:maxWords], " ") + "..."
	}
	return strings.Join(words, " ")
}

// BuildID hashes stable row fields into a deterministic record ID, so that
// re-importing the same sheet does not duplicate entries.
func BuildID(date, title string, row int) string {
	s := sha1.Sum([]byte(date + "|" + title + "|" + strconv.Itoa(row)))
	return hex.EncodeToString(s[:10])
}
