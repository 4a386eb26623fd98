// Package spreadsheet reads bulk-upload workbooks and writes templates and feed exports.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/DeafMist/trt-intel/internal/ingest"
	"github.com/DeafMist/trt-intel/internal/models"
)

const (
	TemplateSheet = "Bulk Upload Template"
	ExportSheet   = "Intelligence Feed"
)

// ErrNoSheet is returned for a workbook without worksheets.
var ErrNoSheet = errors.New("workbook has no sheets")

// ExportColumns are the columns of a feed export.
var ExportColumns = []string{
	"ID", "Date", "Type", "Title", "Summary", "Source", "Companies", "Assets",
	"TumorType", "Target", "Isotope", "Region",
}

// ReadRows returns the first sheet's data rows keyed by the header row.
func ReadRows(r io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	out := make([]map[string]string, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(map[string]string, len(header))
		for i, name := range header {
			if name == "" || i >= len(cells) {
				continue
			}
			row[name] = cells[i]
		}
		out = append(out, row)
	}
	return out, nil
}

// WriteTemplate writes the bulk upload template with one example row.
func WriteTemplate(w io.Writer) error {
	example := make([]string, len(ingest.Columns))
	for i, col := range ingest.Columns {
		example[i] = ingest.TemplateRow[col]
	}
	return writeSheet(w, TemplateSheet, ingest.Columns, [][]string{example})
}

// WriteNews exports items in the given order.
func WriteNews(w io.Writer, items []models.NewsItem) error {
	rows := make([][]string, 0, len(items))
	for _, n := range items {
		rows = append(rows, []string{
			n.ID, n.Date, n.Type, n.Title, n.Summary, n.SourceName,
			strings.Join(n.Companies, ", "), strings.Join(n.Assets, ", "),
			n.TumorType, n.Target, n.Isotope, n.Region,
		})
	}
	return writeSheet(w, ExportSheet, ExportColumns, rows)
}

func writeSheet(w io.Writer, sheet string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("set row %d: %w", row, err)
	}
	return nil
}
