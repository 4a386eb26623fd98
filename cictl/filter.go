package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/DeafMist/trt-intel/internal/facet"
	"github.com/DeafMist/trt-intel/internal/ingest"
	"github.com/DeafMist/trt-intel/internal/logger"
	"github.com/DeafMist/trt-intel/internal/models"
	"github.com/DeafMist/trt-intel/internal/session"
	"github.com/DeafMist/trt-intel/internal/spreadsheet"
	"github.com/DeafMist/trt-intel/internal/view"
)

type filterOptions struct {
	input  string
	kind   string
	facets []string
	query  string
	start  string
	end    string
	asJSON bool
}

func filterCMD() *cobra.Command {
	var opts filterOptions

	var cmd = &cobra.Command{
		Use:   "filter",
		Short: "Apply facet, date and text filters to an exported feed or library file",
		Example: `  cictl filter --input feed.xlsx --facet companies=Curium --facet companies=Telix --start 2024-04-01
  cictl filter --input library.json --kind documents --facet format=PDF --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "records file (.json or .xlsx)")
	cmd.Flags().StringVar(&opts.kind, "kind", string(session.KindNews), "record kind: news or documents")
	cmd.Flags().StringArrayVarP(&opts.facets, "facet", "f", nil, "facet selection as name=value; repeat to select more values")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "free-text query")
	cmd.Flags().StringVar(&opts.start, "start", "", "earliest date, YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.end, "end", "", "latest date, YYYY-MM-DD")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the view as JSON")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runFilter(out, errOut io.Writer, opts filterOptions) error {
	kind := session.Kind(opts.kind)
	schema, err := kind.Schema()
	if err != nil {
		return err
	}

	st, err := buildState(schema, opts)
	if err != nil {
		return err
	}

	log := logger.NewWithWriter(errOut, "cictl", os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	switch kind {
	case session.KindDocuments:
		docs, err := readJSON[models.Document](opts.input)
		if err != nil {
			return err
		}
		v := view.NewBuilder[models.Document](opts.kind, log, nil).Build(docs, st)
		if opts.asJSON {
			return writeIndented(out, v)
		}
		return printTable(out, v.Count, v.Records, func(d models.Document) []string {
			return []string{d.ID, d.Date, d.Type, d.Title}
		})
	default:
		items, err := readNews(opts.input, time.Now())
		if err != nil {
			return err
		}
		v := view.NewBuilder[models.NewsItem](opts.kind, log, nil).Build(items, st)
		if opts.asJSON {
			return writeIndented(out, v)
		}
		return printTable(out, v.Count, v.Records, func(n models.NewsItem) []string {
			return []string{n.ID, n.Date, n.Type, n.Title}
		})
	}
}

func buildState(schema facet.Schema, opts filterOptions) (facet.State, error) {
	store := facet.NewStore(schema)

	for _, raw := range opts.facets {
		name, values, ok := strings.Cut(raw, "=")
		if !ok {
			return facet.State{}, fmt.Errorf("facet %q: expected name=value", raw)
		}
		f, err := schema.Parse(strings.TrimSpace(name))
		if err != nil {
			return facet.State{}, err
		}
		if values == "" || slices.Contains(store.State().Selected(f), values) {
			continue
		}
		if err := store.Toggle(f, values); err != nil {
			return facet.State{}, err
		}
	}

	dates, err := facet.NewDateRange(opts.start, opts.end)
	if err != nil {
		return facet.State{}, err
	}
	store.SetDateRange(dates)
	store.SetQuery(opts.query)
	return store.State(), nil
}

// readNews loads news items from a JSON array or a bulk upload workbook.
func readNews(path string, now time.Time) ([]models.NewsItem, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return readJSON[models.NewsItem](path)
	case ".xlsx":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()

		rows, err := spreadsheet.ReadRows(f)
		if err != nil {
			return nil, err
		}
		return ingest.NewsFromRows(rows, now), nil
	default:
		return nil, fmt.Errorf("unsupported input %q: want .json or .xlsx", path)
	}
}

func readJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTable[R any](w io.Writer, count int, records []R, row func(R) []string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tTITLE")
	for _, rec := range records {
		fmt.Fprintln(tw, strings.Join(row(rec), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d matching\n", count)
	return err
}
