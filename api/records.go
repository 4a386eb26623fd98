package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/DeafMist/trt-intel/internal/facet"
	"github.com/DeafMist/trt-intel/internal/filter"
	"github.com/DeafMist/trt-intel/internal/models"
	"github.com/DeafMist/trt-intel/internal/spreadsheet"
	"github.com/DeafMist/trt-intel/internal/view"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type optionCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type optionsResponse struct {
	Facet   facet.Facet   `json:"facet"`
	Options []optionCount `json:"options"`
}

func (s *server) handleNews(w http.ResponseWriter, r *http.Request) {
	st, err := stateFromQuery(facet.NewsSchema, r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	items, err := s.listNews(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, s.news.Build(items, st))
}

func (s *server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	st, err := stateFromQuery(facet.DocumentSchema, r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	docs, err := s.listDocuments(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, s.docs.Build(docs, st))
}

func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	st, err := stateFromQuery(facet.NewsSchema, r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	items, err := s.listNews(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := spreadsheet.WriteNews(&buf, s.news.Build(items, st).Records); err != nil {
		s.writeError(w, r, err)
		return
	}

	name := fmt.Sprintf("intelligence-feed-%s.xlsx", s.now().UTC().Format(facet.DateLayout))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *server) handleNewsOptions(w http.ResponseWriter, r *http.Request) {
	f, err := facet.NewsSchema.Parse(chi.URLParam(r, "facet"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	items, err := s.listNews(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts, err := s.options(r.Context(), items, f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, optionsResponse{Facet: f, Options: opts})
}

func (s *server) handleDocumentOptions(w http.ResponseWriter, r *http.Request) {
	f, err := facet.DocumentSchema.Parse(chi.URLParam(r, "facet"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	docs, err := s.listDocuments(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, optionsResponse{Facet: f, Options: recordOptions(docs, f, nil)})
}

// options lists the configured labels for f followed by any value present in
// items but missing from the labels, each with its record count.
func (s *server) options(ctx context.Context, items []models.NewsItem, f facet.Facet) ([]optionCount, error) {
	configured, _, err := s.labels.PanelOptions(ctx, f)
	if err != nil {
		return nil, err
	}
	return recordOptions(items, f, configured), nil
}

func recordOptions[R filter.Record](records []R, f facet.Facet, configured []string) []optionCount {
	counts := view.Tally(records, f)

	out := make([]optionCount, 0, len(configured))
	listed := make(map[string]struct{}, len(configured))
	for _, v := range configured {
		listed[v] = struct{}{}
		out = append(out, optionCount{Value: v, Count: counts[v]})
	}
	for _, v := range view.Options(records, f) {
		if _, ok := listed[v]; ok {
			continue
		}
		out = append(out, optionCount{Value: v, Count: counts[v]})
	}
	return out
}

func (s *server) listNews(ctx context.Context) ([]models.NewsItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.store.ListNews(ctx, s.cfg.MaxRecords)
}

func (s *server) listDocuments(ctx context.Context) ([]models.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.store.ListDocuments(ctx, s.cfg.MaxRecords)
}
