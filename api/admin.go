package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/DeafMist/trt-intel/internal/ingest"
	"github.com/DeafMist/trt-intel/internal/metrics"
	"github.com/DeafMist/trt-intel/internal/models"
	"github.com/DeafMist/trt-intel/internal/spreadsheet"
)

const templateFilename = "TRT_Intelligence_Bulk_Upload_Template.xlsx"

type importResponse struct {
	Batch     string `json:"batch"`
	Rows      int    `json:"rows"`
	Published int    `json:"published"`
	Skipped   int    `json:"skipped"`
}

func (s *server) handleUpsertNews(w http.ResponseWriter, r *http.Request) {
	var item models.NewsItem
	if err := decodeJSON(r, &item); err != nil {
		s.writeError(w, r, err)
		return
	}

	if strings.TrimSpace(item.ID) == "" {
		item.ID = uuid.NewString()
	}
	if err := item.Validate(); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %w", errInvalidInput, err))
		return
	}

	if err := s.store.IndexNews(r.Context(), item); err != nil {
		s.writeError(w, r, err)
		return
	}

	if added, err := s.labels.Learn(r.Context(), item); err != nil {
		s.log.Warn("learn labels", slog.String("id", item.ID), slog.Any("err", err))
	} else if added > 0 {
		s.log.Info("labels learned", slog.String("id", item.ID), slog.Int("added", added))
	}

	writeJSON(w, http.StatusOK, item)
}

func (s *server) handleDeleteNews(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteNews(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleUpsertDocument(w http.ResponseWriter, r *http.Request) {
	var doc models.Document
	if err := decodeJSON(r, &doc); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := doc.Validate(); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %w", errInvalidInput, err))
		return
	}
	doc = doc.WithDefaults()
	if strings.TrimSpace(doc.ID) == "" {
		doc.ID = uuid.NewString()
	}

	if err := s.store.IndexDocument(r.Context(), doc); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.log.Info("document saved", slog.String("id", doc.ID), slog.String("type", doc.Type))
	writeJSON(w, http.StatusOK, doc)
}

func (s *server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteDocument(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleImport reads a bulk upload workbook from the "file" form field and
// queues its rows for indexing.
func (s *server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error()})
			return
		}
		s.writeError(w, r, fmt.Errorf("%w: read upload: %w", errInvalidInput, err))
		return
	}
	defer file.Close()

	rows, err := spreadsheet.ReadRows(file)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %w", errInvalidInput, err))
		return
	}

	items := ingest.NewsFromRows(rows, s.now())
	batch := uuid.NewString()

	published, err := s.publisher.Publish(r.Context(), batch, items)
	if err != nil {
		s.metrics.ObserveImport(metrics.ImportFailed, len(items))
		s.writeError(w, r, err)
		return
	}
	s.metrics.ObserveImport(metrics.ImportPublished, published)

	s.log.Info("bulk upload queued",
		slog.String("batch", batch),
		slog.Int("rows", len(rows)),
		slog.Int("published", published),
	)

	writeJSON(w, http.StatusAccepted, importResponse{
		Batch:     batch,
		Rows:      len(rows),
		Published: published,
		Skipped:   len(rows) - len(items),
	})
}

func (s *server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", templateFilename))
	if err := spreadsheet.WriteTemplate(w); err != nil {
		s.log.Error("write template", slog.Any("err", err))
	}
}
