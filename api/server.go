package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/DeafMist/trt-intel/internal/config"
	"github.com/DeafMist/trt-intel/internal/elasticsearch"
	"github.com/DeafMist/trt-intel/internal/facet"
	"github.com/DeafMist/trt-intel/internal/labels"
	"github.com/DeafMist/trt-intel/internal/metrics"
	"github.com/DeafMist/trt-intel/internal/models"
	"github.com/DeafMist/trt-intel/internal/sections"
	"github.com/DeafMist/trt-intel/internal/session"
	"github.com/DeafMist/trt-intel/internal/view"
)

var errInvalidInput = errors.New("invalid input")

// recordStore is the record provider; *elasticsearch.Client satisfies it.
type recordStore interface {
	ListNews(ctx context.Context, limit int) ([]models.NewsItem, error)
	ListDocuments(ctx context.Context, limit int) ([]models.Document, error)
	IndexNews(ctx context.Context, item models.NewsItem) error
	DeleteNews(ctx context.Context, id string) error
	IndexDocument(ctx context.Context, doc models.Document) error
	DeleteDocument(ctx context.Context, id string) error
	Health(ctx context.Context) error
}

type importPublisher interface {
	Publish(ctx context.Context, batch string, items []models.NewsItem) (int, error)
}

type server struct {
	log       *slog.Logger
	cfg       *config.API
	store     recordStore
	sessions  session.Repository
	labels    *labels.Catalog
	metrics   *metrics.Metrics
	publisher importPublisher
	news      *view.Builder[models.NewsItem]
	docs      *view.Builder[models.Document]
	now       func() time.Time
}

func newServer(log *slog.Logger, cfg *config.API, store recordStore, sessions session.Repository,
	catalog *labels.Catalog, m *metrics.Metrics, pub importPublisher,
) *server {
	return &server{
		log:       log,
		cfg:       cfg,
		store:     store,
		sessions:  sessions,
		labels:    catalog,
		metrics:   m,
		publisher: pub,
		news:      view.NewBuilder[models.NewsItem](string(session.KindNews), log, m),
		docs:      view.NewBuilder[models.Document](string(session.KindDocuments), log, m),
		now:       time.Now,
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Get("/news", s.handleNews)
	r.Get("/news/export", s.handleExport)
	r.Get("/news/options/{facet}", s.handleNewsOptions)
	r.Get("/documents", s.handleDocuments)
	r.Get("/documents/options/{facet}", s.handleDocumentOptions)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Get("/view", s.handleSessionView)
			r.Post("/toggle", s.handleToggle)
			r.Delete("/facets/{facet}", s.handleClearFacet)
			r.Post("/clear", s.handleClearAll)
			r.Put("/dates", s.handleSetDates)
			r.Put("/query", s.handleSetQuery)
			r.Post("/sections/toggle-all", s.handleToggleAllSections)
			r.Post("/sections/{section}/toggle", s.handleToggleSection)
		})
	})

	r.Route("/labels", func(r chi.Router) {
		r.Get("/", s.handleAllLabels)
		r.Get("/{category}", s.handleLabels)
		r.Post("/{category}", s.handleAddLabel)
		r.Delete("/{category}/{value}", s.handleRemoveLabel)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Put("/news", s.handleUpsertNews)
		r.Delete("/news/{id}", s.handleDeleteNews)
		r.Put("/documents", s.handleUpsertDocument)
		r.Delete("/documents/{id}", s.handleDeleteDocument)
		r.Post("/import", s.handleImport)
		r.Get("/import/template", s.handleTemplate)
	})

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Health(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeError maps domain errors onto status codes.
func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errInvalidInput),
		errors.Is(err, facet.ErrUnknownFacet),
		errors.Is(err, sections.ErrUnknownSection),
		errors.Is(err, session.ErrUnknownKind),
		errors.Is(err, labels.ErrUnknownCategory),
		errors.Is(err, labels.ErrEmptyLabel),
		errors.Is(err, models.ErrMissingFields):
		status = http.StatusBadRequest
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, elasticsearch.ErrNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.log.Error("request failed",
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Any("err", err),
		)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: decode body: %w", errInvalidInput, err)
	}
	return nil
}

// reservedParams are query parameters that are not facet names.
var reservedParams = []string{"q", "start", "end"}

// stateFromQuery builds filter state from ?q=&start=&end=&<facet>=a&<facet>=b.
// Each occurrence of a facet param is one literal value, commas included.
func stateFromQuery(schema facet.Schema, q url.Values) (facet.State, error) {
	store := facet.NewStore(schema)

	for key, raw := range q {
		if slices.Contains(reservedParams, key) {
			continue
		}
		f, err := schema.Parse(key)
		if err != nil {
			return facet.State{}, err
		}
		for _, v := range raw {
			if strings.TrimSpace(v) == "" || slices.Contains(store.State().Selected(f), v) {
				continue
			}
			if err := store.Toggle(f, v); err != nil {
				return facet.State{}, err
			}
		}
	}

	dates, err := facet.NewDateRange(q.Get("start"), q.Get("end"))
	if err != nil {
		return facet.State{}, fmt.Errorf("%w: %w", errInvalidInput, err)
	}
	store.SetDateRange(dates)
	store.SetQuery(q.Get("q"))

	return store.State(), nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
