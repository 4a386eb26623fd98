package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/DeafMist/trt-intel/internal/facet"
	"github.com/DeafMist/trt-intel/internal/sections"
	"github.com/DeafMist/trt-intel/internal/session"
)

type sessionView struct {
	Session     session.Session `json:"session"`
	AllExpanded bool            `json:"allExpanded"`
	View        any             `json:"view"`
}

type createSessionRequest struct {
	Kind session.Kind `json:"kind"`
}

type toggleRequest struct {
	Facet string `json:"facet"`
	Value string `json:"value"`
}

type datesRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type queryRequest struct {
	Query string `json:"query"`
}

// mutation changes the stores of one session.
type mutation func(filters *facet.Store, exp *sections.Expansion) error

func (s *server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := session.New(req.Kind, s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		s.writeError(w, r, fmt.Errorf("save session: %w", err))
		return
	}

	out, err := s.render(r.Context(), sess)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleSessionView(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, nil)
}

func (s *server) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Value) == "" {
		s.writeError(w, r, fmt.Errorf("%w: facet value is required", errInvalidInput))
		return
	}
	s.mutate(w, r, func(filters *facet.Store, _ *sections.Expansion) error {
		return filters.Toggle(facet.Facet(req.Facet), req.Value)
	})
}

func (s *server) handleClearFacet(w http.ResponseWriter, r *http.Request) {
	f := facet.Facet(chi.URLParam(r, "facet"))
	s.mutate(w, r, func(filters *facet.Store, _ *sections.Expansion) error {
		return filters.ClearFacet(f)
	})
}

func (s *server) handleClearAll(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(filters *facet.Store, _ *sections.Expansion) error {
		filters.ClearAll()
		return nil
	})
}

func (s *server) handleSetDates(w http.ResponseWriter, r *http.Request) {
	var req datesRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	dates, err := facet.NewDateRange(req.Start, req.End)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %w", errInvalidInput, err))
		return
	}
	s.mutate(w, r, func(filters *facet.Store, _ *sections.Expansion) error {
		filters.SetDateRange(dates)
		return nil
	})
}

func (s *server) handleSetQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(filters *facet.Store, _ *sections.Expansion) error {
		filters.SetQuery(req.Query)
		return nil
	})
}

func (s *server) handleToggleSection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "section")
	s.mutate(w, r, func(_ *facet.Store, exp *sections.Expansion) error {
		return exp.Toggle(name)
	})
}

func (s *server) handleToggleAllSections(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(_ *facet.Store, exp *sections.Expansion) error {
		exp.ToggleAll()
		return nil
	})
}

// mutate loads the session, applies fn, saves, and answers with the
// recomputed view. A nil fn only reads.
func (s *server) mutate(w http.ResponseWriter, r *http.Request, fn mutation) {
	ctx := r.Context()

	sess, err := s.sessions.Load(ctx, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if fn != nil {
		filters, exp, err := sess.Stores()
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := fn(filters, exp); err != nil {
			s.writeError(w, r, err)
			return
		}
		sess.Capture(filters, exp, s.now())
		if err := s.sessions.Save(ctx, sess); err != nil {
			s.writeError(w, r, fmt.Errorf("save session: %w", err))
			return
		}
	}

	out, err := s.render(ctx, sess)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) render(ctx context.Context, sess session.Session) (sessionView, error) {
	out := sessionView{Session: sess}

	_, exp, err := sess.Stores()
	if err != nil {
		return out, err
	}
	out.AllExpanded = exp.AllExpanded()

	switch sess.Kind {
	case session.KindNews:
		items, err := s.listNews(ctx)
		if err != nil {
			return out, err
		}
		out.View = s.news.Build(items, sess.Filters)
	case session.KindDocuments:
		docs, err := s.listDocuments(ctx)
		if err != nil {
			return out, err
		}
		out.View = s.docs.Build(docs, sess.Filters)
	default:
		return out, fmt.Errorf("%w: %q", session.ErrUnknownKind, string(sess.Kind))
	}
	return out, nil
}
