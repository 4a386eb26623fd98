package main

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

type labelRequest struct {
	Value string `json:"value"`
}

type labelResponse struct {
	Category string `json:"category"`
	Value    string `json:"value"`
	Added    bool   `json:"added"`
}

func (s *server) handleAllLabels(w http.ResponseWriter, r *http.Request) {
	all, err := s.labels.All(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (s *server) handleLabels(w http.ResponseWriter, r *http.Request) {
	values, err := s.labels.Options(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

func (s *server) handleAddLabel(w http.ResponseWriter, r *http.Request) {
	var req labelRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	category := chi.URLParam(r, "category")
	added, err := s.labels.Add(r.Context(), category, req.Value)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, labelResponse{Category: category, Value: req.Value, Added: added})
}

func (s *server) handleRemoveLabel(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	value, err := url.PathUnescape(chi.URLParam(r, "value"))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %w", errInvalidInput, err))
		return
	}

	removed, err := s.labels.Remove(r.Context(), category, value)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !removed {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "label not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
