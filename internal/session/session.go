// Package session persists per-page filter state across requests.
// Concurrent writers to one session are not coordinated: the last Save wins.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/DeafMist/trt-intel/internal/facet"
	"github.com/DeafMist/trt-intel/internal/sections"
)

var (
	// ErrNotFound is returned for unknown or expired sessions.
	ErrNotFound = errors.New("session not found")
	// ErrUnknownKind is returned when a session names a page that does not exist.
	ErrUnknownKind = errors.New("unknown session kind")
)

// Kind selects the page, and therefore the facet schema, of a session.
type Kind string

const (
	KindNews      Kind = "news"
	KindDocuments Kind = "documents"
)

// Schema returns the facets of the page.
func (k Kind) Schema() (facet.Schema, error) {
	switch k {
	case KindNews:
		return facet.NewsSchema, nil
	case KindDocuments:
		return facet.DocumentSchema, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
}

// SectionNames returns the panel groups of the page: one per facet plus the date group.
func (k Kind) SectionNames() []string {
	schema, err := k.Schema()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(schema)+1)
	for _, f := range schema {
		names = append(names, string(f))
	}
	return append(names, sections.DateSection)
}

// Session is the persisted state of one page visit.
type Session struct {
	ID        string         `json:"id"`
	Kind      Kind           `json:"kind"`
	Filters   facet.State    `json:"filters"`
	Sections  sections.State `json:"sections"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// New returns a fresh session with every facet empty and every section collapsed.
func New(kind Kind, now time.Time) (Session, error) {
	if _, err := kind.Schema(); err != nil {
		return Session{}, err
	}
	return Session{
		ID:        uuid.NewString(),
		Kind:      kind,
		Sections:  sections.New(kind.SectionNames()...).State(),
		UpdatedAt: now.UTC(),
	}, nil
}

// Stores rebuilds the in-memory stores from the session.
func (s Session) Stores() (*facet.Store, *sections.Expansion, error) {
	schema, err := s.Kind.Schema()
	if err != nil {
		return nil, nil, err
	}
	filters := facet.NewStore(schema)
	if err := filters.Restore(s.Filters); err != nil {
		return nil, nil, fmt.Errorf("restore filters: %w", err)
	}
	exp := sections.New(s.Kind.SectionNames()...)
	exp.Restore(s.Sections)
	return filters, exp, nil
}

// Capture copies the stores' state back into the session.
func (s *Session) Capture(filters *facet.Store, exp *sections.Expansion, now time.Time) {
	s.Filters = filters.State()
	s.Sections = exp.State()
	s.UpdatedAt = now.UTC()
}

// Repository loads and saves sessions.
type Repository interface {
	Load(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, s Session) error
	Delete(ctx context.Context, id string) error
}
