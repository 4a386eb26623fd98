// Package sections tracks which filter-panel groups are expanded.
// It is presentation state only and never affects filtering.
package sections

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownSection is returned for a section the panel does not have.
var ErrUnknownSection = errors.New("unknown section")

// DateSection is the panel group holding the date range inputs.
const DateSection = "date"

// State maps section name to expanded flag.
type State map[string]bool

// Expansion holds the expanded/collapsed flag of each section. All start collapsed.
type Expansion struct {
	order []string
	open  map[string]bool
}

// New creates an expansion store for the given sections.
func New(names ...string) *Expansion {
	e := &Expansion{open: make(map[string]bool, len(names))}
	for _, name := range names {
		if _, dup := e.open[name]; dup {
			continue
		}
		e.order = append(e.order, name)
		e.open[name] = false
	}
	return e
}

// Names returns sections in panel order.
func (e *Expansion) Names() []string {
	return slices.Clone(e.order)
}

// Toggle flips one section.
func (e *Expansion) Toggle(name string) error {
	open, ok := e.open[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSection, name)
	}
	e.open[name] = !open
	return nil
}

// ToggleAll expands every section unless all are already expanded, in which case it collapses all.
func (e *Expansion) ToggleAll() {
	target := !e.AllExpanded()
	for name := range e.open {
		e.open[name] = target
	}
}

// Expanded reports one section's flag.
func (e *Expansion) Expanded(name string) bool {
	return e.open[name]
}

// AllExpanded reports whether every section is expanded.
func (e *Expansion) AllExpanded() bool {
	for _, open := range e.open {
		if !open {
			return false
		}
	}
	return true
}

// State returns a copy of the flags.
func (e *Expansion) State() State {
	out := make(State, len(e.open))
	for name, open := range e.open {
		out[name] = open
	}
	return out
}

// Restore applies saved flags. Unknown names are ignored so that panels can drop sections.
func (e *Expansion) Restore(st State) {
	for name, open := range st {
		if _, ok := e.open[name]; ok {
			e.open[name] = open
		}
	}
}
