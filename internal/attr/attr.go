// Package attr implements the named-attribute subsystem (§4.4): the
// sub-fields classes and types expose beyond a field's primary value,
// such as RAW, UNITS, SCALE or CAPTURE.
package attr

import (
	"fmt"
	"sync"

	"github.com/pandablocks/pandad/internal/changeset"
)

// Attribute is a named accessor bound to one field instance slot per n.
// Exactly one of the four callbacks is normally set, but nothing
// prevents e.g. both Format and Put for a read/write attribute like
// UNITS.
type Attribute struct {
	Name        string
	Description string

	// InChangeSet marks this attribute as reportable in the ATTR
	// change-set family.
	InChangeSet bool
	// PolledChangeSet implies InChangeSet: change is detected by
	// re-evaluating Format and comparing against the last observed
	// string, rather than by an explicit Bump call. Requires Format.
	PolledChangeSet bool

	Format         func(n int) (string, error)
	GetMany        func(n int) ([]string, error)
	Put            func(n int, value string) error
	GetEnumeration func() []string

	tracker *changeset.Tracker

	mu   sync.Mutex
	last []string // last formatted value per instance, for polled comparison
}

// New builds an attribute over n field instances. PolledChangeSet
// attributes must supply Format; this is checked at Map.Add time, not
// here, so construction order is flexible.
func New(name, description string, n int) *Attribute {
	return &Attribute{
		Name:        name,
		Description: description,
		tracker:     changeset.NewTracker(n),
		last:        make([]string, n),
	}
}

// Touch bumps instance n's update index, marking it changed for the
// ATTR family. Callers that mutate attribute-local state (e.g. a SCALE
// write) call this directly; polled attributes never need to, since
// Changed re-evaluates Format instead.
func (a *Attribute) Touch(n int, idx *changeset.Index) {
	a.tracker.Bump(n, idx)
}

// Changed reports whether instance n changed since report. For a
// polled attribute this re-evaluates Format and compares the rendered
// string against the last one seen by any caller; a difference is
// itself treated as a change and folded into the tracker so that a
// second poller asking the same question isn't fooled by the first
// poller's read clearing the difference.
func (a *Attribute) Changed(n int, report uint64, idx *changeset.Index) (bool, error) {
	if !a.PolledChangeSet {
		return a.tracker.Changed(n, report), nil
	}
	if a.Format == nil {
		return false, fmt.Errorf("attribute %q: polled change set requires Format", a.Name)
	}
	cur, err := a.Format(n)
	if err != nil {
		return false, err
	}
	a.mu.Lock()
	changed := a.last[n] != cur
	if changed {
		a.last[n] = cur
	}
	a.mu.Unlock()
	if changed {
		a.tracker.Bump(n, idx)
	}
	Diagnostics.record(a.Name, n, cur)
	return a.tracker.Changed(n, report), nil
}
