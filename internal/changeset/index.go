// Package changeset implements the process-wide monotonic change index
// (§4.5) and the per-slot trackers that every class and attribute uses to
// answer "has this changed since report index R".
package changeset

import "sync/atomic"

// Index is the single, process-wide monotonic logical clock. It is never
// zero: NewIndex starts the counter at 1, so a freshly constructed slot
// whose update index is also 1 is indistinguishable from "never updated"
// only to a caller reporting with index 0 — exactly the invariant
// described in spec §3.
type Index struct {
	counter uint64
}

// NewIndex returns a change index starting at 1.
func NewIndex() *Index {
	return &Index{counter: 1}
}

// Next atomically advances the clock and returns the new value. Every
// observable mutation in the runtime calls this once (through
// Tracker.Bump) after the mutation is applied, so a reader that sees the
// new index also sees the new value. The call is not made under the lock
// that guards the mutation, so a reader can see a new value before its
// slot's index has advanced.
func (idx *Index) Next() uint64 {
	return atomic.AddUint64(&idx.counter, 1)
}

// Current returns the clock's present value without advancing it.
func (idx *Index) Current() uint64 {
	return atomic.LoadUint64(&idx.counter)
}
