package changeset

import "sync"

// Tracker holds one update-index slot per field instance in a class (one
// slot per block index, typically). Every slot starts at 1, matching the
// Index's own starting value, so a freshly created field reads as
// "changed" to any poller whose report index is 0 but not to one that
// already observed the index at creation time.
type Tracker struct {
	mu   sync.Mutex
	slot []uint64
}

// NewTracker allocates a tracker for n field instances, all initialized
// to update index 1.
func NewTracker(n int) *Tracker {
	t := &Tracker{slot: make([]uint64, n)}
	for i := range t.slot {
		t.slot[i] = 1
	}
	return t
}

// Bump records that instance i changed, stamping its slot with the
// index's current value after advancing it. Callers apply the mutation
// first and bump afterwards; Bump needs no lock of the caller's to be
// held, and Tracker only serializes the slot array.
func (t *Tracker) Bump(i int, idx *Index) {
	v := idx.Next()
	t.mu.Lock()
	t.slot[i] = v
	t.mu.Unlock()
}

// Changed reports whether instance i changed since report, using the
// strict "slot > report" comparison (§9 Open Question: a client polling
// with its own last-seen index must not re-see the change that produced
// that very index).
func (t *Tracker) Changed(i int, report uint64) bool {
	t.mu.Lock()
	v := t.slot[i]
	t.mu.Unlock()
	return v > report
}

// Fill sets out[i] for every instance that changed since report. out
// must have the tracker's length.
func (t *Tracker) Fill(report uint64, out []bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, v := range t.slot {
		out[i] = v > report
	}
}

// Len returns the number of tracked instances.
func (t *Tracker) Len() int {
	return len(t.slot)
}
