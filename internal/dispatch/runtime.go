package dispatch

import (
	"sync/atomic"

	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/database"
)

// Runtime collects the process-wide singletons the command dispatcher
// needs (§9's "Global mutable state" design note: the bit/position bus
// caches, the mux enumerations, the change index, and the capture
// interlock are gathered into one value constructed at startup instead
// of living as package-level globals).
type Runtime struct {
	DB    *database.Database
	Index *changeset.Index

	capturing atomic.Bool
}

// NewRuntime wraps an already-loaded database.
func NewRuntime(db *database.Database, idx *changeset.Index) *Runtime {
	return &Runtime{DB: db, Index: idx}
}

// Capturing reports whether data capture is currently armed.
func (rt *Runtime) Capturing() bool { return rt.capturing.Load() }

// SetCapturing arms or disarms the capture interlock (*CAPTURE=). While
// armed, writes to any field's CAPTURE attribute are rejected (§4.6).
func (rt *Runtime) SetCapturing(v bool) { rt.capturing.Store(v) }
