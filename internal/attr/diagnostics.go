package attr

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Diagnostics is a process-wide, size-bounded record of the most
// recently polled formatted value of every PolledChangeSet attribute
// instance. It exists purely for introspection (a human debugging why
// *CHANGES? did or didn't report something); nothing in the change-set
// path reads from it. The bound keeps a client that walks many distinct
// attribute instances from growing it without limit.
var Diagnostics = newDiagnosticCache(1024)

type diagnosticCache struct {
	cache *lru.Cache[string, string]
}

func newDiagnosticCache(size int) *diagnosticCache {
	c, _ := lru.New[string, string](size)
	return &diagnosticCache{cache: c}
}

func (d *diagnosticCache) record(name string, n int, value string) {
	d.cache.Add(fmt.Sprintf("%s#%d", name, n), value)
}

// Recent returns a snapshot of every entry still resident in the cache.
// Entries may be evicted between calls; this is a best-effort view, not
// an audit log.
func (d *diagnosticCache) Recent() map[string]string {
	out := make(map[string]string, d.cache.Len())
	for _, k := range d.cache.Keys() {
		if v, ok := d.cache.Peek(k); ok {
			out[k] = v
		}
	}
	return out
}
