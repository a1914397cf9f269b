// Package hashtable provides the name<->value maps used throughout the
// runtime: the append-only bit/position mux enumerations and the
// static/dynamic label sets used by enum-typed fields.
package hashtable

import (
	"fmt"
	"sync"
)

// NameIndex is a bijective, append-only name<->index map. It backs the
// global bit_mux/pos_mux enumerations (§4.7), which are populated once
// during register binding and never deleted from afterwards.
type NameIndex struct {
	mu          sync.RWMutex
	nameToIndex map[string]int
	indexToName map[int]string
	order       []string
}

// NewNameIndex creates an empty table.
func NewNameIndex() *NameIndex {
	return &NameIndex{
		nameToIndex: make(map[string]int),
		indexToName: make(map[int]string),
	}
}

// Add binds name to index. It fails if either the name or the index is
// already bound, since a register may be owned by exactly one class
// instance (§5).
func (n *NameIndex) Add(name string, index int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.nameToIndex[name]; ok {
		return fmt.Errorf("Register already assigned")
	}
	if _, ok := n.indexToName[index]; ok {
		return fmt.Errorf("Register already assigned")
	}
	n.nameToIndex[name] = index
	n.indexToName[index] = name
	n.order = append(n.order, name)
	return nil
}

// Names returns every bound name in binding order.
func (n *NameIndex) Names() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]string, len(n.order))
	copy(out, n.order)
	return out
}

// Lookup resolves a name to its index.
func (n *NameIndex) Lookup(name string) (int, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	i, ok := n.nameToIndex[name]
	return i, ok
}

// Name resolves an index back to its name.
func (n *NameIndex) Name(index int) (string, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	s, ok := n.indexToName[index]
	return s, ok
}
