package hashtable

import "fmt"

// Enum is a name<->index label set backing the `enum` type (§4.3), in
// either its static form (a fixed list given in the config file's field
// line) or its dynamic form (populated label by label from an indented
// sub-block while the loader reads the config file).
type Enum struct {
	labels []string
	index  map[string]int
}

// NewEnum builds a fixed (static) enumeration from an ordered label list.
func NewEnum(labels []string) *Enum {
	e := &Enum{index: make(map[string]int, len(labels))}
	for i, l := range labels {
		e.labels = append(e.labels, l)
		e.index[l] = i
	}
	return e
}

// NewDynamicEnum returns an empty enumeration that the loader appends
// name/index pairs onto as it reads the config file's `enum` lines.
func NewDynamicEnum() *Enum {
	return &Enum{index: make(map[string]int)}
}

// Add appends a new label at the next free index (used while loading a
// dynamic enumeration). It does not allow duplicate labels or
// out-of-order indices.
func (e *Enum) Add(label string, index int) error {
	if _, ok := e.index[label]; ok {
		return fmt.Errorf("duplicate enumeration label %q", label)
	}
	if index != len(e.labels) {
		return fmt.Errorf("enumeration label %q has index %d, want %d", label, index, len(e.labels))
	}
	e.labels = append(e.labels, label)
	e.index[label] = index
	return nil
}

// Parse looks a label up and returns its index.
func (e *Enum) Parse(s string) (uint32, error) {
	i, ok := e.index[s]
	if !ok {
		return 0, fmt.Errorf("invalid enumeration value %q", s)
	}
	return uint32(i), nil
}

// Format renders an index back to its label.
func (e *Enum) Format(v uint32) (string, error) {
	if int(v) >= len(e.labels) {
		return "", fmt.Errorf("enumeration index %d out of range", v)
	}
	return e.labels[v], nil
}

// Labels returns the enumeration in index order.
func (e *Enum) Labels() []string {
	out := make([]string, len(e.labels))
	copy(out, e.labels)
	return out
}
