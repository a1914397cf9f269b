package attr

import "fmt"

// Map is a field's ordered, unique-name attribute container. Iteration
// order matches insertion order, so `block.field.*` attribute listings
// produce stable, deterministic output.
type Map struct {
	order []string
	byName map[string]*Attribute
}

// NewMap returns an empty attribute map.
func NewMap() *Map {
	return &Map{byName: make(map[string]*Attribute)}
}

// Add registers attr under its own name. A PolledChangeSet attribute
// without a Format function is rejected here, since it can never
// satisfy Changed.
func (m *Map) Add(a *Attribute) error {
	if _, ok := m.byName[a.Name]; ok {
		return fmt.Errorf("duplicate attribute %q", a.Name)
	}
	if a.PolledChangeSet && a.Format == nil {
		return fmt.Errorf("attribute %q: polled change set requires Format", a.Name)
	}
	m.byName[a.Name] = a
	m.order = append(m.order, a.Name)
	return nil
}

// Get looks an attribute up by name.
func (m *Map) Get(name string) (*Attribute, bool) {
	a, ok := m.byName[name]
	return a, ok
}

// Names returns attribute names in insertion order.
func (m *Map) Names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Each iterates attributes in insertion order.
func (m *Map) Each(fn func(*Attribute)) {
	for _, name := range m.order {
		fn(m.byName[name])
	}
}
