package class

import (
	"github.com/pandablocks/pandad/internal/attr"
	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/types"
)

// bindTypeAttributes wires a Type's extra attributes (RAW, UNITS, SCALE,
// OFFSET) into a field's attribute map, if the type implements
// types.AttributeBinder. count is the field's instance count.
func bindTypeAttributes(m *attr.Map, ty types.Type, reg types.Register, count int, idx *changeset.Index) error {
	binder, ok := ty.(types.AttributeBinder)
	if !ok {
		return nil
	}
	extras, err := binder.BindAttributes(reg, 0)
	if err != nil {
		return err
	}
	for name, extra := range extras {
		a := attr.New(name, extra.Description, count)
		a.Format = extra.Format
		a.Put = extra.Put
		if extra.Put != nil {
			a.InChangeSet = true
			a.PolledChangeSet = true
		}
		if err := m.Add(a); err != nil {
			return err
		}
	}
	return nil
}
