package class

import (
	"context"

	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/hardware"
	"github.com/pandablocks/pandad/internal/types"
)

// Write is a write-only register: no readback, no change tracking.
type Write struct {
	name string
	ty   types.Type
	reg  *registerIO
}

func NewWrite(name string, ty types.Type, hw hardware.Interface, base uint32, count int, idx *changeset.Index) *Write {
	return &Write{name: name, ty: ty, reg: newRegisterIO(hw, base, 0, count, idx)}
}

func (w *Write) Name() string { return w.name }

func (w *Write) SetBase(base uint32) { w.reg.base = base }

func (w *Write) ParseRegister(fields []string) error {
	reg, err := parseSingleRegister(fields)
	if err != nil {
		return err
	}
	w.reg.reg = reg
	return nil
}

func (w *Write) RegisterOffsets() []uint32 { return []uint32{w.reg.reg} }

func (w *Write) Put(n int, value string) error {
	v, err := w.ty.Parse(n, value)
	if err != nil {
		return err
	}
	return w.reg.hwWrite(context.Background(), n, v)
}

var (
	_ Class  = (*Write)(nil)
	_ Putter = (*Write)(nil)
)
