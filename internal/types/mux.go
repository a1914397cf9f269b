package types

import (
	"fmt"

	"github.com/pandablocks/pandad/internal/hardware"
)

// muxNames is the shape MuxType needs from the global
// bit_mux/pos_mux enumeration tables: a bijective name<->index map that
// busregistry.MuxTable populates once at register-binding time and never
// deletes from afterwards.
type muxNames interface {
	Lookup(name string) (int, bool)
	Name(index int) (string, bool)
	Names() []string
}

// MuxType is the bit_mux/pos_mux value adapter: the wire value is a
// name resolved against the global mux enumeration, and the raw
// register holds the resolved bus index. The register write itself is
// the owning class's job (a plain uint32 write, same as any other
// register-backed field); MuxType only does the name<->index
// resolution.
type MuxType struct {
	Names  muxNames
	ZeroOK bool // pos_mux's "ZERO" sentinel name, mapped to index 32
}

func (t *MuxType) Parse(n int, s string) (uint32, error) {
	if t.ZeroOK && s == "ZERO" {
		return hardware.PosBusCount, nil
	}
	i, ok := t.Names.Lookup(s)
	if !ok {
		return 0, fmt.Errorf("unknown mux selector %q", s)
	}
	return uint32(i), nil
}

func (t *MuxType) Format(n int, v uint32) (string, error) {
	if t.ZeroOK && v == hardware.PosBusCount {
		return "ZERO", nil
	}
	name, ok := t.Names.Name(int(v))
	if !ok {
		return "", fmt.Errorf("mux index %d has no bound name", v)
	}
	return name, nil
}

func (t *MuxType) GetEnumeration() []string {
	names := t.Names.Names()
	if t.ZeroOK {
		names = append(names, "ZERO")
	}
	return names
}
