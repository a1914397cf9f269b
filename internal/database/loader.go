package database

import (
	"context"
	"io"

	"github.com/pandablocks/pandad/internal/busregistry"
	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/class"
	"github.com/pandablocks/pandad/internal/hardware"
)

// Sources bundles the three text files the loader consumes.
type Sources struct {
	Config      io.Reader
	Registers   io.Reader
	Description io.Reader
}

// Load runs the full §4.10 loading sequence: parse config, bind
// registers, attach descriptions, finalise every class, then validate
// the hardware shim's bindings.
func Load(ctx context.Context, src Sources, hw hardware.Interface, idx *changeset.Index) (*Database, error) {
	bus := busregistry.NewBus(hw)
	mux := busregistry.NewMuxTable()
	env := configEnv{hw: hw, idx: idx, bus: bus, mux: mux}

	db, err := loadConfig(src.Config, env)
	if err != nil {
		return nil, err
	}
	db.Bus = bus
	db.Mux = mux

	if err := loadRegisters(src.Registers, db, env); err != nil {
		return nil, err
	}

	if src.Description != nil {
		if err := loadDescriptions(src.Description, db); err != nil {
			return nil, err
		}
	}

	if err := registerMuxNames(db, mux); err != nil {
		return nil, err
	}

	if err := finaliseAll(ctx, db); err != nil {
		return nil, err
	}

	return db, hw.Validate()
}

// registerMuxNames publishes every bit_out/pos_out instance's
// "BLOCK[n].FIELD" name into the global mux tables, so bit_mux/pos_mux
// fields elsewhere in the database can select them (§4.7).
func registerMuxNames(db *Database, mux *busregistry.MuxTable) error {
	for _, block := range db.Blocks() {
		for _, f := range block.Fields() {
			switch c := f.Class.(type) {
			case *class.BitOut:
				for n := 0; n < block.Count; n++ {
					name := InstanceName(block.Name, block.Count, n) + "." + f.Name
					if err := mux.BitMux.Add(name, c.Index(n)); err != nil {
						return err
					}
				}
			case *class.PosOut:
				for n := 0; n < block.Count; n++ {
					name := InstanceName(block.Name, block.Count, n) + "." + f.Name
					if err := mux.PosMux.Add(name, c.Index(n)); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func finaliseAll(ctx context.Context, db *Database) error {
	for _, block := range db.Blocks() {
		for _, f := range block.Fields() {
			if fin, ok := f.Class.(class.Finaliser); ok {
				if err := fin.Finalise(ctx); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
