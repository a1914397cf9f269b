package database

import (
	"fmt"
	"io"

	"github.com/pandablocks/pandad/internal/class"
	"github.com/pandablocks/pandad/internal/parseutil"
)

// ErrRegisterAlreadyAssigned is the §7 state error returned when the
// `registers` file binds the same field twice, or reuses a register
// offset across two fields in the same block (§4.2/§4.10(3)/§5:
// "exactly one class instance per register"; scenario §8.6).
var ErrRegisterAlreadyAssigned = fmt.Errorf("Register already assigned")

// loadRegisters reads the `registers` file (§4.10): a mandatory *REG
// block naming hardware registers, then block headers "name base" each
// followed by "field register-spec" lines.
func loadRegisters(r io.Reader, db *Database, env configEnv) error {
	pr := parseutil.NewIndentReader(r)
	seenBlock := false
	seenReg := false

	for {
		line, err := pr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if line.Depth != 0 {
			return fmt.Errorf("registers line %d: expected a block header", line.Number)
		}
		toks := line.Fields()
		if len(toks) == 0 {
			continue
		}
		if toks[0] == "*REG" {
			if seenBlock {
				return fmt.Errorf("registers line %d: *REG must appear before any normal block", line.Number)
			}
			if err := loadNamedRegisters(pr, env); err != nil {
				return err
			}
			seenReg = true
			continue
		}
		seenBlock = true
		if err := bindBlock(pr, db, toks, line.Number, env); err != nil {
			return err
		}
	}
	if !seenReg {
		return fmt.Errorf("registers: missing *REG block")
	}
	return nil
}

func loadNamedRegisters(pr *parseutil.IndentReader, env configEnv) error {
	for {
		peek, err := pr.Peek()
		if err == io.EOF || peek.Depth == 0 {
			return nil
		}
		line, _ := pr.Next()
		toks := line.Fields()
		if len(toks) != 2 {
			return fmt.Errorf("registers line %d: expected \"name reg\"", line.Number)
		}
		reg, err := parseutil.Uint32(toks[1])
		if err != nil {
			return fmt.Errorf("registers line %d: %w", line.Number, err)
		}
		env.hw.RequireNamedRegister(toks[0])
		if err := env.hw.SetNamedRegister(toks[0], reg); err != nil {
			return fmt.Errorf("registers line %d: %w", line.Number, err)
		}
	}
}

func bindBlock(pr *parseutil.IndentReader, db *Database, toks []string, lineNo int, env configEnv) error {
	if len(toks) != 2 {
		return fmt.Errorf("registers line %d: expected \"name base\"", lineNo)
	}
	block, ok := db.Block(toks[0])
	if !ok {
		return fmt.Errorf("registers line %d: block %q not declared in config", lineNo, toks[0])
	}
	base, err := parseutil.Uint32(toks[1])
	if err != nil {
		return fmt.Errorf("registers line %d: %w", lineNo, err)
	}
	block.Base = base
	if err := env.hw.SetBlockBase(block.Name, base); err != nil {
		return err
	}
	for _, f := range block.Fields() {
		if bs, ok := f.Class.(class.BaseSetter); ok {
			bs.SetBase(base)
		}
	}

	bound := make(map[string]bool)     // field names already register-bound in this block
	offsets := make(map[uint32]string) // register offset -> owning field name, this block

	for {
		peek, err := pr.Peek()
		if err == io.EOF || peek.Depth == 0 {
			return nil
		}
		line, _ := pr.Next()
		fields := line.Fields()
		if len(fields) < 1 {
			return fmt.Errorf("registers line %d: empty field register spec", line.Number)
		}
		f, ok := block.Field(fields[0])
		if !ok {
			return fmt.Errorf("registers line %d: field %q not declared in block %q", line.Number, fields[0], block.Name)
		}
		binder, ok := f.Class.(class.RegisterBinder)
		if !ok {
			return fmt.Errorf("registers line %d: field %q does not bind registers", line.Number, fields[0])
		}
		if bound[fields[0]] {
			return fmt.Errorf("registers line %d: %w", line.Number, ErrRegisterAlreadyAssigned)
		}
		if err := binder.ParseRegister(fields[1:]); err != nil {
			return fmt.Errorf("registers line %d: %w", line.Number, err)
		}
		bound[fields[0]] = true

		if fp, ok := f.Class.(class.RegisterFootprint); ok {
			for _, off := range fp.RegisterOffsets() {
				if owner, taken := offsets[off]; taken && owner != fields[0] {
					return fmt.Errorf("registers line %d: %w", line.Number, ErrRegisterAlreadyAssigned)
				}
				offsets[off] = fields[0]
			}
		}
	}
}
