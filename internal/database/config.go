package database

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pandablocks/pandad/internal/attr"
	"github.com/pandablocks/pandad/internal/busregistry"
	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/class"
	"github.com/pandablocks/pandad/internal/hardware"
	"github.com/pandablocks/pandad/internal/hashtable"
	"github.com/pandablocks/pandad/internal/parseutil"
	"github.com/pandablocks/pandad/internal/table"
	"github.com/pandablocks/pandad/internal/types"
)

// configEnv carries the shared collaborators every class constructor
// needs, threaded through loadConfig instead of becoming package
// globals.
type configEnv struct {
	hw  hardware.Interface
	idx *changeset.Index
	bus *busregistry.Bus
	mux *busregistry.MuxTable
}

// loadConfig reads the `config` file (§4.10) building every block and
// field, with class instances fully constructed (but not yet
// register-bound — that happens in loadRegisters).
func loadConfig(r io.Reader, env configEnv) (*Database, error) {
	db := newDatabase()
	pr := parseutil.NewIndentReader(r)

	for {
		line, err := pr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if line.Depth != 0 {
			return nil, fmt.Errorf("config line %d: expected a block header", line.Number)
		}
		block, err := parseBlockHeader(line)
		if err != nil {
			return nil, err
		}
		if err := loadFields(pr, block, env); err != nil {
			return nil, err
		}
		if err := db.addBlock(block); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func parseBlockHeader(line parseutil.Line) (*Block, error) {
	fields := line.Fields()
	if len(fields) == 0 {
		return nil, fmt.Errorf("config line %d: empty block header", line.Number)
	}
	name, err := parseutil.Ident(fields[0])
	if err != nil {
		return nil, fmt.Errorf("config line %d: %w", line.Number, err)
	}
	count := 1
	if len(fields) > 1 {
		c, err := parseutil.Uint32(fields[1])
		if err != nil {
			return nil, fmt.Errorf("config line %d: %w", line.Number, err)
		}
		count = int(c)
	}
	if count < 1 || count > 16 {
		return nil, fmt.Errorf("config line %d: block instance count %d out of range [1,16]", line.Number, count)
	}
	return newBlock(name, count), nil
}

func loadFields(pr *parseutil.IndentReader, block *Block, env configEnv) error {
	for {
		peek, err := pr.Peek()
		if err == io.EOF || peek.Depth == 0 {
			return nil
		}
		if peek.Depth != 1 {
			return fmt.Errorf("config line %d: expected a field line", peek.Number)
		}
		line, _ := pr.Next()
		f, err := parseFieldLine(pr, block, line, env)
		if err != nil {
			return err
		}
		if err := block.addField(f); err != nil {
			return err
		}
	}
}

func parseFieldLine(pr *parseutil.IndentReader, block *Block, line parseutil.Line, env configEnv) (*Field, error) {
	toks := line.Fields()
	if len(toks) < 2 {
		return nil, fmt.Errorf("config line %d: expected \"name class [args]\"", line.Number)
	}
	name, err := parseutil.Ident(toks[0])
	if err != nil {
		return nil, fmt.Errorf("config line %d: %w", line.Number, err)
	}
	classTok := toks[1]
	args := toks[2:]

	attrs := attr.NewMap()
	n := block.Count

	var cls class.Class
	switch classTok {
	case "param":
		ty, err := fieldType(pr, line, args, env)
		if err != nil {
			return nil, err
		}
		cls, err = class.NewParam(name, ty, env.hw, 0, n, env.idx, attrs)
		if err != nil {
			return nil, err
		}
	case "read":
		ty, err := fieldType(pr, line, args, env)
		if err != nil {
			return nil, err
		}
		cls = class.NewRead(name, ty, env.hw, 0, n, env.idx)
	case "write":
		ty, err := fieldType(pr, line, args, env)
		if err != nil {
			return nil, err
		}
		cls = class.NewWrite(name, ty, env.hw, 0, n, env.idx)
	case "time":
		t, err := class.NewTime(name, env.hw, 0, n, env.idx, attrs)
		if err != nil {
			return nil, err
		}
		cls = t
	case "bit_out":
		b, err := class.NewBitOut(name, env.bus, env.idx, n, attrs)
		if err != nil {
			return nil, err
		}
		cls = b
	case "pos_out":
		labels := busregistry.PosOutCaptureLabels
		if len(args) > 0 {
			switch args[0] {
			case "encoder":
				labels = busregistry.PosOutEncoderCaptureLabels
			case "adc":
				labels = busregistry.AdcCaptureLabels
			}
		}
		p, err := class.NewPosOut(name, env.bus, env.idx, n, labels, attrs)
		if err != nil {
			return nil, err
		}
		cls = p
	case "ext_out":
		e, err := class.NewExtOut(name, env.hw, 0, n, env.idx, attrs)
		if err != nil {
			return nil, err
		}
		cls = e
	case "bit_mux":
		m, err := class.NewMux(name, env.mux.BitMux, env.hw, 0, n, env.idx, false, attrs)
		if err != nil {
			return nil, err
		}
		cls = m
	case "pos_mux":
		m, err := class.NewMux(name, env.mux.PosMux, env.hw, 0, n, env.idx, true, attrs)
		if err != nil {
			return nil, err
		}
		cls = m
	case "table":
		long := len(args) > 0 && args[0] == "long"
		fields, rowWidth := loadTableSubFields(pr)
		if err := table.ValidateSubFields(fields, rowWidth*32); err != nil {
			return nil, err
		}
		tc := class.NewTable(name, env.hw, 0, n, rowWidth, long, env.idx)
		tc.SetSubFields(fields)
		cls = tc
	default:
		return nil, fmt.Errorf("config line %d: unknown class %q", line.Number, classTok)
	}

	return &Field{Name: name, Type: classTok, Class: cls, Attrs: attrs}, nil
}

// fieldType resolves a param/read/write field's type argument, handling
// enum (a static label list given inline, or a dynamic label set
// consumed from an indented "name = index" sub-block when no inline
// list is given — §4.3, §4.10) alongside the plain Factory-registered
// types.
func fieldType(pr *parseutil.IndentReader, line parseutil.Line, args []string, env configEnv) (types.Type, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("config line %d: expected a type argument", line.Number)
	}
	name := args[0]
	if name == "enum" {
		e := hashtable.NewDynamicEnum()
		if len(args) > 1 {
			for i, label := range args[1:] {
				if err := e.Add(label, i); err != nil {
					return nil, fmt.Errorf("config line %d: %w", line.Number, err)
				}
			}
		} else if err := loadEnumSubBlock(pr, e); err != nil {
			return nil, err
		}
		return &types.EnumType{Enum: e}, nil
	}
	return types.New(name)
}

// loadEnumSubBlock consumes a field's depth-2 dynamic enumeration
// entries, each of the form "name = index" (or the bare "name index"
// shorthand), in ascending index order.
func loadEnumSubBlock(pr *parseutil.IndentReader, e *hashtable.Enum) error {
	for {
		peek, err := pr.Peek()
		if err != nil || peek.Depth < 2 {
			return nil
		}
		line, _ := pr.Next()
		toks := line.Fields()

		var label, idxTok string
		switch {
		case len(toks) == 3 && toks[1] == "=":
			label, idxTok = toks[0], toks[2]
		case len(toks) == 2:
			label, idxTok = toks[0], toks[1]
		default:
			return fmt.Errorf("config line %d: expected \"name = index\"", line.Number)
		}

		idx, err := strconv.Atoi(idxTok)
		if err != nil {
			return fmt.Errorf("config line %d: invalid enumeration index %q", line.Number, idxTok)
		}
		if err := e.Add(label, idx); err != nil {
			return fmt.Errorf("config line %d: %w", line.Number, err)
		}
	}
}

// loadTableSubFields consumes a table field's depth-2 sub-field lines
// of the form "hi:lo name [enum]".
func loadTableSubFields(pr *parseutil.IndentReader) ([]table.SubField, int) {
	var fields []table.SubField
	maxBit := -1
	for {
		peek, err := pr.Peek()
		if err != nil || peek.Depth < 2 {
			break
		}
		line, _ := pr.Next()
		toks := line.Fields()
		if len(toks) < 2 {
			continue
		}
		hi, lo, ok := parseBitRange(toks[0])
		if !ok {
			continue
		}
		fields = append(fields, table.SubField{Hi: hi, Lo: lo, Name: toks[1]})
		if hi > maxBit {
			maxBit = hi
		}
	}
	rowWidth := 1
	if maxBit >= 0 {
		rowWidth = maxBit/32 + 1
	}
	return fields, rowWidth
}

func parseBitRange(s string) (hi, lo int, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			h, err1 := strconv.Atoi(s[:i])
			l, err2 := strconv.Atoi(s[i+1:])
			if err1 != nil || err2 != nil {
				return 0, 0, false
			}
			return h, l, true
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, 0, false
	}
	return v, v, true
}
