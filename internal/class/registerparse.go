package class

import (
	"fmt"

	"github.com/pandablocks/pandad/internal/parseutil"
)

// parseSingleRegister parses the register-spec tail shared by the
// simple classes (param, read, write, pos_mux, bit_mux): a single
// decimal or 0x-prefixed register offset.
func parseSingleRegister(fields []string) (uint32, error) {
	if len(fields) != 1 {
		return 0, fmt.Errorf("expected a single register number, got %d fields", len(fields))
	}
	return parseutil.Uint32(fields[0])
}

// parseTimeRegisters parses the time class's "low high [> min]"
// register-spec tail.
func parseTimeRegisters(fields []string) (low, high uint32, min *uint32, err error) {
	if len(fields) != 2 && len(fields) != 4 {
		return 0, 0, nil, fmt.Errorf("expected \"low high\" or \"low high > min\", got %d fields", len(fields))
	}
	low, err = parseutil.Uint32(fields[0])
	if err != nil {
		return 0, 0, nil, err
	}
	high, err = parseutil.Uint32(fields[1])
	if err != nil {
		return 0, 0, nil, err
	}
	if len(fields) == 4 {
		if fields[2] != ">" {
			return 0, 0, nil, fmt.Errorf("expected '>' before minimum value, got %q", fields[2])
		}
		m, err := parseutil.Uint32(fields[3])
		if err != nil {
			return 0, 0, nil, err
		}
		min = &m
	}
	return low, high, min, nil
}

// parseBusIndices parses a bit_out/pos_out register-spec tail: a list
// of bus indices per instance, optionally followed by "/" and a second
// list for the extension bus.
func parseBusIndices(fields []string) (primary, extension []int, err error) {
	slash := -1
	for i, f := range fields {
		if f == "/" {
			slash = i
			break
		}
	}
	head := fields
	if slash >= 0 {
		head = fields[:slash]
	}
	primary, err = parseIntList(head)
	if err != nil {
		return nil, nil, err
	}
	if slash >= 0 {
		extension, err = parseIntList(fields[slash+1:])
		if err != nil {
			return nil, nil, err
		}
	}
	return primary, extension, nil
}

func parseIntList(fields []string) ([]int, error) {
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := parseutil.Uint32(f)
		if err != nil {
			return nil, err
		}
		out = append(out, int(v))
	}
	return out, nil
}
