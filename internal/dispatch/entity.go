package dispatch

import (
	"strings"

	"github.com/pandablocks/pandad/internal/parseutil"
)

// Entity is a parsed `block[index].field[.attribute]` reference (§4.1's
// entity grammar), before it has been resolved against a database.
type Entity struct {
	Block    string
	Instance int // 0-based; meaningful only when HasIndex
	HasIndex bool

	Field     string
	FieldStar bool // a bare ".*" after the block: list fields

	Attribute string
	AttrStar  bool // a bare ".*" after the field: list attributes
}

// ParseEntity parses the non-system half of the command grammar:
//
//	entity := name [index] ("." ( "*" | name ( "." ( "*" | name ) )? ))?
//
// index is an unsigned decimal directly appended to the block name with
// no separator (e.g. "COUNTER3"); ParseEntity splits it off as the
// maximal trailing run of digits, leaving the block name as whatever
// precedes it. A bare "*" in the field or attribute position requests
// list enumeration.
func ParseEntity(s string) (Entity, error) {
	parts := strings.SplitN(s, ".", 3)
	if parts[0] == "" {
		return Entity{}, ErrUnknownCommand
	}

	block, instance, hasIndex, err := splitBlockIndex(parts[0])
	if err != nil {
		return Entity{}, err
	}
	e := Entity{Block: block, Instance: instance, HasIndex: hasIndex}

	if len(parts) == 1 {
		return e, nil
	}
	if parts[1] == "" {
		return Entity{}, ErrUnknownCommand
	}
	if parts[1] == "*" {
		if len(parts) != 2 {
			return Entity{}, ErrUnexpectedText
		}
		e.FieldStar = true
		return e, nil
	}
	field, err := parseutil.Ident(parts[1])
	if err != nil {
		return Entity{}, ErrUnknownCommand
	}
	e.Field = field

	if len(parts) == 2 {
		return e, nil
	}
	if parts[2] == "*" {
		e.AttrStar = true
		return e, nil
	}
	attr, err := parseutil.Ident(parts[2])
	if err != nil {
		return Entity{}, ErrUnknownCommand
	}
	e.Attribute = attr
	return e, nil
}

// splitBlockIndex separates a "name[index]" token into its block-name
// and 0-based instance index. A token with no trailing digits has no
// index at all (HasIndex false); an explicit index is written 1-based
// on the wire (COUNTER1 is instance 0), matching database.InstanceName.
func splitBlockIndex(tok string) (name string, instance int, hasIndex bool, err error) {
	i := len(tok)
	for i > 0 && tok[i-1] >= '0' && tok[i-1] <= '9' {
		i--
	}
	if i == len(tok) || i == 0 {
		ident, err := parseutil.Ident(tok)
		if err != nil {
			return "", 0, false, ErrUnknownCommand
		}
		return ident, 0, false, nil
	}
	digits := tok[i:]
	ident, err := parseutil.Ident(tok[:i])
	if err != nil {
		return "", 0, false, ErrUnknownCommand
	}
	n, perr := parseutil.Int(digits)
	if perr != nil || n < 1 {
		return "", 0, false, ErrUnknownCommand
	}
	return ident, n - 1, true, nil
}
