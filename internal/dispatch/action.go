package dispatch

import "strings"

// ActionKind selects which of the three command forms (§4.1) a line
// requests.
type ActionKind int

const (
	ActionRead ActionKind = iota
	ActionWrite
	ActionTableWrite
)

// Action is the parsed suffix of a command, after its entity or system
// name.
type Action struct {
	Kind ActionKind

	Value string // ActionWrite: the raw value text

	Append   bool // ActionTableWrite: "<<" rather than "<"
	Binary   bool // ActionTableWrite: a "B" payload marker was present
	Count    int  // ActionTableWrite: the word count after "B", if given
	HasCount bool
}

// splitCommand finds the action character ('?', '=' or '<') in line and
// parses everything from there on, returning the head (entity or system
// name) separately.
func splitCommand(line string) (head string, action Action, err error) {
	idx := strings.IndexAny(line, "?=<")
	if idx < 0 {
		return "", Action{}, ErrUnknownCommand
	}
	head = line[:idx]
	rest := line[idx+1:]

	switch line[idx] {
	case '?':
		if rest != "" {
			return "", Action{}, ErrUnexpectedText
		}
		return head, Action{Kind: ActionRead}, nil
	case '=':
		return head, Action{Kind: ActionWrite, Value: rest}, nil
	case '<':
		a := Action{Kind: ActionTableWrite}
		if strings.HasPrefix(rest, "<") {
			a.Append = true
			rest = rest[1:]
		}
		if strings.HasPrefix(rest, "B") {
			a.Binary = true
			digits := rest[1:]
			rest = ""
			if digits != "" {
				n, perr := parseCount(digits)
				if perr != nil {
					return "", Action{}, ErrUnexpectedText
				}
				a.Count = n
				a.HasCount = true
			}
		}
		if rest != "" {
			return "", Action{}, ErrUnexpectedText
		}
		return head, a, nil
	}
	panic("unreachable")
}

func parseCount(s string) (int, error) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrUnexpectedText
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}
