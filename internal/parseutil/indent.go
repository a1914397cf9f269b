package parseutil

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Line is one non-blank, comment-stripped line from an indented database
// file, together with the depth its leading whitespace implies relative to
// the file's previous lines.
type Line struct {
	Depth  int
	Text   string
	Number int
}

// Fields splits the line's text on whitespace.
func (l Line) Fields() []string {
	return Fields(l.Text)
}

// IndentReader drives a depth-tracking scan over an indented text file.
// Comments begin with '#'; leading whitespace is significant but its
// absolute width is not — each run of lines at a new, deeper indentation
// than its parent opens one new Depth level, mirroring the two-level
// "block / field / attribute" (config) and one-level "block / field"
// (registers, description) grammars of §6.
type IndentReader struct {
	sc     *bufio.Scanner
	lineNo int
	stack  []string // indentation prefixes seen at each open depth
	peeked *Line
	peekOK bool
	peekErr error
	done   bool
}

// NewIndentReader wraps r for indent-tracked scanning.
func NewIndentReader(r io.Reader) *IndentReader {
	return &IndentReader{sc: bufio.NewScanner(r)}
}

// Next returns the next non-blank, non-comment line with its Depth, or
// io.EOF once the file is exhausted.
func (p *IndentReader) Next() (Line, error) {
	if p.peekOK {
		l := *p.peeked
		err := p.peekErr
		p.peekOK = false
		p.peeked = nil
		p.peekErr = nil
		return l, err
	}
	return p.next()
}

// Peek returns the next line without consuming it.
func (p *IndentReader) Peek() (Line, error) {
	if !p.peekOK {
		l, err := p.next()
		p.peeked = &l
		p.peekErr = err
		p.peekOK = true
	}
	return *p.peeked, p.peekErr
}

func (p *IndentReader) next() (Line, error) {
	if p.done {
		return Line{}, io.EOF
	}
	for p.sc.Scan() {
		p.lineNo++
		raw := p.sc.Text()
		if hash := strings.IndexByte(raw, '#'); hash >= 0 {
			raw = raw[:hash]
		}
		trimmed := strings.TrimRight(raw, " \t\r")
		body := strings.TrimLeft(trimmed, " \t")
		if body == "" {
			continue
		}
		prefix := trimmed[:len(trimmed)-len(body)]
		depth := p.depthFor(prefix)
		return Line{Depth: depth, Text: body, Number: p.lineNo}, nil
	}
	p.done = true
	if err := p.sc.Err(); err != nil {
		return Line{}, fmt.Errorf("line %d: %w", p.lineNo, err)
	}
	return Line{}, io.EOF
}

// depthFor maintains a stack of indentation prefixes observed so far,
// mapping a new prefix onto the existing depth if it matches one already
// open, onto one level deeper if it strictly extends the top of the
// stack, or popping back to the matching ancestor otherwise.
func (p *IndentReader) depthFor(prefix string) int {
	for len(p.stack) > 0 && !strings.HasPrefix(prefix, p.stack[len(p.stack)-1]) {
		p.stack = p.stack[:len(p.stack)-1]
	}
	if len(p.stack) == 0 {
		if prefix == "" {
			return 0
		}
		p.stack = append(p.stack, prefix)
		return 1
	}
	if prefix == p.stack[len(p.stack)-1] {
		return len(p.stack)
	}
	p.stack = append(p.stack, prefix)
	return len(p.stack)
}
