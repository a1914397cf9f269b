package dispatch

import (
	"strings"

	"github.com/pandablocks/pandad/internal/table"
)

// ResultKind distinguishes the handful of wire shapes a command can
// produce (§4.1).
type ResultKind int

const (
	ResultOK ResultKind = iota
	ResultOKValue
	ResultMulti
	ResultChangesEmpty
	ResultErr
	ResultTableWrite
)

// Result is what Dispatch returns. The server loop renders OK/OKValue/
// Multi/Err directly with Render; a ResultTableWrite instead hands back
// an open table.Writer that the loop must feed subsequent payload lines
// into, then Close once the client's blank terminator line arrives.
type Result struct {
	Kind  ResultKind
	Value string
	Lines []string
	Err   error

	Writer *table.Writer
}

func ok() Result                  { return Result{Kind: ResultOK} }
func okValue(v string) Result     { return Result{Kind: ResultOKValue, Value: v} }
func multi(lines []string) Result { return Result{Kind: ResultMulti, Lines: lines} }
func errResult(err error) Result  { return Result{Kind: ResultErr, Err: err} }

// changesEmpty is *CHANGES?'s own empty-result sentinel (§8 scenario 4):
// unlike every other multi-line read, a change poll with nothing to
// report renders "OK\n.\n" rather than a bare ".\n".
func changesEmpty() Result { return Result{Kind: ResultChangesEmpty} }

// Render produces the exact wire text for every Result kind except
// ResultTableWrite, whose response is deferred until the writer closes
// (the server writes it; see streamTableWrite in internal/server).
func (r Result) Render() string {
	switch r.Kind {
	case ResultOK:
		return "OK\n"
	case ResultOKValue:
		return "OK =" + r.Value + "\n"
	case ResultMulti:
		var b strings.Builder
		for _, l := range r.Lines {
			b.WriteString("!")
			b.WriteString(l)
			b.WriteString("\n")
		}
		b.WriteString(".\n")
		return b.String()
	case ResultChangesEmpty:
		return "OK\n.\n"
	case ResultErr:
		return "ERR " + r.Err.Error() + "\n"
	default:
		return ""
	}
}
