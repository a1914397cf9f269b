package dispatch

import "github.com/pandablocks/pandad/internal/changeset"

// Session is the per-connection state *CHANGES? needs: one report
// index per change-set family, advanced each time that family is
// polled (§4.5). The zero value is correct for a fresh connection —
// every family starts unreported, so the first poll reports everything
// with a non-zero update index.
type Session struct {
	reports [6]uint64
}

// NewSession returns a session with every family unreported.
func NewSession() *Session { return &Session{} }

func (s *Session) report(f changeset.Family) uint64 { return s.reports[f] }

func (s *Session) setReport(f changeset.Family, v uint64) { s.reports[f] = v }
