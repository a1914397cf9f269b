package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/class"
	"github.com/pandablocks/pandad/internal/database"
)

// identity is the fixed string *IDN? reports. Real hardware embeds a
// firmware build; the simulator has none, so this names the software
// alone.
const identity = "PANDAD-SIM 1.0"

func dispatchSystem(ctx context.Context, rt *Runtime, sess *Session, line string) Result {
	head, action, err := splitCommand(line)
	if err != nil {
		return errResult(err)
	}
	name := strings.TrimPrefix(head, "*")

	switch {
	case name == "IDN":
		if action.Kind != ActionRead {
			return errResult(ErrUnknownCommand)
		}
		return okValue(identity)
	case name == "BLOCKS":
		if action.Kind != ActionRead {
			return errResult(ErrUnknownCommand)
		}
		return systemBlocks(rt)
	case name == "POSITIONS":
		if action.Kind != ActionRead {
			return errResult(ErrUnknownCommand)
		}
		return systemPositions(ctx, rt)
	case name == "CHANGES" || strings.HasPrefix(name, "CHANGES."):
		if action.Kind != ActionRead {
			return errResult(ErrUnknownCommand)
		}
		return systemChanges(ctx, rt, sess, name)
	case name == "CAPTURE":
		return systemCapture(rt, action)
	default:
		return errResult(ErrUnknownCommand)
	}
}

func systemBlocks(rt *Runtime) Result {
	var lines []string
	for _, b := range rt.DB.Blocks() {
		if b.Count == 1 {
			lines = append(lines, b.Name)
		} else {
			lines = append(lines, fmt.Sprintf("%s %d", b.Name, b.Count))
		}
	}
	return multi(lines)
}

func systemPositions(ctx context.Context, rt *Runtime) Result {
	if rt.DB.Bus != nil {
		if err := rt.DB.Bus.RefreshPositions(ctx, rt.Index); err != nil {
			return errResult(err)
		}
	}
	var lines []string
	for _, b := range rt.DB.Blocks() {
		for _, f := range b.Fields() {
			p, ok := f.Class.(*class.PosOut)
			if !ok {
				continue
			}
			for n := 0; n < b.Count; n++ {
				v, err := p.Get(n)
				if err != nil {
					return errResult(err)
				}
				lines = append(lines, fmt.Sprintf("%s.%s=%s", database.InstanceName(b.Name, b.Count, n), f.Name, v))
			}
		}
	}
	return multi(lines)
}

func systemCapture(rt *Runtime, action Action) Result {
	switch action.Kind {
	case ActionWrite:
		rt.SetCapturing(action.Value != "0")
		return ok()
	case ActionRead:
		var lines []string
		for _, b := range rt.DB.Blocks() {
			for _, f := range b.Fields() {
				a, ok := f.Attrs.Get("CAPTURE")
				if !ok || a.Format == nil {
					continue
				}
				for n := 0; n < b.Count; n++ {
					mode, err := a.Format(n)
					if err != nil {
						return errResult(err)
					}
					if mode == "No" {
						continue
					}
					lines = append(lines, fmt.Sprintf("%s.%s=%s", database.InstanceName(b.Name, b.Count, n), f.Name, mode))
				}
			}
		}
		return multi(lines)
	default:
		return errResult(ErrUnknownCommand)
	}
}

// systemChanges implements *CHANGES? and *CHANGES.<group>? (§4.5). Per
// §8 scenario 4, a poll with nothing to report renders literally
// "OK\n.\n" rather than the bare ".\n" an ordinary empty multi-line read
// would produce; changesEmpty is the dedicated sentinel for that.
func systemChanges(ctx context.Context, rt *Runtime, sess *Session, name string) Result {
	var families []changeset.Family
	if name == "CHANGES" {
		families = changeset.Families()
	} else {
		group := strings.TrimPrefix(name, "CHANGES.")
		f, ok := changeset.ParseFamily(group)
		if !ok {
			return errResult(ErrUnknownCommand)
		}
		families = []changeset.Family{f}
	}

	needsBits, needsPos := false, false
	for _, f := range families {
		switch f {
		case changeset.Bits:
			needsBits = true
		case changeset.Position:
			needsPos = true
		}
	}
	if needsBits && rt.DB.Bus != nil {
		if err := rt.DB.Bus.RefreshBits(ctx, rt.Index); err != nil {
			return errResult(err)
		}
	}
	if needsPos && rt.DB.Bus != nil {
		if err := rt.DB.Bus.RefreshPositions(ctx, rt.Index); err != nil {
			return errResult(err)
		}
	}

	var lines []string
	for _, f := range families {
		report := sess.report(f)
		lines = append(lines, collectFamilyChanges(rt, f, report)...)
		sess.setReport(f, rt.Index.Current())
	}

	if len(lines) == 0 {
		return changesEmpty()
	}
	return Result{Kind: ResultMulti, Lines: lines}
}

func collectFamilyChanges(rt *Runtime, family changeset.Family, report uint64) []string {
	var lines []string
	for _, b := range rt.DB.Blocks() {
		for _, f := range b.Fields() {
			if family == changeset.Attr {
				lines = append(lines, collectAttrChanges(rt, b, f, report)...)
				continue
			}
			cs, ok := f.Class.(class.ChangeSetter)
			if !ok || cs.Family() != family {
				continue
			}
			changed := make([]bool, b.Count)
			cs.ChangeSet(report, changed)
			for n, did := range changed {
				if !did {
					continue
				}
				name := database.InstanceName(b.Name, b.Count, n) + "." + f.Name
				if family == changeset.Table {
					lines = append(lines, name)
					continue
				}
				if g, ok := f.Class.(class.Getter); ok {
					v, err := g.Get(n)
					if err == nil {
						lines = append(lines, name+"="+v)
						continue
					}
				}
				lines = append(lines, name)
			}
		}
	}
	return lines
}

func collectAttrChanges(rt *Runtime, b *database.Block, f *database.Field, report uint64) []string {
	var lines []string
	for _, name := range f.Attrs.Names() {
		a, _ := f.Attrs.Get(name)
		if !a.InChangeSet {
			continue
		}
		for n := 0; n < b.Count; n++ {
			changed, err := a.Changed(n, report, rt.Index)
			if err != nil || !changed {
				continue
			}
			v, err := a.Format(n)
			if err != nil {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s.%s.%s=%s", database.InstanceName(b.Name, b.Count, n), f.Name, a.Name, v))
		}
	}
	return lines
}
