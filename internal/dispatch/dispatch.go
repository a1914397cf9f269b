package dispatch

import (
	"context"
	"strings"

	"github.com/pandablocks/pandad/internal/class"
	"github.com/pandablocks/pandad/internal/database"
)

// Dispatch parses and executes one command line (§4.1). line must not
// include its trailing newline. sess carries this connection's
// per-family change-set report indices, advanced by *CHANGES? calls.
func Dispatch(ctx context.Context, rt *Runtime, sess *Session, line string) Result {
	if strings.HasPrefix(line, "*") {
		return dispatchSystem(ctx, rt, sess, line)
	}

	head, action, err := splitCommand(line)
	if err != nil {
		return errResult(err)
	}
	entity, err := ParseEntity(head)
	if err != nil {
		return errResult(err)
	}
	return dispatchEntity(ctx, rt, entity, action)
}

func dispatchEntity(ctx context.Context, rt *Runtime, e Entity, action Action) Result {
	block, ok := rt.DB.Block(e.Block)
	if !ok {
		return errResult(ErrNoSuchBlock)
	}

	if e.Field == "" && !e.FieldStar {
		return errResult(ErrMalformedFieldList)
	}
	if e.FieldStar {
		if action.Kind != ActionRead {
			return errResult(ErrMalformedFieldList)
		}
		names := make([]string, 0, len(block.Fields()))
		for _, f := range block.Fields() {
			names = append(names, f.Name)
		}
		return multi(names)
	}

	n, err := resolveInstance(block, e)
	if err != nil {
		return errResult(err)
	}

	field, ok := block.Field(e.Field)
	if !ok {
		return errResult(ErrNoSuchField)
	}

	if e.AttrStar {
		if action.Kind != ActionRead {
			return errResult(ErrMalformedFieldList)
		}
		return multi(field.Attrs.Names())
	}

	if e.Attribute != "" {
		return dispatchAttribute(rt, field, e.Attribute, n, action)
	}
	return dispatchClass(ctx, field.Class, n, action)
}

func resolveInstance(block *database.Block, e Entity) (int, error) {
	if !e.HasIndex {
		if block.Count != 1 {
			return 0, ErrBlockIndexTooHigh
		}
		return 0, nil
	}
	if e.Instance < 0 || e.Instance >= block.Count {
		return 0, ErrBlockIndexTooHigh
	}
	return e.Instance, nil
}

func dispatchAttribute(rt *Runtime, field *database.Field, name string, n int, action Action) Result {
	a, ok := field.Attrs.Get(name)
	if !ok {
		return errResult(ErrMetaFieldNotFound)
	}

	switch action.Kind {
	case ActionRead:
		switch {
		case a.GetMany != nil:
			lines, err := a.GetMany(n)
			if err != nil {
				return errResult(err)
			}
			return multi(lines)
		case a.Format != nil:
			v, err := a.Format(n)
			if err != nil {
				return errResult(err)
			}
			return okValue(v)
		default:
			return errResult(ErrFieldNotReadable)
		}
	case ActionWrite:
		if a.Put == nil {
			return errResult(ErrFieldNotWriteable)
		}
		if name == "CAPTURE" && rt.Capturing() {
			return errResult(ErrCaptureInProgress)
		}
		if err := a.Put(n, action.Value); err != nil {
			return errResult(err)
		}
		return ok()
	default:
		return errResult(ErrFieldIsNotATable)
	}
}

func dispatchClass(ctx context.Context, c class.Class, n int, action Action) Result {
	switch action.Kind {
	case ActionRead:
		if r, ok := c.(class.Refresher); ok {
			if err := r.Refresh(ctx, n); err != nil {
				return errResult(err)
			}
		}
		switch g := c.(type) {
		case class.MultiGetter:
			lines, err := g.GetMany(n)
			if err != nil {
				return errResult(err)
			}
			return multi(lines)
		case class.Getter:
			v, err := g.Get(n)
			if err != nil {
				return errResult(err)
			}
			return okValue(v)
		default:
			return errResult(ErrFieldNotReadable)
		}
	case ActionWrite:
		p, ok := c.(class.Putter)
		if !ok {
			return errResult(ErrFieldNotWriteable)
		}
		if err := p.Put(n, action.Value); err != nil {
			return errResult(err)
		}
		return ok()
	case ActionTableWrite:
		t, ok := c.(class.TablePutter)
		if !ok {
			return errResult(ErrFieldIsNotATable)
		}
		w, err := t.PutTable(n, action.Append, action.Binary)
		if err != nil {
			return errResult(err)
		}
		return Result{Kind: ResultTableWrite, Writer: w}
	default:
		return errResult(ErrUnknownCommand)
	}
}
