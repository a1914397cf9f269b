package dataoptions

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/pandablocks/pandad/internal/database"
)

// CapturedField describes one field armed for capture, as gathered by
// CapturedFields.
type CapturedField struct {
	Name    string
	Type    string
	Capture string
	Scale   string
	Offset  string
	Units   string
}

// CapturedFields walks every block/field in db and returns those whose
// CAPTURE attribute currently reads something other than "No", in
// block declaration order (the same order *CAPTURE? lists them in).
func CapturedFields(db *database.Database) ([]CapturedField, error) {
	var out []CapturedField
	for _, b := range db.Blocks() {
		for _, f := range b.Fields() {
			a, ok := f.Attrs.Get("CAPTURE")
			if !ok || a.Format == nil {
				continue
			}
			for n := 0; n < b.Count; n++ {
				mode, err := a.Format(n)
				if err != nil {
					return nil, err
				}
				if mode == "No" {
					continue
				}
				cf := CapturedField{
					Name:    database.InstanceName(b.Name, b.Count, n) + "." + f.Name,
					Type:    f.Type,
					Capture: mode,
				}
				if sc, ok := f.Attrs.Get("SCALE"); ok && sc.Format != nil {
					if v, err := sc.Format(n); err == nil {
						cf.Scale = v
					}
				}
				if off, ok := f.Attrs.Get("OFFSET"); ok && off.Format != nil {
					if v, err := off.Format(n); err == nil {
						cf.Offset = v
					}
				}
				if units, ok := f.Attrs.Get("UNITS"); ok && units.Format != nil {
					if v, err := units.Format(n); err == nil {
						cf.Units = v
					}
				}
				out = append(out, cf)
			}
		}
	}
	return out, nil
}

// xmlHeader / xmlField mirror the colon-indented header's content as an
// XML document, for clients that asked for the XML alias.
type xmlHeader struct {
	XMLName xml.Name   `xml:"header"`
	Fields  []xmlField `xml:"field"`
}

type xmlField struct {
	Name    string `xml:"name,attr"`
	Type    string `xml:"type,attr"`
	Capture string `xml:"capture,attr"`
	Scale   string `xml:"scale,attr,omitempty"`
	Offset  string `xml:"offset,attr,omitempty"`
	Units   string `xml:"units,attr,omitempty"`
}

// RenderHeader produces the header the core sends before any sample
// data, honoring opt.OmitHeader and opt.XMLHeader. It returns "" when
// the caller asked to omit it.
func RenderHeader(opt Options, fields []CapturedField) (string, error) {
	if opt.OmitHeader {
		return "", nil
	}
	scaled := opt.Process == Scaled
	if opt.XMLHeader {
		return renderXMLHeader(fields, scaled)
	}
	return renderTextHeader(fields, scaled), nil
}

func renderTextHeader(fields []CapturedField, scaled bool) string {
	var b strings.Builder
	b.WriteString("fields:\n")
	for _, f := range fields {
		fmt.Fprintf(&b, "  %s %s %s\n", f.Name, f.Type, f.Capture)
		if !scaled {
			continue
		}
		if f.Scale != "" {
			fmt.Fprintf(&b, "    scale: %s\n", f.Scale)
		}
		if f.Offset != "" {
			fmt.Fprintf(&b, "    offset: %s\n", f.Offset)
		}
		if f.Units != "" {
			fmt.Fprintf(&b, "    units: %s\n", f.Units)
		}
	}
	return b.String()
}

func renderXMLHeader(fields []CapturedField, scaled bool) (string, error) {
	h := xmlHeader{Fields: make([]xmlField, len(fields))}
	for i, f := range fields {
		xf := xmlField{Name: f.Name, Type: f.Type, Capture: f.Capture}
		if scaled {
			xf.Scale, xf.Offset, xf.Units = f.Scale, f.Offset, f.Units
		}
		h.Fields[i] = xf
	}
	out, err := xml.MarshalIndent(h, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}
