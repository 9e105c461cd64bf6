// Package output writes machine-readable dumps of applied decorations.
package output

import (
	"sort"

	"github.com/phyten/taglight/internal/paint"
	"github.com/phyten/taglight/internal/textstyle"
)

// Kind classifies a decoration by what it paints.
const (
	KindText  = "text"
	KindGlass = "glass"
	KindMeta  = "meta"
)

// Record is one applied range. Lines and columns are 1-based; columns count
// runes.
type Record struct {
	File       string          `json:"file"`
	Line       int             `json:"line"`
	Column     int             `json:"column"`
	EndLine    int             `json:"end_line"`
	EndColumn  int             `json:"end_column"`
	Kind       string          `json:"kind"`
	Handle     int             `json:"handle"`
	Text       string          `json:"text"`
	WholeLine  bool            `json:"whole_line,omitempty"`
	Style      textstyle.Theme `json:"style"`
	Radius     string          `json:"border_radius,omitempty"`
	Gutter     string          `json:"gutter,omitempty"`
	Lane       int             `json:"lane,omitempty"`
	RulerColor string          `json:"ruler_color,omitempty"`
}

// Records flattens the live applications of a surface, ordered by position
// and then by handle.
func Records(file string, s *paint.Surface, dark bool) []Record {
	doc := s.Doc()
	var out []Record
	for _, app := range s.Applications() {
		opts := app.Handle.Options()
		style := opts.Light
		if dark {
			style = opts.Dark
		}
		kind := KindText
		switch {
		case opts.GutterIconPath != "" || opts.OverviewRulerLane != 0:
			kind = KindMeta
		case !style.HasTextEffect() && style.HasPanel():
			kind = KindGlass
		}
		for _, r := range app.Ranges {
			out = append(out, Record{
				File:       file,
				Line:       r.Start.Line + 1,
				Column:     r.Start.Character + 1,
				EndLine:    r.End.Line + 1,
				EndColumn:  r.End.Character + 1,
				Kind:       kind,
				Handle:     app.Handle.ID(),
				Text:       doc.Slice(r.Start.Offset, r.End.Offset),
				WholeLine:  opts.IsWholeLine,
				Style:      style,
				Radius:     opts.BorderRadius,
				Gutter:     opts.GutterIconPath,
				Lane:       opts.OverviewRulerLane,
				RulerColor: opts.OverviewRulerColor,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Handle < b.Handle
	})
	return out
}
