package paint

import (
	"sync"

	"github.com/phyten/taglight/internal/decoration"
	"github.com/phyten/taglight/internal/document"
	"github.com/phyten/taglight/internal/highlight"
	"github.com/phyten/taglight/internal/textstyle"
)

// Application is one handle with the ranges currently applied for it.
type Application struct {
	Handle *Handle
	Ranges []document.Range
}

// Surface is an editor over one document. It implements highlight.Editor.
type Surface struct {
	mu     sync.Mutex
	doc    *document.Document
	column int
	order  []*Handle
	ranges map[*Handle][]document.Range
}

func NewSurface(doc *document.Document) *Surface {
	return &Surface{doc: doc, ranges: make(map[*Handle][]document.Range)}
}

// WithColumn sets the view column used to tell editors of one document apart.
func (s *Surface) WithColumn(column int) *Surface {
	s.column = column
	return s
}

func (s *Surface) Document() highlight.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Doc returns the concrete document.
func (s *Surface) Doc() *document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// SetDocument swaps the text shown. Applied decorations stay until the next
// highlight pass replaces them.
func (s *Surface) SetDocument(doc *document.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
}

func (s *Surface) ViewColumn() int { return s.column }

// SetDecorations replaces the ranges of h. An empty list removes h.
// Handles from other hosts are ignored.
func (s *Surface) SetDecorations(h decoration.Handle, rs []document.Range) {
	handle, ok := h.(*Handle)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(rs) == 0 {
		if _, ok := s.ranges[handle]; ok {
			delete(s.ranges, handle)
			for i, o := range s.order {
				if o == handle {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		}
		return
	}
	if _, ok := s.ranges[handle]; !ok {
		s.order = append(s.order, handle)
	}
	s.ranges[handle] = append([]document.Range(nil), rs...)
}

// Reset drops every application.
func (s *Surface) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.ranges = make(map[*Handle][]document.Range)
}

// Applications lists the live applications in the order they were first
// applied.
func (s *Surface) Applications() []Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Application, 0, len(s.order))
	for _, h := range s.order {
		if h.Disposed() {
			continue
		}
		out = append(out, Application{Handle: h, Ranges: s.ranges[h]})
	}
	return out
}

// Ruler is an overview ruler mark.
type Ruler struct {
	Lane  int
	Color string
}

// Span is a run of characters in one line sharing a style. Start and End
// count runes from the line start.
type Span struct {
	Start int
	End   int
	Text  string
	Style textstyle.Theme
}

// Line is one laid-out document line.
type Line struct {
	Number int
	Text   string
	Spans  []Span
	Panel  textstyle.Theme
	Radius string
	Gutter string
	Ruler  *Ruler
}

// Layout resolves the applications into styled lines for the light or dark
// theme. Later applications paint over earlier ones.
func (s *Surface) Layout(dark bool) []Line {
	apps := s.Applications()
	doc := s.Doc()

	lines := make([]Line, doc.LineCount())
	styles := make([][]textstyle.Theme, len(lines))
	for i := range lines {
		text := []rune(doc.Line(i))
		lines[i] = Line{Number: i + 1, Text: string(text)}
		styles[i] = make([]textstyle.Theme, len(text))
	}

	for _, app := range apps {
		opts := app.Handle.Options()
		theme := opts.Light
		if dark {
			theme = opts.Dark
		}
		for _, r := range app.Ranges {
			first, last := r.Start.Line, r.End.Line
			if first < 0 || first >= len(lines) {
				continue
			}
			if last >= len(lines) {
				last = len(lines) - 1
			}
			if opts.GutterIconPath != "" {
				lines[first].Gutter = opts.GutterIconPath
			}
			if opts.OverviewRulerLane != 0 {
				lines[first].Ruler = &Ruler{Lane: opts.OverviewRulerLane, Color: opts.OverviewRulerColor}
			}
			if opts.IsWholeLine {
				for l := first; l <= last; l++ {
					lines[l].Panel = lines[l].Panel.Override(theme)
					if opts.BorderRadius != "" {
						lines[l].Radius = opts.BorderRadius
					}
				}
				continue
			}
			if theme == (textstyle.Theme{}) {
				continue
			}
			for l := first; l <= last; l++ {
				row := styles[l]
				from, to := 0, len(row)
				if l == first {
					from = r.Start.Character
				}
				if l == last {
					to = r.End.Character
				}
				if from < 0 {
					from = 0
				}
				if to > len(row) {
					to = len(row)
				}
				for c := from; c < to; c++ {
					row[c] = row[c].Override(theme)
				}
			}
		}
	}

	for i := range lines {
		lines[i].Spans = runs([]rune(lines[i].Text), styles[i])
	}
	return lines
}

// runs collapses per-character styles into spans.
func runs(text []rune, styles []textstyle.Theme) []Span {
	var out []Span
	for start := 0; start < len(text); {
		end := start + 1
		for end < len(text) && styles[end] == styles[start] {
			end++
		}
		out = append(out, Span{Start: start, End: end, Text: string(text[start:end]), Style: styles[start]})
		start = end
	}
	return out
}
