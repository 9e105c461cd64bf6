// Package ansi renders laid-out documents to a terminal with SGR styles.
package ansi

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/phyten/taglight/internal/colorutil"
	"github.com/phyten/taglight/internal/paint"
	"github.com/phyten/taglight/internal/termcolor"
	"github.com/phyten/taglight/internal/textstyle"
	"github.com/phyten/taglight/internal/textutil"
)

const gutterMark = "●"

var (
	darkBase  = colorutil.RGB{R: 30, G: 30, B: 30}
	lightBase = colorutil.RGB{R: 255, G: 255, B: 255}
)

type Options struct {
	Dark     bool
	Colors   bool
	Profile  termcolor.Profile
	Gutter   bool
	TabWidth int
}

func (o Options) base() colorutil.RGB {
	if o.Dark {
		return darkBase
	}
	return lightBase
}

// RenderSurface lays out s for the configured theme and renders it.
func RenderSurface(w io.Writer, s *paint.Surface, opts Options) error {
	return Render(w, s.Layout(opts.Dark), opts)
}

// Render writes one terminal line per document line. With Gutter set each
// line is prefixed by its number and a mark for lines carrying a gutter icon.
func Render(w io.Writer, lines []paint.Line, opts Options) error {
	bw := bufio.NewWriter(w)
	numWidth := len(strconv.Itoa(len(lines)))
	for _, line := range lines {
		if opts.Gutter {
			bw.WriteString(gutter(line, numWidth, opts))
		}
		col := 0
		for _, span := range line.Spans {
			var text string
			text, col = textutil.ExpandTabs(span.Text, col, opts.TabWidth)
			style := StyleFor(span.Style, line.Panel, opts)
			bw.WriteString(termcolor.Apply(style, text, opts.Profile, opts.Colors))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func gutter(line paint.Line, width int, opts Options) string {
	num := textutil.PadLeft(strconv.Itoa(line.Number), width)
	mark := " "
	if line.Gutter != "" || line.Ruler != nil {
		mark = gutterMark
		if line.Ruler != nil {
			if fg := resolve(line.Ruler.Color, opts.base()); fg != nil {
				mark = termcolor.Apply(termcolor.Style{FG: fg}, mark, opts.Profile, opts.Colors)
			}
		}
	}
	num = termcolor.Apply(termcolor.Style{Dim: true}, num, opts.Profile, opts.Colors)
	return num + " " + mark + " "
}

// StyleFor maps a CSS-like theme onto terminal attributes. Translucent
// colours are blended onto the theme's base background; theme colour ids
// keep the terminal default. A glow shadow renders as bold.
func StyleFor(t, panel textstyle.Theme, opts Options) termcolor.Style {
	base := opts.base()
	var s termcolor.Style
	s.FG = resolve(t.Color, base)
	bg := t.BackgroundColor
	if bg == "" {
		bg = panel.BackgroundColor
	}
	s.BG = resolve(bg, base)

	switch weight := strings.ToLower(strings.TrimSpace(t.FontWeight)); weight {
	case "":
	case "bold", "bolder":
		s.Bold = true
	case "lighter":
		s.Dim = true
	default:
		if n, err := strconv.Atoi(weight); err == nil {
			s.Bold = n >= 600
			s.Dim = n < 400
		}
	}
	switch strings.ToLower(strings.TrimSpace(t.FontStyle)) {
	case "italic", "oblique":
		s.Italic = true
	}
	deco := strings.ToLower(t.TextDecoration)
	shadow := strings.Contains(deco, "text-shadow") || t.TextShadow != ""
	deco = strings.ToLower(textstyle.StripTextShadow(t.TextDecoration))
	s.Underline = strings.Contains(deco, "underline")
	s.Strike = strings.Contains(deco, "line-through")
	if shadow && !s.Dim {
		s.Bold = true
	}
	return s
}

func resolve(colour string, base colorutil.RGB) *colorutil.RGB {
	if colour == "" {
		return nil
	}
	c, alpha, ok := colorutil.ParseCSS(colour)
	if !ok || alpha <= 0 {
		return nil
	}
	if alpha < 1 {
		c = colorutil.Blend(c, alpha, base)
	}
	return &c
}
