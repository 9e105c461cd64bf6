// Package html renders laid-out documents as HTML with inline styles.
package html

import (
	"bytes"
	_ "embed"
	"fmt"
	"html"
	"html/template"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/phyten/taglight/internal/paint"
	"github.com/phyten/taglight/internal/textstyle"
)

var (
	//go:embed page.html
	pageHTML string
	pageOnce sync.Once
	pageTmpl *template.Template
)

type Options struct {
	Dark     bool
	Gutter   bool
	TabWidth int
	Title    string
}

type pageData struct {
	Title      string
	Background string
	Foreground string
	TabWidth   int
	Body       template.HTML
}

// RenderSurface lays out s for the configured theme and writes a fragment.
func RenderSurface(w io.Writer, s *paint.Surface, opts Options) error {
	return Render(w, s.Layout(opts.Dark), opts)
}

// Render writes a <pre class="taglight"> fragment with one div per line.
func Render(w io.Writer, lines []paint.Line, opts Options) error {
	var b strings.Builder
	b.WriteString(`<pre class="taglight">`)
	for _, line := range lines {
		writeLine(&b, line, opts)
	}
	b.WriteString("</pre>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// Document is one named layout on a page.
type Document struct {
	Name  string
	Lines []paint.Line
}

// RenderPage writes a standalone HTML document.
func RenderPage(w io.Writer, lines []paint.Line, opts Options) error {
	return RenderDocuments(w, []Document{{Lines: lines}}, opts)
}

// RenderDocuments writes a standalone HTML document holding each layout in
// turn, headed by its name when set.
func RenderDocuments(w io.Writer, docs []Document, opts Options) error {
	var body bytes.Buffer
	for _, doc := range docs {
		if doc.Name != "" {
			fmt.Fprintf(&body, "<h2 class=\"file\">%s</h2>\n", html.EscapeString(doc.Name))
		}
		if err := Render(&body, doc.Lines, opts); err != nil {
			return err
		}
	}
	data := pageData{
		Title:      opts.Title,
		Background: "#ffffff",
		Foreground: "#333333",
		TabWidth:   opts.TabWidth,
		// fragment text and styles are escaped by Render
		Body: template.HTML(body.String()),
	}
	if opts.Dark {
		data.Background, data.Foreground = "#1e1e1e", "#d4d4d4"
	}
	if data.TabWidth <= 0 {
		data.TabWidth = 4
	}
	if data.Title == "" {
		data.Title = "taglight"
	}
	return loadPage().Execute(w, data)
}

func loadPage() *template.Template {
	pageOnce.Do(func() {
		pageTmpl = template.Must(template.New("page").Parse(pageHTML))
	})
	return pageTmpl
}

func writeLine(b *strings.Builder, line paint.Line, opts Options) {
	b.WriteString(`<div class="line"`)
	writeStyle(b, PanelCSS(line.Panel, line.Radius))
	b.WriteString(">")
	if opts.Gutter {
		b.WriteString(`<span class="gutter"`)
		if line.Gutter != "" {
			fmt.Fprintf(b, ` title="%s"`, html.EscapeString(line.Gutter))
		}
		fmt.Fprintf(b, `>%d</span>`, line.Number)
	}
	b.WriteString(`<span class="code">`)
	for _, span := range line.Spans {
		text := html.EscapeString(span.Text)
		css := CSS(span.Style)
		if css == "" {
			b.WriteString(text)
			continue
		}
		b.WriteString("<span")
		writeStyle(b, css)
		b.WriteString(">")
		b.WriteString(text)
		b.WriteString("</span>")
	}
	b.WriteString("</span>")
	if line.Ruler != nil {
		fmt.Fprintf(b, `<span class="ruler lane-%d" title="%s"`, line.Ruler.Lane, LaneName(line.Ruler.Lane))
		writeStyle(b, declarations([][2]string{{"background-color", line.Ruler.Color}}))
		b.WriteString("></span>")
	}
	b.WriteString("</div>")
}

func writeStyle(b *strings.Builder, css string) {
	if css == "" {
		return
	}
	fmt.Fprintf(b, ` style="%s"`, html.EscapeString(css))
}

// CSS renders the text properties of t as inline declarations. The text
// decoration is emitted verbatim so that a composed glow shadow applies.
func CSS(t textstyle.Theme) string {
	return declarations([][2]string{
		{"color", t.Color},
		{"background-color", t.BackgroundColor},
		{"border", t.Border},
		{"font-weight", t.FontWeight},
		{"font-style", t.FontStyle},
		{"text-decoration", t.TextDecoration},
		{"text-shadow", t.TextShadow},
	})
}

// PanelCSS renders a whole-line glass panel.
func PanelCSS(t textstyle.Theme, radius string) string {
	if !t.HasPanel() {
		return ""
	}
	return declarations([][2]string{
		{"background-color", t.BackgroundColor},
		{"border", t.Border},
		{"border-radius", radius},
	})
}

func declarations(pairs [][2]string) string {
	var parts []string
	for _, p := range pairs {
		v := cssValue(p[1])
		if v == "" {
			continue
		}
		if colour, ok := themeVar(p[0], v); ok {
			v = colour
		}
		parts = append(parts, p[0]+": "+strings.TrimSuffix(v, ";"))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "; ") + ";"
}

// themeVar maps theme colour ids such as editor.foreground onto CSS custom
// properties.
func themeVar(prop, v string) (string, bool) {
	if !strings.Contains(prop, "color") || strings.ContainsAny(v, "#(") || !strings.Contains(v, ".") {
		return "", false
	}
	return "var(--" + strings.ReplaceAll(v, ".", "-") + ", inherit)", true
}

// cssValue drops characters that could leave the declaration block.
func cssValue(v string) string {
	v = strings.Map(func(r rune) rune {
		switch r {
		case '{', '}', '<', '>', '"', '\'', '\\', '\n', '\r':
			return -1
		}
		return r
	}, v)
	return strings.TrimSpace(v)
}

// LaneName names the overview ruler lanes for display.
func LaneName(lane int) string {
	switch lane {
	case 1:
		return "left"
	case 2:
		return "center"
	case 4:
		return "right"
	case 7:
		return "full"
	}
	return strconv.Itoa(lane)
}
