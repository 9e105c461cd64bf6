package html

import (
	"bytes"
	"strings"
	"testing"

	"github.com/phyten/taglight/internal/config"
	"github.com/phyten/taglight/internal/document"
	"github.com/phyten/taglight/internal/highlight"
	"github.com/phyten/taglight/internal/paint"
	"github.com/phyten/taglight/internal/textstyle"
)

func surface(t *testing.T, text string, custom map[string]map[string]any) *paint.Surface {
	t.Helper()
	s := config.DefaultHighlightSettings()
	s.CustomHighlight = custom
	e, err := highlight.New(highlight.Options{Host: paint.NewHost(), Settings: s})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sf := paint.NewSurface(document.New("file:///a.html", text))
	e.Highlight(sf)
	return sf
}

func TestRenderEscapesText(t *testing.T) {
	sf := surface(t, "<!-- TODO <b>&</b> -->\n<script>", map[string]map[string]any{
		"TODO": {"foreground": "#ff0000"},
	})
	var buf bytes.Buffer
	if err := RenderSurface(&buf, sf, Options{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<script>") || strings.Contains(out, "<b>") {
		t.Fatalf("unescaped markup in %q", out)
	}
	if !strings.Contains(out, `<span style="color: #ff0000;">TODO &lt;b&gt;&amp;&lt;/b&gt; --&gt;</span>`) {
		t.Fatalf("comment should be coloured up to its terminator: %q", out)
	}
}

func TestRenderWholeLinePanel(t *testing.T) {
	sf := surface(t, "// FIXME now\nnext", map[string]map[string]any{
		"FIXME": {"background": "#336699", "opacity": 50, "borderRadius": "4px"},
	})
	var buf bytes.Buffer
	if err := RenderSurface(&buf, sf, Options{Dark: true, Gutter: true}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `<div class="line" style="background-color: rgba(51,102,153,0.5); border-radius: 4px;">`) {
		t.Fatalf("missing panel in %q", out)
	}
	if !strings.Contains(out, `<span class="gutter" title="codicon:check">1</span>`) {
		t.Fatalf("missing gutter icon in %q", out)
	}
	if !strings.Contains(out, `<div class="line"><span class="gutter">2</span>`) {
		t.Fatalf("second line should be plain: %q", out)
	}
}

func TestRenderPage(t *testing.T) {
	sf := surface(t, "# TODO", nil)
	var buf bytes.Buffer
	if err := RenderPage(&buf, sf.Layout(true), Options{Dark: true, Title: "a <b>"}); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<title>a &lt;b&gt;</title>") {
		t.Fatalf("title not escaped: %q", out)
	}
	if !strings.Contains(out, `<pre class="taglight">`) || !strings.Contains(out, "#1e1e1e") {
		t.Fatalf("page missing body or dark background: %q", out)
	}
}

func TestCSS(t *testing.T) {
	cases := []struct {
		in   textstyle.Theme
		want string
	}{
		{textstyle.Theme{}, ""},
		{textstyle.Theme{Color: "#fff", FontWeight: "bold"}, "color: #fff; font-weight: bold;"},
		{textstyle.Theme{TextDecoration: "none; text-shadow: 0 0 5px #fff;"}, "text-decoration: none; text-shadow: 0 0 5px #fff;"},
		{textstyle.Theme{Color: "editor.foreground"}, "color: var(--editor-foreground, inherit);"},
		{textstyle.Theme{Color: `red"}</style><script>`}, "color: red/stylescript;"},
	}
	for _, tc := range cases {
		if got := CSS(tc.in); got != tc.want {
			t.Fatalf("CSS(%+v)=%q want %q", tc.in, got, tc.want)
		}
	}
}

func TestRenderDocuments(t *testing.T) {
	a := surface(t, "// TODO a", nil)
	b := surface(t, "# FIXME b", nil)
	var buf bytes.Buffer
	docs := []Document{{Name: "a<1>.go", Lines: a.Layout(false)}, {Name: "b.sh", Lines: b.Layout(false)}}
	if err := RenderDocuments(&buf, docs, Options{}); err != nil {
		t.Fatalf("RenderDocuments: %v", err)
	}
	out := buf.String()
	if strings.Count(out, `<pre class="taglight">`) != 2 {
		t.Fatalf("want two fragments in %q", out)
	}
	if !strings.Contains(out, `<h2 class="file">a&lt;1&gt;.go</h2>`) || !strings.Contains(out, "#ffffff") {
		t.Fatalf("missing escaped heading or light background: %q", out)
	}
}
