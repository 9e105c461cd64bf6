package ansi

import (
	"bytes"
	"strings"
	"testing"

	"github.com/phyten/taglight/internal/colorutil"
	"github.com/phyten/taglight/internal/config"
	"github.com/phyten/taglight/internal/document"
	"github.com/phyten/taglight/internal/highlight"
	"github.com/phyten/taglight/internal/paint"
	"github.com/phyten/taglight/internal/termcolor"
	"github.com/phyten/taglight/internal/textstyle"
	"github.com/phyten/taglight/internal/textutil"
)

func highlighted(t *testing.T, text string, custom map[string]map[string]any) *paint.Surface {
	t.Helper()
	s := config.DefaultHighlightSettings()
	s.CustomHighlight = custom
	e, err := highlight.New(highlight.Options{Host: paint.NewHost(), Settings: s})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	surface := paint.NewSurface(document.New("file:///a.go", text))
	e.Highlight(surface)
	return surface
}

func TestRenderColours(t *testing.T) {
	text := "x := 1 // TODO tidy\nplain"
	s := highlighted(t, text, map[string]map[string]any{
		"TODO": {"foreground": "#ff0000", "fontWeight": "bold"},
	})
	var buf bytes.Buffer
	opts := Options{Dark: true, Colors: true, Profile: termcolor.ProfileTrueColor}
	if err := RenderSurface(&buf, s, opts); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[1;38;2;255;0;0mTODO\x1b[0m") {
		t.Fatalf("missing bold red tag in %q", out)
	}
	if !strings.Contains(out, "\x1b[38;2;255;0;0m tidy\x1b[0m") {
		t.Fatalf("missing red comment text in %q", out)
	}
	if got := textutil.StripANSI(out); got != text+"\n" {
		t.Fatalf("plain text=%q want %q", got, text+"\n")
	}
}

func TestRenderWithoutColours(t *testing.T) {
	text := "// TODO one\n\tindented"
	s := highlighted(t, text, nil)
	var buf bytes.Buffer
	if err := RenderSurface(&buf, s, Options{Gutter: true, TabWidth: 4}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "1 " + gutterMark + " // TODO one\n2       indented\n"
	if got := buf.String(); got != want {
		t.Fatalf("Render=%q want %q", got, want)
	}
}

func TestStyleFor(t *testing.T) {
	opts := Options{Dark: true}
	cases := []struct {
		name  string
		theme textstyle.Theme
		panel textstyle.Theme
		check func(termcolor.Style) bool
	}{
		{"bold", textstyle.Theme{FontWeight: "700"}, textstyle.Theme{}, func(s termcolor.Style) bool { return s.Bold && !s.Dim }},
		{"light", textstyle.Theme{FontWeight: "300"}, textstyle.Theme{}, func(s termcolor.Style) bool { return s.Dim }},
		{"italic", textstyle.Theme{FontStyle: "italic"}, textstyle.Theme{}, func(s termcolor.Style) bool { return s.Italic }},
		{"decoration", textstyle.Theme{TextDecoration: "underline line-through"}, textstyle.Theme{}, func(s termcolor.Style) bool { return s.Underline && s.Strike }},
		{"glow", textstyle.Theme{TextDecoration: "none; text-shadow: 0 0 5px #fff;"}, textstyle.Theme{}, func(s termcolor.Style) bool { return s.Bold && !s.Underline }},
		{"theme colour", textstyle.Theme{Color: "editor.foreground"}, textstyle.Theme{}, func(s termcolor.Style) bool { return s.FG == nil }},
		{"panel", textstyle.Theme{}, textstyle.Theme{BackgroundColor: "rgba(255,0,0,0.2)"}, func(s termcolor.Style) bool {
			return s.BG != nil && *s.BG == colorutil.Blend(colorutil.RGB{R: 255}, 0.2, darkBase)
		}},
		{"own background wins", textstyle.Theme{BackgroundColor: "#00ff00"}, textstyle.Theme{BackgroundColor: "#ff0000"}, func(s termcolor.Style) bool {
			return s.BG != nil && *s.BG == colorutil.RGB{G: 255}
		}},
	}
	for _, tc := range cases {
		if got := StyleFor(tc.theme, tc.panel, opts); !tc.check(got) {
			t.Fatalf("StyleFor(%s)=%+v", tc.name, got)
		}
	}
}
