// Package textstyle composes the per-theme text styles produced by the color,
// font and glow channels and derives stable cache keys from them.
package textstyle

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Theme is one side (light or dark) of a style. Empty fields are absent.
type Theme struct {
	Color           string `json:"color,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	Border          string `json:"border,omitempty"`
	FontWeight      string `json:"fontWeight,omitempty"`
	FontStyle       string `json:"fontStyle,omitempty"`
	TextDecoration  string `json:"textDecoration,omitempty"`
	TextShadow      string `json:"textShadow,omitempty"`
}

// Pair is a theme-paired style.
type Pair struct {
	Light Theme `json:"light"`
	Dark  Theme `json:"dark"`
}

// Uniform returns a pair with the same style on both sides.
func Uniform(t Theme) Pair {
	return Pair{Light: t, Dark: t}
}

// Override returns t with every non-empty field of o applied on top.
func (t Theme) Override(o Theme) Theme {
	if o.Color != "" {
		t.Color = o.Color
	}
	if o.BackgroundColor != "" {
		t.BackgroundColor = o.BackgroundColor
	}
	if o.Border != "" {
		t.Border = o.Border
	}
	if o.FontWeight != "" {
		t.FontWeight = o.FontWeight
	}
	if o.FontStyle != "" {
		t.FontStyle = o.FontStyle
	}
	if o.TextDecoration != "" {
		t.TextDecoration = o.TextDecoration
	}
	if o.TextShadow != "" {
		t.TextShadow = o.TextShadow
	}
	return t
}

// Override applies o side by side.
func (p Pair) Override(o Pair) Pair {
	return Pair{Light: p.Light.Override(o.Light), Dark: p.Dark.Override(o.Dark)}
}

// HasTextEffect reports whether the theme changes how text is drawn.
func (t Theme) HasTextEffect() bool {
	return t.Color != "" || t.FontWeight != "" || t.FontStyle != "" || t.TextDecoration != ""
}

// HasPanel reports whether the theme paints a background or border.
func (t Theme) HasPanel() bool {
	return t.BackgroundColor != "" || t.Border != ""
}

func (p Pair) HasTextEffect() bool {
	return p.Light.HasTextEffect() || p.Dark.HasTextEffect()
}

func (p Pair) HasPanel() bool {
	return p.Light.HasPanel() || p.Dark.HasPanel()
}

// ChannelStyles carries the styles of the channels active at one point.
// A nil entry means the channel does not contribute.
type ChannelStyles struct {
	Color *Pair
	Font  *Pair
	Glow  *Pair
}

var (
	shadowRe = regexp.MustCompile(`(?i)text-shadow\s*:[^;]+;?`)
	edgeRe   = regexp.MustCompile(`^[\s;]+|[\s;]+$`)
)

func trimSemicolons(s string) string {
	return strings.TrimSpace(edgeRe.ReplaceAllString(s, ""))
}

// StripTextShadow removes text-shadow clauses from a decoration string.
func StripTextShadow(decoration string) string {
	if decoration == "" {
		return ""
	}
	return trimSemicolons(shadowRe.ReplaceAllString(decoration, ""))
}

// ComposeDecoration joins a font decoration with a glow shadow so that exactly
// one text-shadow clause survives. Without a base decoration the shadow is
// anchored on "none".
func ComposeDecoration(fontDecoration, glowShadow string) string {
	var parts []string
	base := fontDecoration
	if glowShadow != "" {
		if base == "" {
			base = "none"
		}
		base = StripTextShadow(base)
	}
	if base != "" {
		parts = append(parts, base)
	}
	if glowShadow != "" {
		parts = append(parts, "text-shadow: "+glowShadow)
	}
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = trimSemicolons(part); part != "" {
			out = append(out, part+";")
		}
	}
	return strings.Join(out, " ")
}

func composeTheme(color, font, glow *Theme) Theme {
	var out Theme
	if color != nil {
		out.Color = color.Color
	}
	var fontDecoration string
	if font != nil {
		out.FontWeight = font.FontWeight
		out.FontStyle = font.FontStyle
		fontDecoration = font.TextDecoration
	}
	var shadow string
	if glow != nil {
		shadow = glow.TextShadow
	}
	out.TextDecoration = ComposeDecoration(fontDecoration, shadow)
	return out
}

func side(p *Pair, dark bool) *Theme {
	if p == nil {
		return nil
	}
	if dark {
		return &p.Dark
	}
	return &p.Light
}

// Compose merges the active channel styles into a text style, independently
// for each theme side.
func Compose(cs ChannelStyles) Pair {
	return Pair{
		Light: composeTheme(side(cs.Color, false), side(cs.Font, false), side(cs.Glow, false)),
		Dark:  composeTheme(side(cs.Color, true), side(cs.Font, true), side(cs.Glow, true)),
	}
}

type canonicalTheme struct {
	Color          string `json:"color"`
	FontWeight     string `json:"fontWeight"`
	FontStyle      string `json:"fontStyle"`
	TextDecoration string `json:"textDecoration"`
}

type canonicalPair struct {
	Light canonicalTheme `json:"light"`
	Dark  canonicalTheme `json:"dark"`
}

func canonicalize(t Theme) canonicalTheme {
	return canonicalTheme{
		Color:          t.Color,
		FontWeight:     t.FontWeight,
		FontStyle:      t.FontStyle,
		TextDecoration: t.TextDecoration,
	}
}

// Canonical serialises the text-affecting fields of p deterministically.
func Canonical(p Pair) string {
	data, err := json.Marshal(canonicalPair{Light: canonicalize(p.Light), Dark: canonicalize(p.Dark)})
	if err != nil {
		// plain strings always marshal
		panic(err)
	}
	return string(data)
}

// Hash returns the cache key for p: its canonical form itself, so distinct
// text styles never share a key.
func Hash(p Pair) string {
	return Canonical(p)
}

type panelTheme struct {
	canonicalTheme
	BackgroundColor string `json:"backgroundColor"`
	Border          string `json:"border"`
}

// PanelHash extends Hash with background and border; used for styles that
// carry their own panel, such as sub-tag decorations.
func PanelHash(p Pair) string {
	panel := func(t Theme) panelTheme {
		return panelTheme{canonicalTheme: canonicalize(t), BackgroundColor: t.BackgroundColor, Border: t.Border}
	}
	data, err := json.Marshal(struct {
		Light panelTheme `json:"light"`
		Dark  panelTheme `json:"dark"`
	}{panel(p.Light), panel(p.Dark)})
	if err != nil {
		panic(err)
	}
	return string(data)
}
