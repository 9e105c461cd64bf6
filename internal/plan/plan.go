package plan

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/phyten/taglight/internal/attributes"
	"github.com/phyten/taglight/internal/colorutil"
	"github.com/phyten/taglight/internal/ranges"
	"github.com/phyten/taglight/internal/scheme"
	"github.com/phyten/taglight/internal/textstyle"
)

const (
	DefaultColorType = "text"
	DefaultGlowType  = "tag"
	DefaultGlassType = "whole-line"
	DefaultFontType  = "tag"

	ThemeForeground = "editor.foreground"
	ThemeBackground = "editor.background"
)

// Lanes maps ruler lane names to lane numbers. 0 means no lane.
var Lanes = map[string]int{
	"none":   0,
	"left":   1,
	"center": 2,
	"right":  4,
	"full":   7,
}

var themeColourRe = regexp.MustCompile(`(?i)(foreground|background)`)

// Meta describes the overview ruler mark and gutter icon of a tag.
type Meta struct {
	Lane           int
	RulerColour    string
	GutterIconPath string
}

func (m Meta) IsZero() bool {
	return m.Lane == 0 && m.GutterIconPath == ""
}

// TagPlan is the resolved rendering description of one tag.
type TagPlan struct {
	Tag      string
	Channels Channels
	Meta     Meta
}

// TextStyles returns the styles of the enabled text channels.
func (p *TagPlan) TextStyles() textstyle.ChannelStyles {
	var cs textstyle.ChannelStyles
	if p.Channels.Color.Enabled {
		cs.Color = &p.Channels.Color.Style
	}
	if p.Channels.Font.Enabled {
		cs.Font = &p.Channels.Font.Style
	}
	if p.Channels.Glow.Enabled {
		cs.Glow = &p.Channels.Glow.Style
	}
	return cs
}

// UsesSubTag reports whether any enabled channel is scoped to tag-and-subTag.
func (p *TagPlan) UsesSubTag() bool {
	for _, ch := range p.Channels.All() {
		if ch.Enabled && ch.Range.Kind == ranges.KindTagAndSubTag {
			return true
		}
	}
	return false
}

type PresetProvider interface {
	Preset(name, lightBase, darkBase string) scheme.Preset
}

type Icon struct {
	Light string
	Dark  string
}

type IconResolver interface {
	Icon(tag string) Icon
}

// Builder resolves and memoizes tag plans. It is not safe for concurrent use.
type Builder struct {
	attrs   attributes.Provider
	presets PresetProvider
	icons   IconResolver
	cache   map[string]*TagPlan
}

func NewBuilder(attrs attributes.Provider, presets PresetProvider, icons IconResolver) *Builder {
	if presets == nil {
		presets = scheme.Presets{}
	}
	return &Builder{attrs: attrs, presets: presets, icons: icons, cache: make(map[string]*TagPlan)}
}

// Reset drops every memoized plan.
func (b *Builder) Reset() {
	b.cache = make(map[string]*TagPlan)
}

func (b *Builder) Len() int { return len(b.cache) }

// Plan returns the memoized plan for tag, building it on first use.
func (b *Builder) Plan(tag string) (*TagPlan, error) {
	if p, ok := b.cache[tag]; ok {
		return p, nil
	}
	p, err := b.build(tag)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", tag, err)
	}
	b.cache[tag] = p
	return p, nil
}

func (b *Builder) build(tag string) (*TagPlan, error) {
	a := b.attrs
	foreground, hasForeground, err := attributes.String(a, tag, "foreground")
	if err != nil {
		return nil, err
	}
	background, hasBackground, err := attributes.String(a, tag, "background")
	if err != nil {
		return nil, err
	}
	opacity, hasOpacity, err := attributes.Float(a, tag, "opacity")
	if err != nil {
		return nil, err
	}
	if !hasOpacity {
		opacity = 100
	}

	var fg, bg string
	if hasForeground {
		fg = resolveThemeColour(foreground, ThemeForeground)
	}
	if hasBackground {
		bg = resolveThemeColour(background, ThemeBackground)
	}
	lightFG, darkFG := fg, fg
	if fg == "" && colorutil.IsHex(bg) {
		lightFG = colorutil.Complementary(bg)
		darkFG = lightFG
	}
	var lightBG, darkBG string
	if bg != "" {
		lightBG = ApplyOpacity(bg, opacity)
		darkBG = lightBG
	}

	schemeName, err := attributes.StringOr(a, tag, "scheme", "")
	if err != nil {
		return nil, err
	}
	iconColour, _, err := attributes.String(a, tag, "iconColour")
	if err != nil {
		return nil, err
	}
	base := schemeBaseColour(iconColour, background, foreground)
	preset := b.presets.Preset(schemeName, base, base)
	if schemeName != "" && (!hasForeground || isWhite(foreground)) {
		lightFG, darkFG = preset.LightColor, preset.DarkColor
	}

	opts := Options{
		Scheme:          schemeName,
		LightForeground: lightFG,
		DarkForeground:  darkFG,
		LightBackground: lightBG,
		DarkBackground:  darkBG,
		Preset:          &preset,
	}
	for _, f := range []struct {
		dst  *string
		name string
		def  string
	}{
		{&opts.ColorType, "colorType", DefaultColorType},
		{&opts.GlowType, "glowType", DefaultGlowType},
		{&opts.GlassType, "glassType", DefaultGlassType},
		{&opts.FontType, "fontType", DefaultFontType},
		{&opts.FontWeight, "fontWeight", ""},
		{&opts.FontStyle, "fontStyle", ""},
		{&opts.TextDecoration, "textDecoration", ""},
		{&opts.BorderRadius, "borderRadius", ""},
	} {
		if *f.dst, err = attributes.StringOr(a, tag, f.name, f.def); err != nil {
			return nil, err
		}
	}

	meta, err := b.meta(tag, darkBG, opacity)
	if err != nil {
		return nil, err
	}
	return &TagPlan{Tag: tag, Channels: BuildChannels(opts), Meta: meta}, nil
}

func (b *Builder) meta(tag, darkBG string, opacity float64) (Meta, error) {
	var m Meta
	laneRaw, hasLane, err := attributes.String(b.attrs, tag, "rulerLane")
	if err != nil {
		return m, err
	}
	if hasLane {
		m.Lane = ResolveLane(laneRaw)
	}
	if m.Lane != 0 {
		def := darkBG
		if def == "" {
			def = ThemeForeground
		}
		colour, err := attributes.StringOr(b.attrs, tag, "rulerColour", def)
		if err != nil {
			return m, err
		}
		if !colorutil.IsThemeColour(colour) {
			colour = ApplyOpacity(colour, opacity)
		}
		m.RulerColour = colour
	}
	gutter, err := attributes.Bool(b.attrs, tag, "gutterIcon", true)
	if err != nil {
		return m, err
	}
	if gutter && b.icons != nil {
		m.GutterIconPath = b.icons.Icon(tag).Dark
	}
	return m, nil
}

// ResolveLane turns a lane number or name into a lane; numbers win.
func ResolveLane(raw string) int {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	return Lanes[strings.ToLower(raw)]
}

// ApplyOpacity applies opacity (a percentage, or a fraction below 1) to hex
// and rgb colours. Other colour syntaxes are returned unchanged.
func ApplyOpacity(colour string, opacity float64) string {
	switch {
	case colorutil.IsHex(colour):
		if opacity < 1 {
			opacity *= 100
		}
		return colorutil.HexToRGBA(colour, opacity)
	case colorutil.IsRGB(colour):
		if opacity == 100 {
			return colour
		}
		if opacity > 1 {
			opacity /= 100
		}
		return colorutil.SetRGBAlpha(colour, opacity)
	default:
		return colour
	}
}

// resolveThemeColour passes theme colour ids through and replaces invalid
// colours with the fallback theme colour.
func resolveThemeColour(raw, fallback string) string {
	if themeColourRe.MatchString(raw) {
		return raw
	}
	if !colorutil.IsValid(raw) {
		return fallback
	}
	return raw
}

// schemeBaseColour picks the colour a scheme preset is derived from: the icon
// colour, then the background, then a foreground that is not plain white or
// black. Alpha digits are dropped.
func schemeBaseColour(iconColour, background, foreground string) string {
	for _, c := range []string{iconColour, background} {
		if strings.HasPrefix(c, "#") {
			return trimAlpha(c)
		}
	}
	if strings.HasPrefix(foreground, "#") {
		switch strings.ToUpper(foreground) {
		case "#FFFFFF", "#FFF", "#000000", "#000":
		default:
			return foreground
		}
	}
	return ""
}

func trimAlpha(c string) string {
	switch len(c) {
	case 9:
		return c[:7]
	case 5:
		return c[:4]
	}
	return c
}

func isWhite(c string) bool {
	switch strings.ToUpper(strings.TrimSpace(c)) {
	case "#FFFFFF", "#FFF":
		return true
	}
	return false
}
