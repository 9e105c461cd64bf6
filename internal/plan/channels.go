// Package plan turns per-tag attributes into a TagPlan: four independently
// scoped style channels plus ruler and gutter metadata.
package plan

import (
	"strings"

	"github.com/phyten/taglight/internal/ranges"
	"github.com/phyten/taglight/internal/scheme"
	"github.com/phyten/taglight/internal/textstyle"
)

type Kind string

const (
	KindColor Kind = "color"
	KindGlow  Kind = "glow"
	KindGlass Kind = "glass"
	KindFont  Kind = "font"
)

// Channel is one visual effect dimension of a tag.
type Channel struct {
	Kind         Kind
	Enabled      bool
	Range        ranges.Type
	Style        textstyle.Pair
	BorderRadius string
}

type Channels struct {
	Color Channel
	Glow  Channel
	Glass Channel
	Font  Channel
}

// All lists the channels in a fixed order.
func (c Channels) All() []Channel {
	return []Channel{c.Color, c.Glow, c.Glass, c.Font}
}

// Options is the input of BuildChannels. Range scopes are raw attribute
// values; an empty scope means the channel paints nothing.
type Options struct {
	Scheme string

	ColorType string
	GlowType  string
	GlassType string
	FontType  string

	LightForeground string
	DarkForeground  string
	LightBackground string
	DarkBackground  string

	FontWeight     string
	FontStyle      string
	TextDecoration string
	BorderRadius   string

	Preset *scheme.Preset
}

// BuildChannels derives the four channels. A channel whose scope is none is
// always disabled, whatever its style says.
func BuildChannels(o Options) Channels {
	glow, glass := scheme.Flags(o.Scheme)

	color := textstyle.Pair{
		Light: textstyle.Theme{Color: o.LightForeground},
		Dark:  textstyle.Theme{Color: o.DarkForeground},
	}
	font := textstyle.Uniform(textstyle.Theme{
		FontWeight:     o.FontWeight,
		FontStyle:      o.FontStyle,
		TextDecoration: o.TextDecoration,
	})

	var panel textstyle.Pair
	var presetRadius string
	if glass && o.Preset != nil && o.Preset.Glass != nil {
		panel = textstyle.Pair{Light: o.Preset.Glass.Light, Dark: o.Preset.Glass.Dark}
		presetRadius = o.Preset.Glass.BorderRadius
	}
	panel = panel.Override(textstyle.Pair{
		Light: textstyle.Theme{BackgroundColor: o.LightBackground},
		Dark:  textstyle.Theme{BackgroundColor: o.DarkBackground},
	})
	radius := o.BorderRadius
	if radius == "" {
		radius = presetRadius
	}

	out := Channels{
		Color: Channel{
			Kind:    KindColor,
			Enabled: o.LightForeground != "" || o.DarkForeground != "",
			Range:   scope(o.ColorType),
			Style:   color,
		},
		Glass: Channel{
			Kind:         KindGlass,
			Enabled:      panel.HasPanel(),
			Range:        scope(o.GlassType),
			Style:        panel,
			BorderRadius: radius,
		},
		Font: Channel{
			Kind:    KindFont,
			Enabled: font.Light.FontWeight != "" || font.Light.FontStyle != "" || font.Light.TextDecoration != "",
			Range:   scope(o.FontType),
			Style:   font,
		},
		Glow: Channel{
			Kind:  KindGlow,
			Range: scope(o.GlowType),
		},
	}
	if glow && o.Preset != nil && o.Preset.Glow != nil {
		out.Glow.Enabled = true
		out.Glow.Style = *o.Preset.Glow
	}

	for _, ch := range []*Channel{&out.Color, &out.Glow, &out.Glass, &out.Font} {
		if ch.Range.IsNone() {
			ch.Enabled = false
		}
	}
	return out
}

func scope(raw string) ranges.Type {
	if strings.TrimSpace(raw) == "" {
		return ranges.None
	}
	return ranges.Parse(raw)
}
