// Package scheme provides the neon / glass highlight presets.
package scheme

import (
	"fmt"
	"strings"

	"github.com/phyten/taglight/internal/colorutil"
	"github.com/phyten/taglight/internal/textstyle"
)

const (
	Neon      = "neon"
	Glass     = "glass"
	NeonGlass = "neon+glass"

	// DefaultAccent is used when no usable base colour is supplied.
	DefaultAccent = "#42A5F5"

	glassAlpha   = 15
	borderAlpha  = 60
	glassRadius  = "6px"
	glassOpacity = 15
)

// Names lists the recognised scheme names.
var Names = []string{Neon, Glass, NeonGlass}

// Flags reports which effects a scheme enables. Names match exactly.
func Flags(name string) (glow, glass bool) {
	glow = name == Neon || name == NeonGlass
	glass = name == Glass || name == NeonGlass
	return glow, glass
}

// DefaultOpacity is the background opacity a scheme implies when none is
// configured; ok is false when the scheme does not imply one.
func DefaultOpacity(name string) (float64, bool) {
	if _, glass := Flags(name); glass {
		return glassOpacity, true
	}
	return 0, false
}

// GlassStyle is the background panel of a glass scheme.
type GlassStyle struct {
	Light        textstyle.Theme
	Dark         textstyle.Theme
	BorderRadius string
}

// Preset is the resolved set of effects for a scheme and base colour.
type Preset struct {
	LightColor string
	DarkColor  string
	Glow       *textstyle.Pair
	Glass      *GlassStyle
}

// Presets is the built-in preset provider.
type Presets struct{}

// Preset builds the preset for name using the given base colours.
func (Presets) Preset(name, lightBase, darkBase string) Preset {
	return Get(name, lightBase, darkBase)
}

// Get builds the preset for name. Unusable base colours fall back to
// DefaultAccent (light) and the light colour (dark).
func Get(name, lightBase, darkBase string) Preset {
	light := resolveColor(lightBase, DefaultAccent)
	dark := resolveColor(darkBase, light)
	hasGlow, hasGlass := Flags(name)

	p := Preset{LightColor: light, DarkColor: dark}
	if hasGlow {
		p.Glow = &textstyle.Pair{
			Light: textstyle.Theme{TextShadow: GlowShadow(light)},
			Dark:  textstyle.Theme{TextShadow: GlowShadow(dark)},
		}
	}
	if hasGlass {
		p.Glass = &GlassStyle{
			BorderRadius: glassRadius,
			Light: textstyle.Theme{
				BackgroundColor: withAlpha(light, glassAlpha),
				Border:          "1px solid " + withAlpha(light, borderAlpha),
			},
			Dark: textstyle.Theme{
				BackgroundColor: withAlpha(dark, glassAlpha),
				Border:          "1px solid " + withAlpha(dark, borderAlpha),
			},
		}
	}
	return p
}

// GlowShadow is the layered text-shadow used by neon schemes.
func GlowShadow(color string) string {
	return fmt.Sprintf("0 0 5px %[1]s, 0 0 10px %[1]s, 0 0 15px %[1]s, 0 0 20px %[1]s, 0 0 30px %[1]s", color)
}

func resolveColor(color, fallback string) string {
	color = strings.TrimSpace(color)
	if color == "" {
		return fallback
	}
	for _, prefix := range []string{"#", "rgb(", "rgba(", "var("} {
		if strings.HasPrefix(color, prefix) {
			return color
		}
	}
	return fallback
}

func withAlpha(color string, percent float64) string {
	switch {
	case colorutil.IsHex(color):
		return colorutil.HexToRGBA(color, percent)
	case colorutil.IsRGB(color):
		return colorutil.SetRGBAlpha(color, percent/100)
	default:
		return color
	}
}
