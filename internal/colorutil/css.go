package colorutil

import "strings"

var namedRGB = map[string]RGB{
	"black":   {0, 0, 0},
	"white":   {255, 255, 255},
	"red":     {255, 0, 0},
	"green":   {0, 128, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"magenta": {255, 0, 255},
	"cyan":    {0, 255, 255},
	"gray":    {128, 128, 128},
	"grey":    {128, 128, 128},
	"pink":    {255, 192, 203},
	"brown":   {165, 42, 42},
	"lime":    {0, 255, 0},
	"navy":    {0, 0, 128},
	"teal":    {0, 128, 128},
}

// ParseCSS resolves hex, rgb()/rgba() and named colours to RGB with an
// alpha in [0,1]. Theme colour ids and "transparent" are not resolvable.
func ParseCSS(s string) (RGB, float64, bool) {
	s = strings.TrimSpace(s)
	if c, alpha, hasAlpha, ok := ParseHex(s); ok {
		if !hasAlpha {
			alpha = 1
		}
		return c, alpha, true
	}
	if c, alpha, ok := ParseRGB(s); ok {
		return c, alpha, true
	}
	if c, ok := namedRGB[strings.ToLower(s)]; ok {
		return c, 1, true
	}
	return RGB{}, 0, false
}

// Blend composites c at the given alpha over an opaque base.
func Blend(c RGB, alpha float64, base RGB) RGB {
	mixed := base.colorful().BlendRgb(c.colorful(), clamp01(alpha)).Clamped()
	r, g, b := mixed.RGB255()
	return RGB{R: r, G: g, B: b}
}
