package colorutil

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

type RGB struct {
	R uint8
	G uint8
	B uint8
}

var (
	black = RGB{0, 0, 0}
	white = RGB{255, 255, 255}
)

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}

// Hex formats the colour as #rrggbb.
func (c RGB) Hex() string {
	return c.colorful().Hex()
}

func luminance(rgb RGB) float64 {
	r, g, b := rgb.colorful().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func ContrastRatio(fg, bg RGB) float64 {
	l1 := luminance(fg)
	l2 := luminance(bg)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func AutoTextColor(bg RGB) RGB {
	crBlack := ContrastRatio(black, bg)
	crWhite := ContrastRatio(white, bg)
	if crBlack >= 4.5 || crBlack >= crWhite {
		return black
	}
	return white
}

// Complementary returns a readable foreground (#000000 or #ffffff) for a hex
// background. Alpha digits are ignored. Non-hex input yields "".
func Complementary(hex string) string {
	bg, _, _, ok := ParseHex(hex)
	if !ok {
		return ""
	}
	return AutoTextColor(bg).Hex()
}
