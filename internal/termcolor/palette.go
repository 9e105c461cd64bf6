package termcolor

import "github.com/phyten/taglight/internal/colorutil"

// basic8 is the xterm rendering of the eight standard colours.
var basic8 = [8]colorutil.RGB{
	{R: 0, G: 0, B: 0},
	{R: 205, G: 0, B: 0},
	{R: 0, G: 205, B: 0},
	{R: 205, G: 205, B: 0},
	{R: 0, G: 0, B: 238},
	{R: 205, G: 0, B: 205},
	{R: 0, G: 205, B: 205},
	{R: 229, G: 229, B: 229},
}

// ANSI256 maps c onto the 6x6x6 cube or the grey ramp.
func ANSI256(c colorutil.RGB) int {
	r, g, b := c.R, c.G, c.B
	if r == g && g == b {
		if r < 8 {
			return 16
		}
		if r > 248 {
			return 231
		}
		return 232 + (int(r)-8)*24/247
	}
	rr := int(r) * 5 / 255
	gg := int(g) * 5 / 255
	bb := int(b) * 5 / 255
	return 16 + 36*rr + 6*gg + bb
}

// Basic returns the index of the nearest standard colour.
func Basic(c colorutil.RGB) int {
	best, bestDist := 0, -1
	for i, p := range basic8 {
		dr := int(c.R) - int(p.R)
		dg := int(c.G) - int(p.G)
		db := int(c.B) - int(p.B)
		if d := dr*dr + dg*dg + db*db; bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
