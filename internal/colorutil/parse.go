package colorutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"fortio.org/safecast"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	hexRe   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	rgbRe   = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*([0-9]*\.?[0-9]+)\s*)?\)$`)
	themeRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*(?:\.[A-Za-z0-9_-]+)+$`)
)

// CSS colour keywords accepted as-is by IsValid.
var namedColours = map[string]struct{}{
	"black": {}, "white": {}, "red": {}, "green": {}, "blue": {}, "yellow": {},
	"orange": {}, "purple": {}, "magenta": {}, "cyan": {}, "gray": {}, "grey": {},
	"pink": {}, "brown": {}, "lime": {}, "navy": {}, "teal": {}, "transparent": {},
}

func IsHex(s string) bool {
	return hexRe.MatchString(strings.TrimSpace(s))
}

func IsRGB(s string) bool {
	return rgbRe.MatchString(strings.TrimSpace(s))
}

// IsThemeColour reports whether s looks like a host theme colour id such as
// "editor.foreground".
func IsThemeColour(s string) bool {
	return themeRe.MatchString(strings.TrimSpace(s))
}

func IsValid(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if IsHex(s) || IsRGB(s) || IsThemeColour(s) {
		return true
	}
	_, ok := namedColours[strings.ToLower(s)]
	return ok
}

// ParseHex parses #rgb, #rgba, #rrggbb and #rrggbbaa. alpha is in [0,1] and
// only meaningful when hasAlpha is true.
func ParseHex(s string) (c RGB, alpha float64, hasAlpha bool, ok bool) {
	s = strings.TrimSpace(s)
	if !IsHex(s) {
		return RGB{}, 0, false, false
	}
	digits := s[1:]
	var rgbPart, alphaPart string
	switch len(digits) {
	case 3, 4:
		rgbPart, alphaPart = digits[:3], digits[3:]
	default:
		rgbPart, alphaPart = digits[:6], digits[6:]
	}
	parsed, err := colorful.Hex("#" + rgbPart)
	if err != nil {
		return RGB{}, 0, false, false
	}
	r, g, b := parsed.RGB255()
	c = RGB{R: r, G: g, B: b}
	if alphaPart == "" {
		return c, 1, false, true
	}
	if len(alphaPart) == 1 {
		alphaPart += alphaPart
	}
	raw, err := strconv.ParseUint(alphaPart, 16, 16)
	if err != nil {
		return RGB{}, 0, false, false
	}
	a, err := safecast.Conv[uint8](raw)
	if err != nil {
		return RGB{}, 0, false, false
	}
	return c, float64(a) / 255.0, true, true
}

// ParseRGB parses rgb(r,g,b) and rgba(r,g,b,a).
func ParseRGB(s string) (c RGB, alpha float64, ok bool) {
	m := rgbRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return RGB{}, 0, false
	}
	var comps [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return RGB{}, 0, false
		}
		v, err := safecast.Conv[uint8](n)
		if err != nil {
			return RGB{}, 0, false
		}
		comps[i] = v
	}
	alpha = 1
	if m[4] != "" {
		a, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return RGB{}, 0, false
		}
		alpha = clamp01(a)
	}
	return RGB{R: comps[0], G: comps[1], B: comps[2]}, alpha, true
}

// HexToRGBA converts a hex colour into rgba() using percent (0-100) as the
// alpha. Alpha digits present in the hex value take precedence.
func HexToRGBA(hex string, percent float64) string {
	c, a, hasAlpha, ok := ParseHex(hex)
	if !ok {
		return hex
	}
	if !hasAlpha {
		a = clamp01(percent / 100)
	}
	return formatRGBA(c, a)
}

// SetRGBAlpha replaces the alpha of an rgb()/rgba() colour.
func SetRGBAlpha(s string, alpha float64) string {
	c, _, ok := ParseRGB(s)
	if !ok {
		return s
	}
	return formatRGBA(c, clamp01(alpha))
}

func formatRGBA(c RGB, a float64) string {
	a = math.Round(a*1000) / 1000
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, strconv.FormatFloat(a, 'f', -1, 64))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
