package termcolor

import (
	"fmt"
	"strings"

	"github.com/phyten/taglight/internal/colorutil"
)

// Style is a set of SGR attributes. Nil colours leave the terminal default.
type Style struct {
	Bold      bool
	Dim       bool
	Italic    bool
	Underline bool
	Strike    bool
	FG        *colorutil.RGB
	BG        *colorutil.RGB
}

func (s Style) IsZero() bool {
	return s == Style{}
}

// Codes returns the SGR parameters for s, with colours reduced to p.
func Codes(s Style, p Profile) []string {
	codes := make([]string, 0, 7)
	if s.Bold {
		codes = append(codes, "1")
	}
	if s.Dim {
		codes = append(codes, "2")
	}
	if s.Italic {
		codes = append(codes, "3")
	}
	if s.Underline {
		codes = append(codes, "4")
	}
	if s.Strike {
		codes = append(codes, "9")
	}
	if s.FG != nil {
		codes = append(codes, colorCode(*s.FG, p, false))
	}
	if s.BG != nil {
		codes = append(codes, colorCode(*s.BG, p, true))
	}
	return codes
}

func colorCode(c colorutil.RGB, p Profile, bg bool) string {
	base := 38
	if bg {
		base = 48
	}
	switch p {
	case ProfileTrueColor:
		return fmt.Sprintf("%d;2;%d;%d;%d", base, c.R, c.G, c.B)
	case ProfileANSI256:
		return fmt.Sprintf("%d;5;%d", base, ANSI256(c))
	default:
		return fmt.Sprintf("%d", base-8+Basic(c))
	}
}

// Apply wraps text in the SGR sequence for s. Disabled output and empty
// styles return text unchanged.
func Apply(s Style, text string, p Profile, enabled bool) string {
	if !enabled || text == "" {
		return text
	}
	codes := Codes(s, p)
	if len(codes) == 0 {
		return text
	}
	return "\x1b[" + strings.Join(codes, ";") + "m" + text + "\x1b[0m"
}
