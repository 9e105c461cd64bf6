// Package textutil measures text in terminal columns.
package textutil

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DefaultTabWidth is the tab stop used when rendering documents.
const DefaultTabWidth = 4

// CSI and OSC sequences.
var ansiRe = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

// StripANSI removes escape sequences from s.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, 0x1b) {
		return s
	}
	return ansiRe.ReplaceAllString(s, "")
}

// VisibleWidth returns the display width of s, grapheme by grapheme.
// Escape sequences take no space.
func VisibleWidth(s string) int {
	if s == "" {
		return 0
	}
	g := uniseg.NewGraphemes(StripANSI(s))
	width := 0
	for g.Next() {
		width += runewidth.StringWidth(g.Str())
	}
	return width
}

// ExpandTabs replaces tabs with spaces up to the next tab stop. col is the
// display column s starts at; the column after s is returned so that
// consecutive pieces of one line can be expanded in turn.
func ExpandTabs(s string, col, tabWidth int) (string, int) {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	if !strings.ContainsRune(s, '\t') {
		return s, col + VisibleWidth(s)
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		seg := g.Str()
		if seg == "\t" {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteString(seg)
		col += runewidth.StringWidth(seg)
	}
	return b.String(), col
}

// PadLeft right-aligns s in a field of w columns.
func PadLeft(s string, w int) string {
	pad := w - VisibleWidth(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
