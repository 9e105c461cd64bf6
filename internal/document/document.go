// Package document is an in-memory text document addressed by rune offsets.
package document

import (
	"github.com/phyten/taglight/internal/textutil"
)

// Position locates a rune offset. Character counts runes from the line
// start; Column is the display width of the text before it.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
	Column    int `json:"column"`
	Offset    int `json:"offset"`
}

// Range is a half-open span between two positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type Document struct {
	uri        string
	text       string
	runes      []rune
	lineStarts []int
}

func New(uri, text string) *Document {
	d := &Document{uri: uri, text: text, runes: []rune(text)}
	d.lineStarts = []int{0}
	for i, r := range d.runes {
		if r == '\n' {
			d.lineStarts = append(d.lineStarts, i+1)
		}
	}
	return d
}

func (d *Document) URI() string  { return d.uri }
func (d *Document) Text() string { return d.text }

// Len is the length in runes.
func (d *Document) Len() int { return len(d.runes) }

func (d *Document) LineCount() int { return len(d.lineStarts) }

func (d *Document) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(d.runes) {
		return len(d.runes)
	}
	return offset
}

func (d *Document) lineOf(offset int) int {
	lo, hi := 0, len(d.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if d.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// LineBounds returns the rune offsets of a line, excluding its line break.
func (d *Document) LineBounds(line int) (start, end int) {
	if line < 0 {
		line = 0
	}
	if line >= len(d.lineStarts) {
		line = len(d.lineStarts) - 1
	}
	start = d.lineStarts[line]
	end = len(d.runes)
	if line+1 < len(d.lineStarts) {
		end = d.lineStarts[line+1] - 1
		if end > start && d.runes[end-1] == '\r' {
			end--
		}
	}
	return start, end
}

// PositionAt converts an offset, clamped to the document, into a position.
func (d *Document) PositionAt(offset int) Position {
	offset = d.clamp(offset)
	line := d.lineOf(offset)
	start := d.lineStarts[line]
	return Position{
		Line:      line,
		Character: offset - start,
		Column:    textutil.VisibleWidth(string(d.runes[start:offset])),
		Offset:    offset,
	}
}

// OffsetAt converts a line and character back into an offset.
func (d *Document) OffsetAt(line, character int) int {
	start, end := d.LineBounds(line)
	if character < 0 {
		character = 0
	}
	if start+character > end {
		return end
	}
	return start + character
}

// Slice returns the text between two rune offsets.
func (d *Document) Slice(start, end int) string {
	start, end = d.clamp(start), d.clamp(end)
	if end <= start {
		return ""
	}
	return string(d.runes[start:end])
}

// Line returns the text of a line without its line break.
func (d *Document) Line(line int) string {
	start, end := d.LineBounds(line)
	return d.Slice(start, end)
}

// Range builds a range from two offsets; ok is false when it would be empty.
func (d *Document) Range(start, end int) (Range, bool) {
	if end <= start {
		return Range{}, false
	}
	r := Range{Start: d.PositionAt(start), End: d.PositionAt(end)}
	if r.End.Offset <= r.Start.Offset {
		return Range{}, false
	}
	return r, true
}
