// Package ranges resolves which offsets of a tag occurrence a highlight
// channel covers.
package ranges

import (
	"sort"
	"strconv"
	"strings"
)

// Kind selects the scope of a channel.
type Kind int

const (
	KindTag Kind = iota
	KindText
	KindTagAndComment
	KindTextAndComment
	KindTagAndSubTag
	KindLine
	KindWholeLine
	KindNone
	KindCaptureGroups
)

// CaptureGroupPrefix introduces a capture-group scope, e.g. "capture-groups:1,2".
const CaptureGroupPrefix = "capture-groups:"

var kindNames = map[Kind]string{
	KindTag:            "tag",
	KindText:           "text",
	KindTagAndComment:  "tag-and-comment",
	KindTextAndComment: "text-and-comment",
	KindTagAndSubTag:   "tag-and-subTag",
	KindLine:           "line",
	KindWholeLine:      "whole-line",
	KindNone:           "none",
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// Type is a parsed range type. Groups is only meaningful for KindCaptureGroups.
type Type struct {
	Kind   Kind
	Groups []int
}

var (
	Tag  = Type{Kind: KindTag}
	None = Type{Kind: KindNone}
)

// Normalise folds legacy spellings onto their canonical form.
func Normalise(raw string) string {
	if raw == "tag-and-subtag" {
		return "tag-and-subTag"
	}
	return raw
}

// Parse converts a configured range type. Unknown and empty values resolve to
// KindTag. Capture-group indices that are not numbers are dropped.
func Parse(raw string) Type {
	raw = Normalise(strings.TrimSpace(raw))
	if strings.HasPrefix(raw, CaptureGroupPrefix) {
		list := strings.TrimPrefix(raw, CaptureGroupPrefix)
		var groups []int
		for _, part := range strings.Split(list, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || n < 0 {
				continue
			}
			groups = append(groups, n)
		}
		return Type{Kind: KindCaptureGroups, Groups: groups}
	}
	if k, ok := kindByName[raw]; ok {
		return Type{Kind: k}
	}
	return Tag
}

func (t Type) String() string {
	if t.Kind == KindCaptureGroups {
		parts := make([]string, len(t.Groups))
		for i, g := range t.Groups {
			parts[i] = strconv.Itoa(g)
		}
		return CaptureGroupPrefix + strings.Join(parts, ",")
	}
	if name, ok := kindNames[t.Kind]; ok {
		return name
	}
	return kindNames[KindTag]
}

func (t Type) IsNone() bool { return t.Kind == KindNone }

// IsWholeLine reports whether the scope spans a full line.
func (t Type) IsWholeLine() bool {
	return t.Kind == KindLine || t.Kind == KindWholeLine
}

// Equal compares kinds and capture groups.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind || len(t.Groups) != len(o.Groups) {
		return false
	}
	for i := range t.Groups {
		if t.Groups[i] != o.Groups[i] {
			return false
		}
	}
	return true
}

// Range is a half-open [Start, End) offset interval.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Unset marks an optional Context offset that was not supplied.
const Unset = -1

// Context holds the boundaries of one match. Offsets below zero are unset.
type Context struct {
	TagStart     int
	TagEnd       int
	MatchStart   int
	MatchEnd     int
	CommentStart int
	CommentEnd   int
	LineStart    int
	LineEnd      int
	SubTagStart  int
	SubTagEnd    int
	// MatchIndices holds [start, end) per capture group; index 0 is the whole
	// match. Groups that did not participate are {-1, -1}.
	MatchIndices [][2]int
}

// NewContext returns a Context with every optional offset unset.
func NewContext(tagStart, tagEnd int) Context {
	return Context{
		TagStart:     tagStart,
		TagEnd:       tagEnd,
		MatchStart:   Unset,
		MatchEnd:     Unset,
		CommentStart: Unset,
		CommentEnd:   Unset,
		LineStart:    Unset,
		LineEnd:      Unset,
		SubTagStart:  Unset,
		SubTagEnd:    Unset,
	}
}

// withDefaults fills derived boundaries.
func (c Context) withDefaults() Context {
	start := c.MatchStart
	if start < 0 {
		start = c.TagStart
	}
	if c.CommentStart < 0 {
		c.CommentStart = start
	}
	if c.CommentEnd < 0 {
		if c.LineEnd >= 0 {
			c.CommentEnd = c.LineEnd
		} else {
			c.CommentEnd = c.TagEnd
		}
	}
	if c.LineStart < 0 {
		c.LineStart = start
	}
	if c.LineEnd < 0 {
		c.LineEnd = c.CommentEnd
	}
	return c
}

func push(out []Range, start, end int) []Range {
	if start < 0 || end < 0 || end <= start {
		return out
	}
	return append(out, Range{Start: start, End: end})
}

// Resolve returns the sorted, merged offsets covered by t for the match.
func Resolve(t Type, ctx Context) []Range {
	ctx = ctx.withDefaults()
	var out []Range

	switch t.Kind {
	case KindCaptureGroups:
		for _, g := range t.Groups {
			if g < 0 || g >= len(ctx.MatchIndices) {
				continue
			}
			pair := ctx.MatchIndices[g]
			out = push(out, pair[0], pair[1])
		}
	case KindNone:
	case KindTagAndComment, KindTextAndComment:
		out = push(out, ctx.TagStart, ctx.TagEnd)
		out = push(out, ctx.CommentStart, ctx.CommentEnd)
	case KindText:
		out = push(out, ctx.TagStart, ctx.CommentEnd)
	case KindTagAndSubTag:
		out = push(out, ctx.TagStart, ctx.TagEnd)
		out = push(out, ctx.SubTagStart, ctx.SubTagEnd)
	case KindLine, KindWholeLine:
		out = push(out, ctx.LineStart, ctx.LineEnd)
	default:
		out = push(out, ctx.TagStart, ctx.TagEnd)
	}
	return Merge(out)
}

// MissingGroups lists requested capture groups that the match did not produce.
func MissingGroups(t Type, ctx Context) []int {
	if t.Kind != KindCaptureGroups {
		return nil
	}
	var missing []int
	for _, g := range t.Groups {
		if g >= len(ctx.MatchIndices) {
			missing = append(missing, g)
			continue
		}
		pair := ctx.MatchIndices[g]
		if pair[0] < 0 || pair[1] <= pair[0] {
			missing = append(missing, g)
		}
	}
	return missing
}

// Merge sorts ranges and coalesces overlapping or touching ones. Invalid
// ranges are dropped. The input slice is not modified.
func Merge(in []Range) []Range {
	sorted := make([]Range, 0, len(in))
	for _, r := range in {
		if r.Start >= 0 && r.End > r.Start {
			sorted = append(sorted, r)
		}
	}
	if len(sorted) == 0 {
		return []Range{}
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})
	merged := []Range{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
