package highlight

import (
	"sort"

	"github.com/phyten/taglight/internal/ranges"
	"github.com/phyten/taglight/internal/textstyle"
)

// Segment is a half-open interval with one composed text style.
type Segment struct {
	Start     int
	End       int
	Style     textstyle.Pair
	StyleHash string
}

// ChannelRanges holds the resolved ranges of the text channels for one match.
type ChannelRanges struct {
	Color []ranges.Range
	Font  []ranges.Range
	Glow  []ranges.Range
}

// BuildSegments partitions the channel ranges at every boundary and composes
// the style of the channels active in each piece. Pieces no channel covers,
// and pieces whose style changes nothing, are skipped. The result is ordered
// and never overlaps.
func BuildSegments(cr ChannelRanges, cs textstyle.ChannelStyles) []Segment {
	bounds := boundaries(cr.Color, cr.Font, cr.Glow)
	var out []Segment
	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		var active textstyle.ChannelStyles
		if covered(cr.Color, start, end) {
			active.Color = cs.Color
		}
		if covered(cr.Font, start, end) {
			active.Font = cs.Font
		}
		if covered(cr.Glow, start, end) {
			active.Glow = cs.Glow
		}
		if active.Color == nil && active.Font == nil && active.Glow == nil {
			continue
		}
		style := textstyle.Compose(active)
		if !style.HasTextEffect() {
			continue
		}
		out = append(out, Segment{
			Start:     start,
			End:       end,
			Style:     style,
			StyleHash: textstyle.Hash(style),
		})
	}
	return out
}

func boundaries(lists ...[]ranges.Range) []int {
	seen := make(map[int]struct{})
	var out []int
	add := func(v int) {
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	for _, list := range lists {
		for _, r := range list {
			add(r.Start)
			add(r.End)
		}
	}
	sort.Ints(out)
	return out
}

func covered(list []ranges.Range, start, end int) bool {
	for _, r := range list {
		if r.Start <= start && r.End >= end {
			return true
		}
	}
	return false
}
