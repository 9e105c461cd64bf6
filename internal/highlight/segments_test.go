package highlight

import (
	"strings"
	"testing"

	"github.com/phyten/taglight/internal/ranges"
	"github.com/phyten/taglight/internal/textstyle"
)

func TestBuildSegmentsBoundarySweep(t *testing.T) {
	color := textstyle.Uniform(textstyle.Theme{Color: "#ff0000"})
	glow := textstyle.Uniform(textstyle.Theme{TextShadow: "0 0 5px #ff0000"})
	segs := BuildSegments(ChannelRanges{
		Color: []ranges.Range{{Start: 10, End: 20}},
		Glow:  []ranges.Range{{Start: 15, End: 25}},
	}, textstyle.ChannelStyles{Color: &color, Glow: &glow})

	want := []struct {
		start, end int
		color      bool
		shadow     bool
	}{
		{10, 15, true, false},
		{15, 20, true, true},
		{20, 25, false, true},
	}
	if len(segs) != len(want) {
		t.Fatalf("segments=%+v want %d", segs, len(want))
	}
	for i, w := range want {
		s := segs[i]
		if s.Start != w.start || s.End != w.end {
			t.Fatalf("segment %d=[%d,%d) want [%d,%d)", i, s.Start, s.End, w.start, w.end)
		}
		if (s.Style.Light.Color != "") != w.color {
			t.Fatalf("segment %d color=%q", i, s.Style.Light.Color)
		}
		if strings.Contains(s.Style.Dark.TextDecoration, "text-shadow") != w.shadow {
			t.Fatalf("segment %d decoration=%q", i, s.Style.Dark.TextDecoration)
		}
		if s.StyleHash != textstyle.Hash(s.Style) {
			t.Fatalf("segment %d hash mismatch", i)
		}
	}
	if segs[0].StyleHash == segs[1].StyleHash || segs[1].StyleHash == segs[2].StyleHash {
		t.Fatalf("distinct combinations must hash differently: %+v", segs)
	}
}

func TestBuildSegmentsNeverOverlap(t *testing.T) {
	color := textstyle.Uniform(textstyle.Theme{Color: "#fff"})
	font := textstyle.Uniform(textstyle.Theme{FontWeight: "bold"})
	segs := BuildSegments(ChannelRanges{
		Color: []ranges.Range{{Start: 0, End: 4}, {Start: 8, End: 12}},
		Font:  []ranges.Range{{Start: 2, End: 10}},
	}, textstyle.ChannelStyles{Color: &color, Font: &font})
	for i := 1; i < len(segs); i++ {
		if segs[i].Start < segs[i-1].End {
			t.Fatalf("overlap between %+v and %+v", segs[i-1], segs[i])
		}
	}
	if len(segs) != 5 {
		t.Fatalf("len(segments)=%d want 5: %+v", len(segs), segs)
	}
}

// 効果のないスタイルはセグメントにしない
func TestBuildSegmentsSkipsEmptyStyles(t *testing.T) {
	empty := textstyle.Pair{}
	segs := BuildSegments(ChannelRanges{
		Font: []ranges.Range{{Start: 0, End: 5}},
	}, textstyle.ChannelStyles{Font: &empty})
	if len(segs) != 0 {
		t.Fatalf("segments=%+v want none", segs)
	}
	if segs := BuildSegments(ChannelRanges{}, textstyle.ChannelStyles{}); len(segs) != 0 {
		t.Fatalf("no ranges should give no segments: %+v", segs)
	}
}

func TestBuildSegmentsGapIsSkipped(t *testing.T) {
	color := textstyle.Uniform(textstyle.Theme{Color: "#fff"})
	segs := BuildSegments(ChannelRanges{
		Color: []ranges.Range{{Start: 0, End: 2}, {Start: 5, End: 7}},
	}, textstyle.ChannelStyles{Color: &color})
	if len(segs) != 2 || segs[0].End != 2 || segs[1].Start != 5 {
		t.Fatalf("segments=%+v", segs)
	}
	if segs[0].StyleHash != segs[1].StyleHash {
		t.Fatalf("same style should share a hash")
	}
}
