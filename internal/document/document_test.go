package document

import "testing"

func TestPositionAt(t *testing.T) {
	d := New("file:///a.go", "// TODO: fix\r\n日本 TODO\nlast")
	cases := []struct {
		offset          int
		line, character int
		column          int
	}{
		{0, 0, 0, 0},
		{3, 0, 3, 3},
		{14, 1, 0, 0},
		{17, 1, 3, 5},
		{22, 2, 0, 0},
		{99, 2, 4, 4},
	}
	for _, tc := range cases {
		p := d.PositionAt(tc.offset)
		if p.Line != tc.line || p.Character != tc.character || p.Column != tc.column {
			t.Fatalf("PositionAt(%d)=%+v want line=%d char=%d col=%d", tc.offset, p, tc.line, tc.character, tc.column)
		}
	}
}

func TestLineBounds(t *testing.T) {
	d := New("u", "ab\r\ncd\n\nef")
	cases := []struct{ line, start, end int }{
		{0, 0, 2},
		{1, 4, 6},
		{2, 7, 7},
		{3, 8, 10},
		{9, 8, 10},
	}
	for _, tc := range cases {
		s, e := d.LineBounds(tc.line)
		if s != tc.start || e != tc.end {
			t.Fatalf("LineBounds(%d)=(%d,%d) want (%d,%d)", tc.line, s, e, tc.start, tc.end)
		}
	}
	if d.LineCount() != 4 {
		t.Fatalf("LineCount=%d want 4", d.LineCount())
	}
	if got := d.Line(1); got != "cd" {
		t.Fatalf("Line(1)=%q", got)
	}
}

func TestOffsetRoundTrip(t *testing.T) {
	d := New("u", "x\ny 日本\nz")
	for off := 0; off <= d.Len(); off++ {
		p := d.PositionAt(off)
		if got := d.OffsetAt(p.Line, p.Character); got != off {
			t.Fatalf("OffsetAt(PositionAt(%d))=%d", off, got)
		}
	}
}

func TestRange(t *testing.T) {
	d := New("u", "hello")
	if _, ok := d.Range(3, 3); ok {
		t.Fatal("empty range should be rejected")
	}
	if _, ok := d.Range(10, 12); ok {
		t.Fatal("range clamped to nothing should be rejected")
	}
	r, ok := d.Range(1, 4)
	if !ok || r.Start.Offset != 1 || r.End.Offset != 4 {
		t.Fatalf("Range(1,4)=%+v,%v", r, ok)
	}
	if d.Slice(1, 4) != "ell" {
		t.Fatalf("Slice=%q", d.Slice(1, 4))
	}
}
