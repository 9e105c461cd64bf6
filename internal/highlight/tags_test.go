package highlight

import "testing"

func TestTagSetExtract(t *testing.T) {
	ts, err := NewTagSet([]string{"TODO", "TODOS", "[ ]", "FIXME"}, true)
	if err != nil {
		t.Fatalf("NewTagSet error: %v", err)
	}
	cases := []struct {
		match  string
		tag    string
		offset int
		length int
		ok     bool
	}{
		{"// TODO", "TODO", 3, 4, true},
		{"# TODOS", "TODOS", 2, 5, true},
		{"- [ ]", "[ ]", 2, 3, true},
		{"  // FIXME", "FIXME", 5, 5, true},
		{"// ünï TODO", "TODO", 7, 4, true},
		{"// todo", "", 0, 0, false},
		{"// nothing", "", 0, 0, false},
	}
	for _, tc := range cases {
		got, ok := ts.Extract(tc.match)
		if ok != tc.ok {
			t.Fatalf("Extract(%q) ok=%v want %v", tc.match, ok, tc.ok)
		}
		if !ok {
			continue
		}
		if got.Tag != tc.tag || got.TagOffset != tc.offset || got.Length != tc.length {
			t.Fatalf("Extract(%q)=%+v want tag=%s offset=%d length=%d", tc.match, got, tc.tag, tc.offset, tc.length)
		}
	}
}

func TestTagSetCaseInsensitiveKeepsSpelling(t *testing.T) {
	ts, err := NewTagSet([]string{"TODO"}, false)
	if err != nil {
		t.Fatalf("NewTagSet error: %v", err)
	}
	got, ok := ts.Extract("  // todo later")
	if !ok || got.Tag != "TODO" || got.TagOffset != 5 || got.CommentStart != 2 {
		t.Fatalf("Extract=%+v ok=%v", got, ok)
	}
}

func TestTagSetEmpty(t *testing.T) {
	ts, err := NewTagSet(nil, true)
	if err != nil {
		t.Fatalf("NewTagSet error: %v", err)
	}
	if _, ok := ts.Extract("// TODO"); ok {
		t.Fatalf("empty tag set should extract nothing")
	}
}

func TestAlternation(t *testing.T) {
	got := Alternation([]string{"TODO", "", "[x]", "TODOS", "  "})
	want := `TODOS|TODO|\[x\]`
	if got != want {
		t.Fatalf("Alternation=%q want %q", got, want)
	}
}

func TestGroups(t *testing.T) {
	g := NewGroups(map[string][]string{
		"FIXME": {"FIXME", "FIXIT", "BUG"},
		"BUGS":  {"BUG"},
	})
	cases := []struct {
		tag  string
		want string
		ok   bool
	}{
		{"FIXIT", "FIXME", true},
		{"fixit", "FIXME", true},
		{"BUG", "BUGS", true},
		{"TODO", "", false},
	}
	for _, tc := range cases {
		got, ok := g.Group(tc.tag)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Group(%q)=%q,%v want %q,%v", tc.tag, got, ok, tc.want, tc.ok)
		}
	}
}
