package colorutil

import "testing"

func TestParseHex(t *testing.T) {
	c, a, hasAlpha, ok := ParseHex("#FF000033")
	if !ok || !hasAlpha {
		t.Fatalf("ParseHex should accept 8 digit hex, ok=%v hasAlpha=%v", ok, hasAlpha)
	}
	if c != (RGB{255, 0, 0}) {
		t.Fatalf("ParseHex rgb=%v want red", c)
	}
	if a < 0.19 || a > 0.21 {
		t.Fatalf("ParseHex alpha=%v want 0.2", a)
	}

	c, _, hasAlpha, ok = ParseHex("#abc")
	if !ok || hasAlpha || c != (RGB{0xaa, 0xbb, 0xcc}) {
		t.Fatalf("ParseHex(#abc)=%v hasAlpha=%v ok=%v", c, hasAlpha, ok)
	}

	for _, bad := range []string{"", "abc", "#ab", "#abcde", "#gggggg", "rgb(0,0,0)"} {
		if _, _, _, ok := ParseHex(bad); ok {
			t.Fatalf("ParseHex(%q) should fail", bad)
		}
	}
}

func TestHexToRGBA(t *testing.T) {
	cases := []struct {
		hex     string
		percent float64
		want    string
	}{
		{"#112233", 15, "rgba(17,34,51,0.15)"},
		{"#112233", 100, "rgba(17,34,51,1)"},
		{"#FF000033", 15, "rgba(255,0,0,0.2)"},
		{"#fff", 60, "rgba(255,255,255,0.6)"},
		{"var(--x)", 50, "var(--x)"},
	}
	for _, tc := range cases {
		if got := HexToRGBA(tc.hex, tc.percent); got != tc.want {
			t.Fatalf("HexToRGBA(%q,%v)=%q want %q", tc.hex, tc.percent, got, tc.want)
		}
	}
}

func TestSetRGBAlpha(t *testing.T) {
	if got := SetRGBAlpha("rgb(10, 20, 30)", 0.5); got != "rgba(10,20,30,0.5)" {
		t.Fatalf("SetRGBAlpha=%q", got)
	}
	if got := SetRGBAlpha("rgba(10,20,30,0.9)", 0.25); got != "rgba(10,20,30,0.25)" {
		t.Fatalf("SetRGBAlpha replace=%q", got)
	}
	if got := SetRGBAlpha("rgb(300,0,0)", 0.5); got != "rgb(300,0,0)" {
		t.Fatalf("out of range component should pass through, got %q", got)
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{"#fff", "#FF000033", "rgb(1,2,3)", "rgba(1,2,3,0.4)", "editor.foreground", "red"}
	for _, v := range valid {
		if !IsValid(v) {
			t.Fatalf("IsValid(%q) should be true", v)
		}
	}
	invalid := []string{"", "not a colour", "#12", "foreground"}
	for _, v := range invalid {
		if IsValid(v) {
			t.Fatalf("IsValid(%q) should be false", v)
		}
	}
}
