package scheme

import (
	"strings"
	"testing"
)

func TestFlags(t *testing.T) {
	cases := []struct {
		name        string
		glow, glass bool
	}{
		{"neon", true, false},
		{"glass", false, true},
		{"neon+glass", true, true},
		{"", false, false},
		{"other", false, false},
		// 大文字・空白は別名扱い
		{"Neon", false, false},
		{"GLASS", false, false},
		{" neon+glass ", false, false},
	}
	for _, tc := range cases {
		glow, glass := Flags(tc.name)
		if glow != tc.glow || glass != tc.glass {
			t.Fatalf("Flags(%q)=(%v,%v) want (%v,%v)", tc.name, glow, glass, tc.glow, tc.glass)
		}
	}
}

func TestGetKeepsGlowAndGlassIndependent(t *testing.T) {
	neon := Get(Neon, "#112233", "#445566")
	if neon.Glow == nil || neon.Glass != nil {
		t.Fatalf("neon preset=%+v", neon)
	}
	glass := Get(Glass, "#112233", "#445566")
	if glass.Glass == nil || glass.Glow != nil {
		t.Fatalf("glass preset=%+v", glass)
	}
	both := Get(NeonGlass, "#112233", "#445566")
	if both.Glow == nil || both.Glass == nil {
		t.Fatalf("neon+glass preset=%+v", both)
	}
	if both.Glass.Light.BackgroundColor != "rgba(17,34,51,0.15)" {
		t.Fatalf("light glass background=%q", both.Glass.Light.BackgroundColor)
	}
	if both.Glass.Dark.Border != "1px solid rgba(68,85,102,0.6)" {
		t.Fatalf("dark glass border=%q", both.Glass.Dark.Border)
	}
	if !strings.Contains(both.Glow.Dark.TextShadow, "#445566") {
		t.Fatalf("dark glow should use the dark colour: %q", both.Glow.Dark.TextShadow)
	}
}

func TestGetFallsBackToAccent(t *testing.T) {
	p := Get(Neon, "not-a-colour", "")
	if p.LightColor != DefaultAccent || p.DarkColor != DefaultAccent {
		t.Fatalf("fallback colours=(%q,%q)", p.LightColor, p.DarkColor)
	}
	p = Get(Neon, "#123", "")
	if p.DarkColor != "#123" {
		t.Fatalf("dark should fall back to light, got %q", p.DarkColor)
	}
}

func TestDefaultOpacity(t *testing.T) {
	if v, ok := DefaultOpacity(NeonGlass); !ok || v != 15 {
		t.Fatalf("DefaultOpacity(neon+glass)=(%v,%v)", v, ok)
	}
	if _, ok := DefaultOpacity(Neon); ok {
		t.Fatalf("neon should not imply an opacity")
	}
	if _, ok := DefaultOpacity("Glass"); ok {
		t.Fatalf("Glass should not imply an opacity")
	}
}
