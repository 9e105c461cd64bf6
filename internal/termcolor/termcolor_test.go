package termcolor

import (
	"os"
	"testing"

	"github.com/phyten/taglight/internal/colorutil"
)

func TestParseMode(t *testing.T) {
	cases := []struct {
		input string
		want  ColorMode
		err   bool
	}{
		{"", ModeAuto, false},
		{"auto", ModeAuto, false},
		{"always", ModeAlways, false},
		{"never", ModeNever, false},
		{"ALWAYS", ModeAlways, false},
		{"invalid", ModeAuto, true},
	}
	for _, tc := range cases {
		got, err := ParseMode(tc.input)
		if (err != nil) != tc.err {
			t.Fatalf("ParseMode(%q) err=%v want error %v", tc.input, err, tc.err)
		}
		if got != tc.want {
			t.Fatalf("ParseMode(%q)=%v want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseScheme(t *testing.T) {
	cases := map[string]Scheme{"": SchemeUnknown, "auto": SchemeUnknown, "Dark": SchemeDark, "light": SchemeLight}
	for in, want := range cases {
		got, err := ParseScheme(in)
		if err != nil || got != want {
			t.Fatalf("ParseScheme(%q)=%v,%v want %v", in, got, err, want)
		}
	}
	if _, err := ParseScheme("sepia"); err == nil {
		t.Fatalf("ParseScheme(sepia) should fail")
	}
}

func TestTerminalColors(t *testing.T) {
	_, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer func() {
		_ = w.Close()
	}()

	cases := []struct {
		env  map[string]string
		want bool
	}{
		{map[string]string{"NO_COLOR": "1"}, false},
		{map[string]string{"CLICOLOR_FORCE": "1"}, true},
		{map[string]string{"FORCE_COLOR": "2"}, true},
		{map[string]string{"FORCE_COLOR": "0"}, false},
		{map[string]string{"NO_COLOR": "1", "CLICOLOR_FORCE": "1"}, false},
		{map[string]string{"CLICOLOR": "0"}, false},
		{map[string]string{"TERM": "dumb", "FORCE_COLOR": "1"}, false},
		{nil, false},
	}
	for _, tc := range cases {
		term := Terminal{Out: w, Env: tc.env}
		if got := term.Colors(ModeAuto); got != tc.want {
			t.Fatalf("Colors(auto) env=%v =%v want %v", tc.env, got, tc.want)
		}
	}
	if !(Terminal{}).Colors(ModeAlways) {
		t.Fatalf("ModeAlways should be enabled even with nil stdout")
	}
	if (Terminal{Env: map[string]string{"FORCE_COLOR": "1"}}).Colors(ModeNever) {
		t.Fatalf("ModeNever should win over FORCE_COLOR")
	}
}

func TestTerminalProfile(t *testing.T) {
	cases := []struct {
		env  map[string]string
		want Profile
	}{
		{map[string]string{"COLORTERM": "truecolor"}, ProfileTrueColor},
		{map[string]string{"COLORTERM": "24bit"}, ProfileTrueColor},
		{map[string]string{"TERM": "xterm-256color"}, ProfileANSI256},
		{map[string]string{}, ProfileBasic8},
	}
	for _, tc := range cases {
		if got := (Terminal{Env: tc.env}).Profile(); got != tc.want {
			t.Fatalf("Profile(%v)=%v want %v", tc.env, got, tc.want)
		}
	}
}

func TestTerminalScheme(t *testing.T) {
	cases := []struct {
		env       map[string]string
		requested Scheme
		want      Scheme
	}{
		{map[string]string{"COLORFGBG": "7;0"}, SchemeUnknown, SchemeDark},
		{map[string]string{"COLORFGBG": "0;15"}, SchemeUnknown, SchemeLight},
		{map[string]string{"COLORFGBG": "15;7"}, SchemeUnknown, SchemeLight},
		{map[string]string{"TERM": "xterm-light"}, SchemeUnknown, SchemeLight},
		{nil, SchemeUnknown, SchemeDark},
		{map[string]string{"COLORFGBG": "0;15"}, SchemeDark, SchemeDark},
	}
	for _, tc := range cases {
		if got := (Terminal{Env: tc.env}).Scheme(tc.requested); got != tc.want {
			t.Fatalf("Scheme(%v,%v)=%v want %v", tc.env, tc.requested, got, tc.want)
		}
	}
}

func TestEnvMap(t *testing.T) {
	env := EnvMap([]string{"FOO=bar", "BAZ", "QUX=1=2", ""})
	if env["FOO"] != "bar" || env["BAZ"] != "" || env["QUX"] != "1=2" || len(env) != 3 {
		t.Fatalf("EnvMap=%v", env)
	}
}

func TestApply(t *testing.T) {
	red := colorutil.RGB{R: 255}
	s := Style{Bold: true, FG: &red}
	cases := []struct {
		profile Profile
		want    string
	}{
		{ProfileBasic8, "\x1b[1;31mHi\x1b[0m"},
		{ProfileANSI256, "\x1b[1;38;5;196mHi\x1b[0m"},
		{ProfileTrueColor, "\x1b[1;38;2;255;0;0mHi\x1b[0m"},
	}
	for _, tc := range cases {
		if got := Apply(s, "Hi", tc.profile, true); got != tc.want {
			t.Fatalf("Apply(%v)=%q want %q", tc.profile, got, tc.want)
		}
	}
	if got := Apply(Style{}, "Hi", ProfileTrueColor, true); got != "Hi" {
		t.Fatalf("empty style should return text, got %q", got)
	}
	if got := Apply(s, "Hi", ProfileTrueColor, false); got != "Hi" {
		t.Fatalf("disabled Apply should return text, got %q", got)
	}
}

func TestCodesBackgroundAndEffects(t *testing.T) {
	bg := colorutil.RGB{R: 0, G: 0, B: 238}
	codes := Codes(Style{Italic: true, Strike: true, Underline: true, BG: &bg}, ProfileBasic8)
	want := []string{"3", "4", "9", "44"}
	if len(codes) != len(want) {
		t.Fatalf("Codes=%v want %v", codes, want)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("Codes=%v want %v", codes, want)
		}
	}
}

func TestANSI256(t *testing.T) {
	cases := []struct {
		in   colorutil.RGB
		want int
	}{
		{colorutil.RGB{R: 255}, 196},
		{colorutil.RGB{G: 255}, 46},
		{colorutil.RGB{}, 16},
		{colorutil.RGB{R: 255, G: 255, B: 255}, 231},
	}
	for _, tc := range cases {
		if got := ANSI256(tc.in); got != tc.want {
			t.Fatalf("ANSI256(%v)=%d want %d", tc.in, got, tc.want)
		}
	}
}
