// Package termcolor decides whether and how to colour terminal output and
// encodes styles as SGR sequences.
package termcolor

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

type ColorMode int

const (
	ModeAuto ColorMode = iota
	ModeAlways
	ModeNever
)

func (m ColorMode) String() string {
	switch m {
	case ModeAlways:
		return "always"
	case ModeNever:
		return "never"
	default:
		return "auto"
	}
}

func ParseMode(v string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "auto":
		return ModeAuto, nil
	case "always":
		return ModeAlways, nil
	case "never":
		return ModeNever, nil
	default:
		return ModeAuto, fmt.Errorf("unknown color mode: %s", v)
	}
}

type Profile int

const (
	ProfileBasic8 Profile = iota
	ProfileANSI256
	ProfileTrueColor
)

func (p Profile) String() string {
	switch p {
	case ProfileTrueColor:
		return "truecolor"
	case ProfileANSI256:
		return "256"
	default:
		return "basic"
	}
}

type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeDark
	SchemeLight
)

// ParseScheme accepts auto, light and dark. Auto yields SchemeUnknown.
func ParseScheme(v string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "auto":
		return SchemeUnknown, nil
	case "dark":
		return SchemeDark, nil
	case "light":
		return SchemeLight, nil
	default:
		return SchemeUnknown, fmt.Errorf("unknown theme: %s", v)
	}
}

func EnvMap(values []string) map[string]string {
	env := make(map[string]string, len(values))
	for _, entry := range values {
		if entry == "" {
			continue
		}
		if idx := strings.Index(entry, "="); idx >= 0 {
			env[entry[:idx]] = entry[idx+1:]
		} else {
			env[entry] = ""
		}
	}
	return env
}

// Terminal describes an output stream and the environment it runs in.
type Terminal struct {
	Out *os.File
	Env map[string]string
}

// Colors reports whether output should carry SGR sequences.
//
// ModeAlways and ModeNever are final. For ModeAuto, first match wins:
//  1. TERM=dumb, NO_COLOR or CLICOLOR=0 disable colours.
//  2. CLICOLOR_FORCE / FORCE_COLOR with a non-zero value enable them.
//  3. Otherwise colours follow whether Out is a TTY.
func (t Terminal) Colors(mode ColorMode) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	}
	env := t.Env
	if strings.EqualFold(strings.TrimSpace(env["TERM"]), "dumb") {
		return false
	}
	if strings.TrimSpace(env["NO_COLOR"]) != "" || strings.TrimSpace(env["CLICOLOR"]) == "0" {
		return false
	}
	if forceColor(env["CLICOLOR_FORCE"]) || forceColor(env["FORCE_COLOR"]) {
		return true
	}
	return isTerminal(t.Out)
}

// Profile picks the richest palette COLORTERM or TERM advertise.
func (t Terminal) Profile() Profile {
	if v := strings.ToLower(strings.TrimSpace(t.Env["COLORTERM"])); v != "" {
		if strings.Contains(v, "truecolor") || strings.Contains(v, "24bit") || strings.Contains(v, "24-bit") {
			return ProfileTrueColor
		}
	}
	if strings.Contains(strings.ToLower(t.Env["TERM"]), "256color") {
		return ProfileANSI256
	}
	return ProfileBasic8
}

// Scheme resolves requested against the terminal background. COLORFGBG is
// consulted first, then a TERM name containing "light"; dark otherwise.
func (t Terminal) Scheme(requested Scheme) Scheme {
	if requested != SchemeUnknown {
		return requested
	}
	if raw := strings.TrimSpace(t.Env["COLORFGBG"]); raw != "" {
		parts := strings.Split(raw, ";")
		bgRaw := strings.TrimSpace(parts[len(parts)-1])
		if bgRaw == "" && len(parts) >= 2 {
			bgRaw = strings.TrimSpace(parts[len(parts)-2])
		}
		if bg, err := strconv.Atoi(bgRaw); err == nil && bg >= 0 {
			if bg >= 7 && bg != 8 {
				return SchemeLight
			}
			return SchemeDark
		}
	}
	if strings.Contains(strings.ToLower(t.Env["TERM"]), "light") {
		return SchemeLight
	}
	return SchemeDark
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func forceColor(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != "0"
}
