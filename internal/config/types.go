package config

import (
	"net/url"
	"strings"
)

type HighlightConfig struct {
	Enabled            *bool                      `yaml:"enabled" toml:"enabled" json:"enabled"`
	HighlightDelay     *int                       `yaml:"highlight_delay" toml:"highlight_delay" json:"highlight_delay"`
	Tags               *[]string                  `yaml:"tags" toml:"tags" json:"tags"`
	Regex              *string                    `yaml:"regex" toml:"regex" json:"regex"`
	RegexCaseSensitive *bool                      `yaml:"regex_case_sensitive" toml:"regex_case_sensitive" json:"regex_case_sensitive"`
	SubTagRegex        *string                    `yaml:"sub_tag_regex" toml:"sub_tag_regex" json:"sub_tag_regex"`
	TagGroups          *map[string][]string       `yaml:"tag_groups" toml:"tag_groups" json:"tag_groups"`
	DefaultHighlight   *map[string]any            `yaml:"default_highlight" toml:"default_highlight" json:"default_highlight"`
	CustomHighlight    *map[string]map[string]any `yaml:"custom_highlight" toml:"custom_highlight" json:"custom_highlight"`
	OverviewRulerLane  *string                    `yaml:"overview_ruler_lane" toml:"overview_ruler_lane" json:"overview_ruler_lane"`
	Opacity            *float64                   `yaml:"opacity" toml:"opacity" json:"opacity"`
	BorderRadius       *string                    `yaml:"border_radius" toml:"border_radius" json:"border_radius"`
	FontWeight         *string                    `yaml:"font_weight" toml:"font_weight" json:"font_weight"`
	FontStyle          *string                    `yaml:"font_style" toml:"font_style" json:"font_style"`
	TextDecoration     *string                    `yaml:"text_decoration" toml:"text_decoration" json:"text_decoration"`
	Schemes            *[]string                  `yaml:"schemes" toml:"schemes" json:"schemes"`
}

type UIConfig struct {
	Color  *string `yaml:"color" toml:"color" json:"color"`
	Theme  *string `yaml:"theme" toml:"theme" json:"theme"`
	Output *string `yaml:"output" toml:"output" json:"output"`
	Gutter *bool   `yaml:"gutter" toml:"gutter" json:"gutter"`
}

type Config struct {
	Highlight HighlightConfig `yaml:"highlight" toml:"highlight" json:"highlight"`
	UI        UIConfig        `yaml:"ui" toml:"ui" json:"ui"`
}

// HighlightSettings is the resolved highlight configuration. Opacity is nil
// when no layer sets it so that scheme-derived defaults can apply.
type HighlightSettings struct {
	Enabled            bool
	HighlightDelay     int
	Tags               []string
	Regex              string
	RegexCaseSensitive bool
	SubTagRegex        string
	TagGroups          map[string][]string
	DefaultHighlight   map[string]any
	CustomHighlight    map[string]map[string]any
	OverviewRulerLane  string
	Opacity            *float64
	BorderRadius       string
	FontWeight         string
	FontStyle          string
	TextDecoration     string
	Schemes            []string
}

type UISettings struct {
	Color  string
	Theme  string
	Output string
	Gutter bool
}

const (
	// TagsPlaceholder is replaced by the alternation of configured tags.
	TagsPlaceholder = "$TAGS"

	DefaultRegex       = `(//|#|<!--|;|/\*|^|^[ \t]*(-|\d+\.))\s*(` + TagsPlaceholder + `)`
	DefaultSubTagRegex = `^\s*\(([^)]+)\)`
)

func DefaultHighlightSettings() HighlightSettings {
	return HighlightSettings{
		Enabled:            true,
		HighlightDelay:     500,
		Tags:               []string{"BUG", "HACK", "FIXME", "TODO", "XXX", "[ ]", "[x]"},
		Regex:              DefaultRegex,
		RegexCaseSensitive: true,
		SubTagRegex:        DefaultSubTagRegex,
		TagGroups:          map[string][]string{},
		DefaultHighlight:   map[string]any{},
		CustomHighlight:    map[string]map[string]any{},
		OverviewRulerLane:  "center",
		Schemes:            []string{"file", "untitled"},
	}
}

func DefaultUISettings() UISettings {
	return UISettings{
		Color:  "auto",
		Theme:  "auto",
		Output: "ansi",
		Gutter: true,
	}
}

// Lookup exposes the global highlight defaults under their attribute names
// so the settings can act as the last attribute layer.
func (s HighlightSettings) Lookup(_ string, name string) (any, bool) {
	switch name {
	case "opacity":
		if s.Opacity == nil {
			return nil, false
		}
		return *s.Opacity, true
	case "rulerLane":
		return nonEmpty(s.OverviewRulerLane)
	case "borderRadius":
		return nonEmpty(s.BorderRadius)
	case "fontWeight":
		return nonEmpty(s.FontWeight)
	case "fontStyle":
		return nonEmpty(s.FontStyle)
	case "textDecoration":
		return nonEmpty(s.TextDecoration)
	}
	return nil, false
}

// AcceptsURI reports whether documents with the given URI are highlighted.
// URIs without a scheme are treated as files.
func (s HighlightSettings) AcceptsURI(uri string) bool {
	scheme := "file"
	if u, err := url.Parse(uri); err == nil && len(u.Scheme) > 1 {
		scheme = u.Scheme
	}
	for _, allowed := range s.Schemes {
		if strings.EqualFold(strings.TrimSpace(allowed), scheme) {
			return true
		}
	}
	return false
}

func nonEmpty(v string) (any, bool) {
	if strings.TrimSpace(v) == "" {
		return nil, false
	}
	return v, true
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneAttrs(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneCustom(in map[string]map[string]any) map[string]map[string]any {
	out := make(map[string]map[string]any, len(in))
	for tag, attrs := range in {
		out[tag] = cloneAttrs(attrs)
	}
	return out
}

func cloneGroups(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for group, tags := range in {
		out[group] = cloneStrings(tags)
	}
	return out
}
