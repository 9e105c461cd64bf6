package config

import (
	"errors"
	"math"
	"strings"
)

func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	setString := func(target **string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	setList := func(target **[]string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		list := SplitMulti([]string{raw})
		if len(list) == 0 {
			empty := make([]string, 0)
			*target = &empty
			return
		}
		copyVals := make([]string, len(list))
		copy(copyVals, list)
		*target = &copyVals
	}
	setBool := func(target **bool, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := ParseBool(raw, key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}
	setInt := func(target **int, key string, min, max int) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := ParseIntInRange(raw, key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}
	setFloat := func(target **float64, key string, min, max float64) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := ParseFloatInRange(raw, key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}

	setBool(&cfg.Highlight.Enabled, "TAGLIGHT_ENABLED")
	if raw := strings.TrimSpace(getenv("TAGLIGHT_DISABLED")); raw != "" {
		v, err := ParseBool(raw, "TAGLIGHT_DISABLED")
		if err != nil {
			errs = append(errs, err)
		} else {
			cfg.Highlight.Enabled = boolPtr(!v)
		}
	}
	setInt(&cfg.Highlight.HighlightDelay, "TAGLIGHT_HIGHLIGHT_DELAY", 0, math.MaxInt)
	setList(&cfg.Highlight.Tags, "TAGLIGHT_TAGS")
	setString(&cfg.Highlight.Regex, "TAGLIGHT_REGEX")
	setBool(&cfg.Highlight.RegexCaseSensitive, "TAGLIGHT_REGEX_CASE_SENSITIVE")
	setString(&cfg.Highlight.SubTagRegex, "TAGLIGHT_SUBTAG_REGEX")
	setString(&cfg.Highlight.OverviewRulerLane, "TAGLIGHT_OVERVIEW_RULER_LANE")
	setFloat(&cfg.Highlight.Opacity, "TAGLIGHT_OPACITY", 0, 100)
	setString(&cfg.Highlight.BorderRadius, "TAGLIGHT_BORDER_RADIUS")
	setString(&cfg.Highlight.FontWeight, "TAGLIGHT_FONT_WEIGHT")
	setString(&cfg.Highlight.FontStyle, "TAGLIGHT_FONT_STYLE")
	setString(&cfg.Highlight.TextDecoration, "TAGLIGHT_TEXT_DECORATION")
	setList(&cfg.Highlight.Schemes, "TAGLIGHT_SCHEMES")

	setString(&cfg.UI.Color, "TAGLIGHT_COLOR")
	setString(&cfg.UI.Theme, "TAGLIGHT_THEME")
	setString(&cfg.UI.Output, "TAGLIGHT_OUTPUT")
	setBool(&cfg.UI.Gutter, "TAGLIGHT_GUTTER")

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
