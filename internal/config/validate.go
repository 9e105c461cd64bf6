package config

import (
	"fmt"
	"strconv"
	"strings"
)

var rulerLanes = map[string]struct{}{"none": {}, "left": {}, "center": {}, "right": {}, "full": {}}

func CanonicalizeColor(raw string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	switch mode {
	case "", "auto":
		return "auto", nil
	case "always", "never":
		return mode, nil
	default:
		return "", fmt.Errorf("invalid color: %s", raw)
	}
}

func CanonicalizeTheme(raw string) (string, error) {
	theme := strings.ToLower(strings.TrimSpace(raw))
	switch theme {
	case "", "auto":
		return "auto", nil
	case "light", "dark":
		return theme, nil
	default:
		return "", fmt.Errorf("invalid theme: %s", raw)
	}
}

func CanonicalizeOutput(raw string) (string, error) {
	output := strings.ToLower(strings.TrimSpace(raw))
	switch output {
	case "":
		return "ansi", nil
	case "ansi", "html", "ndjson", "csv", "markdown":
		return output, nil
	case "md":
		return "markdown", nil
	default:
		return "", fmt.Errorf("invalid output: %s", raw)
	}
}

// ValidateRulerLane accepts a lane name or a non-negative lane number.
func ValidateRulerLane(raw string) error {
	lane := strings.ToLower(strings.TrimSpace(raw))
	if lane == "" {
		return nil
	}
	if _, ok := rulerLanes[lane]; ok {
		return nil
	}
	if n, err := strconv.Atoi(lane); err == nil && n >= 0 {
		return nil
	}
	return fmt.Errorf("invalid overview_ruler_lane: %s", raw)
}

func NormalizeHighlight(values HighlightSettings) (HighlightSettings, error) {
	if values.HighlightDelay < 0 {
		return values, fmt.Errorf("highlight_delay must be >= 0")
	}
	if values.Opacity != nil && (*values.Opacity < 0 || *values.Opacity > 100) {
		return values, fmt.Errorf("opacity must be between 0 and 100")
	}
	if err := ValidateRulerLane(values.OverviewRulerLane); err != nil {
		return values, err
	}
	values.Tags = normalizeList(values.Tags)
	if len(values.Tags) == 0 {
		values.Tags = []string{"TODO"}
	}
	values.Schemes = normalizeList(values.Schemes)
	return values, nil
}

func NormalizeUI(values UISettings) (UISettings, error) {
	var err error
	values.Color, err = CanonicalizeColor(values.Color)
	if err != nil {
		return values, err
	}
	values.Theme, err = CanonicalizeTheme(values.Theme)
	if err != nil {
		return values, err
	}
	values.Output, err = CanonicalizeOutput(values.Output)
	if err != nil {
		return values, err
	}
	return values, nil
}
