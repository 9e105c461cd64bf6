package config

import "strings"

func boolPtr(v bool) *bool {
	b := v
	return &b
}

func MergeHighlight(base HighlightSettings, layers ...HighlightConfig) HighlightSettings {
	out := base
	for _, layer := range layers {
		out.Enabled = ResolveBool(out.Enabled, layer.Enabled)
		out.HighlightDelay = ResolveInt(out.HighlightDelay, layer.HighlightDelay)
		out.Tags = ResolveStrings(out.Tags, layer.Tags)
		out.Regex = ResolveString(out.Regex, layer.Regex)
		out.RegexCaseSensitive = ResolveBool(out.RegexCaseSensitive, layer.RegexCaseSensitive)
		out.SubTagRegex = ResolveString(out.SubTagRegex, layer.SubTagRegex)
		out.TagGroups = ResolveGroups(out.TagGroups, layer.TagGroups)
		out.DefaultHighlight = ResolveAttrs(out.DefaultHighlight, layer.DefaultHighlight)
		out.CustomHighlight = ResolveCustom(out.CustomHighlight, layer.CustomHighlight)
		out.OverviewRulerLane = ResolveAndTrim(out.OverviewRulerLane, layer.OverviewRulerLane)
		out.Opacity = ResolveFloat(out.Opacity, layer.Opacity)
		out.BorderRadius = ResolveAndTrim(out.BorderRadius, layer.BorderRadius)
		out.FontWeight = ResolveAndTrim(out.FontWeight, layer.FontWeight)
		out.FontStyle = ResolveAndTrim(out.FontStyle, layer.FontStyle)
		out.TextDecoration = ResolveAndTrim(out.TextDecoration, layer.TextDecoration)
		out.Schemes = ResolveStrings(out.Schemes, layer.Schemes)
	}
	if strings.TrimSpace(out.Regex) == "" {
		out.Regex = DefaultRegex
	}
	if len(out.Tags) == 0 {
		out.Tags = []string{"TODO"}
	}
	return out
}

func MergeUI(base UISettings, layers ...UIConfig) UISettings {
	out := base
	for _, layer := range layers {
		out.Color = ResolveAndTrim(out.Color, layer.Color)
		out.Theme = ResolveAndTrim(out.Theme, layer.Theme)
		out.Output = ResolveAndTrim(out.Output, layer.Output)
		out.Gutter = ResolveBool(out.Gutter, layer.Gutter)
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	if strings.TrimSpace(out.Output) == "" {
		out.Output = "ansi"
	}
	return out
}
