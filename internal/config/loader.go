package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var highlightKeyMap = map[string]string{
	"enabled":              "enabled",
	"highlight_delay":      "highlight_delay",
	"highlightdelay":       "highlight_delay",
	"delay":                "highlight_delay",
	"tags":                 "tags",
	"regex":                "regex",
	"regex_case_sensitive": "regex_case_sensitive",
	"regexcasesensitive":   "regex_case_sensitive",
	"case_sensitive":       "regex_case_sensitive",
	"sub_tag_regex":        "sub_tag_regex",
	"subtag_regex":         "sub_tag_regex",
	"subtagregex":          "sub_tag_regex",
	"tag_groups":           "tag_groups",
	"taggroups":            "tag_groups",
	"default_highlight":    "default_highlight",
	"defaulthighlight":     "default_highlight",
	"custom_highlight":     "custom_highlight",
	"customhighlight":      "custom_highlight",
	"overview_ruler_lane":  "overview_ruler_lane",
	"overviewrulerlane":    "overview_ruler_lane",
	"opacity":              "opacity",
	"border_radius":        "border_radius",
	"borderradius":         "border_radius",
	"font_weight":          "font_weight",
	"fontweight":           "font_weight",
	"font_style":           "font_style",
	"fontstyle":            "font_style",
	"text_decoration":      "text_decoration",
	"textdecoration":       "text_decoration",
	"schemes":              "schemes",
}

var uiKeyMap = map[string]string{
	"color":  "color",
	"colour": "color",
	"theme":  "theme",
	"output": "output",
	"gutter": "gutter",
}

// attributeNames maps folded attribute keys (lower case, no separators) to
// the names the highlight pipeline looks up.
var attributeNames = map[string]string{
	"foreground":     "foreground",
	"background":     "background",
	"iconcolour":     "iconColour",
	"iconcolor":      "iconColour",
	"rulercolour":    "rulerColour",
	"rulercolor":     "rulerColour",
	"rulerlane":      "rulerLane",
	"opacity":        "opacity",
	"borderradius":   "borderRadius",
	"scheme":         "scheme",
	"fontweight":     "fontWeight",
	"fontstyle":      "fontStyle",
	"textdecoration": "textDecoration",
	"guttericon":     "gutterIcon",
	"colortype":      "colorType",
	"type":           "colorType",
	"glowtype":       "glowType",
	"glasstype":      "glassType",
	"fonttype":       "fontType",
	"icon":           "icon",
}

func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	raw, err := decodeRaw(filepath.Ext(path), data)
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if raw == nil {
		return cfg, nil
	}
	decoded, err := decodeConfigMap(raw)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return decoded, nil
}

// Parse decodes configuration bytes in the format named by ext (".yaml",
// ".toml" or ".json").
func Parse(ext string, data []byte) (Config, error) {
	raw, err := decodeRaw(ext, data)
	if err != nil {
		return Config{}, err
	}
	if raw == nil {
		return Config{}, nil
	}
	return decodeConfigMap(raw)
}

func decodeRaw(ext string, data []byte) (map[string]any, error) {
	var raw map[string]any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return raw, nil
}

func decodeConfigMap(raw map[string]any) (Config, error) {
	var cfg Config
	highlightSection := make(map[string]any)
	uiSection := make(map[string]any)

	if block, ok := raw["highlight"]; ok {
		sub, err := toStringKeyMap(block)
		if err != nil {
			return cfg, fmt.Errorf("highlight: %w", err)
		}
		if err := fillSection(highlightSection, sub, highlightKeyMap, "highlight"); err != nil {
			return cfg, err
		}
	}
	if block, ok := raw["ui"]; ok {
		sub, err := toStringKeyMap(block)
		if err != nil {
			return cfg, fmt.Errorf("ui: %w", err)
		}
		if err := fillSection(uiSection, sub, uiKeyMap, "ui"); err != nil {
			return cfg, err
		}
	}

	for key, value := range raw {
		norm := normalizeKey(key)
		switch norm {
		case "highlight", "ui":
			continue
		default:
			if canonical, ok := highlightKeyMap[norm]; ok {
				highlightSection[canonical] = value
				continue
			}
			if canonical, ok := uiKeyMap[norm]; ok {
				uiSection[canonical] = value
				continue
			}
			return cfg, fmt.Errorf("unknown config key: %s", key)
		}
	}

	if err := assignHighlight(highlightSection, &cfg.Highlight); err != nil {
		return cfg, fmt.Errorf("highlight: %w", err)
	}
	if err := assignUI(uiSection, &cfg.UI); err != nil {
		return cfg, fmt.Errorf("ui: %w", err)
	}
	return cfg, nil
}

func fillSection(dst, src map[string]any, allowed map[string]string, section string) error {
	for key, value := range src {
		canonical, ok := allowed[normalizeKey(key)]
		if !ok {
			return fmt.Errorf("unknown %s key: %s", section, key)
		}
		dst[canonical] = value
	}
	return nil
}

func assignHighlight(section map[string]any, dst *HighlightConfig) error {
	for key, value := range section {
		switch key {
		case "enabled":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.Enabled = &b
		case "highlight_delay":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.HighlightDelay = &n
		case "tags":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Tags = &list
		case "regex":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			dst.Regex = &str
		case "regex_case_sensitive":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.RegexCaseSensitive = &b
		case "sub_tag_regex":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			dst.SubTagRegex = &str
		case "tag_groups":
			groups, err := expectGroups(value, key)
			if err != nil {
				return err
			}
			dst.TagGroups = &groups
		case "default_highlight":
			attrs, err := expectAttributes(value, key)
			if err != nil {
				return err
			}
			dst.DefaultHighlight = &attrs
		case "custom_highlight":
			custom, err := expectCustom(value, key)
			if err != nil {
				return err
			}
			dst.CustomHighlight = &custom
		case "overview_ruler_lane":
			str, err := expectScalarString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			dst.OverviewRulerLane = &trimmed
		case "opacity":
			f, err := expectFloat(value, key)
			if err != nil {
				return err
			}
			dst.Opacity = &f
		case "border_radius":
			str, err := expectScalarString(value, key)
			if err != nil {
				return err
			}
			dst.BorderRadius = &str
		case "font_weight":
			str, err := expectScalarString(value, key)
			if err != nil {
				return err
			}
			dst.FontWeight = &str
		case "font_style":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			dst.FontStyle = &str
		case "text_decoration":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			dst.TextDecoration = &str
		case "schemes":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Schemes = &list
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func assignUI(section map[string]any, dst *UIConfig) error {
	for key, value := range section {
		switch key {
		case "color":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			dst.Color = &trimmed
		case "theme":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			dst.Theme = &trimmed
		case "output":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			dst.Output = &trimmed
		case "gutter":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.Gutter = &b
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func expectString(value any, field string) (string, error) {
	if value == nil {
		return "", fmt.Errorf("%s cannot be null", field)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected string for %s, got %T", field, value)
}

// expectScalarString accepts numbers as well, for keys such as font_weight
// that are commonly written unquoted.
func expectScalarString(value any, field string) (string, error) {
	switch v := value.(type) {
	case int, int64, float64, json.Number:
		f, err := expectFloat(v, field)
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	default:
		return expectString(value, field)
	}
}

func expectBool(value any, field string) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return ParseBool(v, field)
	default:
		return false, fmt.Errorf("expected bool for %s, got %T", field, value)
	}
}

func expectInt(value any, field string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("expected integer for %s, got %v", field, value)
		}
		return int(v), nil
	case json.Number:
		n, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %v", field, value)
		}
		return n, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("invalid integer value for %s: %q", field, v)
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %q", field, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer for %s, got %T", field, value)
	}
}

func expectFloat(value any, field string) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case float64:
		return v, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("invalid number for %s: %v", field, value)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number for %s: %q", field, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("expected number for %s, got %T", field, value)
	}
}

func expectStringList(value any, field string) ([]string, error) {
	switch v := value.(type) {
	case string:
		parts := SplitMulti([]string{v})
		return normalizeList(parts), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, err := expectString(item, field)
			if err != nil {
				return nil, err
			}
			out = append(out, str)
		}
		return normalizeList(out), nil
	case []string:
		return normalizeList(v), nil
	default:
		return nil, fmt.Errorf("expected string or list for %s, got %T", field, value)
	}
}

func expectGroups(value any, field string) (map[string][]string, error) {
	block, err := toStringKeyMap(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	out := make(map[string][]string, len(block))
	for group, members := range block {
		list, err := expectStringList(members, field+"."+group)
		if err != nil {
			return nil, err
		}
		out[group] = list
	}
	return out, nil
}

func expectAttributes(value any, field string) (map[string]any, error) {
	block, err := toStringKeyMap(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	out := make(map[string]any, len(block))
	for key, raw := range block {
		name, ok := attributeNames[foldAttribute(key)]
		if !ok {
			return nil, fmt.Errorf("unknown attribute in %s: %s", field, key)
		}
		v, err := attributeValue(raw, field+"."+key)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

func expectCustom(value any, field string) (map[string]map[string]any, error) {
	block, err := toStringKeyMap(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	out := make(map[string]map[string]any, len(block))
	for tag, raw := range block {
		attrs, err := expectAttributes(raw, field+"."+tag)
		if err != nil {
			return nil, err
		}
		out[tag] = attrs
	}
	return out, nil
}

// attributeValue keeps strings and booleans and folds every numeric form
// into float64.
func attributeValue(value any, field string) (any, error) {
	switch v := value.(type) {
	case string, bool:
		return v, nil
	case int, int64, uint64, float64, json.Number:
		return expectFloat(v, field)
	case nil:
		return nil, fmt.Errorf("%s cannot be null", field)
	default:
		return nil, fmt.Errorf("unsupported value for %s: %T", field, value)
	}
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key: %v", k)
			}
			out[key] = value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected map, got %T", v)
	}
}

func normalizeKey(key string) string {
	norm := strings.ToLower(strings.TrimSpace(key))
	norm = strings.ReplaceAll(norm, "-", "_")
	return norm
}

func foldAttribute(key string) string {
	norm := strings.ToLower(strings.TrimSpace(key))
	norm = strings.ReplaceAll(norm, "-", "")
	return strings.ReplaceAll(norm, "_", "")
}
