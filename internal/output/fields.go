package output

import (
	"fmt"
	"strconv"
	"strings"
)

type Field struct {
	Key    string
	Header string
}

var fieldRegistry = map[string]string{
	"file":            "FILE",
	"location":        "LOCATION",
	"line":            "LINE",
	"column":          "COLUMN",
	"end":             "END",
	"kind":            "KIND",
	"handle":          "HANDLE",
	"text":            "TEXT",
	"color":           "COLOR",
	"background":      "BACKGROUND",
	"border":          "BORDER",
	"font_weight":     "FONT_WEIGHT",
	"font_style":      "FONT_STYLE",
	"text_decoration": "TEXT_DECORATION",
	"whole_line":      "WHOLE_LINE",
	"gutter":          "GUTTER",
	"lane":            "LANE",
	"ruler_color":     "RULER_COLOR",
}

var fieldAliases = map[string]string{
	"col":        "column",
	"bg":         "background",
	"fg":         "color",
	"foreground": "color",
	"decoration": "text_decoration",
	"weight":     "font_weight",
	"style":      "font_style",
	"icon":       "gutter",
	"ruler":      "ruler_color",
}

// DefaultFields is used when no field list is given.
var DefaultFields = []string{"location", "kind", "text", "color", "background", "text_decoration"}

// ResolveFields parses a comma separated field list. Keys are
// case-insensitive; "-" and "_" are interchangeable.
func ResolveFields(raw string) ([]Field, error) {
	keys := DefaultFields
	if strings.TrimSpace(raw) != "" {
		keys = strings.Split(raw, ",")
	}
	fields := make([]Field, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(k)), "-", "_")
		if key == "" {
			continue
		}
		if alias, ok := fieldAliases[key]; ok {
			key = alias
		}
		header, ok := fieldRegistry[key]
		if !ok {
			return nil, fmt.Errorf("unknown field: %s", strings.TrimSpace(k))
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		fields = append(fields, Field{Key: key, Header: header})
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields selected")
	}
	return fields, nil
}

func Headers(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Header
	}
	return out
}

func RowValues(r Record, fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = value(r, f.Key)
	}
	return out
}

func value(r Record, key string) string {
	switch key {
	case "file":
		return r.File
	case "location":
		return fmt.Sprintf("%s:%d:%d", r.File, r.Line, r.Column)
	case "line":
		return strconv.Itoa(r.Line)
	case "column":
		return strconv.Itoa(r.Column)
	case "end":
		return fmt.Sprintf("%d:%d", r.EndLine, r.EndColumn)
	case "kind":
		return r.Kind
	case "handle":
		return strconv.Itoa(r.Handle)
	case "text":
		return r.Text
	case "color":
		return r.Style.Color
	case "background":
		return r.Style.BackgroundColor
	case "border":
		return r.Style.Border
	case "font_weight":
		return r.Style.FontWeight
	case "font_style":
		return r.Style.FontStyle
	case "text_decoration":
		return r.Style.TextDecoration
	case "whole_line":
		return strconv.FormatBool(r.WholeLine)
	case "gutter":
		return r.Gutter
	case "lane":
		if r.Lane == 0 {
			return ""
		}
		return strconv.Itoa(r.Lane)
	case "ruler_color":
		return r.RulerColor
	}
	return ""
}
