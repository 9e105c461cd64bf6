package config

import "strings"

func ResolveString(def string, values ...*string) string {
	result := def
	for _, v := range values {
		if v != nil {
			result = *v
		}
	}
	return result
}

func ResolveInt(def int, values ...*int) int {
	result := def
	for _, v := range values {
		if v != nil {
			result = *v
		}
	}
	return result
}

func ResolveBool(def bool, values ...*bool) bool {
	result := def
	for _, v := range values {
		if v != nil {
			result = *v
		}
	}
	return result
}

// ResolveFloat keeps the pointer so callers can tell "unset" from zero.
func ResolveFloat(def *float64, values ...*float64) *float64 {
	result := def
	for _, v := range values {
		if v != nil {
			copied := *v
			result = &copied
		}
	}
	return result
}

func ResolveStrings(def []string, values ...*[]string) []string {
	result := cloneStrings(def)
	for _, v := range values {
		if v != nil {
			if len(*v) == 0 {
				result = []string{}
				continue
			}
			result = cloneStrings(*v)
		}
	}
	return result
}

func ResolveAndTrim(def string, values ...*string) string {
	value := ResolveString(def, values...)
	return strings.TrimSpace(value)
}

// ResolveAttrs merges attribute maps key by key; later layers win.
func ResolveAttrs(def map[string]any, values ...*map[string]any) map[string]any {
	result := cloneAttrs(def)
	for _, v := range values {
		if v == nil {
			continue
		}
		for key, value := range *v {
			result[key] = value
		}
	}
	return result
}

// ResolveCustom merges per-tag attribute maps; attributes of the same tag
// are merged key by key.
func ResolveCustom(def map[string]map[string]any, values ...*map[string]map[string]any) map[string]map[string]any {
	result := cloneCustom(def)
	for _, v := range values {
		if v == nil {
			continue
		}
		for tag, attrs := range *v {
			layer := attrs
			result[tag] = ResolveAttrs(result[tag], &layer)
		}
	}
	return result
}

// ResolveGroups replaces whole groups; later layers win per group name.
func ResolveGroups(def map[string][]string, values ...*map[string][]string) map[string][]string {
	result := cloneGroups(def)
	for _, v := range values {
		if v == nil {
			continue
		}
		for group, tags := range *v {
			result[group] = cloneStrings(tags)
		}
	}
	return result
}
