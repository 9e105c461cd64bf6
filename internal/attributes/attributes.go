// Package attributes resolves per-tag highlight attributes through an
// ordered list of providers. The first provider that knows a value wins.
package attributes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phyten/taglight/internal/scheme"
)

// Provider answers attribute lookups for a tag.
type Provider interface {
	Lookup(tag, name string) (any, bool)
}

type ProviderFunc func(tag, name string) (any, bool)

func (f ProviderFunc) Lookup(tag, name string) (any, bool) { return f(tag, name) }

// Resolver consults its providers in order.
type Resolver struct {
	providers []Provider
}

func New(providers ...Provider) *Resolver {
	out := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			out = append(out, p)
		}
	}
	return &Resolver{providers: out}
}

func (r *Resolver) Lookup(tag, name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	for _, p := range r.providers {
		if v, ok := p.Lookup(tag, name); ok {
			return v, true
		}
	}
	return nil, false
}

// Custom holds per-tag attribute maps. Tags are matched exactly first and
// then case-insensitively.
type Custom map[string]map[string]any

func (c Custom) Lookup(tag, name string) (any, bool) {
	attrs, ok := c[tag]
	if !ok {
		for key, candidate := range c {
			if strings.EqualFold(key, tag) {
				attrs, ok = candidate, true
				break
			}
		}
	}
	if !ok {
		return nil, false
	}
	v, ok := attrs[name]
	return v, ok
}

// Has reports whether tag has its own entry.
func (c Custom) Has(tag string) bool {
	if _, exact := c[tag]; exact {
		return true
	}
	for key := range c {
		if strings.EqualFold(key, tag) {
			return true
		}
	}
	return false
}

// Defaults applies the same attributes to every tag.
type Defaults map[string]any

func (d Defaults) Lookup(_ string, name string) (any, bool) {
	v, ok := d[name]
	return v, ok
}

// SchemeDefaults derives attribute defaults from the tag's scheme as seen
// through Source. Glass schemes imply a background opacity.
type SchemeDefaults struct {
	Source Provider
}

func (s SchemeDefaults) Lookup(tag, name string) (any, bool) {
	if name != "opacity" || s.Source == nil {
		return nil, false
	}
	raw, ok := s.Source.Lookup(tag, "scheme")
	if !ok {
		return nil, false
	}
	schemeName, isString := raw.(string)
	if !isString {
		return nil, false
	}
	return scheme.DefaultOpacity(schemeName)
}

// Standard builds the usual chain: per-tag entries, shared defaults,
// scheme-derived defaults and finally the global settings.
func Standard(custom Custom, defaults Defaults, global Provider) *Resolver {
	explicit := New(custom, defaults)
	return New(explicit, SchemeDefaults{Source: explicit}, global)
}

// String returns a string attribute. Numbers are formatted; other types are
// an error.
func String(p Provider, tag, name string) (string, bool, error) {
	raw, ok := p.Lookup(tag, name)
	if !ok || raw == nil {
		return "", false, nil
	}
	switch v := raw.(type) {
	case string:
		return v, true, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true, nil
	case int:
		return strconv.Itoa(v), true, nil
	default:
		return "", false, fmt.Errorf("attribute %s of %s: expected string, got %T", name, tag, raw)
	}
}

// Float returns a numeric attribute. Numeric strings are accepted.
func Float(p Provider, tag, name string) (float64, bool, error) {
	raw, ok := p.Lookup(tag, name)
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, true, nil
	case int:
		return float64(v), true, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false, fmt.Errorf("attribute %s of %s: invalid number %q", name, tag, v)
		}
		return f, true, nil
	default:
		return 0, false, fmt.Errorf("attribute %s of %s: expected number, got %T", name, tag, raw)
	}
}

// Bool returns a boolean attribute or def when unset.
func Bool(p Provider, tag, name string, def bool) (bool, error) {
	raw, ok := p.Lookup(tag, name)
	if !ok || raw == nil {
		return def, nil
	}
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return def, fmt.Errorf("attribute %s of %s: invalid bool %q", name, tag, v)
		}
		return b, nil
	default:
		return def, fmt.Errorf("attribute %s of %s: expected bool, got %T", name, tag, raw)
	}
}

// StringOr is String with a default for unset values.
func StringOr(p Provider, tag, name, def string) (string, error) {
	v, ok, err := String(p, tag, name)
	if err != nil {
		return "", err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}
