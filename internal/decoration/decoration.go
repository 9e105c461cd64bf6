// Package decoration defines the host painting contract and the cache that
// owns decoration handles.
package decoration

import (
	"sort"

	"go.uber.org/multierr"

	"github.com/phyten/taglight/internal/textstyle"
)

// Options describes a decoration type to the host.
type Options struct {
	IsWholeLine        bool            `json:"isWholeLine,omitempty"`
	BorderRadius       string          `json:"borderRadius,omitempty"`
	Light              textstyle.Theme `json:"light"`
	Dark               textstyle.Theme `json:"dark"`
	GutterIconPath     string          `json:"gutterIconPath,omitempty"`
	OverviewRulerLane  int             `json:"overviewRulerLane,omitempty"`
	OverviewRulerColor string          `json:"overviewRulerColor,omitempty"`
}

// Handle is a host-created decoration type. Implementations must be
// comparable (pointer types) because handles are used as map keys.
type Handle interface {
	Options() Options
}

// Host creates and disposes decoration types.
type Host interface {
	CreateDecorationType(Options) (Handle, error)
	Dispose(Handle) error
}

func TextKey(tag, styleHash string) string { return "text:" + tag + ":" + styleHash }
func GlassKey(tag string) string { return "glass:" + tag }
func MetaKey(tag string) string { return "meta:" + tag }
func SubTagKey(tag, styleHash string) string { return "subtag:" + tag + ":" + styleHash }

// Cache creates handles lazily and is their sole owner.
type Cache struct {
	host    Host
	entries map[string]Handle
}

func NewCache(host Host) *Cache {
	return &Cache{host: host, entries: make(map[string]Handle)}
}

// Get returns the handle cached under key, creating it from build on a miss.
func (c *Cache) Get(key string, build func() Options) (Handle, error) {
	if h, ok := c.entries[key]; ok {
		return h, nil
	}
	h, err := c.host.CreateDecorationType(build())
	if err != nil {
		return nil, err
	}
	c.entries[key] = h
	return h, nil
}

func (c *Cache) Len() int { return len(c.entries) }

// Keys lists the cached keys in sorted order.
func (c *Cache) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clear disposes every cached handle plus any handles still tracked
// elsewhere, each at most once, and empties the cache. Dispose errors are
// collected; disposal continues past failures.
func (c *Cache) Clear(tracked ...[]Handle) error {
	disposed := make(map[Handle]struct{})
	var errs error
	dispose := func(h Handle) {
		if h == nil {
			return
		}
		if _, done := disposed[h]; done {
			return
		}
		disposed[h] = struct{}{}
		errs = multierr.Append(errs, c.host.Dispose(h))
	}
	for _, key := range c.Keys() {
		dispose(c.entries[key])
	}
	c.entries = make(map[string]Handle)
	for _, list := range tracked {
		for _, h := range list {
			dispose(h)
		}
	}
	return errs
}
