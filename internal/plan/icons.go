package plan

import (
	"strings"

	"github.com/phyten/taglight/internal/attributes"
)

// DefaultIcon is the codicon used when a tag names none.
const DefaultIcon = "check"

// CodiconIcons resolves gutter icons from the tag's icon attribute into
// codicon ids such as "codicon:flame".
type CodiconIcons struct {
	Attrs attributes.Provider
}

func (c CodiconIcons) Icon(tag string) Icon {
	name := DefaultIcon
	if c.Attrs != nil {
		if v, ok, err := attributes.String(c.Attrs, tag, "icon"); err == nil && ok && strings.TrimSpace(v) != "" {
			name = strings.TrimPrefix(strings.TrimSpace(v), "$(")
			name = strings.TrimSuffix(name, ")")
		}
	}
	id := "codicon:" + name
	return Icon{Light: id, Dark: id}
}
