package highlight

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// Extraction locates the tag inside a raw match. Offsets are runes relative
// to the start of the match.
type Extraction struct {
	Tag          string
	TagOffset    int
	Length       int
	CommentStart int
}

// TagExtractor finds the tag token in a raw pattern match.
type TagExtractor interface {
	Extract(match string) (Extraction, bool)
}

// TagGrouper maps a tag to the display tag of its group.
type TagGrouper interface {
	Group(tag string) (string, bool)
}

// TagSet extracts the first configured tag found in a match and reports it
// with its configured spelling.
type TagSet struct {
	re            *regexp2.Regexp
	caseSensitive bool
	spelling      map[string]string
}

// NewTagSet compiles an extractor for tags. Longer tags are tried first so
// that a tag which prefixes another never shadows it.
func NewTagSet(tags []string, caseSensitive bool) (*TagSet, error) {
	ts := &TagSet{caseSensitive: caseSensitive, spelling: make(map[string]string)}
	alt := Alternation(tags)
	if alt == "" {
		return ts, nil
	}
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if !caseSensitive {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(alt, opts)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = matchTimeout
	ts.re = re
	for _, tag := range tags {
		key := ts.key(tag)
		if _, ok := ts.spelling[key]; !ok {
			ts.spelling[key] = tag
		}
	}
	return ts, nil
}

func (ts *TagSet) key(tag string) string {
	if ts.caseSensitive {
		return tag
	}
	return strings.ToLower(tag)
}

func (ts *TagSet) Extract(match string) (Extraction, bool) {
	if ts.re == nil {
		return Extraction{}, false
	}
	m, err := ts.re.FindStringMatch(match)
	if err != nil || m == nil || m.Length == 0 {
		return Extraction{}, false
	}
	found := m.String()
	tag, ok := ts.spelling[ts.key(found)]
	if !ok {
		tag = found
	}
	return Extraction{
		Tag:          tag,
		TagOffset:    m.Index,
		Length:       m.Length,
		CommentStart: leadingSpace(match),
	}, true
}

// Alternation joins the escaped tags, longest first, into a regex
// alternation. Blank tags are skipped.
func Alternation(tags []string) string {
	sorted := make([]string, 0, len(tags))
	for _, tag := range tags {
		if strings.TrimSpace(tag) != "" {
			sorted = append(sorted, tag)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i]) > utf8.RuneCountInString(sorted[j])
	})
	for i, tag := range sorted {
		sorted[i] = regexp.QuoteMeta(tag)
	}
	return strings.Join(sorted, "|")
}

// leadingSpace counts the whitespace runes at the start of s.
func leadingSpace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

// Groups resolves tags to the name of the group that lists them.
type Groups struct {
	members map[string]string
	fold    map[string]string
}

// NewGroups indexes groups by member. When a tag is listed under several
// groups, the alphabetically first group wins.
func NewGroups(groups map[string][]string) Groups {
	g := Groups{members: make(map[string]string), fold: make(map[string]string)}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, tag := range groups[name] {
			if _, ok := g.members[tag]; !ok {
				g.members[tag] = name
			}
			lower := strings.ToLower(tag)
			if _, ok := g.fold[lower]; !ok {
				g.fold[lower] = name
			}
		}
	}
	return g
}

func (g Groups) Group(tag string) (string, bool) {
	if name, ok := g.members[tag]; ok {
		return name, true
	}
	name, ok := g.fold[strings.ToLower(tag)]
	return name, ok
}
