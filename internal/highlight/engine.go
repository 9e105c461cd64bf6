// Package highlight scans documents for tags and applies the decorations
// their plans describe.
package highlight

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/phyten/taglight/internal/attributes"
	"github.com/phyten/taglight/internal/config"
	"github.com/phyten/taglight/internal/decoration"
	"github.com/phyten/taglight/internal/document"
	"github.com/phyten/taglight/internal/plan"
	"github.com/phyten/taglight/internal/ranges"
	"github.com/phyten/taglight/internal/textstyle"
)

const matchTimeout = 2 * time.Second

var blockTerminators = []string{"*/", "-->", "}}"}

// Document is the read side of a text document.
type Document interface {
	URI() string
	Text() string
	PositionAt(offset int) document.Position
	LineBounds(line int) (start, end int)
}

// Editor shows one document and accepts decorations for it.
type Editor interface {
	Document() Document
	ViewColumn() int
	SetDecorations(h decoration.Handle, ranges []document.Range)
}

// EditorID identifies an editor by its document URI and view column.
func EditorID(ed Editor) string {
	id := ed.Document().URI()
	if col := ed.ViewColumn(); col > 0 {
		id += ":" + strconv.Itoa(col)
	}
	return id
}

// Options configures an Engine. Host is required. Nil collaborators are
// derived from Settings and rebuilt on Reconfigure.
type Options struct {
	Host       decoration.Host
	Settings   config.HighlightSettings
	Logger     *zap.Logger
	Attributes attributes.Provider
	Presets    plan.PresetProvider
	Icons      plan.IconResolver
	Extractor  TagExtractor
	Grouper    TagGrouper
}

// Engine owns the plan and decoration caches of one host. It is not safe
// for concurrent use; Scheduler serializes access.
type Engine struct {
	opts     Options
	log      *zap.Logger
	settings config.HighlightSettings

	pattern   *regexp2.Regexp
	subTag    *regexp2.Regexp
	custom    attributes.Custom
	extractor TagExtractor
	grouper   TagGrouper

	plans   *plan.Builder
	cache   *decoration.Cache
	applied map[string][]decoration.Handle
}

func New(opts Options) (*Engine, error) {
	if opts.Host == nil {
		return nil, errors.New("highlight: nil host")
	}
	if opts.Icons == nil {
		opts.Icons = plan.CodiconIcons{}
	}
	e := &Engine{
		opts:    opts,
		log:     opts.Logger,
		cache:   decoration.NewCache(opts.Host),
		applied: make(map[string][]decoration.Handle),
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if err := e.configure(opts.Settings); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) configure(s config.HighlightSettings) error {
	pattern, err := CompilePattern(s)
	if err != nil {
		return err
	}
	subTag, err := compileSubTag(s.SubTagRegex)
	if err != nil {
		return err
	}
	extractor := e.opts.Extractor
	if extractor == nil {
		ts, err := NewTagSet(s.Tags, s.RegexCaseSensitive)
		if err != nil {
			return errors.Wrap(err, "compile tags")
		}
		extractor = ts
	}
	grouper := e.opts.Grouper
	if grouper == nil {
		grouper = NewGroups(s.TagGroups)
	}
	custom := attributes.Custom(s.CustomHighlight)
	attrs := e.opts.Attributes
	if attrs == nil {
		attrs = attributes.Standard(custom, attributes.Defaults(s.DefaultHighlight), s)
	}
	icons := e.opts.Icons
	if ci, ok := icons.(plan.CodiconIcons); ok && ci.Attrs == nil {
		ci.Attrs = attrs
		icons = ci
	}

	e.settings = s
	e.pattern = pattern
	e.subTag = subTag
	e.extractor = extractor
	e.grouper = grouper
	e.custom = custom
	e.plans = plan.NewBuilder(attrs, e.opts.Presets, icons)
	return nil
}

// CompilePattern builds the tag pattern from the settings. It returns nil
// when the pattern needs tags and none are configured.
func CompilePattern(s config.HighlightSettings) (*regexp2.Regexp, error) {
	expr := s.Regex
	if strings.TrimSpace(expr) == "" {
		expr = config.DefaultRegex
	}
	if strings.Contains(expr, config.TagsPlaceholder) {
		alt := Alternation(s.Tags)
		if alt == "" {
			return nil, nil
		}
		expr = strings.ReplaceAll(expr, config.TagsPlaceholder, alt)
	}
	opts := regexp2.RegexOptions(regexp2.ECMAScript | regexp2.Multiline)
	if !s.RegexCaseSensitive {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "compile regex %q", expr)
	}
	re.MatchTimeout = matchTimeout
	return re, nil
}

func compileSubTag(expr string) (*regexp2.Regexp, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	re, err := regexp2.Compile(expr, regexp2.ECMAScript)
	if err != nil {
		return nil, errors.Wrapf(err, "compile sub-tag regex %q", expr)
	}
	re.MatchTimeout = matchTimeout
	return re, nil
}

func (e *Engine) Settings() config.HighlightSettings { return e.settings }

// Reconfigure replaces the settings and drops every cached plan and
// decoration. Invalid settings leave the engine untouched.
func (e *Engine) Reconfigure(s config.HighlightSettings) error {
	if _, err := CompilePattern(s); err != nil {
		return err
	}
	if _, err := compileSubTag(s.SubTagRegex); err != nil {
		return err
	}
	clearErr := e.ClearCache()
	if err := e.configure(s); err != nil {
		return err
	}
	return clearErr
}

// ClearCache disposes every decoration handle, including handles still
// applied to editors, and drops the plan cache.
func (e *Engine) ClearCache() error {
	tracked := make([][]decoration.Handle, 0, len(e.applied))
	for _, hs := range e.applied {
		tracked = append(tracked, hs)
	}
	err := e.cache.Clear(tracked...)
	e.plans.Reset()
	e.applied = make(map[string][]decoration.Handle)
	return err
}

// CacheLen reports the number of cached decoration handles.
func (e *Engine) CacheLen() int { return e.cache.Len() }

// Highlight redecorates the editor. Failures are logged and never
// propagate; a failed pass applies nothing.
func (e *Engine) Highlight(ed Editor) {
	if ed == nil {
		return
	}
	if err := e.highlight(ed); err != nil {
		e.log.Error("highlighting failed", zap.String("uri", ed.Document().URI()), zap.Error(err))
	}
}

func (e *Engine) highlight(ed Editor) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic: %v", r)
		}
	}()

	id := EditorID(ed)
	e.log.Debug("highlight", zap.String("editor", id))
	for _, h := range e.applied[id] {
		ed.SetDecorations(h, nil)
	}
	e.applied[id] = nil

	if !e.settings.Enabled {
		return nil
	}
	doc := ed.Document()
	res, err := e.scan(doc)
	if err != nil {
		return err
	}
	return e.apply(ed, id, res)
}

// textBucket groups the segments of one tag by style hash in first-seen order.
type textBucket struct {
	order  []string
	ranges map[string][]document.Range
	styles map[string]textstyle.Pair
}

type scanResult struct {
	tags    []string
	meta    map[string][]document.Range
	glass   map[string][]document.Range
	text    map[string]*textBucket
	subTags []string
	subTag  map[string][]document.Range
}

func newScanResult() *scanResult {
	return &scanResult{
		meta:   make(map[string][]document.Range),
		glass:  make(map[string][]document.Range),
		text:   make(map[string]*textBucket),
		subTag: make(map[string][]document.Range),
	}
}

func (e *Engine) scan(doc Document) (*scanResult, error) {
	res := newScanResult()
	if e.pattern == nil {
		return res, nil
	}
	text := doc.Text()
	runes := []rune(text)
	seen := make(map[string]bool)

	m, err := e.pattern.FindStringMatch(text)
	for ; m != nil && err == nil; m, err = e.pattern.FindNextMatch(m) {
		if m.Length == 0 {
			continue
		}
		if err := e.scanMatch(doc, runes, m, res, seen); err != nil {
			return nil, err
		}
	}
	if err != nil {
		return nil, errors.Wrap(err, "match tags")
	}
	return res, nil
}

func (e *Engine) scanMatch(doc Document, runes []rune, m *regexp2.Match, res *scanResult, seen map[string]bool) error {
	raw := m.String()
	matchStart, matchEnd := m.Index, m.Index+m.Length

	var tag string
	tagStart, tagEnd := matchStart, matchEnd
	commentStart := matchStart
	if ex, ok := e.extractor.Extract(raw); ok && ex.Tag != "" {
		tag = ex.Tag
		if group, ok := e.grouper.Group(ex.Tag); ok {
			tag = group
		}
		tagStart = matchStart + ex.TagOffset
		length := ex.Length
		if length <= 0 {
			length = utf8.RuneCountInString(ex.Tag)
		}
		tagEnd = tagStart + length
		commentStart = matchStart + ex.CommentStart
	} else {
		trimmed := strings.TrimLeftFunc(raw, unicode.IsSpace)
		tagStart += utf8.RuneCountInString(raw) - utf8.RuneCountInString(trimmed)
		tag = trimmed
	}

	lineStart, lineEnd := doc.LineBounds(doc.PositionAt(tagStart).Line)
	commentEnd := commentEndFrom(runes, tagStart, lineEnd)

	p, err := e.plans.Plan(tag)
	if err != nil {
		return err
	}
	if !seen[tag] {
		seen[tag] = true
		res.tags = append(res.tags, tag)
	}

	ctx := ranges.Context{
		TagStart:     tagStart,
		TagEnd:       tagEnd,
		MatchStart:   matchStart,
		MatchEnd:     matchEnd,
		CommentStart: commentStart,
		CommentEnd:   commentEnd,
		LineStart:    lineStart,
		LineEnd:      lineEnd,
		SubTagStart:  ranges.Unset,
		SubTagEnd:    ranges.Unset,
		MatchIndices: matchIndices(m),
	}
	if subTag, start, end, ok := e.findSubTag(runes, tagEnd, lineEnd); ok {
		ctx.SubTagStart, ctx.SubTagEnd = start, end
		if p.UsesSubTag() && e.custom.Has(subTag) {
			if r, ok := toRange(doc, start, end); ok {
				if _, known := res.subTag[subTag]; !known {
					res.subTags = append(res.subTags, subTag)
				}
				res.subTag[subTag] = append(res.subTag[subTag], r)
			}
		}
	}
	e.logMissingGroups(tag, p, ctx)

	if !p.Meta.IsZero() {
		if r, ok := toRange(doc, tagStart, tagEnd); ok {
			res.meta[tag] = append(res.meta[tag], r)
		}
	}
	if glass := p.Channels.Glass; glass.Enabled {
		for _, or := range ranges.Resolve(glass.Range, ctx) {
			if r, ok := toRange(doc, or.Start, or.End); ok {
				res.glass[tag] = append(res.glass[tag], r)
			}
		}
	}

	var cr ChannelRanges
	if ch := p.Channels.Color; ch.Enabled {
		cr.Color = ranges.Resolve(ch.Range, ctx)
	}
	if ch := p.Channels.Font; ch.Enabled {
		cr.Font = ranges.Resolve(ch.Range, ctx)
	}
	if ch := p.Channels.Glow; ch.Enabled {
		cr.Glow = ranges.Resolve(ch.Range, ctx)
	}
	segments := BuildSegments(cr, p.TextStyles())
	if len(segments) == 0 {
		return nil
	}
	bucket := res.text[tag]
	if bucket == nil {
		bucket = &textBucket{ranges: make(map[string][]document.Range), styles: make(map[string]textstyle.Pair)}
		res.text[tag] = bucket
	}
	for _, seg := range segments {
		r, ok := toRange(doc, seg.Start, seg.End)
		if !ok {
			continue
		}
		if _, known := bucket.ranges[seg.StyleHash]; !known {
			bucket.order = append(bucket.order, seg.StyleHash)
		}
		bucket.ranges[seg.StyleHash] = append(bucket.ranges[seg.StyleHash], r)
		bucket.styles[seg.StyleHash] = seg.Style
	}
	return nil
}

func (e *Engine) logMissingGroups(tag string, p *plan.TagPlan, ctx ranges.Context) {
	if ce := e.log.Check(zap.DebugLevel, "missing capture groups"); ce == nil {
		return
	}
	for _, ch := range p.Channels.All() {
		if !ch.Enabled {
			continue
		}
		if missing := ranges.MissingGroups(ch.Range, ctx); len(missing) > 0 {
			e.log.Debug("missing capture groups",
				zap.String("tag", tag),
				zap.String("channel", string(ch.Kind)),
				zap.Ints("groups", missing))
		}
	}
}

// findSubTag matches the sub-tag pattern against the rest of the line and
// returns the first capture group with its rune offsets.
func (e *Engine) findSubTag(runes []rune, from, lineEnd int) (string, int, int, bool) {
	if e.subTag == nil || from >= lineEnd || lineEnd > len(runes) {
		return "", 0, 0, false
	}
	rest := string(runes[from:lineEnd])
	m, err := e.subTag.FindStringMatch(rest)
	if err != nil || m == nil {
		return "", 0, 0, false
	}
	groups := m.Groups()
	if len(groups) < 2 || len(groups[1].Captures) == 0 {
		return "", 0, 0, false
	}
	subTag := groups[1].String()
	if subTag == "" {
		return "", 0, 0, false
	}
	idx := strings.Index(rest, subTag)
	if idx < 0 {
		return "", 0, 0, false
	}
	start := from + utf8.RuneCountInString(rest[:idx])
	return subTag, start, start + utf8.RuneCountInString(subTag), true
}

// commentEndFrom returns the offset just past the nearest block comment
// terminator between from and lineEnd, or lineEnd when there is none.
func commentEndFrom(runes []rune, from, lineEnd int) int {
	if from < 0 || from >= lineEnd || lineEnd > len(runes) {
		return lineEnd
	}
	rest := string(runes[from:lineEnd])
	best, size := -1, 0
	for _, term := range blockTerminators {
		if i := strings.Index(rest, term); i >= 0 && (best < 0 || i < best) {
			best, size = i, len(term)
		}
	}
	if best < 0 {
		return lineEnd
	}
	return from + utf8.RuneCountInString(rest[:best]) + size
}

func matchIndices(m *regexp2.Match) [][2]int {
	groups := m.Groups()
	out := make([][2]int, len(groups))
	for i, g := range groups {
		if len(g.Captures) == 0 {
			out[i] = [2]int{ranges.Unset, ranges.Unset}
			continue
		}
		out[i] = [2]int{g.Index, g.Index + g.Length}
	}
	return out
}

func toRange(doc Document, start, end int) (document.Range, bool) {
	if start < 0 || end <= start {
		return document.Range{}, false
	}
	s, t := doc.PositionAt(start), doc.PositionAt(end)
	if t.Offset <= s.Offset {
		return document.Range{}, false
	}
	return document.Range{Start: s, End: t}, true
}

// apply resolves every handle before touching the editor, so a host failure
// leaves the editor as the clearing step left it.
func (e *Engine) apply(ed Editor, id string, res *scanResult) error {
	type application struct {
		handle decoration.Handle
		ranges []document.Range
	}
	var pending []application
	add := func(h decoration.Handle, rs []document.Range) {
		if h == nil || len(rs) == 0 {
			return
		}
		pending = append(pending, application{handle: h, ranges: rs})
	}

	for _, tag := range res.tags {
		p, err := e.plans.Plan(tag)
		if err != nil {
			return err
		}
		if rs := res.meta[tag]; len(rs) > 0 {
			h, err := e.cache.Get(decoration.MetaKey(tag), func() decoration.Options { return metaOptions(p) })
			if err != nil {
				return errors.Wrapf(err, "meta decoration %s", tag)
			}
			add(h, rs)
		}
		if rs := res.glass[tag]; len(rs) > 0 && p.Channels.Glass.Enabled {
			h, err := e.cache.Get(decoration.GlassKey(tag), func() decoration.Options { return glassOptions(p) })
			if err != nil {
				return errors.Wrapf(err, "glass decoration %s", tag)
			}
			add(h, rs)
		}
		if bucket := res.text[tag]; bucket != nil {
			for _, hash := range bucket.order {
				style := bucket.styles[hash]
				h, err := e.cache.Get(decoration.TextKey(tag, hash), func() decoration.Options { return textOptions(style) })
				if err != nil {
					return errors.Wrapf(err, "text decoration %s", tag)
				}
				add(h, bucket.ranges[hash])
			}
		}
	}

	for _, subTag := range res.subTags {
		p, err := e.plans.Plan(subTag)
		if err != nil {
			return err
		}
		style := SubTagStyle(p)
		h, err := e.cache.Get(decoration.SubTagKey(subTag, textstyle.PanelHash(style)), func() decoration.Options { return textOptions(style) })
		if err != nil {
			return errors.Wrapf(err, "sub-tag decoration %s", subTag)
		}
		add(h, res.subTag[subTag])
	}

	applied := make(map[decoration.Handle]bool)
	for _, a := range pending {
		if !applied[a.handle] {
			applied[a.handle] = true
			e.applied[id] = append(e.applied[id], a.handle)
		}
		ed.SetDecorations(a.handle, a.ranges)
	}
	return nil
}
