package policy

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultAttrPrefix is prepended to fields no table renames.
const DefaultAttrPrefix = "data-j-"

// Wildcard ends a kind pattern in the DOM table, e.g. "media-*".
const Wildcard = "*"

// Kinds the transducers fold media children for.
const (
	KindVideo = "video"
	KindAudio = "audio"
	KindImage = "image"
)

// ErrMediaKind reports a media table for a kind that has no media behaviour.
var ErrMediaKind = errors.New("not a media kind")

// IsMediaKind reports whether kind may carry a media table.
func IsMediaKind(kind string) bool {
	switch kind {
	case KindVideo, KindAudio, KindImage:
		return true
	}

	return false
}

// Tables is the read-only policy data. Build it once and share it.
type Tables struct {
	// DOM maps a kind, or a kind pattern ending in "*", to field renames.
	DOM map[string]map[string]string `yaml:"dom,omitempty"`
	// Media maps a media kind to its fold rules.
	Media map[string]*Media `yaml:"media,omitempty"`
}

// Media describes how one media kind folds its grammar children.
type Media struct {
	Kind  string     `yaml:"kind"`
	Folds []FoldRule `yaml:"folds"`
	// Order is the canonical child order used when children are rebuilt.
	Order []string `yaml:"order"`
}

// FoldRule maps one child kind onto one editor attribute.
type FoldRule struct {
	// Child is the grammar kind that is folded away.
	Child string `yaml:"child"`
	// Attr is the editor attribute that receives the value.
	Attr string `yaml:"attr"`
	// Field is the child attribute holding the value; empty means the
	// child's text content.
	Field string `yaml:"field,omitempty"`
	// Bool rules only fold the values "true" and "false".
	Bool bool `yaml:"bool,omitempty"`
}

// IsText reports whether the rule folds the child's text.
func (r FoldRule) IsText() bool { return r.Field == "" }

func flagRules(poster bool) []FoldRule {
	rules := []FoldRule{{Child: "desc", Attr: "title"}}
	if poster {
		rules = append(rules, FoldRule{Child: "video-poster", Attr: "poster", Field: "value"})
	}

	for _, f := range []string{"controls", "autoplay", "loop", "muted"} {
		rules = append(rules, FoldRule{Child: "media-" + f, Attr: f, Field: "value", Bool: true})
	}

	return rules
}

// Default returns the LwDITA tables.
func Default() *Tables {
	return &Tables{
		DOM: map[string]map[string]string{
			"*": {
				"id":       "id",
				"class":    "class",
				"dir":      "dir",
				"xml:lang": "lang",
			},
			"image": {
				"href":   "src",
				"scope":  "data-j-scope",
				"height": "height",
				"width":  "width",
			},
			"media-*": {
				"href": "src",
			},
			"media-track": {
				"srclang": "srclang",
				"kind":    "kind",
			},
			"media-source": {
				"type": "type",
			},
			"xref": {
				"href": "href",
			},
		},
		Media: map[string]*Media{
			KindVideo: {
				Kind:  KindVideo,
				Folds: flagRules(true),
				Order: []string{
					"desc", "video-poster", "media-controls", "media-autoplay", "media-loop", "media-muted",
					"fallback", "media-source", "media-track",
				},
			},
			KindAudio: {
				Kind:  KindAudio,
				Folds: flagRules(false),
				Order: []string{
					"desc", "media-controls", "media-autoplay", "media-loop", "media-muted",
					"fallback", "media-source", "media-track",
				},
			},
			KindImage: {
				Kind:  KindImage,
				Folds: []FoldRule{{Child: "alt", Attr: "alt"}},
				Order: []string{"alt"},
			},
		},
	}
}

// Parse reads YAML tables and lays them over Default: DOM renames are merged
// per kind and media entries replace the default entry of the same kind.
// Media entries are only accepted for video, audio and image.
func Parse(data []byte) (*Tables, error) {
	var in Tables

	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse policy YAML: %w", err)
	}

	t := Default()

	for kind, renames := range in.DOM {
		if t.DOM[kind] == nil {
			t.DOM[kind] = map[string]string{}
		}

		maps.Copy(t.DOM[kind], renames)
	}

	for kind, m := range in.Media {
		if !IsMediaKind(kind) {
			return nil, fmt.Errorf("policy media %q: %w", kind, ErrMediaKind)
		}

		if m == nil {
			delete(t.Media, kind)
			continue
		}

		if m.Kind != "" && m.Kind != kind {
			return nil, fmt.Errorf("policy media %q declares kind %q: %w", kind, m.Kind, ErrMediaKind)
		}

		m.Kind = kind

		t.Media[kind] = m
	}

	return t, nil
}

// patterns returns the wildcard keys of the DOM table, longest prefix first.
func (t *Tables) patterns() []string {
	var out []string

	for k := range t.DOM {
		if strings.HasSuffix(k, Wildcard) {
			out = append(out, k)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}

		return out[i] < out[j]
	})

	return out
}

// DOMAttr returns the DOM attribute a grammar field renders as: an exact kind
// override, then the longest matching kind pattern, then DefaultAttrPrefix.
func (t *Tables) DOMAttr(kind, field string) string {
	if a, ok := t.DOM[kind][field]; ok {
		return a
	}

	for _, p := range t.patterns() {
		if !strings.HasPrefix(kind, strings.TrimSuffix(p, Wildcard)) {
			continue
		}

		if a, ok := t.DOM[p][field]; ok {
			return a
		}
	}

	return DefaultAttrPrefix + field
}

// FieldForDOMAttr inverts DOMAttr over the given fields of kind.
func (t *Tables) FieldForDOMAttr(kind, attr string, fields []string) (string, bool) {
	for _, f := range fields {
		if t.DOMAttr(kind, f) == attr {
			return f, true
		}
	}

	if f, ok := strings.CutPrefix(attr, DefaultAttrPrefix); ok {
		return f, true
	}

	return "", false
}

// MediaFor returns the media table of kind.
func (t *Tables) MediaFor(kind string) (*Media, bool) {
	m, ok := t.Media[kind]
	return m, ok && m != nil
}

// SynthesizedAttrs lists the editor attributes kind hosts for folded
// children, in fold order.
func (t *Tables) SynthesizedAttrs(kind string) []string {
	m, ok := t.MediaFor(kind)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(m.Folds))
	for _, r := range m.Folds {
		out = append(out, r.Attr)
	}

	return out
}

// Rule returns the fold rule for a child kind.
func (m *Media) Rule(child string) (FoldRule, bool) {
	for _, r := range m.Folds {
		if r.Child == child {
			return r, true
		}
	}

	return FoldRule{}, false
}

// RuleForAttr returns the fold rule that fills an editor attribute.
func (m *Media) RuleForAttr(attr string) (FoldRule, bool) {
	for _, r := range m.Folds {
		if r.Attr == attr {
			return r, true
		}
	}

	return FoldRule{}, false
}

// Rank is the position of a child kind in the canonical order. Kinds outside
// the order rank after every listed kind.
func (m *Media) Rank(child string) int {
	for i, k := range m.Order {
		if k == child {
			return i
		}
	}

	return len(m.Order)
}

// IsFolded reports whether an editor attribute is owned by a fold rule.
func (m *Media) IsFolded(attr string) bool {
	_, ok := m.RuleForAttr(attr)
	return ok
}
