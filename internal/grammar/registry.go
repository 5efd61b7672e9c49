package grammar

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"lwdita-editor/internal/common"
)

// Well-known kinds every LwDITA registry carries.
const (
	DocumentKind = "document"
	TopicKind    = "topic"
	TextKind     = "text"
)

var (
	ErrEmptyKind     = errors.New("entry has an empty kind")
	ErrDuplicateKind = errors.New("duplicate kind")
	ErrGroupIsKind   = errors.New("group name collides with a kind")
)

// Entry describes one node kind of the grammar.
type Entry struct {
	// Kind is the element name, e.g. "media-source".
	Kind string `yaml:"kind"`
	// Content is the content model over kind and group names. Empty means
	// the kind has no children.
	Content string `yaml:"content,omitempty"`
	// Groups lists the named groups this kind is a member of.
	Groups []string `yaml:"groups,omitempty"`
	// Fields lists the attribute names of the kind.
	Fields []string `yaml:"fields,omitempty"`
	// Mark is true for inline decorations (b, i, u, sub, sup).
	Mark bool `yaml:"mark,omitempty"`
}

// resolved is the per-kind data computed once when the registry is built.
type resolved struct {
	children   []string
	unresolved []string
	mixed      bool
}

// Registry is an immutable, indexed grammar.
type Registry struct {
	entries  map[string]*Entry
	order    []string
	groups   map[string][]string // fully expanded member kinds
	groupSeq []string
	resolved map[string]*resolved
}

// New builds a registry from entries and optional group aliases. Aliases map
// a group name to member names, which may be kinds or other groups.
func New(entries []Entry, aliases map[string][]string) (*Registry, error) {
	r := &Registry{
		entries:  make(map[string]*Entry, len(entries)),
		groups:   map[string][]string{},
		resolved: make(map[string]*resolved, len(entries)),
	}

	// Direct memberships, in entry order.
	direct := map[string][]string{}

	var groupSeq []string

	for i := range entries {
		e := entries[i]
		if e.Kind == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyKind)
		}

		if _, dup := r.entries[e.Kind]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKind, e.Kind)
		}

		r.entries[e.Kind] = &e
		r.order = append(r.order, e.Kind)

		for _, g := range e.Groups {
			if _, ok := direct[g]; !ok {
				groupSeq = append(groupSeq, g)
			}

			direct[g] = append(direct[g], e.Kind)
		}
	}

	aliasNames := make([]string, 0, len(aliases))
	for g := range aliases {
		aliasNames = append(aliasNames, g)
	}

	sort.Strings(aliasNames)

	for _, g := range aliasNames {
		if _, ok := direct[g]; !ok {
			groupSeq = append(groupSeq, g)
		}
	}

	for _, g := range groupSeq {
		if _, clash := r.entries[g]; clash {
			return nil, fmt.Errorf("%w: %q", ErrGroupIsKind, g)
		}
	}

	for _, g := range groupSeq {
		r.groups[g] = r.expandGroup(g, direct, aliases, map[string]bool{})
	}

	r.groupSeq = groupSeq

	for _, kind := range r.order {
		r.resolved[kind] = r.resolve(r.entries[kind])
	}

	return r, nil
}

// expandGroup flattens a group into member kinds. visiting breaks alias
// cycles: a group already on the expansion path contributes nothing more.
func (r *Registry) expandGroup(
	g string,
	direct map[string][]string,
	aliases map[string][]string,
	visiting map[string]bool,
) []string {
	if visiting[g] {
		return nil
	}

	visiting[g] = true

	seen := map[string]struct{}{}
	out := common.AppendUnique(nil, seen, direct[g]...)

	for _, m := range aliases[g] {
		if _, ok := r.entries[m]; ok {
			out = common.AppendUnique(out, seen, m)
			continue
		}

		out = common.AppendUnique(out, seen, r.expandGroup(m, direct, aliases, visiting)...)
	}

	return out
}

func (r *Registry) resolve(e *Entry) *resolved {
	res := &resolved{}
	seen := map[string]struct{}{}

	for _, name := range Names(e.Content) {
		if _, ok := r.entries[name]; ok {
			res.children = common.AppendUnique(res.children, seen, name)
			continue
		}

		if members, ok := r.groups[name]; ok {
			res.children = common.AppendUnique(res.children, seen, members...)
			continue
		}

		res.unresolved = append(res.unresolved, name)
	}

	res.mixed = slices.Contains(res.children, TextKind)

	return res
}

// Entry returns the entry for kind.
func (r *Registry) Entry(kind string) (*Entry, bool) {
	e, ok := r.entries[kind]
	return e, ok
}

// Group returns the expanded member kinds of a group.
func (r *Registry) Group(name string) ([]string, bool) {
	m, ok := r.groups[name]
	return m, ok
}

// Has reports whether name is a kind or a group.
func (r *Registry) Has(name string) bool {
	if _, ok := r.entries[name]; ok {
		return true
	}

	_, ok := r.groups[name]

	return ok
}

// IsMark reports whether kind is an inline mark.
func (r *Registry) IsMark(kind string) bool {
	e, ok := r.entries[kind]
	return ok && e.Mark
}

// Children returns the concrete child kinds of kind, groups expanded,
// duplicates removed, first-seen order kept.
func (r *Registry) Children(kind string) []string {
	if res, ok := r.resolved[kind]; ok {
		return res.children
	}

	return nil
}

// Unresolved returns the names in kind's content model that are neither a
// kind nor a group.
func (r *Registry) Unresolved(kind string) []string {
	if res, ok := r.resolved[kind]; ok {
		return res.unresolved
	}

	return nil
}

// AllowsMixed reports whether kind admits text interleaved with elements.
// Unknown kinds do not.
func (r *Registry) AllowsMixed(kind string) bool {
	res, ok := r.resolved[kind]
	return ok && res.mixed
}

// Kinds returns every kind in registration order.
func (r *Registry) Kinds() []string {
	return append([]string(nil), r.order...)
}

// Groups returns every group name in first-seen order.
func (r *Registry) Groups() []string {
	return append([]string(nil), r.groupSeq...)
}

// Names returns every kind followed by every group.
func (r *Registry) Names() []string {
	return append(r.Kinds(), r.groupSeq...)
}

// Entries returns a copy of every entry in registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, *r.entries[k])
	}

	return out
}
