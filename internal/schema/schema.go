package schema

import (
	"sort"

	"lwdita-editor/internal/diagnostic"
)

// NodeSpec is the compiled spec of one kind in one variant.
type NodeSpec struct {
	// Name is the editor type name, e.g. "block_media_source".
	Name string `json:"name" yaml:"name"`
	// Kind is the grammar kind. It is empty for the synthetic hard_break.
	Kind    string  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Variant Variant `json:"variant" yaml:"variant"`
	// Content is the content expression over editor names. Empty means no
	// content.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
	// Children are the resolved child kinds.
	Children []string `json:"children,omitempty" yaml:"children,omitempty"`
	Inline   bool     `json:"inline" yaml:"inline"`
	// Mixed is set when the kind's own content admits text.
	Mixed bool `json:"mixed,omitempty" yaml:"mixed,omitempty"`
	// InMixed is set when the spec is placed inside mixed content.
	InMixed bool `json:"inMixed,omitempty" yaml:"inMixed,omitempty"`
	// Attrs maps every attribute to its default.
	Attrs map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	// DOM maps grammar fields to rendered DOM attribute names.
	DOM map[string]string `json:"dom,omitempty" yaml:"dom,omitempty"`
}

// MarkSpec is the compiled spec of an inline mark.
type MarkSpec struct {
	Name  string            `json:"name" yaml:"name"`
	Kind  string            `json:"kind" yaml:"kind"`
	Attrs map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	DOM   map[string]string `json:"dom,omitempty" yaml:"dom,omitempty"`
}

// Schema is the result of one compilation. It is not modified after
// Compile returns.
type Schema struct {
	// Root is the grammar kind compilation started from.
	Root string `json:"root" yaml:"root"`
	// Top is the editor name of the root spec.
	Top   string      `json:"top" yaml:"top"`
	Nodes []*NodeSpec `json:"nodes" yaml:"nodes"`
	Marks []*MarkSpec `json:"marks,omitempty" yaml:"marks,omitempty"`
	// Diagnostics holds the recoverable problems found while compiling.
	Diagnostics diagnostic.Diagnostics `json:"-" yaml:"-"`

	nodes map[string]*NodeSpec
	marks map[string]*MarkSpec
}

func (s *Schema) index() {
	s.nodes = make(map[string]*NodeSpec, len(s.Nodes))
	for _, n := range s.Nodes {
		s.nodes[n.Name] = n
	}

	s.marks = make(map[string]*MarkSpec, len(s.Marks))
	for _, m := range s.Marks {
		s.marks[m.Name] = m
	}
}

// Node returns the spec with the given editor name.
func (s *Schema) Node(name string) (*NodeSpec, bool) {
	n, ok := s.nodes[name]
	return n, ok
}

// Mark returns the mark spec with the given editor name.
func (s *Schema) Mark(name string) (*MarkSpec, bool) {
	m, ok := s.marks[name]
	return m, ok
}

// Names returns the editor names of every node spec in emission order.
func (s *Schema) Names() []string {
	out := make([]string, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		out = append(out, n.Name)
	}

	return out
}

// Kinds returns the sorted grammar kinds that have a node or mark spec.
func (s *Schema) Kinds() []string {
	seen := map[string]bool{}

	var out []string

	add := func(k string) {
		if k != "" && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}

	for _, n := range s.Nodes {
		add(n.Kind)
	}

	for _, m := range s.Marks {
		add(m.Kind)
	}

	sort.Strings(out)

	return out
}

// Variants returns the specs compiled for kind, plain first.
func (s *Schema) Variants(kind string) []*NodeSpec {
	var out []*NodeSpec

	for _, n := range s.Nodes {
		if n.Kind == kind {
			out = append(out, n)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Variant < out[j].Variant })

	return out
}
