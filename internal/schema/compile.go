package schema

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sort"

	"lwdita-editor/internal/diagnostic"
	"lwdita-editor/internal/editor"
	"lwdita-editor/internal/grammar"
	"lwdita-editor/internal/match"
	"lwdita-editor/internal/policy"
)

var (
	ErrNilRegistry = errors.New("nil grammar registry")
	ErrUnknownRoot = errors.New("unknown root kind")
)

// Config holds configuration for schema compilation.
type Config struct {
	// ContentOverrides replace the computed content expression of a kind, in
	// every variant.
	ContentOverrides map[string]string
	// Tables supplies DOM renames and the attributes media kinds host.
	Tables *policy.Tables
	// Logger receives unknown-node warnings. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns the LwDITA compilation configuration. The document
// wrapper holds exactly one topic, and the topic its fixed sequence.
func DefaultConfig() Config {
	return Config{
		ContentOverrides: map[string]string{
			grammar.DocumentKind: editor.TypeName(grammar.TopicKind, true),
			grammar.TopicKind:    "block_title block_shortdesc? block_prolog? block_body?",
		},
		Tables: policy.Default(),
	}
}

// compiler holds the state of one compilation. Nothing in it outlives the
// Compile call.
type compiler struct {
	reg *grammar.Registry
	cfg Config
	log *slog.Logger
	out *Schema

	// visited holds the editor names already emitted.
	visited map[string]bool
	// reached holds every grammar kind the walk touched.
	reached map[string]bool
	// reported holds the kinds whose unknown references are recorded.
	reported map[string]bool
	// attrs caches per-kind attribute defaults and DOM names.
	attrs    map[string][2]map[string]string
	hasMixed bool
}

// Compile walks reg from root and returns the compiled schema. Unknown
// references are recorded in Schema.Diagnostics; only an unknown root is an
// error.
func Compile(reg *grammar.Registry, root string, cfg Config) (*Schema, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}

	if _, ok := reg.Entry(root); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoot, root)
	}

	if cfg.Tables == nil {
		cfg.Tables = policy.Default()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &compiler{
		reg:      reg,
		cfg:      cfg,
		log:      logger,
		out:      &Schema{Root: root, Top: editor.TypeName(root, false)},
		visited:  map[string]bool{},
		reached:  map[string]bool{},
		reported: map[string]bool{},
		attrs:    map[string][2]map[string]string{},
	}

	c.visit(root, VariantPlain, false)

	if c.hasMixed {
		c.out.Nodes = append(c.out.Nodes, &NodeSpec{
			Name:    editor.HardBreakType,
			Variant: VariantPlain,
			Inline:  true,
			InMixed: true,
		})
	}

	c.checkOverrides()
	c.out.index()

	logger.Debug("schema compiled",
		"root", root,
		"nodes", len(c.out.Nodes),
		"marks", len(c.out.Marks),
		"warnings", len(c.out.Diagnostics.Warnings))

	return c.out, nil
}

func (c *compiler) visit(kind string, v Variant, inMixed bool) {
	e, ok := c.reg.Entry(kind)
	if !ok {
		return
	}

	c.reached[kind] = true

	switch {
	case e.Mark:
		c.visitMark(e)
		return
	case kind == grammar.TextKind:
		c.visitText()
		return
	}

	name := editor.TypeName(kind, v.IsBlock())
	if c.visited[name] {
		return
	}

	c.visited[name] = true
	c.reportUnknown(kind)

	mixed := c.reg.AllowsMixed(kind)
	if mixed {
		c.hasMixed = true
	}

	attrs, dom := c.attrsOf(e)

	spec := &NodeSpec{
		Name:     name,
		Kind:     kind,
		Variant:  v,
		Content:  c.content(e, mixed),
		Children: append([]string(nil), c.reg.Children(kind)...),
		Inline:   inMixed && inlineModel(c.model(e)),
		Mixed:    mixed,
		InMixed:  inMixed,
		Attrs:    attrs,
		DOM:      dom,
	}

	c.out.Nodes = append(c.out.Nodes, spec)

	for _, child := range spec.Children {
		c.visit(child, VariantFor(mixed), mixed)
	}
}

func (c *compiler) visitMark(e *grammar.Entry) {
	name := editor.TypeName(e.Kind, false)
	if c.visited[name] {
		return
	}

	c.visited[name] = true
	c.reportUnknown(e.Kind)

	attrs, dom := c.attrsOf(e)
	delete(attrs, editor.ParentAttr)

	c.out.Marks = append(c.out.Marks, &MarkSpec{Name: name, Kind: e.Kind, Attrs: attrs, DOM: dom})

	for _, child := range c.reg.Children(e.Kind) {
		c.visit(child, VariantPlain, true)
	}
}

func (c *compiler) visitText() {
	if c.visited[editor.TextType] {
		return
	}

	c.visited[editor.TextType] = true
	c.out.Nodes = append(c.out.Nodes, &NodeSpec{
		Name:    editor.TextType,
		Kind:    grammar.TextKind,
		Variant: VariantPlain,
		Inline:  true,
		InMixed: true,
		Attrs:   map[string]string{editor.ParentAttr: ""},
	})
}

// model is the raw content model of e, after overrides.
func (c *compiler) model(e *grammar.Entry) string {
	if o, ok := c.cfg.ContentOverrides[e.Kind]; ok {
		return o
	}

	return e.Content
}

func (c *compiler) content(e *grammar.Entry, mixed bool) string {
	if o, ok := c.cfg.ContentOverrides[e.Kind]; ok {
		return grammar.Join(grammar.Tokenize(o))
	}

	if mixed {
		return c.mixedContent(e.Kind)
	}

	return c.blockContent(e.Content)
}

// attrsOf returns fresh copies of kind's attribute defaults and DOM names.
// Collisions are reported once per kind.
func (c *compiler) attrsOf(e *grammar.Entry) (map[string]string, map[string]string) {
	cached, ok := c.attrs[e.Kind]
	if !ok {
		attrs := make(map[string]string, len(e.Fields)+1)
		dom := make(map[string]string, len(e.Fields))

		for _, f := range e.Fields {
			attrs[f] = ""
			dom[f] = c.cfg.Tables.DOMAttr(e.Kind, f)
		}

		// A DOM name must lead back to a single field.
		for _, f := range e.Fields {
			owner, _ := c.cfg.Tables.FieldForDOMAttr(e.Kind, dom[f], e.Fields)
			if owner == f {
				continue
			}

			c.out.Diagnostics.AddWarning(diagnostic.CodeAttrCollision,
				fmt.Sprintf("fields %q and %q of %q both render as DOM attribute %q", owner, f, e.Kind, dom[f]),
				e.Kind, f)
			c.log.Warn("DOM attribute collision", "kind", e.Kind, "field", f, "dom", dom[f])
		}

		extra := append([]string{editor.ParentAttr}, c.cfg.Tables.SynthesizedAttrs(e.Kind)...)
		for _, a := range extra {
			if _, clash := attrs[a]; clash {
				c.out.Diagnostics.AddWarning(diagnostic.CodeAttrCollision,
					fmt.Sprintf("field %q of %q collides with a synthesized attribute", a, e.Kind),
					e.Kind, a)
				c.log.Warn("attribute collision", "kind", e.Kind, "attr", a)

				continue
			}

			attrs[a] = ""
		}

		cached = [2]map[string]string{attrs, dom}
		c.attrs[e.Kind] = cached
	}

	return maps.Clone(cached[0]), maps.Clone(cached[1])
}

// reportUnknown records the unresolved references of kind, once per kind.
func (c *compiler) reportUnknown(kind string) {
	if c.reported[kind] {
		return
	}

	c.reported[kind] = true

	for _, ref := range c.reg.Unresolved(kind) {
		suggestions := match.Suggest(ref, c.reg.Names())
		c.out.Diagnostics.Add(diagnostic.Diagnostic{
			Severity:    diagnostic.SeverityWarning,
			Code:        diagnostic.CodeUnknownNode,
			Message:     fmt.Sprintf("content model of %q references unknown node %q", kind, ref),
			Kind:        kind,
			Ref:         ref,
			Suggestions: suggestions,
		})
		c.log.Warn("unknown node", "kind", kind, "ref", ref, "suggestions", suggestions)
	}
}

func (c *compiler) checkOverrides() {
	kinds := make([]string, 0, len(c.cfg.ContentOverrides))
	for k := range c.cfg.ContentOverrides {
		kinds = append(kinds, k)
	}

	sort.Strings(kinds)

	for _, k := range kinds {
		if c.reached[k] {
			continue
		}

		c.out.Diagnostics.AddWarning(diagnostic.CodeUnknownOverride,
			fmt.Sprintf("content override for %q matches no compiled kind", k), "", k)
		c.log.Warn("unused content override", "kind", k)
	}
}
