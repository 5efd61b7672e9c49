package transduce

import (
	"maps"
	"sort"

	"lwdita-editor/internal/common"
	"lwdita-editor/internal/editor"
	"lwdita-editor/internal/jdita"
	"lwdita-editor/internal/policy"
)

const opReverse = "reverse"

// ToAST transduces an editor tree back into the AST. Root attributes other
// than the synthetic parent are kept.
func (t *Transducer) ToAST(node *editor.Node) (*jdita.Node, error) {
	r := t.newRun(opReverse)

	out, err := r.reverse(node, typePath(node))
	if err != nil {
		return nil, err
	}

	return out, r.err()
}

func typePath(n *editor.Node) string {
	if n == nil || n.Type == "" {
		return "?"
	}

	return n.Type
}

// reverse maps n back to its AST shape. A nil node with a nil error means
// the subtree failed and was dropped.
func (r *run) reverse(n *editor.Node, path string) (*jdita.Node, error) {
	switch {
	case n == nil:
		return nil, r.fail(path, ErrNilNode)
	case n.Type == "":
		return nil, r.fail(path, ErrMissingName)
	case n.Type == editor.HardBreakType:
		return jdita.NewText("\n"), nil
	}

	kind, _ := editor.KindOf(n.Type)
	if _, ok := r.t.reg.Entry(kind); !ok {
		return nil, r.fail(path, ErrUnknownKind)
	}

	var (
		out *jdita.Node
		err error
	)

	switch r.t.classify(kind) {
	case classText:
		out = jdita.NewText(n.Text)

	case classMark:
		return nil, r.fail(path, &MalformedMarkError{Kind: kind, Children: -1})

	case classVideo, classAudio, classImage:
		m, _ := r.t.tables.MediaFor(kind)
		out, err = r.reverseMedia(n, kind, path, m)

	case classDefault:
		out = &jdita.Node{NodeName: kind, Attributes: cleanAttrs(n.Attrs, editor.ParentAttr)}
		out.Children, err = r.reverseChildren(n.Content, path)
	}

	if err != nil || out == nil {
		return nil, err
	}

	return r.unfoldMarks(out, n.Marks, path)
}

func (r *run) reverseChildren(content []*editor.Node, path string) ([]*jdita.Node, error) {
	var out []*jdita.Node

	for i, c := range content {
		ac, err := r.reverse(c, common.ChildPath(path, typePath(c), i))
		if err != nil {
			return nil, err
		}

		if ac != nil {
			out = append(out, ac)
		}
	}

	return out, nil
}

// unfoldMarks wraps n in one AST node per mark, the first mark outermost.
func (r *run) unfoldMarks(n *jdita.Node, marks []editor.Mark, path string) (*jdita.Node, error) {
	for i := len(marks) - 1; i >= 0; i-- {
		kind, block := editor.KindOf(marks[i].Type)
		if block || !r.t.reg.IsMark(kind) {
			return nil, r.fail(path, &MalformedMarkError{Kind: marks[i].Type, Children: -1})
		}

		n = &jdita.Node{
			NodeName:   kind,
			Attributes: cleanAttrs(marks[i].Attrs),
			Children:   []*jdita.Node{n},
		}
	}

	return n, nil
}

// reverseMedia rebuilds the folded children of a media node from its
// attributes and orders them with the kept children canonically.
func (r *run) reverseMedia(n *editor.Node, kind, path string, m *policy.Media) (*jdita.Node, error) {
	var children []*jdita.Node

	for _, rule := range m.Folds {
		v := n.Attrs[rule.Attr]
		if v == "" {
			continue
		}

		if rule.Bool && v != "true" && v != "false" {
			return nil, r.fail(path, &MalformedMediaError{
				Kind:   kind,
				Attr:   rule.Attr,
				Reason: "want true or false, got " + v,
			})
		}

		children = append(children, unfold(rule, v))
	}

	for _, c := range n.Content {
		if c.IsText() {
			return nil, r.fail(path, &MalformedMediaError{Kind: kind, Reason: "text content is not allowed"})
		}
	}

	kept, err := r.reverseChildren(n.Content, path)
	if err != nil {
		return nil, err
	}

	children = append(children, kept...)
	sort.SliceStable(children, func(i, j int) bool {
		return m.Rank(children[i].NodeName) < m.Rank(children[j].NodeName)
	})

	attrs := cleanAttrs(n.Attrs, editor.ParentAttr)
	maps.DeleteFunc(attrs, func(k, _ string) bool { return m.IsFolded(k) })

	if len(attrs) == 0 {
		attrs = nil
	}

	return &jdita.Node{
		NodeName:   kind,
		Attributes: attrs,
		Children:   children,
	}, nil
}

// unfold builds the grammar child a fold rule reads its value from.
func unfold(rule policy.FoldRule, v string) *jdita.Node {
	if rule.IsText() {
		return jdita.NewElement(rule.Child, nil, jdita.NewText(v))
	}

	return jdita.NewElement(rule.Child, map[string]string{rule.Field: v})
}
