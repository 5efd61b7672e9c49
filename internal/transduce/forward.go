package transduce

import (
	"lwdita-editor/internal/common"
	"lwdita-editor/internal/editor"
	"lwdita-editor/internal/grammar"
	"lwdita-editor/internal/jdita"
	"lwdita-editor/internal/policy"
)

const opForward = "forward"

// ToEditor transduces a whole document. The root must be a document node.
func (t *Transducer) ToEditor(doc *jdita.Node) (*editor.Node, error) {
	if doc == nil {
		return nil, wrap(opForward, "", ErrNilNode)
	}

	if doc.NodeName != grammar.DocumentKind {
		return nil, wrap(opForward, doc.NodeName, ErrNotDocument)
	}

	return t.Forward(doc, doc)
}

// Forward transduces node placed under parent. Passing the node itself, or
// nil, as parent makes it the root: it gets no parent attribute and no
// block prefix.
func (t *Transducer) Forward(node, parent *jdita.Node) (*editor.Node, error) {
	r := t.newRun(opForward)

	root := parent == nil || parent == node

	parentKind := ""
	if !root {
		parentKind = parent.NodeName
	}

	out, err := r.forward(node, parentKind, root, nodePath(node))
	if err != nil {
		return nil, err
	}

	return out, r.err()
}

func nodePath(n *jdita.Node) string {
	if n == nil || n.NodeName == "" {
		return "?"
	}

	return n.NodeName
}

// forward maps n, whose structural parent has kind parent. A nil node with a
// nil error means the subtree failed and was dropped.
func (r *run) forward(n *jdita.Node, parent string, root bool, path string) (*editor.Node, error) {
	switch {
	case n == nil:
		return nil, r.fail(path, ErrNilNode)
	case n.NodeName == "":
		return nil, r.fail(path, ErrMissingName)
	}

	if _, ok := r.t.reg.Entry(n.NodeName); !ok {
		return nil, r.fail(path, ErrUnknownKind)
	}

	switch r.t.classify(n.NodeName) {
	case classText:
		out := &editor.Node{Type: editor.TextType, Text: n.Content}
		if !root {
			out.Attrs = map[string]string{editor.ParentAttr: editor.TypeName(parent, false)}
		}

		return out, nil

	case classMark:
		return r.forwardMark(n, parent, path)

	case classVideo, classAudio, classImage:
		m, _ := r.t.tables.MediaFor(n.NodeName)
		return r.forwardMedia(n, parent, root, path, m)

	case classDefault:
		out := r.shell(n, parent, root)
		if err := r.forwardChildren(out, n.Children, n.NodeName, path); err != nil {
			return nil, err
		}

		return out, nil
	}

	return nil, r.fail(path, ErrUnknownKind)
}

// shell is the editor node for n without content.
func (r *run) shell(n *jdita.Node, parent string, root bool) *editor.Node {
	if root {
		return &editor.Node{Type: editor.TypeName(n.NodeName, false), Attrs: cleanAttrs(n.Attributes)}
	}

	block := !r.t.reg.AllowsMixed(parent)

	return &editor.Node{
		Type:  editor.TypeName(n.NodeName, block),
		Attrs: parentAttrs(n.Attributes, parent),
	}
}

func (r *run) forwardChildren(out *editor.Node, children []*jdita.Node, kind, path string) error {
	for i, c := range children {
		ec, err := r.forward(c, kind, false, common.ChildPath(path, nodePath(c), i))
		if err != nil {
			return err
		}

		if ec != nil {
			out.Content = append(out.Content, ec)
		}
	}

	return nil
}

// forwardMark replaces the mark with its only child, which keeps the mark's
// structural parent and gains the mark in front of its own marks.
func (r *run) forwardMark(n *jdita.Node, parent, path string) (*editor.Node, error) {
	if !common.IsSingle(n.Children) {
		return nil, r.fail(path, &MalformedMarkError{Kind: n.NodeName, Children: len(n.Children)})
	}

	c, _ := common.First(n.Children)

	out, err := r.forward(c, parent, false, common.ChildPath(path, nodePath(c), 0))
	if err != nil || out == nil {
		return nil, err
	}

	mark := editor.Mark{Type: editor.TypeName(n.NodeName, false), Attrs: cleanAttrs(n.Attributes)}
	out.Marks = append([]editor.Mark{mark}, out.Marks...)

	return out, nil
}

// forwardMedia folds the representable children of a media node into
// attributes and keeps the rest as content.
func (r *run) forwardMedia(n *jdita.Node, parent string, root bool, path string, m *policy.Media) (*editor.Node, error) {
	for _, rule := range m.Folds {
		if n.Attr(rule.Attr) != "" {
			return nil, r.fail(path, &MalformedMediaError{
				Kind:   n.NodeName,
				Attr:   rule.Attr,
				Reason: "attribute is reserved for the folded " + rule.Child,
			})
		}
	}

	out := r.shell(n, parent, root)
	seen := map[string]bool{}

	for i, c := range n.Children {
		if v, rule, ok := fold(c, m, seen); ok {
			if out.Attrs == nil {
				out.Attrs = map[string]string{}
			}

			out.Attrs[rule.Attr] = v

			continue
		}

		ec, err := r.forward(c, n.NodeName, false, common.ChildPath(path, nodePath(c), i))
		if err != nil {
			return nil, err
		}

		if ec != nil {
			out.Content = append(out.Content, ec)
		}
	}

	return out, nil
}

// fold returns the folded value of c. Only the first child of each folded
// kind is considered; later ones stay children.
func fold(c *jdita.Node, m *policy.Media, seen map[string]bool) (string, policy.FoldRule, bool) {
	if c == nil {
		return "", policy.FoldRule{}, false
	}

	rule, ok := m.Rule(c.NodeName)
	if !ok || seen[c.NodeName] {
		return "", policy.FoldRule{}, false
	}

	seen[c.NodeName] = true

	v, ok := foldValue(c, rule)

	return v, rule, ok
}

// foldValue returns the attribute value c folds into, if c is exactly
// representable by it: no attributes beyond the value field, no children
// beyond a single text leaf, and a boolean value where the rule requires one.
func foldValue(c *jdita.Node, rule policy.FoldRule) (string, bool) {
	attrs := cleanAttrs(c.Attributes)

	if rule.IsText() {
		if len(attrs) != 0 || !common.IsSingle(c.Children) {
			return "", false
		}

		t, _ := common.First(c.Children)
		if !t.IsText() || t.Content == "" {
			return "", false
		}

		return t.Content, true
	}

	v := attrs[rule.Field]
	if !common.IsEmpty(c.Children) || len(attrs) != 1 || v == "" {
		return "", false
	}

	if rule.Bool && v != "true" && v != "false" {
		return "", false
	}

	return v, true
}
