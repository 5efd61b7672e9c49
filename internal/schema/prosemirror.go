package schema

import (
	"fmt"

	"github.com/cozy/prosemirror-go/model"

	"lwdita-editor/internal/editor"
)

func attrSpecs(attrs map[string]string) map[string]*model.AttributeSpec {
	if len(attrs) == 0 {
		return nil
	}

	out := make(map[string]*model.AttributeSpec, len(attrs))
	for name, def := range attrs {
		out[name] = &model.AttributeSpec{Default: def}
	}

	return out
}

// ProseMirror renders s as a ProseMirror schema spec. Text carries no
// attributes there. A non-inline spec placed in mixed content becomes an
// inline atom, since ProseMirror forbids mixing inline and block nodes in
// one content expression.
func (s *Schema) ProseMirror() *model.SchemaSpec {
	spec := &model.SchemaSpec{TopNode: s.Top}

	for _, n := range s.Nodes {
		ns := &model.NodeSpec{
			Key:     n.Name,
			Content: n.Content,
			Inline:  n.Inline,
		}

		switch {
		case n.Name == editor.TextType:
		case n.InMixed && !n.Inline:
			ns.Inline = true
			ns.Atom = true
			ns.Attrs = attrSpecs(n.Attrs)
		default:
			ns.Attrs = attrSpecs(n.Attrs)
		}

		spec.Nodes = append(spec.Nodes, ns)
	}

	for _, m := range s.Marks {
		spec.Marks = append(spec.Marks, &model.MarkSpec{Key: m.Name, Attrs: attrSpecs(m.Attrs)})
	}

	return spec
}

// Build hands the ProseMirror rendering of s to model.NewSchema, which
// checks content expressions against the declared node types.
func (s *Schema) Build() (*model.Schema, error) {
	pm, err := model.NewSchema(s.ProseMirror())
	if err != nil {
		return nil, fmt.Errorf("prosemirror schema: %w", err)
	}

	return pm, nil
}
