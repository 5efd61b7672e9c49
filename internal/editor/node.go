// Package editor is the editor document tree: typed nodes with string
// attributes, text leaves carrying marks, and the mapping between grammar
// kinds and editor type names.
package editor

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"lwdita-editor/internal/common"
)

// Well-known editor type names.
const (
	TextType      = "text"
	HardBreakType = "hard_break"
	DocType       = "doc"
	BlockPrefix   = "block_"
	// ParentAttr is the synthetic attribute naming a node's structural
	// parent kind.
	ParentAttr = "parent"
)

// Node is one editor tree node. Text leaves carry Text and Marks.
type Node struct {
	Type    string            `json:"type"`
	Attrs   map[string]string `json:"attrs,omitempty"`
	Content []*Node           `json:"content,omitempty"`
	Text    string            `json:"text,omitempty"`
	Marks   []Mark            `json:"marks,omitempty"`
}

// Mark is an inline decoration carried by a text node.
type Mark struct {
	Type  string            `json:"type"`
	Attrs map[string]string `json:"attrs,omitempty"`
}

// IsText reports whether n is a text leaf.
func (n *Node) IsText() bool { return n != nil && n.Type == TextType }

// Attr returns the attribute value, "" when absent.
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}

	return n.Attrs[name]
}

// Clone deep-copies n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	out := &Node{Type: n.Type, Text: n.Text, Attrs: maps.Clone(n.Attrs)}

	if n.Marks != nil {
		out.Marks = make([]Mark, len(n.Marks))
		for i, m := range n.Marks {
			out.Marks[i] = Mark{Type: m.Type, Attrs: maps.Clone(m.Attrs)}
		}
	}

	if n.Content != nil {
		out.Content = make([]*Node, len(n.Content))
		for i, c := range n.Content {
			out.Content[i] = c.Clone()
		}
	}

	return out
}

// Walk visits n and its descendants depth first, passing each node's path.
// It stops at the first error fn returns.
func Walk(n *Node, fn func(*Node, string) error) error {
	return walk(n, typeOf(n), fn)
}

func walk(n *Node, path string, fn func(*Node, string) error) error {
	if n == nil {
		return nil
	}

	if err := fn(n, path); err != nil {
		return err
	}

	for i, c := range n.Content {
		if err := walk(c, common.ChildPath(path, typeOf(c), i), fn); err != nil {
			return err
		}
	}

	return nil
}

func typeOf(n *Node) string {
	if n == nil || n.Type == "" {
		return "?"
	}

	return n.Type
}

// TypeName maps a grammar kind to its editor type: hyphens become
// underscores, "document" becomes "doc", and block placement adds the
// "block_" prefix.
func TypeName(kind string, block bool) string {
	name := strings.ReplaceAll(kind, "-", "_")
	if kind == "document" {
		name = DocType
	}

	if block {
		return BlockPrefix + name
	}

	return name
}

// KindOf inverts TypeName. Because grammar kinds never contain underscores,
// every underscore maps back to a hyphen.
func KindOf(typ string) (kind string, block bool) {
	name, block := strings.CutPrefix(typ, BlockPrefix)
	if name == DocType {
		return "document", block
	}

	return strings.ReplaceAll(name, "_", "-"), block
}

var (
	ErrMissingType   = errors.New("missing type")
	ErrNilNode       = errors.New("nil node")
	ErrTextOnElement = errors.New("text on a non-text node")
	ErrContentOnText = errors.New("content on a text node")
	ErrMarksOnBlock  = errors.New("marks on a block node")
)

// ValidationError locates a boundary contract violation.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("editor: invalid node at %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate checks the shape rules of the editor tree boundary and returns
// every violation found, joined.
func Validate(n *Node) error {
	if n == nil {
		return &ValidationError{Err: ErrNilNode}
	}

	var errs []error

	add := func(path string, err error) {
		errs = append(errs, &ValidationError{Path: path, Err: err})
	}

	_ = Walk(n, func(c *Node, path string) error {
		switch {
		case c.Type == "":
			add(path, ErrMissingType)
		case c.IsText() && len(c.Content) > 0:
			add(path, ErrContentOnText)
		case !c.IsText() && c.Text != "":
			add(path, ErrTextOnElement)
		case len(c.Marks) > 0 && strings.HasPrefix(c.Type, BlockPrefix):
			add(path, ErrMarksOnBlock)
		}

		for i, cc := range c.Content {
			if cc == nil {
				add(common.ChildPath(path, "?", i), ErrNilNode)
			}
		}

		return nil
	})

	return errors.Join(errs...)
}
