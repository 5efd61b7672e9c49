// Package jdita is the JDITA AST as exchanged with the XML parser and
// serializer: element nodes with attributes and children, and text leaves.
package jdita

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"lwdita-editor/internal/common"
)

// TextName is the nodeName of text leaves.
const TextName = "text"

// Node is one JDITA AST node. Text leaves carry Content and no Children.
type Node struct {
	NodeName   string            `json:"nodeName"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Children   []*Node           `json:"children,omitempty"`
	Content    string            `json:"content,omitempty"`
}

// NewText returns a text leaf.
func NewText(content string) *Node {
	return &Node{NodeName: TextName, Content: content}
}

// NewElement returns an element node.
func NewElement(name string, attrs map[string]string, children ...*Node) *Node {
	return &Node{NodeName: name, Attributes: attrs, Children: children}
}

// IsText reports whether n is a text leaf.
func (n *Node) IsText() bool { return n != nil && n.NodeName == TextName }

// Attr returns the attribute value, "" when absent.
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}

	return n.Attributes[name]
}

// Text concatenates the content of every text leaf under n.
func (n *Node) Text() string {
	var b strings.Builder

	_ = Walk(n, func(c *Node, _ string) error {
		if c.IsText() {
			b.WriteString(c.Content)
		}

		return nil
	})

	return b.String()
}

// Clone deep-copies n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	out := &Node{NodeName: n.NodeName, Content: n.Content, Attributes: maps.Clone(n.Attributes)}

	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}

	return out
}

// Walk visits n and its descendants depth first, passing each node's path.
// It stops at the first error fn returns.
func Walk(n *Node, fn func(*Node, string) error) error {
	return walk(n, n.name(), fn)
}

func walk(n *Node, path string, fn func(*Node, string) error) error {
	if n == nil {
		return nil
	}

	if err := fn(n, path); err != nil {
		return err
	}

	for i, c := range n.Children {
		if err := walk(c, common.ChildPath(path, c.name(), i), fn); err != nil {
			return err
		}
	}

	return nil
}

func (n *Node) name() string {
	if n == nil || n.NodeName == "" {
		return "?"
	}

	return n.NodeName
}

var (
	ErrMissingName      = errors.New("missing nodeName")
	ErrNilNode          = errors.New("nil node")
	ErrContentOnElement = errors.New("content on a non-text node")
	ErrChildrenOnText   = errors.New("children on a text node")
)

// ValidationError locates a boundary contract violation.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("jdita: invalid node at %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate checks the shape rules of the AST boundary and returns every
// violation found, joined.
func Validate(n *Node) error {
	if n == nil {
		return &ValidationError{Path: "", Err: ErrNilNode}
	}

	var errs []error

	_ = Walk(n, func(c *Node, path string) error {
		switch {
		case c.NodeName == "":
			errs = append(errs, &ValidationError{Path: path, Err: ErrMissingName})
		case c.IsText() && len(c.Children) > 0:
			errs = append(errs, &ValidationError{Path: path, Err: ErrChildrenOnText})
		case !c.IsText() && c.Content != "":
			errs = append(errs, &ValidationError{Path: path, Err: ErrContentOnElement})
		}

		for i, cc := range c.Children {
			if cc == nil {
				errs = append(errs, &ValidationError{Path: common.ChildPath(path, "?", i), Err: ErrNilNode})
			}
		}

		return nil
	})

	return errors.Join(errs...)
}
