package transduce

import (
	"errors"
	"fmt"
)

var (
	ErrNotDocument    = errors.New("root is not a document node")
	ErrUnknownKind    = errors.New("unknown node kind")
	ErrMissingName    = errors.New("missing node name")
	ErrNilNode        = errors.New("nil node")
	ErrMalformedMark  = errors.New("malformed mark")
	ErrMalformedMedia = errors.New("malformed media node")
)

// Error locates a transduction failure.
type Error struct {
	Op   string // "forward" or "reverse"
	Path string // e.g. "document/topic[0]/body[1]/p[0]"
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("transduce %s: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("transduce %s at %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}

	return &Error{Op: op, Path: path, Err: err}
}

// MalformedMarkError is a mark that cannot be folded onto a single node, or
// a mark kind appearing as an editor node.
type MalformedMarkError struct {
	Kind string
	// Children is the number of children the mark wraps, or -1 when the
	// mark kind was found as an editor node.
	Children int
}

func (e *MalformedMarkError) Error() string {
	if e.Children < 0 {
		return fmt.Sprintf("mark %q appears as a node", e.Kind)
	}

	return fmt.Sprintf("mark %q must wrap exactly one node, wraps %d", e.Kind, e.Children)
}

func (e *MalformedMarkError) Is(target error) bool { return target == ErrMalformedMark }

// MalformedMediaError is a media node whose shape cannot be folded or
// rebuilt.
type MalformedMediaError struct {
	Kind   string
	Attr   string
	Reason string
}

func (e *MalformedMediaError) Error() string {
	if e.Attr == "" {
		return fmt.Sprintf("media %q: %s", e.Kind, e.Reason)
	}

	return fmt.Sprintf("media %q attribute %q: %s", e.Kind, e.Attr, e.Reason)
}

func (e *MalformedMediaError) Is(target error) bool { return target == ErrMalformedMedia }
