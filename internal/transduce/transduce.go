package transduce

import (
	"errors"
	"log/slog"
	"maps"

	"lwdita-editor/internal/editor"
	"lwdita-editor/internal/grammar"
	"lwdita-editor/internal/policy"
)

// Config holds configuration for both transduction directions.
type Config struct {
	// CollectErrors drops failing subtrees instead of aborting, and returns
	// every failure joined with the partial tree.
	CollectErrors bool
	// Logger receives dropped-subtree warnings. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns the fail-fast configuration.
func DefaultConfig() Config {
	return Config{}
}

// Transducer converts between AST and editor trees. It holds only read-only
// data and is safe for concurrent use.
type Transducer struct {
	reg    *grammar.Registry
	tables *policy.Tables
	cfg    Config
	log    *slog.Logger
}

// New returns a Transducer over reg and tables. Nil arguments select the
// built-in LwDITA registry and the default tables.
func New(reg *grammar.Registry, tables *policy.Tables, cfg Config) *Transducer {
	if reg == nil {
		reg = grammar.LwDITA()
	}

	if tables == nil {
		tables = policy.Default()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Transducer{reg: reg, tables: tables, cfg: cfg, log: logger}
}

// class is the closed set of node behaviours.
type class int

const (
	classDefault class = iota
	classText
	classMark
	classVideo
	classAudio
	classImage
)

func (t *Transducer) classify(kind string) class {
	switch {
	case kind == grammar.TextKind:
		return classText
	case t.reg.IsMark(kind):
		return classMark
	}

	if _, ok := t.tables.MediaFor(kind); !ok {
		return classDefault
	}

	switch kind {
	case policy.KindVideo:
		return classVideo
	case policy.KindAudio:
		return classAudio
	case policy.KindImage:
		return classImage
	default:
		return classDefault
	}
}

// run holds the failures of one call.
type run struct {
	t    *Transducer
	op   string
	errs []error
}

func (t *Transducer) newRun(op string) *run {
	return &run{t: t, op: op}
}

// fail records err at path. It returns nil when the failing subtree may be
// dropped and the walk continue, and the wrapped error otherwise.
func (r *run) fail(path string, err error) error {
	var located *Error
	if !errors.As(err, &located) {
		err = wrap(r.op, path, err)
	}

	if !r.t.cfg.CollectErrors {
		return err
	}

	r.errs = append(r.errs, err)
	r.t.log.Warn("dropped subtree", "op", r.op, "path", path, "err", err)

	return nil
}

func (r *run) err() error {
	return errors.Join(r.errs...)
}

// cleanAttrs copies attrs without empty values and without the keys in
// drop. It returns nil when nothing is left.
func cleanAttrs(attrs map[string]string, drop ...string) map[string]string {
	out := maps.Clone(attrs)
	maps.DeleteFunc(out, func(_, v string) bool { return v == "" })

	for _, k := range drop {
		delete(out, k)
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

// parentAttrs returns the attributes of a non-root editor node: the cleaned
// AST attributes plus the synthetic parent.
func parentAttrs(attrs map[string]string, parent string) map[string]string {
	out := cleanAttrs(attrs)
	if out == nil {
		out = make(map[string]string, 1)
	}

	out[editor.ParentAttr] = editor.TypeName(parent, false)

	return out
}
