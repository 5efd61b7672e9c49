package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"lwdita-editor/internal/grammar"
	"lwdita-editor/internal/policy"
	"lwdita-editor/internal/schema"
	"lwdita-editor/internal/transduce"
)

type MainConfig struct {
	Grammar string `cli:"name=g aliases=grammar desc='grammar overlay file (yaml)'"`
	Policy  string `cli:"name=p aliases=policy desc='policy tables file (yaml)'"`
	Verbose bool   `cli:"name=v aliases=verbose desc='log debug output'"`
	Color   bool   `cli:"name=color desc='color diagnostics'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

type SchemaConfig struct {
	*MainConfig

	Format string `cli:"name=f aliases=format desc='output format: json or yaml' default=json"`
	Root   string `cli:"name=root desc='kind to compile from (default: grammar root)'"`
	Check  bool   `cli:"name=check desc='build the prosemirror schema and report'"`
	Dump   bool   `cli:"name=dump desc='dump the prosemirror schema spec'"`
	Strict bool   `cli:"name=strict desc='fail on compiler warnings'"`

	Schema *cli.Command
}

type GrammarConfig struct {
	*MainConfig

	Export *cli.Command
}

type TransduceConfig struct {
	*MainConfig

	Collect bool `cli:"name=collect desc='drop failing subtrees and report every failure'"`

	Command *cli.Command
}

type RoundtripConfig struct {
	*MainConfig

	Editor bool `cli:"name=editor desc='inputs are editor trees rather than JDITA'"`

	Roundtrip *cli.Command
}

func (cfg *MainConfig) logger() *slog.Logger {
	return newLog(os.Stderr, cfg.Verbose)
}

func (cfg *MainConfig) grammarFile() (*grammar.File, error) {
	if cfg.Grammar == "" {
		return nil, nil
	}

	return grammar.LoadFile(cfg.Grammar)
}

func (cfg *MainConfig) registry() (*grammar.Registry, string, error) {
	f, err := cfg.grammarFile()
	if err != nil {
		return nil, "", err
	}

	reg, err := grammar.Overlay(grammar.LwDITA(), f)
	if err != nil {
		return nil, "", fmt.Errorf("overlay %s: %w", cfg.Grammar, err)
	}

	root := grammar.DocumentKind
	if f != nil {
		root = f.Root
	}

	return reg, root, nil
}

func (cfg *MainConfig) tables() (*policy.Tables, error) {
	if cfg.Policy == "" {
		return policy.Default(), nil
	}

	data, err := os.ReadFile(cfg.Policy)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file %s: %w", cfg.Policy, err)
	}

	return policy.Parse(data)
}

func (cfg *MainConfig) compileConfig() (schema.Config, error) {
	tables, err := cfg.tables()
	if err != nil {
		return schema.Config{}, err
	}

	c := schema.DefaultConfig()
	c.Tables = tables
	c.Logger = cfg.logger()

	return c, nil
}

func (cfg *MainConfig) transducer(collect bool) (*transduce.Transducer, error) {
	reg, _, err := cfg.registry()
	if err != nil {
		return nil, err
	}

	tables, err := cfg.tables()
	if err != nil {
		return nil, err
	}

	return transduce.New(reg, tables, transduce.Config{
		CollectErrors: collect,
		Logger:        cfg.logger(),
	}), nil
}

// colored reports whether diagnostics written to w get color: always when
// -color is given, otherwise when w is a terminal.
func (cfg *MainConfig) colored(w io.Writer) bool {
	if cfg.Color {
		return true
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd())
}
