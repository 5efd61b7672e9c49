package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"gopkg.in/yaml.v3"

	"lwdita-editor/internal/diagnostic"
	"lwdita-editor/internal/grammar"
	"lwdita-editor/internal/schema"
)

func schemaMain(cfg *SchemaConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Schema.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: schema takes no arguments", cli.ErrUsage)
	}
	if cfg.Format != "json" && cfg.Format != "yaml" {
		return fmt.Errorf("%w: unknown format %q", cli.ErrUsage, cfg.Format)
	}

	reg, root, err := cfg.registry()
	if err != nil {
		return err
	}
	if cfg.Root != "" {
		root = cfg.Root
	}
	ccfg, err := cfg.compileConfig()
	if err != nil {
		return err
	}

	s, err := schema.Compile(reg, root, ccfg)
	if err != nil {
		return err
	}
	printDiagnostics(os.Stderr, &s.Diagnostics, cfg.colored(os.Stderr))
	if cfg.Strict && s.Diagnostics.Len() > 0 {
		return fmt.Errorf("schema %s: %d diagnostics", root, s.Diagnostics.Len())
	}

	switch {
	case cfg.Dump:
		spew.Fdump(cc.Out, s.ProseMirror())
		return nil
	case cfg.Check:
		if _, err := s.Build(); err != nil {
			return err
		}
		fmt.Fprintf(cc.Out, "%s: %d node types, %d mark types\n", root, len(s.Nodes), len(s.Marks))
		return nil
	}

	return writeSchema(cc.Out, s, cfg.Format)
}

func writeSchema(w io.Writer, s *schema.Schema, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "yaml":
		data, err = yaml.Marshal(s)
	default:
		data, err = json.MarshalIndent(s, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func printDiagnostics(w io.Writer, d *diagnostic.Diagnostics, colored bool) {
	if d.Len() == 0 {
		return
	}
	sev := map[diagnostic.Severity]*color.Color{
		diagnostic.SeverityError:   color.New(color.FgRed, color.Bold),
		diagnostic.SeverityWarning: color.New(color.FgYellow),
		diagnostic.SeverityInfo:    color.New(color.FgBlue),
	}
	for _, c := range sev {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	for _, diag := range d.All() {
		fmt.Fprintf(w, "%s: %s\n", sev[diag.Severity].Sprint(diag.Severity), diag)
	}
}

func grammarMain(cfg *GrammarConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Export.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: grammar takes no arguments", cli.ErrUsage)
	}
	reg, root, err := cfg.registry()
	if err != nil {
		return err
	}
	f := grammar.Export(reg)
	f.Root = root
	data, err := grammar.Marshal(f)
	if err != nil {
		return err
	}
	_, err = cc.Out.Write(data)
	return err
}
