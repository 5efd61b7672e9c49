package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/scott-cotton/cli"
)

// lwditaMain runs the subcommand named by the first argument. A usage error
// prints that subcommand's usage and exits with its code.
func lwditaMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer cfg.closeOut()

	rest, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return cli.ErrNoCommandProvided
	}

	name, subArgs := rest[0], rest[1:]
	cmd := cfg.Main.FindSub(cc, name)
	if cmd == nil {
		return fmt.Errorf("%w: %q, want one of %s", cli.ErrNoSuchCommand, name, strings.Join(commandNames, ", "))
	}

	err = cmd.Run(cc, subArgs)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, cli.ErrUsage):
		cmd.Usage(cc, err)
		os.Exit(cmd.Exit(cc, err))
	}
	return fmt.Errorf("%s: %w", name, err)
}

var commandNames = []string{"schema", "grammar", "forward", "reverse", "roundtrip"}

// outOpt sends command output to path. "-" keeps stdout.
func (cfg *MainConfig) outOpt(cc *cli.Context, path string) (any, error) {
	if path == "" || path == "-" {
		return nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("output %s: %w", path, err)
	}
	cfg.Out = path
	cfg.CloseOut = f.Close
	cc.Out = f
	return nil, nil
}

func (cfg *MainConfig) closeOut() {
	if cfg.CloseOut != nil {
		cfg.CloseOut()
	}
}
