package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "lwdita-editor").
		WithSynopsis("lwdita-editor [opts] command [opts]").
		WithDescription("lwdita-editor compiles editor schemas from the LwDITA grammar and converts documents between JDITA and editor trees.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return lwditaMain(cfg, cc, args)
		}).
		WithSubs(
			SchemaCommand(cfg),
			GrammarCommand(cfg),
			ForwardCommand(cfg),
			ReverseCommand(cfg),
			RoundtripCommand(cfg))
}

func SchemaCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SchemaConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Schema, "schema").
		WithAliases("s").
		WithSynopsis("schema [-f json|yaml] [-root kind] [-check] [-dump] [-strict]").
		WithDescription("compile the editor schema and print it").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return schemaMain(cfg, cc, args)
		})
}

func GrammarCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GrammarConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Export, "grammar").
		WithAliases("g").
		WithSynopsis("grammar").
		WithDescription("print the effective grammar as yaml, a starting point for overlays").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return grammarMain(cfg, cc, args)
		})
}

func ForwardCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TransduceConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "forward").
		WithAliases("f", "fwd").
		WithSynopsis("forward [-collect] [files]").
		WithDescription("convert JDITA documents to editor trees").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return forwardMain(cfg, cc, args)
		})
}

func ReverseCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TransduceConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "reverse").
		WithAliases("r", "rev").
		WithSynopsis("reverse [-collect] [files]").
		WithDescription("convert editor trees to JDITA documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return reverseMain(cfg, cc, args)
		})
}

func RoundtripCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RoundtripConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Roundtrip, "roundtrip").
		WithAliases("rt").
		WithSynopsis("roundtrip [-editor] [files]").
		WithDescription("convert each input there and back and print any difference").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return roundtripMain(cfg, cc, args)
		})
}
