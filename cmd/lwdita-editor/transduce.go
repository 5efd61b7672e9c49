package main

import (
	"bytes"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/scott-cotton/cli"

	"lwdita-editor/internal/editor"
	"lwdita-editor/internal/jdita"
	"lwdita-editor/internal/transduce"
)

func forwardMain(cfg *TransduceConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Command.Parse(cc, args)
	if err != nil {
		return err
	}
	t, err := cfg.transducer(cfg.Collect)
	if err != nil {
		return err
	}
	ins, err := readInputs(args)
	if err != nil {
		return err
	}
	return eachInput(cc.Out, ins, func(in input) (string, error) {
		return forwardOne(t, in.data)
	})
}

// forwardOne returns the encoded tree even when err is set, so collected
// failures still produce the partial tree.
func forwardOne(t *transduce.Transducer, data []byte) (string, error) {
	doc, err := jdita.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	out, terr := t.ToEditor(doc)
	if out == nil {
		return "", terr
	}
	s, err := editor.EncodeString(out)
	if err != nil {
		return "", err
	}
	return s, terr
}

func reverseMain(cfg *TransduceConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Command.Parse(cc, args)
	if err != nil {
		return err
	}
	t, err := cfg.transducer(cfg.Collect)
	if err != nil {
		return err
	}
	ins, err := readInputs(args)
	if err != nil {
		return err
	}
	return eachInput(cc.Out, ins, func(in input) (string, error) {
		return reverseOne(t, in.data)
	})
}

func reverseOne(t *transduce.Transducer, data []byte) (string, error) {
	tree, err := editor.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	out, terr := t.ToAST(tree)
	if out == nil {
		return "", terr
	}
	s, err := jdita.EncodeString(out)
	if err != nil {
		return "", err
	}
	return s, terr
}

func roundtripMain(cfg *RoundtripConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Roundtrip.Parse(cc, args)
	if err != nil {
		return err
	}
	t, err := cfg.transducer(false)
	if err != nil {
		return err
	}
	ins, err := readInputs(args)
	if err != nil {
		return err
	}
	one := roundtripAST
	if cfg.Editor {
		one = roundtripEditor
	}
	return eachInput(cc.Out, ins, func(in input) (string, error) {
		diff, err := one(t, in.data)
		if err != nil {
			return "", err
		}
		if diff != "" {
			return fmt.Sprintf("%s: (-in +out)\n%s", in.name, diff), fmt.Errorf("does not round-trip")
		}
		return fmt.Sprintf("%s: ok\n", in.name), nil
	})
}

func roundtripAST(t *transduce.Transducer, data []byte) (string, error) {
	doc, err := jdita.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	tree, err := t.ToEditor(doc)
	if err != nil {
		return "", err
	}
	back, err := t.ToAST(tree)
	if err != nil {
		return "", err
	}
	return cmp.Diff(doc, back, cmpopts.EquateEmpty()), nil
}

func roundtripEditor(t *transduce.Transducer, data []byte) (string, error) {
	tree, err := editor.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	doc, err := t.ToAST(tree)
	if err != nil {
		return "", err
	}
	back, err := t.ToEditor(doc)
	if err != nil {
		return "", err
	}
	return cmp.Diff(tree, back, cmpopts.EquateEmpty()), nil
}
