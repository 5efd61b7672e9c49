package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// input is one document read from a file or stdin.
type input struct {
	name string
	data []byte
}

func readInputs(args []string) ([]input, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []input{{name: "-", data: data}}, nil
	}

	res := make([]input, 0, len(args))
	for _, file := range args {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		res = append(res, input{name: file, data: data})
	}
	return res, nil
}

// eachInput runs fn over every input concurrently and writes the results
// to w in input order. Results of failed inputs are still written when fn
// returns output along with its error.
func eachInput(w io.Writer, ins []input, fn func(input) (string, error)) error {
	outs := make([]string, len(ins))
	errs := make([]error, len(ins))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, in := range ins {
		g.Go(func() error {
			out, err := fn(in)
			outs[i] = out
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", in.name, err)
			}
			return nil
		})
	}
	g.Wait()

	var first error
	for i, out := range outs {
		if out != "" {
			if _, err := io.WriteString(w, out); err != nil {
				return err
			}
		}
		if errs[i] != nil {
			fmt.Fprintln(os.Stderr, errs[i])
			if first == nil {
				first = errs[i]
			}
		}
	}
	return first
}
