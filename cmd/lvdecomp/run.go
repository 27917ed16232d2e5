// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvdecomp/decompose"
	"github.com/katalvlaran/lvdecomp/render"
)

var errNoInput = errors.New("lvdecomp: --method is required unless --example is given")

type runOptions struct {
	method   string
	file     string
	example  string
	output   outputFormat
	noColor  bool
	residual bool
}

func newRunCmd(a *app) *cobra.Command {
	o := &runOptions{output: outputText}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Decompose one matrix",
		Long: `Reads a matrix (one row per line, entries separated by whitespace) from
--file, --example or standard input and prints its decomposition.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(o)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.method, "method", "m", "", "lu | cholesky | doolittle | crout | eigen | diagonalize (aliases accepted)")
	f.StringVarP(&o.file, "file", "f", "-", "matrix file, - for stdin")
	f.StringVarP(&o.example, "example", "e", "", "use a built-in example (see `lvdecomp examples`)")
	f.VarP(&o.output, "output", "o", "output format: text | json | yaml")
	f.BoolVar(&o.noColor, "no-color", false, "disable colors in text output")
	f.BoolVar(&o.residual, "residual", true, "print the max reconstruction error")

	return cmd
}

func (a *app) run(o *runOptions) error {
	text, methodName, err := a.input(o)
	if err != nil {
		return err
	}
	method, err := decompose.ParseMethod(methodName)
	if err != nil {
		return err
	}
	m, err := render.ParseMatrix(text)
	if err != nil {
		return err
	}

	res, err := a.cfg.Engine(a.log).Decompose(m, method)
	if err != nil {
		return err
	}

	switch o.output {
	case outputJSON, outputYAML:
		doc, err := render.NewDocument(res)
		if err != nil {
			return err
		}
		if o.output == outputJSON {
			return render.WriteJSON(a.out, doc)
		}
		return render.WriteYAML(a.out, doc)
	default:
		color := !o.noColor && isTerminal(a.out)
		return render.Text(a.out, res, render.WithColor(color), render.WithResidual(o.residual))
	}
}

// input resolves the matrix text and the method name; an example supplies
// both, and an explicit --method wins over the example's.
func (a *app) input(o *runOptions) (string, string, error) {
	if o.example != "" {
		ex, ok := render.LookupExample(o.example)
		if !ok {
			return "", "", fmt.Errorf("lvdecomp: unknown example %q", o.example)
		}
		method := ex.Method.String()
		if o.method != "" {
			method = o.method
		}
		return ex.Text, method, nil
	}
	if o.method == "" {
		return "", "", errNoInput
	}

	var r io.Reader = a.in
	if o.file != "-" && o.file != "" {
		f, err := os.Open(o.file)
		if err != nil {
			return "", "", err
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", "", fmt.Errorf("lvdecomp: read matrix: %w", err)
	}

	return string(b), o.method, nil
}
