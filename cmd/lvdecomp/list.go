// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvdecomp/decompose"
	"github.com/katalvlaran/lvdecomp/render"
)

func newMethodsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List the decomposition methods and their aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "METHOD\tTITLE\tALIASES")
			for _, m := range decompose.Methods() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m, m.Title(), strings.Join(m.Aliases(), ", "))
			}

			return tw.Flush()
		},
	}
}

func newExamplesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "List the built-in example matrices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for i, ex := range render.Examples {
				if i > 0 {
					fmt.Fprintln(a.out)
				}
				fmt.Fprintf(a.out, "%s (%s)\n", ex.Name, ex.Method)
				for _, line := range strings.Split(ex.Text, "\n") {
					fmt.Fprintf(a.out, "  %s\n", line)
				}
			}

			return nil
		},
	}
}
