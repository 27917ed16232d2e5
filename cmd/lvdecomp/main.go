// SPDX-License-Identifier: MIT

// Command lvdecomp factors dense matrices from the command line and serves
// the same engine over HTTP.
//
//	lvdecomp run --method cholesky --file a.txt
//	lvdecomp run --example indefinite-2x2 --output json
//	lvdecomp methods
//	lvdecomp examples
//	lvdecomp serve --addr :8080 --config lvdecomp.yaml
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/lvdecomp/render"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, render.ErrorText(err))
		os.Exit(1)
	}
}
