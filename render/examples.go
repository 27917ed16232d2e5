// SPDX-License-Identifier: MIT

package render

import "github.com/katalvlaran/lvdecomp/decompose"

// Example is a ready-made input for one of the methods.
type Example struct {
	Name   string
	Method decompose.Method
	Text   string
}

// Examples is the catalogue offered by the CLI and the HTTP API.
var Examples = []Example{
	{"spd-3x3", decompose.MethodCholesky, "4 12 -16\n12 37 -43\n-16 -43 98"},
	{"spd-2x2", decompose.MethodCholesky, "4 2\n2 3"},
	{"non-symmetric-2x2", decompose.MethodCholesky, "1 2\n3 4"},
	{"indefinite-2x2", decompose.MethodCholesky, "0 1\n1 0"},
	{"general-3x3", decompose.MethodLU, "2 -1 0\n-1 2 -1\n0 -1 2"},
	{"pivoting-3x3", decompose.MethodLU, "1 2 3\n4 5 6\n7 8 10"},
	{"dominant-3x3", decompose.MethodDoolittle, "10 2 1\n3 12 2\n1 4 15"},
	{"singular-2x2", decompose.MethodDoolittle, "1 2\n2 4"},
	{"diagonalizable-2x2", decompose.MethodDiagonalize, "4 1\n2 3"},
	{"symmetric-3x3", decompose.MethodEigen, "2 0 0\n0 3 4\n0 4 9"},
	{"rotation-2x2", decompose.MethodEigen, "0 -1\n1 0"},
}

// LookupExample finds an example by name.
func LookupExample(name string) (Example, bool) {
	for _, e := range Examples {
		if e.Name == name {
			return e, true
		}
	}

	return Example{}, false
}
