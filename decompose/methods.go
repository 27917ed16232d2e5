// SPDX-License-Identifier: MIT

package decompose

import (
	"fmt"
	"strings"
)

// Method names a decomposition.
type Method string

const (
	MethodLU          Method = "lu"
	MethodCholesky    Method = "cholesky"
	MethodDoolittle   Method = "doolittle"
	MethodCrout       Method = "crout"
	MethodEigen       Method = "eigen"
	MethodDiagonalize Method = "diagonalize"
)

// methodInfo is the catalogue entry of one method.
type methodInfo struct {
	method  Method
	title   string
	aliases []string
}

// catalogue is ordered as presented to users.
var catalogue = []methodInfo{
	{MethodLU, "LU decomposition with partial pivoting (P·A = L·U)", []string{"lu-decomposition", "lup"}},
	{MethodCholesky, "Cholesky decomposition (A = L·Lᵀ) with automatic preconditioning", nil},
	{MethodDoolittle, "Doolittle decomposition (A = L·U, unit-diagonal L)", nil},
	{MethodCrout, "Crout decomposition (A = L·U, unit-diagonal U)", nil},
	{MethodEigen, "Eigenvalues and eigenvectors", []string{"eigenvalues", "eig"}},
	{MethodDiagonalize, "Diagonalization (A = P·D·P⁻¹) with verification", []string{"diagonalization", "diag"}},
}

// String returns the canonical name.
func (m Method) String() string { return string(m) }

// Title returns a one-line human description.
func (m Method) Title() string {
	for _, c := range catalogue {
		if c.method == m {
			return c.title
		}
	}

	return string(m)
}

// Aliases returns the alternative spellings accepted by ParseMethod.
func (m Method) Aliases() []string {
	for _, c := range catalogue {
		if c.method == m {
			return append([]string(nil), c.aliases...)
		}
	}

	return nil
}

// Valid reports whether m is one of the six supported methods.
func (m Method) Valid() bool {
	for _, c := range catalogue {
		if c.method == m {
			return true
		}
	}

	return false
}

// Methods lists the supported methods in presentation order.
func Methods() []Method {
	out := make([]Method, len(catalogue))
	for i, c := range catalogue {
		out[i] = c.method
	}

	return out
}

// ParseMethod resolves a canonical name or alias, case-insensitively.
func ParseMethod(s string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, c := range catalogue {
		if string(c.method) == key {
			return c.method, nil
		}
		for _, a := range c.aliases {
			if a == key {
				return c.method, nil
			}
		}
	}

	return "", fmt.Errorf("ParseMethod %q: %w", s, ErrUnknownMethod)
}
