// SPDX-License-Identifier: MIT

package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvdecomp/decompose"
	"github.com/katalvlaran/lvdecomp/eigen"
	"github.com/katalvlaran/lvdecomp/matrix"
)

// section is one titled matrix of a rendered result.
type section struct {
	name  string
	label string
	re    matrix.Matrix
	im    matrix.Matrix
}

// sections lists the factor matrices of res in display order, ending with
// the verification product when it can be formed.
func sections(res *decompose.Result) []section {
	switch f := res.Factors.(type) {
	case *decompose.LUFactors:
		prod, _ := f.Product()
		return []section{
			{"P", "P (permutation matrix)", f.P, nil},
			{"L", "L (lower triangular)", f.L, nil},
			{"U", "U (upper triangular)", f.U, nil},
			{"LU", "Verification L × U", prod, nil},
		}
	case *decompose.FactorPair:
		prod, _ := f.Product()
		if res.Method == decompose.MethodCholesky {
			return []section{
				{"L", "L (lower triangular)", f.Lower, nil},
				{"LT", "Lᵀ (transpose of L)", f.Upper, nil},
				{"LLT", "Verification L × Lᵀ", prod, nil},
			}
		}
		return []section{
			{"L", "L (lower triangular)", f.Lower, nil},
			{"U", "U (upper triangular)", f.Upper, nil},
			{"LU", "Verification L × U", prod, nil},
		}
	case *decompose.EigenFactors:
		return []section{{"vectors", "Eigenvectors", f.Vectors, f.Imag}}
	case *decompose.Diagonalization:
		out := []section{
			{"P", "P (eigenvector matrix)", f.P, nil},
			{"PInv", "P⁻¹ (inverse of P)", f.PInv, nil},
			{"D", "D (diagonal eigenvalue matrix)", f.D, nil},
		}
		if f.Reconstruction != nil {
			out = append(out, section{"PDPInv", "Verification P × D × P⁻¹", f.Reconstruction, nil})
		}
		return out
	default:
		return nil
	}
}

// values returns the eigenvalues carried by res, if any.
func values(res *decompose.Result) []eigen.Value {
	switch f := res.Factors.(type) {
	case *decompose.EigenFactors:
		return f.Values
	case *decompose.Diagonalization:
		return f.Values
	default:
		return nil
	}
}

// Document is the structured, encoder-friendly form of a Result.
type Document struct {
	Method       string        `json:"method" yaml:"method"`
	Title        string        `json:"title" yaml:"title"`
	Input        [][]float64   `json:"input" yaml:"input"`
	Processed    [][]float64   `json:"processed,omitempty" yaml:"processed,omitempty"`
	Warnings     []WarningDoc  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Precondition *PrecondDoc   `json:"precondition,omitempty" yaml:"precondition,omitempty"`
	Eigenvalues  []ValueDoc    `json:"eigenvalues,omitempty" yaml:"eigenvalues,omitempty"`
	Pivots       []int         `json:"pivots,omitempty" yaml:"pivots,omitempty"`
	Matrices     []NamedMatrix `json:"matrices" yaml:"matrices"`
	Residual     *float64      `json:"residual,omitempty" yaml:"residual,omitempty"`
}

// WarningDoc mirrors decompose.Warning.
type WarningDoc struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// PrecondDoc summarizes the Cholesky preconditioning.
type PrecondDoc struct {
	Symmetrized   bool    `json:"symmetrized" yaml:"symmetrized"`
	Repaired      bool    `json:"repaired" yaml:"repaired"`
	Shift         float64 `json:"shift,omitempty" yaml:"shift,omitempty"`
	MinEigenvalue float64 `json:"min_eigenvalue,omitempty" yaml:"min_eigenvalue,omitempty"`
	Source        string  `json:"source,omitempty" yaml:"source,omitempty"`
}

// ValueDoc is an eigenvalue with its display text.
type ValueDoc struct {
	Kind string  `json:"kind" yaml:"kind"`
	Re   float64 `json:"re" yaml:"re"`
	Im   float64 `json:"im,omitempty" yaml:"im,omitempty"`
	Text string  `json:"text" yaml:"text"`
}

// NamedMatrix is one factor; Imag is set for complex eigenvectors only.
type NamedMatrix struct {
	Name  string      `json:"name" yaml:"name"`
	Label string      `json:"label" yaml:"label"`
	Rows  [][]float64 `json:"rows" yaml:"rows"`
	Imag  [][]float64 `json:"imag,omitempty" yaml:"imag,omitempty"`
}

// NewDocument converts res into a Document.
func NewDocument(res *decompose.Result) (*Document, error) {
	if res == nil || res.Factors == nil {
		return nil, fmt.Errorf("NewDocument: %w", ErrEmptyResult)
	}
	in, err := matrix.Rows2D(res.Input)
	if err != nil {
		return nil, fmt.Errorf("NewDocument: %w", err)
	}
	doc := &Document{
		Method: res.Method.String(),
		Title:  res.Method.Title(),
		Input:  in,
	}
	if res.Processed != nil {
		if doc.Processed, err = matrix.Rows2D(res.Processed); err != nil {
			return nil, fmt.Errorf("NewDocument: %w", err)
		}
	}
	for _, w := range res.Warnings {
		doc.Warnings = append(doc.Warnings, WarningDoc{Code: string(w.Code), Message: w.Message})
	}
	if p := res.Precondition; p != nil {
		pd := &PrecondDoc{Symmetrized: p.Symmetrized}
		if r := p.Repair; r != nil && r.Applied {
			pd.Repaired = true
			pd.Shift = r.Shift
			pd.MinEigenvalue = r.MinEigen.Value
			pd.Source = r.MinEigen.Source.String()
		}
		doc.Precondition = pd
	}
	for _, v := range values(res) {
		doc.Eigenvalues = append(doc.Eigenvalues, ValueDoc{
			Kind: v.Kind().String(), Re: v.Re(), Im: v.Im(), Text: FormatValue(v),
		})
	}
	if lu, ok := res.Factors.(*decompose.LUFactors); ok {
		doc.Pivots = append([]int(nil), lu.Pivots...)
	}
	for _, s := range sections(res) {
		if s.re == nil {
			continue
		}
		nm := NamedMatrix{Name: s.name, Label: s.label}
		if nm.Rows, err = matrix.Rows2D(s.re); err != nil {
			return nil, fmt.Errorf("NewDocument %s: %w", s.name, err)
		}
		if s.im != nil {
			if nm.Imag, err = matrix.Rows2D(s.im); err != nil {
				return nil, fmt.Errorf("NewDocument %s: %w", s.name, err)
			}
		}
		doc.Matrices = append(doc.Matrices, nm)
	}
	if r, err := res.Residual(); err == nil {
		doc.Residual = &r
	}

	return doc, nil
}

// WriteJSON encodes doc as indented JSON.
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}

// WriteYAML encodes doc as YAML.
func WriteYAML(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}

	return enc.Close()
}
