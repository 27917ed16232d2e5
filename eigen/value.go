// SPDX-License-Identifier: MIT

package eigen

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	// KindReal marks a purely real eigenvalue.
	KindReal Kind = iota
	// KindComplex marks an eigenvalue with a non-zero imaginary part.
	KindComplex
)

// String returns "real" or "complex".
func (k Kind) String() string {
	if k == KindComplex {
		return "complex"
	}

	return "real"
}

// Value is a tagged eigenvalue: either Real(x) or Complex(re, im).
// The zero Value is Real(0).
type Value struct {
	kind Kind
	re   float64
	im   float64
}

// Real builds a real eigenvalue.
func Real(x float64) Value { return Value{kind: KindReal, re: x} }

// Complex builds a complex eigenvalue. A zero imaginary part still yields
// KindComplex; use FromComplex128 to normalize library output.
func Complex(re, im float64) Value { return Value{kind: KindComplex, re: re, im: im} }

// FromComplex128 returns Real(real(z)) when imag(z) == 0 and Complex otherwise.
func FromComplex128(z complex128) Value {
	if imag(z) == 0 {
		return Real(real(z))
	}

	return Complex(real(z), imag(z))
}

// Kind reports the variant.
func (v Value) Kind() Kind { return v.kind }

// IsReal reports whether v is the Real variant.
func (v Value) IsReal() bool { return v.kind == KindReal }

// Re returns the real part.
func (v Value) Re() float64 { return v.re }

// Im returns the imaginary part (always 0 for Real).
func (v Value) Im() float64 { return v.im }

// Complex128 returns v as a complex128.
func (v Value) Complex128() complex128 { return complex(v.re, v.im) }

// Abs returns |v|.
func (v Value) Abs() float64 {
	if v.kind == KindReal {
		return math.Abs(v.re)
	}

	return cmplx.Abs(v.Complex128())
}

// String renders v with %g; Complex values use "a + bi" / "a - bi".
func (v Value) String() string {
	if v.kind == KindReal {
		return fmt.Sprintf("%g", v.re)
	}
	if v.im < 0 {
		return fmt.Sprintf("%g - %gi", v.re, -v.im)
	}

	return fmt.Sprintf("%g + %gi", v.re, v.im)
}
