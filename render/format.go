// SPDX-License-Identifier: MIT

package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/katalvlaran/lvdecomp/eigen"
	"github.com/katalvlaran/lvdecomp/matrix"
)

// Places is the number of decimals every number is rounded to.
const Places = 6

// NotAvailable stands in for a matrix that could not be produced.
const NotAvailable = "N/A"

// FormatNumber rounds x to Places decimals (half away from zero) and trims
// trailing zeros and a dangling dot: 2.50000 → "2.5", 3.0 → "3", -0 → "0".
func FormatNumber(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}

	return decimal.NewFromFloat(x).Round(Places).String()
}

// FormatValue renders an eigenvalue as "a", "a + bi" or "a - bi". A complex
// value whose imaginary part rounds to zero prints as real.
func FormatValue(v eigen.Value) string {
	re := FormatNumber(v.Re())
	if v.IsReal() {
		return re
	}
	im := FormatNumber(math.Abs(v.Im()))
	if im == "0" {
		return re
	}
	if v.Im() < 0 {
		return re + " - " + im + "i"
	}

	return re + " + " + im + "i"
}

// FormatMatrix renders rows on separate lines with tab-separated columns.
// A nil matrix renders as NotAvailable.
func FormatMatrix(m matrix.Matrix) string {
	if m == nil {
		return NotAvailable
	}
	rows, err := matrix.Rows2D(m)
	if err != nil {
		return NotAvailable
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, v := range row {
			if j > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(FormatNumber(v))
		}
	}

	return b.String()
}

// FormatValues renders eigenvalues one per line.
func FormatValues(vs []eigen.Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = FormatValue(v)
	}

	return strings.Join(parts, "\n")
}

// FormatComplexMatrix renders re + i·im entry by entry; a nil im falls
// back to FormatMatrix(re).
func FormatComplexMatrix(re, im matrix.Matrix) string {
	if im == nil {
		return FormatMatrix(re)
	}
	if re == nil {
		return NotAvailable
	}
	r, err := matrix.Rows2D(re)
	if err != nil {
		return NotAvailable
	}
	c, err := matrix.Rows2D(im)
	if err != nil || len(c) != len(r) {
		return NotAvailable
	}

	var b strings.Builder
	for i := range r {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j := range r[i] {
			if j > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(FormatValue(eigen.Complex(r[i][j], c[i][j])))
		}
	}

	return b.String()
}
