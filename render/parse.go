// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvdecomp/matrix"
)

var (
	// ErrEmptyInput is returned for blank matrix text.
	ErrEmptyInput = errors.New("render: empty matrix input")

	// ErrNonNumeric is returned when an entry does not parse as a number.
	ErrNonNumeric = errors.New("render: non-numeric entry")
)

// ParseMatrix reads a matrix literal: one row per line, entries separated
// by whitespace. Blank lines are skipped.
//
// Errors: ErrEmptyInput; ErrNonNumeric (naming row, column and token);
// *matrix.ShapeError for ragged rows or NaN/±Inf entries.
func ParseMatrix(text string) (*matrix.Dense, error) {
	var rows [][]float64
	for lineNo, line := range strings.Split(strings.TrimSpace(text), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		for j, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("ParseMatrix: row %d, col %d (%q): %w", lineNo+1, j+1, f, ErrNonNumeric)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("ParseMatrix: %w", ErrEmptyInput)
	}

	return matrix.NewFromRows(rows)
}
