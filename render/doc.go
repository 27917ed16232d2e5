// SPDX-License-Identifier: MIT

// Package render is the presentation side of lvdecomp: it parses matrix
// text into a *matrix.Dense and turns a decompose.Result into a text report
// or a JSON/YAML Document. Numbers are rounded to six decimals with
// trailing zeros trimmed; complex values print as "a + bi".
package render
