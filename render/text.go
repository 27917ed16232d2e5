// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/katalvlaran/lvdecomp/decompose"
)

// ErrEmptyResult is returned when there is nothing to render.
var ErrEmptyResult = errors.New("render: empty result")

// TextOption configures Text.
type TextOption func(*textOptions)

type textOptions struct {
	color    bool
	residual bool
}

// WithColor toggles ANSI colors (bold titles, yellow warnings).
func WithColor(on bool) TextOption { return func(o *textOptions) { o.color = on } }

// WithResidual appends the max-abs reconstruction error.
func WithResidual(on bool) TextOption { return func(o *textOptions) { o.residual = on } }

// Text writes the human-readable report of res: the input, any warnings,
// the processed matrix when preconditioning changed it, the factors and
// the verification product.
func Text(w io.Writer, res *decompose.Result, opts ...TextOption) error {
	if res == nil || res.Factors == nil {
		return ErrEmptyResult
	}
	o := textOptions{residual: true}
	for _, opt := range opts {
		opt(&o)
	}
	title := color.New(color.Bold)
	warn := color.New(color.FgYellow)
	if o.color {
		title.EnableColor()
		warn.EnableColor()
	} else {
		title.DisableColor()
		warn.DisableColor()
	}

	p := &printer{w: w}
	p.printf("%s\n\n", title.Sprint(res.Method.Title()))
	p.block(title.Sprint("Input matrix:"), FormatMatrix(res.Input))
	for _, wr := range res.Warnings {
		p.printf("%s %s\n\n", warn.Sprint("Warning:"), wr.Message)
	}
	if res.Processed != nil {
		p.block(title.Sprint("Processed matrix:"), FormatMatrix(res.Processed))
	}
	if vs := values(res); len(vs) > 0 {
		p.block(title.Sprint("Eigenvalues:"), FormatValues(vs))
	}
	for _, s := range sections(res) {
		p.block(title.Sprint(s.label+":"), FormatComplexMatrix(s.re, s.im))
	}
	if o.residual {
		if r, err := res.Residual(); err == nil {
			p.printf("Max reconstruction error: %s\n", FormatResidual(r))
		}
	}

	return p.err
}

// FormatResidual prints residuals in scientific notation, which keeps
// 1e-16-sized values readable.
func FormatResidual(r float64) string { return fmt.Sprintf("%.3e", r) }

// printer remembers the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) block(title, body string) {
	p.printf("%s\n%s\n\n", title, body)
}

// ErrorText renders err the way the report shows failures.
func ErrorText(err error) string { return "Error: " + err.Error() }
