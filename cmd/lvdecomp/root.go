// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"net"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/katalvlaran/lvdecomp/config"
)

const version = "v0.3.0"

// app carries what every subcommand needs once the persistent flags have
// been applied.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	logLevel   string

	cfg *config.Config
	log zerolog.Logger

	// listening, when set, receives the address serve bound to.
	listening func(net.Addr)
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	return newApp(in, out, errOut).rootCmd()
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{in: in, out: out, errOut: errOut, log: zerolog.Nop()}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lvdecomp",
		Short: "Dense matrix decompositions: LU, Cholesky, Doolittle, Crout, eigen, diagonalization",
		Long: `lvdecomp factors small dense matrices and prints the factors together
with a reconstruction check. Cholesky input that is not symmetric or not
positive definite is preconditioned first and the report says how.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&a.logLevel, "log-level", "", "log level override (debug|info|warn|error)")

	root.AddCommand(
		newRunCmd(a),
		newMethodsCmd(a),
		newExamplesCmd(a),
		newServeCmd(a),
	)

	return root
}

// setup loads the configuration and builds the logger.
func (a *app) setup() error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	a.log = newLogger(a.errOut, cfg)

	return nil
}

func newLogger(w io.Writer, cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	console := cfg.Log.Format == "console" ||
		(cfg.Log.Format != "json" && isTerminal(w))
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	return zerolog.New(w).Level(cfg.Level()).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}
