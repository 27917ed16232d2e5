// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvdecomp/decompose"
	"github.com/katalvlaran/lvdecomp/eigen"
	"github.com/katalvlaran/lvdecomp/precond"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the process configuration of the CLI and the HTTP server.
type Config struct {
	Numeric NumericConfig `yaml:"numeric"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
	Cache   CacheConfig   `yaml:"cache"`
}

// NumericConfig holds the decomposition policy.
type NumericConfig struct {
	Tolerance         float64 `yaml:"tolerance"`          // singular-pivot threshold
	Margin            float64 `yaml:"margin"`             // positive-definite repair margin
	SymmetryTolerance float64 `yaml:"symmetry_tolerance"` // symmetrize when |a_ij - a_ji| exceeds it
	StrictLU          bool    `yaml:"strict_lu"`
	Solver            string  `yaml:"solver"` // auto | jacobi | general
	JacobiTolerance   float64 `yaml:"jacobi_tolerance"`
	MaxRotations      int     `yaml:"max_rotations"` // 0 derives the cap from n
}

// LogConfig selects the zerolog level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // auto | console | json
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	RPS          float64       `yaml:"rps"` // 0 disables rate limiting
	Burst        int           `yaml:"burst"`
	MaxDimension int           `yaml:"max_dimension"` // largest accepted n
}

// CacheConfig configures the redis result cache; an empty Addr disables it.
type CacheConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
	Prefix   string        `yaml:"prefix"`
	Timeout  time.Duration `yaml:"timeout"`
	Breaker  BreakerConfig `yaml:"breaker"`
}

// BreakerConfig mirrors the gobreaker settings the cache uses.
type BreakerConfig struct {
	ConsecutiveFailures uint32        `yaml:"consecutive_failures"`
	Interval            time.Duration `yaml:"interval"`
	OpenTimeout         time.Duration `yaml:"open_timeout"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Numeric: NumericConfig{
			Tolerance:         decompose.DefaultTolerance,
			Margin:            precond.DefaultMargin,
			SymmetryTolerance: precond.DefaultTolerance,
			StrictLU:          decompose.DefaultStrictLU,
			Solver:            string(eigen.DefaultSolverKind),
			JacobiTolerance:   eigen.DefaultJacobiTolerance,
			MaxRotations:      eigen.DefaultMaxRotations,
		},
		Log: LogConfig{Level: "info", Format: "auto"},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			RPS:          20,
			Burst:        40,
			MaxDimension: 64,
		},
		Cache: CacheConfig{
			TTL:     10 * time.Minute,
			Prefix:  "lvdecomp:",
			Timeout: 200 * time.Millisecond,
			Breaker: BreakerConfig{
				ConsecutiveFailures: 3,
				Interval:            60 * time.Second,
				OpenTimeout:         30 * time.Second,
			},
		},
	}
}

// Load reads a YAML file on top of Default and validates the result, so a
// file only needs the keys it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	n := c.Numeric
	if !positive(n.Tolerance) {
		return invalid("numeric.tolerance must be finite and > 0, got %v", n.Tolerance)
	}
	if !positive(n.Margin) {
		return invalid("numeric.margin must be finite and > 0, got %v", n.Margin)
	}
	if math.IsNaN(n.SymmetryTolerance) || math.IsInf(n.SymmetryTolerance, 0) || n.SymmetryTolerance < 0 {
		return invalid("numeric.symmetry_tolerance must be finite and >= 0, got %v", n.SymmetryTolerance)
	}
	if _, err := eigen.ParseSolverKind(n.Solver); err != nil {
		return invalid("numeric.solver: %v", err)
	}
	if !positive(n.JacobiTolerance) {
		return invalid("numeric.jacobi_tolerance must be finite and > 0, got %v", n.JacobiTolerance)
	}
	if n.MaxRotations < 0 {
		return invalid("numeric.max_rotations must be >= 0, got %d", n.MaxRotations)
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level: %v", err)
	}
	switch c.Log.Format {
	case "", "auto", "console", "json":
	default:
		return invalid("log.format must be auto, console or json, got %q", c.Log.Format)
	}

	s := c.Server
	if s.RPS < 0 || s.Burst < 0 {
		return invalid("server.rps and server.burst must be >= 0")
	}
	if s.RPS > 0 && s.Burst == 0 {
		return invalid("server.burst must be > 0 when server.rps is set")
	}
	if s.MaxDimension < 1 {
		return invalid("server.max_dimension must be >= 1, got %d", s.MaxDimension)
	}

	if c.Cache.Addr != "" && c.Cache.TTL <= 0 {
		return invalid("cache.ttl must be > 0 when cache.addr is set")
	}

	return nil
}

// EngineOptions translates the numeric policy into decompose options. The
// configuration must have passed Validate; the With* constructors panic on
// the values Validate rejects.
func (c *Config) EngineOptions(log zerolog.Logger) []decompose.Option {
	n := c.Numeric
	kind, _ := eigen.ParseSolverKind(n.Solver)
	solver := eigen.New(
		eigen.WithSolverKind(kind),
		eigen.WithJacobiTolerance(n.JacobiTolerance),
		eigen.WithSymmetryTolerance(n.SymmetryTolerance),
		eigen.WithMaxRotations(n.MaxRotations),
	)

	opts := []decompose.Option{
		decompose.WithTolerance(n.Tolerance),
		decompose.WithMargin(n.Margin),
		decompose.WithSymmetryTolerance(n.SymmetryTolerance),
		decompose.WithSolver(solver),
		decompose.WithLogger(log),
	}
	if n.StrictLU {
		opts = append(opts, decompose.WithStrictLU())
	}

	return opts
}

// Engine builds a decompose.Engine from the numeric policy.
func (c *Config) Engine(log zerolog.Logger) *decompose.Engine {
	return decompose.New(c.EngineOptions(log)...)
}

// Level returns the configured log level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil || c.Log.Level == "" {
		return zerolog.InfoLevel
	}

	return lvl
}

func positive(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && x > 0
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
