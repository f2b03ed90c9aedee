package sample

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cwbudde/algo-kira/curve"
)

// Policy decides what happens when two spectra that should share a grid
// are not close point for point.
type Policy int

const (
	// Lenient logs a warning and continues with pointwise alignment.
	Lenient Policy = iota
	// Strict fails with ErrSpectrumMismatch.
	Strict
)

func (p Policy) String() string {
	switch p {
	case Lenient:
		return "lenient"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps "lenient" or "strict" (case-insensitive) to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return Lenient, nil
	case "strict":
		return Strict, nil
	}
	return Lenient, fmt.Errorf("sample: unknown policy %q", s)
}

// Config holds the grid-check settings of nanoparticle operations.
type Config struct {
	Policy    Policy
	Tolerance curve.Tolerance
	Logger    zerolog.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a lenient policy with default tolerances that logs
// through the global zerolog logger.
func DefaultConfig() Config {
	return Config{
		Policy:    Lenient,
		Tolerance: curve.DefaultTolerance(),
		Logger:    log.Logger,
	}
}

// WithPolicy sets the mismatch policy.
func WithPolicy(p Policy) Option {
	return func(cfg *Config) {
		cfg.Policy = p
	}
}

// WithTolerance sets the grid comparison tolerance. Negative components
// are ignored.
func WithTolerance(tol curve.Tolerance) Option {
	return func(cfg *Config) {
		if tol.Rel >= 0 {
			cfg.Tolerance.Rel = tol.Rel
		}
		if tol.Abs >= 0 {
			cfg.Tolerance.Abs = tol.Abs
		}
	}
}

// WithLogger sets the logger used for mismatch warnings.
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = l
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
