// Package config loads the kira CLI settings from defaults, an optional
// YAML file and KIRA_ environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-kira/curve"
	"github.com/cwbudde/algo-kira/measure/peak"
	"github.com/cwbudde/algo-kira/sample"
)

// EnvPrefix prefixes every environment override, e.g. KIRA_GRID_POLICY.
const EnvPrefix = "KIRA"

// Config holds all CLI configuration.
type Config struct {
	Log  LogConfig
	Grid GridConfig
	Plot PlotConfig
	FTIR FTIRConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string
}

// GridConfig controls how spectra that should share a grid are compared.
type GridConfig struct {
	Policy string
	RTol   float64
	ATol   float64
}

// PlotConfig holds the figure size in inches.
type PlotConfig struct {
	WidthIn  float64
	HeightIn float64
}

// FTIRConfig holds the default ratio windows in cm⁻¹.
type FTIRConfig struct {
	TargetStart    float64
	TargetStop     float64
	ReferenceStart float64
	ReferenceStop  float64
}

var keys = []string{
	"log.level",
	"grid.policy",
	"grid.rtol",
	"grid.atol",
	"plot.width_in",
	"plot.height_in",
	"ftir.target_start",
	"ftir.target_stop",
	"ftir.reference_start",
	"ftir.reference_stop",
}

// Load reads the configuration. An empty path looks for kira.yaml in the
// working directory and ignores it when absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	tol := curve.DefaultTolerance()
	v.SetDefault("log.level", "info")
	v.SetDefault("grid.policy", sample.Lenient.String())
	v.SetDefault("grid.rtol", tol.Rel)
	v.SetDefault("grid.atol", tol.Abs)
	v.SetDefault("plot.width_in", 6.0)
	v.SetDefault("plot.height_in", 4.0)
	v.SetDefault("ftir.target_start", peak.CO3.Window.Start)
	v.SetDefault("ftir.target_stop", peak.CO3.Window.Stop)
	v.SetDefault("ftir.reference_start", peak.PO3.Window.Start)
	v.SetDefault("ftir.reference_stop", peak.PO3.Window.Stop)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	} else {
		v.SetConfigName("kira")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", k, err)
		}
	}

	cfg := &Config{
		Log: LogConfig{Level: v.GetString("log.level")},
		Grid: GridConfig{
			Policy: v.GetString("grid.policy"),
			RTol:   v.GetFloat64("grid.rtol"),
			ATol:   v.GetFloat64("grid.atol"),
		},
		Plot: PlotConfig{
			WidthIn:  v.GetFloat64("plot.width_in"),
			HeightIn: v.GetFloat64("plot.height_in"),
		},
		FTIR: FTIRConfig{
			TargetStart:    v.GetFloat64("ftir.target_start"),
			TargetStop:     v.GetFloat64("ftir.target_stop"),
			ReferenceStart: v.GetFloat64("ftir.reference_start"),
			ReferenceStop:  v.GetFloat64("ftir.reference_stop"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be caught by type conversion.
func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if _, err := sample.ParsePolicy(c.Grid.Policy); err != nil {
		return fmt.Errorf("config: grid.policy: %w", err)
	}
	if c.Grid.RTol < 0 || c.Grid.ATol < 0 {
		return fmt.Errorf("config: grid tolerances must not be negative (rtol %g, atol %g)", c.Grid.RTol, c.Grid.ATol)
	}
	if c.Plot.WidthIn <= 0 || c.Plot.HeightIn <= 0 {
		return fmt.Errorf("config: plot size must be positive (%gx%g in)", c.Plot.WidthIn, c.Plot.HeightIn)
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("config: log.level: %w", err)
	}
	return lvl, nil
}

// SampleOptions turns the grid settings into nanoparticle options.
func (c *Config) SampleOptions() ([]sample.Option, error) {
	policy, err := sample.ParsePolicy(c.Grid.Policy)
	if err != nil {
		return nil, err
	}
	return []sample.Option{
		sample.WithPolicy(policy),
		sample.WithTolerance(curve.Tolerance{Rel: c.Grid.RTol, Abs: c.Grid.ATol}),
	}, nil
}

// Windows returns the configured FTIR ratio windows.
func (c *Config) Windows() (target, reference peak.Window) {
	return peak.Window{Start: c.FTIR.TargetStart, Stop: c.FTIR.TargetStop},
		peak.Window{Start: c.FTIR.ReferenceStart, Stop: c.FTIR.ReferenceStop}
}
