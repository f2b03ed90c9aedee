package main

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-kira/internal/config"
	"github.com/cwbudde/algo-kira/sample"
)

// app carries the state shared by all subcommands once the root command
// has loaded its configuration.
type app struct {
	cfgPath  string
	logLevel string
	strict   bool

	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "kira",
		Short: "Spectra utilities for nanoparticle luminescence and FTIR data",
		Long: `kira reads FTIR absorbance files and laser-scan luminescence
spectra, averages repeats, integrates bands and rescales measurements to a
new control reference.

Configuration comes from defaults, ./kira.yaml (or --config) and KIRA_
environment variables, in increasing precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "config file (default ./kira.yaml)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&a.strict, "strict", false, "fail instead of warning when spectra grids differ")

	root.AddCommand(
		newBetCmd(a),
		newFTIRCmd(a),
		newNPCmd(a),
		newFitCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.strict {
		cfg.Grid.Policy = sample.Strict.String()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	lvl, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	log.Logger = a.log
	a.cfg = cfg

	a.log.Debug().
		Str("policy", cfg.Grid.Policy).
		Float64("rtol", cfg.Grid.RTol).
		Float64("atol", cfg.Grid.ATol).
		Msg("configuration loaded")
	return nil
}

func (a *app) sampleOptions() ([]sample.Option, error) {
	opts, err := a.cfg.SampleOptions()
	if err != nil {
		return nil, err
	}
	return append(opts, sample.WithLogger(a.log)), nil
}

func (a *app) plotSize() (w, h vg.Length) {
	return vg.Length(a.cfg.Plot.WidthIn) * vg.Inch, vg.Length(a.cfg.Plot.HeightIn) * vg.Inch
}
