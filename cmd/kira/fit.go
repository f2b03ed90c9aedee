package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-kira/curve"
	"github.com/cwbudde/algo-kira/measure/fit"
)

func newFitCmd(a *app) *cobra.Command {
	var b bounds

	cmd := &cobra.Command{
		Use:   "fit FILE",
		Short: "Fit a Gaussian band to a window of a laser scan",
		Long: `Crop a laser-scan file to [--low, --high] and fit a single
Gaussian over a constant baseline with Levenberg-Marquardt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := b.validate(); err != nil {
				return err
			}
			c, err := curve.ReadLaserScan(args[0])
			if err != nil {
				return err
			}
			c = c.Crop(b.low, b.high)

			guess, err := fit.Guess(c.X, c.Y)
			if err != nil {
				return err
			}
			a.log.Debug().
				Float64("center", guess.Center).
				Float64("sigma", guess.Sigma).
				Int("points", c.Len()).
				Msg("initial guess")

			p, err := fit.Gaussian(c.X, c.Y, guess)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "center = %.3f nm\n", p.Center)
			fmt.Fprintf(out, "fwhm = %.3f nm\n", p.FWHM())
			fmt.Fprintf(out, "amplitude = %.4g\n", p.Amplitude)
			fmt.Fprintf(out, "offset = %.4g\n", p.Offset)
			if isUnbounded(b) {
				a.log.Warn().Msg("fitting the whole scan, pass --low and --high to isolate one band")
			}
			return nil
		},
	}
	b.register(cmd)
	return cmd
}

func isUnbounded(b bounds) bool {
	return b.low <= 0 && math.IsInf(b.high, 1)
}
