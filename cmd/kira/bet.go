package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-kira/measure/bet"
)

func newBetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bet SURFACE SURFACE_ERR DENSITY",
		Short: "Estimate particle radius from BET surface area",
		Long: `Estimate the sphere-equivalent radius and diameter of a powder from
its BET specific surface area (m²/g), the ± error of that value and the
material density (g/cm³).`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var vals [3]float64
			for i, arg := range args {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				vals[i] = v
			}

			est, err := bet.Radius(vals[0], vals[1], vals[2])
			if err != nil {
				return err
			}
			a.log.Debug().Float64("surface", vals[0]).Float64("density", vals[2]).Msg("bet estimate")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "radius = %s\n", est)
			fmt.Fprintf(out, "diameter = %.2f ± %.2f nm\n", est.Diameter(), est.DiameterErr())
			return nil
		},
	}
}
