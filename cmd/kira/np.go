package main

import (
	"errors"
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-kira/export"
	"github.com/cwbudde/algo-kira/plotting"
	"github.com/cwbudde/algo-kira/sample"
	"github.com/cwbudde/algo-kira/spectra"
)

func newNPCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "np",
		Short: "Nanoparticle folders: summary, rescale, plot and export",
		Long: `Commands on nanoparticle folders. A folder holds the repeat laser
scans of one sample and a metadata.yaml whose reference key names a sibling
folder with the control scans.`,
	}
	cmd.AddCommand(
		newNPSummaryCmd(a),
		newNPRescaleCmd(a),
		newNPPlotCmd(a),
		newNPExportCmd(a),
	)
	return cmd
}

// bounds are the inclusive wavelength limits shared by the np commands.
type bounds struct {
	low, high float64
}

func (b *bounds) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&b.low, "low", 0, "lower wavelength bound in nm (inclusive)")
	cmd.Flags().Float64Var(&b.high, "high", math.Inf(1), "upper wavelength bound in nm (inclusive)")
}

func (b *bounds) validate() error {
	if b.low > b.high {
		return fmt.Errorf("--low %g is above --high %g", b.low, b.high)
	}
	return nil
}

func (a *app) loadNanoparticle(dir string) (*sample.Nanoparticle, error) {
	opts, err := a.sampleOptions()
	if err != nil {
		return nil, err
	}
	np, err := sample.FromFolder(dir, opts...)
	if err != nil {
		return nil, err
	}
	a.log.Debug().Str("identity", np.Identity).Int("points", np.Meas.Len()).Msg("nanoparticle loaded")
	return np, nil
}

func newNPSummaryCmd(a *app) *cobra.Command {
	var b bounds

	cmd := &cobra.Command{
		Use:   "summary DIR...",
		Short: "Print metadata and band AUC of nanoparticle folders",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := b.validate(); err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "IDENTITY\tDOPANT\tCONC (%)\tANNEALING\tD_XRD (nm)\tAUC\tREF AUC")
			for _, dir := range args {
				np, err := a.loadNanoparticle(dir)
				if err != nil {
					return err
				}
				auc, sigma, err := np.Meas.AUC(b.low, b.high)
				if err != nil {
					return fmt.Errorf("%s: %w", np.Identity, err)
				}
				refAUC, refSigma, err := np.Ref.AUC(b.low, b.high)
				if err != nil {
					return fmt.Errorf("%s reference: %w", np.Identity, err)
				}
				fmt.Fprintf(tw, "%s\t%s\t%g\t%s\t%g\t%.4g ± %.2g\t%.4g ± %.2g\n",
					np.Identity, np.Dopant, np.DopantConcentration, np.Annealing, np.DXRD,
					auc, sigma, refAUC, refSigma)
			}
			return tw.Flush()
		},
	}
	b.register(cmd)
	return cmd
}

func newNPRescaleCmd(a *app) *cobra.Command {
	var (
		b       bounds
		refDir  string
		xlsx    string
		factors string
	)

	cmd := &cobra.Command{
		Use:   "rescale DIR --ref REFDIR",
		Short: "Rescale a nanoparticle to a new control reference",
		Long: `Crop the nanoparticle in DIR and the averaged scans of REFDIR to
[--low, --high], then multiply the measurement and its reference by
new_reference / old_reference point by point. All three must have the same
number of points after cropping.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := b.validate(); err != nil {
				return err
			}
			np, err := a.loadNanoparticle(args[0])
			if err != nil {
				return err
			}
			newRef, err := spectra.MeanFromFolder(refDir)
			if err != nil {
				return fmt.Errorf("new reference: %w", err)
			}

			fs, err := np.CropRescaleToNewRef(newRef, b.low, b.high)
			if err != nil {
				return err
			}
			if len(fs) == 0 {
				return errors.New("no points left after cropping")
			}

			auc, sigma, err := np.Meas.AUC(b.low, b.high)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s rescaled over %d points, factors in [%.4g, %.4g]\n",
				np.Identity, len(fs), floats.Min(fs), floats.Max(fs))
			fmt.Fprintf(out, "auc = %.4g ± %.2g\n", auc, sigma)

			if xlsx != "" {
				if err := export.NanoparticleXLSX(xlsx, np); err != nil {
					return err
				}
				a.log.Info().Str("path", xlsx).Msg("rescaled measurement written")
			}
			if factors != "" {
				if err := export.FactorsXLSX(factors, np.Identity, np.Ref.Spectrum, fs); err != nil {
					return err
				}
				a.log.Info().Str("path", factors).Msg("factors written")
			}
			return nil
		},
	}
	b.register(cmd)
	cmd.Flags().StringVar(&refDir, "ref", "", "folder with the new reference scans")
	cmd.Flags().StringVar(&xlsx, "xlsx", "", "write the rescaled measurement and reference to this workbook")
	cmd.Flags().StringVar(&factors, "factors", "", "write the rescale factors to this workbook")
	_ = cmd.MarkFlagRequired("ref")
	return cmd
}

func newNPPlotCmd(a *app) *cobra.Command {
	var (
		b       bounds
		output  string
		withRef bool
	)

	cmd := &cobra.Command{
		Use:   "plot DIR -o OUT",
		Short: "Plot a nanoparticle measurement with error bars",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := b.validate(); err != nil {
				return err
			}
			np, err := a.loadNanoparticle(args[0])
			if err != nil {
				return err
			}
			if err := np.Crop(b.low, b.high); err != nil {
				return err
			}

			p, err := plotting.Nanoparticle(np, withRef)
			if err != nil {
				return err
			}
			w, h := a.plotSize()
			if err := plotting.Save(p, output, w, h); err != nil {
				return err
			}
			a.log.Info().Str("path", output).Str("identity", np.Identity).Msg("plot written")
			return nil
		},
	}
	b.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output image (png, svg, pdf)")
	cmd.Flags().BoolVar(&withRef, "with-ref", false, "also plot the reference")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newNPExportCmd(a *app) *cobra.Command {
	var (
		b      bounds
		output string
	)

	cmd := &cobra.Command{
		Use:   "export DIR -o OUT.xlsx",
		Short: "Write a nanoparticle measurement and reference to XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := b.validate(); err != nil {
				return err
			}
			np, err := a.loadNanoparticle(args[0])
			if err != nil {
				return err
			}
			if err := np.Crop(b.low, b.high); err != nil {
				return err
			}
			if err := export.NanoparticleXLSX(output, np); err != nil {
				return err
			}
			a.log.Info().Str("path", output).Str("identity", np.Identity).Msg("workbook written")
			return nil
		},
	}
	b.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output workbook")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
