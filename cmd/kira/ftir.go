package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-kira/curve"
	"github.com/cwbudde/algo-kira/measure/peak"
	"github.com/cwbudde/algo-kira/plotting"
)

func newFTIRCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ftir",
		Short: "FTIR absorbance band ratios and overlays",
	}
	cmd.AddCommand(newFTIRRatioCmd(a), newFTIRPlotCmd(a))
	return cmd
}

// ratioFlags selects the pair of integration windows.
type ratioFlags struct {
	preset    string
	target    []float64
	reference []float64
}

func (f *ratioFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.preset, "preset", "", "named band pair ("+strings.Join(peak.PresetNames(), ", ")+")")
	cmd.Flags().Float64SliceVar(&f.target, "target", nil, "target window START,STOP in cm⁻¹")
	cmd.Flags().Float64SliceVar(&f.reference, "reference", nil, "reference window START,STOP in cm⁻¹")
}

// resolve returns the windows and a label for the ratio. An explicit preset
// wins over explicit windows, which win over the configured windows.
func (f *ratioFlags) resolve(a *app) (target, reference peak.Window, label string, err error) {
	if f.preset != "" {
		if len(f.target) > 0 || len(f.reference) > 0 {
			return target, reference, "", errors.New("--preset cannot be combined with --target or --reference")
		}
		p, err := peak.LookupPreset(f.preset)
		if err != nil {
			return target, reference, "", err
		}
		return p.Target.Window, p.Reference.Window, p.Label(), nil
	}

	target, reference = a.cfg.Windows()
	label = "ratio"
	if target == peak.CarbonatePhosphate.Target.Window && reference == peak.CarbonatePhosphate.Reference.Window {
		label = peak.CarbonatePhosphate.Label()
	}

	if len(f.target) > 0 || len(f.reference) > 0 {
		if target, err = window("target", f.target, target); err != nil {
			return target, reference, "", err
		}
		if reference, err = window("reference", f.reference, reference); err != nil {
			return target, reference, "", err
		}
		label = fmt.Sprintf("%s/%s", target, reference)
	}
	return target, reference, label, nil
}

func window(name string, vals []float64, def peak.Window) (peak.Window, error) {
	switch len(vals) {
	case 0:
		return def, nil
	case 2:
		if vals[0] >= vals[1] {
			return peak.Window{}, fmt.Errorf("--%s: start %g must be below stop %g", name, vals[0], vals[1])
		}
		return peak.Window{Start: vals[0], Stop: vals[1]}, nil
	}
	return peak.Window{}, fmt.Errorf("--%s wants START,STOP, got %d values", name, len(vals))
}

func newFTIRRatioCmd(a *app) *cobra.Command {
	var (
		files []string
		rf    ratioFlags
	)

	cmd := &cobra.Command{
		Use:   "ratio -f FILE [-f FILE...]",
		Short: "Print the band area ratio of FTIR files",
		Long: `Integrate two absorbance bands of each FTIR file (index-based
trapezoid over the points strictly inside each window) and print the
target/reference ratio. Defaults to the configured CO3/PO3 windows.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(files) == 0 {
				return errors.New("at least one -f FILE is required")
			}
			target, reference, label, err := rf.resolve(a)
			if err != nil {
				return err
			}

			for _, path := range files {
				c, err := curve.ReadASP(path)
				if err != nil {
					return err
				}
				r, err := peak.Ratio(c.X, c.Y, target, reference)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s ratio of %s = %.4f\n", label, path, r)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&files, "file", "f", nil, "FTIR file in the count/start/end format")
	rf.register(cmd)
	return cmd
}

func newFTIRPlotCmd(a *app) *cobra.Command {
	var (
		output string
		title  string
		rf     ratioFlags
	)

	cmd := &cobra.Command{
		Use:   "plot -o OUT FILE[:LABEL]...",
		Short: "Overlay FTIR files on the standard absorbance axes",
		Long: `Overlay FTIR files on 400-3000 cm⁻¹ / 0-1 absorbance axes and
print the band ratio of each file. A label can be appended after a colon;
otherwise the file name is used.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, reference, label, err := rf.resolve(a)
			if err != nil {
				return err
			}

			series := make([]plotting.Series, 0, len(args))
			for _, arg := range args {
				path, name := splitLabel(arg)
				c, err := curve.ReadASP(path)
				if err != nil {
					return err
				}
				r, err := peak.Ratio(c.X, c.Y, target, reference)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s ratio of %s = %.4f\n", label, name, r)
				series = append(series, plotting.Series{Label: name, Curve: c})
			}

			p, err := plotting.FTIR(title, series...)
			if err != nil {
				return err
			}
			w, h := a.plotSize()
			if err := plotting.Save(p, output, w, h); err != nil {
				return err
			}
			a.log.Info().Str("path", output).Int("series", len(series)).Msg("plot written")
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output image (png, svg, pdf)")
	cmd.Flags().StringVar(&title, "title", plotting.FTIRTitle, "plot title")
	_ = cmd.MarkFlagRequired("output")
	rf.register(cmd)
	return cmd
}

// splitLabel splits "path:label" at the first colon, so labels may contain
// colons themselves. A colon directly after a drive letter is part of the
// path.
func splitLabel(arg string) (path, label string) {
	if len(arg) > 2 {
		if i := strings.Index(arg[2:], ":"); i >= 0 {
			return arg[:i+2], arg[i+3:]
		}
	}
	base := filepath.Base(arg)
	return arg, strings.TrimSuffix(base, filepath.Ext(base))
}
