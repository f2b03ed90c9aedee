package plotting

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-kira/curve"
	"github.com/cwbudde/algo-kira/sample"
	"github.com/cwbudde/algo-kira/spectra"
)

// Errors returned by the plotting helpers.
var (
	ErrEmpty             = errors.New("plotting: nothing to plot")
	ErrUnsupportedFormat = errors.New("plotting: unsupported image format")
)

// FTIR axis presets.
const (
	FTIRTitle  = "FTIR"
	FTIRXLabel = "Wavenumber (cm⁻¹)"
	FTIRYLabel = "Absorbance"

	FTIRXMin = 400.0
	FTIRXMax = 3000.0
	FTIRYMin = 0.0
	FTIRYMax = 1.0
)

// Default figure size.
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// Series is one labeled curve of an overlay plot.
type Series struct {
	Label string
	Curve curve.Curve
}

type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// Measurement adds m to p as a line in the idx-th palette color. When m
// carries a standard deviation, symmetric y error bars are drawn as well.
// An empty label keeps the series out of the legend.
func Measurement(p *plot.Plot, m *spectra.Measurement, label string, idx int) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.Len() == 0 {
		return ErrEmpty
	}

	pts := xys(m.Spectrum, m.Luminescence)
	color := plotutil.Color(idx)

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("plotting: %w", err)
	}
	line.LineStyle.Color = color
	line.LineStyle.Width = vg.Points(1)
	p.Add(line)

	if m.HasStd() {
		errs := make(plotter.YErrors, m.Len())
		for i, s := range m.Std {
			errs[i].Low = s
			errs[i].High = s
		}
		bars, err := plotter.NewYErrorBars(errorPoints{XYs: pts, YErrors: errs})
		if err != nil {
			return fmt.Errorf("plotting: %w", err)
		}
		bars.LineStyle.Color = color
		bars.LineStyle.Width = vg.Points(0.5)
		bars.CapWidth = vg.Points(2)
		p.Add(bars)
	}

	if label != "" {
		p.Legend.Add(label, line)
	}
	return nil
}

// Nanoparticle plots the measurement of np and, when withRef is set, its
// reference labeled with an "_ref" suffix.
func Nanoparticle(np *sample.Nanoparticle, withRef bool) (*plot.Plot, error) {
	p := newPlot(np.Identity, "Wavelength (nm)", "Intensity (a.u.)")

	if err := Measurement(p, np.Meas, np.Identity, 0); err != nil {
		return nil, fmt.Errorf("%s: %w", np.Identity, err)
	}
	if withRef {
		if err := Measurement(p, np.Ref, np.Identity+"_ref", 1); err != nil {
			return nil, fmt.Errorf("%s reference: %w", np.Identity, err)
		}
	}
	p.Legend.Top = true
	return p, nil
}

// FTIR overlays absorbance curves on the fixed FTIR axes. An empty title
// falls back to FTIRTitle.
func FTIR(title string, series ...Series) (*plot.Plot, error) {
	if len(series) == 0 {
		return nil, ErrEmpty
	}
	if title == "" {
		title = FTIRTitle
	}

	p := newPlot(title, FTIRXLabel, FTIRYLabel)
	p.Add(plotter.NewGrid())

	for i, s := range series {
		if err := curve.CheckLen(s.Curve.X, s.Curve.Y); err != nil {
			return nil, fmt.Errorf("%s: %w", s.Label, err)
		}
		if s.Curve.Len() == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmpty, s.Label)
		}
		line, err := plotter.NewLine(xys(s.Curve.X, s.Curve.Y))
		if err != nil {
			return nil, fmt.Errorf("plotting %s: %w", s.Label, err)
		}
		line.LineStyle.Color = plotutil.Color(i)
		p.Add(line)
		if s.Label != "" {
			p.Legend.Add(s.Label, line)
		}
	}

	p.X.Min, p.X.Max = FTIRXMin, FTIRXMax
	p.Y.Min, p.Y.Max = FTIRYMin, FTIRYMax
	p.Legend.Top = true
	return p, nil
}

// Save renders p to path. The extension selects the format; zero sizes
// fall back to DefaultWidth and DefaultHeight.
func Save(p *plot.Plot, path string, w, h vg.Length) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".svg", ".pdf", ".eps", ".jpg", ".jpeg", ".tif", ".tiff":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return p.Save(w, h, path)
}

func newPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Legend.TextStyle.Font.Size = vg.Points(8)
	p.Legend.ThumbnailWidth = vg.Points(12)
	p.Legend.Padding = vg.Points(2)
	return p
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}
