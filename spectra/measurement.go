package spectra

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-kira/curve"
)

// Errors returned by measurement operations.
var (
	ErrNoStd          = errors.New("spectra: measurement has no standard deviation")
	ErrNoMeasurements = errors.New("spectra: at least one measurement is required")
	ErrNoScans        = errors.New("spectra: no scan files found")
	ErrUnsorted       = errors.New("spectra: spectrum is not in increasing order")
)

// Measurement is a luminescence spectrum with an optional pointwise
// standard deviation. Std is nil for a single raw scan and populated for
// the mean of several repeats.
type Measurement struct {
	Spectrum     []float64 // wavelength (nm)
	Luminescence []float64 // intensity (a.u.)
	Std          []float64
}

// Len returns the number of spectral points.
func (m *Measurement) Len() int { return len(m.Spectrum) }

// HasStd reports whether the measurement carries a standard deviation.
func (m *Measurement) HasStd() bool { return m.Std != nil }

// Curve returns the (spectrum, luminescence) pair. The slices are shared.
func (m *Measurement) Curve() curve.Curve {
	return curve.Curve{X: m.Spectrum, Y: m.Luminescence}
}

// Validate checks that all present sequences have the same length.
func (m *Measurement) Validate() error {
	if m.Std == nil {
		return curve.CheckLen(m.Spectrum, m.Luminescence)
	}
	return curve.CheckLen(m.Spectrum, m.Luminescence, m.Std)
}

// Clone returns a deep copy of m.
func (m *Measurement) Clone() *Measurement {
	c := &Measurement{
		Spectrum:     append([]float64(nil), m.Spectrum...),
		Luminescence: append([]float64(nil), m.Luminescence...),
	}
	if m.Std != nil {
		c.Std = append([]float64{}, m.Std...)
	}
	return c
}

// ReadScan reads a single laser-scan file. The result has no Std.
func ReadScan(path string) (*Measurement, error) {
	c, err := curve.ReadLaserScan(path)
	if err != nil {
		return nil, err
	}
	return &Measurement{Spectrum: c.X, Luminescence: c.Y}, nil
}

// Mean averages repeated measurements point by point. The spectrum is the
// pointwise mean of the input spectra, which absorbs small per-file jitter
// of the x axis; luminescence gets the mean and the population standard
// deviation across repeats. All inputs must have the same length; no
// resampling is done.
func Mean(ms ...*Measurement) (*Measurement, error) {
	if len(ms) == 0 {
		return nil, ErrNoMeasurements
	}

	n := ms[0].Len()
	for i, m := range ms {
		if err := curve.CheckLen(m.Spectrum, m.Luminescence); err != nil {
			return nil, fmt.Errorf("measurement %d: %w", i, err)
		}
		if m.Len() != n {
			return nil, fmt.Errorf("%w: measurement %d has %d points, want %d", curve.ErrShapeMismatch, i, m.Len(), n)
		}
	}

	out := &Measurement{
		Spectrum:     make([]float64, n),
		Luminescence: make([]float64, n),
		Std:          make([]float64, n),
	}

	column := make([]float64, len(ms))
	for p := 0; p < n; p++ {
		for k, m := range ms {
			column[k] = m.Spectrum[p]
		}
		out.Spectrum[p] = stat.Mean(column, nil)

		for k, m := range ms {
			column[k] = m.Luminescence[p]
		}
		out.Luminescence[p], out.Std[p] = stat.PopMeanStdDev(column, nil)
	}

	return out, nil
}

// MeanFromFiles reads every path as a laser scan and averages them.
func MeanFromFiles(paths []string) (*Measurement, error) {
	if len(paths) == 0 {
		return nil, ErrNoScans
	}
	ms := make([]*Measurement, len(paths))
	for i, p := range paths {
		m, err := ReadScan(p)
		if err != nil {
			return nil, err
		}
		ms[i] = m
	}
	return Mean(ms...)
}

// ScanFiles lists the scan files of dir in lexical order: regular files
// whose name ends in "txt", excluding "._" resource-fork files.
func ScanFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, "txt") || strings.HasPrefix(name, "._") {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

// MeanFromFolder averages all scan files found in dir.
func MeanFromFolder(dir string) (*Measurement, error) {
	paths, err := ScanFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoScans, dir)
	}
	return MeanFromFiles(paths)
}

// Crop keeps only the points with low <= spectrum <= high. The same mask
// is applied to luminescence and std. Crop modifies m in place.
func (m *Measurement) Crop(low, high float64) error {
	if err := m.Validate(); err != nil {
		return err
	}
	mask := curve.Mask(m.Spectrum, low, high)
	m.Spectrum = curve.Select(m.Spectrum, mask)
	m.Luminescence = curve.Select(m.Luminescence, mask)
	if m.Std != nil {
		m.Std = curve.Select(m.Std, mask)
	}
	return nil
}

// AUC integrates the luminescence over the spectrum between low and high
// (inclusive) with the trapezoid rule against the true wavelength values.
// The uncertainty is half the gap between the integrals of L+σ and L-σ.
// m is not modified. Measurements without Std yield ErrNoStd.
//
// Unlike peak.Area, which integrates against the sample index, the result
// is in intensity·nm.
func (m *Measurement) AUC(low, high float64) (mean, uncertainty float64, err error) {
	if m.Std == nil {
		return 0, 0, ErrNoStd
	}
	c := m.Clone()
	if err := c.Crop(low, high); err != nil {
		return 0, 0, err
	}

	if !sort.Float64sAreSorted(c.Spectrum) {
		return 0, 0, ErrUnsorted
	}

	n := c.Len()
	upper := make([]float64, n)
	lower := make([]float64, n)
	for i := range c.Luminescence {
		upper[i] = c.Luminescence[i] + c.Std[i]
		lower[i] = c.Luminescence[i] - c.Std[i]
	}

	maxAUC := trapezoid(c.Spectrum, upper)
	minAUC := trapezoid(c.Spectrum, lower)
	return trapezoid(c.Spectrum, c.Luminescence), (maxAUC - minAUC) / 2, nil
}

// Scale multiplies luminescence and, when present, std by factors element
// by element.
func (m *Measurement) Scale(factors []float64) error {
	if err := curve.CheckLen(m.Luminescence, factors); err != nil {
		return err
	}
	if m.Std != nil {
		if err := curve.CheckLen(m.Std, factors); err != nil {
			return err
		}
		vecmath.MulBlockInPlace(m.Std, factors)
	}
	vecmath.MulBlockInPlace(m.Luminescence, factors)
	return nil
}

// trapezoid integrates y over x. Fewer than two points give 0.
func trapezoid(x, y []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return integrate.Trapezoidal(x, y)
}
