package plotting

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-kira/curve"
	"github.com/cwbudde/algo-kira/internal/testutil"
	"github.com/cwbudde/algo-kira/sample"
	"github.com/cwbudde/algo-kira/spectra"
)

func requireNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func measurement(n int) *spectra.Measurement {
	x := curve.Linspace(400, 800, n)
	return &spectra.Measurement{
		Spectrum:     x,
		Luminescence: testutil.Luminescence(x, testutil.Peak{Scale: 1000, Mu: 550, Sigma: 20}),
		Std:          testutil.Constant(0.5, n),
	}
}

func TestMeasurement(t *testing.T) {
	p := plot.New()
	require.NoError(t, Measurement(p, measurement(100), "mean", 0))

	raw := measurement(100)
	raw.Std = nil
	require.NoError(t, Measurement(p, raw, "", 1))

	path := filepath.Join(t.TempDir(), "m.png")
	require.NoError(t, Save(p, path, 4*vg.Inch, 3*vg.Inch))
	requireNonEmptyFile(t, path)
}

func TestMeasurementErrors(t *testing.T) {
	p := plot.New()
	assert.True(t, errors.Is(Measurement(p, &spectra.Measurement{}, "x", 0), ErrEmpty))

	bad := &spectra.Measurement{Spectrum: []float64{1, 2}, Luminescence: []float64{1}}
	assert.True(t, errors.Is(Measurement(p, bad, "x", 0), curve.ErrShapeMismatch))
}

func TestNanoparticle(t *testing.T) {
	np := sample.New(sample.Metadata{Identity: "NaYF4_Er"}, measurement(64), measurement(64))

	p, err := Nanoparticle(np, true)
	require.NoError(t, err)
	assert.Equal(t, "NaYF4_Er", p.Title.Text)

	path := filepath.Join(t.TempDir(), "np.svg")
	require.NoError(t, Save(p, path, 0, 0))
	requireNonEmptyFile(t, path)
}

func TestFTIR(t *testing.T) {
	x := curve.Linspace(400, 4000, 500)
	a := testutil.Luminescence(x, testutil.Peak{Scale: 30, Mu: 1500, Sigma: 40}, testutil.Peak{Scale: 40, Mu: 1000, Sigma: 40})
	b := testutil.Luminescence(x, testutil.Peak{Scale: 20, Mu: 1500, Sigma: 40})

	p, err := FTIR("", Series{Label: "sample 1", Curve: curve.Curve{X: x, Y: a}}, Series{Label: "sample 2", Curve: curve.Curve{X: x, Y: b}})
	require.NoError(t, err)
	assert.Equal(t, FTIRTitle, p.Title.Text)
	assert.Equal(t, FTIRXMin, p.X.Min)
	assert.Equal(t, FTIRXMax, p.X.Max)
	assert.Equal(t, FTIRYMax, p.Y.Max)

	assert.Equal(t, "Wavenumber (cm⁻¹)", p.X.Label.Text)

	dir := t.TempDir()
	for _, name := range []string{"ftir.png", "ftir.svg", "ftir.pdf"} {
		path := filepath.Join(dir, name)
		var err error
		require.NotPanics(t, func() { err = Save(p, path, 0, 0) }, name)
		require.NoError(t, err, name)
		requireNonEmptyFile(t, path)
	}
}

func TestFTIRErrors(t *testing.T) {
	_, err := FTIR("t")
	assert.True(t, errors.Is(err, ErrEmpty))

	_, err = FTIR("t", Series{Label: "x", Curve: curve.Curve{X: []float64{1}, Y: nil}})
	assert.True(t, errors.Is(err, curve.ErrShapeMismatch))
}

func TestSaveUnsupported(t *testing.T) {
	err := Save(plot.New(), filepath.Join(t.TempDir(), "plot.bmp"), 0, 0)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
