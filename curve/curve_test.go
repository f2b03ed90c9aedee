package curve_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-kira/curve"
	"github.com/cwbudde/algo-kira/internal/testutil"
)

func TestASPRoundTrip(t *testing.T) {
	x := curve.Linspace(400, 4000, 11)
	y := []float64{0.125, 0.25, 0.5, 0.75, 1, 0.875, 0.5, 0.3125, 0.1, 0.05, 0.0125}
	path := filepath.Join(t.TempDir(), "sample.asp")

	require.NoError(t, curve.WriteASP(path, curve.Curve{X: x, Y: y}))

	got, err := curve.ReadASP(path)
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, got.X, x, 1e-9)
	assert.Equal(t, y, got.Y)
	assert.Equal(t, 400.0, got.X[0])
	assert.Equal(t, 4000.0, got.X[10])
}

func TestDecodeASPLinearX(t *testing.T) {
	in := "5\n0\n4\n1\n2\n3\n1.5\n2.5\n3.5\n4.5\n5.5\n"
	c, err := curve.DecodeASP(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, c.X)
	assert.Equal(t, []float64{1.5, 2.5, 3.5, 4.5, 5.5}, c.Y)
}

func TestDecodeASPSinglePoint(t *testing.T) {
	c, err := curve.DecodeASP(strings.NewReader("1\n7.5\n9\n0\n0\n0\n42\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{7.5}, c.X)
	assert.Equal(t, []float64{42}, c.Y)
}

func TestDecodeASPTrailingBlankLines(t *testing.T) {
	c, err := curve.DecodeASP(strings.NewReader("2\n0\n1\n0\n0\n0\n1\n2\n\n\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestDecodeASPCountMismatch(t *testing.T) {
	var b strings.Builder
	b.WriteString("10\n0\n9\n0\n0\n0\n")
	for i := 0; i < 9; i++ {
		b.WriteString("1.0\n")
	}

	_, err := curve.DecodeASP(strings.NewReader(b.String()))
	require.Error(t, err)

	var fe *curve.FormatError
	require.True(t, errors.As(err, &fe), "want *curve.FormatError, got %T", err)
	assert.True(t, errors.Is(err, curve.ErrFormat))
	assert.False(t, errors.Is(err, curve.ErrParse))
	assert.Contains(t, fe.Reason, "expected 10")
}

func TestReadASPCountMismatchCarriesPath(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "short.asp", "3\n0\n2\n0\n0\n0\n1\n2\n")
	_, err := curve.ReadASP(path)

	var fe *curve.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, path, fe.Path)
	assert.Contains(t, err.Error(), path)
}

func TestDecodeASPParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line int
	}{
		{"count not int", "ten\n0\n1\n0\n0\n0\n", 0},
		{"count float", "2.5\n0\n1\n0\n0\n0\n", 0},
		{"x start", "1\nabc\n1\n0\n0\n0\n1\n", 1},
		{"x end", "1\n0\n-\n0\n0\n0\n1\n", 2},
		{"metadata not int", "1\n0\n1\n0\n0.5\n0\n1\n", 4},
		{"y value", "2\n0\n1\n0\n0\n0\n1\nnope\n", 7},
		{"too short", "2\n0\n1\n", 3},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := curve.DecodeASP(strings.NewReader(tt.in))
			var pe *curve.ParseError
			require.True(t, errors.As(err, &pe), "want *curve.ParseError, got %v", err)
			assert.True(t, errors.Is(err, curve.ErrParse))
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestEncodeASPRejectsUnevenX(t *testing.T) {
	var buf bytes.Buffer
	err := curve.EncodeASP(&buf, curve.Curve{X: []float64{0, 1, 3}, Y: []float64{1, 2, 3}}, [3]int{})
	assert.True(t, errors.Is(err, curve.ErrFormat))

	err = curve.EncodeASP(&buf, curve.Curve{}, [3]int{})
	assert.True(t, errors.Is(err, curve.ErrFormat))

	err = curve.EncodeASP(&buf, curve.Curve{X: []float64{0, 1}, Y: []float64{1}}, [3]int{})
	assert.True(t, errors.Is(err, curve.ErrShapeMismatch))
}

func TestLaserScanRoundTrip(t *testing.T) {
	x := []float64{340.154, 340.487, 340.821}
	y := []float64{1.5, 1024.25, 7}
	path := filepath.Join(t.TempDir(), "repetition_0.txt")

	require.NoError(t, curve.WriteLaserScan(path, curve.Curve{X: x, Y: y}, curve.ScanHeader{Source: "repetition_0.txt"}))

	got, err := curve.ReadLaserScan(path)
	require.NoError(t, err)
	assert.Equal(t, x, got.X)
	assert.Equal(t, y, got.Y)
}

func TestDecodeLaserScanSkipsHeader(t *testing.T) {
	in := "Data from x Node\r\nDate: today\r\n" + curve.SpectralDataMarker + "\r\n1.0\t2.0\r\n3.0\t4.0\r\n"
	c, err := curve.DecodeLaserScan(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, c.X)
	assert.Equal(t, []float64{2, 4}, c.Y)
}

func TestDecodeLaserScanMissingMarker(t *testing.T) {
	_, err := curve.DecodeLaserScan(strings.NewReader("header\n1.0\t2.0\n"))
	var fe *curve.FormatError
	require.True(t, errors.As(err, &fe))
	assert.True(t, errors.Is(err, curve.ErrFormat))
}

func TestDecodeLaserScanBadRow(t *testing.T) {
	in := curve.SpectralDataMarker + "\n1.0\t2.0\n3.0 4.0\n"
	_, err := curve.DecodeLaserScan(strings.NewReader(in))
	assert.True(t, errors.Is(err, curve.ErrParse))

	in = curve.SpectralDataMarker + "\n1.0\tx\n"
	_, err = curve.DecodeLaserScan(strings.NewReader(in))
	assert.True(t, errors.Is(err, curve.ErrParse))
}

func TestNewShapeMismatch(t *testing.T) {
	_, err := curve.New([]float64{1, 2}, []float64{1})
	assert.True(t, errors.Is(err, curve.ErrShapeMismatch))

	c, err := curve.New([]float64{1, 2}, []float64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestCropInclusive(t *testing.T) {
	c := curve.Curve{X: []float64{1, 2, 3, 4, 5}, Y: []float64{10, 20, 30, 40, 50}}
	got := c.Crop(2, 4)
	assert.Equal(t, []float64{2, 3, 4}, got.X)
	assert.Equal(t, []float64{20, 30, 40}, got.Y)
	assert.Equal(t, 5, c.Len(), "crop must not modify the receiver")
}

func TestLinspace(t *testing.T) {
	assert.Empty(t, curve.Linspace(0, 1, 0))
	assert.Equal(t, []float64{3}, curve.Linspace(3, 9, 1))
	testutil.RequireSliceNearlyEqual(t, curve.Linspace(0, 1, 5), []float64{0, 0.25, 0.5, 0.75, 1}, 1e-15)
}

func TestSameGrid(t *testing.T) {
	tol := curve.DefaultTolerance()

	ok, err := curve.SameGrid([]float64{500, 600}, []float64{500.001, 600}, tol)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = curve.SameGrid([]float64{500, 600}, []float64{501, 600}, tol)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = curve.SameGrid([]float64{1}, []float64{1, 2}, tol)
	assert.True(t, errors.Is(err, curve.ErrShapeMismatch))

	a := curve.Curve{X: []float64{1, 2}, Y: []float64{5, 6}}
	b := curve.Curve{X: []float64{1, 2}, Y: []float64{7, 8}}
	ok, err = a.SameGrid(b, tol)
	require.NoError(t, err)
	assert.True(t, ok, "only x is compared")
}

func TestMaxAbsDiff(t *testing.T) {
	d, err := curve.MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 3})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, d, 1e-15)

	_, err = curve.MaxAbsDiff([]float64{1}, nil)
	assert.True(t, errors.Is(err, curve.ErrShapeMismatch))
}
