package peak

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-kira/curve"
)

func ramp(n int, step float64) ([]float64, []float64) {
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = float64(i) * step
		y[i] = float64(i + 1)
	}
	return x, y
}

func TestAreaIndexSpacing(t *testing.T) {
	x, y := ramp(10, 1)
	got, err := Area(x, y, 1.5, 5.5)
	require.NoError(t, err)
	// selects y = 3, 4, 5, 6
	assert.InDelta(t, 13.5, got, 1e-12)

	// Same samples on a ten times wider grid: index spacing keeps the area.
	xw, yw := ramp(10, 10)
	got, err = Area(xw, yw, 15, 55)
	require.NoError(t, err)
	assert.InDelta(t, 13.5, got, 1e-12)
}

func TestAreaStrictBounds(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{5, 5, 5, 5}

	got, err := Area(x, y, 1, 4)
	require.NoError(t, err)
	// only x = 2 and x = 3 are strictly inside
	assert.InDelta(t, 5.0, got, 1e-12)
}

func TestAreaFewPointsIsZero(t *testing.T) {
	x, y := ramp(10, 1)

	got, err := Area(x, y, 20, 30)
	require.NoError(t, err)
	assert.Zero(t, got, "empty window")

	got, err = Area(x, y, 2.5, 3.5)
	require.NoError(t, err)
	assert.Zero(t, got, "single point window")

	got, err = Area(nil, nil, 0, 1)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestAreaShapeMismatch(t *testing.T) {
	_, err := Area([]float64{1, 2, 3}, []float64{1, 2}, 0, 4)
	assert.True(t, errors.Is(err, curve.ErrShapeMismatch))
}

func TestRatioSelfIsOne(t *testing.T) {
	x, y := ramp(50, 2)
	windows := []Window{{0, 20}, {13, 77}, {-5, 200}}
	for _, w := range windows {
		r, err := Ratio(x, y, w, w)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, r, 1e-15, "window %s", w)
	}
}

func TestRatio(t *testing.T) {
	x, y := ramp(10, 1)
	r, err := Ratio(x, y, Window{1.5, 5.5}, Window{-1, 2.5})
	require.NoError(t, err)
	// reference selects y = 1, 2, 3 -> area 4
	assert.InDelta(t, 13.5/4, r, 1e-12)
}

func TestRatioZeroReference(t *testing.T) {
	x, y := ramp(10, 1)

	_, err := Ratio(x, y, Window{0, 5}, Window{100, 200})
	assert.True(t, errors.Is(err, ErrZeroReference))

	zeros := make([]float64, len(x))
	_, err = Ratio(x, zeros, Window{0, 5}, Window{0, 5})
	assert.True(t, errors.Is(err, ErrZeroReference))
}

func TestCarbonatePhosphatePreset(t *testing.T) {
	x := curve.Linspace(400, 4000, 3601)
	y := make([]float64, len(x))
	for i, v := range x {
		switch {
		case CO3.Window.Contains(v):
			y[i] = 0.2
		case PO3.Window.Contains(v):
			y[i] = 0.8
		}
	}

	r, err := CarbonatePhosphate.Ratio(curve.Curve{X: x, Y: y})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, r, 1e-9)
	assert.Equal(t, "CO3/PO3", CarbonatePhosphate.Label())

	br, err := BandRatio(curve.Curve{X: x, Y: y}, CarbonatePhosphate)
	require.NoError(t, err)
	assert.Equal(t, r, br)
}

func TestLookupPreset(t *testing.T) {
	p, err := LookupPreset(" CO3-PO3 ")
	require.NoError(t, err)
	assert.Equal(t, CarbonatePhosphate, p)

	_, err = LookupPreset("nope")
	assert.Error(t, err)
	assert.Equal(t, []string{"co3-po3"}, PresetNames())
}
