package bet

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRadiusNoError(t *testing.T) {
	e, err := Radius(50, 0, 2.5)
	require.NoError(t, err)
	assert.InDelta(t, 24.0, e.Radius, 1e-12)
	assert.Zero(t, e.RadiusErr)
	assert.InDelta(t, 48.0, e.Diameter(), 1e-12)
	assert.Zero(t, e.DiameterErr())
}

func TestRadiusMidpointOfRawBounds(t *testing.T) {
	e, err := Radius(50, 10, 2.5)
	require.NoError(t, err)

	low := 3 / (2.5 * 40 * 1e-3)  // 30
	high := 3 / (2.5 * 60 * 1e-3) // 20
	assert.InDelta(t, (low+high)/2, e.Radius, 1e-12)
	assert.InDelta(t, 5.0, e.RadiusErr, 1e-12)
	assert.Greater(t, e.Radius, Formula(50, 2.5), "midpoint sits above the nominal radius")
}

func TestRadiusErrorMonotonic(t *testing.T) {
	prev := -1.0
	for surfaceErr := 0.0; surfaceErr < 50; surfaceErr += 2.5 {
		e, err := Radius(50, surfaceErr, 3.1)
		require.NoError(t, err)
		assert.Greater(t, e.RadiusErr, prev, "surface_err=%g", surfaceErr)
		prev = e.RadiusErr
	}
}

func TestRadiusDomainErrors(t *testing.T) {
	tests := []struct {
		name                         string
		surface, surfaceErr, density float64
	}{
		{"zero density", 50, 1, 0},
		{"negative density", 50, 1, -2},
		{"lower bound zero", 10, 10, 2.5},
		{"upper bound zero", -10, 10, 2.5},
		{"zero surface", 0, 0, 2.5},
		{"negative error", 50, -1, 2.5},
		{"nan", math.NaN(), 0, 2.5},
		{"inf", 50, math.Inf(1), 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Radius(tt.surface, tt.surfaceErr, tt.density)
			assert.True(t, errors.Is(err, ErrDomain), "got %v", err)
		})
	}
}

func TestEstimateString(t *testing.T) {
	assert.Equal(t, "24.00 ± 0.00 nm", Estimate{Radius: 24}.String())
}
