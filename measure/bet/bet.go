// Package bet estimates nanoparticle size from BET specific surface area,
// assuming spherical, non-porous particles.
//
// For a sphere the volume-to-surface ratio is r/3, so with specific surface
// S (m²/g) and density ρ (g/cm³):
//
//	r [nm] = 3 / (ρ · S · 1e-3)
//
// The symmetric measurement error ΔS is propagated by evaluating the formula
// at S-ΔS and S+ΔS.
package bet

import (
	"errors"
	"fmt"
	"math"
)

// ErrDomain is returned for physically invalid inputs.
var ErrDomain = errors.New("bet: invalid physical input")

// Estimate holds a radius estimate with its symmetric error, in nm.
type Estimate struct {
	Radius    float64
	RadiusErr float64
}

// Diameter returns 2·Radius.
func (e Estimate) Diameter() float64 { return 2 * e.Radius }

// DiameterErr returns 2·RadiusErr.
func (e Estimate) DiameterErr() float64 { return 2 * e.RadiusErr }

func (e Estimate) String() string {
	return fmt.Sprintf("%.2f ± %.2f nm", e.Radius, e.RadiusErr)
}

// Formula returns the sphere-equivalent radius in nm for surface area
// surface (m²/g) and density (g/cm³). It does not validate its inputs.
func Formula(surface, density float64) float64 {
	return 3 / (density * surface * 1e-3)
}

// Radius estimates the particle radius and its error from the BET surface
// area, the ± error of that measurement and the material density.
//
// The low/high naming follows the surface bounds: radiusLow comes from
// S-ΔS and is numerically the larger radius. The estimate is the midpoint of
// the two raw values and the error is the distance to radiusHigh.
func Radius(surface, surfaceErr, density float64) (Estimate, error) {
	if err := validate(surface, surfaceErr, density); err != nil {
		return Estimate{}, err
	}

	radiusLow := Formula(surface-surfaceErr, density)
	radiusHigh := Formula(surface+surfaceErr, density)

	radius := (radiusHigh + radiusLow) / 2
	return Estimate{
		Radius:    radius,
		RadiusErr: math.Abs(radiusHigh - radius),
	}, nil
}

func validate(surface, surfaceErr, density float64) error {
	for _, v := range []float64{surface, surfaceErr, density} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite input %v", ErrDomain, v)
		}
	}
	switch {
	case density <= 0:
		return fmt.Errorf("%w: density must be > 0: %g", ErrDomain, density)
	case surfaceErr < 0:
		return fmt.Errorf("%w: surface error must be >= 0: %g", ErrDomain, surfaceErr)
	case surface-surfaceErr == 0 || surface+surfaceErr == 0:
		return fmt.Errorf("%w: surface %g ± %g reaches zero", ErrDomain, surface, surfaceErr)
	}
	return nil
}
