// Package fit fits analytic line shapes to spectral bands.
//
// Fits use the Levenberg-Marquardt solver from github.com/maorshutman/lm
// with a numerical Jacobian. Crop the curve to the band of interest before
// fitting; the model has a single peak over a constant baseline.
package fit

import (
	"errors"
	"fmt"
	"math"

	"github.com/maorshutman/lm"

	"github.com/cwbudde/algo-kira/curve"
)

// Errors returned by the fitting functions.
var (
	ErrTooFewPoints  = errors.New("fit: need at least 4 points for a 4-parameter fit")
	ErrNoConvergence = errors.New("fit: solver did not converge")
)

// fwhmFactor converts a Gaussian standard deviation to full width at half
// maximum: 2·sqrt(2·ln 2).
const fwhmFactor = 2.3548200450309493

// Params are the parameters of A·exp(-(x-μ)²/(2σ²)) + C.
type Params struct {
	Amplitude float64 // A
	Center    float64 // μ
	Sigma     float64 // σ
	Offset    float64 // C
}

// FWHM returns the full width at half maximum.
func (p Params) FWHM() float64 { return fwhmFactor * math.Abs(p.Sigma) }

// Eval evaluates the model at x.
func (p Params) Eval(x float64) float64 {
	d := x - p.Center
	return p.Amplitude*math.Exp(-d*d/(2*p.Sigma*p.Sigma)) + p.Offset
}

func (p Params) vector() []float64 {
	return []float64{p.Amplitude, p.Center, p.Sigma, p.Offset}
}

func paramsFrom(v []float64) Params {
	return Params{Amplitude: v[0], Center: v[1], Sigma: math.Abs(v[2]), Offset: v[3]}
}

// Settings tune the solver.
type Settings struct {
	Iterations   int
	ObjectiveTol float64
}

// DefaultSettings returns the solver settings used by [Gaussian].
func DefaultSettings() Settings {
	return Settings{Iterations: 1000, ObjectiveTol: 1e-16}
}

// Gaussian fits a single Gaussian over a constant baseline to (x, y),
// starting from guess.
func Gaussian(x, y []float64, guess Params) (Params, error) {
	return GaussianWithSettings(x, y, guess, DefaultSettings())
}

// GaussianWithSettings is [Gaussian] with explicit solver settings.
func GaussianWithSettings(x, y []float64, guess Params, s Settings) (Params, error) {
	if err := curve.CheckLen(x, y); err != nil {
		return Params{}, err
	}
	if len(x) < 4 {
		return Params{}, ErrTooFewPoints
	}
	if guess.Sigma == 0 {
		return Params{}, fmt.Errorf("fit: initial sigma must be non-zero")
	}

	residuals := func(dst, v []float64) {
		p := Params{Amplitude: v[0], Center: v[1], Sigma: v[2], Offset: v[3]}
		for i := range x {
			dst[i] = p.Eval(x[i]) - y[i]
		}
	}

	nj := &lm.NumJac{Func: residuals}

	problem := lm.LMProblem{
		Dim:        4,
		Size:       len(x),
		Func:       residuals,
		Jac:        nj.Jac,
		InitParams: guess.vector(),
		Tau:        1e-6,
		Eps1:       1e-8,
		Eps2:       1e-8,
	}

	result, err := lm.LM(problem, &lm.Settings{Iterations: s.Iterations, ObjectiveTol: s.ObjectiveTol})
	if err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrNoConvergence, err)
	}

	for _, v := range result.X {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Params{}, ErrNoConvergence
		}
	}

	return paramsFrom(result.X), nil
}

// Guess derives starting parameters from the curve: the baseline is the
// minimum, the center is the position of the maximum and σ comes from the
// width of the region above half height.
func Guess(x, y []float64) (Params, error) {
	if err := curve.CheckLen(x, y); err != nil {
		return Params{}, err
	}
	if len(x) < 4 {
		return Params{}, ErrTooFewPoints
	}

	maxIdx, minVal := 0, y[0]
	for i, v := range y {
		if v > y[maxIdx] {
			maxIdx = i
		}
		if v < minVal {
			minVal = v
		}
	}

	amp := y[maxIdx] - minVal
	half := minVal + amp/2

	first, last := maxIdx, maxIdx
	for first > 0 && y[first-1] >= half {
		first--
	}
	for last < len(y)-1 && y[last+1] >= half {
		last++
	}

	width := math.Abs(x[last] - x[first])
	sigma := width / fwhmFactor
	if sigma == 0 {
		sigma = math.Abs(x[len(x)-1]-x[0]) / 10
	}
	if sigma == 0 {
		sigma = 1
	}

	return Params{Amplitude: amp, Center: x[maxIdx], Sigma: sigma, Offset: minVal}, nil
}
