package curve

import (
	"fmt"
	"math"
)

// Tolerance controls point-for-point grid comparison. Two values a and b
// are close when |a-b| <= Abs + Rel*|b|.
type Tolerance struct {
	Rel float64
	Abs float64
}

// DefaultTolerance matches the usual isclose defaults.
func DefaultTolerance() Tolerance {
	return Tolerance{Rel: 1e-5, Abs: 1e-8}
}

// Close reports whether a and b are within tolerance.
func (t Tolerance) Close(a, b float64) bool {
	if a == b {
		return true
	}
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return math.Abs(a-b) <= t.Abs+t.Rel*math.Abs(b)
}

// SameGrid reports whether a and b are close point for point. Slices of
// different length cannot be compared and yield ErrShapeMismatch.
func SameGrid(a, b []float64, tol Tolerance) (bool, error) {
	if len(a) != len(b) {
		return false, fmt.Errorf("%w: grids have %d and %d points", ErrShapeMismatch, len(a), len(b))
	}
	for i := range a {
		if !tol.Close(a[i], b[i]) {
			return false, nil
		}
	}
	return true, nil
}

// SameGrid reports whether c and other are sampled at close x values.
func (c Curve) SameGrid(other Curve, tol Tolerance) (bool, error) {
	return SameGrid(c.X, other.X, tol)
}

// MaxAbsDiff returns the largest absolute pointwise difference of two
// equal-length grids.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: grids have %d and %d points", ErrShapeMismatch, len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
