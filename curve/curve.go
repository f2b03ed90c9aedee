package curve

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Curve is an ordered sequence of (x, y) samples with x increasing.
type Curve struct {
	X []float64
	Y []float64
}

// New returns a Curve over x and y. The slices are not copied.
func New(x, y []float64) (Curve, error) {
	if err := CheckLen(x, y); err != nil {
		return Curve{}, err
	}
	return Curve{X: x, Y: y}, nil
}

// Len returns the number of samples.
func (c Curve) Len() int { return len(c.X) }

// Clone returns a deep copy of c.
func (c Curve) Clone() Curve {
	return Curve{
		X: append([]float64(nil), c.X...),
		Y: append([]float64(nil), c.Y...),
	}
}

// Linspace returns n evenly spaced values from start to end inclusive.
// n == 1 yields [start] and n <= 0 yields an empty slice.
func Linspace(start, end float64, n int) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, end)
}

// Mask reports for every x whether low <= x <= high.
func Mask(x []float64, low, high float64) []bool {
	mask := make([]bool, len(x))
	for i, v := range x {
		mask[i] = v >= low && v <= high
	}
	return mask
}

// Select returns the elements of s where mask is true. It panics if the
// lengths differ, since that is a programming error in the caller.
func Select(s []float64, mask []bool) []float64 {
	if len(s) != len(mask) {
		panic(fmt.Sprintf("curve: select length mismatch: %d values, %d mask entries", len(s), len(mask)))
	}
	out := make([]float64, 0, len(s))
	for i, keep := range mask {
		if keep {
			out = append(out, s[i])
		}
	}
	return out
}

// Crop returns a copy of c restricted to low <= x <= high.
func (c Curve) Crop(low, high float64) Curve {
	mask := Mask(c.X, low, high)
	return Curve{X: Select(c.X, mask), Y: Select(c.Y, mask)}
}
