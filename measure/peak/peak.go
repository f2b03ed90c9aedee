package peak

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/integrate"

	"github.com/cwbudde/algo-kira/curve"
)

// ErrZeroReference is returned by ratio functions when the normalizing
// window integrates to exactly zero.
var ErrZeroReference = errors.New("peak: reference window area is zero")

// Window is an open x interval: a point is selected when Start < x < Stop.
type Window struct {
	Start float64
	Stop  float64
}

// Contains reports whether x lies strictly inside w.
func (w Window) Contains(x float64) bool {
	return x > w.Start && x < w.Stop
}

func (w Window) String() string {
	return fmt.Sprintf("(%g, %g)", w.Start, w.Stop)
}

// Area integrates the y values whose x lies strictly inside (start, stop)
// with the trapezoid rule, treating consecutive selected samples as
// unit-spaced. The result therefore depends on sampling density and is only
// comparable between curves on the same grid. Fewer than two selected
// points give 0.
func Area(x, y []float64, start, stop float64) (float64, error) {
	return WindowArea(x, y, Window{Start: start, Stop: stop})
}

// WindowArea is [Area] with the bounds given as a [Window].
func WindowArea(x, y []float64, w Window) (float64, error) {
	if err := curve.CheckLen(x, y); err != nil {
		return 0, err
	}

	selected := make([]float64, 0, len(y))
	for i, v := range x {
		if w.Contains(v) {
			selected = append(selected, y[i])
		}
	}

	return indexTrapezoid(selected), nil
}

// Ratio returns Area(target) / Area(reference). The reference window is the
// normalizer; a zero reference area yields ErrZeroReference.
func Ratio(x, y []float64, target, reference Window) (float64, error) {
	num, err := WindowArea(x, y, target)
	if err != nil {
		return 0, err
	}
	den, err := WindowArea(x, y, reference)
	if err != nil {
		return 0, err
	}
	if den == 0 {
		return 0, fmt.Errorf("%w: window %s", ErrZeroReference, reference)
	}
	return num / den, nil
}

// indexTrapezoid integrates y over the sample index 0..n-1.
func indexTrapezoid(y []float64) float64 {
	if len(y) < 2 {
		return 0
	}
	return integrate.Trapezoidal(curve.Linspace(0, float64(len(y)-1), len(y)), y)
}
