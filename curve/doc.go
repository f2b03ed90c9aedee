// Package curve reads and writes one-dimensional spectral curves.
//
// Two instrument formats are supported:
//
//   - ASP (fixed numeric header, y values only), used by FTIR and BET exports.
//     X is rebuilt from the declared start, end and point count.
//   - Laser scan (free-form header, then tab-separated x/y rows after
//     [SpectralDataMarker]), used by the luminescence spectrometer.
//
// Malformed numbers surface as [*ParseError] and structural problems as
// [*FormatError]; both match their sentinels ([ErrParse], [ErrFormat]) with
// errors.Is. Slices expected to align index for index are checked with
// [CheckLen] and [SameGrid], which fail with [ErrShapeMismatch].
//
// # Usage
//
//	c, err := curve.ReadASP("sample1.asp")
//	if err != nil {
//		return err
//	}
//	fmt.Println(c.Len(), c.X[0], c.X[c.Len()-1])
package curve
