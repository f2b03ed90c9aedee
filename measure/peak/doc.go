// Package peak integrates absorption bands of FTIR spectra and computes
// band-area ratios.
//
// [Area] uses the trapezoid rule against the sample index, not against x.
// This matches the historical lab analyses, but means areas are only
// comparable between spectra with the same sampling density. For an
// x-weighted integral with uncertainty see spectra.Measurement.AUC.
//
// # Usage
//
//	c, _ := curve.ReadASP("powder.asp")
//	r, err := peak.CarbonatePhosphate.Ratio(c)
//	if errors.Is(err, peak.ErrZeroReference) {
//		// the PO3 band is empty on this spectrum
//	}
package peak
