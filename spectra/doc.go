// Package spectra aggregates repeated luminescence scans.
//
// A [Measurement] is either a single raw scan (no Std) or the pointwise
// mean of several repeats with their population standard deviation. The
// package provides:
//
//   - [ReadScan], [MeanFromFiles], [MeanFromFolder]: load and average scans
//   - [Measurement.Crop]: in-place restriction to a wavelength window
//   - [Measurement.AUC]: wavelength-weighted area with uncertainty
//   - [Measurement.Scale]: element-wise rescaling of intensity and std
//
// Repeats must share the spectrometer grid. Mismatched lengths fail with
// curve.ErrShapeMismatch rather than being resampled.
//
// # Usage
//
//	m, err := spectra.MeanFromFolder("data/NaYF4_Er")
//	if err != nil {
//		return err
//	}
//	auc, sigma, err := m.AUC(500, 700)
package spectra
