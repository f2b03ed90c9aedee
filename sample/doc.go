// Package sample models a nanoparticle sample: the averaged luminescence of
// its repeat scans, the averaged luminescence of its control reference and
// the metadata recorded alongside.
//
// A sample folder looks like:
//
//	data/
//	  NaYF4_Er/
//	    metadata.yaml        # reference: NaYF4_ref
//	    repetition_0.txt
//	    repetition_1.txt
//	  NaYF4_ref/
//	    repetition_0.txt
//
// Reference folders are resolved relative to the parent of the sample
// folder.
//
// # Grid checks
//
// The measurement and its reference are expected on the same wavelength
// grid. Arrays of different length always fail with curve.ErrShapeMismatch.
// Equal-length grids whose values differ beyond the configured
// [curve.Tolerance] are handled by the [Policy]: [Lenient] logs a zerolog
// warning and aligns point by point, [Strict] returns [ErrSpectrumMismatch].
//
// # Usage
//
//	np, err := sample.FromFolder("data/NaYF4_Er", sample.WithPolicy(sample.Strict))
//	if err != nil {
//		return err
//	}
//	factors, err := np.CropRescaleToNewRef(newRef, 500, 700)
package sample
