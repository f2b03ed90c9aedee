package sample

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cwbudde/algo-kira/curve"
	"github.com/cwbudde/algo-kira/spectra"
)

// ErrSpectrumMismatch is returned under the Strict policy when two spectra
// that should share a grid are not close point for point.
var ErrSpectrumMismatch = errors.New("sample: spectra are not on the same grid")

// Nanoparticle bundles the averaged measurement of a sample with the
// averaged measurement of its control and the sample metadata.
type Nanoparticle struct {
	Identity            string
	Dopant              string
	DopantConcentration float64 // %
	Annealing           Annealing
	DXRD                float64 // diameter by XRD peak method, nm

	Meas *spectra.Measurement
	Ref  *spectra.Measurement

	cfg Config
}

// New assembles a Nanoparticle from already loaded parts.
func New(md Metadata, meas, ref *spectra.Measurement, opts ...Option) *Nanoparticle {
	return &Nanoparticle{
		Identity:            md.Identity,
		Dopant:              md.Dopant,
		DopantConcentration: md.DopantConcentration,
		Annealing:           AnnealingFromMetadata(md),
		DXRD:                md.DXRD,
		Meas:                meas,
		Ref:                 ref,
		cfg:                 ApplyOptions(opts...),
	}
}

// FromFolder loads a nanoparticle from dir. dir holds the repeat scans of
// the sample and a metadata.yaml sidecar; the sidecar's reference names a
// sibling folder (relative to the parent of dir) with the control scans.
// Both are averaged, and their spectra are compared under the configured
// policy.
func FromFolder(dir string, opts ...Option) (*Nanoparticle, error) {
	md, err := ReadMetadata(filepath.Join(dir, MetadataFile))
	if err != nil {
		return nil, err
	}

	meas, err := spectra.MeanFromFolder(dir)
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", md.Identity, err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	refDir := filepath.Join(filepath.Dir(abs), md.Reference)
	ref, err := spectra.MeanFromFolder(refDir)
	if err != nil {
		return nil, fmt.Errorf("reference %s of %s: %w", md.Reference, md.Identity, err)
	}

	np := New(md, meas, ref, opts...)
	if err := np.checkGrid(meas.Spectrum, ref.Spectrum, "the spectrum of the reference is different"); err != nil {
		return nil, err
	}
	return np, nil
}

// Config returns the settings the nanoparticle was created with.
func (np *Nanoparticle) Config() Config { return np.cfg }

// Crop restricts both the measurement and the reference to
// low <= wavelength <= high, in place.
func (np *Nanoparticle) Crop(low, high float64) error {
	if err := np.Meas.Crop(low, high); err != nil {
		return fmt.Errorf("measurement: %w", err)
	}
	if err := np.Ref.Crop(low, high); err != nil {
		return fmt.Errorf("reference: %w", err)
	}
	return nil
}

// CropRescaleToNewRef rescales the nanoparticle so that its reference
// matches newRef. newRef and the nanoparticle are both cropped in place to
// [low, high]; then factors = newRef.Luminescence / Ref.Luminescence are
// applied pointwise to the luminescence and std of Meas and Ref. The
// factors are returned.
//
// All three measurements must have the same number of points after
// cropping, otherwise the call fails with curve.ErrShapeMismatch. Grids that
// have the same length but differ in value are handled by the policy.
func (np *Nanoparticle) CropRescaleToNewRef(newRef *spectra.Measurement, low, high float64) ([]float64, error) {
	if err := newRef.Crop(low, high); err != nil {
		return nil, fmt.Errorf("new reference: %w", err)
	}
	if err := np.Crop(low, high); err != nil {
		return nil, err
	}

	if err := np.checkGrid(newRef.Spectrum, np.Ref.Spectrum, "the spectra of the references are different"); err != nil {
		return nil, err
	}
	if err := curve.CheckLen(np.Meas.Luminescence, np.Ref.Luminescence); err != nil {
		return nil, fmt.Errorf("measurement vs reference: %w", err)
	}

	factors := make([]float64, len(newRef.Luminescence))
	for i := range factors {
		factors[i] = newRef.Luminescence[i] / np.Ref.Luminescence[i]
	}

	if err := np.Meas.Scale(factors); err != nil {
		return nil, fmt.Errorf("measurement: %w", err)
	}
	if err := np.Ref.Scale(factors); err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}
	return factors, nil
}

// checkGrid compares two spectra. Different lengths always fail; differing
// values fail under Strict and are logged under Lenient.
func (np *Nanoparticle) checkGrid(a, b []float64, msg string) error {
	same, err := curve.SameGrid(a, b, np.cfg.Tolerance)
	if err != nil {
		return fmt.Errorf("%s: %w", np.Identity, err)
	}
	if same {
		return nil
	}

	diff, _ := curve.MaxAbsDiff(a, b)
	if np.cfg.Policy == Strict {
		return fmt.Errorf("%w: %s (max abs diff %g)", ErrSpectrumMismatch, np.Identity, diff)
	}
	np.cfg.Logger.Warn().
		Str("identity", np.Identity).
		Int("points", len(a)).
		Float64("max_abs_diff", diff).
		Msg(msg)
	return nil
}
