// Package export writes measurements and rescale factors to XLSX
// workbooks, one sheet per series, using streamed rows.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cwbudde/algo-kira/curve"
	"github.com/cwbudde/algo-kira/sample"
	"github.com/cwbudde/algo-kira/spectra"
)

// Errors returned by the exporters.
var (
	ErrNoSheets       = errors.New("export: no sheets to write")
	ErrDuplicateSheet = errors.New("export: duplicate sheet name")
)

// MaxSheetName is the longest sheet name a workbook accepts.
const MaxSheetName = 31

// Column headers.
var (
	MeasurementHeader = []interface{}{"wavelength (nm)", "intensity (a.u.)", "std"}
	FactorsHeader     = []interface{}{"wavelength (nm)", "factor"}
)

// Sheet names one measurement of a workbook.
type Sheet struct {
	Name        string
	Measurement *spectra.Measurement
}

// MeasurementXLSX writes each sheet's measurement as wavelength, intensity
// and std columns. The std column is left blank for raw scans.
func MeasurementXLSX(path string, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return ErrNoSheets
	}

	f := excelize.NewFile()
	defer f.Close()

	names, err := sheetNames(sheets)
	if err != nil {
		return err
	}
	for i, s := range sheets {
		if err := s.Measurement.Validate(); err != nil {
			return fmt.Errorf("sheet %s: %w", names[i], err)
		}
		if err := addSheet(f, i, names[i]); err != nil {
			return err
		}
		if err := writeMeasurement(f, names[i], s.Measurement); err != nil {
			return fmt.Errorf("sheet %s: %w", names[i], err)
		}
	}
	return f.SaveAs(path)
}

// refSuffix names the reference sheet of a nanoparticle workbook.
const refSuffix = "_ref"

// NanoparticleXLSX writes the measurement of np and its reference on two
// sheets named after the identity. Identities longer than
// MaxSheetName-len(refSuffix) runes are shortened on both sheets so the
// names stay distinct.
func NanoparticleXLSX(path string, np *sample.Nanoparticle) error {
	base := sanitizeSheetName(np.Identity)
	if r := []rune(base); len(r) > MaxSheetName-len(refSuffix) {
		base = sanitizeSheetName(string(r[:MaxSheetName-len(refSuffix)]))
	}
	return MeasurementXLSX(path,
		Sheet{Name: base, Measurement: np.Meas},
		Sheet{Name: base + refSuffix, Measurement: np.Ref},
	)
}

// FactorsXLSX writes rescale factors next to their wavelengths on a single
// sheet.
func FactorsXLSX(path, sheet string, spectrum, factors []float64) error {
	if err := curve.CheckLen(spectrum, factors); err != nil {
		return err
	}
	names, err := sheetNames([]Sheet{{Name: sheet}})
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := addSheet(f, 0, names[0]); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(names[0])
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", FactorsHeader); err != nil {
		return err
	}
	for i := range spectrum {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, []interface{}{spectrum[i], factors[i]}); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeMeasurement(f *excelize.File, sheet string, m *spectra.Measurement) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", MeasurementHeader); err != nil {
		return err
	}
	for i := range m.Spectrum {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{m.Spectrum[i], m.Luminescence[i]}
		if m.HasStd() {
			row = append(row, m.Std[i])
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return sw.Flush()
}

// addSheet renames the default sheet for the first index and appends new
// sheets afterwards.
func addSheet(f *excelize.File, idx int, name string) error {
	if idx == 0 {
		return f.SetSheetName(f.GetSheetName(0), name)
	}
	_, err := f.NewSheet(name)
	return err
}

func sheetNames(sheets []Sheet) ([]string, error) {
	names := make([]string, len(sheets))
	seen := make(map[string]bool, len(sheets))
	for i, s := range sheets {
		name := sanitizeSheetName(s.Name)
		if name == "" {
			name = fmt.Sprintf("Sheet%d", i+1)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSheet, name)
		}
		seen[key] = true
		names[i] = name
	}
	return names, nil
}

func sanitizeSheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	name = strings.Trim(name, "'")
	if r := []rune(name); len(r) > MaxSheetName {
		name = string(r[:MaxSheetName])
	}
	return name
}
