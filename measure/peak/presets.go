package peak

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cwbudde/algo-kira/curve"
)

// Band is a named FTIR absorption window in wavenumbers (cm⁻¹).
type Band struct {
	Name   string
	Window Window
}

// Standard bands for calcium phosphate powders.
var (
	CO3 = Band{Name: "CO3", Window: Window{Start: 1400, Stop: 1600}}
	PO3 = Band{Name: "PO3", Window: Window{Start: 900, Stop: 1100}}
)

// RatioPreset pairs a target band with the reference band it is normalized by.
type RatioPreset struct {
	Name      string
	Target    Band
	Reference Band
}

// CarbonatePhosphate is the CO3/PO3 area ratio.
var CarbonatePhosphate = RatioPreset{Name: "co3-po3", Target: CO3, Reference: PO3}

var presets = map[string]RatioPreset{
	CarbonatePhosphate.Name: CarbonatePhosphate,
}

// LookupPreset returns the preset registered under name (case-insensitive).
func LookupPreset(name string) (RatioPreset, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return RatioPreset{}, fmt.Errorf("peak: unknown ratio preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return p, nil
}

// PresetNames lists the registered preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Label renders the preset as "TARGET/REFERENCE".
func (p RatioPreset) Label() string {
	return p.Target.Name + "/" + p.Reference.Name
}

// Ratio evaluates the preset on c.
func (p RatioPreset) Ratio(c curve.Curve) (float64, error) {
	return Ratio(c.X, c.Y, p.Target.Window, p.Reference.Window)
}

// BandRatio evaluates preset r on c.
func BandRatio(c curve.Curve, r RatioPreset) (float64, error) {
	return r.Ratio(c)
}
