package sample

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// MetadataFile is the sidecar name expected in every nanoparticle folder.
const MetadataFile = "metadata.yaml"

// ErrMetadata is returned when the sidecar is missing keys or has values
// of the wrong type.
var ErrMetadata = errors.New("sample: invalid metadata")

var requiredKeys = []string{
	"identity",
	"dopant",
	"dopant_concentration",
	"reference",
	"annealing_time",
	"annealing_temp",
	"d_xrd",
}

var nullableKeys = map[string]bool{
	"annealing_time": true,
	"annealing_temp": true,
}

// Metadata is the content of a nanoparticle sidecar.
//
//	identity: NaYF₄
//	dopant: Ln
//	dopant_concentration: 1
//	reference: NaYF4_Yb   # sibling folder holding the reference scans
//	annealing_time: 0
//	annealing_temp: 0
//	d_xrd: 40.2
type Metadata struct {
	Identity            string   `yaml:"identity"`
	Dopant              string   `yaml:"dopant"`
	DopantConcentration float64  `yaml:"dopant_concentration"`
	Reference           string   `yaml:"reference"`
	AnnealingTime       *float64 `yaml:"annealing_time"`
	AnnealingTemp       *float64 `yaml:"annealing_temp"`
	DXRD                float64  `yaml:"d_xrd"`
}

// ReadMetadata reads and validates a sidecar file.
func ReadMetadata(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, err
	}
	md, err := ParseMetadata(data)
	if err != nil {
		return Metadata{}, fmt.Errorf("%s: %w", path, err)
	}
	return md, nil
}

// ParseMetadata decodes sidecar content. All required keys must be present.
// Only the annealing values may be null.
func ParseMetadata(data []byte) (Metadata, error) {
	var keys map[string]any
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrMetadata, err)
	}

	var missing, null []string
	for _, k := range requiredKeys {
		v, ok := keys[k]
		switch {
		case !ok:
			missing = append(missing, k)
		case v == nil && !nullableKeys[k]:
			null = append(null, k)
		}
	}
	if len(missing) > 0 {
		return Metadata{}, fmt.Errorf("%w: missing keys %s", ErrMetadata, strings.Join(missing, ", "))
	}
	if len(null) > 0 {
		return Metadata{}, fmt.Errorf("%w: keys must not be null: %s", ErrMetadata, strings.Join(null, ", "))
	}

	var md Metadata
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&md); err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrMetadata, err)
	}
	if md.Reference == "" {
		return Metadata{}, fmt.Errorf("%w: reference folder is empty", ErrMetadata)
	}
	return md, nil
}

// Annealing describes a heat treatment. Either value may be unknown (nil),
// which is distinct from zero.
type Annealing struct {
	Temperature *float64 // °C
	Time        *float64 // hours
}

// AnnealingFromMetadata extracts the annealing values of md.
func AnnealingFromMetadata(md Metadata) Annealing {
	return Annealing{Temperature: copyFloat(md.AnnealingTemp), Time: copyFloat(md.AnnealingTime)}
}

func (a Annealing) String() string {
	return fmt.Sprintf("%s °C, %s h", formatOptional(a.Temperature), formatOptional(a.Time))
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func formatOptional(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%g", *v)
}
