package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/cwbudde/algo-kira/curve"
)

// Peak describes one Gaussian emission band: Scale times the normal
// density with mean Mu and standard deviation Sigma.
type Peak struct {
	Scale float64
	Mu    float64
	Sigma float64
}

// Wavelengths returns the 2048-pixel grid of the lab spectrometer.
func Wavelengths() []float64 {
	return curve.Linspace(340.154, 1022.689, 2048)
}

// Luminescence sums the given peaks over x.
func Luminescence(x []float64, peaks ...Peak) []float64 {
	out := make([]float64, len(x))
	for _, p := range peaks {
		n := distuv.Normal{Mu: p.Mu, Sigma: p.Sigma}
		for i, v := range x {
			out[i] += p.Scale * n.Prob(v)
		}
	}
	return out
}

// ReferenceLine generates a smooth, strictly positive control trace across
// x, shaped like a half sine period scaled by scale.
func ReferenceLine(x []float64, scale float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}
	start, stop := x[0], x[len(x)-1]
	for i, v := range x {
		out[i] = scale * (math.Sin(2*v/(start-stop)+3.14) + 1.1)
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Constant returns a slice of length n filled with value.
func Constant(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// WriteScans writes one laser-scan file per trace into dir (created if
// needed) and returns the file paths.
func WriteScans(t *testing.T, dir string, x []float64, traces ...[]float64) []string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	paths := make([]string, len(traces))
	for i, y := range traces {
		name := fmt.Sprintf("repetition_%d.txt", i)
		path := filepath.Join(dir, name)
		h := curve.ScanHeader{Source: name, User: "lab", Spectrometer: "FLMS15016", IntegrationTime: 0.3}
		if err := curve.WriteLaserScan(path, curve.Curve{X: x, Y: y}, h); err != nil {
			t.Fatalf("write scan %s: %v", path, err)
		}
		paths[i] = path
	}
	return paths
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Metadata renders a metadata.yaml sidecar that references refFolder.
func Metadata(identity, refFolder string) string {
	return fmt.Sprintf(`identity: %s
dopant: Ln
dopant_concentration: 1
# folder where the reference lives, relative to the parent directory
reference: %s
annealing_time: null
annealing_temp: 400
d_xrd: 40.2
`, identity, refFolder)
}
