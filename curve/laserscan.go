package curve

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// SpectralDataMarker separates the spectrometer header from the data rows
// of a laser-scan file.
const SpectralDataMarker = ">>>>>Begin Spectral Data<<<<<"

// ReadLaserScan reads a tab-separated spectrometer export. Every line up to
// [SpectralDataMarker] is header; the remaining lines are "x\ty" rows.
func ReadLaserScan(path string) (Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return Curve{}, err
	}
	defer f.Close()

	c, err := DecodeLaserScan(f)
	if err != nil {
		return Curve{}, withPath(err, path)
	}
	return c, nil
}

// DecodeLaserScan parses laser-scan content from r.
func DecodeLaserScan(r io.Reader) (Curve, error) {
	lines, err := readLines(r)
	if err != nil {
		return Curve{}, err
	}

	start := -1
	for i, line := range lines {
		if strings.TrimRight(line, "\r") == SpectralDataMarker {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return Curve{}, &FormatError{Reason: "spectral data marker not found"}
	}

	x := make([]float64, 0, len(lines)-start)
	y := make([]float64, 0, len(lines)-start)
	for i := start; i < len(lines); i++ {
		text := strings.TrimSpace(lines[i])
		if text == "" {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < 2 {
			return Curve{}, &ParseError{Line: i, Text: text, Err: fmt.Errorf("want 2 tab-separated columns, got %d", len(fields))}
		}
		xv, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return Curve{}, &ParseError{Line: i, Text: text, Err: err}
		}
		yv, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return Curve{}, &ParseError{Line: i, Text: text, Err: err}
		}
		x = append(x, xv)
		y = append(y, yv)
	}

	return Curve{X: x, Y: y}, nil
}

// ScanHeader describes the spectrometer header written ahead of the data
// marker. Readers ignore it; it exists so generated files look like real
// instrument exports.
type ScanHeader struct {
	Source          string
	User            string
	Spectrometer    string
	IntegrationTime float64 // seconds
}

// WriteLaserScan writes c to path as a laser-scan export.
func WriteLaserScan(path string, c Curve, h ScanHeader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeLaserScan(f, c, h); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// EncodeLaserScan writes the header, the data marker and one "x\ty" row
// per sample with three decimals.
func EncodeLaserScan(w io.Writer, c Curve, h ScanHeader) error {
	if err := CheckLen(c.X, c.Y); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Data from %s Node\n", h.Source)
	fmt.Fprintf(bw, "User: %s\n", h.User)
	fmt.Fprintf(bw, "Spectrometer: %s\n", h.Spectrometer)
	fmt.Fprintf(bw, "Integration Time (sec): %E\n", h.IntegrationTime)
	fmt.Fprintf(bw, "XAxis mode: Wavelengths\n")
	fmt.Fprintf(bw, "Number of Pixels in Spectrum: %d\n", c.Len())
	fmt.Fprintf(bw, "%s\n", SpectralDataMarker)
	for i := range c.X {
		fmt.Fprintf(bw, "%.3f\t%.3f\n", c.X[i], c.Y[i])
	}
	return bw.Flush()
}
