package curve

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// aspHeaderLines is the number of fixed header lines in an ASP file:
// point count, x start, x end and three instrument integers.
const aspHeaderLines = 6

// ReadASP reads a fixed-header ASP spectrum file.
//
// Layout, one value per line:
//
//	0     number of points n (int)
//	1     x start (float)
//	2     x end (float)
//	3..5  instrument metadata (int, ignored)
//	6..   n y values (float)
//
// X is reconstructed as n evenly spaced values between start and end.
func ReadASP(path string) (Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return Curve{}, err
	}
	defer f.Close()

	c, err := DecodeASP(f)
	if err != nil {
		return Curve{}, withPath(err, path)
	}
	return c, nil
}

// DecodeASP parses ASP content from r. See [ReadASP] for the layout.
func DecodeASP(r io.Reader) (Curve, error) {
	lines, err := readLines(r)
	if err != nil {
		return Curve{}, err
	}
	lines = trimTrailingBlank(lines)

	if len(lines) < aspHeaderLines {
		return Curve{}, &ParseError{
			Line: len(lines),
			Text: "",
			Err:  fmt.Errorf("file has %d lines, header needs %d", len(lines), aspHeaderLines),
		}
	}

	n, err := parseInt(lines, 0)
	if err != nil {
		return Curve{}, err
	}
	start, err := parseFloat(lines, 1)
	if err != nil {
		return Curve{}, err
	}
	end, err := parseFloat(lines, 2)
	if err != nil {
		return Curve{}, err
	}
	for i := 3; i < aspHeaderLines; i++ {
		if _, err := parseInt(lines, i); err != nil {
			return Curve{}, err
		}
	}

	body := lines[aspHeaderLines:]
	y := make([]float64, len(body))
	for i := range body {
		v, err := parseFloat(lines, aspHeaderLines+i)
		if err != nil {
			return Curve{}, err
		}
		y[i] = v
	}

	if len(y) != n {
		return Curve{}, &FormatError{
			Reason: fmt.Sprintf("expected %d y values, found %d", n, len(y)),
		}
	}

	return Curve{X: Linspace(start, end, n), Y: y}, nil
}

// WriteASP writes c to path in ASP layout with zeroed instrument fields.
func WriteASP(path string, c Curve) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeASP(f, c, [3]int{}); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// EncodeASP writes c in ASP layout. X must be evenly spaced, since only
// its end points are stored.
func EncodeASP(w io.Writer, c Curve, meta [3]int) error {
	if err := CheckLen(c.X, c.Y); err != nil {
		return err
	}
	n := c.Len()
	if n == 0 {
		return &FormatError{Reason: "cannot encode an empty curve"}
	}
	start, end := c.X[0], c.X[n-1]
	grid := Linspace(start, end, n)
	if ok, _ := SameGrid(c.X, grid, DefaultTolerance()); !ok {
		return &FormatError{Reason: "x values are not evenly spaced"}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", n)
	fmt.Fprintf(bw, "%s\n", formatFloat(start))
	fmt.Fprintf(bw, "%s\n", formatFloat(end))
	for _, m := range meta {
		fmt.Fprintf(bw, "%d\n", m)
	}
	for _, v := range c.Y {
		fmt.Fprintf(bw, "%s\n", formatFloat(v))
	}
	return bw.Flush()
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func parseInt(lines []string, i int) (int, error) {
	text := strings.TrimSpace(lines[i])
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, &ParseError{Line: i, Text: text, Err: err}
	}
	return v, nil
}

func parseFloat(lines []string, i int) (float64, error) {
	text := strings.TrimSpace(lines[i])
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &ParseError{Line: i, Text: text, Err: err}
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
