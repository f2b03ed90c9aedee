package curve

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks. [ParseError] matches ErrParse and
// [FormatError] matches ErrFormat.
var (
	ErrParse         = errors.New("curve: malformed numeric field")
	ErrFormat        = errors.New("curve: structural format mismatch")
	ErrShapeMismatch = errors.New("curve: arrays do not align")
)

// ParseError reports a line that could not be parsed as the expected
// numeric type, or a file that is too short to hold a header.
type ParseError struct {
	Path string // empty when decoding from a reader
	Line int    // zero-based line index
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	loc := "input"
	if e.Path != "" {
		loc = e.Path
	}
	if e.Err != nil {
		return fmt.Sprintf("curve: %s line %d: cannot parse %q: %v", loc, e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("curve: %s line %d: cannot parse %q", loc, e.Line, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// FormatError reports a structural mismatch such as a wrong point count or
// a missing data marker.
type FormatError struct {
	Path   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("curve: %s: %s", e.Path, e.Reason)
	}
	return "curve: " + e.Reason
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// CheckLen returns ErrShapeMismatch when any of the slices differs in length
// from the first one.
func CheckLen(slices ...[]float64) error {
	if len(slices) == 0 {
		return nil
	}
	n := len(slices[0])
	for i, s := range slices[1:] {
		if len(s) != n {
			return fmt.Errorf("%w: slice %d has %d points, want %d", ErrShapeMismatch, i+1, len(s), n)
		}
	}
	return nil
}

func withPath(err error, path string) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.Path = path
		return pe
	}
	var fe *FormatError
	if errors.As(err, &fe) {
		fe.Path = path
		return fe
	}
	return err
}
