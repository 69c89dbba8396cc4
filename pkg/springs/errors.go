package springs

import (
	"fmt"
)

// Sentinel errors reported by the parser and record constructors.
// Returned errors wrap these; match them with errors.Is.
var (
	ErrInvalidSpring = fmt.Errorf("invalid spring")
	ErrInvalidGroup  = fmt.Errorf("invalid group size")
	ErrMissingField  = fmt.Errorf("missing field")
)

// LineError reports a record that failed to parse, with its position in the
// input stream.
type LineError struct {
	Line int    // 1-based line number
	Text string // the offending line, verbatim
	Err  error  // underlying cause, wraps one of the sentinels above
}

// Error implements error.
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

// Unwrap returns the underlying cause.
func (e *LineError) Unwrap() error { return e.Err }
