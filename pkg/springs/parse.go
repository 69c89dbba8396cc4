// Package springs: record parsing.
//
// Line format:
//
//	<pattern> <groups>
//
// where <pattern> is a string over '#', '.', '?' and <groups> is a
// comma-separated list of positive decimal integers. Fields are separated by
// ASCII whitespace; fields after the second are ignored.
package springs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrorPolicy selects how ReadRecords handles malformed lines.
type ErrorPolicy int

const (
	// FailFast aborts at the first malformed line.
	FailFast ErrorPolicy = iota
	// CollectAll parses every line and reports all malformed lines together.
	CollectAll
)

// String implements fmt.Stringer.
func (p ErrorPolicy) String() string {
	switch p {
	case FailFast:
		return "fail_fast"
	case CollectAll:
		return "collect_all"
	default:
		return fmt.Sprintf("ErrorPolicy(%d)", int(p))
	}
}

// ParseErrorPolicy converts "fail_fast" or "collect_all" into an ErrorPolicy.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch s {
	case "", "fail_fast":
		return FailFast, nil
	case "collect_all":
		return CollectAll, nil
	default:
		return 0, fmt.Errorf("unknown error policy %q", s)
	}
}

// ParseRecord parses a single "pattern groups" line.
func ParseRecord(line string) (Record, error) {
	fields := strings.FieldsFunc(line, isASCIISpace)
	if len(fields) < 1 {
		return Record{}, fmt.Errorf("%w: pattern", ErrMissingField)
	}
	if len(fields) < 2 {
		return Record{}, fmt.Errorf("%w: groups", ErrMissingField)
	}

	pattern := make([]Spring, 0, len(fields[0]))
	for _, ch := range fields[0] {
		s, err := SpringFromRune(ch)
		if err != nil {
			return Record{}, err
		}
		pattern = append(pattern, s)
	}

	tokens := strings.Split(fields[1], ",")
	groups := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		g, err := strconv.Atoi(tok)
		if err != nil {
			return Record{}, fmt.Errorf("%w: %q is not a number", ErrInvalidGroup, tok)
		}
		if g < 1 {
			return Record{}, fmt.Errorf("%w: %d must be positive", ErrInvalidGroup, g)
		}
		groups = append(groups, g)
	}

	return Record{pattern: pattern, groups: groups}, nil
}

// isASCIISpace reports whether r separates fields: space, tab, line feed,
// form feed or carriage return. Other Unicode spaces belong to the field.
func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

// ReadRecords parses one record per line from r.
//
// Lines holding only ASCII whitespace are skipped. Malformed lines are reported as
// *LineError values. With FailFast the first one is returned together with
// the records parsed before it; with CollectAll every good record is
// returned along with errors.Join of all line errors.
func ReadRecords(r io.Reader, policy ErrorPolicy) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		records []Record
		errs    []error
		lineNo  int
	)
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		if strings.TrimFunc(text, isASCIISpace) == "" {
			continue
		}
		rec, err := ParseRecord(text)
		if err != nil {
			lineErr := &LineError{Line: lineNo, Text: text, Err: err}
			if policy == FailFast {
				return records, lineErr
			}
			errs = append(errs, lineErr)
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("read records: %w", err)
	}
	return records, errors.Join(errs...)
}
