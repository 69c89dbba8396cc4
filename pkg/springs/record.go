// Package springs: condition records.
//
// A Record pairs a spring pattern with the ordered lengths of the damaged
// runs it must contain. Records are immutable: constructors copy their
// inputs and accessors return copies, so a Record can be shared freely
// between goroutines.
package springs

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Record is an immutable condition record.
//
// Invariants:
//   - every group length is >= 1
//   - every pattern entry is Operational, Damaged or Unknown
//
// A record with no groups admits exactly the resolutions that contain no
// damaged spring at all.
type Record struct {
	pattern []Spring
	groups  []int
}

// NewRecord constructs a Record from a pattern and group lengths.
//
// Both slices are copied. Returns ErrInvalidGroup if a group length is not
// positive and ErrInvalidSpring if the pattern holds an undefined state.
func NewRecord(pattern []Spring, groups []int) (Record, error) {
	for i, s := range pattern {
		if !s.valid() {
			return Record{}, fmt.Errorf("%w: pattern[%d] holds %v", ErrInvalidSpring, i, s)
		}
	}
	for i, g := range groups {
		if g < 1 {
			return Record{}, fmt.Errorf("%w: groups[%d]=%d must be positive", ErrInvalidGroup, i, g)
		}
	}
	return Record{
		pattern: slices.Clone(pattern),
		groups:  slices.Clone(groups),
	}, nil
}

// MustRecord parses line with ParseRecord and panics on error.
// Intended for tests, examples and package-level fixtures.
func MustRecord(line string) Record {
	r, err := ParseRecord(line)
	if err != nil {
		panic(err)
	}
	return r
}

// Pattern returns a copy of the spring pattern.
func (r Record) Pattern() []Spring { return slices.Clone(r.pattern) }

// Groups returns a copy of the damaged-run lengths.
func (r Record) Groups() []int { return slices.Clone(r.groups) }

// Len returns the number of spring positions.
func (r Record) Len() int { return len(r.pattern) }

// Unknowns returns the number of Unknown positions.
func (r Record) Unknowns() int {
	n := 0
	for _, s := range r.pattern {
		if s == Unknown {
			n++
		}
	}
	return n
}

// Equal reports whether r and other hold the same pattern and groups.
func (r Record) Equal(other Record) bool {
	return slices.Equal(r.pattern, other.pattern) && slices.Equal(r.groups, other.groups)
}

// PatternString returns the pattern in its text form, e.g. "???.###".
func (r Record) PatternString() string {
	var b strings.Builder
	b.Grow(len(r.pattern))
	for _, s := range r.pattern {
		b.WriteRune(s.Rune())
	}
	return b.String()
}

// GroupsString returns the groups in their text form, e.g. "1,1,3".
func (r Record) GroupsString() string {
	parts := make([]string, len(r.groups))
	for i, g := range r.groups {
		parts[i] = strconv.Itoa(g)
	}
	return strings.Join(parts, ",")
}

// String serializes the record as "pattern groups". For any record with at
// least one group, ParseRecord(r.String()) yields a record equal to r.
func (r Record) String() string {
	return r.PatternString() + " " + r.GroupsString()
}
