// Package springs: spring states.
//
// Each position in a condition record holds one of three states. The text
// form uses one rune per state:
//
//	'.'  Operational
//	'#'  Damaged
//	'?'  Unknown
package springs

import (
	"fmt"
)

// Spring is the state of a single spring position.
type Spring uint8

const (
	// Operational springs never belong to a damaged run.
	Operational Spring = iota
	// Damaged springs always belong to a damaged run.
	Damaged
	// Unknown springs may be resolved to either state.
	Unknown
)

// SpringFromRune converts a pattern rune into a Spring.
// Returns ErrInvalidSpring for runes outside '#', '.', '?'.
func SpringFromRune(r rune) (Spring, error) {
	switch r {
	case '.':
		return Operational, nil
	case '#':
		return Damaged, nil
	case '?':
		return Unknown, nil
	default:
		return 0, fmt.Errorf("%w: cannot convert %q to a spring", ErrInvalidSpring, r)
	}
}

// Rune returns the pattern rune for s.
func (s Spring) Rune() rune {
	switch s {
	case Operational:
		return '.'
	case Damaged:
		return '#'
	case Unknown:
		return '?'
	default:
		return '!'
	}
}

// String implements fmt.Stringer.
func (s Spring) String() string {
	switch s {
	case Operational:
		return "Operational"
	case Damaged:
		return "Damaged"
	case Unknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Spring(%d)", uint8(s))
	}
}

// valid reports whether s is one of the three defined states.
func (s Spring) valid() bool {
	return s <= Unknown
}
