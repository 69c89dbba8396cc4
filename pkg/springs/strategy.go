package springs

import (
	"fmt"
)

// Strategy selects the algorithm used to count arrangements.
// All strategies return identical counts; they differ only in cost profile.
type Strategy int

const (
	// Memo is the memoized recursion over suffix pairs.
	Memo Strategy = iota
	// Table is the bottom-up dynamic-programming table.
	Table
	// Automaton walks the pattern through the run-length DFA.
	Automaton
)

// Strategies lists every strategy in declaration order.
var Strategies = []Strategy{Memo, Table, Automaton}

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case Memo:
		return "memo"
	case Table:
		return "table"
	case Automaton:
		return "automaton"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts a strategy name into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q (want memo, table or automaton)", name)
}

// Count counts the arrangements of r with strategy s.
// Unknown strategies fall back to Memo.
func (s Strategy) Count(r Record) uint64 {
	switch s {
	case Table:
		return CountTable(r)
	case Automaton:
		return CountAutomaton(r)
	default:
		return Count(r)
	}
}
