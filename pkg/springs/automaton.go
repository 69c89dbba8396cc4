// Package springs: automaton counter.
//
// The run-length constraint of a record is a regular language over the
// alphabet {operational, damaged}: any number of operational springs, then
// groups[0] damaged springs, then at least one operational spring, ... then
// groups[m-1] damaged springs, then any number of operational springs.
//
// CountAutomaton compiles that language into a DFA and walks the pattern
// once, carrying for every state the number of resolutions that reach it.
// Unknown cells feed both symbols forward. The count of a record is the sum
// over accepting states after the last cell.
//
// DFA contract (1-based):
//   - states are numbered 1..numStates; 0 means "no transition"
//   - symbols are 1 (operational) and 2 (damaged)
//   - delta[s-1][v] is the successor of state s on symbol v
package springs

import (
	"fmt"
)

const (
	symOperational = 1
	symDamaged     = 2
)

// runDFA accepts the damaged-run language of one group list.
type runDFA struct {
	numStates int
	start     int
	accept    []bool  // 1-based
	delta     [][]int // delta[s-1][sym]
}

// newRunDFA builds the DFA for groups.
//
// States, in order: a gap state before each group, the damaged-count states
// of that group, and a final gap state after the last group. The gap state
// loops on operational; the last damaged state of a group moves to the next
// gap on operational and has no damaged transition.
func newRunDFA(groups []int) *runDFA {
	numStates := 1
	for _, g := range groups {
		numStates += g + 1
	}

	d := &runDFA{
		numStates: numStates,
		start:     1,
		accept:    make([]bool, numStates+1),
		delta:     make([][]int, numStates),
	}
	for s := range d.delta {
		d.delta[s] = make([]int, 3) // index 0 unused
	}

	gap := 1
	for _, g := range groups {
		d.delta[gap-1][symOperational] = gap
		d.delta[gap-1][symDamaged] = gap + 1
		for c := 1; c < g; c++ {
			d.delta[gap+c-1][symDamaged] = gap + c + 1
		}
		last := gap + g
		next := last + 1
		d.delta[last-1][symOperational] = next
		gap = next
	}
	d.delta[gap-1][symOperational] = gap
	d.accept[gap] = true
	if len(groups) > 0 {
		d.accept[gap-1] = true // the last group may end at the last cell
	}
	return d
}

// roomFor reports whether n cells can hold groups with single separators.
// The DFA has one state per damaged cell, so oversized groups are rejected
// before it is built.
func roomFor(groups []int, n int) bool {
	total := 0
	for i, g := range groups {
		if i > 0 {
			total++
		}
		if g > n-total {
			return false
		}
		total += g
	}
	return true
}

// String describes the automaton for diagnostics.
func (d *runDFA) String() string {
	return fmt.Sprintf("runDFA(states=%d, start=%d)", d.numStates, d.start)
}

// CountAutomaton returns the number of arrangements of r by walking the
// pattern through the record's run-length DFA. It always agrees with Count.
func CountAutomaton(r Record) uint64 {
	if !roomFor(r.groups, len(r.pattern)) {
		return 0
	}
	d := newRunDFA(r.groups)

	cur := make([]uint64, d.numStates+1)
	next := make([]uint64, d.numStates+1)
	cur[d.start] = 1

	for _, cell := range r.pattern {
		clear(next)
		reachable := false
		for s := 1; s <= d.numStates; s++ {
			if cur[s] == 0 {
				continue
			}
			if cell != Damaged {
				if t := d.delta[s-1][symOperational]; t != 0 {
					next[t] += cur[s]
					reachable = true
				}
			}
			if cell != Operational {
				if t := d.delta[s-1][symDamaged]; t != 0 {
					next[t] += cur[s]
					reachable = true
				}
			}
		}
		if !reachable {
			return 0
		}
		cur, next = next, cur
	}

	var total uint64
	for s := 1; s <= d.numStates; s++ {
		if d.accept[s] {
			total += cur[s]
		}
	}
	return total
}
