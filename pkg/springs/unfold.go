// Package springs: unfolding.
//
// Unfolding replicates a record: the pattern is repeated with a single
// Unknown cell between consecutive copies, and the group list is repeated
// back to back. The separator is always Unknown, so it never forces a run to
// span two copies, but it does let a run end or start at a copy boundary;
// the unfolded count is therefore not in general a power of the plain count.
package springs

// DefaultMultiplicity is the number of copies produced by Unfold.
const DefaultMultiplicity = 5

// Unfold returns r replicated DefaultMultiplicity times. r is not modified.
func Unfold(r Record) Record {
	return UnfoldN(r, DefaultMultiplicity)
}

// UnfoldN returns r replicated k times: k copies of the pattern joined by
// k-1 Unknown separators, and k copies of the groups. k == 1 returns a copy
// of r; k < 1 returns the empty record.
func UnfoldN(r Record, k int) Record {
	if k < 1 {
		return Record{}
	}

	pattern := make([]Spring, 0, k*len(r.pattern)+k-1)
	groups := make([]int, 0, k*len(r.groups))
	for c := 0; c < k; c++ {
		if c > 0 {
			pattern = append(pattern, Unknown)
		}
		pattern = append(pattern, r.pattern...)
		groups = append(groups, r.groups...)
	}
	return Record{pattern: pattern, groups: groups}
}
