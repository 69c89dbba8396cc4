// Package springs: memoized arrangement counter.
//
// count(pattern, groups) is defined by case analysis on the first cell:
//
//  1. groups empty: 1 if no Damaged cell remains, else 0.
//     pattern empty (groups not): 0.
//  2. Operational head: count(pattern[1:], groups).
//     Unknown or Damaged head, with g = groups[0]:
//     skip = count(pattern[1:], groups)            (Unknown only)
//     run  = count(pattern[g+1:], groups[1:])      if a run of g fits here
//     where a run fits when cells 0..g-1 exist and are not Operational and
//     cell g is absent or not Damaged. A run ending at the pattern end
//     recurses into the empty suffix.
//     Unknown: skip + run. Damaged: run.
//  3. Results are memoized by suffix pair.
//
// The number of distinct states is bounded by (n+1)×(m+1) and each state does
// O(1) work, so counting is O(n×m) for n cells and m groups.
package springs

// Count returns the number of arrangements of r using the memoized
// recursion. It is total and deterministic; r is not modified.
func Count(r Record) uint64 {
	n, _ := CountWithStats(r)
	return n
}

// CountWithStats is Count that also reports memo table statistics.
// The memo table is created for this call and discarded on return.
func CountWithStats(r Record) (uint64, SearchStats) {
	c := &memoCounter{
		arena: newArena(r),
		memo:  newMemoTable(len(r.pattern), len(r.groups)),
	}
	n := c.count(0, 0)
	return n, c.memo.stats
}

type memoCounter struct {
	*arena
	memo *memoTable
}

// count returns the arrangements of pattern[i:] against groups[j:].
func (c *memoCounter) count(i, j int) uint64 {
	n, m := len(c.pattern), len(c.groups)
	if j == m {
		if c.clean(i) {
			return 1
		}
		return 0
	}
	if i == n || n-i < c.need[j] {
		return 0
	}

	if v, ok := c.memo.get(i, j); ok {
		return v
	}

	var total uint64
	switch c.pattern[i] {
	case Operational:
		total = c.count(i+1, j)
	case Unknown:
		total = c.count(i+1, j) + c.run(i, j)
	case Damaged:
		total = c.run(i, j)
	}

	c.memo.put(i, j, total)
	return total
}

// run counts arrangements in which groups[j] starts at cell i.
func (c *memoCounter) run(i, j int) uint64 {
	g := c.groups[j]
	if !c.fits(i, g) {
		return 0
	}
	end := i + g
	if end == len(c.pattern) {
		return c.count(end, j+1)
	}
	return c.count(end+1, j+1)
}
