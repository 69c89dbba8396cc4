// Package springs: arena and suffix memo table.
//
// The counting recursion only ever looks at suffixes of one record's pattern
// and groups. A suffix pair is therefore identified by two integer offsets
// (i, j) into an arena that stores the record once. Keys that describe the
// same remaining suffix compare equal whatever path reached them.
//
// The arena also carries precomputed lookups so that every recursive step is
// O(1):
//   - span[i]: number of consecutive non-Operational cells starting at i
//   - nextDamaged[i]: index of the first Damaged cell at or after i (n if none)
//   - need[j]: minimum pattern length able to hold groups[j:]
package springs

// arena is the per-call, read-only view of a record used by all strategies.
type arena struct {
	pattern     []Spring
	groups      []int
	span        []int
	nextDamaged []int
	need        []int
}

// newArena precomputes the suffix lookups for r.
func newArena(r Record) *arena {
	n, m := len(r.pattern), len(r.groups)
	a := &arena{
		pattern:     r.pattern,
		groups:      r.groups,
		span:        make([]int, n+1),
		nextDamaged: make([]int, n+1),
		need:        make([]int, m+1),
	}

	a.nextDamaged[n] = n
	for i := n - 1; i >= 0; i-- {
		if r.pattern[i] != Operational {
			a.span[i] = a.span[i+1] + 1
		}
		if r.pattern[i] == Damaged {
			a.nextDamaged[i] = i
		} else {
			a.nextDamaged[i] = a.nextDamaged[i+1]
		}
	}

	// need saturates at n+1 so that oversized groups cannot overflow it.
	for j := m - 1; j >= 0; j-- {
		g := r.groups[j]
		if g > n {
			a.need[j] = n + 1
			continue
		}
		a.need[j] = a.need[j+1] + g
		if j < m-1 {
			a.need[j]++ // separator before the next group
		}
		a.need[j] = min(a.need[j], n+1)
	}
	return a
}

// fits reports whether a run of length g can start at i: cells i..i+g-1
// exist and none is Operational, and cell i+g is absent or not Damaged.
func (a *arena) fits(i, g int) bool {
	n := len(a.pattern)
	if g > n-i || a.span[i] < g {
		return false
	}
	return i+g == n || a.pattern[i+g] != Damaged
}

// clean reports whether the pattern suffix starting at i holds no Damaged cell.
func (a *arena) clean(i int) bool {
	return a.nextDamaged[i] == len(a.pattern)
}

// SearchStats describes the work done by one memoized count.
type SearchStats struct {
	States int // distinct (pattern, groups) suffix pairs computed
	Hits   int // lookups answered from the memo table
	Misses int // lookups that had to be computed
}

// HitRatio returns Hits / (Hits + Misses), or 0 when nothing was looked up.
func (s SearchStats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// memoTable caches counts by suffix offsets in a flat (n+1)×(m+1) grid.
// It is owned by a single count call and never shared.
type memoTable struct {
	width int
	known []bool
	cells []uint64
	stats SearchStats
}

func newMemoTable(n, m int) *memoTable {
	size := (n + 1) * (m + 1)
	return &memoTable{
		width: m + 1,
		known: make([]bool, size),
		cells: make([]uint64, size),
	}
}

// get returns the cached count for suffix pair (i, j).
func (t *memoTable) get(i, j int) (uint64, bool) {
	k := i*t.width + j
	if t.known[k] {
		t.stats.Hits++
		return t.cells[k], true
	}
	t.stats.Misses++
	return 0, false
}

// put stores the count for suffix pair (i, j).
func (t *memoTable) put(i, j int, v uint64) {
	k := i*t.width + j
	if !t.known[k] {
		t.stats.States++
	}
	t.known[k] = true
	t.cells[k] = v
}
