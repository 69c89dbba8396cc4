// Package springs: bottom-up table counter.
//
// CountTable evaluates the same recurrence as Count without recursion. The
// table has (n+1)×(m+1) cells, cell (i, j) holding the arrangements of
// pattern[i:] against groups[j:]. Rows are filled for decreasing i, so every
// cell only reads rows that are already complete.
package springs

// CountTable returns the number of arrangements of r using a bottom-up
// dynamic-programming table. It always agrees with Count.
func CountTable(r Record) uint64 {
	a := newArena(r)
	n, m := len(a.pattern), len(a.groups)
	width := m + 1
	dp := make([]uint64, (n+1)*width)
	at := func(i, j int) uint64 { return dp[i*width+j] }

	// Row n: only the empty group suffix matches the empty pattern.
	dp[n*width+m] = 1

	for i := n - 1; i >= 0; i-- {
		if a.clean(i) {
			dp[i*width+m] = 1
		}
		for j := m - 1; j >= 0; j-- {
			var run uint64
			if a.pattern[i] != Operational && a.fits(i, a.groups[j]) {
				end := i + a.groups[j]
				if end == n {
					run = at(n, j+1)
				} else {
					run = at(end+1, j+1)
				}
			}

			var v uint64
			switch a.pattern[i] {
			case Operational:
				v = at(i+1, j)
			case Unknown:
				v = at(i+1, j) + run
			case Damaged:
				v = run
			}
			dp[i*width+j] = v
		}
	}
	return at(0, 0)
}
