package rmq

import "math/bits"

// Index is a sparse table over a depth array: table[j][i] holds the index
// of the minimum-depth element in the window [i, i+2^j).
type Index struct {
	depth []int
	table [][]int
}

// Build constructs the sparse table in O(n log n) time and space. depth is
// retained by reference; callers must not mutate it afterward.
func Build(depth []int) *Index {
	n := len(depth)
	ix := &Index{depth: depth}
	if n == 0 {
		return ix
	}

	levels := bits.Len(uint(n))
	ix.table = make([][]int, levels)

	ix.table[0] = make([]int, n)
	for i := range ix.table[0] {
		ix.table[0][i] = i
	}

	for j := 1; j < levels; j++ {
		half := 1 << (j - 1)
		width := n - (1 << j) + 1
		row := make([]int, width)
		prev := ix.table[j-1]
		for i := 0; i < width; i++ {
			a := prev[i]
			b := prev[i+half]
			if depth[a] < depth[b] {
				row[i] = a
			} else {
				row[i] = b
			}
		}
		ix.table[j] = row
	}

	return ix
}

// Query returns the index of the minimum-depth element in [l, r]
// (inclusive, l <= r). On a tie between the two overlapping windows the
// left window's index wins (the <= below); within a window, Build's <
// comparison keeps the right-hand index on ties, so the index returned
// for a tied minimum is not always the smallest such position.
func (ix *Index) Query(l, r int) int {
	if l > r {
		l, r = r, l
	}
	if l == r {
		return l
	}

	length := r - l + 1
	k := bits.Len(uint(length)) - 1
	a := ix.table[k][l]
	b := ix.table[k][r-(1<<k)+1]
	if ix.depth[a] <= ix.depth[b] {
		return a
	}
	return b
}
