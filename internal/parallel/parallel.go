package parallel

import (
	"runtime"
	"sort"
	"sync"
)

// ForEach invokes fn(i) for every i in [0,n) across up to GOMAXPROCS
// goroutines and blocks until all of them return. n<=1 runs fn inline with
// no goroutine overhead.
//
// Complexity: O(n/workers) wall-clock assuming fn is roughly uniform cost.
func ForEach(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if n == 1 {
		fn(0)
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(start int) {
			defer wg.Done()
			end := start + chunk
			if end > n {
				end = n
			}
			for i := start; i < end; i++ {
				fn(i)
			}
		}(w * chunk)
	}
	wg.Wait()
}

// SortIndices returns a permutation perm of [0,n) such that iterating perm
// in order visits rows in non-decreasing order per less(i,j), using a
// stable sort so rows that compare equal keep their relative order. Callers
// apply perm to every row-aligned side array themselves (see
// graph3d.permuteLines/permuteFloats/permuteVec3).
//
// Complexity: O(n log n).
func SortIndices(n int, less func(i, j int) bool) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return less(perm[a], perm[b])
	})
	return perm
}

// ReduceByKey groups the rows [0,numRows) by key(row) into numKeys buckets
// (keys must lie in [0,numKeys)) and calls reduce(key, row) once per row, in
// key-ascending order, then row-ascending order within a key. It returns the
// exclusive-scan offsets of bucket sizes (length numKeys+1) — the standard
// CSR offsets layout.
//
// Complexity: O(numRows + numKeys).
func ReduceByKey(numRows, numKeys int, key func(row int) int, reduce func(key, row int)) []int {
	counts := make([]int, numKeys+1)
	keys := make([]int, numRows)
	for row := 0; row < numRows; row++ {
		k := key(row)
		keys[row] = k
		counts[k+1]++
	}
	// exclusive scan
	for i := 0; i < numKeys; i++ {
		counts[i+1] += counts[i]
	}

	// cursor[k] walks from counts[k] to counts[k+1] as rows are placed.
	cursor := make([]int, numKeys)
	copy(cursor, counts[:numKeys])

	order := make([]int, numRows)
	for row := 0; row < numRows; row++ {
		k := keys[row]
		order[cursor[k]] = row
		cursor[k]++
	}
	for _, row := range order {
		reduce(keys[row], row)
	}

	return counts
}

// SortedSetDifference returns the elements of a that do not appear in b,
// preserving a's order. Both a and b must already be sorted ascending.
//
// Complexity: O(len(a)+len(b)).
func SortedSetDifference(a, b []int) []int {
	out := make([]int, 0, len(a))
	i, j := 0, 0
	for i < len(a) {
		for j < len(b) && b[j] < a[i] {
			j++
		}
		if j < len(b) && b[j] == a[i] {
			i++
			continue
		}
		out = append(out, a[i])
		i++
	}
	return out
}

// SortedDedup removes adjacent duplicates from an ascending sorted slice in
// place and returns the shortened slice.
//
// Complexity: O(len(s)).
func SortedDedup(s []int) []int {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
