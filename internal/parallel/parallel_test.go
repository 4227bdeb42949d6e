package parallel_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MingheCao/cupoch/internal/parallel"
)

func TestForEachVisitsEveryIndexOnce(t *testing.T) {
	const n = 2000
	var seen [n]int32
	parallel.ForEach(n, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	})
	for i, c := range seen {
		require.Equalf(t, int32(1), c, "index %d visited %d times", i, c)
	}
}

func TestForEachSmallN(t *testing.T) {
	var got []int
	parallel.ForEach(1, func(i int) { got = append(got, i) })
	require.Equal(t, []int{0}, got)

	parallel.ForEach(0, func(i int) { t.Fatal("must not be called") })
}

func TestSortIndicesStable(t *testing.T) {
	// keys with ties; SortIndices must be a stable sort on the comparator.
	keys := []int{3, 1, 1, 2, 1}
	perm := parallel.SortIndices(len(keys), func(i, j int) bool { return keys[i] < keys[j] })

	got := make([]int, len(perm))
	for i, row := range perm {
		got[i] = keys[row]
	}
	require.Equal(t, []int{1, 1, 1, 2, 3}, got)
	// original relative order of the three 1's (rows 1,2,4) preserved.
	require.Equal(t, []int{1, 2, 4}, perm[:3])
}

func TestReduceByKeyOffsetsAndOrder(t *testing.T) {
	// rows 0..4 with keys 1,0,1,2,0
	rowKeys := []int{1, 0, 1, 2, 0}
	var visited []int
	offsets := parallel.ReduceByKey(len(rowKeys), 3, func(row int) int { return rowKeys[row] },
		func(key, row int) { visited = append(visited, row) })

	require.Equal(t, []int{0, 2, 4, 5}, offsets)
	// rows grouped by key ascending, then row ascending within key.
	require.Equal(t, []int{1, 4, 0, 2, 3}, visited)
}

func TestSortedSetDifference(t *testing.T) {
	a := []int{1, 2, 3, 5, 8}
	b := []int{2, 3, 3, 9}
	require.Equal(t, []int{1, 5, 8}, parallel.SortedSetDifference(a, b))
	require.Empty(t, parallel.SortedSetDifference(nil, b))
	require.Equal(t, a, parallel.SortedSetDifference(a, nil))
}

func TestSortedDedup(t *testing.T) {
	s := []int{1, 1, 2, 2, 2, 3}
	require.Equal(t, []int{1, 2, 3}, parallel.SortedDedup(s))
	require.Empty(t, parallel.SortedDedup(nil))
}

func TestReduceByKeyMatchesManualCount(t *testing.T) {
	rowKeys := []int{0, 0, 1, 3, 3, 3}
	offsets := parallel.ReduceByKey(len(rowKeys), 4, func(row int) int { return rowKeys[row] }, func(int, int) {})
	want := make([]int, 5)
	for _, k := range rowKeys {
		want[k+1]++
	}
	for i := 1; i < len(want); i++ {
		want[i] += want[i-1]
	}
	require.Equal(t, want, offsets)
}
