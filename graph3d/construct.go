// File: construct.go
// Role: ConstructGraph — canonical sort, side-array permutation, CSR offset
//       derivation. Every mutator in mutators.go ends by calling this.
// AI-HINT (file):
//   - Must be idempotent: calling it twice in a row with no mutation in
//     between leaves lines/offsets unchanged.
//   - Fails with ErrEmptyGraph on zero edges; callers with zero edges and a
//     non-empty vertex set (isolated points) are expected to not call
//     ConstructGraph at all, or to tolerate the error.

package graph3d

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/MingheCao/cupoch/internal/parallel"
)

// ConstructGraph rebuilds the CSR layout from the current edge list: it
// sorts lines lexicographically by (src,dst), permutes every side array
// identically (stable sort, so row-alignment survives equal keys), fills
// default weights if none exist, and derives edgeIndexOffsets via a
// reduce-by-key + exclusive scan over edge sources.
//
// Fails with ErrEmptyGraph if the graph currently has no edges.
//
// Complexity: O(E log E) for the sort, O(V+E) for the offset scan.
func (g *Graph) ConstructGraph() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.constructLocked()
}

func (g *Graph) constructLocked() error {
	if len(g.lines) == 0 {
		g.constructed = false
		return ErrEmptyGraph
	}

	if len(g.edgeWeights) != len(g.lines) {
		g.edgeWeights = fillFloat(len(g.lines), defaultEdgeWeight)
	}

	perm := parallel.SortIndices(len(g.lines), func(i, j int) bool {
		return lineLess(g.lines[i], g.lines[j])
	})
	g.lines = permuteLines(g.lines, perm)
	g.edgeWeights = permuteFloats(g.edgeWeights, perm)
	if g.edgeColors != nil {
		g.edgeColors = permuteVec3(g.edgeColors, perm)
	}

	n := len(g.points)
	offsets := parallel.ReduceByKey(len(g.lines), n, func(row int) int {
		return g.lines[row][0]
	}, func(int, int) {
		// no per-row side effect needed; ReduceByKey's exclusive-scan
		// return value is all ConstructGraph uses.
	})
	g.edgeIndexOffsets = offsets
	g.constructed = true

	return nil
}

// lineLess orders two (src,dst) pairs lexicographically.
func lineLess(a, b [2]int) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

func fillFloat(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func permuteLines(lines [][2]int, perm []int) [][2]int {
	out := make([][2]int, len(perm))
	for i, p := range perm {
		out[i] = lines[p]
	}
	return out
}

func permuteFloats(vals []float64, perm []int) []float64 {
	out := make([]float64, len(perm))
	for i, p := range perm {
		out[i] = vals[p]
	}
	return out
}

func permuteVec3(vals []mgl64.Vec3, perm []int) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(perm))
	for i, p := range perm {
		out[i] = vals[p]
	}
	return out
}
