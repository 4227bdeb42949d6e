// File: sssp.go
// Role: DijkstraPaths/DijkstraPath — parallel label-correcting wavefront
//       relaxation over the CSR edge layout. Named DijkstraPaths for
//       API-contract parity; it is not a priority-queue Dijkstra (see
//       doc.go).
// AI-HINT (file):
//   - Terminates in at most n-1 iterations for a finite graph with
//     non-negative weights. Negative weights are unsupported (undefined
//     behavior, not validated).
//   - Tie-break on equal distances favors the first source encountered in
//     the per-destination reduction: a later candidate replaces the kept
//     one only when its distance is strictly smaller.

package graph3d

import (
	"math"

	"github.com/MingheCao/cupoch/internal/parallel"
)

// SSSPResult holds one vertex's shortest-path state relative to a given
// source: the best known distance and the predecessor on that path.
// PrevIndex is the source's own index for the source itself, and -1 for
// any vertex with no predecessor assigned yet (unreached).
type SSSPResult struct {
	ShortestDistance float64
	PrevIndex        int
}

// relaxedEdge is a pending relaxation result: a candidate distance to some
// destination vertex, and the source that produced it.
type relaxedEdge struct {
	dist float64
	from int
}

// ssspRunner holds the mutable iteration state for one DijkstraPaths call.
type ssspRunner struct {
	g   *Graph
	end int // -1 if no target (full single-source mode)

	dist       []float64
	prev       []int
	openFlags  []bool
	numOpen    int
	edgeByDst  []int // row index, in dst-sorted order, of lines sorted by destination
	edgeOfRow  []int // edgeTable[j]: row index in dst-sorted order for src-sorted row j
	resTmp     []relaxedEdge
	resTmpHas  []bool
}

// DijkstraPaths computes shortest distances (and predecessors) from start
// to every vertex. If end >= 0, the wavefront may exit early once no open
// vertex can still improve on dist[end] (targeted mode); the returned
// result vector still covers every vertex reached before the early exit.
//
// Fails with ErrNotConstructed if ConstructGraph has not succeeded since
// the last mutation, and ErrVertexIndexOutOfRange if start or end (when
// >=0) is outside [0, VertexCount()).
func (g *Graph) DijkstraPaths(start int, end int) ([]SSSPResult, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.constructed {
		return nil, ErrNotConstructed
	}
	n := len(g.points)
	if start < 0 || start >= n {
		return nil, ErrVertexIndexOutOfRange
	}
	if end >= n {
		return nil, ErrVertexIndexOutOfRange
	}

	r := newSSSPRunner(g, end)
	r.init(start)
	r.run()

	out := make([]SSSPResult, n)
	for v := 0; v < n; v++ {
		out[v] = SSSPResult{ShortestDistance: r.dist[v], PrevIndex: r.prev[v]}
	}
	return out, nil
}

// DijkstraPathsHost is the host-visible accessor for DijkstraPaths, kept
// for API-contract parity with a device/host split some callers may expect
// (there is no separate device buffer here: it returns the same result by
// value).
func (g *Graph) DijkstraPathsHost(start int, end int) ([]SSSPResult, error) {
	return g.DijkstraPaths(start, end)
}

// DijkstraPath reconstructs the vertex sequence from start to end by
// walking prev_index backward from the result of DijkstraPaths(start, end).
// Returns an empty (nil) sequence if end is unreachable from start.
func (g *Graph) DijkstraPath(start, end int) ([]int, error) {
	results, err := g.DijkstraPaths(start, end)
	if err != nil {
		return nil, err
	}

	if results[end].PrevIndex < 0 && start != end {
		return nil, nil
	}

	path := []int{end}
	cur := end
	for cur != start {
		cur = results[cur].PrevIndex
		if cur < 0 {
			return nil, nil
		}
		path = append(path, cur)
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

func newSSSPRunner(g *Graph, end int) *ssspRunner {
	n := len(g.points)
	m := len(g.lines)

	// edgeByDst: row indices into g.lines, sorted by destination vertex.
	edgeByDst := parallel.SortIndices(m, func(i, j int) bool {
		return g.lines[i][1] < g.lines[j][1]
	})
	// edgeOfRow[j] (j is a src-sorted row index, which is just the row
	// index itself since ConstructGraph already sorts lines by src) gives
	// the position of that same row within edgeByDst — i.e. the permutation
	// from "row in src order" to "row in dst order" the relax phase needs
	// to scatter a candidate into dst-grouped position.
	posInDst := make([]int, m)
	for pos, row := range edgeByDst {
		posInDst[row] = pos
	}

	return &ssspRunner{
		g:         g,
		end:       end,
		dist:      make([]float64, n),
		prev:      make([]int, n),
		openFlags: make([]bool, n),
		edgeByDst: edgeByDst,
		edgeOfRow: posInDst,
		resTmp:    make([]relaxedEdge, m),
		resTmpHas: make([]bool, m),
	}
}

func (r *ssspRunner) init(start int) {
	for v := range r.dist {
		r.dist[v] = math.Inf(1)
		r.prev[v] = -1
	}
	r.dist[start] = 0
	r.prev[start] = start
	r.openFlags[start] = true
	r.numOpen = 1
}

// run executes the wavefront until no vertex is open (or the targeted
// early-exit condition holds).
func (r *ssspRunner) run() {
	g := r.g
	n := len(g.points)
	m := len(g.lines)

	for r.numOpen > 0 {
		if r.end >= 0 && !r.anyOpenBeatsEnd() {
			return
		}

		// Phase: relax. Every open vertex u (flag cleared on entry) writes
		// a candidate for each outgoing edge into resTmp at edge_table[j].
		for i := range r.resTmpHas {
			r.resTmpHas[i] = false
		}
		open := make([]int, 0, r.numOpen)
		for v := 0; v < n; v++ {
			if r.openFlags[v] {
				open = append(open, v)
				r.openFlags[v] = false
			}
		}
		r.numOpen = 0

		parallel.ForEach(len(open), func(i int) {
			u := open[i]
			lo, hi := g.edgeIndexOffsets[u], g.edgeIndexOffsets[u+1]
			for j := lo; j < hi; j++ {
				dstRow := r.edgeOfRow[j]
				r.resTmp[dstRow] = relaxedEdge{dist: r.dist[u] + g.edgeWeights[j], from: u}
				r.resTmpHas[dstRow] = true
			}
		})

		// Phase: segmented reduce by destination. resTmp is indexed in
		// dst-sorted order (edgeByDst), so a contiguous scan groups rows by
		// destination; pick the row-minimum per destination.
		resTmpS := make(map[int]relaxedEdge, m)
		for pos, row := range r.edgeByDst {
			if !r.resTmpHas[pos] {
				continue
			}
			dst := g.lines[row][1]
			cand := r.resTmp[pos]
			best, ok := resTmpS[dst]
			if !ok || cand.dist < best.dist {
				resTmpS[dst] = cand
			}
		}

		// Phase: commit. Vertices whose reduced candidate improves on
		// dist[v] adopt it and reopen.
		for v, cand := range resTmpS {
			if cand.dist < r.dist[v] {
				r.dist[v] = cand.dist
				r.prev[v] = cand.from
				r.openFlags[v] = true
				r.numOpen++
			}
		}
	}
}

// anyOpenBeatsEnd reports whether some open vertex still has a distance
// strictly less than dist[end], i.e. whether continuing could still
// improve the target's distance.
func (r *ssspRunner) anyOpenBeatsEnd() bool {
	endDist := r.dist[r.end]
	for v, open := range r.openFlags {
		if open && r.dist[v] < endDist {
			return true
		}
	}
	return false
}
