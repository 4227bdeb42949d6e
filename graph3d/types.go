// File: types.go
// Role: Graph struct, GraphOption, sentinel errors, NewGraph constructors.
// Determinism:
//   - Vertex order is caller-supplied and never reordered.
//   - Edge order is only canonical (sorted) after ConstructGraph succeeds.
// Concurrency:
//   - A single mu guards points/lines/side-arrays/offsets together, because
//     ConstructGraph must see and permute all of them as one atomic unit;
//     a split vertex/edge lock wouldn't help since no operation here only
//     ever touches one side.

package graph3d

import (
	"errors"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Sentinel errors for graph3d operations.
var (
	// ErrEmptyGraph indicates ConstructGraph was called on a graph with no edges.
	ErrEmptyGraph = errors.New("graph3d: graph has no edges")

	// ErrSizeMismatch indicates a weights slice length does not match the
	// edges slice length.
	ErrSizeMismatch = errors.New("graph3d: size mismatch between edges and side array")

	// ErrNotConstructed indicates an operation that requires CSR offsets
	// (e.g. DijkstraPaths) was called before ConstructGraph succeeded.
	ErrNotConstructed = errors.New("graph3d: graph has not been constructed")

	// ErrVertexIndexOutOfRange indicates a vertex index argument fell
	// outside [0, VertexCount()).
	ErrVertexIndexOutOfRange = errors.New("graph3d: vertex index out of range")
)

// defaultEdgeWeight is the weight assigned to an edge added without an
// explicit weight, and the fill value ConstructGraph uses when no weights
// have ever been supplied.
const defaultEdgeWeight = 1.0

// white is the default edge/node color.
var white = mgl64.Vec3{1, 1, 1}

// Graph is an in-memory directed or undirected weighted graph over 3D
// vertices, with an edge list kept in CSR-ready form after ConstructGraph.
//
// Invariants after a successful ConstructGraph (see construct.go):
//  1. lines is sorted in lexicographic (src,dst) order.
//  2. edgeWeights and edgeColors (if present) stay row-aligned with lines.
//  3. edgeIndexOffsets has length len(points)+1, offsets[0]==0,
//     offsets[n]==len(lines), and is monotonically non-decreasing.
//  4. If isDirected is false, every (a,b) in lines has a matching (b,a)
//     with equal weight.
type Graph struct {
	mu sync.RWMutex

	points     []mgl64.Vec3 // vertices, index 0..n-1
	nodeColors []mgl64.Vec3 // optional; nil until first PaintNodeColor(s)

	lines       [][2]int     // edges, (src,dst) index pairs
	edgeWeights []float64    // parallel to lines
	edgeColors  []mgl64.Vec3 // optional; nil until first PaintEdgeColor(s)

	edgeIndexOffsets []int // CSR offsets, length len(points)+1

	isDirected  bool
	constructed bool
}

// GraphOption configures a Graph at construction time.
type GraphOption func(g *Graph)

// WithDirected marks the graph directed: AddEdge/AddEdges no longer
// materialize the reverse pair, and RemoveEdge/RemoveEdges/PaintEdgeColor
// only ever match the edge as given. Default is undirected.
func WithDirected() GraphOption {
	return func(g *Graph) { g.isDirected = true }
}

// NewGraph creates an empty graph (no vertices, no edges) with the given
// options applied. Vertices must be added by constructing from points via
// NewGraphFromPoints, since graph3d vertices carry no identity beyond their
// position and index.
//
// Complexity: O(1).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewGraphFromPoints creates a graph whose vertices are exactly the given
// points, indexed in the order supplied, with no edges yet. Callers add
// edges with AddEdge/AddEdges (which also run ConstructGraph) before
// running SSSP.
//
// Complexity: O(len(points)).
func NewGraphFromPoints(points []mgl64.Vec3, opts ...GraphOption) *Graph {
	g := NewGraph(opts...)
	g.points = append([]mgl64.Vec3(nil), points...)
	return g
}

// VertexCount returns the number of vertices (points) in the graph.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.points)
}

// EdgeCount returns the number of directed edge rows currently stored
// (an undirected logical edge counts as 2).
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.lines)
}

// IsDirected reports whether the graph was constructed with WithDirected.
func (g *Graph) IsDirected() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.isDirected
}

// IsConstructed reports whether the CSR layout reflects the current edge
// list (i.e. ConstructGraph has run since the last structural mutation).
func (g *Graph) IsConstructed() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.constructed
}

// Points returns a copy of the vertex position slice.
func (g *Graph) Points() []mgl64.Vec3 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]mgl64.Vec3(nil), g.points...)
}

// Lines returns a copy of the current (possibly unsorted, if not yet
// constructed) edge list.
func (g *Graph) Lines() [][2]int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([][2]int(nil), g.lines...)
}

// GetEdgeIndexOffsets returns a copy of the CSR offsets. The slice is empty
// if ConstructGraph has never succeeded.
func (g *Graph) GetEdgeIndexOffsets() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]int(nil), g.edgeIndexOffsets...)
}

// SetEdgeIndexOffsets overwrites the CSR offsets directly. This is an escape
// hatch for callers that computed offsets out-of-band (e.g. restoring from
// a snapshot); it does not validate monotonicity or length, matching the
// host API's "trust the caller" contract for this accessor.
func (g *Graph) SetEdgeIndexOffsets(offsets []int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.edgeIndexOffsets = append([]int(nil), offsets...)
}

// GetEdgeWeights returns a copy of the edge weight array.
func (g *Graph) GetEdgeWeights() []float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]float64(nil), g.edgeWeights...)
}

// SetEdgeWeights overwrites the edge weight array directly without
// re-running ConstructGraph. Callers that change weights this way are
// responsible for keeping the array row-aligned with Lines().
func (g *Graph) SetEdgeWeights(weights []float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.edgeWeights = append([]float64(nil), weights...)
}

// GetEdgeColors returns a copy of the edge color array, or nil if no
// PaintEdgeColor(s) call has ever materialized it.
func (g *Graph) GetEdgeColors() []mgl64.Vec3 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.edgeColors == nil {
		return nil
	}
	return append([]mgl64.Vec3(nil), g.edgeColors...)
}

// GetNodeColors returns a copy of the node color array, or nil if no
// PaintNodeColor(s) call has ever materialized it.
func (g *Graph) GetNodeColors() []mgl64.Vec3 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.nodeColors == nil {
		return nil
	}
	return append([]mgl64.Vec3(nil), g.nodeColors...)
}
