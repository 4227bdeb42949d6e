// Package graph3d implements a directed/undirected weighted graph over 3D
// vertices, backed by a CSR (compressed sparse row) edge layout that is
// rebuilt after every structural mutation, plus a parallel label-correcting
// shortest-path solver over that layout.
//
// What:
//
//   - Graph owns an ordered sequence of 3D points (vertices, indexed
//     0..n-1) and an ordered edge list of (src,dst) index pairs, with
//     row-aligned weight and color side arrays.
//   - ConstructGraph canonicalizes the edge list (lexicographic sort),
//     permutes every side array identically, and derives CSR offsets via a
//     reduce-by-key + exclusive scan over sources.
//   - DijkstraPaths computes single-source shortest distances with a
//     data-parallel wavefront relaxation; the name is kept for
//     API-contract parity, but it is not a priority-queue Dijkstra.
//
// Why:
//
//   - CSR trades mutation cost (every mutator re-sorts and re-scans) for
//     query simplicity and cache-friendly SSSP: rows for vertex v are the
//     contiguous slice lines[offsets[v]:offsets[v+1]].
//   - Batch mutators (AddEdges/RemoveEdges) amortize that rebuild cost
//     across many edges in one call.
//
// Options:
//
//   - NewGraphFromPoints(points, WithDirected()) — directed; default undirected
//     (every logical edge materialized as both (a,b) and (b,a)).
//
// Errors:
//
//	ErrEmptyGraph            - ConstructGraph called with zero edges.
//	ErrSizeMismatch          - weights slice length != edges slice length.
//	ErrNotConstructed        - DijkstraPaths/DijkstraPath before ConstructGraph.
//	ErrVertexIndexOutOfRange - an index argument is outside [0,n).
package graph3d
