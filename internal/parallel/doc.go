// Package parallel provides the small set of data-parallel bulk primitives
// shared by graph3d and occupancygrid: a fan-out/fan-in ForEach, sort with a
// recoverable permutation, segmented reduce-by-key, and sorted-slice set
// difference.
//
// What:
//
//   - ForEach splits [0,n) across GOMAXPROCS workers and blocks until every
//     worker finishes — one phase, one barrier, no partial overlap with the
//     next phase.
//   - SortIndices sorts a permutation of [0,n) by a caller comparator and
//     returns it, so callers can apply the same permutation to every
//     row-aligned side array (weights, colors, ...).
//   - ReduceByKey groups row indices by an integer key in [0,numKeys) and
//     invokes a reducer once per (key, row) pair in key-grouped order; it is
//     the vehicle for CSR offset counting. SSSP's per-destination minimum
//     is computed in graph3d itself and does not use it.
//   - SortedSetDifference computes a\b for two ascending sorted int slices.
//
// Why:
//
//   - graph3d.ConstructGraph, the SSSP wavefront, and occupancygrid's
//     free/occupied voxel dedup each decompose into a "sort", "scan",
//     "reduce-by-key", or "set-difference" phase run to completion before
//     the next one starts. This package is the one place that vocabulary
//     is implemented, so every caller gets the same phase-barrier
//     semantics instead of reinventing goroutine fan-out per call site.
//
// Concurrency:
//
//   - ForEach is the only function that spawns goroutines. Everything else
//     is sequential (small, already cache-friendly, or logically serial
//     like a sort) — the only cross-phase requirement is that phase i
//     finishes before phase i+1 starts, not that every phase run on
//     multiple goroutines.
package parallel
