// Package occupancygrid implements a fixed-resolution probabilistic 3D
// voxel grid that integrates range-sensor hits via log-odds updates along
// free-space ray segments.
//
// What:
//
//   - OccupancyGrid owns a dense resolution^3 array of OccupancyVoxel,
//     linearized by IndexOf(i,j,k) = i + j*R + k*R^2.
//   - Insert takes a point cloud and a sensor viewpoint, clamps points to
//     an optional max range, sweeps each ray against the voxel lattice to
//     find candidate free voxels (a 7-offset neighbour test per sample
//     step, since point sampling alone misses voxels a ray clips
//     diagonally), resolves free/occupied conflicts in favor of occupied,
//     and applies a log-odds update to every touched voxel.
//
// Why:
//
//   - Log-odds updates are additive under independent Bayesian evidence,
//     so repeated observations of the same voxel accumulate without
//     re-deriving a probability each time; clamping bounds keep the value
//     finite and numerically stable across long integration runs.
//   - The dense array is allocated once at resolution^3 and reused across
//     every Insert call — the only large allocation in the pipeline.
//
// Options:
//
//   - NewOccupancyGrid(voxelSize, resolution, origin, opts...) with
//     WithClampingThresholds, WithProbHitLog, WithProbMissLog,
//     WithOccProbThresLog, WithVisualizeFreeArea overriding the defaults
//     (clamping_min=-2.0, clamping_max=3.5, prob_hit_log=0.85,
//     prob_miss_log=-0.4, occ_prob_thres_log=0.0, visualize_free_area=true).
//
// Errors:
//
//	ErrInvalidVoxelSize  - voxelSize <= 0.
//	ErrInvalidResolution - resolution <= 0.
//
// Numeric/geometric out-of-range conditions (a point outside the grid, a
// ray clamped by max range) are never surfaced as errors: an out-of-grid
// point maps to the unknown/invalid sentinel grid index ([3]int{-1,-1,-1})
// and is silently discarded, matching the "absorbed silently" policy for
// this class of condition.
package occupancygrid
