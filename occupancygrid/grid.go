// File: grid.go
// Role: point<->voxel coordinate mapping and the read-only query surface
//       (IsOccupied/IsUnknown, Extract*/Count* family, bounds).
// AI-HINT (file):
//   - worldToGrid never panics: out-of-[0,R) results come back as
//     invalidIndex, and every caller here treats that as "unknown", never
//     as occupied.
//   - GetMaxBound deliberately uses resolution/2-1 where GetMinBound uses
//     resolution/2 (one-voxel asymmetry) — kept for compatibility; see
//     DESIGN.md's Open Question.

package occupancygrid

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/MingheCao/cupoch/internal/parallel"
)

// worldToGrid maps a world point to its integer voxel coordinate, shifted
// by resolution/2 so the grid is centred on origin. Returns invalidIndex if
// the mapped coordinate falls outside [0,resolution)^3.
func (g *OccupancyGrid) worldToGrid(p mgl64.Vec3) [3]int {
	half := g.resolution / 2
	rel := p.Sub(g.origin)
	idx := [3]int{
		int(math.Floor(rel[0]/g.voxelSize)) + half,
		int(math.Floor(rel[1]/g.voxelSize)) + half,
		int(math.Floor(rel[2]/g.voxelSize)) + half,
	}
	if !g.inBounds(idx) {
		return invalidIndex
	}
	return idx
}

// gridToWorld returns the world-space centre of voxel index idx.
func (g *OccupancyGrid) gridToWorld(idx [3]int) mgl64.Vec3 {
	half := float64(g.resolution / 2)
	return mgl64.Vec3{
		(float64(idx[0]) - half + 0.5) * g.voxelSize,
		(float64(idx[1]) - half + 0.5) * g.voxelSize,
		(float64(idx[2]) - half + 0.5) * g.voxelSize,
	}.Add(g.origin)
}

func (g *OccupancyGrid) inBounds(idx [3]int) bool {
	r := g.resolution
	return idx[0] >= 0 && idx[0] < r &&
		idx[1] >= 0 && idx[1] < r &&
		idx[2] >= 0 && idx[2] < r
}

func (g *OccupancyGrid) flatIndex(idx [3]int) int {
	r := g.resolution
	return idx[0] + idx[1]*r + idx[2]*r*r
}

func isKnown(p float64) bool   { return !math.IsNaN(p) }
func isOccupied(p, thresh float64) bool {
	return isKnown(p) && p > thresh
}
func isFree(p, thresh float64) bool {
	return isKnown(p) && p <= thresh
}

// IsOccupied reports whether point maps to a known, occupied voxel. Points
// outside the grid are reported as not occupied.
func (g *OccupancyGrid) IsOccupied(point mgl64.Vec3) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	idx := g.worldToGrid(point)
	if idx == invalidIndex {
		return false
	}
	v := g.voxels[g.flatIndex(idx)]
	return isOccupied(v.ProbLog, g.occProbThresLog)
}

// IsUnknown reports whether point maps to an unobserved voxel, or lies
// outside the grid entirely (out-of-range is "unknown", not "occupied").
func (g *OccupancyGrid) IsUnknown(point mgl64.Vec3) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	idx := g.worldToGrid(point)
	if idx == invalidIndex {
		return true
	}
	v := g.voxels[g.flatIndex(idx)]
	return !isKnown(v.ProbLog)
}

// CountKnown returns the number of voxels with a non-NaN probability.
func (g *OccupancyGrid) CountKnown() int { return g.countWhere(isKnown) }

// CountFree returns the number of known voxels at or below the
// free/occupied threshold.
func (g *OccupancyGrid) CountFree() int {
	g.mu.RLock()
	thresh := g.occProbThresLog
	g.mu.RUnlock()
	return g.countWhere(func(p float64) bool { return isFree(p, thresh) })
}

// CountOccupied returns the number of known voxels above the
// free/occupied threshold.
func (g *OccupancyGrid) CountOccupied() int {
	g.mu.RLock()
	thresh := g.occProbThresLog
	g.mu.RUnlock()
	return g.countWhere(func(p float64) bool { return isOccupied(p, thresh) })
}

func (g *OccupancyGrid) countWhere(pred func(float64) bool) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	counts := make([]int, numWorkers(len(g.voxels)))
	chunk := (len(g.voxels) + len(counts) - 1) / len(counts)
	parallel.ForEach(len(counts), func(w int) {
		start := w * chunk
		end := start + chunk
		if end > len(g.voxels) {
			end = len(g.voxels)
		}
		c := 0
		for i := start; i < end; i++ {
			if pred(g.voxels[i].ProbLog) {
				c++
			}
		}
		counts[w] = c
	})
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

func numWorkers(n int) int {
	if n == 0 {
		return 1
	}
	w := 8
	if w > n {
		w = n
	}
	return w
}

// ExtractKnownVoxels returns every known voxel, in ascending flat-index
// order (k slowest, then j, then i).
func (g *OccupancyGrid) ExtractKnownVoxels() []OccupancyVoxel {
	return g.extractWhere(isKnown)
}

// ExtractFreeVoxels returns every known, free voxel, in ascending
// flat-index order.
func (g *OccupancyGrid) ExtractFreeVoxels() []OccupancyVoxel {
	g.mu.RLock()
	thresh := g.occProbThresLog
	g.mu.RUnlock()
	return g.extractWhere(func(p float64) bool { return isFree(p, thresh) })
}

// ExtractOccupiedVoxels returns every known, occupied voxel, in ascending
// flat-index order.
func (g *OccupancyGrid) ExtractOccupiedVoxels() []OccupancyVoxel {
	g.mu.RLock()
	thresh := g.occProbThresLog
	g.mu.RUnlock()
	return g.extractWhere(func(p float64) bool { return isOccupied(p, thresh) })
}

// ExtractKnownVoxelIndices returns the GridIndex of every known voxel.
func (g *OccupancyGrid) ExtractKnownVoxelIndices() [][3]int {
	return indicesOf(g.ExtractKnownVoxels())
}

// ExtractFreeVoxelIndices returns the GridIndex of every known, free voxel.
func (g *OccupancyGrid) ExtractFreeVoxelIndices() [][3]int {
	return indicesOf(g.ExtractFreeVoxels())
}

// ExtractOccupiedVoxelIndices returns the GridIndex of every known,
// occupied voxel.
func (g *OccupancyGrid) ExtractOccupiedVoxelIndices() [][3]int {
	return indicesOf(g.ExtractOccupiedVoxels())
}

func indicesOf(vs []OccupancyVoxel) [][3]int {
	out := make([][3]int, len(vs))
	for i, v := range vs {
		out[i] = v.GridIndex
	}
	return out
}

// extractWhere compacts every voxel satisfying pred, in ascending
// GridIndex order (voxels are already stored in that order by
// construction, so a single linear pass suffices).
func (g *OccupancyGrid) extractWhere(pred func(float64) bool) []OccupancyVoxel {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]OccupancyVoxel, 0)
	for _, v := range g.voxels {
		if pred(v.ProbLog) {
			out = append(out, v)
		}
	}
	return out
}

// GetMinBound returns the world-space centre of the first known voxel in
// ascending flat-index order, or origin if no voxel is known. It is not a
// per-axis minimum over all known voxels.
func (g *OccupancyGrid) GetMinBound() mgl64.Vec3 {
	known := g.ExtractKnownVoxelIndices()
	if len(known) == 0 {
		return g.Origin()
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.gridToWorld(known[0])
}

// GetMaxBound returns a world-space point derived from the last known voxel
// in ascending flat-index order, or origin if no voxel is known. It is not
// a per-axis maximum over all known voxels. Deliberately carries a
// one-voxel asymmetry against GetMinBound (resolution/2-1 vs
// resolution/2) — see DESIGN.md's Open Question.
func (g *OccupancyGrid) GetMaxBound() mgl64.Vec3 {
	known := g.ExtractKnownVoxelIndices()
	if len(known) == 0 {
		return g.Origin()
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	last := known[len(known)-1]
	half := float64(g.resolution/2 - 1)
	return mgl64.Vec3{
		(float64(last[0]) - half + 0.5) * g.voxelSize,
		(float64(last[1]) - half + 0.5) * g.voxelSize,
		(float64(last[2]) - half + 0.5) * g.voxelSize,
	}.Add(g.origin)
}
