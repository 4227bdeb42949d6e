// File: insert.go
// Role: the Insert pipeline (range clamping, free-voxel ray sweep,
//       occupied-voxel resolution, conflict resolution, log-odds update)
//       and the AddVoxel(s) primitives it is built from.
// AI-HINT (file):
//   - The 7-voxel sweep (center + 6 face neighbours) is a pragmatic
//     substitute for exact 3D-DDA traversal: point samples alone miss
//     voxels a ray clips diagonally, and face-neighbour AABB tests catch
//     those without a full DDA walk. A correct DDA implementation would
//     also satisfy the contract (superset of entered voxels, dedup still
//     applied) but is not what this file does.
//   - n_div==0 (every ranged point coincides with the viewpoint) skips the
//     free-voxel sweep entirely; those points still flow through step 3 as
//     ordinary hits (d=0 <= any non-negative max_range), so no special
//     casing is needed to "mark them as hits".

package occupancygrid

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/MingheCao/cupoch/internal/parallel"
)

// neighborOffsets is the compile-time 7-offset table: the sampled voxel
// itself plus its six axis-aligned face neighbours.
var neighborOffsets = [7][3]int{
	{0, 0, 0},
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// rangedPoint is a point after range clamping: its (possibly clamped)
// position, its distance from the viewpoint, and whether it is a real hit
// or a clamped miss.
type rangedPoint struct {
	pos mgl64.Vec3
	d   float64
	hit bool
}

// Insert integrates a point cloud observed from viewpoint into the grid,
// optionally clamping ranges beyond maxRange (maxRange<0 means unlimited).
func (g *OccupancyGrid) Insert(cloud PointCloud, viewpoint mgl64.Vec3, maxRange float64) {
	points := cloud.Points()
	if len(points) == 0 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	ranged := clampRanges(points, viewpoint, maxRange)

	free := g.computeFreeVoxels(ranged, viewpoint)
	occupied := g.computeOccupiedVoxels(ranged)

	free = parallel.SortedSetDifference(free, occupied)

	g.addVoxelsLocked(free, false)
	g.addVoxelsLocked(occupied, true)
}

// clampRanges implements step 1: points beyond maxRange are replaced by
// the point at distance maxRange along the same ray, marked as a miss.
func clampRanges(points []mgl64.Vec3, viewpoint mgl64.Vec3, maxRange float64) []rangedPoint {
	out := make([]rangedPoint, len(points))
	parallel.ForEach(len(points), func(i int) {
		p := points[i]
		d := p.Sub(viewpoint).Len()
		if maxRange < 0 || d <= maxRange {
			out[i] = rangedPoint{pos: p, d: d, hit: true}
			return
		}
		if d == 0 {
			out[i] = rangedPoint{pos: viewpoint, d: 0, hit: false}
			return
		}
		clamped := viewpoint.Add(p.Sub(viewpoint).Mul(maxRange / d))
		out[i] = rangedPoint{pos: clamped, d: maxRange, hit: false}
	})
	return out
}

// computeFreeVoxels implements step 2: the 7-voxel ray sweep producing a
// deduplicated, in-bounds set of candidate free voxel flat indices.
func (g *OccupancyGrid) computeFreeVoxels(ranged []rangedPoint, viewpoint mgl64.Vec3) []int {
	maxD := 0.0
	for _, rp := range ranged {
		if rp.d > maxD {
			maxD = rp.d
		}
	}
	if maxD == 0 {
		return nil // degenerate: every point coincides with the viewpoint
	}
	nDiv := int(math.Ceil(maxD / g.voxelSize))
	if nDiv == 0 {
		return nil
	}

	// Each point contributes up to (nDiv+1)*7 candidates; collect per-point
	// slices in parallel, then merge, sort, and dedup once.
	perPoint := make([][]int, len(ranged))
	parallel.ForEach(len(ranged), func(i int) {
		perPoint[i] = g.sweepOnePoint(ranged[i], viewpoint, nDiv)
	})

	total := 0
	for _, s := range perPoint {
		total += len(s)
	}
	merged := make([]int, 0, total)
	for _, s := range perPoint {
		merged = append(merged, s...)
	}
	sort.Ints(merged)
	return parallel.SortedDedup(merged)
}

// sweepOnePoint produces the free-voxel candidates for a single ranged
// point: for each of the nDiv+1 sample steps along (viewpoint, point), test
// the 7 neighbour voxels around the sample against the segment.
func (g *OccupancyGrid) sweepOnePoint(rp rangedPoint, viewpoint mgl64.Vec3, nDiv int) []int {
	step := rp.pos.Sub(viewpoint).Mul(1.0 / float64(nDiv))

	out := make([]int, 0, (nDiv+1)*7)
	for j := 0; j <= nDiv; j++ {
		sample := viewpoint.Add(step.Mul(float64(j)))
		base := g.baseVoxelCoord(sample)

		for _, off := range neighborOffsets {
			neighbor := [3]int{base[0] + off[0], base[1] + off[1], base[2] + off[2]}
			center := g.voxelCenterUnshifted(neighbor)
			if !g.rayAABBIntersectsSegment(viewpoint, rp.pos, center) {
				continue
			}
			shifted := g.shiftByHalfResolution(neighbor)
			if !g.inBounds(shifted) {
				continue
			}
			out = append(out, g.flatIndex(shifted))
		}
	}
	return out
}

// computeOccupiedVoxels implements step 3: the enclosing voxel of every
// ranged point with hit==true, deduplicated.
func (g *OccupancyGrid) computeOccupiedVoxels(ranged []rangedPoint) []int {
	candidates := make([]int, 0, len(ranged))
	for _, rp := range ranged {
		if !rp.hit {
			continue
		}
		idx := g.worldToGrid(rp.pos)
		if idx == invalidIndex {
			continue
		}
		candidates = append(candidates, g.flatIndex(idx))
	}
	sort.Ints(candidates)
	return parallel.SortedDedup(candidates)
}

// baseVoxelCoord returns the unshifted integer lattice coordinate (relative
// to origin, not yet offset by resolution/2) containing world point p.
func (g *OccupancyGrid) baseVoxelCoord(p mgl64.Vec3) [3]int {
	rel := p.Sub(g.origin)
	return [3]int{
		int(math.Floor(rel[0] / g.voxelSize)),
		int(math.Floor(rel[1] / g.voxelSize)),
		int(math.Floor(rel[2] / g.voxelSize)),
	}
}

// voxelCenterUnshifted returns the world-space centre of the voxel at
// unshifted lattice coordinate coord.
func (g *OccupancyGrid) voxelCenterUnshifted(coord [3]int) mgl64.Vec3 {
	return mgl64.Vec3{
		(float64(coord[0]) + 0.5) * g.voxelSize,
		(float64(coord[1]) + 0.5) * g.voxelSize,
		(float64(coord[2]) + 0.5) * g.voxelSize,
	}.Add(g.origin)
}

func (g *OccupancyGrid) shiftByHalfResolution(coord [3]int) [3]int {
	half := g.resolution / 2
	return [3]int{coord[0] + half, coord[1] + half, coord[2] + half}
}

// rayAABBIntersectsSegment is the standard slab test, restricted to
// segment parameter t in [0,1] (it is a segment test, not an infinite-ray
// test): does the segment from a to b cross the axis-aligned box of side
// g.voxelSize centred at center?
func (g *OccupancyGrid) rayAABBIntersectsSegment(a, b, center mgl64.Vec3) bool {
	half := g.voxelSize / 2
	boxMin := mgl64.Vec3{center[0] - half, center[1] - half, center[2] - half}
	boxMax := mgl64.Vec3{center[0] + half, center[1] + half, center[2] + half}

	dir := b.Sub(a)
	tMin, tMax := 0.0, 1.0

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if a[axis] < boxMin[axis] || a[axis] > boxMax[axis] {
				return false
			}
			continue
		}
		inv := 1.0 / dir[axis]
		t1 := (boxMin[axis] - a[axis]) * inv
		t2 := (boxMax[axis] - a[axis]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return false
		}
	}

	return true
}

// AddVoxel applies a single log-odds observation to the voxel at idx.
func (g *OccupancyGrid) AddVoxel(idx [3]int, occupied bool) {
	g.AddVoxels([][3]int{idx}, occupied)
}

// AddVoxels applies a log-odds observation to every voxel in idxs: each
// voxel's prob_log (treated as 0 if NaN) is incremented by prob_hit_log (if
// occupied) or prob_miss_log (otherwise), then clamped to
// [clamping_min, clamping_max]. Callers must ensure idxs contains no
// duplicates within one call — Insert's free/occupied dedup upstream
// guarantees this, so no voxel needs more than one increment per call and
// no atomics are required.
func (g *OccupancyGrid) AddVoxels(idxs [][3]int, occupied bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	flat := make([]int, 0, len(idxs))
	for _, idx := range idxs {
		if !g.inBounds(idx) {
			continue
		}
		flat = append(flat, g.flatIndex(idx))
	}
	g.addVoxelsLocked(flat, occupied)
}

// addVoxelsLocked applies the log-odds update given flat (already
// resolution-bound-checked) voxel indices. Caller must hold mu.
func (g *OccupancyGrid) addVoxelsLocked(flat []int, occupied bool) {
	delta := g.probMissLog
	if occupied {
		delta = g.probHitLog
	}

	parallel.ForEach(len(flat), func(i int) {
		fi := flat[i]
		p := g.voxels[fi].ProbLog
		if math.IsNaN(p) {
			p = 0
		}
		p += delta
		p = clamp(p, g.clampingMin, g.clampingMax)
		g.voxels[fi].ProbLog = p
		g.voxels[fi].GridIndex = g.unflatten(fi)
	})
}

func (g *OccupancyGrid) unflatten(flat int) [3]int {
	r := g.resolution
	k := flat / (r * r)
	rem := flat % (r * r)
	j := rem / r
	i := rem % r
	return [3]int{i, j, k}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
