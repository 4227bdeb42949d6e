package occupancygrid_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/MingheCao/cupoch/occupancygrid"
)

func scenarioGrid(t *testing.T) *occupancygrid.OccupancyGrid {
	t.Helper()
	g, err := occupancygrid.NewOccupancyGrid(1.0, 4, mgl64.Vec3{0, 0, 0})
	require.NoError(t, err)
	return g
}

// concrete scenario 4: a single-point insert producing a free run of three
// voxels and one occupied voxel.
func TestInsertScenario4(t *testing.T) {
	g := scenarioGrid(t)
	cloud := occupancygrid.Points{{1.5, 0.5, 0.5}}
	g.Insert(cloud, mgl64.Vec3{-1.5, 0.5, 0.5}, -1)

	occIdx := g.ExtractOccupiedVoxelIndices()
	require.Equal(t, [][3]int{{3, 2, 2}}, occIdx)

	freeIdx := g.ExtractFreeVoxelIndices()
	require.Equal(t, [][3]int{{0, 2, 2}, {1, 2, 2}, {2, 2, 2}}, freeIdx)
}

// concrete scenario 5: clamping the range shortens the ray and the clamped
// reading contributes only free-space evidence (hit=false per step 1/3),
// so no voxel becomes occupied and only the reachable prefix is touched.
// See DESIGN.md's Open Question for the reasoning.
func TestInsertScenario5ClampedRange(t *testing.T) {
	g := scenarioGrid(t)
	cloud := occupancygrid.Points{{1.5, 0.5, 0.5}}
	g.Insert(cloud, mgl64.Vec3{-1.5, 0.5, 0.5}, 1.0)

	require.Empty(t, g.ExtractOccupiedVoxelIndices())
	freeIdx := g.ExtractFreeVoxelIndices()
	require.Equal(t, [][3]int{{0, 2, 2}, {1, 2, 2}}, freeIdx)
	require.False(t, g.IsOccupied(mgl64.Vec3{0.5, 0.5, 0.5}))
	require.True(t, g.IsUnknown(mgl64.Vec3{2.5, 0.5, 0.5}))
}

// scenario 6 analogue for occupancy grid: removing/no-op style property —
// inserting an empty cloud changes nothing.
func TestInsertEmptyCloudNoop(t *testing.T) {
	g := scenarioGrid(t)
	g.Insert(occupancygrid.Points{{1.5, 0.5, 0.5}}, mgl64.Vec3{-1.5, 0.5, 0.5}, -1)
	before := g.ExtractKnownVoxelIndices()

	g.Insert(occupancygrid.Points{}, mgl64.Vec3{-1.5, 0.5, 0.5}, -1)
	require.Equal(t, before, g.ExtractKnownVoxelIndices())
}

func TestProbLogStaysWithinClampingBounds(t *testing.T) {
	g := scenarioGrid(t)
	cloud := occupancygrid.Points{{1.5, 0.5, 0.5}}
	for i := 0; i < 20; i++ {
		g.Insert(cloud, mgl64.Vec3{-1.5, 0.5, 0.5}, -1)
	}
	for _, v := range g.ExtractKnownVoxels() {
		require.GreaterOrEqual(t, v.ProbLog, occupancygrid.DefaultClampingMin)
		require.LessOrEqual(t, v.ProbLog, occupancygrid.DefaultClampingMax)
	}
}

func TestCountKnownEqualsCountFreePlusOccupied(t *testing.T) {
	g := scenarioGrid(t)
	g.Insert(occupancygrid.Points{{1.5, 0.5, 0.5}}, mgl64.Vec3{-1.5, 0.5, 0.5}, -1)
	require.Equal(t, g.CountKnown(), g.CountFree()+g.CountOccupied())
	require.Equal(t, len(g.ExtractKnownVoxelIndices()), g.CountKnown())
}

// round-trip: two identical inserts raise each hit voxel's prob_log by
// exactly 2*prob_hit_log before clamping kicks in.
func TestRoundTripDoublesHitIncrement(t *testing.T) {
	g := scenarioGrid(t)
	cloud := occupancygrid.Points{{1.5, 0.5, 0.5}}
	g.Insert(cloud, mgl64.Vec3{-1.5, 0.5, 0.5}, -1)
	g.Insert(cloud, mgl64.Vec3{-1.5, 0.5, 0.5}, -1)

	occ := g.ExtractOccupiedVoxels()
	require.Len(t, occ, 1)
	require.InDelta(t, 2*occupancygrid.DefaultProbHitLog, occ[0].ProbLog, 1e-12)
}

func TestRoundTripIdempotentUnderClamping(t *testing.T) {
	g := scenarioGrid(t)
	cloud := occupancygrid.Points{{1.5, 0.5, 0.5}}
	for i := 0; i < 50; i++ {
		g.Insert(cloud, mgl64.Vec3{-1.5, 0.5, 0.5}, -1)
	}
	occ := g.ExtractOccupiedVoxels()
	require.Len(t, occ, 1)
	require.Equal(t, occupancygrid.DefaultClampingMax, occ[0].ProbLog)
}

// free-voxel dominance: a voxel hit as occupied in an insertion never stays
// in the free set of that same insertion.
func TestOccupiedWinsOverFreeInSameInsertion(t *testing.T) {
	g := scenarioGrid(t)
	cloud := occupancygrid.Points{{1.5, 0.5, 0.5}}
	g.Insert(cloud, mgl64.Vec3{-1.5, 0.5, 0.5}, -1)

	free := g.ExtractFreeVoxelIndices()
	occ := g.ExtractOccupiedVoxelIndices()
	for _, o := range occ {
		for _, f := range free {
			require.NotEqual(t, o, f)
		}
	}
}

func TestNewOccupancyGridRejectsBadConfig(t *testing.T) {
	_, err := occupancygrid.NewOccupancyGrid(0, 4, mgl64.Vec3{})
	require.ErrorIs(t, err, occupancygrid.ErrInvalidVoxelSize)
	_, err = occupancygrid.NewOccupancyGrid(1, 0, mgl64.Vec3{})
	require.ErrorIs(t, err, occupancygrid.ErrInvalidResolution)
}

func TestReconstructVoxelsResetsToUnknown(t *testing.T) {
	g := scenarioGrid(t)
	g.Insert(occupancygrid.Points{{1.5, 0.5, 0.5}}, mgl64.Vec3{-1.5, 0.5, 0.5}, -1)
	require.NotZero(t, g.CountKnown())

	require.NoError(t, g.ReconstructVoxels(0.5, 8))
	require.Equal(t, 0, g.CountKnown())
	require.Equal(t, 8, g.Resolution())
}

func TestGetBoundsDefaultToOriginWhenEmpty(t *testing.T) {
	g := scenarioGrid(t)
	require.Equal(t, g.Origin(), g.GetMinBound())
	require.Equal(t, g.Origin(), g.GetMaxBound())
}

func TestOutOfRangePointIsUnknownNotOccupied(t *testing.T) {
	g := scenarioGrid(t)
	far := mgl64.Vec3{1000, 1000, 1000}
	require.False(t, g.IsOccupied(far))
	require.True(t, g.IsUnknown(far))
}

func TestDegenerateZeroRangeSkipsFreeSweep(t *testing.T) {
	g := scenarioGrid(t)
	viewpoint := mgl64.Vec3{0.5, 0.5, 0.5}
	g.Insert(occupancygrid.Points{viewpoint}, viewpoint, -1)

	require.Empty(t, g.ExtractFreeVoxelIndices())
	occ := g.ExtractOccupiedVoxelIndices()
	require.Len(t, occ, 1)
}

func TestAddVoxelRepeatedCallsAccumulate(t *testing.T) {
	g := scenarioGrid(t)
	idx := [3]int{1, 1, 1}
	g.AddVoxel(idx, true)
	g.AddVoxel(idx, true)
	v := g.ExtractOccupiedVoxels()
	require.Len(t, v, 1)
	require.InDelta(t, 2*occupancygrid.DefaultProbHitLog, v[0].ProbLog, 1e-12)
}

func TestProbLogNeverNaNOnceKnown(t *testing.T) {
	g := scenarioGrid(t)
	g.AddVoxel([3]int{2, 2, 2}, false)
	for _, v := range g.ExtractKnownVoxels() {
		require.False(t, math.IsNaN(v.ProbLog))
	}
}
