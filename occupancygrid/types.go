// File: types.go
// Role: OccupancyVoxel, OccupancyGrid struct, GridOption, sentinel errors,
//       constructors.
// Determinism:
//   - IndexOf and the internal flatIndex share one linearization, used by
//     every reader/writer, so voxel order is stable across calls for a
//     fixed resolution.
// Concurrency:
//   - mu guards voxels and the config fields together; Insert takes the
//     write lock for its whole pipeline (bulk phases inside are internally
//     parallel but the grid itself is not mutated by two Inserts at once).

package occupancygrid

import (
	"errors"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Sentinel errors for occupancygrid construction.
var (
	// ErrInvalidVoxelSize indicates a non-positive voxel size was requested.
	ErrInvalidVoxelSize = errors.New("occupancygrid: voxel size must be > 0")

	// ErrInvalidResolution indicates a non-positive resolution was requested.
	ErrInvalidResolution = errors.New("occupancygrid: resolution must be > 0")
)

// invalidIndex is the sentinel grid index for out-of-range or unassigned
// voxel lookups.
var invalidIndex = [3]int{-1, -1, -1}

// white is the default voxel color.
var white = mgl64.Vec3{1, 1, 1}

// Default configuration values (see doc.go).
const (
	DefaultVoxelSize         = 0.05
	DefaultResolution        = 512
	DefaultClampingMin       = -2.0
	DefaultClampingMax       = 3.5
	DefaultProbHitLog        = 0.85
	DefaultProbMissLog       = -0.4
	DefaultOccProbThresLog   = 0.0
	DefaultVisualizeFreeArea = true
)

// OccupancyVoxel is one voxel's observed state.
type OccupancyVoxel struct {
	// GridIndex is this voxel's integer coordinate in [0,R)^3; it is
	// {-1,-1,-1} until the voxel is first updated.
	GridIndex [3]int
	// ProbLog is the log-odds occupancy probability; NaN means unobserved.
	ProbLog float64
	// Color defaults to white.
	Color mgl64.Vec3
}

// OccupancyGrid is a dense resolution^3 probabilistic voxel grid.
type OccupancyGrid struct {
	mu sync.RWMutex

	voxelSize  float64
	resolution int
	origin     mgl64.Vec3

	clampingMin       float64
	clampingMax       float64
	probHitLog        float64
	probMissLog       float64
	occProbThresLog   float64
	visualizeFreeArea bool

	voxels []OccupancyVoxel // dense, length resolution^3
}

// GridOption configures an OccupancyGrid at construction time.
type GridOption func(*OccupancyGrid)

// WithClampingThresholds overrides the log-odds clamping bounds.
func WithClampingThresholds(min, max float64) GridOption {
	return func(g *OccupancyGrid) {
		g.clampingMin = min
		g.clampingMax = max
	}
}

// WithProbHitLog overrides the per-hit log-odds increment.
func WithProbHitLog(v float64) GridOption {
	return func(g *OccupancyGrid) { g.probHitLog = v }
}

// WithProbMissLog overrides the per-miss log-odds increment.
func WithProbMissLog(v float64) GridOption {
	return func(g *OccupancyGrid) { g.probMissLog = v }
}

// WithOccProbThresLog overrides the free/occupied log-odds boundary.
func WithOccProbThresLog(v float64) GridOption {
	return func(g *OccupancyGrid) { g.occProbThresLog = v }
}

// WithVisualizeFreeArea overrides the renderer hint (no effect on
// occupancy semantics; carried for API-contract parity).
func WithVisualizeFreeArea(v bool) GridOption {
	return func(g *OccupancyGrid) { g.visualizeFreeArea = v }
}

// NewOccupancyGrid creates a grid with the given voxel size, resolution,
// and origin, applying opts over the documented defaults. Fails with
// ErrInvalidVoxelSize or ErrInvalidResolution on non-positive inputs.
func NewOccupancyGrid(voxelSize float64, resolution int, origin mgl64.Vec3, opts ...GridOption) (*OccupancyGrid, error) {
	if voxelSize <= 0 {
		return nil, ErrInvalidVoxelSize
	}
	if resolution <= 0 {
		return nil, ErrInvalidResolution
	}

	g := &OccupancyGrid{
		voxelSize:         voxelSize,
		resolution:        resolution,
		origin:            origin,
		clampingMin:       DefaultClampingMin,
		clampingMax:        DefaultClampingMax,
		probHitLog:        DefaultProbHitLog,
		probMissLog:       DefaultProbMissLog,
		occProbThresLog:   DefaultOccProbThresLog,
		visualizeFreeArea: DefaultVisualizeFreeArea,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.allocate()

	return g, nil
}

// NewDefaultOccupancyGrid creates a grid with the documented defaults
// (voxel_size=0.05, resolution=512, origin=0).
func NewDefaultOccupancyGrid(opts ...GridOption) *OccupancyGrid {
	g, _ := NewOccupancyGrid(DefaultVoxelSize, DefaultResolution, mgl64.Vec3{}, opts...)
	return g
}

// ReconstructVoxels reallocates the dense array at a new size/resolution
// and resets every voxel to unobserved (NaN). Per the Non-goals, this is
// the only supported way to resize a grid — there is no incremental
// resize.
func (g *OccupancyGrid) ReconstructVoxels(voxelSize float64, resolution int) error {
	if voxelSize <= 0 {
		return ErrInvalidVoxelSize
	}
	if resolution <= 0 {
		return ErrInvalidResolution
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.voxelSize = voxelSize
	g.resolution = resolution
	g.allocate()

	return nil
}

// allocate (re)allocates g.voxels at resolution^3, all-NaN/unknown. Caller
// must hold mu.
func (g *OccupancyGrid) allocate() {
	n := g.resolution * g.resolution * g.resolution
	g.voxels = make([]OccupancyVoxel, n)
	for i := range g.voxels {
		g.voxels[i] = OccupancyVoxel{GridIndex: invalidIndex, ProbLog: math.NaN(), Color: white}
	}
}

// IndexOf linearizes a 3D integer grid coordinate: i + j*R + k*R^2.
func (g *OccupancyGrid) IndexOf(i, j, k int) int {
	g.mu.RLock()
	r := g.resolution
	g.mu.RUnlock()
	return i + j*r + k*r*r
}

// Resolution returns the grid's per-axis voxel count.
func (g *OccupancyGrid) Resolution() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.resolution
}

// VoxelSize returns the edge length of one voxel.
func (g *OccupancyGrid) VoxelSize() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.voxelSize
}

// Origin returns the world position of the grid's centre.
func (g *OccupancyGrid) Origin() mgl64.Vec3 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.origin
}
