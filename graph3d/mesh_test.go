package graph3d_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/MingheCao/cupoch/graph3d"
)

type fakeMesh struct {
	verts []mgl64.Vec3
	tris  [][3]int
}

func (m fakeMesh) Vertices() []mgl64.Vec3 { return m.verts }
func (m fakeMesh) Triangles() [][3]int    { return m.tris }

func TestCreateFromTriangleMeshDedupesSharedEdge(t *testing.T) {
	// two triangles sharing edge (0,2): a square split by a diagonal.
	mesh := fakeMesh{
		verts: []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		tris:  [][3]int{{0, 1, 2}, {0, 2, 3}},
	}

	g, err := graph3d.CreateFromTriangleMesh(mesh)
	require.NoError(t, err)
	require.Equal(t, 4, g.VertexCount())

	// logical undirected edges: (0,1),(1,2),(2,0),(0,2) dup,(2,3),(3,0)
	// after dedup of the shared (0,2)/(2,0) edge: 5 logical edges -> 10 rows.
	require.Len(t, g.Lines(), 10)
}

func TestCreateFromTriangleMeshEmptyFails(t *testing.T) {
	mesh := fakeMesh{verts: []mgl64.Vec3{{0, 0, 0}}}
	_, err := graph3d.CreateFromTriangleMesh(mesh)
	require.ErrorIs(t, err, graph3d.ErrEmptyGraph)
}
