// File: mesh.go
// Role: CreateFromTriangleMesh factory and the external TriangleMesh
//       collaborator interface (mesh loading/construction is out of scope;
//       only this interface contract is specified).

package graph3d

import "github.com/go-gl/mathgl/mgl64"

// TriangleMesh is the minimal external-collaborator contract
// CreateFromTriangleMesh needs: a vertex position list and a list of
// triangles as vertex-index triples. Implementations are responsible for
// everything else (loading, normals, UVs, ...).
type TriangleMesh interface {
	// Vertices returns the mesh's vertex positions.
	Vertices() []mgl64.Vec3

	// Triangles returns triangles as triples of indices into Vertices().
	Triangles() [][3]int
}

// CreateFromTriangleMesh builds an undirected graph whose vertices are the
// mesh's vertices (in the mesh's own order) and whose edges are the three
// undirected edges of every triangle. An edge shared by adjacent triangles
// is added only once (deduplicated here, before AddEdges, by normalizing
// each pair to (min,max)).
//
// Fails with ErrEmptyGraph if the mesh has no triangles.
func CreateFromTriangleMesh(mesh TriangleMesh) (*Graph, error) {
	g := NewGraphFromPoints(mesh.Vertices())

	tris := mesh.Triangles()
	seen := make(map[[2]int]struct{}, len(tris)*3)
	edges := make([][2]int, 0, len(tris)*3)
	addUnordered := func(a, b int) {
		key := [2]int{a, b}
		if a > b {
			key = [2]int{b, a}
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		edges = append(edges, [2]int{a, b})
	}
	for _, t := range tris {
		addUnordered(t[0], t[1])
		addUnordered(t[1], t[2])
		addUnordered(t[2], t[0])
	}

	if err := g.AddEdges(edges, nil); err != nil {
		return nil, err
	}

	return g, nil
}
