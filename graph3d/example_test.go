package graph3d_test

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/MingheCao/cupoch/graph3d"
)

// This example builds a small triangle-path graph over 3D points and finds
// the shortest route from the first vertex to the last.
func Example() {
	points := []mgl64.Vec3{
		{0, 0, 0},
		{1, 0, 0},
		{1, 1, 0},
	}
	g := graph3d.NewGraphFromPoints(points)
	_ = g.AddEdges([][2]int{{0, 1}, {1, 2}}, nil)
	g.SetEdgeWeightsFromDistance()

	path, err := g.DijkstraPath(0, 2)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(path)
	// Output: [0 1 2]
}
