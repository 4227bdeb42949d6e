package occupancygrid_test

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/MingheCao/cupoch/occupancygrid"
)

func Example() {
	g, err := occupancygrid.NewOccupancyGrid(1.0, 4, mgl64.Vec3{0, 0, 0})
	if err != nil {
		panic(err)
	}

	cloud := occupancygrid.Points{{1.5, 0.5, 0.5}}
	g.Insert(cloud, mgl64.Vec3{-1.5, 0.5, 0.5}, -1)

	fmt.Println(g.CountOccupied(), g.CountFree())
	// Output: 1 3
}
