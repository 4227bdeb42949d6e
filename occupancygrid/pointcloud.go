// File: pointcloud.go
// Role: the external-collaborator PointCloud interface Insert accepts, plus
//       a slice adapter so simple callers need nothing extra. Point cloud
//       construction itself is out of scope (external collaborator).

package occupancygrid

import "github.com/go-gl/mathgl/mgl64"

// PointCloud is the minimal external-collaborator contract Insert needs.
type PointCloud interface {
	Points() []mgl64.Vec3
}

// Points is a slice adapter so a bare []mgl64.Vec3 satisfies PointCloud.
type Points []mgl64.Vec3

// Points implements PointCloud.
func (p Points) Points() []mgl64.Vec3 { return p }
