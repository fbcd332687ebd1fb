// SPDX-License-Identifier: GPL-2.0-or-later

package geom

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"goportal/math/vec"
)

// Frustum planes, all facing inwards.
type Frustum struct {
	Planes []Plane
}

// FrustumFromMatrix extracts the six clip planes from a combined
// projection * view matrix (OpenGL clip space).
func FrustumFromMatrix(m mgl32.Mat4) Frustum {
	row := func(r int) [4]float32 {
		return [4]float32{m.At(r, 0), m.At(r, 1), m.At(r, 2), m.At(r, 3)}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)
	var raw [6][4]float32
	for i := 0; i < 4; i++ {
		raw[0][i] = r3[i] + r0[i] // left
		raw[1][i] = r3[i] - r0[i] // right
		raw[2][i] = r3[i] + r1[i] // bottom
		raw[3][i] = r3[i] - r1[i] // top
		raw[4][i] = r3[i] + r2[i] // near
		raw[5][i] = r3[i] - r2[i] // far
	}
	f := Frustum{Planes: make([]Plane, 0, 6)}
	for _, r := range raw {
		n := vec.Vec3{r[0], r[1], r[2]}
		l := n.Length()
		if l == 0 {
			continue
		}
		f.Planes = append(f.Planes, NewPlane(vec.Scale(1/l, n), -r[3]/l))
	}
	return f
}

func turnVector(origin, forward, side vec.Vec3, angle float32) Plane {
	scaleSide, scaleForward := math32.Sincos(angle * math32.Pi / 180)
	n := vec.Add(vec.Scale(scaleForward, forward), vec.Scale(scaleSide, side))
	return PlaneFromPoint(n, origin)
}

// FrustumFromView builds the four side planes of a perspective view through
// origin. fovx and fovy are in degree.
func FrustumFromView(origin, forward, right, up vec.Vec3, fovx, fovy float32) Frustum {
	return Frustum{Planes: []Plane{
		turnVector(origin, forward, right, fovx/2-90), // left
		turnVector(origin, forward, right, 90-fovx/2), // right
		turnVector(origin, forward, up, 90-fovy/2),    // bottom
		turnVector(origin, forward, up, fovy/2-90),    // top
	}}
}

// CullBox returns true if the box is completely outside the frustum
func (f *Frustum) CullBox(mins, maxs vec.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].BoxBehind(mins, maxs) {
			return true
		}
	}
	return false
}

// CullSphere returns true if the sphere is completely outside the frustum
func (f *Frustum) CullSphere(center vec.Vec3, radius float32) bool {
	for i := range f.Planes {
		if f.Planes[i].Distance(center) < -radius {
			return true
		}
	}
	return false
}

func (f *Frustum) Volume() Volume {
	return Volume(f.Planes)
}
