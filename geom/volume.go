// SPDX-License-Identifier: GPL-2.0-or-later

package geom

import (
	"goportal/math/vec"
)

// Volume is a convex region given by planes facing inwards.
type Volume []Plane

// BoxVolume returns the six inward facing planes of the box.
func BoxVolume(mins, maxs vec.Vec3) Volume {
	v := make(Volume, 0, 6)
	for i := 0; i < 3; i++ {
		var n vec.Vec3
		n[i] = 1
		v = append(v, NewPlane(n, mins[i]))
		n[i] = -1
		v = append(v, NewPlane(n, -maxs[i]))
	}
	return v
}

// IsPointInside reports whether pt is on the front side of every plane.
func (v Volume) IsPointInside(pt vec.Vec3) bool {
	for i := range v {
		if v[i].Distance(pt) < 0 {
			return false
		}
	}
	return true
}

// IsSphereInside reports whether the sphere touches the volume. The test is
// conservative near the edges of the volume.
func (v Volume) IsSphereInside(center vec.Vec3, radius float32) bool {
	for i := range v {
		if v[i].Distance(center) < -radius {
			return false
		}
	}
	return true
}

// IsBoxInside reports whether the box is not completely behind any plane.
func (v Volume) IsBoxInside(mins, maxs vec.Vec3) bool {
	for i := range v {
		if v[i].BoxBehind(mins, maxs) {
			return false
		}
	}
	return true
}

// IsTriangleInside reports whether no plane has all three corners behind it.
func (v Volume) IsTriangleInside(a, b, c vec.Vec3) bool {
	for i := range v {
		p := &v[i]
		if p.Distance(a) < 0 && p.Distance(b) < 0 && p.Distance(c) < 0 {
			return false
		}
	}
	return true
}
