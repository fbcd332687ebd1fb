// SPDX-License-Identifier: GPL-2.0-or-later

package geom

import (
	"github.com/chewxy/math32"

	"goportal/math/vec"
)

// AABB is an axis aligned bounding box.
type AABB struct {
	Mins vec.Vec3
	Maxs vec.Vec3
}

// EmptyAABB returns an inverted box that any AddPoint turns valid.
func EmptyAABB() AABB {
	inf := math32.Inf(1)
	return AABB{
		Mins: vec.Vec3{inf, inf, inf},
		Maxs: vec.Vec3{-inf, -inf, -inf},
	}
}

// BoundsOf returns the smallest box containing all points.
func BoundsOf(pts []vec.Vec3) AABB {
	b := EmptyAABB()
	for _, p := range pts {
		b.AddPoint(p)
	}
	return b
}

func (b *AABB) AddPoint(p vec.Vec3) {
	b.Mins = vec.Min(b.Mins, p)
	b.Maxs = vec.Max(b.Maxs, p)
}

func (b *AABB) AddBox(o AABB) {
	b.Mins = vec.Min(b.Mins, o.Mins)
	b.Maxs = vec.Max(b.Maxs, o.Maxs)
}

func (b AABB) Empty() bool {
	return b.Mins[0] > b.Maxs[0] || b.Mins[1] > b.Maxs[1] || b.Mins[2] > b.Maxs[2]
}

func (b AABB) ContainsPoint(p vec.Vec3) bool {
	return p[0] >= b.Mins[0] && p[0] <= b.Maxs[0] &&
		p[1] >= b.Mins[1] && p[1] <= b.Maxs[1] &&
		p[2] >= b.Mins[2] && p[2] <= b.Maxs[2]
}

// ContainsBox reports whether o lies completely inside b.
func (b AABB) ContainsBox(o AABB) bool {
	return b.ContainsPoint(o.Mins) && b.ContainsPoint(o.Maxs)
}

func (b AABB) Intersects(o AABB) bool {
	for i := 0; i < 3; i++ {
		if b.Mins[i] > o.Maxs[i] || b.Maxs[i] < o.Mins[i] {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether the sphere touches the box.
func (b AABB) IntersectsSphere(center vec.Vec3, radius float32) bool {
	var d float32
	for i := 0; i < 3; i++ {
		if center[i] < b.Mins[i] {
			s := center[i] - b.Mins[i]
			d += s * s
		} else if center[i] > b.Maxs[i] {
			s := center[i] - b.Maxs[i]
			d += s * s
		}
	}
	return d <= radius*radius
}

// Expand returns the box grown by r in every direction.
func (b AABB) Expand(r float32) AABB {
	e := vec.Vec3{r, r, r}
	return AABB{Mins: vec.Sub(b.Mins, e), Maxs: vec.Add(b.Maxs, e)}
}

func (b AABB) Center() vec.Vec3 {
	return vec.Scale(0.5, vec.Add(b.Mins, b.Maxs))
}

// Radius returns half the length of the diagonal.
func (b AABB) Radius() float32 {
	return 0.5 * vec.Distance(b.Mins, b.Maxs)
}
