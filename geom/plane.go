// SPDX-License-Identifier: GPL-2.0-or-later

package geom

import (
	"goportal/math/vec"
)

type Side int

const (
	SideFront Side = iota
	SideBack
	SideOn
)

// BoxOnPlaneSide results, usable as bit mask.
const (
	BoxFront = 1
	BoxBack  = 2
	BoxCross = BoxFront | BoxBack
)

const (
	// OnEpsilon is the half width of the band classified as SideOn.
	OnEpsilon = 0.1
	// DegenerateEpsilon is the smallest cross product length a plane is
	// built from.
	DegenerateEpsilon = 1e-4
)

// Plane types. Axial types are only used for planes with a positive unit
// normal along one axis.
const (
	PlaneX byte = iota
	PlaneY
	PlaneZ
	PlaneAnyX
	PlaneAnyY
	PlaneAnyZ
)

// Plane is the set of points p with Dot(Normal, p) == Dist. Points with a
// positive distance are in front.
type Plane struct {
	Normal   vec.Vec3
	Dist     float32
	Type     byte
	SignBits byte // caching of plane side tests
}

func NewPlane(normal vec.Vec3, dist float32) Plane {
	p := Plane{Normal: normal, Dist: dist}
	p.update()
	return p
}

// PlaneFromPoint returns the plane with the given normal through point.
func PlaneFromPoint(normal, point vec.Vec3) Plane {
	return NewPlane(normal, vec.Dot(normal, point))
}

// PlaneFromPoints returns the plane through a, b and c. The normal follows
// the right hand rule for a->b->c. ok is false for (nearly) collinear points.
func PlaneFromPoints(a, b, c vec.Vec3) (Plane, bool) {
	n := vec.Cross(vec.Sub(b, a), vec.Sub(c, a))
	l := n.Length()
	if l < DegenerateEpsilon {
		return Plane{}, false
	}
	n = vec.Scale(1/l, n)
	return NewPlane(n, vec.Dot(n, a)), true
}

func (p *Plane) update() {
	p.Type = PlaneAnyX
	switch {
	case p.Normal[0] == 1:
		p.Type = PlaneX
	case p.Normal[1] == 1:
		p.Type = PlaneY
	case p.Normal[2] == 1:
		p.Type = PlaneZ
	default:
		ax := abs(p.Normal[0])
		ay := abs(p.Normal[1])
		az := abs(p.Normal[2])
		if ay >= ax && ay >= az {
			p.Type = PlaneAnyY
		} else if az >= ax && az >= ay {
			p.Type = PlaneAnyZ
		}
	}
	p.SignBits = 0
	for i := 0; i < 3; i++ {
		if p.Normal[i] < 0 {
			p.SignBits |= 1 << i
		}
	}
}

// Distance returns the signed distance of pt to the plane.
func (p *Plane) Distance(pt vec.Vec3) float32 {
	if p.Type < PlaneAnyX {
		return pt[p.Type] - p.Dist
	}
	return vec.Dot(p.Normal, pt) - p.Dist
}

// Classify returns on which side of the plane pt is. Points within eps of
// the plane are SideOn.
func (p *Plane) Classify(pt vec.Vec3, eps float32) Side {
	d := p.Distance(pt)
	if d > eps {
		return SideFront
	}
	if d < -eps {
		return SideBack
	}
	return SideOn
}

// Flip returns the plane facing the other direction.
func (p Plane) Flip() Plane {
	return NewPlane(vec.Scale(-1, p.Normal), -p.Dist)
}

// corners returns the box corner furthest along the normal and the one
// furthest against it.
func (p *Plane) corners(mins, maxs vec.Vec3) (pos, neg vec.Vec3) {
	for i := 0; i < 3; i++ {
		if p.SignBits&(1<<i) != 0 {
			pos[i], neg[i] = mins[i], maxs[i]
		} else {
			pos[i], neg[i] = maxs[i], mins[i]
		}
	}
	return pos, neg
}

// BoxOnPlaneSide returns BoxFront, BoxBack or BoxCross.
func (p *Plane) BoxOnPlaneSide(mins, maxs vec.Vec3) int {
	if p.Type < PlaneAnyX {
		if p.Dist <= mins[p.Type] {
			return BoxFront
		}
		if p.Dist >= maxs[p.Type] {
			return BoxBack
		}
		return BoxCross
	}
	pos, neg := p.corners(mins, maxs)
	sides := 0
	if vec.Dot(p.Normal, pos) >= p.Dist {
		sides = BoxFront
	}
	if vec.Dot(p.Normal, neg) < p.Dist {
		sides |= BoxBack
	}
	return sides
}

// BoxBehind reports whether the whole box is behind the plane.
func (p *Plane) BoxBehind(mins, maxs vec.Vec3) bool {
	pos, _ := p.corners(mins, maxs)
	return vec.Dot(p.Normal, pos) < p.Dist
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
