// SPDX-License-Identifier: GPL-2.0-or-later

package geom

import (
	"goportal/math/vec"
)

// ClipEpsilon is the band around a clip plane where vertices count as on it.
const ClipEpsilon = 0.01

// ClipVertsAgainstPlane clips the convex polygon in against p and keeps the
// part in front of it. The result is appended to out[:0].
// The count is -1 if no vertex is behind the plane (in stays untouched and
// should be used as is), 0 if no vertex is in front and the polygon vanished,
// otherwise the number of vertices of the clipped polygon.
func ClipVertsAgainstPlane(in []vec.Vec3, p Plane, out []vec.Vec3) ([]vec.Vec3, int) {
	const maxStack = 32
	var dbuf [maxStack]float32
	var sbuf [maxStack]Side
	dists := dbuf[:0]
	sides := sbuf[:0]
	front, back := 0, 0
	for _, v := range in {
		d := p.Distance(v)
		s := SideOn
		if d > ClipEpsilon {
			s = SideFront
			front++
		} else if d < -ClipEpsilon {
			s = SideBack
			back++
		}
		dists = append(dists, d)
		sides = append(sides, s)
	}
	if back == 0 {
		return nil, -1
	}
	out = out[:0]
	if front == 0 {
		return out, 0
	}
	n := len(in)
	for i, v := range in {
		s1 := sides[i]
		if s1 == SideOn {
			out = append(out, v)
			continue
		}
		if s1 == SideFront {
			out = append(out, v)
		}
		j := (i + 1) % n
		s2 := sides[j]
		if s2 == SideOn || s2 == s1 {
			continue
		}
		frac := dists[i] / (dists[i] - dists[j])
		out = append(out, vec.Lerp(v, in[j], frac))
	}
	if len(out) < 3 {
		return out[:0], 0
	}
	return out, len(out)
}
