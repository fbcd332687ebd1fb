// SPDX-License-Identifier: GPL-2.0-or-later

package vis

import (
	"goportal/geom"
	"goportal/math/vec"
	"goportal/world"
)

// BackFaceEpsilon is how far the camera may be behind a portal plane and
// still look through it.
const BackFaceEpsilon = 0.01

// portalSet is a bit set over portal ids, one bit per portal.
type portalSet []byte

func newPortalSet(portals int) portalSet {
	return make(portalSet, (portals+7)>>3)
}

func (s portalSet) has(i int) bool {
	return s[i>>3]&(1<<(i&7)) != 0
}

// with returns a copy of s with i added.
func (s portalSet) with(i int) portalSet {
	n := make(portalSet, len(s))
	copy(n, s)
	n[i>>3] |= 1 << (i & 7)
	return n
}

// step is one room reached through a portal path.
type step struct {
	room   int
	planes []geom.Plane
	path   portalSet
}

// FloodStats counts what happened during the last flood.
type FloodStats struct {
	Steps          int
	PortalsTested  int
	FrustumCulled  int
	BackFacing     int
	LoopRejected   int
	ClippedAway    int
	PlanesBuilt    int
	TruncatedPaths int
}

// Flooder walks the room graph from the camera rooms. The zero value is
// ready to use; scratch buffers are kept between floods.
type Flooder struct {
	// NoPortalCull disables the frustum test of portal bounds.
	NoPortalCull bool
	Stats        FloodStats

	work  []step
	clipA []vec.Vec3
	clipB []vec.Vec3
}

// Update recomputes the visibility of all rooms of l seen from origin. A
// camera outside of every room sees everything.
func (f *Flooder) Update(l *world.Level, list *RenderAreaList, origin vec.Vec3, frustum *geom.Frustum) {
	if len(list.Areas) != len(l.Rooms) {
		list.Resize(len(l.Rooms))
	} else {
		list.Reset()
	}
	f.Stats = FloodStats{}
	rooms := l.RoomsForPoint(origin)
	if len(rooms) == 0 {
		list.MarkAll()
		return
	}
	f.Flood(l, list, origin, frustum, rooms)
}

// Flood marks the start rooms unbounded and everything reachable through
// portals visible, restricted by the accumulated clip planes of each path.
// list must be reset by the caller. frustum may be nil.
func (f *Flooder) Flood(l *world.Level, list *RenderAreaList, origin vec.Vec3, frustum *geom.Frustum, start []int) {
	f.work = f.work[:0]
	for _, r := range start {
		a := list.Area(r)
		if a == nil {
			continue
		}
		a.markUnbounded()
		f.work = append(f.work, step{room: r, path: newPortalSet(len(l.Portals))})
	}
	for len(f.work) > 0 {
		s := f.work[len(f.work)-1]
		f.work = f.work[:len(f.work)-1]
		f.Stats.Steps++
		// a path without any clip plane left sees the whole room
		if len(s.planes) > 0 {
			list.Areas[s.room].addPlaneSet(s.planes)
		} else {
			list.Areas[s.room].markUnbounded()
		}
		f.expand(l, s, origin, frustum)
	}
}

// expand pushes the rooms visible through the portals of s.room.
func (f *Flooder) expand(l *world.Level, s step, origin vec.Vec3, frustum *geom.Frustum) {
	room := &l.Rooms[s.room]
	for i, pi := range room.Portals {
		p := &l.Portals[pi]
		side := room.PortalSides[i]
		f.Stats.PortalsTested++
		if frustum != nil && !f.NoPortalCull && frustum.CullBox(p.Bounds.Mins, p.Bounds.Maxs) {
			f.Stats.FrustumCulled++
			continue
		}
		if p.Planes[side].Distance(origin) < -BackFaceEpsilon {
			f.Stats.BackFacing++
			continue
		}
		if s.path.has(pi) {
			f.Stats.LoopRejected++
			continue
		}
		poly, ok := f.clip(p.Verts[side], s.planes)
		if !ok {
			f.Stats.ClippedAway++
			continue
		}
		planes := f.silhouette(s.planes, poly, origin)
		f.work = append(f.work, step{
			room:   p.Other(s.room),
			planes: planes,
			path:   s.path.with(pi),
		})
	}
}

// clip cuts the polygon by every plane of the stack. The result is only
// valid until the next call.
func (f *Flooder) clip(poly []vec.Vec3, planes []geom.Plane) ([]vec.Vec3, bool) {
	bufs := [2][]vec.Vec3{f.clipA, f.clipB}
	cur := 0
	defer func() {
		f.clipA, f.clipB = bufs[0], bufs[1]
	}()
	for i := range planes {
		out, n := geom.ClipVertsAgainstPlane(poly, planes[i], bufs[cur])
		switch {
		case n == 0:
			bufs[cur] = out
			return nil, false
		case n > 0:
			bufs[cur] = out
			poly = out
			cur ^= 1
		}
	}
	return poly, true
}

// silhouette returns a new stack of the old planes followed by one plane
// through origin and every edge of poly, each facing the polygon center.
// The stack never grows beyond MaxPortalPlanes.
func (f *Flooder) silhouette(old []geom.Plane, poly []vec.Vec3, origin vec.Vec3) []geom.Plane {
	planes := make([]geom.Plane, len(old), min(len(old)+len(poly), MaxPortalPlanes))
	copy(planes, old)
	center := vec.Centroid(poly)
	for i := range poly {
		if len(planes) == MaxPortalPlanes {
			f.Stats.TruncatedPaths++
			break
		}
		a := vec.Sub(poly[i], origin)
		b := vec.Sub(poly[(i+1)%len(poly)], origin)
		n := vec.Cross(a, b)
		ln := n.Length()
		if ln < geom.DegenerateEpsilon {
			continue
		}
		pl := geom.PlaneFromPoint(vec.Scale(1/ln, n), origin)
		if pl.Distance(center) < 0 {
			pl = pl.Flip()
		}
		planes = append(planes, pl)
		f.Stats.PlanesBuilt++
	}
	return planes
}
