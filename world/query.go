// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"slices"

	"goportal/math/vec"
)

const (
	// MaxRoomsForPoint caps the result of RoomsForSphere.
	MaxRoomsForPoint = 32
	// FatQueryRadius is the radius above which RoomsForSphere returns every
	// room the sphere touches.
	FatQueryRadius = 1
	// portalThickness is the half width of the region around a portal in
	// which a point belongs to both rooms.
	portalThickness = 1
	// DefaultLinkDepth is used by the portal link searches for maxDepth <= 0.
	DefaultLinkDepth = 2
)

// RoomsForPoint returns the rooms containing p. It is empty if p is outside
// the world.
func (l *Level) RoomsForPoint(p vec.Vec3) []int {
	return l.RoomsForSphere(p, 0)
}

// RoomsForSphere returns the rooms containing the sphere. Small spheres are
// treated like points: one room, or the two rooms of a portal the point
// stands in.
func (l *Level) RoomsForSphere(center vec.Vec3, radius float32) []int {
	if radius > FatQueryRadius {
		return l.roomsTouching(center, radius)
	}
	for pi := range l.Portals {
		p := &l.Portals[pi]
		if !p.Bounds.Expand(portalThickness).ContainsPoint(center) {
			continue
		}
		if p.Planes[0].Distance(center) >= -portalThickness &&
			p.Planes[1].Distance(center) >= -portalThickness {
			return []int{p.Rooms[0], p.Rooms[1]}
		}
	}
	for vi := range l.Volumes {
		v := &l.Volumes[vi]
		if !v.Bounds.ContainsPoint(center) {
			continue
		}
		if v.Planes.IsPointInside(center) {
			return []int{v.Room}
		}
	}
	return nil
}

func (l *Level) roomsTouching(center vec.Vec3, radius float32) []int {
	var rooms []int
	for ri := range l.Rooms {
		r := &l.Rooms[ri]
		if !r.Bounds.IntersectsSphere(center, radius) {
			continue
		}
		for _, vi := range r.Volumes {
			if l.Volumes[vi].Planes.IsSphereInside(center, radius) {
				rooms = append(rooms, ri)
				break
			}
		}
		if len(rooms) == MaxRoomsForPoint {
			break
		}
	}
	return rooms
}

// FirstPortalLinkedToRoom returns the portal of start through which end can
// be reached with at most maxDepth portal crossings. Portals closer to near
// are tried first. It returns -1 if there is no such portal.
func (l *Level) FirstPortalLinkedToRoom(start, end int, near vec.Vec3, maxDepth int) int {
	if !l.validRoom(start) || !l.validRoom(end) || start == end {
		return -1
	}
	if maxDepth <= 0 {
		maxDepth = DefaultLinkDepth
	}
	portals := slices.Clone(l.Rooms[start].Portals)
	dist := func(pi int) float32 {
		return vec.Distance(l.Portals[pi].Bounds.Center(), near)
	}
	slices.SortStableFunc(portals, func(a, b int) int {
		da, db := dist(a), dist(b)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
	for _, pi := range portals {
		next := l.Portals[pi].Other(start)
		if next == end || l.checkPortalLink(next, end, start, 2, maxDepth) {
			return pi
		}
	}
	return -1
}

// CheckPortalLink reports whether b can be reached from a with at most
// maxDepth portal crossings.
func (l *Level) CheckPortalLink(a, b int, maxDepth int) bool {
	if !l.validRoom(a) || !l.validRoom(b) {
		return false
	}
	if a == b {
		return true
	}
	if maxDepth <= 0 {
		maxDepth = DefaultLinkDepth
	}
	return l.checkPortalLink(a, b, -1, 1, maxDepth)
}

// checkPortalLink explores the portals of room. depth is the number of the
// crossing to be done next; prev is the room we came from.
func (l *Level) checkPortalLink(room, target, prev, depth, maxDepth int) bool {
	if depth > maxDepth {
		return false
	}
	r := &l.Rooms[room]
	for _, pi := range r.Portals {
		next := l.Portals[pi].Other(room)
		if next == prev {
			continue
		}
		if next == target {
			return true
		}
		if l.checkPortalLink(next, target, room, depth+1, maxDepth) {
			return true
		}
	}
	return false
}
