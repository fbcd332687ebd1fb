// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"errors"
	"fmt"

	"goportal/geom"
	"goportal/math/vec"
)

var ErrInvalidLevel = errors.New("invalid level")

type SurfaceFlags uint32

const (
	SurfaceSky SurfaceFlags = 1 << iota
	SurfaceTranslucent
	SurfaceWater
	SurfaceBlockLight // only rendered into shadow maps
)

type VolumeFlags uint32

const (
	VolumeTranslucent VolumeFlags = 1 << iota
)

// Surface is a batch of indexed triangles sharing one material.
type Surface struct {
	Material    int
	FirstVertex int
	NumVertices int
	FirstIndex  int
	NumIndices  int
	Bounds      geom.AABB
	Flags       SurfaceFlags
	Lightmap    int // -1 if the surface has no lightmap
	Room        int
	Volume      int
}

// Volume is a convex part of a room.
type Volume struct {
	Room     int
	Bounds   geom.AABB
	Planes   geom.Volume
	Surfaces []int
	Flags    VolumeFlags
}

type Room struct {
	Bounds  geom.AABB
	Volumes []int
	// Portals and PortalSides are filled by Link. PortalSides[i] is the
	// side of Portals[i] that faces this room.
	Portals     []int
	PortalSides []int
}

// Portal connects Rooms[0] and Rooms[1]. Planes[s] faces into Rooms[s] and
// Verts[s] is the opening as seen from Rooms[s].
type Portal struct {
	Bounds geom.AABB
	Rooms  [2]int
	Planes [2]geom.Plane
	Verts  [2][]vec.Vec3
}

// Other returns the room on the other side of the portal.
func (p *Portal) Other(room int) int {
	if p.Rooms[0] == room {
		return p.Rooms[1]
	}
	return p.Rooms[0]
}

// Side returns the side of the portal facing room or -1.
func (p *Portal) Side(room int) int {
	switch room {
	case p.Rooms[0]:
		return 0
	case p.Rooms[1]:
		return 1
	}
	return -1
}

// Level owns all rooms, portals, volumes and surfaces of a loaded map. All
// cross references are indices into these slices.
type Level struct {
	Name     string
	Rooms    []Room
	Portals  []Portal
	Volumes  []Volume
	Surfaces []Surface
	Vertices []vec.Vec3
	Indices  []uint32
}

func (l *Level) validRoom(r int) bool {
	return r >= 0 && r < len(l.Rooms)
}

// Link rebuilds the per room portal lists and the back references from
// volumes and surfaces to their owners.
func (l *Level) Link() {
	for i := range l.Rooms {
		r := &l.Rooms[i]
		r.Portals = r.Portals[:0]
		r.PortalSides = r.PortalSides[:0]
		for _, vi := range r.Volumes {
			if vi < 0 || vi >= len(l.Volumes) {
				continue
			}
			l.Volumes[vi].Room = i
			for _, si := range l.Volumes[vi].Surfaces {
				if si < 0 || si >= len(l.Surfaces) {
					continue
				}
				l.Surfaces[si].Room = i
				l.Surfaces[si].Volume = vi
			}
		}
	}
	for pi := range l.Portals {
		p := &l.Portals[pi]
		for s, ri := range p.Rooms {
			if !l.validRoom(ri) {
				continue
			}
			r := &l.Rooms[ri]
			r.Portals = append(r.Portals, pi)
			r.PortalSides = append(r.PortalSides, s)
		}
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidLevel, fmt.Sprintf(format, args...))
}

// Validate checks the structural invariants of a linked level.
func (l *Level) Validate() error {
	for vi := range l.Volumes {
		v := &l.Volumes[vi]
		if !l.validRoom(v.Room) {
			return invalid("volume %d has no room", vi)
		}
		if !l.Rooms[v.Room].Bounds.ContainsBox(v.Bounds) {
			return invalid("volume %d exceeds bounds of room %d", vi, v.Room)
		}
		for _, si := range v.Surfaces {
			if si < 0 || si >= len(l.Surfaces) {
				return invalid("volume %d references surface %d", vi, si)
			}
		}
	}
	for si := range l.Surfaces {
		s := &l.Surfaces[si]
		if s.NumVertices < 0 || s.NumIndices < 0 ||
			s.FirstVertex < 0 || s.FirstVertex+s.NumVertices > len(l.Vertices) ||
			s.FirstIndex < 0 || s.FirstIndex+s.NumIndices > len(l.Indices) {
			return invalid("surface %d is out of the geometry range", si)
		}
		for _, idx := range l.Indices[s.FirstIndex : s.FirstIndex+s.NumIndices] {
			if int(idx) >= len(l.Vertices) {
				return invalid("surface %d references vertex %d", si, idx)
			}
		}
	}
	for pi := range l.Portals {
		p := &l.Portals[pi]
		if !l.validRoom(p.Rooms[0]) || !l.validRoom(p.Rooms[1]) || p.Rooms[0] == p.Rooms[1] {
			return invalid("portal %d links rooms %v", pi, p.Rooms)
		}
		for _, v := range p.Verts {
			if len(v) < 3 {
				return invalid("portal %d has a degenerated polygon", pi)
			}
			if _, ok := geom.PlaneFromPoints(v[0], v[1], v[2]); !ok {
				return invalid("portal %d has a degenerated polygon", pi)
			}
		}
		c := l.Rooms[p.Rooms[0]].Bounds.Center()
		if p.Planes[0].Distance(c) < 0 {
			return invalid("plane 0 of portal %d does not face room %d", pi, p.Rooms[0])
		}
	}
	for ri := range l.Rooms {
		r := &l.Rooms[ri]
		for _, vi := range r.Volumes {
			if vi < 0 || vi >= len(l.Volumes) || l.Volumes[vi].Room != ri {
				return invalid("room %d references volume %d", ri, vi)
			}
		}
		if len(r.Portals) != len(r.PortalSides) {
			return invalid("room %d is not linked", ri)
		}
		for i, pi := range r.Portals {
			if pi < 0 || pi >= len(l.Portals) || l.Portals[pi].Rooms[r.PortalSides[i]] != ri {
				return invalid("room %d has an inconsistent portal side for portal %d", ri, pi)
			}
		}
	}
	return nil
}
