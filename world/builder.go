// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"fmt"
	"slices"

	"goportal/geom"
	"goportal/math/vec"
)

// Builder assembles a level from boxes and polygons. It is used by tools
// and tests; errors are collected and reported by Build.
type Builder struct {
	l   Level
	err error
}

func NewBuilder(name string) *Builder {
	return &Builder{l: Level{Name: name}}
}

func (b *Builder) fail(format string, args ...any) {
	if b.err == nil {
		b.err = fmt.Errorf(format, args...)
	}
}

// AddRoom adds a room consisting of one box volume and returns the room id.
func (b *Builder) AddRoom(mins, maxs vec.Vec3) int {
	id := len(b.l.Rooms)
	b.l.Rooms = append(b.l.Rooms, Room{Bounds: geom.EmptyAABB()})
	b.AddVolume(id, geom.BoxVolume(mins, maxs), geom.AABB{Mins: mins, Maxs: maxs}, 0)
	return id
}

// AddVolume adds a convex volume to room and grows the room bounds.
func (b *Builder) AddVolume(room int, planes geom.Volume, bounds geom.AABB, flags VolumeFlags) int {
	if !b.l.validRoom(room) {
		b.fail("AddVolume: no room %d", room)
		return -1
	}
	id := len(b.l.Volumes)
	b.l.Volumes = append(b.l.Volumes, Volume{
		Room:   room,
		Bounds: bounds,
		Planes: planes,
		Flags:  flags,
	})
	r := &b.l.Rooms[room]
	r.Volumes = append(r.Volumes, id)
	r.Bounds.AddBox(bounds)
	return id
}

// FirstVolume returns the first volume of room or -1.
func (b *Builder) FirstVolume(room int) int {
	if !b.l.validRoom(room) || len(b.l.Rooms[room].Volumes) == 0 {
		return -1
	}
	return b.l.Rooms[room].Volumes[0]
}

// AddSurface adds a convex polygon as triangle fan to volume.
func (b *Builder) AddSurface(volume, material int, verts []vec.Vec3, flags SurfaceFlags) int {
	if volume < 0 || volume >= len(b.l.Volumes) {
		b.fail("AddSurface: no volume %d", volume)
		return -1
	}
	if len(verts) < 3 {
		b.fail("AddSurface: %d vertices", len(verts))
		return -1
	}
	v := &b.l.Volumes[volume]
	s := Surface{
		Material:    material,
		FirstVertex: len(b.l.Vertices),
		NumVertices: len(verts),
		FirstIndex:  len(b.l.Indices),
		Bounds:      geom.BoundsOf(verts),
		Flags:       flags,
		Lightmap:    -1,
		Room:        v.Room,
		Volume:      volume,
	}
	base := uint32(s.FirstVertex)
	for i := 1; i+1 < len(verts); i++ {
		b.l.Indices = append(b.l.Indices, base, base+uint32(i), base+uint32(i+1))
	}
	s.NumIndices = len(b.l.Indices) - s.FirstIndex
	b.l.Vertices = append(b.l.Vertices, verts...)
	id := len(b.l.Surfaces)
	b.l.Surfaces = append(b.l.Surfaces, s)
	v.Surfaces = append(v.Surfaces, id)
	return id
}

// AddBoxSurfaces adds the six inner faces of the volume bounds.
func (b *Builder) AddBoxSurfaces(volume, material int, flags SurfaceFlags) {
	if volume < 0 || volume >= len(b.l.Volumes) {
		b.fail("AddBoxSurfaces: no volume %d", volume)
		return
	}
	lo := b.l.Volumes[volume].Bounds.Mins
	hi := b.l.Volumes[volume].Bounds.Maxs
	corner := func(x, y, z int) vec.Vec3 {
		pick := func(i, s int) float32 {
			if s == 0 {
				return lo[i]
			}
			return hi[i]
		}
		return vec.Vec3{pick(0, x), pick(1, y), pick(2, z)}
	}
	faces := [][4][3]int{
		{{0, 0, 0}, {0, 1, 0}, {0, 1, 1}, {0, 0, 1}},
		{{1, 0, 0}, {1, 0, 1}, {1, 1, 1}, {1, 1, 0}},
		{{0, 0, 0}, {0, 0, 1}, {1, 0, 1}, {1, 0, 0}},
		{{0, 1, 0}, {1, 1, 0}, {1, 1, 1}, {0, 1, 1}},
		{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		{{0, 0, 1}, {0, 1, 1}, {1, 1, 1}, {1, 0, 1}},
	}
	for _, f := range faces {
		verts := make([]vec.Vec3, 0, 4)
		for _, c := range f {
			verts = append(verts, corner(c[0], c[1], c[2]))
		}
		b.AddSurface(volume, material, verts, flags)
	}
}

// AddPortal links the rooms front and back through the polygon verts.
// Plane 0 is oriented to face the front room.
func (b *Builder) AddPortal(front, back int, verts []vec.Vec3) int {
	if !b.l.validRoom(front) || !b.l.validRoom(back) || front == back {
		b.fail("AddPortal: bad rooms %d, %d", front, back)
		return -1
	}
	if len(verts) < 3 {
		b.fail("AddPortal: %d vertices", len(verts))
		return -1
	}
	p, ok := geom.PlaneFromPoints(verts[0], verts[1], verts[2])
	if !ok {
		b.fail("AddPortal: degenerated polygon")
		return -1
	}
	v0 := slices.Clone(verts)
	if p.Distance(b.l.Rooms[front].Bounds.Center()) < 0 {
		p = p.Flip()
		slices.Reverse(v0)
	}
	v1 := slices.Clone(v0)
	slices.Reverse(v1)
	id := len(b.l.Portals)
	b.l.Portals = append(b.l.Portals, Portal{
		Bounds: geom.BoundsOf(verts),
		Rooms:  [2]int{front, back},
		Planes: [2]geom.Plane{p, p.Flip()},
		Verts:  [2][]vec.Vec3{v0, v1},
	})
	return id
}

// Build links and validates the level.
func (b *Builder) Build() (*Level, error) {
	if b.err != nil {
		return nil, b.err
	}
	l := b.l
	l.Link()
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}
