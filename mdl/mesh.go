// SPDX-License-Identifier: GPL-2.0-or-later

// Package mdl holds the small indexed triangle meshes the renderer draws
// besides the level itself: light volumes and the fullscreen quad.
package mdl

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"goportal/geom"
	"goportal/math/vec"
)

var ErrBadMesh = errors.New("bad mesh")

type Mesh struct {
	Name     string
	Vertices []vec.Vec3
	Indices  []uint32
	Bounds   geom.AABB
}

func (m *Mesh) CalculateBounds() {
	m.Bounds = geom.BoundsOf(m.Vertices)
}

// Validate checks the mesh is a triangle list with all indices in range.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return errors.Wrapf(ErrBadMesh, "%s: %d indices", m.Name, len(m.Indices))
	}
	for _, i := range m.Indices {
		if int(i) >= len(m.Vertices) {
			return errors.Wrapf(ErrBadMesh, "%s: index %d of %d vertices", m.Name, i, len(m.Vertices))
		}
	}
	return nil
}

// Box is the cube from -1 to 1.
func Box() *Mesh {
	m := &Mesh{Name: "box"}
	for i := 0; i < 8; i++ {
		m.Vertices = append(m.Vertices, vec.Vec3{
			float32(i&1)*2 - 1,
			float32(i>>1&1)*2 - 1,
			float32(i>>2&1)*2 - 1,
		})
	}
	// two triangles per face, outward facing
	m.Indices = []uint32{
		0, 2, 1, 1, 2, 3, // -z
		4, 5, 6, 5, 7, 6, // +z
		0, 1, 4, 1, 5, 4, // -y
		2, 6, 3, 3, 6, 7, // +y
		0, 4, 2, 2, 4, 6, // -x
		1, 3, 5, 3, 7, 5, // +x
	}
	m.CalculateBounds()
	return m
}

// Quad covers clip space, it is drawn with identity matrices.
func Quad() *Mesh {
	m := &Mesh{
		Name: "quad",
		Vertices: []vec.Vec3{
			{-1, -1, 0},
			{1, -1, 0},
			{1, 1, 0},
			{-1, 1, 0},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	m.CalculateBounds()
	return m
}

// Sphere builds a unit uv sphere. It needs at least 2 rings and 3 segments.
func Sphere(rings, segments int) *Mesh {
	rings = max(rings, 2)
	segments = max(segments, 3)
	m := &Mesh{Name: "sphere"}
	for r := 0; r <= rings; r++ {
		phi := math32.Pi * float32(r) / float32(rings)
		sp, cp := math32.Sincos(phi)
		for s := 0; s < segments; s++ {
			theta := 2 * math32.Pi * float32(s) / float32(segments)
			st, ct := math32.Sincos(theta)
			m.Vertices = append(m.Vertices, vec.Vec3{sp * ct, sp * st, cp})
		}
	}
	idx := func(r, s int) uint32 {
		return uint32(r*segments + s%segments)
	}
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a, b := idx(r, s), idx(r, s+1)
			c, d := idx(r+1, s), idx(r+1, s+1)
			if r != 0 {
				m.Indices = append(m.Indices, a, c, b)
			}
			if r != rings-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}
	m.CalculateBounds()
	return m
}
