// SPDX-License-Identifier: GPL-2.0-or-later

package mdl

import (
	"bytes"
	"io/fs"
	"testing"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goportal/math/vec"
)

func TestBuiltins(t *testing.T) {
	for _, m := range []*Mesh{Box(), Quad(), Sphere(8, 12)} {
		require.NoError(t, m.Validate(), m.Name)
		for i := range 2 {
			assert.InDelta(t, -1, m.Bounds.Mins[i], 1e-5, m.Name)
			assert.InDelta(t, 1, m.Bounds.Maxs[i], 1e-5, m.Name)
		}
	}
	assert.Len(t, Box().Indices, 36)
	assert.Equal(t, vec.Vec3{-1, -1, -1}, Box().Bounds.Mins)
	assert.Len(t, Quad().Indices, 6)
	assert.Equal(t, float32(0), Quad().Bounds.Maxs[2])
	s := Sphere(2, 3)
	assert.Len(t, s.Vertices, 9)
	assert.Len(t, s.Indices, 18)
}

func TestValidate(t *testing.T) {
	m := &Mesh{Name: "bad", Vertices: []vec.Vec3{{}, {}, {}}, Indices: []uint32{0, 1, 3}}
	assert.ErrorIs(t, m.Validate(), ErrBadMesh)
	m.Indices = []uint32{0, 1}
	assert.ErrorIs(t, m.Validate(), ErrBadMesh)
}

func TestDocumentRoundTrip(t *testing.T) {
	box := Box()
	m, err := FromDocument("box", Document(box))
	require.NoError(t, err)
	assert.Equal(t, box.Vertices, m.Vertices)
	assert.Equal(t, box.Indices, m.Indices)
	assert.Equal(t, box.Bounds, m.Bounds)
}

func TestShortIndices(t *testing.T) {
	doc := &gltf.Document{
		Buffers: []*gltf.Buffer{{Data: []byte{
			0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
			0, 0, 0x80, 0x3f, 0, 0, 0, 0, 0, 0, 0, 0,
			0, 0, 0, 0, 0, 0, 0x80, 0x3f, 0, 0, 0, 0,
			0, 0, 1, 0, 2, 0,
		}}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteLength: 36},
			{Buffer: 0, ByteOffset: 36, ByteLength: 6},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: gltf.Index(0), ComponentType: gltf.ComponentFloat, Type: gltf.AccessorVec3, Count: 3},
			{BufferView: gltf.Index(1), ComponentType: gltf.ComponentUshort, Type: gltf.AccessorScalar, Count: 3},
		},
		Meshes: []*gltf.Mesh{{Primitives: []*gltf.Primitive{{
			Attributes: map[string]int{gltf.POSITION: 0},
			Indices:    gltf.Index(1),
		}}}},
	}
	m, err := FromDocument("tri", doc)
	require.NoError(t, err)
	assert.Equal(t, []vec.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, m.Vertices)
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)

	doc.Accessors[1].Count = 4
	_, err = FromDocument("tri", doc)
	assert.Error(t, err)
}

func TestNoTriangles(t *testing.T) {
	_, err := FromDocument("empty", &gltf.Document{})
	assert.ErrorIs(t, err, ErrBadMesh)
}

func TestLoader(t *testing.T) {
	var glb bytes.Buffer
	require.NoError(t, WriteGLB(&glb, Sphere(4, 6)))
	reads := 0
	l := &Loader{
		Dir: "models",
		ReadFile: func(name string) ([]byte, error) {
			reads++
			if name != "models/sphere_1x1.glb" {
				return nil, errors.Wrap(fs.ErrNotExist, name)
			}
			return glb.Bytes(), nil
		},
	}
	m, err := l.Load("sphere_1x1")
	require.NoError(t, err)
	assert.Equal(t, "sphere_1x1", m.Name)
	assert.Len(t, m.Vertices, 30)
	again, err := l.Load("sphere_1x1")
	require.NoError(t, err)
	assert.Same(t, m, again)
	assert.Equal(t, 1, reads)

	_, err = l.Load("cone")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
