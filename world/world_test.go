// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goportal/crc"
	"goportal/math/vec"
)

// doorway returns a square opening in the plane x = x.
func doorway(x float32) []vec.Vec3 {
	return []vec.Vec3{
		{x, 25, 25},
		{x, 75, 25},
		{x, 75, 75},
		{x, 25, 75},
	}
}

// corridor builds n box rooms of size 100 along the x axis, each linked to
// the next by a doorway.
func corridor(t *testing.T, n int) *Level {
	t.Helper()
	b := NewBuilder("corridor")
	for i := 0; i < n; i++ {
		x := float32(i * 100)
		r := b.AddRoom(vec.Vec3{x, 0, 0}, vec.Vec3{x + 100, 100, 100})
		b.AddBoxSurfaces(b.FirstVolume(r), i, 0)
		if i > 0 {
			b.AddPortal(r-1, r, doorway(x))
		}
	}
	l, err := b.Build()
	require.NoError(t, err)
	return l
}

func TestBuilderLinks(t *testing.T) {
	l := corridor(t, 3)
	require.Len(t, l.Rooms, 3)
	require.Len(t, l.Portals, 2)

	assert.Equal(t, []int{0}, l.Rooms[0].Portals)
	assert.Equal(t, []int{0, 1}, l.Rooms[1].Portals)
	assert.Equal(t, []int{1, 0}, l.Rooms[1].PortalSides)

	p := &l.Portals[0]
	assert.Equal(t, [2]int{0, 1}, p.Rooms)
	assert.Greater(t, p.Planes[0].Distance(vec.Vec3{50, 50, 50}), float32(0))
	assert.Greater(t, p.Planes[1].Distance(vec.Vec3{150, 50, 50}), float32(0))
	assert.Equal(t, 1, p.Other(0))
	assert.Equal(t, 0, p.Other(1))
	assert.Equal(t, 1, p.Side(1))
	assert.Equal(t, -1, p.Side(2))

	assert.Len(t, l.Surfaces, 18)
	for si, s := range l.Surfaces {
		assert.Equal(t, 6, s.NumIndices, "surface %d", si)
		assert.True(t, l.Rooms[s.Room].Bounds.ContainsBox(s.Bounds), "surface %d", si)
	}
}

func TestBuilderErrors(t *testing.T) {
	b := NewBuilder("bad")
	r := b.AddRoom(vec.Vec3{}, vec.Vec3{10, 10, 10})
	b.AddPortal(r, r, doorway(10))
	_, err := b.Build()
	assert.Error(t, err)

	b = NewBuilder("degenerated")
	r0 := b.AddRoom(vec.Vec3{}, vec.Vec3{10, 10, 10})
	r1 := b.AddRoom(vec.Vec3{10, 0, 0}, vec.Vec3{20, 10, 10})
	b.AddPortal(r0, r1, []vec.Vec3{{10, 0, 0}, {10, 1, 1}, {10, 2, 2}})
	_, err = b.Build()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	l := corridor(t, 2)
	l.Portals[0].Rooms[1] = 7
	assert.ErrorIs(t, l.Validate(), ErrInvalidLevel)

	l = corridor(t, 2)
	l.Portals[0].Planes[0] = l.Portals[0].Planes[0].Flip()
	assert.ErrorIs(t, l.Validate(), ErrInvalidLevel)

	l = corridor(t, 2)
	l.Volumes[0].Bounds.Maxs[0] = 500
	assert.ErrorIs(t, l.Validate(), ErrInvalidLevel)

	l = corridor(t, 2)
	l.Rooms[0].Volumes = []int{7, 0}
	assert.ErrorIs(t, l.Validate(), ErrInvalidLevel)

	l = corridor(t, 2)
	l.Rooms[0].Volumes = []int{-1}
	assert.ErrorIs(t, l.Validate(), ErrInvalidLevel)

	l = corridor(t, 2)
	l.Indices[l.Surfaces[0].FirstIndex] = uint32(len(l.Vertices))
	assert.ErrorIs(t, l.Validate(), ErrInvalidLevel)

	l = corridor(t, 2)
	l.Surfaces[0].NumIndices = -3
	assert.ErrorIs(t, l.Validate(), ErrInvalidLevel)

	l = corridor(t, 2)
	l.Portals[0].Verts[1] = []vec.Vec3{{100, 25, 25}, {100, 50, 50}, {100, 75, 75}}
	assert.ErrorIs(t, l.Validate(), ErrInvalidLevel)
}

func TestDecodeRejectsBrokenLevels(t *testing.T) {
	for _, tc := range []struct {
		name   string
		tamper func(l *Level)
	}{
		{"room volume", func(l *Level) { l.Rooms[0].Volumes = []int{7, 0} }},
		{"vertex index", func(l *Level) { l.Indices[0] = 1000 }},
		{"collinear portal", func(l *Level) {
			l.Portals[0].Verts[0] = []vec.Vec3{{100, 25, 25}, {100, 50, 50}, {100, 75, 75}}
		}},
	} {
		l := corridor(t, 2)
		tc.tamper(l)
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, l), tc.name)
		_, err := Decode(&buf)
		assert.ErrorIs(t, err, ErrInvalidLevel, tc.name)
	}
}

func TestRoomsForPoint(t *testing.T) {
	l := corridor(t, 3)
	tests := []struct {
		name string
		p    vec.Vec3
		want []int
	}{
		{"inside first", vec.Vec3{50, 50, 50}, []int{0}},
		{"inside last", vec.Vec3{250, 50, 50}, []int{2}},
		{"in doorway", vec.Vec3{100.5, 50, 50}, []int{0, 1}},
		{"wall beside doorway", vec.Vec3{100, 5, 5}, []int{0}},
		{"outside", vec.Vec3{-10, 50, 50}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, l.RoomsForPoint(tc.p))
		})
	}
}

func TestRoomsForSphere(t *testing.T) {
	l := corridor(t, 3)
	assert.Equal(t, []int{0, 1}, l.RoomsForSphere(vec.Vec3{90, 50, 50}, 20))
	assert.Equal(t, []int{0, 1, 2}, l.RoomsForSphere(vec.Vec3{150, 50, 50}, 60))
	assert.Equal(t, []int{1}, l.RoomsForSphere(vec.Vec3{150, 50, 50}, 0.5))
	assert.Empty(t, l.RoomsForSphere(vec.Vec3{-100, 50, 50}, 20))
}

func TestRoomsForSphereCap(t *testing.T) {
	l := corridor(t, MaxRoomsForPoint+4)
	got := l.RoomsForSphere(vec.Vec3{50, 50, 50}, 10000)
	assert.Len(t, got, MaxRoomsForPoint)
}

func TestFirstPortalLinkedToRoom(t *testing.T) {
	l := corridor(t, 3)
	pos := vec.Vec3{50, 50, 50}
	assert.Equal(t, -1, l.FirstPortalLinkedToRoom(0, 2, pos, 1))
	assert.Equal(t, 0, l.FirstPortalLinkedToRoom(0, 2, pos, 2))
	assert.Equal(t, 0, l.FirstPortalLinkedToRoom(0, 2, pos, 0))
	assert.Equal(t, 0, l.FirstPortalLinkedToRoom(0, 1, pos, 1))
	assert.Equal(t, 1, l.FirstPortalLinkedToRoom(1, 2, pos, 1))
	assert.Equal(t, -1, l.FirstPortalLinkedToRoom(0, 0, pos, 2))
	assert.Equal(t, -1, l.FirstPortalLinkedToRoom(0, 9, pos, 2))
}

func TestFirstPortalPrefersNearest(t *testing.T) {
	// a ring of four rooms: 0 can reach 2 through 1 or through 3
	b := NewBuilder("ring")
	r0 := b.AddRoom(vec.Vec3{0, 0, 0}, vec.Vec3{100, 100, 100})
	r1 := b.AddRoom(vec.Vec3{100, 0, 0}, vec.Vec3{200, 100, 100})
	r2 := b.AddRoom(vec.Vec3{100, 100, 0}, vec.Vec3{200, 200, 100})
	r3 := b.AddRoom(vec.Vec3{0, 100, 0}, vec.Vec3{100, 200, 100})
	p01 := b.AddPortal(r0, r1, doorway(100))
	b.AddPortal(r1, r2, []vec.Vec3{{125, 100, 25}, {175, 100, 25}, {175, 100, 75}, {125, 100, 75}})
	b.AddPortal(r2, r3, []vec.Vec3{{100, 125, 25}, {100, 175, 25}, {100, 175, 75}, {100, 125, 75}})
	p30 := b.AddPortal(r3, r0, []vec.Vec3{{25, 100, 25}, {75, 100, 25}, {75, 100, 75}, {25, 100, 75}})
	l, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, p01, l.FirstPortalLinkedToRoom(r0, r2, vec.Vec3{90, 50, 50}, 2))
	assert.Equal(t, p30, l.FirstPortalLinkedToRoom(r0, r2, vec.Vec3{50, 90, 50}, 2))
	assert.True(t, l.CheckPortalLink(r0, r2, 2))
	assert.False(t, l.CheckPortalLink(r0, r2, 1))
}

func TestCheckPortalLink(t *testing.T) {
	l := corridor(t, 4)
	assert.True(t, l.CheckPortalLink(0, 0, 1))
	assert.True(t, l.CheckPortalLink(0, 1, 1))
	assert.False(t, l.CheckPortalLink(0, 2, 1))
	assert.True(t, l.CheckPortalLink(0, 2, 2))
	assert.False(t, l.CheckPortalLink(0, 3, 2))
	assert.True(t, l.CheckPortalLink(3, 0, 3))
	assert.False(t, l.CheckPortalLink(0, 10, 3))
}

func TestLumpRoundTrip(t *testing.T) {
	l := corridor(t, 3)
	l.Surfaces[2].Flags = SurfaceSky | SurfaceTranslucent
	l.Surfaces[3].Lightmap = 4
	l.Volumes[1].Flags = VolumeTranslucent

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, l))
	got, err := Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, l.Name, got.Name)
	assert.Equal(t, l.Rooms, got.Rooms)
	assert.Equal(t, l.Portals, got.Portals)
	assert.Equal(t, l.Volumes, got.Volumes)
	assert.Equal(t, l.Surfaces, got.Surfaces)
	assert.Equal(t, l.Vertices, got.Vertices)
	assert.Equal(t, l.Indices, got.Indices)
}

func TestLumpHeader(t *testing.T) {
	write := func(magic string, major, minor uint16) *bytes.Buffer {
		var buf bytes.Buffer
		h := lumpHeader{Major: major, Minor: minor, Checksum: crc.Update(nil)}
		copy(h.Magic[:], magic)
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, &h))
		return &buf
	}
	_, err := Decode(write("IBSP", LumpMajor, 0))
	assert.True(t, errors.Is(err, ErrBadMagic), "%v", err)

	_, err = Decode(write(LumpMagic, LumpMajor+1, 0))
	assert.True(t, errors.Is(err, ErrVersion), "%v", err)

	l, err := Decode(write(LumpMagic, LumpMajor, LumpMinor+3))
	require.NoError(t, err)
	assert.Empty(t, l.Rooms)

	_, err = Decode(bytes.NewReader([]byte("RL")))
	assert.Error(t, err)
}

func TestLumpChecksum(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, corridor(t, 2)))
	b := buf.Bytes()
	b[len(b)-1] ^= 0xff
	_, err := Decode(bytes.NewReader(b))
	assert.True(t, errors.Is(err, ErrChecksum), "%v", err)
}
