// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"goportal/crc"
	"goportal/filesystem"
	"goportal/geom"
	"goportal/math/vec"
)

const (
	LumpMagic = "RLVL"
	// A lump with a different major version can not be read. Newer minor
	// versions only add fields.
	LumpMajor = 1
	LumpMinor = 0
)

var (
	ErrBadMagic = errors.New("bad level magic")
	ErrVersion  = errors.New("unsupported level version")
	ErrChecksum = errors.New("level checksum mismatch")
)

type lumpHeader struct {
	Magic [4]byte
	Major uint16
	Minor uint16
	// Checksum is the CRC-16 of the body.
	Checksum uint16
}

// field numbers
const (
	fLevelName     = 1
	fLevelRoom     = 2
	fLevelPortal   = 3
	fLevelVolume   = 4
	fLevelSurface  = 5
	fLevelVertices = 6
	fLevelIndices  = 7

	fRoomBounds  = 1
	fRoomVolumes = 2

	fPortalBounds = 1
	fPortalRooms  = 2
	fPortalPlane0 = 3
	fPortalPlane1 = 4
	fPortalVerts0 = 5
	fPortalVerts1 = 6

	fVolumeRoom     = 1
	fVolumeBounds   = 2
	fVolumePlanes   = 3
	fVolumeSurfaces = 4
	fVolumeFlags    = 5

	fSurfaceMaterial    = 1
	fSurfaceFirstVertex = 2
	fSurfaceNumVertices = 3
	fSurfaceFirstIndex  = 4
	fSurfaceNumIndices  = 5
	fSurfaceBounds      = 6
	fSurfaceFlags       = 7
	fSurfaceLightmap    = 8
	fSurfaceRoom        = 9
	fSurfaceVolume      = 10
)

// Encode writes the level as lump.
func Encode(w io.Writer, l *Level) error {
	body := encodeLevel(l)
	h := lumpHeader{Major: LumpMajor, Minor: LumpMinor, Checksum: crc.Update(body)}
	copy(h.Magic[:], LumpMagic)
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return errors.Wrap(err, "writing level header")
	}
	if _, err := w.Write(body); err != nil {
		return errors.Wrap(err, "writing level body")
	}
	return nil
}

// Decode reads a lump written by Encode and returns the linked and
// validated level.
func Decode(r io.Reader) (*Level, error) {
	var h lumpHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, errors.Wrap(err, "reading level header")
	}
	if string(h.Magic[:]) != LumpMagic {
		return nil, errors.Wrapf(ErrBadMagic, "got %q", h.Magic[:])
	}
	if h.Major != LumpMajor {
		return nil, errors.Wrapf(ErrVersion, "version %d.%d, want %d.x", h.Major, h.Minor, LumpMajor)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading level body")
	}
	if c := crc.Update(body); c != h.Checksum {
		return nil, errors.Wrapf(ErrChecksum, "got %04x, want %04x", c, h.Checksum)
	}
	l := &Level{}
	if err := decodeLevel(body, l); err != nil {
		return nil, errors.Wrap(err, "decoding level")
	}
	l.Link()
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Load reads the level lump name from the search path.
func Load(name string) (*Level, error) {
	data, err := filesystem.ReadFile(name)
	if err != nil {
		return nil, err
	}
	l, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", name)
	}
	if l.Name == "" {
		l.Name = name
	}
	return l, nil
}

func appendInt(b []byte, num protowire.Number, v int) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeZigZag(int64(v)))
}

func appendMessage(b []byte, num protowire.Number, m []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m)
}

func appendFloats(b []byte, num protowire.Number, fs ...float32) []byte {
	var p []byte
	for _, f := range fs {
		p = protowire.AppendFixed32(p, math.Float32bits(f))
	}
	return appendMessage(b, num, p)
}

func appendInts(b []byte, num protowire.Number, is []int) []byte {
	var p []byte
	for _, i := range is {
		p = protowire.AppendVarint(p, protowire.EncodeZigZag(int64(i)))
	}
	return appendMessage(b, num, p)
}

func appendVerts(b []byte, num protowire.Number, vs []vec.Vec3) []byte {
	fs := make([]float32, 0, 3*len(vs))
	for _, v := range vs {
		fs = append(fs, v[:]...)
	}
	return appendFloats(b, num, fs...)
}

func appendBox(b []byte, num protowire.Number, a geom.AABB) []byte {
	return appendFloats(b, num, a.Mins[0], a.Mins[1], a.Mins[2], a.Maxs[0], a.Maxs[1], a.Maxs[2])
}

func appendPlane(b []byte, num protowire.Number, p geom.Plane) []byte {
	return appendFloats(b, num, p.Normal[0], p.Normal[1], p.Normal[2], p.Dist)
}

func encodeLevel(l *Level) []byte {
	var b []byte
	b = protowire.AppendTag(b, fLevelName, protowire.BytesType)
	b = protowire.AppendString(b, l.Name)
	for _, r := range l.Rooms {
		var m []byte
		m = appendBox(m, fRoomBounds, r.Bounds)
		m = appendInts(m, fRoomVolumes, r.Volumes)
		b = appendMessage(b, fLevelRoom, m)
	}
	for _, p := range l.Portals {
		var m []byte
		m = appendBox(m, fPortalBounds, p.Bounds)
		m = appendInts(m, fPortalRooms, p.Rooms[:])
		m = appendPlane(m, fPortalPlane0, p.Planes[0])
		m = appendPlane(m, fPortalPlane1, p.Planes[1])
		m = appendVerts(m, fPortalVerts0, p.Verts[0])
		m = appendVerts(m, fPortalVerts1, p.Verts[1])
		b = appendMessage(b, fLevelPortal, m)
	}
	for _, v := range l.Volumes {
		var m []byte
		m = appendInt(m, fVolumeRoom, v.Room)
		m = appendBox(m, fVolumeBounds, v.Bounds)
		for _, p := range v.Planes {
			m = appendPlane(m, fVolumePlanes, p)
		}
		m = appendInts(m, fVolumeSurfaces, v.Surfaces)
		m = appendInt(m, fVolumeFlags, int(v.Flags))
		b = appendMessage(b, fLevelVolume, m)
	}
	for _, s := range l.Surfaces {
		var m []byte
		m = appendInt(m, fSurfaceMaterial, s.Material)
		m = appendInt(m, fSurfaceFirstVertex, s.FirstVertex)
		m = appendInt(m, fSurfaceNumVertices, s.NumVertices)
		m = appendInt(m, fSurfaceFirstIndex, s.FirstIndex)
		m = appendInt(m, fSurfaceNumIndices, s.NumIndices)
		m = appendBox(m, fSurfaceBounds, s.Bounds)
		m = appendInt(m, fSurfaceFlags, int(s.Flags))
		m = appendInt(m, fSurfaceLightmap, s.Lightmap)
		m = appendInt(m, fSurfaceRoom, s.Room)
		m = appendInt(m, fSurfaceVolume, s.Volume)
		b = appendMessage(b, fLevelSurface, m)
	}
	b = appendVerts(b, fLevelVertices, l.Vertices)
	var idx []byte
	for _, i := range l.Indices {
		idx = protowire.AppendVarint(idx, uint64(i))
	}
	b = appendMessage(b, fLevelIndices, idx)
	return b
}

// field is a single decoded record. Either v (varint) or b (bytes) is set.
type field struct {
	num protowire.Number
	v   uint64
	b   []byte
}

func (f field) int() int {
	return int(protowire.DecodeZigZag(f.v))
}

func forEachField(b []byte, fn func(f field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		f := field{num: num}
		switch typ {
		case protowire.VarintType:
			f.v, n = protowire.ConsumeVarint(b)
		case protowire.BytesType:
			f.b, n = protowire.ConsumeBytes(b)
		default:
			// unknown fields of newer minor versions
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

func floats(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, errors.Errorf("packed floats of length %d", len(b))
	}
	fs := make([]float32, 0, len(b)/4)
	for len(b) > 0 {
		v, n := protowire.ConsumeFixed32(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		fs = append(fs, math.Float32frombits(v))
		b = b[n:]
	}
	return fs, nil
}

func ints(b []byte) ([]int, error) {
	var is []int
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		is = append(is, int(protowire.DecodeZigZag(v)))
		b = b[n:]
	}
	return is, nil
}

func verts(b []byte) ([]vec.Vec3, error) {
	fs, err := floats(b)
	if err != nil {
		return nil, err
	}
	if len(fs)%3 != 0 {
		return nil, errors.Errorf("%d floats are no vertices", len(fs))
	}
	vs := make([]vec.Vec3, 0, len(fs)/3)
	for i := 0; i < len(fs); i += 3 {
		vs = append(vs, vec.Vec3{fs[i], fs[i+1], fs[i+2]})
	}
	return vs, nil
}

func box(b []byte) (geom.AABB, error) {
	fs, err := floats(b)
	if err != nil {
		return geom.AABB{}, err
	}
	if len(fs) != 6 {
		return geom.AABB{}, errors.Errorf("box with %d floats", len(fs))
	}
	return geom.AABB{
		Mins: vec.Vec3{fs[0], fs[1], fs[2]},
		Maxs: vec.Vec3{fs[3], fs[4], fs[5]},
	}, nil
}

func plane(b []byte) (geom.Plane, error) {
	fs, err := floats(b)
	if err != nil {
		return geom.Plane{}, err
	}
	if len(fs) != 4 {
		return geom.Plane{}, errors.Errorf("plane with %d floats", len(fs))
	}
	return geom.NewPlane(vec.Vec3{fs[0], fs[1], fs[2]}, fs[3]), nil
}

func decodeLevel(b []byte, l *Level) error {
	return forEachField(b, func(f field) error {
		var err error
		switch f.num {
		case fLevelName:
			l.Name = string(f.b)
		case fLevelRoom:
			var r Room
			err = decodeRoom(f.b, &r)
			l.Rooms = append(l.Rooms, r)
		case fLevelPortal:
			var p Portal
			err = decodePortal(f.b, &p)
			l.Portals = append(l.Portals, p)
		case fLevelVolume:
			var v Volume
			err = decodeVolume(f.b, &v)
			l.Volumes = append(l.Volumes, v)
		case fLevelSurface:
			var s Surface
			err = decodeSurface(f.b, &s)
			l.Surfaces = append(l.Surfaces, s)
		case fLevelVertices:
			l.Vertices, err = verts(f.b)
		case fLevelIndices:
			b := f.b
			for len(b) > 0 {
				v, n := protowire.ConsumeVarint(b)
				if n < 0 {
					return protowire.ParseError(n)
				}
				l.Indices = append(l.Indices, uint32(v))
				b = b[n:]
			}
		}
		return err
	})
}

func decodeRoom(b []byte, r *Room) error {
	return forEachField(b, func(f field) error {
		var err error
		switch f.num {
		case fRoomBounds:
			r.Bounds, err = box(f.b)
		case fRoomVolumes:
			r.Volumes, err = ints(f.b)
		}
		return errors.Wrap(err, "room")
	})
}

func decodePortal(b []byte, p *Portal) error {
	return forEachField(b, func(f field) error {
		var err error
		switch f.num {
		case fPortalBounds:
			p.Bounds, err = box(f.b)
		case fPortalRooms:
			var rs []int
			rs, err = ints(f.b)
			if err == nil && len(rs) != 2 {
				err = errors.Errorf("%d rooms", len(rs))
			}
			if err == nil {
				p.Rooms = [2]int{rs[0], rs[1]}
			}
		case fPortalPlane0:
			p.Planes[0], err = plane(f.b)
		case fPortalPlane1:
			p.Planes[1], err = plane(f.b)
		case fPortalVerts0:
			p.Verts[0], err = verts(f.b)
		case fPortalVerts1:
			p.Verts[1], err = verts(f.b)
		}
		return errors.Wrap(err, "portal")
	})
}

func decodeVolume(b []byte, v *Volume) error {
	return forEachField(b, func(f field) error {
		var err error
		switch f.num {
		case fVolumeRoom:
			v.Room = f.int()
		case fVolumeBounds:
			v.Bounds, err = box(f.b)
		case fVolumePlanes:
			var p geom.Plane
			p, err = plane(f.b)
			v.Planes = append(v.Planes, p)
		case fVolumeSurfaces:
			v.Surfaces, err = ints(f.b)
		case fVolumeFlags:
			v.Flags = VolumeFlags(f.int())
		}
		return errors.Wrap(err, "volume")
	})
}

func decodeSurface(b []byte, s *Surface) error {
	return forEachField(b, func(f field) error {
		var err error
		switch f.num {
		case fSurfaceMaterial:
			s.Material = f.int()
		case fSurfaceFirstVertex:
			s.FirstVertex = f.int()
		case fSurfaceNumVertices:
			s.NumVertices = f.int()
		case fSurfaceFirstIndex:
			s.FirstIndex = f.int()
		case fSurfaceNumIndices:
			s.NumIndices = f.int()
		case fSurfaceBounds:
			s.Bounds, err = box(f.b)
		case fSurfaceFlags:
			s.Flags = SurfaceFlags(f.int())
		case fSurfaceLightmap:
			s.Lightmap = f.int()
		case fSurfaceRoom:
			s.Room = f.int()
		case fSurfaceVolume:
			s.Volume = f.int()
		}
		return errors.Wrap(err, "surface")
	})
}
