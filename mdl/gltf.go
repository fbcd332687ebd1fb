// SPDX-License-Identifier: GPL-2.0-or-later

package mdl

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"path"
	"sync"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"goportal/filesystem"
	"goportal/math/vec"
)

// Loader reads glTF models through the data search path and caches them by
// name. A name without extension gets ".glb" appended.
type Loader struct {
	Dir      string
	ReadFile func(name string) ([]byte, error)

	mu    sync.Mutex
	cache map[string]*Mesh
}

func NewLoader() *Loader {
	return &Loader{
		Dir:      "models",
		ReadFile: filesystem.ReadFile,
	}
}

func (l *Loader) Load(name string) (*Mesh, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if m, ok := l.cache[name]; ok {
		return m, nil
	}
	p := path.Join(l.Dir, name)
	if filesystem.Ext(p) == "" {
		p += ".glb"
	}
	b, err := l.ReadFile(p)
	if err != nil {
		return nil, errors.Wrapf(err, "model %s", name)
	}
	m, err := Decode(name, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	if l.cache == nil {
		l.cache = make(map[string]*Mesh)
	}
	l.cache[name] = m
	return m, nil
}

func Decode(name string, r io.Reader) (*Mesh, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrapf(err, "decode %s", name)
	}
	return FromDocument(name, doc)
}

// FromDocument merges all triangle primitives of doc into one mesh.
func FromDocument(name string, doc *gltf.Document) (*Mesh, error) {
	m := &Mesh{Name: name}
	for _, gm := range doc.Meshes {
		for _, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				continue
			}
			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			pos, err := readVec3(doc, posIdx)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: mesh %q positions", name, gm.Name)
			}
			base := uint32(len(m.Vertices))
			m.Vertices = append(m.Vertices, pos...)
			if prim.Indices == nil {
				for i := 0; i+2 < len(pos); i += 3 {
					m.Indices = append(m.Indices, base+uint32(i), base+uint32(i+1), base+uint32(i+2))
				}
				continue
			}
			idx, err := readIndices(doc, *prim.Indices)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: mesh %q indices", name, gm.Name)
			}
			for _, i := range idx {
				m.Indices = append(m.Indices, base+i)
			}
		}
	}
	if len(m.Indices) == 0 {
		return nil, errors.Wrapf(ErrBadMesh, "%s: no triangles", name)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.CalculateBounds()
	return m, nil
}

// accessorData returns the bytes backing an accessor and the element stride.
func accessorData(doc *gltf.Document, idx, elemSize int) ([]byte, int, int, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, 0, 0, errors.Errorf("accessor %d out of range", idx)
	}
	a := doc.Accessors[idx]
	if a.BufferView == nil || *a.BufferView >= len(doc.BufferViews) {
		return nil, 0, 0, errors.New("accessor has no buffer view")
	}
	bv := doc.BufferViews[*a.BufferView]
	if bv.Buffer >= len(doc.Buffers) {
		return nil, 0, 0, errors.Errorf("buffer %d out of range", bv.Buffer)
	}
	data := doc.Buffers[bv.Buffer].Data
	stride := bv.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := bv.ByteOffset + a.ByteOffset
	if a.Count > 0 && start+(a.Count-1)*stride+elemSize > len(data) {
		return nil, 0, 0, errors.New("accessor exceeds buffer")
	}
	return data[start:], stride, a.Count, nil
}

func readVec3(doc *gltf.Document, idx int) ([]vec.Vec3, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, errors.Errorf("accessor %d out of range", idx)
	}
	if a := doc.Accessors[idx]; a.Type != gltf.AccessorVec3 || a.ComponentType != gltf.ComponentFloat {
		return nil, errors.Errorf("expected float VEC3, got %v %v", a.ComponentType, a.Type)
	}
	data, stride, count, err := accessorData(doc, idx, 12)
	if err != nil {
		return nil, err
	}
	r := make([]vec.Vec3, count)
	for i := range r {
		o := i * stride
		for j := range 3 {
			r[i][j] = math.Float32frombits(binary.LittleEndian.Uint32(data[o+j*4:]))
		}
	}
	return r, nil
}

func readIndices(doc *gltf.Document, idx int) ([]uint32, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, errors.Errorf("accessor %d out of range", idx)
	}
	a := doc.Accessors[idx]
	if a.Type != gltf.AccessorScalar {
		return nil, errors.Errorf("expected SCALAR indices, got %v", a.Type)
	}
	var size int
	switch a.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, errors.Errorf("unexpected index type: %v", a.ComponentType)
	}
	data, stride, count, err := accessorData(doc, idx, size)
	if err != nil {
		return nil, err
	}
	r := make([]uint32, count)
	for i := range r {
		o := i * stride
		switch size {
		case 1:
			r[i] = uint32(data[o])
		case 2:
			r[i] = uint32(binary.LittleEndian.Uint16(data[o:]))
		case 4:
			r[i] = binary.LittleEndian.Uint32(data[o:])
		}
	}
	return r, nil
}

// Document wraps m into a single buffer glTF document.
func Document(m *Mesh) *gltf.Document {
	var buf bytes.Buffer
	for _, v := range m.Vertices {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	posLen := buf.Len()
	binary.Write(&buf, binary.LittleEndian, m.Indices)
	data := buf.Bytes()
	return &gltf.Document{
		Asset:   gltf.Asset{Version: "2.0", Generator: "goportal"},
		Buffers: []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteLength: posLen},
			{Buffer: 0, ByteOffset: posLen, ByteLength: len(data) - posLen},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: gltf.Index(0), ComponentType: gltf.ComponentFloat, Type: gltf.AccessorVec3, Count: len(m.Vertices)},
			{BufferView: gltf.Index(1), ComponentType: gltf.ComponentUint, Type: gltf.AccessorScalar, Count: len(m.Indices)},
		},
		Meshes: []*gltf.Mesh{{
			Name: m.Name,
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: 0},
				Indices:    gltf.Index(1),
				Mode:       gltf.PrimitiveTriangles,
			}},
		}},
		Nodes:  []*gltf.Node{{Name: m.Name, Mesh: gltf.Index(0)}},
		Scenes: []*gltf.Scene{{Nodes: []int{0}}},
		Scene:  gltf.Index(0),
	}
}

// WriteGLB stores m as binary glTF.
func WriteGLB(w io.Writer, m *Mesh) error {
	e := gltf.NewEncoder(w)
	e.AsBinary = true
	return e.Encode(Document(m))
}
