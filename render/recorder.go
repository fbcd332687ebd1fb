// SPDX-License-Identifier: GPL-2.0-or-later

package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"goportal/light"
	"goportal/math/vec"
)

// Call is one recorded device call.
type Call struct {
	Op   string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Op, c.Args)
}

// RecordedTarget describes a target created on a Recorder.
type RecordedTarget struct {
	Name    string
	W, H    int
	Format  Format
	Filter  Filter
	Address Address
	Compare Compare
	Flags   TargetFlags
}

type recordedMesh struct {
	name    string
	verts   int
	indices int
}

// Recorder is a Device that does nothing but record the calls. It is used
// for headless runs and tests.
type Recorder struct {
	Calls   []Call
	Targets []RecordedTarget
	W, H    int
	// FailTarget makes CreateNamedRenderTarget fail for this name.
	FailTarget string

	meshes []recordedMesh
}

func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) record(op string, args ...any) {
	r.Calls = append(r.Calls, Call{Op: op, Args: args})
}

// Reset forgets the recorded calls but keeps targets and meshes.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Ops returns the names of the recorded calls.
func (r *Recorder) Ops() []string {
	ops := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		ops = append(ops, c.Op)
	}
	return ops
}

// Count returns how often op was called.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// TargetByName returns the id of the named target or NoTarget.
func (r *Recorder) TargetByName(name string) TargetID {
	for i, t := range r.Targets {
		if t.Name == name {
			return TargetID(i)
		}
	}
	return NoTarget
}

func (r *Recorder) MeshName(id MeshID) string {
	if int(id) < 0 || int(id) >= len(r.meshes) {
		return ""
	}
	return r.meshes[id].name
}

func (r *Recorder) CreateNamedRenderTarget(name string, w, h int, format Format, filter Filter, address Address, compare Compare, flags TargetFlags) (TargetID, error) {
	if name == r.FailTarget {
		return NoTarget, fmt.Errorf("no memory for %s", name)
	}
	r.Targets = append(r.Targets, RecordedTarget{
		Name: name, W: w, H: h,
		Format: format, Filter: filter, Address: address, Compare: compare, Flags: flags,
	})
	id := TargetID(len(r.Targets) - 1)
	r.record("CreateNamedRenderTarget", name, id)
	return id, nil
}

func (r *Recorder) ChangeRenderTargets(colors []TargetID, depth TargetID, face int) {
	r.record("ChangeRenderTargets", append([]TargetID(nil), colors...), depth, face)
}

func (r *Recorder) Clear(flags ClearFlags, color [4]float32, depth float32) {
	r.record("Clear", flags)
}

func (r *Recorder) SetViewport(vp Viewport) {
	r.record("SetViewport", vp)
}

func (r *Recorder) SetMatrix(kind MatrixKind, m mgl32.Mat4) {
	r.record("SetMatrix", kind, m)
}

func (r *Recorder) SetTexture(unit int, t TargetID) {
	r.record("SetTexture", unit, t)
}

func (r *Recorder) SetBlendMode(b BlendMode) {
	r.record("SetBlendMode", b)
}

func (r *Recorder) SetShaderConstant(name string, v ...float32) {
	r.record("SetShaderConstant", name, append([]float32(nil), v...))
}

func (r *Recorder) UploadMesh(name string, vertices []vec.Vec3, indices []uint32) (MeshID, error) {
	r.meshes = append(r.meshes, recordedMesh{name: name, verts: len(vertices), indices: len(indices)})
	id := MeshID(len(r.meshes) - 1)
	r.record("UploadMesh", name, id)
	return id, nil
}

func (r *Recorder) DrawIndexedPrimitives(mesh MeshID, firstIndex, numIndices int) {
	r.record("DrawIndexedPrimitives", mesh, firstIndex, numIndices)
}

func (r *Recorder) BackbufferSize() (int, int) {
	return r.W, r.H
}

// MaterialTable is a Materials implementation over a fixed set of material
// ids.
type MaterialTable struct {
	Known  map[int]bool
	Model  light.LightingModel
	Bound  []int
	light  *light.Light
	Lights []*light.Light // every SetLight call
}

func NewMaterialTable(model light.LightingModel, ids ...int) *MaterialTable {
	m := &MaterialTable{Known: make(map[int]bool), Model: model}
	for _, id := range ids {
		m.Known[id] = true
	}
	return m
}

func (m *MaterialTable) BindMaterial(id int, applyImmediately bool) bool {
	if !m.Known[id] {
		return false
	}
	m.Bound = append(m.Bound, id)
	return true
}

func (m *MaterialTable) SetLight(l *light.Light) {
	m.light = l
	m.Lights = append(m.Lights, l)
}

func (m *MaterialTable) GetLight() *light.Light {
	return m.light
}

func (m *MaterialTable) LightingModel() light.LightingModel {
	return m.Model
}
