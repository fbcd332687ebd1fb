// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"log/slog"
	"strconv"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"goportal/math/vec"
	"goportal/render"
)

const vertexSource = `#version 410 core
layout(location = 0) in vec3 position;
uniform mat4 projection;
uniform mat4 view;
uniform mat4 world;
out vec3 worldPos;
void main() {
	vec4 p = world * vec4(position, 1.0);
	worldPos = p.xyz;
	gl_Position = projection * view * p;
}
`

const fragmentSource = `#version 410 core
in vec3 worldPos;
uniform vec3 ambient;
uniform vec4 light_origin;
uniform vec3 light_color;
uniform vec4 material_color;
uniform float lit;
layout(location = 0) out vec4 fragColor;
void main() {
	vec3 base = material_color.rgb;
	if (lit > 0.5) {
		float d = distance(worldPos, light_origin.xyz);
		float a = clamp(1.0 - d / max(light_origin.w, 1.0), 0.0, 1.0);
		fragColor = vec4(base * light_color * a, material_color.a);
	} else {
		fragColor = vec4(base * ambient, material_color.a);
	}
}
`

type target struct {
	name   string
	tex    Texture
	format texFormat
}

type mesh struct {
	name    string
	va      *VertexArray
	vb      *Buffer
	ib      *Buffer
	indices int
}

// Device draws with OpenGL. All methods must be called on the thread that
// owns the GL context.
type Device struct {
	prog     *Program
	fb       *Framebuffer
	size     func() (int, int)
	targets  []*target
	meshes   []*mesh
	attached int
}

var _ render.Device = (*Device)(nil)

// NewDevice needs a current GL context. size reports the backbuffer size.
func NewDevice(size func() (int, int)) (*Device, error) {
	p, err := NewProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, errors.Wrap(err, "surface program")
	}
	d := &Device{
		prog: p,
		fb:   NewFramebuffer(),
		size: size,
	}
	d.prog.Use()
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	d.SetShaderConstant("material_color", 1, 1, 1, 1)
	return d, nil
}

func (d *Device) target(id render.TargetID) *target {
	if id < 0 || int(id) >= len(d.targets) {
		return nil
	}
	return d.targets[id]
}

func (d *Device) CreateNamedRenderTarget(name string, w, h int, format render.Format, filter render.Filter, address render.Address, compare render.Compare, flags render.TargetFlags) (render.TargetID, error) {
	if w <= 0 || h <= 0 {
		return render.NoTarget, errors.Errorf("render target %q has invalid size %dx%d", name, w, h)
	}
	f, err := textureFormat(format)
	if err != nil {
		return render.NoTarget, errors.Wrapf(err, "render target %q", name)
	}
	if compare != render.CompareNone && !f.depth() {
		return render.NoTarget, errors.Errorf("render target %q compares a color format", name)
	}
	s := newSampler(filter, address, compare)
	var t Texture
	if flags&render.TargetCube != 0 {
		c := NewTextureCube()
		c.Storage(w, h, f)
		setParameters(gl.TEXTURE_CUBE_MAP, s)
		t = c
	} else {
		c := NewTexture2D()
		c.Storage(w, h, f)
		setParameters(gl.TEXTURE_2D, s)
		t = c
	}
	d.targets = append(d.targets, &target{
		name:   name,
		tex:    t,
		format: f,
	})
	slog.Debug("Created render target", slog.String("name", name), slog.Int("width", w), slog.Int("height", h))
	return render.TargetID(len(d.targets) - 1), nil
}

func (d *Device) ChangeRenderTargets(colors []render.TargetID, depth render.TargetID, face int) {
	if len(colors) == 0 && depth == render.NoTarget {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.DrawBuffer(gl.BACK)
		return
	}
	d.fb.Bind()
	bufs := make([]uint32, 0, len(colors))
	for i, id := range colors {
		a := gl.COLOR_ATTACHMENT0 + uint32(i)
		t := d.target(id)
		if t == nil {
			slog.Warn("Backbuffer can not be mixed with render targets", slog.Int("attachment", i))
			d.fb.Attach(a, nil, 0)
			continue
		}
		d.fb.Attach(a, t.tex, face)
		bufs = append(bufs, a)
	}
	for i := len(colors); i < d.attached; i++ {
		d.fb.Attach(gl.COLOR_ATTACHMENT0+uint32(i), nil, 0)
	}
	d.attached = len(colors)
	if t := d.target(depth); t != nil {
		d.fb.Attach(gl.DEPTH_ATTACHMENT, t.tex, face)
	} else {
		d.fb.Attach(gl.DEPTH_ATTACHMENT, nil, 0)
	}
	if len(bufs) == 0 {
		gl.DrawBuffer(gl.NONE)
	} else {
		gl.DrawBuffers(int32(len(bufs)), &bufs[0])
	}
	if s := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); s != gl.FRAMEBUFFER_COMPLETE {
		slog.Warn("Incomplete framebuffer", slog.Int("status", int(s)))
	}
}

func (d *Device) Clear(flags render.ClearFlags, color [4]float32, depth float32) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.DepthMask(true)
	gl.ClearDepth(float64(depth))
	gl.Clear(clearMask(flags))
}

func (d *Device) SetViewport(vp render.Viewport) {
	gl.Viewport(int32(vp.X), int32(vp.Y), int32(vp.W), int32(vp.H))
}

func (d *Device) SetMatrix(kind render.MatrixKind, m mgl32.Mat4) {
	// mgl32 is column major like GL expects
	gl.UniformMatrix4fv(d.prog.GetUniformLocation(matrixUniform(kind)), 1, false, &m[0])
}

func (d *Device) SetTexture(unit int, id render.TargetID) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	t := d.target(id)
	if t == nil {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		return
	}
	t.tex.Bind()
	gl.Uniform1i(d.prog.GetUniformLocation("texture"+strconv.Itoa(unit)), int32(unit))
}

func (d *Device) SetBlendMode(b render.BlendMode) {
	enabled, src, dst := blendFunc(b)
	if !enabled {
		gl.Disable(gl.BLEND)
		gl.DepthMask(true)
		return
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(src, dst)
	// blended passes test against but do not write depth
	gl.DepthMask(false)
}

func (d *Device) SetShaderConstant(name string, v ...float32) {
	l := d.prog.GetUniformLocation(name)
	switch len(v) {
	case 1:
		gl.Uniform1f(l, v[0])
	case 2:
		gl.Uniform2f(l, v[0], v[1])
	case 3:
		gl.Uniform3f(l, v[0], v[1], v[2])
	case 4:
		gl.Uniform4f(l, v[0], v[1], v[2], v[3])
	default:
		slog.Debug("Unsupported shader constant", slog.String("name", name), slog.Int("components", len(v)))
	}
}

func (d *Device) UploadMesh(name string, vertices []vec.Vec3, indices []uint32) (render.MeshID, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return 0, errors.Errorf("mesh %q is empty", name)
	}
	m := &mesh{
		name:    name,
		va:      NewVertexArray(),
		vb:      NewBuffer(ArrayBuffer),
		ib:      NewBuffer(ElementArrayBuffer),
		indices: len(indices),
	}
	m.va.Bind()
	m.vb.Bind()
	m.vb.SetData(len(vertices)*3*4, gl.Ptr(vertices))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	m.ib.Bind()
	m.ib.SetData(len(indices)*4, gl.Ptr(indices))
	gl.BindVertexArray(0)
	d.meshes = append(d.meshes, m)
	return render.MeshID(len(d.meshes) - 1), nil
}

func (d *Device) DrawIndexedPrimitives(id render.MeshID, firstIndex, numIndices int) {
	if id < 0 || int(id) >= len(d.meshes) {
		slog.Debug("Draw of unknown mesh", slog.Int("mesh", int(id)))
		return
	}
	m := d.meshes[id]
	if firstIndex < 0 || numIndices <= 0 || firstIndex+numIndices > m.indices {
		slog.Debug("Draw outside of mesh", slog.String("mesh", m.name), slog.Int("first", firstIndex), slog.Int("count", numIndices))
		return
	}
	m.va.Bind()
	gl.DrawElements(gl.TRIANGLES, int32(numIndices), gl.UNSIGNED_INT, gl.PtrOffset(firstIndex*4))
}

func (d *Device) BackbufferSize() (int, int) {
	return d.size()
}
