// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"runtime"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/gopxl/mainthread/v2"
)

type TexID uint32

type Texture interface {
	ID() TexID
	Bind()
	// Target returns the texture target to attach to a framebuffer. face
	// is only used by cube maps.
	Target(face int) uint32
	Size() (int, int)
}

type texture struct {
	id     uint32
	width  int
	height int
}

type texture2D struct {
	texture
}
type textureCube struct {
	texture
}

func (t *texture) ID() TexID {
	return TexID(t.id)
}

func (t *texture) Size() (int, int) {
	return t.width, t.height
}

func deleteTexture(id uint32) {
	mainthread.CallNonBlock(func() {
		gl.DeleteTextures(1, &id)
	})
}

func NewTexture2D() *texture2D {
	t := &texture2D{}
	gl.GenTextures(1, &t.id)
	runtime.AddCleanup(t, deleteTexture, t.id)
	return t
}

func (t *texture2D) Bind() {
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

func (t *texture2D) Target(int) uint32 {
	return gl.TEXTURE_2D
}

// Storage allocates uninitialized storage. The texture gets bound.
func (t *texture2D) Storage(w, h int, f texFormat) {
	t.Bind()
	t.width, t.height = w, h
	gl.TexImage2D(gl.TEXTURE_2D, 0, f.internal, int32(w), int32(h), 0, f.format, f.xtype, nil)
}

func NewTextureCube() *textureCube {
	t := &textureCube{}
	gl.GenTextures(1, &t.id)
	runtime.AddCleanup(t, deleteTexture, t.id)
	return t
}

func (t *textureCube) Bind() {
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, t.id)
}

func (t *textureCube) Target(face int) uint32 {
	return cubeFace(face)
}

// Storage allocates all six faces with w x h texels. The texture gets bound.
func (t *textureCube) Storage(w, h int, f texFormat) {
	t.Bind()
	t.width, t.height = w, h
	for face := 0; face < 6; face++ {
		gl.TexImage2D(cubeFace(face), 0, f.internal, int32(w), int32(h), 0, f.format, f.xtype, nil)
	}
}

// setParameters configures sampling of the currently bound texture.
func setParameters(target uint32, s sampler) {
	gl.TexParameteri(target, gl.TEXTURE_MIN_FILTER, s.filter)
	gl.TexParameteri(target, gl.TEXTURE_MAG_FILTER, s.filter)
	gl.TexParameteri(target, gl.TEXTURE_WRAP_S, s.wrap)
	gl.TexParameteri(target, gl.TEXTURE_WRAP_T, s.wrap)
	if target == gl.TEXTURE_CUBE_MAP {
		gl.TexParameteri(target, gl.TEXTURE_WRAP_R, s.wrap)
	}
	if s.wrap == gl.CLAMP_TO_BORDER {
		// outside the shadow map counts as lit
		border := [4]float32{1, 1, 1, 1}
		gl.TexParameterfv(target, gl.TEXTURE_BORDER_COLOR, &border[0])
	}
	if s.compare {
		gl.TexParameteri(target, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
		gl.TexParameteri(target, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)
	}
}

type Framebuffer struct {
	fbo uint32
}

func NewFramebuffer() *Framebuffer {
	f := &Framebuffer{}
	gl.GenFramebuffers(1, &f.fbo)
	runtime.AddCleanup(f, deleteFramebuffer, f.fbo)
	return f
}

func deleteFramebuffer(fbo uint32) {
	mainthread.CallNonBlock(func() {
		gl.DeleteFramebuffers(1, &fbo)
	})
}

func (f *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
}

// Attach attaches t or detaches the attachment point if t is nil. The
// framebuffer needs to be bound.
func (f *Framebuffer) Attach(attachment uint32, t Texture, face int) {
	if t == nil {
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachment, gl.TEXTURE_2D, 0, 0)
		return
	}
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachment, t.Target(face), uint32(t.ID()), 0)
}
