// SPDX-License-Identifier: GPL-2.0-or-later

package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"goportal/light"
	"goportal/math/vec"
	"goportal/mdl"
)

type Format int

const (
	FormatRGBA8 Format = iota
	FormatRGBA16F
	FormatRG16F
	FormatDepth24
	FormatDepth32F
)

type Filter int

const (
	FilterPoint Filter = iota
	FilterLinear
)

type Address int

const (
	AddressWrap Address = iota
	AddressClamp
	AddressBorder
)

// Compare selects depth comparison sampling for shadow maps.
type Compare int

const (
	CompareNone Compare = iota
	CompareLessEqual
)

type TargetFlags uint32

const (
	TargetCube TargetFlags = 1 << iota
	TargetShadow
)

// TargetID references a render target of a device. NoTarget is the
// backbuffer for color and no attachment for depth.
type TargetID int

const NoTarget TargetID = -1

type MeshID int

type BlendMode int

const (
	BlendNone BlendMode = iota
	BlendAdditive
	BlendAlpha
	BlendModulate
)

type MatrixKind int

const (
	MatrixProjection MatrixKind = iota
	MatrixView
	MatrixWorld
)

type ClearFlags int

const (
	ClearColor ClearFlags = 1 << iota
	ClearDepth
)

type Viewport struct {
	X, Y, W, H int
}

// Device is the GPU abstraction the renderer draws with.
type Device interface {
	CreateNamedRenderTarget(name string, w, h int, format Format, filter Filter, address Address, compare Compare, flags TargetFlags) (TargetID, error)
	// ChangeRenderTargets binds colors and depth. face selects the cube face
	// of cube targets.
	ChangeRenderTargets(colors []TargetID, depth TargetID, face int)
	Clear(flags ClearFlags, color [4]float32, depth float32)
	SetViewport(vp Viewport)
	SetMatrix(kind MatrixKind, m mgl32.Mat4)
	SetTexture(unit int, t TargetID)
	SetBlendMode(b BlendMode)
	SetShaderConstant(name string, v ...float32)
	UploadMesh(name string, vertices []vec.Vec3, indices []uint32) (MeshID, error)
	DrawIndexedPrimitives(mesh MeshID, firstIndex, numIndices int)
	BackbufferSize() (w, h int)
}

// Materials binds surface materials and holds the light they are shaded
// with.
type Materials interface {
	// BindMaterial binds the material id. It returns false if there is no
	// such material.
	BindMaterial(id int, applyImmediately bool) bool
	SetLight(l *light.Light)
	GetLight() *light.Light
	LightingModel() light.LightingModel
}

type ModelLoader interface {
	Load(name string) (*mdl.Mesh, error)
}
