// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/pkg/errors"

	"goportal/render"
)

type texFormat struct {
	internal int32
	format   uint32
	xtype    uint32
}

func (f texFormat) depth() bool {
	return f.format == gl.DEPTH_COMPONENT
}

func textureFormat(f render.Format) (texFormat, error) {
	switch f {
	case render.FormatRGBA8:
		return texFormat{gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE}, nil
	case render.FormatRGBA16F:
		return texFormat{gl.RGBA16F, gl.RGBA, gl.HALF_FLOAT}, nil
	case render.FormatRG16F:
		return texFormat{gl.RG16F, gl.RG, gl.HALF_FLOAT}, nil
	case render.FormatDepth24:
		return texFormat{gl.DEPTH_COMPONENT24, gl.DEPTH_COMPONENT, gl.UNSIGNED_INT}, nil
	case render.FormatDepth32F:
		return texFormat{gl.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT}, nil
	}
	return texFormat{}, errors.Errorf("unknown texture format %d", f)
}

type sampler struct {
	filter  int32
	wrap    int32
	compare bool
}

func newSampler(f render.Filter, a render.Address, c render.Compare) sampler {
	s := sampler{
		filter:  gl.NEAREST,
		wrap:    gl.REPEAT,
		compare: c == render.CompareLessEqual,
	}
	if f == render.FilterLinear {
		s.filter = gl.LINEAR
	}
	switch a {
	case render.AddressClamp:
		s.wrap = gl.CLAMP_TO_EDGE
	case render.AddressBorder:
		s.wrap = gl.CLAMP_TO_BORDER
	}
	return s
}

// blendFunc returns the source and destination factors, enabled is false
// for opaque drawing.
func blendFunc(b render.BlendMode) (enabled bool, src, dst uint32) {
	switch b {
	case render.BlendAdditive:
		return true, gl.ONE, gl.ONE
	case render.BlendAlpha:
		return true, gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA
	case render.BlendModulate:
		return true, gl.DST_COLOR, gl.ZERO
	}
	return false, gl.ONE, gl.ZERO
}

func cubeFace(face int) uint32 {
	return gl.TEXTURE_CUBE_MAP_POSITIVE_X + uint32(min(max(face, 0), 5))
}

func clearMask(f render.ClearFlags) uint32 {
	var m uint32
	if f&render.ClearColor != 0 {
		m |= gl.COLOR_BUFFER_BIT
	}
	if f&render.ClearDepth != 0 {
		m |= gl.DEPTH_BUFFER_BIT
	}
	return m
}

func matrixUniform(k render.MatrixKind) string {
	switch k {
	case render.MatrixProjection:
		return "projection"
	case render.MatrixView:
		return "view"
	}
	return "world"
}
