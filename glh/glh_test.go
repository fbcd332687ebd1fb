// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"testing"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goportal/light"
	"goportal/render"
)

func TestTextureFormat(t *testing.T) {
	tests := []struct {
		in    render.Format
		want  int32
		depth bool
	}{
		{render.FormatRGBA8, gl.RGBA8, false},
		{render.FormatRGBA16F, gl.RGBA16F, false},
		{render.FormatRG16F, gl.RG16F, false},
		{render.FormatDepth24, gl.DEPTH_COMPONENT24, true},
		{render.FormatDepth32F, gl.DEPTH_COMPONENT32F, true},
	}
	for _, tt := range tests {
		f, err := textureFormat(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, f.internal)
		assert.Equal(t, tt.depth, f.depth())
	}
	_, err := textureFormat(render.Format(99))
	assert.Error(t, err)
}

func TestSampler(t *testing.T) {
	s := newSampler(render.FilterLinear, render.AddressBorder, render.CompareLessEqual)
	assert.Equal(t, sampler{gl.LINEAR, gl.CLAMP_TO_BORDER, true}, s)
	s = newSampler(render.FilterPoint, render.AddressClamp, render.CompareNone)
	assert.Equal(t, sampler{gl.NEAREST, gl.CLAMP_TO_EDGE, false}, s)
	s = newSampler(render.FilterPoint, render.AddressWrap, render.CompareNone)
	assert.Equal(t, int32(gl.REPEAT), s.wrap)
}

func TestBlendFunc(t *testing.T) {
	on, _, _ := blendFunc(render.BlendNone)
	assert.False(t, on)
	on, src, dst := blendFunc(render.BlendAdditive)
	assert.True(t, on)
	assert.Equal(t, []uint32{gl.ONE, gl.ONE}, []uint32{src, dst})
	_, src, dst = blendFunc(render.BlendModulate)
	assert.Equal(t, []uint32{gl.DST_COLOR, gl.ZERO}, []uint32{src, dst})
	_, src, dst = blendFunc(render.BlendAlpha)
	assert.Equal(t, []uint32{gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA}, []uint32{src, dst})
}

func TestCubeFace(t *testing.T) {
	assert.Equal(t, uint32(gl.TEXTURE_CUBE_MAP_POSITIVE_X), cubeFace(0))
	assert.Equal(t, uint32(gl.TEXTURE_CUBE_MAP_NEGATIVE_Z), cubeFace(5))
	assert.Equal(t, uint32(gl.TEXTURE_CUBE_MAP_NEGATIVE_Z), cubeFace(9))
}

func TestClearMask(t *testing.T) {
	assert.Equal(t, uint32(gl.COLOR_BUFFER_BIT|gl.DEPTH_BUFFER_BIT), clearMask(render.ClearColor|render.ClearDepth))
	assert.Equal(t, uint32(gl.DEPTH_BUFFER_BIT), clearMask(render.ClearDepth))
	assert.Equal(t, "view", matrixUniform(render.MatrixView))
}

func TestMaterials(t *testing.T) {
	rec := render.NewRecorder(640, 480)
	m := NewMaterials(rec, light.Forward)
	m.Set(3, [4]float32{1, 0.5, 0, 1})
	assert.False(t, m.BindMaterial(1, true))
	assert.True(t, m.BindMaterial(3, false))
	assert.Empty(t, rec.Calls)
	m.Flush()
	require.Len(t, rec.Calls, 1)
	assert.Equal(t, "SetShaderConstant", rec.Calls[0].Op)
	assert.Equal(t, []any{"material_color", []float32{1, 0.5, 0, 1}}, rec.Calls[0].Args)
	m.Flush()
	assert.Len(t, rec.Calls, 1)

	l := &light.Light{Radius: 10}
	m.SetLight(l)
	assert.Same(t, l, m.GetLight())
	assert.Equal(t, []any{"lit", []float32{1}}, rec.Calls[1].Args)
	m.SetLight(nil)
	assert.Equal(t, []any{"lit", []float32{0}}, rec.Calls[2].Args)
	assert.Equal(t, light.Forward, m.LightingModel())
}
