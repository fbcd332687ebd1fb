// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"goportal/light"
	"goportal/render"
)

// Materials shades every material with a flat color.
type Materials struct {
	dev    render.Device
	colors map[int][4]float32
	model  light.LightingModel
	light  *light.Light
	// pending is applied on the next immediate bind
	pending int
}

var _ render.Materials = (*Materials)(nil)

func NewMaterials(dev render.Device, model light.LightingModel) *Materials {
	return &Materials{
		dev:     dev,
		colors:  make(map[int][4]float32),
		model:   model,
		pending: -1,
	}
}

func (m *Materials) Set(id int, color [4]float32) {
	m.colors[id] = color
}

func (m *Materials) BindMaterial(id int, applyImmediately bool) bool {
	c, ok := m.colors[id]
	if !ok {
		return false
	}
	if !applyImmediately {
		m.pending = id
		return true
	}
	m.pending = -1
	m.dev.SetShaderConstant("material_color", c[0], c[1], c[2], c[3])
	return true
}

// Flush applies a material bound without applyImmediately.
func (m *Materials) Flush() {
	if m.pending < 0 {
		return
	}
	id := m.pending
	m.BindMaterial(id, true)
}

func (m *Materials) SetLight(l *light.Light) {
	m.light = l
	var lit float32
	if l != nil {
		lit = 1
	}
	m.dev.SetShaderConstant("lit", lit)
}

func (m *Materials) GetLight() *light.Light {
	return m.light
}

func (m *Materials) LightingModel() light.LightingModel {
	return m.model
}
