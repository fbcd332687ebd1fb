// SPDX-License-Identifier: GPL-2.0-or-later

package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"goportal/light"
	"goportal/math/vec"
)

type ShadowConfig struct {
	PointSize   int
	SpotSize    int
	SunSize     int
	SunCascades int
}

func DefaultShadowConfig() ShadowConfig {
	return ShadowConfig{
		PointSize:   512,
		SpotSize:    1024,
		SunSize:     2048,
		SunCascades: 2,
	}
}

// GBuffer holds the targets of the ambient pass and the light accumulation
// target.
type GBuffer struct {
	Diffuse  TargetID
	Normals  TargetID
	Material TargetID
	Depth    TargetID
	Light    TargetID
	W, H     int
}

func createGBuffer(d Device, w, h int) (GBuffer, error) {
	g := GBuffer{W: w, H: h}
	targets := []struct {
		name   string
		format Format
		dst    *TargetID
	}{
		{"gbuffer_diffuse", FormatRGBA8, &g.Diffuse},
		{"gbuffer_normals", FormatRGBA16F, &g.Normals},
		{"gbuffer_material", FormatRGBA8, &g.Material},
		{"gbuffer_depth", FormatDepth24, &g.Depth},
		{"light_accum", FormatRGBA16F, &g.Light},
	}
	for _, t := range targets {
		id, err := d.CreateNamedRenderTarget(t.name, w, h, t.format, FilterPoint, AddressClamp, CompareNone, 0)
		if err != nil {
			return g, fmt.Errorf("creating %s: %w", t.name, err)
		}
		*t.dst = id
	}
	return g, nil
}

func (g *GBuffer) colors() []TargetID {
	return []TargetID{g.Diffuse, g.Normals, g.Material}
}

// bind binds the G-buffer targets as shader inputs 0 to 3.
func (g *GBuffer) bind(d Device) {
	d.SetTexture(0, g.Diffuse)
	d.SetTexture(1, g.Normals)
	d.SetTexture(2, g.Depth)
	d.SetTexture(3, g.Material)
}

// ShadowMaps is the fixed set of shadow map targets shared by all lights
// of a type.
type ShadowMaps struct {
	Point TargetID
	Spot  TargetID
	Sun   []TargetID
	cfg   ShadowConfig
}

func createShadowMaps(d Device, cfg ShadowConfig) (ShadowMaps, error) {
	s := ShadowMaps{cfg: cfg}
	var err error
	s.Point, err = d.CreateNamedRenderTarget("shadow_point", cfg.PointSize, cfg.PointSize,
		FormatDepth32F, FilterLinear, AddressClamp, CompareLessEqual, TargetShadow|TargetCube)
	if err != nil {
		return s, fmt.Errorf("creating point shadow map: %w", err)
	}
	s.Spot, err = d.CreateNamedRenderTarget("shadow_spot", cfg.SpotSize, cfg.SpotSize,
		FormatDepth24, FilterLinear, AddressBorder, CompareLessEqual, TargetShadow)
	if err != nil {
		return s, fmt.Errorf("creating spot shadow map: %w", err)
	}
	for i := 0; i < cfg.SunCascades; i++ {
		id, err := d.CreateNamedRenderTarget(fmt.Sprintf("shadow_sun%d", i), cfg.SunSize, cfg.SunSize,
			FormatDepth24, FilterLinear, AddressBorder, CompareLessEqual, TargetShadow)
		if err != nil {
			return s, fmt.Errorf("creating sun shadow map %d: %w", i, err)
		}
		s.Sun = append(s.Sun, id)
	}
	return s, nil
}

// Faces returns the number of shadow passes a light of type t needs.
func (s *ShadowMaps) Faces(t light.Type) int {
	switch t {
	case light.Omni:
		return 6
	case light.Sun:
		return len(s.Sun)
	}
	return 1
}

// target returns the shadow map, the cube face to render into and the
// size of the map.
func (s *ShadowMaps) target(t light.Type, face int) (TargetID, int, int) {
	switch t {
	case light.Omni:
		return s.Point, face % 6, s.cfg.PointSize
	case light.Sun:
		if len(s.Sun) == 0 {
			return NoTarget, 0, 0
		}
		face = min(max(face, 0), len(s.Sun)-1)
		return s.Sun[face], 0, s.cfg.SunSize
	}
	return s.Spot, 0, s.cfg.SpotSize
}

// bind binds the maps of type t as shader inputs starting at unit.
func (s *ShadowMaps) bind(d Device, t light.Type, unit int) {
	switch t {
	case light.Omni:
		d.SetTexture(unit, s.Point)
	case light.Spot:
		d.SetTexture(unit, s.Spot)
	case light.Sun:
		for i, id := range s.Sun {
			d.SetTexture(unit+i, id)
		}
	}
}

// cube face axes in the usual +x, -x, +y, -y, +z, -z order
var cubeFaces = [6]struct{ dir, up mgl32.Vec3 }{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, -1, 0}},
}

const shadowNear = 1

// lightMatrices returns view and projection of the shadow pass face of l.
// Sun cascades are centered at center and grow by a factor of 4.
func lightMatrices(l *light.Light, face int, center vec.Vec3) (mgl32.Mat4, mgl32.Mat4) {
	origin := mgl32.Vec3(l.Origin)
	far := max(l.Radius, shadowNear+1)
	switch l.Type {
	case light.Omni:
		f := cubeFaces[face%6]
		view := mgl32.LookAtV(origin, origin.Add(f.dir), f.up)
		return view, mgl32.Perspective(mgl32.DegToRad(90), 1, shadowNear, far)
	case light.Sun:
		dir := mgl32.Vec3(l.Direction())
		ext := max(l.Radius, 1)
		for i := 0; i < face; i++ {
			ext *= 4
		}
		c := mgl32.Vec3(center)
		eye := c.Sub(dir.Mul(2 * ext))
		view := mgl32.LookAtV(eye, c, upFor(dir))
		return view, mgl32.Ortho(-ext, ext, -ext, ext, 0, 4*ext)
	}
	dir := mgl32.Vec3(l.Direction())
	view := mgl32.LookAtV(origin, origin.Add(dir), upFor(dir))
	fov := l.Fov
	if fov <= 0 || fov >= 180 {
		fov = 90
	}
	return view, mgl32.Perspective(mgl32.DegToRad(fov), 1, shadowNear, far)
}

// upFor returns an up vector that is not parallel to dir.
func upFor(dir mgl32.Vec3) mgl32.Vec3 {
	if abs(dir[2]) > 0.99 {
		return mgl32.Vec3{1, 0, 0}
	}
	return mgl32.Vec3{0, 0, 1}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
