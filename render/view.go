// SPDX-License-Identifier: GPL-2.0-or-later

package render

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"goportal/conlog"
	"goportal/cvars"
	"goportal/geom"
	"goportal/light"
	"goportal/math/vec"
	"goportal/mdl"
	"goportal/vis"
	"goportal/world"
)

// fatal terminates the process. Tests replace it.
var fatal = func(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}

// LightProxyModel is the unit sphere drawn for omni lights.
const LightProxyModel = "sphere_1x1"

type DrawMode int

const (
	// DrawAmbient fills the G-buffer and clears it first.
	DrawAmbient DrawMode = iota
	// DrawAmbientModulate refills the diffuse target without clearing.
	DrawAmbientModulate
	// DrawShadow renders depth into the shadow map of the current light.
	DrawShadow
	// DrawLighting accumulates the current light.
	DrawLighting
)

func (m DrawMode) String() string {
	switch m {
	case DrawAmbient:
		return "ambient"
	case DrawAmbientModulate:
		return "ambient_modulate"
	case DrawShadow:
		return "shadow"
	case DrawLighting:
		return "lighting"
	}
	return fmt.Sprintf("DrawMode(%d)", int(m))
}

// RenderFlags are read only inputs of a pass.
type RenderFlags uint32

const (
	FlagOrthogonal RenderFlags = 1 << iota
	FlagCubemap
	FlagOnlySky
	FlagNoMaterials
	FlagNoTranslucent
	FlagNoOpaque
	FlagSkipVisUpdate
	FlagWaterReflection
	FlagCustomFrustum
)

type ViewParams struct {
	Origin vec.Vec3
	Angles vec.Vec3
	FovY   float32 // degree
	Near   float32
	Far    float32
	// OrthoSize is the half height of an orthogonal view.
	OrthoSize float32
	// Viewport is only used by the editor.
	Viewport Viewport
	// Frustum replaces the computed one with FlagCustomFrustum.
	Frustum geom.Frustum
	// Flags may contain FlagOrthogonal, FlagCubemap and FlagCustomFrustum.
	Flags RenderFlags
}

type Config struct {
	Mode    BuildMode
	Shadows ShadowConfig
}

func DefaultConfig() Config {
	return Config{Mode: ModeGame, Shadows: DefaultShadowConfig()}
}

type proxyMesh struct {
	id      MeshID
	indices int
}

// ViewRenderer draws a level for one view. It consumes the portal
// visibility to restrict every pass to what the camera can see.
type ViewRenderer struct {
	ID uuid.UUID
	// Ambient is the light added by DrawDeferredAmbient.
	Ambient vec.Vec3

	dev      Device
	mat      Materials
	models   ModelLoader
	cfg      Config
	strategy strategy
	lights   *light.Manager
	deferred bool

	level     *world.Level
	levelMesh MeshID

	flooder  vis.Flooder
	ownAreas *vis.RenderAreaList
	areas    *vis.RenderAreaList
	lists    map[uuid.UUID]*vis.RenderAreaList

	view       ViewParams
	viewport   Viewport
	frustum    geom.Frustum
	viewMatrix mgl32.Mat4
	projMatrix mgl32.Mat4

	drawMode      DrawMode
	flags         RenderFlags
	shadowFace    int
	shadowFrustum geom.Frustum
	cull          *geom.Frustum
	lightmap      int

	ready   bool
	gbuf    GBuffer
	shadows ShadowMaps
	sphere  proxyMesh
	box     proxyMesh
	quad    proxyMesh

	translucent []int
	stats       FrameStats
}

func NewViewRenderer(dev Device, mat Materials, models ModelLoader, cfg Config) *ViewRenderer {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	model := mat.LightingModel()
	r := &ViewRenderer{
		ID:       id,
		Ambient:  vec.Vec3{0.2, 0.2, 0.2},
		dev:      dev,
		mat:      mat,
		models:   models,
		cfg:      cfg,
		strategy: newStrategy(cfg.Mode),
		lights:   light.NewManager(model),
		deferred: model == light.Deferred,
		ownAreas: vis.NewRenderAreaList(0),
		lists:    make(map[uuid.UUID]*vis.RenderAreaList),
		lightmap: -1,
	}
	r.gbuf = GBuffer{
		Diffuse:  NoTarget,
		Normals:  NoTarget,
		Material: NoTarget,
		Depth:    NoTarget,
		Light:    NoTarget,
	}
	r.shadows = ShadowMaps{Point: NoTarget, Spot: NoTarget}
	r.areas = r.ownAreas
	r.SetView(ViewParams{})
	return r
}

// InitializeResources creates the G-buffer and the shadow maps once.
func (r *ViewRenderer) InitializeResources() error {
	if r.ready {
		return nil
	}
	w, h := r.strategy.targetSize(r.dev)
	if r.deferred {
		g, err := createGBuffer(r.dev, w, h)
		if err != nil {
			return err
		}
		r.gbuf = g
		r.InitDeferredShading()
	}
	if r.lights.LightingModel() != light.Unlit {
		s, err := createShadowMaps(r.dev, r.cfg.Shadows)
		if err != nil {
			return err
		}
		r.shadows = s
	}
	r.ready = true
	slog.Debug("Render resources created", slog.Int("w", w), slog.Int("h", h), slog.String("mode", r.cfg.Mode.String()))
	return nil
}

// InitDeferredShading uploads the light proxy meshes. Deferred shading can
// not work without the sphere proxy, failing to load it is fatal.
func (r *ViewRenderer) InitDeferredShading() {
	if !r.deferred {
		return
	}
	if r.models == nil {
		fatal("No model loader for deferred shading")
		return
	}
	m, err := r.models.Load(LightProxyModel)
	if err != nil {
		fatal("Could not load light proxy", slog.String("model", LightProxyModel), slog.Any("err", err))
		return
	}
	r.sphere = r.upload(m)
	r.box = r.upload(mdl.Box())
	r.quad = r.upload(mdl.Quad())
}

func (r *ViewRenderer) upload(m *mdl.Mesh) proxyMesh {
	id, err := r.dev.UploadMesh(m.Name, m.Vertices, m.Indices)
	if err != nil {
		fatal("Could not upload mesh", slog.String("mesh", m.Name), slog.Any("err", err))
	}
	return proxyMesh{id: id, indices: len(m.Indices)}
}

// SetLevel makes l the drawn level. All area lists are resized.
func (r *ViewRenderer) SetLevel(l *world.Level) error {
	r.level = l
	if l == nil {
		return nil
	}
	id, err := r.dev.UploadMesh(l.Name, l.Vertices, l.Indices)
	if err != nil {
		r.level = nil
		return fmt.Errorf("uploading level %s: %w", l.Name, err)
	}
	r.levelMesh = id
	r.ownAreas.Resize(len(l.Rooms))
	for _, a := range r.lists {
		a.Resize(len(l.Rooms))
	}
	return nil
}

func (r *ViewRenderer) Level() *world.Level {
	return r.level
}

func (r *ViewRenderer) Lights() *light.Manager {
	return r.lights
}

func (r *ViewRenderer) Stats() FrameStats {
	return r.stats
}

func (r *ViewRenderer) DrawMode() DrawMode {
	return r.drawMode
}

func (r *ViewRenderer) Frustum() *geom.Frustum {
	return &r.frustum
}

func (r *ViewRenderer) View() ViewParams {
	return r.view
}

// SetView sets the camera and computes its matrices and frustum.
func (r *ViewRenderer) SetView(p ViewParams) {
	if p.FovY <= 0 {
		p.FovY = 90
	}
	if p.Near <= 0 {
		p.Near = 1
	}
	if p.Far <= p.Near {
		p.Far = 8192
	}
	if p.OrthoSize <= 0 {
		p.OrthoSize = 512
	}
	r.view = p
	r.viewport = r.strategy.viewport(r.dev, &r.view)
	aspect := float32(1)
	if r.viewport.W > 0 && r.viewport.H > 0 {
		aspect = float32(r.viewport.W) / float32(r.viewport.H)
	}
	forward, _, up := vec.AngleVectors(p.Angles)
	eye := mgl32.Vec3(p.Origin)
	r.viewMatrix = mgl32.LookAtV(eye, eye.Add(mgl32.Vec3(forward)), mgl32.Vec3(up))
	if p.Flags&FlagOrthogonal != 0 {
		s := p.OrthoSize
		r.projMatrix = mgl32.Ortho(-s*aspect, s*aspect, -s, s, p.Near, p.Far)
	} else {
		r.projMatrix = mgl32.Perspective(mgl32.DegToRad(p.FovY), aspect, p.Near, p.Far)
	}
	if p.Flags&FlagCustomFrustum != 0 {
		r.frustum = p.Frustum
	} else {
		r.frustum = geom.FrustumFromMatrix(r.projMatrix.Mul4(r.viewMatrix))
	}
}

func (r *ViewRenderer) setViewMatrices() {
	r.dev.SetMatrix(MatrixProjection, r.projMatrix)
	r.dev.SetMatrix(MatrixView, r.viewMatrix)
	r.dev.SetMatrix(MatrixWorld, mgl32.Ident4())
}

// SetShadowFace selects the cube face or sun cascade of the next shadow
// pass.
func (r *ViewRenderer) SetShadowFace(face int) {
	r.shadowFace = max(face, 0)
}

// SetTargetLightmap selects the surfaces drawn while baking lightmaps.
func (r *ViewRenderer) SetTargetLightmap(i int) {
	r.lightmap = i
}

// SetDrawMode switches the pass and binds its targets.
func (r *ViewRenderer) SetDrawMode(m DrawMode) {
	r.drawMode = m
	r.cull = &r.frustum
	switch m {
	case DrawAmbient:
		if r.deferred {
			r.dev.ChangeRenderTargets(r.gbuf.colors(), r.gbuf.Depth, 0)
		} else {
			r.dev.ChangeRenderTargets(nil, NoTarget, 0)
		}
		r.dev.SetViewport(r.viewport)
		r.dev.Clear(ClearColor|ClearDepth, [4]float32{}, 1)
		r.dev.SetBlendMode(BlendNone)
		r.setViewMatrices()
	case DrawAmbientModulate:
		if r.deferred {
			r.dev.ChangeRenderTargets([]TargetID{r.gbuf.Diffuse}, r.gbuf.Depth, 0)
		} else {
			r.dev.ChangeRenderTargets(nil, NoTarget, 0)
		}
		r.dev.SetViewport(r.viewport)
		r.dev.SetBlendMode(BlendModulate)
		r.setViewMatrices()
	case DrawShadow:
		r.beginShadow()
	case DrawLighting:
		r.beginLighting()
	}
}

func (r *ViewRenderer) beginShadow() {
	l := r.mat.GetLight()
	if l == nil {
		slog.Warn("Shadow pass without light")
		return
	}
	target, face, size := r.shadows.target(l.Type, r.shadowFace)
	r.dev.ChangeRenderTargets(nil, target, face)
	r.dev.SetViewport(Viewport{W: size, H: size})
	r.dev.Clear(ClearDepth, [4]float32{}, 1)
	r.dev.SetBlendMode(BlendNone)
	view, proj := lightMatrices(l, r.shadowFace, r.view.Origin)
	r.dev.SetMatrix(MatrixProjection, proj)
	r.dev.SetMatrix(MatrixView, view)
	r.dev.SetMatrix(MatrixWorld, mgl32.Ident4())
	if l.Type == light.Sun {
		r.cull = nil
		return
	}
	r.shadowFrustum = geom.FrustumFromMatrix(proj.Mul4(view))
	r.cull = &r.shadowFrustum
}

func (r *ViewRenderer) beginLighting() {
	if r.deferred {
		r.dev.ChangeRenderTargets([]TargetID{r.gbuf.Light}, r.gbuf.Depth, 0)
	} else {
		r.dev.ChangeRenderTargets(nil, NoTarget, 0)
	}
	r.dev.SetViewport(r.viewport)
	r.dev.SetBlendMode(BlendAdditive)
	r.setViewMatrices()
	if r.deferred {
		r.gbuf.bind(r.dev)
	}
	l := r.mat.GetLight()
	if l == nil {
		return
	}
	if l.CastsShadows() {
		r.shadows.bind(r.dev, l.Type, 4)
	}
	c := vec.Scale(l.CurrentIntensity(), l.Color)
	d := l.Direction()
	r.dev.SetShaderConstant("light_origin", l.Origin[0], l.Origin[1], l.Origin[2], l.Radius)
	r.dev.SetShaderConstant("light_color", c[0], c[1], c[2])
	r.dev.SetShaderConstant("light_dir", d[0], d[1], d[2], l.Fov)
}

// UpdateAreaVisibility floods the portals from the camera. It keeps the
// previous visibility with FlagSkipVisUpdate.
func (r *ViewRenderer) UpdateAreaVisibility(flags RenderFlags) {
	if r.level == nil || flags&FlagSkipVisUpdate != 0 || cvars.RLockVis.Bool() {
		return
	}
	if len(r.areas.Areas) != len(r.level.Rooms) {
		r.areas.Resize(len(r.level.Rooms))
	}
	if cvars.RNoVis.Bool() || !r.strategy.portalCulling() {
		r.areas.Reset()
		r.areas.MarkAll()
	} else {
		var frustum *geom.Frustum
		if flags&FlagCubemap == 0 && r.view.Flags&FlagCubemap == 0 {
			frustum = &r.frustum
		}
		r.flooder.NoPortalCull = !cvars.RPortalCull.Bool()
		r.flooder.Update(r.level, r.areas, r.view.Origin, frustum)
	}
	r.stats.RoomsVisible = len(r.areas.VisibleRooms())
	r.stats.PlaneSets = r.areas.PlaneSetCount()
}

func (r *ViewRenderer) boxVisible(a *vis.RenderArea, b geom.AABB) bool {
	if !a.IsBoxVisible(b.Mins, b.Maxs) {
		return false
	}
	return r.cull == nil || !r.cull.CullBox(b.Mins, b.Maxs)
}

// DrawWorld draws the visible volumes of the level for the current draw
// mode. Translucent volumes are drawn last, back to front.
func (r *ViewRenderer) DrawWorld(flags RenderFlags) {
	if r.level == nil {
		return
	}
	r.flags = flags
	r.UpdateAreaVisibility(flags)
	r.translucent = r.translucent[:0]
	for ri := range r.level.Rooms {
		a := r.areas.Area(ri)
		if a == nil || !a.DoRender {
			continue
		}
		for _, vi := range r.level.Rooms[ri].Volumes {
			v := &r.level.Volumes[vi]
			if !r.boxVisible(a, v.Bounds) {
				continue
			}
			if v.Flags&world.VolumeTranslucent != 0 && r.drawMode != DrawShadow {
				r.translucent = append(r.translucent, vi)
				continue
			}
			r.drawVolume(vi)
		}
	}
	if len(r.translucent) == 0 {
		return
	}
	dist := func(vi int) float32 {
		return vec.Distance(r.level.Volumes[vi].Bounds.Center(), r.view.Origin)
	}
	slices.SortStableFunc(r.translucent, func(a, b int) int {
		return cmp.Compare(dist(b), dist(a))
	})
	for _, vi := range r.translucent {
		r.drawVolume(vi)
	}
}

func (r *ViewRenderer) drawVolume(vi int) {
	r.stats.VolumesDrawn++
	for _, si := range r.level.Volumes[vi].Surfaces {
		r.DrawSurfaceEx(si)
	}
}

// surfacePasses applies the pass filters to s.
func (r *ViewRenderer) surfacePasses(s *world.Surface) bool {
	sky := s.Flags&world.SurfaceSky != 0
	if sky != (r.flags&FlagOnlySky != 0) {
		return false
	}
	if s.Flags&world.SurfaceTranslucent != 0 {
		if r.flags&FlagNoTranslucent != 0 {
			return false
		}
	} else if r.flags&FlagNoOpaque != 0 {
		return false
	}
	if s.Flags&world.SurfaceWater != 0 && r.flags&FlagWaterReflection != 0 {
		return false
	}
	if s.Flags&world.SurfaceBlockLight != 0 && r.drawMode != DrawShadow {
		return false
	}
	if r.strategy.lightmapFilter() && s.Lightmap != r.lightmap {
		return false
	}
	if r.drawMode == DrawLighting {
		if l := r.mat.GetLight(); l != nil {
			if b, ok := l.Bounds(); ok && !b.Intersects(s.Bounds) {
				return false
			}
		}
	}
	a := r.areas.Area(s.Room)
	if a == nil {
		return false
	}
	return r.boxVisible(a, s.Bounds)
}

// DrawSurfaceEx draws surface si if it passes the filters of the current
// pass. A surface without material is skipped.
func (r *ViewRenderer) DrawSurfaceEx(si int) bool {
	if r.level == nil || si < 0 || si >= len(r.level.Surfaces) {
		return false
	}
	s := &r.level.Surfaces[si]
	if !r.surfacePasses(s) {
		r.stats.SurfacesSkipped++
		return false
	}
	if r.flags&FlagNoMaterials == 0 && r.drawMode != DrawShadow {
		if !r.mat.BindMaterial(s.Material, true) {
			r.stats.MissingMaterials++
			slog.Debug("Surface without material", slog.Int("surface", si), slog.Int("material", s.Material))
			return false
		}
	}
	r.dev.DrawIndexedPrimitives(r.levelMesh, s.FirstIndex, s.NumIndices)
	r.stats.SurfacesDrawn++
	return true
}

func (r *ViewRenderer) drawFullscreen(mesh proxyMesh) {
	r.dev.SetMatrix(MatrixProjection, mgl32.Ident4())
	r.dev.SetMatrix(MatrixView, mgl32.Ident4())
	r.dev.SetMatrix(MatrixWorld, mgl32.Ident4())
	r.dev.DrawIndexedPrimitives(mesh.id, 0, mesh.indices)
}

// DrawDeferredAmbient composites the ambient light from the G-buffer into
// the light accumulation target.
func (r *ViewRenderer) DrawDeferredAmbient() {
	if !r.deferred {
		return
	}
	r.dev.ChangeRenderTargets([]TargetID{r.gbuf.Light}, NoTarget, 0)
	r.dev.SetViewport(r.viewport)
	r.dev.SetBlendMode(BlendNone)
	r.gbuf.bind(r.dev)
	r.dev.SetShaderConstant("ambient", r.Ambient[0], r.Ambient[1], r.Ambient[2])
	r.drawFullscreen(r.quad)
}

// lightVisible reports whether l reaches a visible part of the level.
func (r *ViewRenderer) lightVisible(l *light.Light) bool {
	b, ok := l.Bounds()
	if !ok {
		return true
	}
	if r.frustum.CullBox(b.Mins, b.Maxs) {
		return false
	}
	for ri := range r.level.Rooms {
		a := r.areas.Area(ri)
		if a == nil || !a.DoRender || !r.level.Rooms[ri].Bounds.Intersects(b) {
			continue
		}
		if a.IsBoxVisible(b.Mins, b.Maxs) {
			return true
		}
	}
	return false
}

func (r *ViewRenderer) drawLightProxy(l *light.Light) {
	switch l.Type {
	case light.Omni:
		m := mgl32.Translate3D(l.Origin[0], l.Origin[1], l.Origin[2]).
			Mul4(mgl32.Scale3D(l.Radius, l.Radius, l.Radius))
		r.dev.SetMatrix(MatrixWorld, m)
		r.dev.DrawIndexedPrimitives(r.sphere.id, 0, r.sphere.indices)
	case light.Spot:
		b := spotBounds(l)
		c := b.Center()
		e := vec.Scale(0.5, vec.Sub(b.Maxs, b.Mins))
		m := mgl32.Translate3D(c[0], c[1], c[2]).Mul4(mgl32.Scale3D(e[0], e[1], e[2]))
		r.dev.SetMatrix(MatrixWorld, m)
		r.dev.DrawIndexedPrimitives(r.box.id, 0, r.box.indices)
	case light.Sun:
		r.drawFullscreen(r.quad)
	}
}

// spotBounds returns a box around the cone of a spot light.
func spotBounds(l *light.Light) geom.AABB {
	fov := min(max(l.Fov, 1), 179)
	w := l.Radius * math32.Tan(fov*math32.Pi/360)
	tip := vec.MA(l.Origin, l.Radius, l.Direction())
	e := vec.Vec3{w, w, w}
	b := geom.BoundsOf([]vec.Vec3{l.Origin, vec.Sub(tip, e), vec.Add(tip, e)})
	return b
}

// RenderLights runs the shadow and lighting passes of every visible light.
func (r *ViewRenderer) RenderLights() {
	if r.level == nil || r.lights.LightingModel() == light.Unlit || !cvars.RDynamic.Bool() {
		return
	}
	for i := 0; i < r.lights.Count(); i++ {
		l := r.lights.At(i)
		if !r.lightVisible(l) {
			r.stats.LightsCulled++
			continue
		}
		r.mat.SetLight(l)
		if l.CastsShadows() && cvars.RShadows.Bool() {
			for f := 0; f < r.shadows.Faces(l.Type); f++ {
				r.SetShadowFace(f)
				r.SetDrawMode(DrawShadow)
				r.DrawWorld(FlagSkipVisUpdate | FlagNoTranslucent | FlagNoMaterials)
				r.stats.ShadowPasses++
			}
		}
		r.SetDrawMode(DrawLighting)
		if r.deferred {
			r.drawLightProxy(l)
		} else {
			r.DrawWorld(FlagSkipVisUpdate | FlagNoTranslucent)
		}
		r.stats.LightsDrawn++
	}
	r.mat.SetLight(nil)
}

// resolve copies the light accumulation target to the backbuffer.
func (r *ViewRenderer) resolve() {
	r.dev.ChangeRenderTargets(nil, NoTarget, 0)
	r.dev.SetViewport(r.viewport)
	r.dev.SetBlendMode(BlendNone)
	r.dev.SetTexture(0, r.gbuf.Light)
	r.drawFullscreen(r.quad)
}

// RenderFrame draws one frame: visibility, ambient pass, lights and the
// forward pass of sky and translucent surfaces.
func (r *ViewRenderer) RenderFrame() {
	r.stats = FrameStats{}
	if r.level == nil {
		return
	}
	if err := r.InitializeResources(); err != nil {
		slog.Error("Could not create render resources", slog.Any("err", err))
		return
	}
	r.UpdateAreaVisibility(0)
	r.SetDrawMode(DrawAmbient)
	r.DrawWorld(FlagSkipVisUpdate | FlagNoTranslucent)
	r.DrawDeferredAmbient()
	r.RenderLights()

	r.SetDrawMode(DrawLighting)
	r.dev.SetBlendMode(BlendNone)
	r.DrawWorld(FlagSkipVisUpdate | FlagOnlySky)
	r.dev.SetBlendMode(BlendAlpha)
	r.DrawWorld(FlagSkipVisUpdate | FlagNoOpaque)
	if r.deferred {
		r.resolve()
	}
	if cvars.RSpeeds.Bool() {
		conlog.Printf("%v\n", r.stats)
	}
}

func (r *ViewRenderer) AllocLight() light.Light {
	return light.AllocLight()
}

func (r *ViewRenderer) AddLight(l light.Light) (light.Handle, bool) {
	return r.lights.AddLight(l)
}

func (r *ViewRenderer) RemoveLight(i int) {
	r.lights.RemoveLight(i)
}

func (r *ViewRenderer) UpdateLights(dt float32) {
	r.lights.UpdateLights(dt)
}

// GetRoomsForPoint returns the rooms containing p, none without a level.
func (r *ViewRenderer) GetRoomsForPoint(p vec.Vec3) []int {
	if r.level == nil {
		return nil
	}
	return r.level.RoomsForPoint(p)
}

func (r *ViewRenderer) GetRoomsForSphere(center vec.Vec3, radius float32) []int {
	if r.level == nil {
		return nil
	}
	return r.level.RoomsForSphere(center, radius)
}

// CreateRenderAreaList returns a list sized for the current level. It is
// kept sized by SetLevel until destroyed.
func (r *ViewRenderer) CreateRenderAreaList() *vis.RenderAreaList {
	n := 0
	if r.level != nil {
		n = len(r.level.Rooms)
	}
	l := vis.NewRenderAreaList(n)
	r.lists[l.ID] = l
	return l
}

func (r *ViewRenderer) DestroyRenderAreaList(l *vis.RenderAreaList) {
	if l == nil {
		return
	}
	delete(r.lists, l.ID)
	if r.areas == l {
		r.areas = r.ownAreas
	}
}

// SetAreaList makes the following passes use l. nil selects the list of
// the renderer.
func (r *ViewRenderer) SetAreaList(l *vis.RenderAreaList) {
	if l == nil {
		l = r.ownAreas
	}
	r.areas = l
}

func (r *ViewRenderer) AreaList() *vis.RenderAreaList {
	return r.areas
}
