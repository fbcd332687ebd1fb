// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"slices"

	"goportal/alias"
	"goportal/cmd"
	"goportal/config"
	"goportal/conlog"
	"goportal/cvar"
	"goportal/cvars"
	"goportal/math/vec"
	"goportal/qtime"
	"goportal/render"
	"goportal/world"
)

type app struct {
	renderer *render.ViewRenderer
	cam      camera
	console  *cmd.Buffer
	clock    *qtime.Clock
	quit     bool
	frames   int
}

var (
	// current is the app the console commands work on.
	current *app
	aliases = alias.New()
)

func init() {
	cmd.Must(aliases.Register(cmd.AddCommand))
}

func newApp(dev render.Device, mat render.Materials, models render.ModelLoader, cfg config.Config, level *world.Level) (*app, error) {
	r := render.NewViewRenderer(dev, mat, models, cfg.Render())
	if err := r.SetLevel(level); err != nil {
		return nil, err
	}
	a := &app{
		renderer: r,
		console:  cmd.NewBuffer(),
		clock:    qtime.NewClock(),
	}
	a.console.SetExecutors([]cmd.Executor{cmd.Execute, cvar.Execute, aliases.Executor(a.console)})
	if len(level.Rooms) > 0 {
		a.cam.origin = level.Rooms[0].Bounds.Center()
	}
	current = a
	return a, nil
}

func (a *app) frame(m moves) {
	dt := a.clock.Frame()
	if err := a.console.Execute(); err != nil {
		conlog.Printf("%v\n", err)
	}
	a.cam.update(m.add(buttonMoves(dt)), dt)
	a.renderer.UpdateLights(dt)
	amb := cvars.RAmbient.Value()
	a.renderer.Ambient = vec.Vec3{amb, amb, amb}
	a.renderer.SetView(render.ViewParams{
		Origin: a.cam.origin,
		Angles: a.cam.angles,
		FovY:   cvars.Fov.Value(),
		Near:   1,
		Far:    8192,
	})
	a.renderer.RenderFrame()
	a.frames++
}

// materialIDs returns the sorted distinct materials of l.
func materialIDs(l *world.Level) []int {
	var ids []int
	for _, s := range l.Surfaces {
		if !slices.Contains(ids, s.Material) {
			ids = append(ids, s.Material)
		}
	}
	slices.Sort(ids)
	return ids
}

var palette = [][4]float32{
	{0.8, 0.8, 0.8, 1},
	{0.7, 0.5, 0.4, 1},
	{0.4, 0.6, 0.4, 1},
	{0.2, 0.4, 0.8, 0.5},
	{0.5, 0.7, 1, 1},
	{0.6, 0.4, 0.7, 1},
}

func materialColor(i int) [4]float32 {
	return palette[i%len(palette)]
}
