// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"goportal/config"
	"goportal/conlog"
	"goportal/mdl"
	"goportal/render"
	"goportal/world"
)

// runHeadless renders against a Recorder. The camera turns once around
// over all frames.
func runHeadless(cfg config.Config, level *world.Level, w *config.Watcher) error {
	dev := render.NewRecorder(cfg.Window.Width, cfg.Window.Height)
	mat := render.NewMaterialTable(cfg.LightingModel(), materialIDs(level)...)
	a, err := newApp(dev, mat, mdl.NewLoader(), cfg, level)
	if err != nil {
		return err
	}
	a.console.AddText(*execText)
	n := max(*frames, 1)
	turn := 360 / float32(n)
	for a.frames < n && !a.quit {
		pollConfig(w)
		dev.Calls = dev.Calls[:0]
		a.frame(moves{yaw: turn})
	}
	conlog.Printf("%d frames, %d device calls in the last: %v\n", a.frames, len(dev.Calls), a.renderer.Stats())
	return nil
}
