// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"log"

	"github.com/gopxl/mainthread/v2"
	"github.com/veandco/go-sdl2/sdl"

	"goportal/config"
	"goportal/conlog"
	"goportal/cvars"
	"goportal/glh"
	"goportal/input"
	"goportal/keys"
	"goportal/mdl"
	"goportal/window"
	"goportal/world"
)

func openWindow(cfg config.Config) error {
	v := sdl.Version{}
	sdl.GetVersion(&v)
	log.Printf("Found SDL version %d.%d.%d\n", v.Major, v.Minor, v.Patch)
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return err
	}
	if err := window.SetMode(window.Mode{
		Title:      "portalview",
		Width:      int32(cfg.Window.Width),
		Height:     int32(cfg.Window.Height),
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    cfg.Window.Samples,
	}); err != nil {
		return err
	}
	if sdl.SetRelativeMouseMode(true) != 0 {
		conlog.Printf("WARNING: SDL_SetRelativeMouseMode(SDL_TRUE) failed.\n")
	}
	return nil
}

// runWindow runs on its own goroutine. Everything touching SDL or GL is
// sent to the main thread.
func runWindow(cfg config.Config, level *world.Level, w *config.Watcher) error {
	var a *app
	var err error
	mainthread.Call(func() {
		if err = openWindow(cfg); err != nil {
			return
		}
		var dev *glh.Device
		if dev, err = glh.NewDevice(window.Size); err != nil {
			return
		}
		mat := glh.NewMaterials(dev, cfg.LightingModel())
		for i, id := range materialIDs(level) {
			mat.Set(id, materialColor(i))
		}
		a, err = newApp(dev, mat, mdl.NewLoader(), cfg, level)
	})
	defer mainthread.Call(func() {
		window.Shutdown()
		sdl.Quit()
	})
	if err != nil {
		return err
	}
	keys.SetDefaults()
	a.console.AddText(*execText)
	for !a.quit && (*frames == 0 || a.frames < *frames) {
		pollConfig(w)
		mainthread.Call(func() {
			a.frame(pollInput(a))
			window.EndRendering()
		})
	}
	return nil
}

func pollInput(a *app) moves {
	var m moves
	sens := cvars.Sensitivity.Value()
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.QuitEvent:
			a.quit = true
		case *sdl.WindowEvent:
			if t.Event == sdl.WINDOWEVENT_FOCUS_LOST {
				input.ResetAll()
			}
		case *sdl.KeyboardEvent:
			if t.Repeat != 0 {
				continue
			}
			name := sdl.GetScancodeName(t.Keysym.Scancode)
			a.console.AddText(keys.Event(name, int(t.Keysym.Scancode), t.State == sdl.PRESSED))
		case *sdl.MouseMotionEvent:
			m.yaw -= float32(t.XRel) * sens
			m.pitch += float32(t.YRel) * sens
		}
	}
	return m
}
