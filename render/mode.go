// SPDX-License-Identifier: GPL-2.0-or-later

package render

import (
	"fmt"
	"strings"
)

// BuildMode selects how the renderer is used: by the game, by the level
// editor or by the lightmap compiler.
type BuildMode int

const (
	ModeGame BuildMode = iota
	ModeEditor
	ModeLightmap
)

func (m BuildMode) String() string {
	switch m {
	case ModeGame:
		return "game"
	case ModeEditor:
		return "editor"
	case ModeLightmap:
		return "lightmap"
	}
	return fmt.Sprintf("BuildMode(%d)", int(m))
}

func ParseBuildMode(s string) (BuildMode, error) {
	switch strings.ToLower(s) {
	case "", "game":
		return ModeGame, nil
	case "editor":
		return ModeEditor, nil
	case "lightmap":
		return ModeLightmap, nil
	}
	return ModeGame, fmt.Errorf("unknown build mode %q", s)
}

// LightmapSize is the target size while baking lightmaps.
const LightmapSize = 256

// strategy holds everything that differs between the build modes.
type strategy interface {
	// targetSize returns the size of the G-buffer targets.
	targetSize(d Device) (int, int)
	// viewport returns the viewport of the main passes.
	viewport(d Device, p *ViewParams) Viewport
	portalCulling() bool
	lightmapFilter() bool
}

func newStrategy(m BuildMode) strategy {
	switch m {
	case ModeEditor:
		return editorStrategy{}
	case ModeLightmap:
		return lightmapStrategy{}
	}
	return gameStrategy{}
}

type gameStrategy struct{}

func (gameStrategy) targetSize(d Device) (int, int) {
	return d.BackbufferSize()
}

func (gameStrategy) viewport(d Device, _ *ViewParams) Viewport {
	w, h := d.BackbufferSize()
	return Viewport{W: w, H: h}
}

func (gameStrategy) portalCulling() bool  { return true }
func (gameStrategy) lightmapFilter() bool { return false }

// editorStrategy renders into a viewport of the editor window.
type editorStrategy struct{}

func (editorStrategy) targetSize(d Device) (int, int) {
	return d.BackbufferSize()
}

func (editorStrategy) viewport(d Device, p *ViewParams) Viewport {
	if p.Viewport.W > 0 && p.Viewport.H > 0 {
		return p.Viewport
	}
	w, h := d.BackbufferSize()
	return Viewport{W: w, H: h}
}

func (editorStrategy) portalCulling() bool  { return true }
func (editorStrategy) lightmapFilter() bool { return false }

// lightmapStrategy sees every room and only the surfaces of one lightmap.
type lightmapStrategy struct{}

func (lightmapStrategy) targetSize(Device) (int, int) {
	return LightmapSize, LightmapSize
}

func (lightmapStrategy) viewport(Device, *ViewParams) Viewport {
	return Viewport{W: LightmapSize, H: LightmapSize}
}

func (lightmapStrategy) portalCulling() bool  { return false }
func (lightmapStrategy) lightmapFilter() bool { return true }
