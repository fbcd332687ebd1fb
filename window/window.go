// SPDX-License-Identifier: GPL-2.0-or-later

package window

import (
	"log/slog"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	window  *sdl.Window
	context sdl.GLContext
)

// Mode describes the window to create.
type Mode struct {
	Title      string
	Width      int32
	Height     int32
	Fullscreen bool
	VSync      bool
	// Samples is the multisample count, 0 disables multisampling.
	Samples int
}

func Get() *sdl.Window {
	return window
}

func Size() (int, int) {
	if window == nil {
		return 0, 0
	}
	w, h := window.GetGLDrawableSize()
	return int(w), int(h)
}

func Shutdown() {
	if context != nil {
		sdl.GLDeleteContext(context)
		context = nil
	}
	if window != nil {
		window.Destroy()
		window = nil
	}
}

func Fullscreen() bool {
	return window.GetFlags()&sdl.WINDOW_FULLSCREEN != 0
}

func VSync() bool {
	i, _ := sdl.GLGetSwapInterval()
	return i == 1
}

func InputFocus() bool {
	return window.GetFlags()&(sdl.WINDOW_MOUSE_FOCUS|sdl.WINDOW_INPUT_FOCUS) != 0
}

func createWindow(m Mode, flags uint32) (*sdl.Window, error) {
	w, err := sdl.CreateWindow(m.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, m.Width, m.Height, flags)
	if err == nil {
		return w, nil
	}
	// retry with less demanding framebuffers
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 0)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, 0)
	w, err = sdl.CreateWindow(m.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, m.Width, m.Height, flags)
	if err == nil {
		return w, nil
	}
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 16)
	return sdl.CreateWindow(m.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, m.Width, m.Height, flags)
}

// SetMode creates the window and a GL 4.6 core context. It must be called
// on the main thread after sdl.Init.
func SetMode(m Mode) error {
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 6)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, func() int {
		if m.Samples > 0 {
			return 1
		}
		return 0
	}())
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, m.Samples)

	if window == nil {
		flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_HIDDEN | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
		w, err := createWindow(m, flags)
		if err != nil {
			return errors.Wrap(err, "couldn't create window")
		}
		window = w
	}
	window.SetSize(m.Width, m.Height)
	if m.Fullscreen {
		if err := window.SetFullscreen(sdl.WINDOW_FULLSCREEN_DESKTOP); err != nil {
			return errors.Wrap(err, "couldn't set fullscreen state mode")
		}
	}
	window.Show()

	if context == nil {
		var err error
		context, err = window.GLCreateContext()
		if err != nil {
			return errors.Wrap(err, "couldn't create GL context")
		}
		if err := gl.Init(); err != nil {
			return errors.Wrap(err, "couldn't init gl")
		}
		slog.Info("GL context", slog.String("version", gl.GoStr(gl.GetString(gl.VERSION))), slog.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))
		var flags int32
		gl.GetIntegerv(gl.CONTEXT_FLAGS, &flags)
		if flags&gl.CONTEXT_FLAG_DEBUG_BIT != 0 {
			gl.DebugMessageCallback(debugCb, unsafe.Pointer(nil))
		}
	}
	interval := 0
	if m.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		slog.Warn("Could not set swap interval", slog.Any("error", err))
	}
	return nil
}

func debugCb(
	source uint32,
	gltype uint32,
	id uint32,
	severity uint32,
	length int32,
	message string,
	userParam unsafe.Pointer) {
	if severity == gl.DEBUG_SEVERITY_HIGH {
		slog.Error("GL_DEBUG", slog.Int("source", int(source)), slog.Int("type", int(gltype)), slog.Int("id", int(id)), slog.String("message", message))
	} else {
		slog.Debug("GL_DEBUG", slog.Int("source", int(source)), slog.Int("type", int(gltype)), slog.Int("id", int(id)), slog.String("message", message))
	}
}

func EndRendering() {
	window.GLSwap()
}
