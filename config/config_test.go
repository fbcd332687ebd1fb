// SPDX-License-Identifier: GPL-2.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goportal/cvar"
	"goportal/light"
	"goportal/render"
)

const tomlConfig = `
base_path = "/data"
level = "e1m1"
mode = "editor"
lighting = "forward"

[window]
width = 800
height = 600

[shadows]
point = 256
spot = 1024
sun = 4096
sun_cascades = 3

[cvars]
test_config_a = "4"
`

const yamlConfig = `
level: e1m2
mode: lightmap
window:
  width: 320
  height: 200
  vsync: false
cvars:
  test_config_b: "7"
`

func TestDecodeTOML(t *testing.T) {
	c, err := Decode([]byte(tomlConfig), ".toml")
	require.NoError(t, err)
	assert.Equal(t, "/data", c.BasePath)
	assert.Equal(t, "e1m1", c.Level)
	assert.Equal(t, Window{Width: 800, Height: 600, VSync: true}, c.Window)
	assert.Equal(t, light.Forward, c.LightingModel())
	assert.Equal(t, render.Config{
		Mode: render.ModeEditor,
		Shadows: render.ShadowConfig{
			PointSize:   256,
			SpotSize:    1024,
			SunSize:     4096,
			SunCascades: 3,
		},
	}, c.Render())
	assert.Equal(t, map[string]string{"test_config_a": "4"}, c.Cvars)
}

func TestDecodeYAML(t *testing.T) {
	c, err := Decode([]byte(yamlConfig), "yml")
	require.NoError(t, err)
	assert.Equal(t, "e1m2", c.Level)
	assert.Equal(t, ".", c.BasePath)
	assert.False(t, c.Window.VSync)
	assert.Equal(t, render.ModeLightmap, c.Render().Mode)
	assert.Equal(t, render.DefaultShadowConfig(), c.Render().Shadows)
	assert.Equal(t, light.Deferred, c.LightingModel())

	c, err = Decode(nil, "yaml")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
	}{
		{"format", "", "json"},
		{"unknown field", "colour = 1", "toml"},
		{"unknown yaml field", "colour: 1", "yaml"},
		{"mode", `mode = "cinema"`, "toml"},
		{"lighting", `lighting = "raytraced"`, "toml"},
		{"window", "[window]\nwidth = 0", "toml"},
		{"shadow size", "[shadows]\npoint = 300", "toml"},
		{"cascades", "[shadows]\nsun_cascades = 0", "toml"},
		{"syntax", "level = ", "toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "portalview.toml")
	require.NoError(t, os.WriteFile(p, []byte(tomlConfig), 0o644))
	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "e1m1", c.Level)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApply(t *testing.T) {
	a := cvar.MustRegister("test_config_a", "0", cvar.NONE)
	b := cvar.MustRegister("test_config_b", "0", cvar.NONE)
	c := Config{Cvars: map[string]string{
		"test_config_a":       "4",
		"test_config_missing": "1",
		"test_config_b":       "2",
	}}
	err := c.Apply()
	assert.ErrorIs(t, err, cvar.ErrUnknown)
	assert.Equal(t, float32(4), a.Value())
	assert.Equal(t, float32(2), b.Value())
	assert.NoError(t, Config{}.Apply())
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "portalview.yaml")
	require.NoError(t, os.WriteFile(p, []byte(yamlConfig), 0o644))
	w, err := Watch(p)
	require.NoError(t, err)
	defer w.Close()
	assert.False(t, w.Poll())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), nil, 0o644))
	require.NoError(t, os.WriteFile(p, []byte("level: e2m1\n"), 0o644))
	select {
	case <-w.Changed():
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "e2m1", c.Level)
}
