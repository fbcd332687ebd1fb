// SPDX-License-Identifier: GPL-2.0-or-later

// Package config loads the portalview settings file. The format is chosen
// by extension: .toml or .yaml/.yml.
package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"goportal/cvar"
	"goportal/light"
	"goportal/render"
)

var ErrFormat = errors.New("unknown config format")

type Window struct {
	Width      int  `toml:"width" yaml:"width"`
	Height     int  `toml:"height" yaml:"height"`
	Fullscreen bool `toml:"fullscreen" yaml:"fullscreen"`
	VSync      bool `toml:"vsync" yaml:"vsync"`
	Samples    int  `toml:"samples" yaml:"samples"`
}

type Shadows struct {
	Point       int `toml:"point" yaml:"point"`
	Spot        int `toml:"spot" yaml:"spot"`
	Sun         int `toml:"sun" yaml:"sun"`
	SunCascades int `toml:"sun_cascades" yaml:"sun_cascades"`
}

type Config struct {
	// BasePath is the directory holding the pak files.
	BasePath string  `toml:"base_path" yaml:"base_path"`
	GameDir  string  `toml:"game_dir" yaml:"game_dir"`
	Level    string  `toml:"level" yaml:"level"`
	Mode     string  `toml:"mode" yaml:"mode"`
	Lighting string  `toml:"lighting" yaml:"lighting"`
	Window   Window  `toml:"window" yaml:"window"`
	Shadows  Shadows `toml:"shadows" yaml:"shadows"`

	// Cvars are set after loading, unknown names are reported.
	Cvars map[string]string `toml:"cvars" yaml:"cvars"`
}

func Default() Config {
	s := render.DefaultShadowConfig()
	return Config{
		BasePath: ".",
		Mode:     "game",
		Lighting: "deferred",
		Window: Window{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Shadows: Shadows{
			Point:       s.PointSize,
			Spot:        s.SpotSize,
			Sun:         s.SunSize,
			SunCascades: s.SunCascades,
		},
	}
}

// Decode parses data on top of the defaults. format is a file extension.
func Decode(data []byte, format string) (Config, error) {
	c := Default()
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "toml":
		d := toml.NewDecoder(bytes.NewReader(data))
		d.DisallowUnknownFields()
		if err := d.Decode(&c); err != nil {
			return c, errors.Wrap(err, "toml")
		}
	case "yaml", "yml":
		d := yaml.NewDecoder(bytes.NewReader(data))
		d.KnownFields(true)
		// an empty document is a valid config
		if err := d.Decode(&c); err != nil && err != io.EOF {
			return c, errors.Wrap(err, "yaml")
		}
	default:
		return c, errors.Wrap(ErrFormat, format)
	}
	return c, c.validate()
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), err
	}
	c, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return c, errors.Wrap(err, path)
	}
	return c, nil
}

func (c Config) validate() error {
	if _, err := render.ParseBuildMode(c.Mode); err != nil {
		return err
	}
	if _, err := light.ParseLightingModel(c.Lighting); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	for _, n := range []int{c.Shadows.Point, c.Shadows.Spot, c.Shadows.Sun} {
		if n <= 0 || n&(n-1) != 0 {
			return errors.Errorf("shadow map size %d is not a power of two", n)
		}
	}
	if c.Shadows.SunCascades < 1 {
		return errors.Errorf("invalid sun cascade count %d", c.Shadows.SunCascades)
	}
	return nil
}

func (c Config) Render() render.Config {
	m, _ := render.ParseBuildMode(c.Mode)
	return render.Config{
		Mode: m,
		Shadows: render.ShadowConfig{
			PointSize:   c.Shadows.Point,
			SpotSize:    c.Shadows.Spot,
			SunSize:     c.Shadows.Sun,
			SunCascades: c.Shadows.SunCascades,
		},
	}
}

func (c Config) LightingModel() light.LightingModel {
	m, _ := light.ParseLightingModel(c.Lighting)
	return m
}

// Apply sets the configured cvars in name order. All cvars are tried, the
// first failure is returned.
func (c Config) Apply() error {
	names := make([]string, 0, len(c.Cvars))
	for n := range c.Cvars {
		names = append(names, n)
	}
	slices.Sort(names)
	var first error
	for _, n := range names {
		if err := cvar.Set(n, c.Cvars[n]); err != nil {
			slog.Warn("Could not apply cvar", slog.String("name", n), slog.Any("error", err))
			if first == nil {
				first = err
			}
		}
	}
	return first
}
