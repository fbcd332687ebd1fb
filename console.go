// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"github.com/pkg/errors"

	"goportal/cmd"
	"goportal/conlog"
	"goportal/light"
	"goportal/math/vec"
)

var errNoView = errors.New("no view")

func init() {
	cmd.Must(cmd.AddCommand("light", addLight(light.Omni)))
	cmd.Must(cmd.AddCommand("spotlight", addLight(light.Spot)))
	cmd.Must(cmd.AddCommand("sunlight", addLight(light.Sun)))
	cmd.Must(cmd.AddCommand("clearlights", clearLights))
	cmd.Must(cmd.AddCommand("lights", listLights))
	cmd.Must(cmd.AddCommand("where", where))
	cmd.Must(cmd.AddCommand("setpos", setPos))
	cmd.Must(cmd.AddCommand("quit", quit))
}

// addLight places a light at the camera: light [radius] [r g b] [lifetime]
func addLight(t light.Type) cmd.Func {
	return func(a cmd.Arguments) error {
		if current == nil {
			return errNoView
		}
		args := a.Args()[1:]
		l := current.renderer.AllocLight()
		l.Type = t
		l.Origin = current.cam.origin
		l.Angles = current.cam.angles
		if len(args) > 0 {
			l.Radius = args[0].Float32()
		}
		if len(args) > 3 {
			l.Color = vec.Vec3{args[1].Float32(), args[2].Float32(), args[3].Float32()}
		}
		if len(args) > 4 {
			l.DieTime = args[4].Float32()
			l.FadeTime = 1
		}
		if _, ok := current.renderer.AddLight(l); !ok {
			conlog.Printf("light not added\n")
		}
		return nil
	}
}

func clearLights(_ cmd.Arguments) error {
	if current == nil {
		return errNoView
	}
	current.renderer.Lights().Clear()
	return nil
}

func listLights(_ cmd.Arguments) error {
	if current == nil {
		return errNoView
	}
	m := current.renderer.Lights()
	for i := 0; i < m.Count(); i++ {
		l := m.At(i)
		conlog.Printf("%3d %-5s %v radius %v intensity %v\n", i, l.Type, l.Origin, l.Radius, l.CurrentIntensity())
	}
	conlog.Printf("%d lights, %d dropped\n", m.Count(), m.Dropped())
	return nil
}

func where(_ cmd.Arguments) error {
	if current == nil {
		return errNoView
	}
	c := current.cam
	conlog.Printf("origin %v angles %v rooms %v\n", c.origin, c.angles, current.renderer.GetRoomsForPoint(c.origin))
	return nil
}

// setPos moves the camera: setpos x y z [pitch yaw]
func setPos(a cmd.Arguments) error {
	if current == nil {
		return errNoView
	}
	args := a.Args()[1:]
	if len(args) < 3 {
		conlog.Printf("setpos x y z [pitch yaw]\n")
		return nil
	}
	current.cam.origin = vec.Vec3{args[0].Float32(), args[1].Float32(), args[2].Float32()}
	if len(args) >= 5 {
		current.cam.angles = vec.Vec3{args[3].Float32(), args[4].Float32(), 0}
	}
	return nil
}

func quit(_ cmd.Arguments) error {
	if current != nil {
		current.quit = true
	}
	return nil
}
