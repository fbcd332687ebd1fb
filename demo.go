// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"bytes"
	"os"

	"github.com/pkg/errors"

	"goportal/geom"
	"goportal/math/vec"
	"goportal/mdl"
	"goportal/pack"
	"goportal/render"
	"goportal/world"
)

const demoLevelName = "levels/demo.lvl"

const (
	matWall = iota + 1
	matWallAlt
	matSide
	matWater
	matSky
)

// xDoor is a doorway in the plane x.
func xDoor(x float32) []vec.Vec3 {
	return []vec.Vec3{{x, 96, 0}, {x, 160, 0}, {x, 160, 128}, {x, 96, 128}}
}

// demoLevel is a corridor of four rooms with a side room holding a pool.
// The last room is open to the sky.
func demoLevel() (*world.Level, error) {
	b := world.NewBuilder("demo")
	var hall [4]int
	for i := range hall {
		x := float32(i) * 256
		hall[i] = b.AddRoom(vec.Vec3{x, 0, 0}, vec.Vec3{x + 256, 256, 192})
		b.AddBoxSurfaces(b.FirstVolume(hall[i]), matWall+i%2, 0)
	}
	for i := 1; i < len(hall); i++ {
		b.AddPortal(hall[i-1], hall[i], xDoor(float32(i)*256))
	}
	b.AddSurface(b.FirstVolume(hall[3]), matSky, []vec.Vec3{
		{800, 64, 191}, {960, 64, 191}, {960, 192, 191}, {800, 192, 191},
	}, world.SurfaceSky)

	side := b.AddRoom(vec.Vec3{256, 256, 0}, vec.Vec3{512, 512, 192})
	b.AddBoxSurfaces(b.FirstVolume(side), matSide, 0)
	b.AddPortal(hall[1], side, []vec.Vec3{
		{320, 256, 0}, {448, 256, 0}, {448, 256, 128}, {320, 256, 128},
	})
	pool := geom.AABB{Mins: vec.Vec3{288, 288, 0}, Maxs: vec.Vec3{480, 480, 48}}
	v := b.AddVolume(side, geom.BoxVolume(pool.Mins, pool.Maxs), pool, world.VolumeTranslucent)
	b.AddSurface(v, matWater, []vec.Vec3{
		{288, 288, 48}, {480, 288, 48}, {480, 480, 48}, {288, 480, 48},
	}, world.SurfaceWater|world.SurfaceTranslucent)
	return b.Build()
}

// demoFiles returns the contents of the demo pak.
func demoFiles() (map[string][]byte, error) {
	l, err := demoLevel()
	if err != nil {
		return nil, errors.Wrap(err, "demo level")
	}
	var lvl bytes.Buffer
	if err := world.Encode(&lvl, l); err != nil {
		return nil, err
	}
	sphere := mdl.Sphere(8, 12)
	sphere.Name = render.LightProxyModel
	var glb bytes.Buffer
	if err := mdl.WriteGLB(&glb, sphere); err != nil {
		return nil, err
	}
	proxy := "models/" + render.LightProxyModel + ".glb"
	return map[string][]byte{
		demoLevelName: lvl.Bytes(),
		proxy:         glb.Bytes(),
	}, nil
}

func writeDemoPak(name string) error {
	files, err := demoFiles()
	if err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := pack.Write(f, files); err != nil {
		f.Close()
		return errors.Wrap(err, name)
	}
	return f.Close()
}
