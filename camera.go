// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"goportal/cvars"
	"goportal/input"
	"goportal/math"
	"goportal/math/vec"
)

type camera struct {
	origin vec.Vec3
	angles vec.Vec3
}

// moves is the input of one frame. Axes are in [-1, 1] unless the speed
// button is held, turns are in degree.
type moves struct {
	forward, right, up float32
	pitch, yaw         float32
}

func (m moves) add(o moves) moves {
	return moves{
		forward: m.forward + o.forward,
		right:   m.right + o.right,
		up:      m.up + o.up,
		pitch:   m.pitch + o.pitch,
		yaw:     m.yaw + o.yaw,
	}
}

// buttonMoves consumes the camera buttons pressed since the last frame.
func buttonMoves(dt float32) moves {
	speed := float32(1)
	if input.Speed.Down() {
		speed = 2
	}
	turn := cvars.CamTurnSpeed.Value() * dt
	return moves{
		forward: input.Axis(&input.Forward, &input.Back) * speed,
		right:   input.Axis(&input.MoveRight, &input.MoveLeft) * speed,
		up:      input.Axis(&input.MoveUp, &input.MoveDown) * speed,
		pitch:   input.Axis(&input.LookDown, &input.LookUp) * turn,
		yaw:     input.Axis(&input.Left, &input.Right) * turn,
	}
}

func (c *camera) update(m moves, dt float32) {
	c.angles[0] = math.Clamp(-89, c.angles[0]+m.pitch, 89)
	c.angles[1] = math.AngleMod(c.angles[1] + m.yaw)
	f, r, _ := vec.AngleVectors(c.angles)
	speed := cvars.CamSpeed.Value() * dt
	c.origin = vec.MA(c.origin, m.forward*speed, f)
	c.origin = vec.MA(c.origin, m.right*speed, r)
	c.origin[2] += m.up * speed
}
