// SPDX-License-Identifier: GPL-2.0-or-later

package light

import (
	"goportal/geom"
	"goportal/math/vec"
)

type Type int

const (
	Omni Type = iota
	Spot
	Sun
)

func (t Type) String() string {
	switch t {
	case Omni:
		return "omni"
	case Spot:
		return "spot"
	case Sun:
		return "sun"
	}
	return "unknown"
}

type Flags uint32

const (
	CastShadows Flags = 1 << iota
	// SimulateReflector adds a weak bounce light for spots.
	SimulateReflector
	NoSpecular
)

// Light is a dynamic light.
type Light struct {
	Type      Type
	Flags     Flags
	Origin    vec.Vec3
	Angles    vec.Vec3 // pitch, yaw, roll; spot and sun direction
	Radius    float32
	Fov       float32 // spot cone in degree
	Color     vec.Vec3
	Intensity float32
	// DieTime is the remaining lifetime in seconds before fading starts.
	// Lights with a DieTime of 0 live until removed.
	DieTime float32
	// FadeTime is the duration of the fade out after DieTime ran out.
	FadeTime float32
	// Key identifies the owner of the light, 0 is unowned.
	Key int

	dying    bool
	fadeLeft float32
	current  float32
}

// CurrentIntensity returns the intensity after fading.
func (l *Light) CurrentIntensity() float32 {
	return l.current
}

func (l *Light) CastsShadows() bool {
	return l.Flags&CastShadows != 0
}

// Direction returns the forward vector of Angles.
func (l *Light) Direction() vec.Vec3 {
	f, _, _ := vec.AngleVectors(l.Angles)
	return f
}

// Bounds returns the box the light can reach. Sun lights reach
// everything and report false.
func (l *Light) Bounds() (geom.AABB, bool) {
	if l.Type == Sun {
		return geom.AABB{}, false
	}
	r := vec.Vec3{l.Radius, l.Radius, l.Radius}
	return geom.AABB{
		Mins: vec.Sub(l.Origin, r),
		Maxs: vec.Add(l.Origin, r),
	}, true
}

// age advances the timers by dt and reports whether the light expired.
func (l *Light) age(dt float32) bool {
	if l.DieTime == 0 && !l.dying {
		l.current = l.Intensity
		return false
	}
	if !l.dying {
		l.DieTime -= dt
		if l.DieTime > 0 {
			l.current = l.Intensity
			return false
		}
		l.dying = true
		l.fadeLeft = l.FadeTime + l.DieTime
		l.DieTime = 0
	} else {
		l.fadeLeft -= dt
	}
	if l.fadeLeft <= 0 || l.FadeTime <= 0 {
		l.current = 0
		return true
	}
	l.current = l.Intensity * l.fadeLeft / l.FadeTime
	return false
}
