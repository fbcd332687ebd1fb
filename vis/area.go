// SPDX-License-Identifier: GPL-2.0-or-later

package vis

import (
	"github.com/google/uuid"

	"goportal/geom"
	"goportal/math/vec"
)

const (
	// MaxPortalPlanes caps the clip planes of one portal path.
	MaxPortalPlanes = 20
	// MaxPlaneSets caps the plane sets of one area. Areas reached by more
	// paths become unbounded.
	MaxPlaneSets = 32
)

// AreaPlaneSet bounds what is visible of a room through one portal path.
type AreaPlaneSet struct {
	Planes geom.Volume
}

func (s *AreaPlaneSet) IsPointInside(p vec.Vec3) bool {
	return s.Planes.IsPointInside(p)
}

func (s *AreaPlaneSet) IsSphereInside(center vec.Vec3, radius float32) bool {
	return s.Planes.IsSphereInside(center, radius)
}

func (s *AreaPlaneSet) IsBoxInside(mins, maxs vec.Vec3) bool {
	return s.Planes.IsBoxInside(mins, maxs)
}

// RenderArea is the per frame visibility state of one room.
type RenderArea struct {
	DoRender  bool
	PlaneSets []AreaPlaneSet
	// unbounded areas are visible without plane tests: the camera is inside
	// or too many paths lead into them.
	unbounded bool
}

func (a *RenderArea) reset() {
	a.DoRender = false
	a.PlaneSets = a.PlaneSets[:0]
	a.unbounded = false
}

// Unbounded reports whether everything inside the room counts as visible.
func (a *RenderArea) Unbounded() bool {
	return a.DoRender && (a.unbounded || len(a.PlaneSets) == 0)
}

// addPlaneSet stores a copy of planes.
func (a *RenderArea) addPlaneSet(planes []geom.Plane) {
	a.DoRender = true
	if a.unbounded {
		return
	}
	if len(a.PlaneSets) == MaxPlaneSets {
		a.unbounded = true
		return
	}
	a.PlaneSets = append(a.PlaneSets, AreaPlaneSet{Planes: append(geom.Volume(nil), planes...)})
}

func (a *RenderArea) markUnbounded() {
	a.DoRender = true
	a.unbounded = true
	a.PlaneSets = a.PlaneSets[:0]
}

// IsBoxVisible reports whether the box passes any of the plane sets.
func (a *RenderArea) IsBoxVisible(mins, maxs vec.Vec3) bool {
	if !a.DoRender {
		return false
	}
	if a.Unbounded() {
		return true
	}
	for i := range a.PlaneSets {
		if a.PlaneSets[i].IsBoxInside(mins, maxs) {
			return true
		}
	}
	return false
}

// IsSphereVisible reports whether the sphere passes any of the plane sets.
func (a *RenderArea) IsSphereVisible(center vec.Vec3, radius float32) bool {
	if !a.DoRender {
		return false
	}
	if a.Unbounded() {
		return true
	}
	for i := range a.PlaneSets {
		if a.PlaneSets[i].IsSphereInside(center, radius) {
			return true
		}
	}
	return false
}

// RenderAreaList holds one RenderArea per room of a level. Lists are reused
// from frame to frame.
type RenderAreaList struct {
	ID    uuid.UUID
	Areas []RenderArea
}

func NewRenderAreaList(rooms int) *RenderAreaList {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &RenderAreaList{
		ID:    id,
		Areas: make([]RenderArea, rooms),
	}
}

// Resize adapts the list to a new room count and resets it.
func (l *RenderAreaList) Resize(rooms int) {
	if cap(l.Areas) >= rooms {
		l.Areas = l.Areas[:rooms]
	} else {
		l.Areas = make([]RenderArea, rooms)
	}
	l.Reset()
}

// Reset clears the state of the previous flood.
func (l *RenderAreaList) Reset() {
	for i := range l.Areas {
		l.Areas[i].reset()
	}
}

// MarkAll makes every room visible without restrictions.
func (l *RenderAreaList) MarkAll() {
	for i := range l.Areas {
		l.Areas[i].markUnbounded()
	}
}

// Area returns the area of room or nil.
func (l *RenderAreaList) Area(room int) *RenderArea {
	if room < 0 || room >= len(l.Areas) {
		return nil
	}
	return &l.Areas[room]
}

// Visible reports whether room is marked for rendering.
func (l *RenderAreaList) Visible(room int) bool {
	a := l.Area(room)
	return a != nil && a.DoRender
}

// VisibleRooms returns the ids of all rooms marked for rendering.
func (l *RenderAreaList) VisibleRooms() []int {
	var rooms []int
	for i := range l.Areas {
		if l.Areas[i].DoRender {
			rooms = append(rooms, i)
		}
	}
	return rooms
}

// PlaneSetCount returns the number of plane sets over all areas.
func (l *RenderAreaList) PlaneSetCount() int {
	n := 0
	for i := range l.Areas {
		n += len(l.Areas[i].PlaneSets)
	}
	return n
}
