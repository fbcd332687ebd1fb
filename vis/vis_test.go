// SPDX-License-Identifier: GPL-2.0-or-later

package vis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goportal/geom"
	"goportal/math/vec"
	"goportal/world"
)

func doorway(x float32) []vec.Vec3 {
	return []vec.Vec3{{x, 25, 25}, {x, 75, 25}, {x, 75, 75}, {x, 25, 75}}
}

func corridor(t *testing.T, n int) *world.Level {
	t.Helper()
	b := world.NewBuilder("corridor")
	for i := 0; i < n; i++ {
		x := float32(i * 100)
		r := b.AddRoom(vec.Vec3{x, 0, 0}, vec.Vec3{x + 100, 100, 100})
		if i > 0 {
			b.AddPortal(r-1, r, doorway(x))
		}
	}
	l, err := b.Build()
	require.NoError(t, err)
	return l
}

func view(origin, angles vec.Vec3) *geom.Frustum {
	f, r, u := vec.AngleVectors(angles)
	fr := geom.FrustumFromView(origin, f, r, u, 90, 90)
	return &fr
}

func TestPlaneSetOr(t *testing.T) {
	a := RenderArea{DoRender: true}
	a.addPlaneSet(geom.BoxVolume(vec.Vec3{0, 0, 0}, vec.Vec3{10, 10, 10}))
	a.addPlaneSet(geom.BoxVolume(vec.Vec3{20, 0, 0}, vec.Vec3{30, 10, 10}))
	require.Len(t, a.PlaneSets, 2)

	tests := []struct {
		name       string
		mins, maxs vec.Vec3
		want       bool
	}{
		{"first set only", vec.Vec3{2, 2, 2}, vec.Vec3{4, 4, 4}, true},
		{"second set only", vec.Vec3{22, 2, 2}, vec.Vec3{24, 4, 4}, true},
		{"between sets", vec.Vec3{12, 2, 2}, vec.Vec3{14, 4, 4}, false},
		{"above both", vec.Vec3{2, 2, 40}, vec.Vec3{24, 4, 44}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inside := false
			for i := range a.PlaneSets {
				inside = inside || a.PlaneSets[i].IsBoxInside(tc.mins, tc.maxs)
			}
			assert.Equal(t, tc.want, inside)
			assert.Equal(t, tc.want, a.IsBoxVisible(tc.mins, tc.maxs))
		})
	}
	assert.True(t, a.IsSphereVisible(vec.Vec3{25, 5, 5}, 1))
	assert.False(t, a.IsSphereVisible(vec.Vec3{15, 5, 5}, 1))
}

func TestPlaneSetOverflow(t *testing.T) {
	var a RenderArea
	box := geom.BoxVolume(vec.Vec3{0, 0, 0}, vec.Vec3{1, 1, 1})
	for i := 0; i < MaxPlaneSets+1; i++ {
		a.addPlaneSet(box)
	}
	assert.Len(t, a.PlaneSets, MaxPlaneSets)
	assert.True(t, a.Unbounded())
	assert.True(t, a.IsBoxVisible(vec.Vec3{50, 50, 50}, vec.Vec3{60, 60, 60}))
}

func TestInvisibleArea(t *testing.T) {
	var a RenderArea
	assert.False(t, a.IsBoxVisible(vec.Vec3{}, vec.Vec3{1, 1, 1}))
	assert.False(t, a.IsSphereVisible(vec.Vec3{}, 1))
	assert.False(t, a.Unbounded())
}

func TestSingleRoom(t *testing.T) {
	b := world.NewBuilder("single")
	b.AddRoom(vec.Vec3{0, 0, 0}, vec.Vec3{100, 100, 100})
	l, err := b.Build()
	require.NoError(t, err)

	origin := vec.Vec3{50, 50, 50}
	assert.Equal(t, []int{0}, l.RoomsForPoint(origin))

	list := NewRenderAreaList(0)
	var f Flooder
	f.Update(l, list, origin, view(origin, vec.Vec3{}))
	require.Len(t, list.Areas, 1)
	assert.True(t, list.Areas[0].DoRender)
	assert.Empty(t, list.Areas[0].PlaneSets)
	assert.True(t, list.Areas[0].Unbounded())
}

func TestLookThroughPortal(t *testing.T) {
	l := corridor(t, 2)
	origin := vec.Vec3{50, 50, 50}
	list := NewRenderAreaList(len(l.Rooms))
	var f Flooder
	f.Update(l, list, origin, view(origin, vec.Vec3{0, 0, 0}))

	assert.Equal(t, []int{0, 1}, list.VisibleRooms())
	a := list.Area(1)
	require.Len(t, a.PlaneSets, 1)
	assert.GreaterOrEqual(t, len(a.PlaneSets[0].Planes), 3)
	assert.LessOrEqual(t, len(a.PlaneSets[0].Planes), 4)

	// seen straight through the door
	assert.True(t, a.IsBoxVisible(vec.Vec3{105, 45, 45}, vec.Vec3{115, 55, 55}))
	// hidden beside the door
	assert.False(t, a.IsBoxVisible(vec.Vec3{105, 0, 45}, vec.Vec3{115, 5, 55}))
	assert.Equal(t, 1, f.Stats.BackFacing)
}

func TestLookAwayFromPortal(t *testing.T) {
	l := corridor(t, 2)
	origin := vec.Vec3{50, 50, 50}
	list := NewRenderAreaList(len(l.Rooms))
	var f Flooder
	f.Update(l, list, origin, view(origin, vec.Vec3{0, 180, 0}))

	assert.True(t, list.Visible(0))
	assert.False(t, list.Visible(1))
	assert.Empty(t, list.Area(1).PlaneSets)
}

func TestBackFacingPortal(t *testing.T) {
	l := corridor(t, 2)
	list := NewRenderAreaList(len(l.Rooms))
	var f Flooder
	// the camera is in room 0 but the flood starts in room 1, so the
	// doorway is seen from behind
	f.Flood(l, list, vec.Vec3{50, 50, 50}, nil, []int{1})
	assert.True(t, list.Visible(1))
	assert.False(t, list.Visible(0))
	assert.Equal(t, 1, f.Stats.BackFacing)
}

func TestPortalCullDisabled(t *testing.T) {
	l := corridor(t, 2)
	origin := vec.Vec3{50, 50, 50}
	list := NewRenderAreaList(len(l.Rooms))
	f := Flooder{NoPortalCull: true}
	f.Update(l, list, origin, view(origin, vec.Vec3{0, 180, 0}))
	assert.True(t, list.Visible(1))
	assert.Zero(t, f.Stats.FrustumCulled)
}

func TestLoopGuard(t *testing.T) {
	square := []vec.Vec3{{100, -50, -50}, {100, 50, -50}, {100, 50, 50}, {100, -50, 50}}
	// every portal plane faces the camera from both sides
	up := geom.NewPlane(vec.Vec3{0, 0, 1}, -1000)
	portal := func(a, b int) world.Portal {
		return world.Portal{
			Bounds: geom.BoundsOf(square),
			Rooms:  [2]int{a, b},
			Planes: [2]geom.Plane{up, up},
			Verts:  [2][]vec.Vec3{square, square},
		}
	}
	l := &world.Level{
		Rooms:   make([]world.Room, 3),
		Portals: []world.Portal{portal(0, 1), portal(1, 2), portal(2, 0)},
	}
	l.Link()

	list := NewRenderAreaList(len(l.Rooms))
	var f Flooder
	f.Flood(l, list, vec.Vec3{}, nil, []int{0})

	assert.Equal(t, []int{0, 1, 2}, list.VisibleRooms())
	assert.True(t, list.Area(0).Unbounded())
	assert.Len(t, list.Area(1).PlaneSets, 2)
	assert.Len(t, list.Area(2).PlaneSets, 2)
	assert.Equal(t, 8, f.Stats.LoopRejected)
	assert.Equal(t, 7, f.Stats.Steps)
}

func TestDegeneratePortalKeepsRoomVisible(t *testing.T) {
	square := []vec.Vec3{{100, -50, -50}, {100, 50, -50}, {100, 50, 50}, {100, -50, 50}}
	// every edge of the point polygon is empty, so no silhouette plane exists
	point := []vec.Vec3{{100, 0, 0}, {100, 0, 0}, {100, 0, 0}}
	up := geom.NewPlane(vec.Vec3{0, 0, 1}, -1000)
	portal := func(a, b int, verts []vec.Vec3) world.Portal {
		return world.Portal{
			Bounds: geom.BoundsOf(verts),
			Rooms:  [2]int{a, b},
			Planes: [2]geom.Plane{up, up},
			Verts:  [2][]vec.Vec3{verts, verts},
		}
	}
	l := &world.Level{
		Rooms:   make([]world.Room, 3),
		Portals: []world.Portal{portal(0, 1, point), portal(1, 2, square)},
	}
	l.Link()

	list := NewRenderAreaList(len(l.Rooms))
	var f Flooder
	f.Flood(l, list, vec.Vec3{}, nil, []int{0})

	assert.Equal(t, []int{0, 1, 2}, list.VisibleRooms())
	assert.True(t, list.Area(1).DoRender)
	assert.True(t, list.Area(1).Unbounded())
	assert.Len(t, list.Area(2).PlaneSets, 1)
}

func TestPlaneCap(t *testing.T) {
	l := corridor(t, 8)
	list := NewRenderAreaList(len(l.Rooms))
	var f Flooder
	f.Update(l, list, vec.Vec3{50, 50, 50}, nil)

	assert.Len(t, list.VisibleRooms(), 8)
	for r := 1; r < 8; r++ {
		a := list.Area(r)
		require.Len(t, a.PlaneSets, 1, "room %d", r)
		assert.LessOrEqual(t, len(a.PlaneSets[0].Planes), MaxPortalPlanes, "room %d", r)
	}
	assert.Len(t, list.Area(7).PlaneSets[0].Planes, MaxPortalPlanes)
	assert.Positive(t, f.Stats.TruncatedPaths)
}

func TestReset(t *testing.T) {
	l := corridor(t, 3)
	list := NewRenderAreaList(len(l.Rooms))
	var f Flooder
	f.Update(l, list, vec.Vec3{50, 50, 50}, nil)
	require.NotEmpty(t, list.VisibleRooms())
	require.Positive(t, list.PlaneSetCount())

	list.Reset()
	for i := range list.Areas {
		assert.False(t, list.Areas[i].DoRender)
		assert.Empty(t, list.Areas[i].PlaneSets)
		assert.False(t, list.Areas[i].Unbounded())
	}
}

func TestOutsideWorld(t *testing.T) {
	l := corridor(t, 3)
	list := NewRenderAreaList(1)
	var f Flooder
	f.Update(l, list, vec.Vec3{-500, 0, 0}, nil)
	require.Len(t, list.Areas, 3)
	for i := range list.Areas {
		assert.True(t, list.Areas[i].Unbounded(), "room %d", i)
	}
}

func TestAreaListIDs(t *testing.T) {
	a := NewRenderAreaList(1)
	b := NewRenderAreaList(1)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Nil(t, a.Area(-1))
	assert.Nil(t, a.Area(1))
	assert.False(t, a.Visible(4))
}
