// SPDX-License-Identifier: GPL-2.0-or-later

package render

import (
	"fmt"
)

// FrameStats counts the work of one RenderFrame.
type FrameStats struct {
	RoomsVisible     int
	PlaneSets        int
	VolumesDrawn     int
	SurfacesDrawn    int
	SurfacesSkipped  int
	MissingMaterials int
	ShadowPasses     int
	LightsDrawn      int
	LightsCulled     int
}

func (s FrameStats) String() string {
	return fmt.Sprintf("%3d rooms %3d sets %4d vols %5d surfs (%d skipped, %d no material) %3d shadow %3d lights (%d culled)",
		s.RoomsVisible, s.PlaneSets, s.VolumesDrawn, s.SurfacesDrawn, s.SurfacesSkipped,
		s.MissingMaterials, s.ShadowPasses, s.LightsDrawn, s.LightsCulled)
}
