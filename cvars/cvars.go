// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"goportal/cvar"
)

var (
	CamSpeed     *cvar.Cvar
	CamTurnSpeed *cvar.Cvar
	Fov          *cvar.Cvar
	RAmbient     *cvar.Cvar
	RDynamic     *cvar.Cvar
	RLockVis     *cvar.Cvar
	RNoVis       *cvar.Cvar
	RPortalCull  *cvar.Cvar
	RShadows     *cvar.Cvar
	RSpeeds      *cvar.Cvar
	Sensitivity  *cvar.Cvar
)

func init() {
	CamSpeed = cvar.MustRegister("cam_speed", "320", cvar.ARCHIVE)
	// degree per second for the turn buttons
	CamTurnSpeed = cvar.MustRegister("cam_turnspeed", "140", cvar.ARCHIVE)
	Fov = cvar.MustRegister("fov", "90", cvar.ARCHIVE)
	RAmbient = cvar.MustRegister("r_ambient", "0.2", cvar.ARCHIVE)
	RDynamic = cvar.MustRegister("r_dynamic", "1", cvar.ARCHIVE)
	// keep the last area lists while moving
	RLockVis = cvar.MustRegister("r_lockvis", "0", cvar.NONE)
	// every room visible
	RNoVis = cvar.MustRegister("r_novis", "0", cvar.NONE)
	// frustum test portals before clipping them
	RPortalCull = cvar.MustRegister("r_portalcull", "1", cvar.NONE)
	RShadows = cvar.MustRegister("r_shadows", "1", cvar.ARCHIVE)
	RSpeeds = cvar.MustRegister("r_speeds", "0", cvar.NONE)
	// degree per mouse count
	Sensitivity = cvar.MustRegister("sensitivity", "0.2", cvar.ARCHIVE)
}
