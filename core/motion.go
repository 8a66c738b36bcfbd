// core/motion.go
package core

import (
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/signalsfoundry/power-planner/model"
)

// MotionModel yields a terminal's ECEF position (kilometres) at a given
// wall or simulation time.
type MotionModel interface {
	PositionAt(t time.Time) Vec3
}

// StaticMotion pins a terminal to a fixed position.
type StaticMotion struct {
	Position Vec3
}

// PositionAt returns the fixed position regardless of t.
func (m *StaticMotion) PositionAt(t time.Time) Vec3 {
	return m.Position
}

// SGP4Motion propagates a two-line element set with SGP4.
type SGP4Motion struct {
	sat satellite.Satellite
}

// NewSGP4Motion constructs an orbital motion model from TLE lines.
func NewSGP4Motion(line1, line2 string) *SGP4Motion {
	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS72)
	return &SGP4Motion{sat: sat}
}

// PositionAt propagates the satellite to t and rotates the ECI position
// into ECEF. go-satellite works in kilometres throughout.
func (m *SGP4Motion) PositionAt(t time.Time) Vec3 {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	posECI, _ := satellite.Propagate(m.sat, year, int(month), day, hour, min, sec)
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	posECEF := satellite.ECIToECEF(posECI, gmst)

	return Vec3{X: posECEF.X, Y: posECEF.Y, Z: posECEF.Z}
}

// MotionFor chooses a motion model for the terminal: SGP4 when a TLE is
// present, otherwise static at the declared position.
func MotionFor(term *model.Terminal) MotionModel {
	if term.Orbital() {
		return NewSGP4Motion(term.TLE1, term.TLE2)
	}
	return &StaticMotion{Position: Vec3{
		X: term.Position.X,
		Y: term.Position.Y,
		Z: term.Position.Z,
	}}
}
