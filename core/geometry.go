// core/geometry.go
package core

import "math"

// EarthRadiusKm is the mean Earth radius used by the link-budget layer
// when deciding whether a path is occluded (kilometres).
const EarthRadiusKm = 6371.0

// Vec3 is an ECEF-style position vector in kilometres.
type Vec3 struct {
	X, Y, Z float64
}

// DistanceTo returns the straight-line distance between two points.
func (v Vec3) DistanceTo(other Vec3) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Norm returns the Euclidean norm of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// hasLineOfSight reports whether the segment between p1 and p2 clears the
// Earth sphere. A segment whose closest point to the origin lies inside
// the sphere is occluded.
//
// All positions are ECEF in kilometres.
func hasLineOfSight(p1, p2 Vec3) bool {
	v := p2.Sub(p1)
	a := v.Dot(v)
	if a == 0 {
		// Coincident endpoints: clear only if the point itself is
		// outside the sphere.
		return p1.Dot(p1) > EarthRadiusKm*EarthRadiusKm
	}

	// Closest point of the segment to the origin: minimise |p1 + t v|^2
	// over t, then clamp t to [0, 1].
	t := -p1.Dot(v) / a
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closest := Vec3{
		X: p1.X + v.X*t,
		Y: p1.Y + v.Y*t,
		Z: p1.Z + v.Z*t,
	}
	return closest.Dot(closest) > EarthRadiusKm*EarthRadiusKm
}
