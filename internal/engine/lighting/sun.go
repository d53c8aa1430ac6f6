// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SunDirection converts an azimuth around +Y (0 points at +Z, 90 at +X) and
// an elevation above the horizon, both in degrees, into a unit vector
// pointing towards the sun.
func SunDirection(azimuthDeg, elevationDeg float32) mgl32.Vec3 {
	// SphericalToCartesian measures theta from +Y and phi from +X towards +Z.
	theta := mgl32.DegToRad(90 - elevationDeg)
	phi := mgl32.DegToRad(90 - azimuthDeg)
	v := mgl32.SphericalToCartesian(1, theta, phi)
	return mgl32.Vec3{v.X(), v.Z(), v.Y()}
}
