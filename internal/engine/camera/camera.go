// Package camera derives view and projection matrices from a viewer.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FollowCamera trails a target from behind and above, looking along the
// target's heading. It has no input handling of its own.
type FollowCamera struct {
	// Orientation
	Yaw   float32 // heading around +Y, radians; 0 looks towards +Z
	Pitch float32 // downward tilt, radians

	// Distance from the target
	Distance float32

	// Projection
	FOV  float32 // vertical field of view, degrees
	Near float32
	Far  float32
}

// NewFollowCamera creates a camera with default settings.
func NewFollowCamera() *FollowCamera {
	return &FollowCamera{
		Pitch:    0.35,
		Distance: 12,
		FOV:      70,
		Near:     0.1,
		Far:      512,
	}
}

// Forward returns the unit heading on the XZ plane.
func (c *FollowCamera) Forward() mgl32.Vec3 {
	s, co := math.Sincos(float64(c.Yaw))
	return mgl32.Vec3{float32(s), 0, float32(co)}
}

// Position returns the eye position for a target.
func (c *FollowCamera) Position(target mgl32.Vec3) mgl32.Vec3 {
	s, co := math.Sincos(float64(c.Pitch))
	back := c.Forward().Mul(-c.Distance * float32(co))
	return target.Add(back).Add(mgl32.Vec3{0, c.Distance * float32(s), 0})
}

// ViewMatrix returns the view matrix looking at target.
func (c *FollowCamera) ViewMatrix(target mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(target), target, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective matrix for a viewport.
func (c *FollowCamera) ProjectionMatrix(width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *FollowCamera) ViewProjection(target mgl32.Vec3, width, height int) mgl32.Mat4 {
	return c.ProjectionMatrix(width, height).Mul4(c.ViewMatrix(target))
}
