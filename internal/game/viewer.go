package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Autopilot flies the viewer along a fixed heading at constant height and
// speed.
type Autopilot struct {
	position mgl32.Vec3
	heading  float32 // radians around +Y; 0 flies towards +Z
	speed    float32 // blocks per second
}

// NewAutopilot starts a viewer at (x, height, z).
func NewAutopilot(x, z, height, speed, headingDeg float32) *Autopilot {
	return &Autopilot{
		position: mgl32.Vec3{x, height, z},
		heading:  mgl32.DegToRad(headingDeg),
		speed:    speed,
	}
}

// Advance moves the viewer by dt seconds of flight.
func (a *Autopilot) Advance(dt float64) {
	s, c := math.Sincos(float64(a.heading))
	step := float32(dt) * a.speed
	a.position[0] += float32(s) * step
	a.position[2] += float32(c) * step
}

// Position returns the viewer position.
func (a *Autopilot) Position() mgl32.Vec3 {
	return a.position
}

// Heading returns the flight direction in radians.
func (a *Autopilot) Heading() float32 {
	return a.heading
}
