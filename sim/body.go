// Package sim implements a collidable n-body gravity simulation. Bodies
// attract each other pairwise, overlapping bodies merge into one body
// conserving mass, momentum and volume, and motion is advanced with a
// semi-implicit Euler step.
package sim

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is a point mass with a radius.
type Body struct {
	ID     uint64
	Pos    mgl64.Vec2 // m
	Vel    mgl64.Vec2 // m/s
	Mass   float64    // kg
	Radius float64    // m

	force mgl64.Vec2 // accumulated force, consumed and cleared by integration
}

// update body velocity and position from accumulated force, reset force.
// velocity first, then position with the new velocity.
func (b *Body) update(dt float64) {
	// a = F/m
	// dv = a*dt
	b.Vel = b.Vel.Add(b.force.Mul(dt / b.Mass))

	// dp = v*dt
	b.Pos = b.Pos.Add(b.Vel.Mul(dt))

	// clear force
	b.force = mgl64.Vec2{}
}

func (b Body) String() string {
	return fmt.Sprintf("body %d m: %.4f r: %.2f p: [%.2f, %.2f] v: [%.2f, %.2f]",
		b.ID, b.Mass, b.Radius, b.Pos.X(), b.Pos.Y(), b.Vel.X(), b.Vel.Y())
}

// sphere volume from radius
func volume(radius float64) float64 {
	return 4.0 / 3.0 * math.Pi * (radius * radius * radius)
}

// sphere radius from volume
func radius(volume float64) float64 {
	return math.Cbrt((3.0 * volume) / (4.0 * math.Pi))
}

// UniformDensity returns a mass-from-radius policy for bodies of uniform
// density, treating each body as a sphere. Spawn uses the policy when the
// caller omits a mass.
func UniformDensity(density float64) func(radius float64) float64 {
	return func(r float64) float64 {
		return density * volume(r)
	}
}
