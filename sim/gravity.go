package sim

import "math"

// G = 6.67408 × 10-11 m3 kg-1 s-2
//   = 6.67408e-11 m³/(kg·s²)
const G = 6.67408e-11

// DefaultMinDistance is the floor applied to the pair distance during
// gravity evaluation. Bodies closer than this attract as if they were this
// far apart, which keeps the force finite when positions nearly coincide.
const DefaultMinDistance = 1e-6

// Config holds the simulation constants. The gravitational constant is
// explicit configuration rather than process-wide state so tests can vary
// it.
type Config struct {
	// G is the gravitational constant.
	G float64

	// MinDistance floors the pair distance during gravity evaluation.
	// Zero means DefaultMinDistance.
	MinDistance float64

	// Density derives a mass from a radius when Spawn is given none.
	// Nil leaves mass mandatory on Spawn.
	Density func(radius float64) float64
}

// DefaultConfig returns real-world G with the default distance floor and
// no density policy.
func DefaultConfig() Config {
	return Config{G: G, MinDistance: DefaultMinDistance}
}

// gravity adds the mutual attraction between a and b to both accumulators:
// +F·d̂ to a, −F·d̂ to b, once per pair.
//
// F = (GMm/|r|^2) * r_norm
func (c Config) gravity(a, b *Body) {
	d := b.Pos.Sub(a.Pos)
	r2 := d.LenSqr()
	if r2 == 0 {
		// exactly coincident centers leave no direction to pull along.
		// the pair is left alone for this step.
		return
	}
	r := math.Sqrt(r2)

	if floor := c.MinDistance * c.MinDistance; r2 < floor {
		r2 = floor
	}

	f := c.G * (a.Mass * b.Mass) / r2
	fv := d.Mul(f / r) // f along the unit separation vector

	a.force = a.force.Add(fv)
	b.force = b.force.Sub(fv)
}
