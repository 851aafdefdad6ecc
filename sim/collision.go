package sim

import "github.com/go-gl/mathgl/mgl64"

// colliding reports whether a and b overlap. Touching counts: centers
// exactly a radius-sum apart are colliding. Compared squared to skip the
// square root.
func colliding(a, b *Body) bool {
	rr := a.Radius + b.Radius
	return b.Pos.Sub(a.Pos).LenSqr() <= rr*rr
}

// merged synthesizes the one replacement body for a finished collision
// group: total mass, momentum-conserving velocity, mass-weighted centroid
// position, and the radius of a single sphere holding the members' summed
// volume.
func (s *Sim) merged(members []uint64) (Body, error) {
	var totalMass, totalVolume float64
	var momentum, weightedPos mgl64.Vec2

	for _, id := range members {
		b, ok := s.reg.get(id)
		if !ok {
			return Body{}, &InvariantError{ID: id, Reason: "collision group member is not live"}
		}
		totalMass += b.Mass
		totalVolume += volume(b.Radius)
		momentum = momentum.Add(b.Vel.Mul(b.Mass))
		weightedPos = weightedPos.Add(b.Pos.Mul(b.Mass))
	}

	return Body{
		Pos:    weightedPos.Mul(1 / totalMass),
		Vel:    momentum.Mul(1 / totalMass),
		Mass:   totalMass,
		Radius: radius(totalVolume),
	}, nil
}
