package sim

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestGravityAntisymmetric(t *testing.T) {
	cfg := Config{G: 0.0001, MinDistance: DefaultMinDistance}
	a := &Body{Pos: mgl64.Vec2{0, 0}, Mass: 7, Radius: 1}
	b := &Body{Pos: mgl64.Vec2{20, -15}, Mass: 13, Radius: 1}

	cfg.gravity(a, b)

	if a.force.X() != -b.force.X() || a.force.Y() != -b.force.Y() {
		t.Errorf("forces not equal and opposite: %v vs %v", a.force, b.force)
	}
	want := 0.0001 * 7 * 13 / (20*20 + 15*15)
	if math.Abs(a.force.Len()-want) > 1e-15 {
		t.Errorf("force magnitude = %v, want %v", a.force.Len(), want)
	}
	// attraction: a is pulled toward b
	if a.force.X() <= 0 || a.force.Y() >= 0 {
		t.Errorf("force on a = %v does not point toward b", a.force)
	}
}

// Accumulation: a second evaluation adds to the accumulator rather than
// replacing it.
func TestGravityAccumulates(t *testing.T) {
	cfg := Config{G: 1, MinDistance: DefaultMinDistance}
	a := &Body{Pos: mgl64.Vec2{0, 0}, Mass: 1, Radius: 1}
	b := &Body{Pos: mgl64.Vec2{10, 0}, Mass: 1, Radius: 1}

	cfg.gravity(a, b)
	once := a.force
	cfg.gravity(a, b)

	if a.force.X() != 2*once.X() {
		t.Errorf("force after two evaluations = %v, want %v", a.force, once.Mul(2))
	}
}

// Exactly coincident centers have no direction to pull along: no force and
// no NaN.
func TestGravityCoincident(t *testing.T) {
	cfg := Config{G: 1, MinDistance: DefaultMinDistance}
	a := &Body{Pos: mgl64.Vec2{5, 5}, Mass: 1, Radius: 1}
	b := &Body{Pos: mgl64.Vec2{5, 5}, Mass: 1, Radius: 1}

	cfg.gravity(a, b)

	if a.force != (mgl64.Vec2{}) || b.force != (mgl64.Vec2{}) {
		t.Errorf("coincident bodies accumulated force: %v, %v", a.force, b.force)
	}
}

func TestVolumeRadiusRoundTrip(t *testing.T) {
	for _, r := range []float64{0.5, 1, 2, 30} {
		got := radius(volume(r))
		if math.Abs(got-r) > 1e-12 {
			t.Errorf("radius(volume(%v)) = %v", r, got)
		}
	}
}
