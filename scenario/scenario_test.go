package scenario

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"planets/sim"
)

func simFor(t *testing.T, sc *Scenario) *sim.Sim {
	t.Helper()
	s := sim.New(sc.Config())
	if err := sc.Populate(s); err != nil {
		t.Fatalf("Populate failed: %v", err)
	}
	return s
}

const sample = `
name: binary
g: 0.5
dt: 0.25
density: 2
auto_orbit: true
bodies:
  - pos: [0, 0]
    mass: 1000
    radius: 10
  - pos: [100, 0]
    radius: 2
grids:
  - top_left: [-50, -50]
    rows: 2
    cols: 3
    gap: 10
    radius: 1
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "binary.yaml")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	sc, err := Load(writeSample(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if sc.Name != "binary" || sc.G != 0.5 || sc.Dt != 0.25 {
		t.Errorf("loaded %+v", sc)
	}
	if len(sc.Bodies) != 2 || len(sc.Grids) != 1 {
		t.Errorf("bodies = %d, grids = %d", len(sc.Bodies), len(sc.Grids))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load of missing file succeeded")
	}
}

func TestPopulate(t *testing.T) {
	sc, err := Load(writeSample(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	s := simFor(t, sc)
	// 2 explicit bodies + 2x3 grid
	if s.Count() != 8 {
		t.Errorf("populated %d bodies, want 8", s.Count())
	}

	// the second explicit body had no velocity: auto orbit gives it
	// v = sqrt(G*M/r) perpendicular to the separation.
	b, err := s.Lookup(1)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	wantSpeed := OrbitalSpeed(0.5, 1000, 100)
	if math.Abs(b.Vel.Len()-wantSpeed) > 1e-12 {
		t.Errorf("orbital speed = %v, want %v", b.Vel.Len(), wantSpeed)
	}
	if math.Abs(b.Vel.X()) > 1e-12 || b.Vel.Y() <= 0 {
		t.Errorf("orbital velocity %v not perpendicular to separation", b.Vel)
	}
}

func TestDefaultPopulates(t *testing.T) {
	sc := Default()
	s := simFor(t, sc)
	// two planets and a 10x10 grid
	if s.Count() != 102 {
		t.Errorf("default scenario spawned %d bodies, want 102", s.Count())
	}
}

func TestGridMassDerivedFromDensity(t *testing.T) {
	sc := &Scenario{Density: 3, Grids: []Grid{{Rows: 1, Cols: 1, Gap: 1, Radius: 2}}}
	s := simFor(t, sc)

	b, err := s.Lookup(0)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	want := 3 * (4.0 / 3.0) * math.Pi * 8
	if math.Abs(b.Mass-want) > 1e-12 {
		t.Errorf("grid body mass = %v, want %v", b.Mass, want)
	}
}
