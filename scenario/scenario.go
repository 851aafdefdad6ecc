// Package scenario loads simulation setups from YAML files: the constant
// set, a density policy, explicit bodies, and grid spawns.
package scenario

import (
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"planets/sim"
)

// BodySpec is one explicit body. A zero mass is derived from the radius by
// the scenario's density.
type BodySpec struct {
	Pos    [2]float64 `yaml:"pos"`
	Vel    [2]float64 `yaml:"vel,omitempty"`
	Mass   float64    `yaml:"mass,omitempty"`
	Radius float64    `yaml:"radius"`
}

// Grid spawns Rows×Cols identical bodies at rest, Gap apart, from TopLeft.
type Grid struct {
	TopLeft [2]float64 `yaml:"top_left"`
	Rows    int        `yaml:"rows"`
	Cols    int        `yaml:"cols"`
	Gap     float64    `yaml:"gap"`
	Radius  float64    `yaml:"radius"`
}

// Scenario is a complete simulation setup.
type Scenario struct {
	Name        string     `yaml:"name"`
	G           float64    `yaml:"g"`
	Dt          float64    `yaml:"dt"`
	MinDistance float64    `yaml:"min_distance,omitempty"`
	Density     float64    `yaml:"density"`
	AutoOrbit   bool       `yaml:"auto_orbit,omitempty"`
	Bodies      []BodySpec `yaml:"bodies"`
	Grids       []Grid     `yaml:"grids,omitempty"`
}

// Load reads a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("scenario: unmarshal %s: %w", path, err)
	}
	if sc.Dt <= 0 {
		sc.Dt = 1.0 / 60
	}
	if sc.Density <= 0 {
		sc.Density = 1
	}
	return &sc, nil
}

// Default is a small showcase: two large planets flanking a 10×10 grid of
// small bodies that collapses into them.
func Default() *Scenario {
	return &Scenario{
		Name:    "default",
		G:       0.0001,
		Dt:      1.0 / 60,
		Density: 1,
		Bodies: []BodySpec{
			{Pos: [2]float64{300, 400}, Radius: 30},
			{Pos: [2]float64{600, 400}, Radius: 30},
		},
		Grids: []Grid{
			{TopLeft: [2]float64{260, 360}, Rows: 10, Cols: 10, Gap: 50, Radius: 2},
		},
	}
}

// Config returns the sim configuration for this scenario.
func (sc *Scenario) Config() sim.Config {
	return sim.Config{
		G:           sc.G,
		MinDistance: sc.MinDistance,
		Density:     sim.UniformDensity(sc.Density),
	}
}

// Populate spawns the scenario's bodies into s: explicit bodies first, then
// grids. With AutoOrbit set, explicit bodies after the first that carry no
// velocity are placed on a circular orbit around the first body.
func (sc *Scenario) Populate(s *sim.Sim) error {
	specs := sc.Bodies
	if sc.AutoOrbit && len(specs) > 1 {
		specs = orbiting(sc.G, sc.Density, specs)
	}

	for i, b := range specs {
		_, err := s.Spawn(
			mgl64.Vec2{b.Pos[0], b.Pos[1]},
			mgl64.Vec2{b.Vel[0], b.Vel[1]},
			b.Mass, b.Radius)
		if err != nil {
			return fmt.Errorf("scenario %q: body %d: %w", sc.Name, i, err)
		}
	}

	for gi, g := range sc.Grids {
		for i := 0; i < g.Cols; i++ {
			for j := 0; j < g.Rows; j++ {
				pos := mgl64.Vec2{
					g.TopLeft[0] + float64(i)*g.Gap,
					g.TopLeft[1] + float64(j)*g.Gap,
				}
				if _, err := s.Spawn(pos, mgl64.Vec2{}, 0, g.Radius); err != nil {
					return fmt.Errorf("scenario %q: grid %d: %w", sc.Name, gi, err)
				}
			}
		}
	}
	return nil
}

// OrbitalSpeed is the speed of a circular orbit of radius r around a host
// of the given mass.
//
// Derived from centripetal force = gravitational force:
// mv²/r = GMm/r², so v = sqrt(GM/r).
func OrbitalSpeed(g, hostMass, r float64) float64 {
	return math.Sqrt(g * hostMass / r)
}

// orbiting returns a copy of specs where every zero-velocity body after the
// first is given a circular-orbit velocity around the first, perpendicular
// to the separation vector.
func orbiting(g, density float64, specs []BodySpec) []BodySpec {
	host := specs[0]
	hostMass := host.Mass
	if hostMass == 0 {
		hostMass = sim.UniformDensity(density)(host.Radius)
	}

	out := make([]BodySpec, len(specs))
	copy(out, specs)
	for i := 1; i < len(out); i++ {
		if out[i].Vel != [2]float64{} {
			continue
		}
		dx := out[i].Pos[0] - host.Pos[0]
		dy := out[i].Pos[1] - host.Pos[1]
		r := math.Hypot(dx, dy)
		if r == 0 {
			continue
		}
		v := OrbitalSpeed(g, hostMass, r)
		out[i].Vel = [2]float64{
			-dy/r*v + host.Vel[0],
			dx/r*v + host.Vel[1],
		}
	}
	return out
}
