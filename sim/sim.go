package sim

import "github.com/go-gl/mathgl/mgl64"

// Sim advances a set of mutually gravitating, collidable bodies in discrete
// time steps. It is single threaded: one Step call fully completes before
// returning, and external readers only ever observe the state between
// completed steps.
type Sim struct {
	cfg Config
	reg *registry
}

// New creates an empty simulation. Zero-value G or MinDistance fall back to
// the package defaults.
func New(cfg Config) *Sim {
	if cfg.G == 0 {
		cfg.G = G
	}
	if cfg.MinDistance == 0 {
		cfg.MinDistance = DefaultMinDistance
	}
	return &Sim{cfg: cfg, reg: newRegistry()}
}

// StepResult lists the bodies destroyed and created by one step, so that
// per-body resources held outside the engine (trails, rows) can be torn
// down and spun up in lockstep.
type StepResult struct {
	Removed []uint64
	Created []uint64
}

// Spawn injects a new body and returns its id. A zero mass is derived from
// the radius through the configured density policy. Non-positive mass or
// radius is an InvariantError.
func (s *Sim) Spawn(pos, vel mgl64.Vec2, mass, radius float64) (uint64, error) {
	if radius <= 0 {
		return 0, &InvariantError{Reason: "spawn with non-positive radius"}
	}
	if mass == 0 && s.cfg.Density != nil {
		mass = s.cfg.Density(radius)
	}
	if mass <= 0 {
		return 0, &InvariantError{Reason: "spawn with non-positive mass"}
	}
	return s.reg.add(Body{Pos: pos, Vel: vel, Mass: mass, Radius: radius}), nil
}

// Despawn removes a body on external request. ErrNotFound if id is not
// live.
func (s *Sim) Despawn(id uint64) error {
	return s.reg.remove(id)
}

// Step advances the simulation by dt. Phases run in a fixed order, none
// skipped:
//
//  1. every unordered pair is tested once and routed to exactly one of the
//     collision path (union into a group) or the gravity path (mutual force
//     accumulated),
//  2. each collision group is replaced by one merged body,
//  3. every surviving body integrates and clears its accumulator.
//
// On error no mutation is committed: the step validates before it touches
// anything.
func (s *Sim) Step(dt float64) (StepResult, error) {
	ids := s.reg.ids()

	// contract check up front, before any force accumulates, so a failed
	// step leaves the registry exactly as it was.
	for _, id := range ids {
		b, _ := s.reg.get(id)
		if b.Mass <= 0 || b.Radius <= 0 {
			return StepResult{}, &InvariantError{ID: id, Reason: "non-positive mass or radius"}
		}
	}

	// 1) all-pairs scan
	grp := newGroups()
	for i := 0; i < len(ids)-1; i++ {
		a, _ := s.reg.get(ids[i])
		for j := i + 1; j < len(ids); j++ {
			b, _ := s.reg.get(ids[j])
			if colliding(a, b) {
				grp.union(a.ID, b.ID)
			} else {
				s.cfg.gravity(a, b)
			}
		}
	}

	// 2) resolve collisions. replacements are all computed before the
	// registry is touched, so the merge is atomic as far as any reader
	// can tell.
	var res StepResult
	comps := grp.components()
	replacements := make([]Body, len(comps))
	for i, comp := range comps {
		nb, err := s.merged(comp)
		if err != nil {
			return StepResult{}, err
		}
		replacements[i] = nb
	}
	for _, comp := range comps {
		for _, id := range comp {
			if err := s.reg.remove(id); err != nil {
				return StepResult{}, &InvariantError{ID: id, Reason: "double removal during merge"}
			}
			res.Removed = append(res.Removed, id)
		}
	}
	for _, nb := range replacements {
		// the replacement was never subjected to force this step: it
		// starts the next step with a zero accumulator and its derived
		// velocity.
		res.Created = append(res.Created, s.reg.add(nb))
	}

	// 3) integrate survivors
	for _, id := range s.reg.ids() {
		b, _ := s.reg.get(id)
		b.update(dt)
	}

	return res, nil
}

// Snapshot returns value copies of every live body in insertion order. It
// reflects only fully completed steps.
func (s *Sim) Snapshot() []Body {
	out := make([]Body, 0, s.reg.count())
	for _, id := range s.reg.ids() {
		b, _ := s.reg.get(id)
		out = append(out, *b)
	}
	return out
}

// Lookup returns a copy of one body. ErrNotFound if id is not live.
func (s *Sim) Lookup(id uint64) (Body, error) {
	b, ok := s.reg.get(id)
	if !ok {
		return Body{}, notFound(id)
	}
	return *b, nil
}

// Count reports the number of live bodies.
func (s *Sim) Count() int {
	return s.reg.count()
}
