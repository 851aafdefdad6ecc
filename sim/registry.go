package sim

// registry owns the live set of bodies. Ids come from a monotonic counter
// that is never reset and never recycles a removed id, so an external
// reference (a trail, a database row) stays valid for a body's whole life.
type registry struct {
	bodies map[uint64]*Body
	order  []uint64 // insertion order, for stable iteration
	nextID uint64
}

func newRegistry() *registry {
	return &registry{bodies: make(map[uint64]*Body)}
}

// add stores b under the next unused id and returns it.
func (r *registry) add(b Body) uint64 {
	b.ID = r.nextID
	r.bodies[b.ID] = &b
	r.order = append(r.order, b.ID)
	r.nextID++
	return b.ID
}

// remove deletes the body. Other ids are not renumbered.
func (r *registry) remove(id uint64) error {
	if _, ok := r.bodies[id]; !ok {
		return notFound(id)
	}
	delete(r.bodies, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *registry) get(id uint64) (*Body, bool) {
	b, ok := r.bodies[id]
	return b, ok
}

func (r *registry) count() int {
	return len(r.bodies)
}

// ids returns the live ids in insertion order. The physics is order
// independent, so callers may not read any meaning into the order beyond
// iteration stability.
func (r *registry) ids() []uint64 {
	return r.order
}
