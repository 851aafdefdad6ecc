package sim

import "sort"

// groups folds colliding pairs into disjoint sets of body ids using
// union-find (path compression, union by size). Feeding it every colliding
// pair of a step yields the true connected components of the collides-with
// graph, so a body can never end up counted in two groups at once even when
// a late pair bridges two sets that already exist.
type groups struct {
	parent map[uint64]uint64
	size   map[uint64]int
}

func newGroups() *groups {
	return &groups{
		parent: make(map[uint64]uint64),
		size:   make(map[uint64]int),
	}
}

// find returns the root of id, adding id as a singleton if unseen.
func (g *groups) find(id uint64) uint64 {
	p, ok := g.parent[id]
	if !ok {
		g.parent[id] = id
		g.size[id] = 1
		return id
	}
	if p == id {
		return id
	}
	root := g.find(p)
	g.parent[id] = root
	return root
}

// union joins the sets containing a and b.
func (g *groups) union(a, b uint64) {
	ra, rb := g.find(a), g.find(b)
	if ra == rb {
		return
	}
	if g.size[ra] < g.size[rb] {
		ra, rb = rb, ra
	}
	g.parent[rb] = ra
	g.size[ra] += g.size[rb]
}

// components returns every set with at least two members. Members are
// sorted ascending and components ordered by smallest member, so the merge
// phase is deterministic regardless of map iteration order.
func (g *groups) components() [][]uint64 {
	byRoot := make(map[uint64][]uint64)
	for id := range g.parent {
		root := g.find(id)
		byRoot[root] = append(byRoot[root], id)
	}

	comps := make([][]uint64, 0, len(byRoot))
	for _, members := range byRoot {
		if len(members) < 2 {
			continue
		}
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
		comps = append(comps, members)
	}
	sort.Slice(comps, func(i, j int) bool { return comps[i][0] < comps[j][0] })
	return comps
}
