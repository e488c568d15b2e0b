package matcher

import "fmt"

// PairingGraph is the correspondence grown from one root. Tree keeps
// committed pairs in discovery order with the root first. ByProbe and
// ByCandidate map minutia indices back to their committed pair.
type PairingGraph struct {
	Tree        []*MinutiaPair
	ByProbe     []*MinutiaPair
	ByCandidate []*MinutiaPair
	// Support keeps redundant consistent edges when SupportEnabled is set.
	Support        []*MinutiaPair
	SupportEnabled bool

	pool *PairPool
}

func NewPairingGraph(pool *PairPool) *PairingGraph {
	return &PairingGraph{pool: pool}
}

func (g *PairingGraph) Count() int {
	return len(g.Tree)
}

func (g *PairingGraph) ReserveProbe(count int) {
	g.ByProbe = reserve(g.ByProbe, count)
}

func (g *PairingGraph) ReserveCandidate(count int) {
	g.ByCandidate = reserve(g.ByCandidate, count)
}

func reserve(lookup []*MinutiaPair, count int) []*MinutiaPair {
	if cap(lookup) < count {
		return make([]*MinutiaPair, count)
	}
	lookup = lookup[:count]
	for i := range lookup {
		lookup[i] = nil
	}
	return lookup
}

// AddPair commits pair. Both of its minutiae must be unpaired.
func (g *PairingGraph) AddPair(pair *MinutiaPair) {
	if g.ByProbe[pair.Probe] != nil || g.ByCandidate[pair.Candidate] != nil {
		panic(fmt.Sprintf("matcher: pair %v collides with committed pairing", pair))
	}
	g.ByProbe[pair.Probe] = pair
	g.ByCandidate[pair.Candidate] = pair
	g.Tree = append(g.Tree, pair)
}

// Paired reports whether either minutia of pair is already committed.
func (g *PairingGraph) Paired(pair *MinutiaPair) bool {
	return g.ByProbe[pair.Probe] != nil || g.ByCandidate[pair.Candidate] != nil
}

// AddSupport resolves a pair that cannot be committed. If it agrees with the
// committed pairing it strengthens the committed pairs at both of its ends.
// The pair is kept in Support or returned to the pool.
func (g *PairingGraph) AddSupport(pair *MinutiaPair) {
	committed := g.ByProbe[pair.Probe]
	if committed != nil && committed.Candidate == pair.Candidate {
		committed.SupportingEdges++
		if ref := g.ByProbe[pair.ProbeRef]; ref != nil {
			ref.SupportingEdges++
		}
		if g.SupportEnabled {
			g.Support = append(g.Support, pair)
			return
		}
	}
	g.pool.Release(pair)
}

// Clear returns every pair to the pool and resets the reverse lookups.
func (g *PairingGraph) Clear() {
	for i, pair := range g.Tree {
		g.ByProbe[pair.Probe] = nil
		g.ByCandidate[pair.Candidate] = nil
		g.pool.Release(pair)
		g.Tree[i] = nil
	}
	g.Tree = g.Tree[:0]
	for i, pair := range g.Support {
		g.pool.Release(pair)
		g.Support[i] = nil
	}
	g.Support = g.Support[:0]
}
