package matcher

import (
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/jtejido/sourceafis/features"
)

// RootList collects the seed pairs of one comparison.
type RootList struct {
	Pairs      []*MinutiaPair
	duplicates *hashset.Set
	lookups    []features.IndexedEdge
}

func NewRootList() *RootList {
	return &RootList{duplicates: hashset.New()}
}

// Add appends a root unless one with the same probe and candidate minutia
// is already present. It reports whether the root was new.
func (r *RootList) Add(pool *PairPool, probe, candidate int) bool {
	duplicateKey := (probe << 16) | candidate
	if r.duplicates.Contains(duplicateKey) {
		return false
	}
	r.duplicates.Add(duplicateKey)
	pair := pool.Allocate()
	pair.Probe = probe
	pair.Candidate = candidate
	r.Pairs = append(r.Pairs, pair)
	return true
}

func (r *RootList) Count() int {
	return len(r.Pairs)
}

// Discard releases all roots to the pool.
func (r *RootList) Discard(pool *PairPool) {
	for i, pair := range r.Pairs {
		pool.Release(pair)
		r.Pairs[i] = nil
	}
	r.Pairs = r.Pairs[:0]
	r.duplicates.Clear()
}

// EnumerateRoots samples candidate edges with a sequence of strides and
// phases, first among long edges and then among short ones, and turns every
// probe edge matching a sample into a root. Enumeration stops as soon as
// MaxRootEdgeLookups samples were looked up or MaxTriedRoots distinct roots
// were collected.
func EnumerateRoots(params Parameters, hash *EdgeHash, candidate []features.Minutia, roots *RootList, pool *PairPool) {
	count := len(candidate)
	lookups := 0
	for _, shortEdges := range [...]bool{false, true} {
		for period := 1; period < count; period++ {
			for phase := 0; phase <= period; phase++ {
				for creference := phase; creference < count; creference += period + 1 {
					cneighbor := (creference + period) % count
					cedge := features.NewEdgeShape(candidate[creference], candidate[cneighbor])
					if (cedge.Length >= params.MinRootEdgeLength) == shortEdges {
						continue
					}
					roots.lookups = hash.Lookup(cedge, roots.lookups[:0])
					for _, match := range roots.lookups {
						if roots.Add(pool, match.Reference, creference) && roots.Count() >= params.MaxTriedRoots {
							return
						}
					}
					lookups++
					if lookups >= params.MaxRootEdgeLookups {
						return
					}
				}
			}
		}
	}
}
