package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolZeroesReleasedPairs(t *testing.T) {
	pool := new(PairPool)
	pair := pool.Allocate()
	*pair = MinutiaPair{Probe: 1, Candidate: 2, ProbeRef: 3, CandidateRef: 4, Distance: 5, SupportingEdges: 6, sequence: 7}
	assert.Equal(t, 1, pool.Outstanding())

	pool.Release(pair)
	assert.Equal(t, 0, pool.Outstanding())
	require.Len(t, pool.Idle(), 1)
	assert.Equal(t, MinutiaPair{}, *pool.Idle()[0])

	again := pool.Allocate()
	assert.Same(t, pair, again)
	assert.Equal(t, MinutiaPair{}, *again)
}

func TestPoolRejectsMisuse(t *testing.T) {
	pool := new(PairPool)
	assert.Panics(t, func() { pool.Release(&MinutiaPair{}) })
	pool.Allocate()
	assert.Panics(t, func() { pool.Release(nil) })
}

func newPair(pool *PairPool, probe, candidate, probeRef, candidateRef int) *MinutiaPair {
	pair := pool.Allocate()
	pair.Probe = probe
	pair.Candidate = candidate
	pair.ProbeRef = probeRef
	pair.CandidateRef = candidateRef
	pair.Distance = 10
	return pair
}

func TestPairingGraphAddAndSupport(t *testing.T) {
	pool := new(PairPool)
	graph := NewPairingGraph(pool)
	graph.ReserveProbe(5)
	graph.ReserveCandidate(4)

	root := newPair(pool, 0, 1, 0, 1)
	graph.AddPair(root)
	second := newPair(pool, 2, 3, 0, 1)
	graph.AddPair(second)
	assert.Equal(t, 2, graph.Count())
	assert.Same(t, root, graph.Tree[0])
	assert.Same(t, second, graph.ByProbe[2])
	assert.Same(t, second, graph.ByCandidate[3])

	// consistent redundant edge from 2->3 back to 0->1
	graph.AddSupport(newPair(pool, 0, 1, 2, 3))
	assert.Equal(t, 1, root.SupportingEdges)
	assert.Equal(t, 1, second.SupportingEdges)
	assert.Empty(t, graph.Support)

	// conflicting edge maps probe 2 elsewhere and is dropped
	graph.AddSupport(newPair(pool, 2, 0, 0, 1))
	assert.Equal(t, 1, root.SupportingEdges)
	assert.Equal(t, 1, second.SupportingEdges)
	assert.Equal(t, 2, pool.Outstanding())

	assert.Panics(t, func() { graph.AddPair(&MinutiaPair{Probe: 4, Candidate: 1}) })
}

func TestPairingGraphKeepsSupportWhenEnabled(t *testing.T) {
	pool := new(PairPool)
	graph := NewPairingGraph(pool)
	graph.ReserveProbe(3)
	graph.ReserveCandidate(3)
	graph.SupportEnabled = true
	graph.AddPair(newPair(pool, 0, 0, 0, 0))
	graph.AddPair(newPair(pool, 1, 1, 0, 0))
	graph.AddSupport(newPair(pool, 0, 0, 1, 1))
	assert.Len(t, graph.Support, 1)
	assert.Equal(t, 3, pool.Outstanding())
}

func TestPairingGraphClear(t *testing.T) {
	pool := new(PairPool)
	graph := NewPairingGraph(pool)
	graph.ReserveProbe(6)
	graph.ReserveCandidate(6)
	graph.SupportEnabled = true
	graph.AddPair(newPair(pool, 0, 5, 0, 5))
	graph.AddPair(newPair(pool, 3, 2, 0, 5))
	graph.AddSupport(newPair(pool, 0, 5, 3, 2))

	graph.Clear()
	assert.Equal(t, 0, graph.Count())
	assert.Empty(t, graph.Support)
	assert.Equal(t, 0, pool.Outstanding())
	for i := range graph.ByProbe {
		assert.Nil(t, graph.ByProbe[i])
		assert.Nil(t, graph.ByCandidate[i])
	}
	require.Len(t, pool.Idle(), 3)
	for _, pair := range pool.Idle() {
		assert.Equal(t, MinutiaPair{}, *pair)
	}

	// reserving a smaller size reuses the arrays
	graph.ReserveProbe(2)
	assert.Len(t, graph.ByProbe, 2)
}
