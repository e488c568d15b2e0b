package matcher

import (
	"github.com/emirpasic/gods/queues/priorityqueue"
	"github.com/jtejido/sourceafis/features"
)

// byDistance orders pending pairs by ascending distance and then by the
// order in which they were queued.
func byDistance(a, b interface{}) int {
	pa, pb := a.(*MinutiaPair), b.(*MinutiaPair)
	switch {
	case pa.Distance < pb.Distance:
		return -1
	case pa.Distance > pb.Distance:
		return 1
	case pa.sequence < pb.sequence:
		return -1
	case pa.sequence > pb.sequence:
		return 1
	}
	return 0
}

// EdgeSpider grows a pairing from a root by repeatedly committing the
// shortest pending edge and queueing the compatible edges of its stars.
type EdgeSpider struct {
	params                  Parameters
	complementaryAngleError float64
	queue                   *priorityqueue.Queue
	sequence                uint64
}

func NewEdgeSpider(params Parameters) *EdgeSpider {
	return &EdgeSpider{
		params:                  params,
		complementaryAngleError: params.ComplementaryAngleError(),
		queue:                   priorityqueue.NewWith(byDistance),
	}
}

// Crawl grows pairing from a copy of root until no pending pair is left.
// pairing must be empty and reserved for both templates.
func (s *EdgeSpider) Crawl(probeEdges, candidateEdges [][]features.NeighborEdge, pairing *PairingGraph, root *MinutiaPair) {
	s.sequence = 0
	seed := pairing.pool.Allocate()
	seed.Probe = root.Probe
	seed.Candidate = root.Candidate
	seed.ProbeRef = root.Probe
	seed.CandidateRef = root.Candidate
	s.enqueue(seed)
	for !s.queue.Empty() {
		value, _ := s.queue.Dequeue()
		pair := value.(*MinutiaPair)
		if pairing.Paired(pair) {
			pairing.AddSupport(pair)
			continue
		}
		pairing.AddPair(pair)
		s.collectEdges(probeEdges, candidateEdges, pairing, pair)
	}
}

func (s *EdgeSpider) enqueue(pair *MinutiaPair) {
	s.sequence++
	pair.sequence = s.sequence
	s.queue.Enqueue(pair)
}

// collectEdges walks both stars of reference in length order with a sliding
// window of tolerated lengths over the probe star.
func (s *EdgeSpider) collectEdges(probeEdges, candidateEdges [][]features.NeighborEdge, pairing *PairingGraph, reference *MinutiaPair) {
	probeStar := probeEdges[reference.Probe]
	candidateStar := candidateEdges[reference.Candidate]
	maxDistanceError := s.params.MaxDistanceError
	start, end := 0, 0
	for _, cedge := range candidateStar {
		for start < len(probeStar) && probeStar[start].Length < cedge.Length-maxDistanceError {
			start++
		}
		if end < start {
			end = start
		}
		for end < len(probeStar) && probeStar[end].Length <= cedge.Length+maxDistanceError {
			end++
		}
		for _, pedge := range probeStar[start:end] {
			if !shapesMatch(pedge.EdgeShape, cedge.EdgeShape, maxDistanceError, s.params.MaxAngleError, s.complementaryAngleError) {
				continue
			}
			pair := pairing.pool.Allocate()
			pair.Probe = pedge.Neighbor
			pair.Candidate = cedge.Neighbor
			pair.ProbeRef = reference.Probe
			pair.CandidateRef = reference.Candidate
			pair.Distance = cedge.Length
			if pairing.Paired(pair) {
				pairing.AddSupport(pair)
			} else {
				s.enqueue(pair)
			}
		}
	}
}
