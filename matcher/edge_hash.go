package matcher

import (
	"math"

	"github.com/jtejido/sourceafis/features"
	"github.com/jtejido/sourceafis/primitives"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// EdgeHash indexes every edge of a template by its quantized shape. Each
// edge is stored under the single key of its own shape; lookups enumerate
// every key a shape within tolerance of the query could have.
type EdgeHash struct {
	maxDistanceError        int
	maxAngleError           float64
	complementaryAngleError float64
	angleBins               int
	buckets                 map[int][]features.IndexedEdge
}

func NewEdgeHash(params Parameters) *EdgeHash {
	return &EdgeHash{
		maxDistanceError:        params.MaxDistanceError,
		maxAngleError:           params.MaxAngleError,
		complementaryAngleError: params.ComplementaryAngleError(),
		angleBins:               int(math.Ceil(primitives.Pi2 / params.MaxAngleError)),
		buckets:                 make(map[int][]features.IndexedEdge),
	}
}

// BuildEdgeHash indexes all ordered pairs of distinct minutiae.
func BuildEdgeHash(params Parameters, minutiae []features.Minutia) *EdgeHash {
	h := NewEdgeHash(params)
	for reference := range minutiae {
		for neighbor := range minutiae {
			if reference != neighbor {
				h.Insert(features.NewIndexedEdge(minutiae, reference, neighbor))
			}
		}
	}
	return h
}

func (h *EdgeHash) Insert(edge features.IndexedEdge) {
	key := h.Key(edge.EdgeShape)
	h.buckets[key] = append(h.buckets[key], edge)
}

func (h *EdgeHash) lengthBin(length int) int {
	return length / h.maxDistanceError
}

func (h *EdgeHash) angleBin(angle float64) int {
	return min(int(angle/h.maxAngleError), h.angleBins-1)
}

// angleRange returns the first bin and the number of consecutive bins,
// wrapping at 2π, that cover angle ± maxAngleError.
func (h *EdgeHash) angleRange(angle float64) (int, int) {
	first := h.angleBin(primitives.Difference(angle, h.maxAngleError))
	last := h.angleBin(primitives.Add(angle, h.maxAngleError))
	return first, (last-first+h.angleBins)%h.angleBins + 1
}

// Key is the bucket an edge shape is stored under.
func (h *EdgeHash) Key(edge features.EdgeShape) int {
	return key(h.lengthBin(edge.Length), h.angleBin(edge.ReferenceAngle), h.angleBin(edge.NeighborAngle))
}

func key(lengthBin, referenceBin, neighborBin int) int {
	return (referenceBin << 24) + (neighborBin << 16) + lengthBin
}

// AppendCoverage appends the keys of every bucket that may hold an edge
// matching the query within tolerance.
func (h *EdgeHash) AppendCoverage(keys []int, edge features.EdgeShape) []int {
	minLengthBin := h.lengthBin(max(0, edge.Length-h.maxDistanceError))
	maxLengthBin := h.lengthBin(edge.Length + h.maxDistanceError)
	minReferenceBin, referenceBins := h.angleRange(edge.ReferenceAngle)
	minNeighborBin, neighborBins := h.angleRange(edge.NeighborAngle)
	for lengthBin := minLengthBin; lengthBin <= maxLengthBin; lengthBin++ {
		for i := 0; i < referenceBins; i++ {
			referenceBin := (minReferenceBin + i) % h.angleBins
			for j := 0; j < neighborBins; j++ {
				keys = append(keys, key(lengthBin, referenceBin, (minNeighborBin+j)%h.angleBins))
			}
		}
	}
	return keys
}

func (h *EdgeHash) Coverage(edge features.EdgeShape) []int {
	return h.AppendCoverage(nil, edge)
}

// Matching reports whether two edge shapes agree within tolerance. The
// length bound is inclusive.
func (h *EdgeHash) Matching(probe, candidate features.EdgeShape) bool {
	return shapesMatch(probe, candidate, h.maxDistanceError, h.maxAngleError, h.complementaryAngleError)
}

func shapesMatch(probe, candidate features.EdgeShape, maxDistanceError int, maxAngleError, complementaryAngleError float64) bool {
	lengthDelta := probe.Length - candidate.Length
	if lengthDelta < -maxDistanceError || lengthDelta > maxDistanceError {
		return false
	}
	referenceDelta := primitives.Difference(probe.ReferenceAngle, candidate.ReferenceAngle)
	if referenceDelta > maxAngleError && referenceDelta < complementaryAngleError {
		return false
	}
	neighborDelta := primitives.Difference(probe.NeighborAngle, candidate.NeighborAngle)
	return neighborDelta <= maxAngleError || neighborDelta >= complementaryAngleError
}

// Lookup appends to matches every indexed edge matching the query.
func (h *EdgeHash) Lookup(query features.EdgeShape, matches []features.IndexedEdge) []features.IndexedEdge {
	var buffer [32]int
	for _, k := range h.AppendCoverage(buffer[:0], query) {
		for _, edge := range h.buckets[k] {
			if h.Matching(edge.EdgeShape, query) {
				matches = append(matches, edge)
			}
		}
	}
	return matches
}

// Bucket returns the edges stored under key.
func (h *EdgeHash) Bucket(key int) []features.IndexedEdge {
	return h.buckets[key]
}

// Keys returns the occupied bucket keys in ascending order.
func (h *EdgeHash) Keys() []int {
	keys := maps.Keys(h.buckets)
	slices.Sort(keys)
	return keys
}

func (h *EdgeHash) Size() int {
	n := 0
	for _, bucket := range h.buckets {
		n += len(bucket)
	}
	return n
}
