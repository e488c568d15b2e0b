package features

import (
	"math"

	"github.com/jtejido/sourceafis/primitives"
	"golang.org/x/exp/slices"
)

// EdgeShape describes the geometric relation of two minutiae in a way that
// does not change when the whole template is translated or rotated.
type EdgeShape struct {
	Length         int     `cbor:"length"`
	ReferenceAngle float64 `cbor:"referenceAngle"`
	NeighborAngle  float64 `cbor:"neighborAngle"`
}

func NewEdgeShape(reference, neighbor Minutia) EdgeShape {
	vector := neighbor.Position.Minus(reference.Position)
	x, y := vector.X, vector.Y
	quadrant := 0.0
	if y < 0 {
		x, y = -x, -y
		quadrant = primitives.Pi
	}
	if x < 0 {
		x, y = y, -x
		quadrant += primitives.HalfPi
	}
	angle := quadrant
	if x != 0 || y != 0 {
		angle += math.Atan2(float64(y), float64(x))
	}
	if angle >= primitives.Pi2 {
		angle -= primitives.Pi2
	}
	return EdgeShape{
		Length:         int(math.Round(math.Hypot(float64(x), float64(y)))),
		ReferenceAngle: primitives.Difference(reference.Direction, angle),
		NeighborAngle:  primitives.Difference(neighbor.Direction, primitives.Opposite(angle)),
	}
}

type IndexedEdge struct {
	EdgeShape
	Reference int `cbor:"reference"`
	Neighbor  int `cbor:"neighbor"`
}

func NewIndexedEdge(minutiae []Minutia, reference, neighbor int) IndexedEdge {
	return IndexedEdge{
		EdgeShape: NewEdgeShape(minutiae[reference], minutiae[neighbor]),
		Reference: reference,
		Neighbor:  neighbor,
	}
}

// NeighborEdge is one entry of a minutia's star: the edge from the owning
// minutia to Neighbor.
type NeighborEdge struct {
	EdgeShape
	Neighbor int `cbor:"neighbor"`
}

func NewNeighborEdge(minutiae []Minutia, reference, neighbor int) NeighborEdge {
	return NeighborEdge{
		EdgeShape: NewEdgeShape(minutiae[reference], minutiae[neighbor]),
		Neighbor:  neighbor,
	}
}

// BuildEdgeTable returns, for every minutia, its edges to at most
// maxNeighbors nearest other minutiae sorted by length and then neighbor
// index.
func BuildEdgeTable(minutiae []Minutia, maxNeighbors int) [][]NeighborEdge {
	edges := make([][]NeighborEdge, len(minutiae))
	star := make([]NeighborEdge, 0, len(minutiae))
	allSqDistances := make([]int, len(minutiae))
	for reference := range minutiae {
		position := minutiae[reference].Position
		maxSqDistance := math.MaxInt
		if len(minutiae)-1 > maxNeighbors {
			for neighbor := range minutiae {
				allSqDistances[neighbor] = position.Minus(minutiae[neighbor].Position).LengthSq()
			}
			slices.Sort(allSqDistances)
			// index 0 is the distance to itself
			maxSqDistance = allSqDistances[maxNeighbors]
		}
		for neighbor := range minutiae {
			if neighbor != reference && position.Minus(minutiae[neighbor].Position).LengthSq() <= maxSqDistance {
				star = append(star, NewNeighborEdge(minutiae, reference, neighbor))
			}
		}
		slices.SortFunc(star, func(a, b NeighborEdge) int {
			if a.Length != b.Length {
				return a.Length - b.Length
			}
			return a.Neighbor - b.Neighbor
		})
		if len(star) > maxNeighbors {
			star = star[:maxNeighbors]
		}
		edges[reference] = slices.Clone(star)
		star = star[:0]
	}
	return edges
}
