package features

import (
	"math"
	"testing"

	"github.com/jtejido/sourceafis/primitives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeShapeFixture(t *testing.T) {
	a := NewMinutia(0, 0, 0, Ending)
	b := NewMinutia(10, 0, math.Pi, Ending)

	edge := NewEdgeShape(a, b)
	assert.Equal(t, 10, edge.Length)
	assert.InDelta(t, 0, edge.ReferenceAngle, 1e-12)
	assert.InDelta(t, 0, edge.NeighborAngle, 1e-12)

	back := NewEdgeShape(b, a)
	assert.Equal(t, 10, back.Length)
	assert.InDelta(t, 0, back.ReferenceAngle, 1e-12)
	assert.InDelta(t, 0, back.NeighborAngle, 1e-12)
}

func TestEdgeShapeQuadrants(t *testing.T) {
	origin := NewMinutia(0, 0, 0, Ending)
	tests := []struct {
		name  string
		x, y  int
		angle float64
	}{
		{"east", 5, 0, 0},
		{"north", 0, 5, primitives.HalfPi},
		{"west", -5, 0, math.Pi},
		{"south", 0, -5, 3 * primitives.HalfPi},
		{"north west", -3, 3, 3 * math.Pi / 4},
		{"south west", -3, -3, 5 * math.Pi / 4},
		{"south east", 3, -3, 7 * math.Pi / 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edge := NewEdgeShape(origin, NewMinutia(tt.x, tt.y, 0, Ending))
			// reference direction is 0, so the reference angle is the negated bearing
			assert.InDelta(t, primitives.Difference(0, tt.angle), edge.ReferenceAngle, 1e-9)
			assert.InDelta(t, primitives.Difference(0, primitives.Opposite(tt.angle)), edge.NeighborAngle, 1e-9)
		})
	}
}

func TestEdgeShapeCoincidentMinutiae(t *testing.T) {
	a := NewMinutia(7, 7, 1, Ending)
	b := NewMinutia(7, 7, 2, Bifurcation)
	edge := NewEdgeShape(a, b)
	assert.Equal(t, 0, edge.Length)
	assert.False(t, math.IsNaN(edge.ReferenceAngle))
	assert.False(t, math.IsNaN(edge.NeighborAngle))
	assert.InDelta(t, 1, edge.ReferenceAngle, 1e-12)
}

func TestEdgeShapeRotationInvariance(t *testing.T) {
	a := NewMinutia(12, 40, 0.7, Ending)
	b := NewMinutia(95, -13, 4.1, Bifurcation)
	// rotate by 90 degrees around the origin and shift
	rotate := func(m Minutia) Minutia {
		return NewMinutia(-m.Position.Y+300, m.Position.X-20, m.Direction+primitives.HalfPi, m.Type)
	}
	original := NewEdgeShape(a, b)
	rotated := NewEdgeShape(rotate(a), rotate(b))
	assert.Equal(t, original.Length, rotated.Length)
	assert.InDelta(t, 0, primitives.Distance(original.ReferenceAngle, rotated.ReferenceAngle), 1e-9)
	assert.InDelta(t, 0, primitives.Distance(original.NeighborAngle, rotated.NeighborAngle), 1e-9)
}

func TestBuildEdgeTable(t *testing.T) {
	var minutiae []Minutia
	for i := 0; i < 15; i++ {
		minutiae = append(minutiae, NewMinutia(i*10, (i%3)*7, float64(i)*0.3, Ending))
	}
	table := BuildEdgeTable(minutiae, 9)
	require.Len(t, table, len(minutiae))
	for reference, star := range table {
		assert.LessOrEqual(t, len(star), 9)
		assert.NotEmpty(t, star)
		for i, edge := range star {
			assert.NotEqual(t, reference, edge.Neighbor, "star must not contain self edge")
			if i > 0 {
				prev := star[i-1]
				assert.True(t, prev.Length < edge.Length || (prev.Length == edge.Length && prev.Neighbor < edge.Neighbor))
			}
		}
	}
}

func TestBuildEdgeTableKeepsNearest(t *testing.T) {
	minutiae := []Minutia{
		NewMinutia(0, 0, 0, Ending),
		NewMinutia(100, 0, 0, Ending),
		NewMinutia(10, 0, 0, Ending),
		NewMinutia(0, 20, 0, Ending),
		NewMinutia(-10, 0, 0, Ending),
	}
	table := BuildEdgeTable(minutiae, 2)
	star := table[0]
	require.Len(t, star, 2)
	// neighbors 2 and 4 tie at length 10, index breaks the tie
	assert.Equal(t, 2, star[0].Neighbor)
	assert.Equal(t, 4, star[1].Neighbor)
}

func TestBuildEdgeTableSmall(t *testing.T) {
	assert.Empty(t, BuildEdgeTable(nil, 9))
	single := BuildEdgeTable([]Minutia{NewMinutia(1, 1, 0, Ending)}, 9)
	require.Len(t, single, 1)
	assert.Empty(t, single[0])
}

func TestMinutiaTypeCodes(t *testing.T) {
	for _, mt := range []MinutiaType{Ending, Bifurcation} {
		parsed, err := ParseMinutiaType(mt.Code())
		require.NoError(t, err)
		assert.Equal(t, mt, parsed)
	}
	_, err := ParseMinutiaType('X')
	assert.Error(t, err)
	assert.False(t, MinutiaType(7).Valid())
}
