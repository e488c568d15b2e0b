package primitives

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifferenceWraps(t *testing.T) {
	tests := []struct {
		name          string
		first, second float64
		want          float64
	}{
		{"equal", 1, 1, 0},
		{"positive", 2, 0.5, 1.5},
		{"negative wraps", 0.5, 2, Pi2 - 1.5},
		{"zero minus pi", 0, Pi, Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Difference(tt.first, tt.second), 1e-12)
		})
	}
}

func TestOppositeAndComplementary(t *testing.T) {
	assert.InDelta(t, Pi, Opposite(0), 1e-12)
	assert.InDelta(t, 0.5, Opposite(Pi+0.5), 1e-12)
	assert.InDelta(t, 0, Complementary(0), 1e-12)
	assert.InDelta(t, Pi2-0.25, Complementary(0.25), 1e-12)
}

func TestDistanceIsSymmetricAndShort(t *testing.T) {
	assert.InDelta(t, 0.2, Distance(0.1, Pi2-0.1), 1e-12)
	assert.InDelta(t, 0.2, Distance(Pi2-0.1, 0.1), 1e-12)
	assert.InDelta(t, Pi, Distance(0, Pi), 1e-12)
}

func TestNormalize(t *testing.T) {
	assert.InDelta(t, 0.5, Normalize(0.5+3*Pi2), 1e-9)
	assert.InDelta(t, Pi2-0.5, Normalize(-0.5), 1e-9)
	assert.Equal(t, 0.0, Normalize(math.NaN()))
	n := Normalize(-1e-18)
	assert.True(t, n >= 0 && n < Pi2)
}

func TestAtan(t *testing.T) {
	assert.Equal(t, 0.0, Atan(IntPoint{}))
	assert.InDelta(t, HalfPi, Atan(IntPoint{X: 0, Y: 5}), 1e-12)
	assert.InDelta(t, 3*HalfPi, Atan(IntPoint{X: 0, Y: -5}), 1e-12)
}

func TestClampAndAbs(t *testing.T) {
	assert.Equal(t, 3, Abs(-3))
	assert.Equal(t, 2.5, Abs(2.5))
	assert.Equal(t, 0, Clamp(-4, 0, 10))
	assert.Equal(t, 10, Clamp(14, 0, 10))
	assert.InDelta(t, 5, Interpolate(0.5, 0, 1, 0, 10), 1e-12)
}
