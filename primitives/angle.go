// Package primitives holds the small geometric building blocks shared by
// feature extraction and matching.
package primitives

import "math"

const (
	Pi     = math.Pi
	Pi2    = 2 * math.Pi
	HalfPi = 0.5 * math.Pi
)

// ToRadians converts degrees to radians.
func ToRadians(degrees float64) float64 {
	return degrees * Pi / 180
}

// Normalize wraps angle into [0, 2π).
func Normalize(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	result := math.Mod(angle, Pi2)
	if result < 0 {
		result += Pi2
	}
	if result >= Pi2 {
		result = 0
	}
	return result
}

// Add sums two normalized angles, wrapping the result into [0, 2π).
func Add(start, delta float64) float64 {
	angle := start + delta
	if angle < Pi2 {
		return angle
	}
	return angle - Pi2
}

// Difference returns first - second wrapped into [0, 2π).
func Difference(first, second float64) float64 {
	angle := first - second
	if angle >= 0 {
		return angle
	}
	return angle + Pi2
}

// Distance is the shortest angular distance between two angles, in [0, π].
func Distance(first, second float64) float64 {
	delta := math.Abs(first - second)
	if delta <= Pi {
		return delta
	}
	return Pi2 - delta
}

// Opposite turns the angle around by π.
func Opposite(angle float64) float64 {
	if angle < Pi {
		return angle + Pi
	}
	return angle - Pi
}

// Complementary returns 2π - angle, wrapped into [0, 2π).
func Complementary(angle float64) float64 {
	complement := Pi2 - angle
	if complement < Pi2 {
		return complement
	}
	return complement - Pi2
}

// Atan returns the direction of the vector in [0, 2π). The zero vector has
// direction 0.
func Atan(vector IntPoint) float64 {
	if vector.X == 0 && vector.Y == 0 {
		return 0
	}
	angle := math.Atan2(float64(vector.Y), float64(vector.X))
	if angle < 0 {
		return angle + Pi2
	}
	return angle
}
