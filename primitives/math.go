package primitives

import "golang.org/x/exp/constraints"

type number interface {
	constraints.Integer | constraints.Float
}

func Abs[T number](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Interpolate maps value from the [start, end] range linearly onto
// [targetStart, targetEnd].
func Interpolate(value, start, end, targetStart, targetEnd float64) float64 {
	if end == start {
		return targetStart
	}
	return targetStart + (value-start)/(end-start)*(targetEnd-targetStart)
}
