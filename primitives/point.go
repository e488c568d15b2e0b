package primitives

import "math"

type IntPoint struct {
	X int `json:"x" cbor:"x"`
	Y int `json:"y" cbor:"y"`
}

func (p IntPoint) Plus(other IntPoint) IntPoint {
	return IntPoint{X: p.X + other.X, Y: p.Y + other.Y}
}

func (p IntPoint) Minus(other IntPoint) IntPoint {
	return IntPoint{X: p.X - other.X, Y: p.Y - other.Y}
}

// LengthSq is the squared euclidean length, safe from overflow for any
// coordinates that fit a fingerprint image.
func (p IntPoint) LengthSq() int {
	return p.X*p.X + p.Y*p.Y
}

func (p IntPoint) Length() float64 {
	return math.Hypot(float64(p.X), float64(p.Y))
}
