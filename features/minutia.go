// Package features defines minutiae and the rotation/translation invariant
// edge descriptors the matcher works on.
package features

import (
	"fmt"

	"github.com/jtejido/sourceafis/primitives"
)

type MinutiaType int

const (
	Ending MinutiaType = iota
	Bifurcation
)

func (t MinutiaType) String() string {
	switch t {
	case Ending:
		return "ending"
	case Bifurcation:
		return "bifurcation"
	default:
		return fmt.Sprintf("MinutiaType(%d)", int(t))
	}
}

// Code is the single character used by the persistent template format.
func (t MinutiaType) Code() byte {
	if t == Bifurcation {
		return 'B'
	}
	return 'E'
}

func ParseMinutiaType(code byte) (MinutiaType, error) {
	switch code {
	case 'E':
		return Ending, nil
	case 'B':
		return Bifurcation, nil
	}
	return 0, fmt.Errorf("unknown minutia type code %q", code)
}

func (t MinutiaType) Valid() bool {
	return t == Ending || t == Bifurcation
}

type Minutia struct {
	Position  primitives.IntPoint `json:"position"`
	Direction float64             `json:"direction"`
	Type      MinutiaType         `json:"type"`
}

func NewMinutia(x, y int, direction float64, t MinutiaType) Minutia {
	return Minutia{
		Position:  primitives.IntPoint{X: x, Y: y},
		Direction: primitives.Normalize(direction),
		Type:      t,
	}
}
