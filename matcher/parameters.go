// Package matcher implements the minutia pairing engine: the probe edge hash,
// root enumeration, the edge spider that grows a pairing from a root and the
// scoring of finished pairings.
//
// Nothing in this package is safe for concurrent mutation. Templates and
// EdgeHash values are read only once built and may be shared, while every
// goroutine needs its own Context.
package matcher

import (
	"github.com/jtejido/sourceafis/config"
	"github.com/jtejido/sourceafis/primitives"
)

type Parameters struct {
	MaxDistanceError   int
	MaxAngleError      float64 // radians
	EdgeTableNeighbors int
	MinRootEdgeLength  int
	MaxRootEdgeLookups int
	MaxTriedRoots      int
	MinSupportingEdges int

	DistanceErrorFlatness float64
	AngleErrorFlatness    float64
	MinutiaScore          float64
	MinutiaFractionScore  float64
	MinutiaTypeScore      float64
	SupportedMinutiaScore float64
	EdgeScore             float64
	DistanceAccuracyScore float64
	AngleAccuracyScore    float64
}

func NewParameters(c config.MatchingConfig) Parameters {
	return Parameters{
		MaxDistanceError:      c.MaxDistanceError,
		MaxAngleError:         primitives.ToRadians(c.MaxAngleError),
		EdgeTableNeighbors:    c.EdgeTableNeighbors,
		MinRootEdgeLength:     c.MinRootEdgeLength,
		MaxRootEdgeLookups:    c.MaxRootEdgeLookups,
		MaxTriedRoots:         c.MaxTriedRoots,
		MinSupportingEdges:    c.MinSupportingEdges,
		DistanceErrorFlatness: c.DistanceErrorFlatness,
		AngleErrorFlatness:    c.AngleErrorFlatness,
		MinutiaScore:          c.MinutiaScore,
		MinutiaFractionScore:  c.MinutiaFractionScore,
		MinutiaTypeScore:      c.MinutiaTypeScore,
		SupportedMinutiaScore: c.SupportedMinutiaScore,
		EdgeScore:             c.EdgeScore,
		DistanceAccuracyScore: c.DistanceAccuracyScore,
		AngleAccuracyScore:    c.AngleAccuracyScore,
	}
}

// DefaultParameters are the parameters of the default configuration.
func DefaultParameters() Parameters {
	return NewParameters(config.New().Matching)
}

// ComplementaryAngleError is the lower bound of angle differences that are
// within tolerance after wrapping around 2π.
func (p Parameters) ComplementaryAngleError() float64 {
	return primitives.Complementary(p.MaxAngleError)
}
