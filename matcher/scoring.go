package matcher

import (
	"math"

	"github.com/jtejido/sourceafis/features"
	"github.com/jtejido/sourceafis/primitives"
)

// Scorer turns a finished pairing into a non-negative score, higher meaning
// a likelier match. Scores are compared, so a pairing should never score
// below a sub-tree of itself with the same geometry.
type Scorer interface {
	Score(probe, candidate []features.Minutia, pairing *PairingGraph, data *ScoringData) float64
}

type ScoringData struct {
	MinutiaCount               int     `cbor:"minutiaCount"`
	MinutiaScore               float64 `cbor:"minutiaScore"`
	MinutiaFractionInProbe     float64 `cbor:"minutiaFractionInProbe"`
	MinutiaFractionInCandidate float64 `cbor:"minutiaFractionInCandidate"`
	MinutiaFraction            float64 `cbor:"minutiaFraction"`
	MinutiaFractionScore       float64 `cbor:"minutiaFractionScore"`
	SupportingEdgeSum          int     `cbor:"supportingEdgeSum"`
	EdgeCount                  int     `cbor:"edgeCount"`
	EdgeScore                  float64 `cbor:"edgeScore"`
	SupportedMinutiaCount      int     `cbor:"supportedMinutiaCount"`
	SupportedMinutiaScore      float64 `cbor:"supportedMinutiaScore"`
	MinutiaTypeHits            int     `cbor:"minutiaTypeHits"`
	MinutiaTypeScore           float64 `cbor:"minutiaTypeScore"`
	DistanceErrorSum           int     `cbor:"distanceErrorSum"`
	DistanceAccuracySum        int     `cbor:"distanceAccuracySum"`
	DistanceAccuracyScore      float64 `cbor:"distanceAccuracyScore"`
	AngleErrorSum              float64 `cbor:"angleErrorSum"`
	AngleAccuracySum           float64 `cbor:"angleAccuracySum"`
	AngleAccuracyScore         float64 `cbor:"angleAccuracyScore"`
	TotalScore                 float64 `cbor:"totalScore"`
	ShapedScore                float64 `cbor:"shapedScore"`
}

// Raw score thresholds at which the false match rate drops to the named
// level, used to shape raw scores onto a roughly logarithmic FMR scale.
const (
	thresholdFMRMax    = 8.48
	thresholdFMR2      = 11.12
	thresholdFMR10     = 14.15
	thresholdFMR100    = 18.22
	thresholdFMR1000   = 22.39
	thresholdFMR10000  = 27.24
	thresholdFMR100000 = 32.01
)

// DefaultScorer sums weighted counts of paired minutiae, supporting edges,
// type agreement and geometric accuracy and then shapes the sum so that
// every 10 points correspond to a tenfold lower false match rate. The
// accuracy terms are averages, so one more pair at the edge of tolerance
// can lower the raw TotalScore even though the counts grow.
type DefaultScorer struct {
	Params Parameters
}

func (s DefaultScorer) Score(probe, candidate []features.Minutia, pairing *PairingGraph, data *ScoringData) float64 {
	p := s.Params
	*data = ScoringData{}
	count := pairing.Count()
	data.MinutiaCount = count
	data.MinutiaScore = p.MinutiaScore * float64(count)
	if len(probe) > 0 {
		data.MinutiaFractionInProbe = float64(count) / float64(len(probe))
	}
	if len(candidate) > 0 {
		data.MinutiaFractionInCandidate = float64(count) / float64(len(candidate))
	}
	data.MinutiaFraction = 0.5 * (data.MinutiaFractionInProbe + data.MinutiaFractionInCandidate)
	data.MinutiaFractionScore = p.MinutiaFractionScore * data.MinutiaFraction
	for _, pair := range pairing.Tree {
		data.SupportingEdgeSum += pair.SupportingEdges
		if pair.SupportingEdges >= p.MinSupportingEdges {
			data.SupportedMinutiaCount++
		}
		if probe[pair.Probe].Type == candidate[pair.Candidate].Type {
			data.MinutiaTypeHits++
		}
	}
	data.EdgeCount = count + data.SupportingEdgeSum
	data.EdgeScore = p.EdgeScore * float64(data.EdgeCount)
	data.SupportedMinutiaScore = p.SupportedMinutiaScore * float64(data.SupportedMinutiaCount)
	data.MinutiaTypeScore = p.MinutiaTypeScore * float64(data.MinutiaTypeHits)

	innerDistanceRadius := int(math.Round(p.DistanceErrorFlatness * float64(p.MaxDistanceError)))
	innerAngleRadius := p.AngleErrorFlatness * p.MaxAngleError
	for _, pair := range pairing.Tree[min(1, count):] {
		probeEdge := features.NewEdgeShape(probe[pair.ProbeRef], probe[pair.Probe])
		candidateEdge := features.NewEdgeShape(candidate[pair.CandidateRef], candidate[pair.Candidate])
		data.DistanceErrorSum += max(innerDistanceRadius, primitives.Abs(probeEdge.Length-candidateEdge.Length))
		data.AngleErrorSum += math.Max(innerAngleRadius, primitives.Distance(probeEdge.ReferenceAngle, candidateEdge.ReferenceAngle))
		data.AngleErrorSum += math.Max(innerAngleRadius, primitives.Distance(probeEdge.NeighborAngle, candidateEdge.NeighborAngle))
	}
	distanceErrorPotential := p.MaxDistanceError * max(0, count-1)
	data.DistanceAccuracySum = distanceErrorPotential - data.DistanceErrorSum
	if distanceErrorPotential > 0 {
		data.DistanceAccuracyScore = p.DistanceAccuracyScore * float64(data.DistanceAccuracySum) / float64(distanceErrorPotential)
	}
	angleErrorPotential := p.MaxAngleError * float64(max(0, count-1)) * 2
	data.AngleAccuracySum = angleErrorPotential - data.AngleErrorSum
	if angleErrorPotential > 0 {
		data.AngleAccuracyScore = p.AngleAccuracyScore * data.AngleAccuracySum / angleErrorPotential
	}
	data.TotalScore = math.Max(0, data.MinutiaScore+
		data.MinutiaFractionScore+
		data.SupportedMinutiaScore+
		data.EdgeScore+
		data.MinutiaTypeScore+
		data.DistanceAccuracyScore+
		data.AngleAccuracyScore)
	data.ShapedScore = Shape(data.TotalScore)
	return data.ShapedScore
}

// Shape maps a raw score onto the false match rate scale.
func Shape(raw float64) float64 {
	switch {
	case raw < thresholdFMRMax:
		return 0
	case raw < thresholdFMR2:
		return primitives.Interpolate(raw, thresholdFMRMax, thresholdFMR2, 0, 3)
	case raw < thresholdFMR10:
		return primitives.Interpolate(raw, thresholdFMR2, thresholdFMR10, 3, 10)
	case raw < thresholdFMR100:
		return primitives.Interpolate(raw, thresholdFMR10, thresholdFMR100, 10, 20)
	case raw < thresholdFMR1000:
		return primitives.Interpolate(raw, thresholdFMR100, thresholdFMR1000, 20, 30)
	case raw < thresholdFMR10000:
		return primitives.Interpolate(raw, thresholdFMR1000, thresholdFMR10000, 30, 40)
	}
	// beyond the last measured threshold keep the slope of the last segment
	return primitives.Interpolate(raw, thresholdFMR10000, thresholdFMR100000, 40, 50)
}
