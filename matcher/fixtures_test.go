package matcher

import (
	"github.com/jtejido/sourceafis/features"
)

// spreadMinutiae are at least 106 pixels apart from each other inside a
// 300x300 area. Two neighbors of any minutia therefore never agree in both
// length and bearing within the default tolerances, so a pairing grown from
// a correct root can only ever commit correct pairs.
func spreadMinutiae() []features.Minutia {
	return []features.Minutia{
		features.NewMinutia(20, 30, 0.3, features.Ending),
		features.NewMinutia(130, 20, 1.7, features.Bifurcation),
		features.NewMinutia(250, 40, 2.9, features.Ending),
		features.NewMinutia(60, 140, 4.4, features.Ending),
		features.NewMinutia(190, 130, 5.1, features.Bifurcation),
		features.NewMinutia(30, 260, 0.9, features.Ending),
		features.NewMinutia(150, 250, 3.6, features.Bifurcation),
		features.NewMinutia(270, 200, 6.0, features.Ending),
	}
}

func newProbe(params Parameters, minutiae []features.Minutia) Probe {
	return Probe{
		Minutiae: minutiae,
		Edges:    features.BuildEdgeTable(minutiae, params.EdgeTableNeighbors),
		Hash:     BuildEdgeHash(params, minutiae),
	}
}

func newCandidate(params Parameters, minutiae []features.Minutia) Candidate {
	return Candidate{
		Minutiae: minutiae,
		Edges:    features.BuildEdgeTable(minutiae, params.EdgeTableNeighbors),
	}
}

// recorder keeps what Context.Match reports.
type recorder struct {
	roots       int
	attempts    int
	scores      []float64
	bestIndex   int
	bestTree    []MinutiaPair
	bestSupport int
	bestScore   ScoringData
	acceptsAll  bool
}

func (r *recorder) AcceptsPairing() bool     { return r.acceptsAll }
func (r *recorder) AcceptsBestPairing() bool { return r.acceptsAll }
func (r *recorder) LogRoots(roots []*MinutiaPair) {
	r.roots = len(roots)
}
func (r *recorder) LogPairing(*PairingGraph) { r.attempts++ }
func (r *recorder) LogScore(score *ScoringData) {
	r.scores = append(r.scores, score.ShapedScore)
}
func (r *recorder) LogBestPairing(pairing *PairingGraph) {
	r.bestTree = r.bestTree[:0]
	for _, pair := range pairing.Tree {
		r.bestTree = append(r.bestTree, *pair)
	}
	r.bestSupport = len(pairing.Support)
}
func (r *recorder) LogBestScore(score *ScoringData) { r.bestScore = *score }
func (r *recorder) LogBestMatch(index int)          { r.bestIndex = index }
