package matcher

import "github.com/jtejido/sourceafis/features"

// Probe is the lookup side of a comparison, prepared once and shared.
type Probe struct {
	Minutiae []features.Minutia
	Edges    [][]features.NeighborEdge
	Hash     *EdgeHash
}

// Candidate is the side enumerated for roots.
type Candidate struct {
	Minutiae []features.Minutia
	Edges    [][]features.NeighborEdge
}

// Transparency receives intermediate results of Context.Match. Accepts*
// methods are asked once per comparison so sinks that want nothing cost
// nothing.
type Transparency interface {
	AcceptsPairing() bool
	AcceptsBestPairing() bool
	LogRoots(roots []*MinutiaPair)
	LogPairing(pairing *PairingGraph)
	LogScore(score *ScoringData)
	LogBestPairing(pairing *PairingGraph)
	LogBestScore(score *ScoringData)
	LogBestMatch(index int)
}

type noTransparency struct{}

func (noTransparency) AcceptsPairing() bool         { return false }
func (noTransparency) AcceptsBestPairing() bool     { return false }
func (noTransparency) LogRoots([]*MinutiaPair)      {}
func (noTransparency) LogPairing(*PairingGraph)     {}
func (noTransparency) LogScore(*ScoringData)        {}
func (noTransparency) LogBestPairing(*PairingGraph) {}
func (noTransparency) LogBestScore(*ScoringData)    {}
func (noTransparency) LogBestMatch(int)             {}

// NoTransparency discards everything.
var NoTransparency Transparency = noTransparency{}

// Context is the scratch state of one matching worker. It must not be used
// by two goroutines at once and must not be copied.
type Context struct {
	Params  Parameters
	Scorer  Scorer
	Pool    *PairPool
	Roots   *RootList
	Pairing *PairingGraph
	Spider  *EdgeSpider
	Score   ScoringData
}

func NewContext(params Parameters) *Context {
	pool := new(PairPool)
	return &Context{
		Params:  params,
		Scorer:  DefaultScorer{Params: params},
		Pool:    pool,
		Roots:   NewRootList(),
		Pairing: NewPairingGraph(pool),
		Spider:  NewEdgeSpider(params),
	}
}

// Match tries every enumerated root, keeps the best score and leaves the
// context clean for the next comparison. Templates with fewer than two
// minutiae produce no roots and score 0.
func (c *Context) Match(probe Probe, candidate Candidate, log Transparency) float64 {
	if log == nil {
		log = NoTransparency
	}
	c.Pairing.ReserveProbe(len(probe.Minutiae))
	c.Pairing.ReserveCandidate(len(candidate.Minutiae))
	c.Pairing.SupportEnabled = log.AcceptsPairing()
	EnumerateRoots(c.Params, probe.Hash, candidate.Minutiae, c.Roots, c.Pool)
	log.LogRoots(c.Roots.Pairs)

	high := 0.0
	best := -1
	for i, root := range c.Roots.Pairs {
		c.Spider.Crawl(probe.Edges, candidate.Edges, c.Pairing, root)
		log.LogPairing(c.Pairing)
		partial := c.Scorer.Score(probe.Minutiae, candidate.Minutiae, c.Pairing, &c.Score)
		log.LogScore(&c.Score)
		if best < 0 || partial > high {
			high = partial
			best = i
		}
		c.Pairing.Clear()
	}

	if best >= 0 && log.AcceptsBestPairing() {
		c.Pairing.SupportEnabled = true
		c.Spider.Crawl(probe.Edges, candidate.Edges, c.Pairing, c.Roots.Pairs[best])
		log.LogBestPairing(c.Pairing)
		c.Scorer.Score(probe.Minutiae, candidate.Minutiae, c.Pairing, &c.Score)
		log.LogBestScore(&c.Score)
		c.Pairing.Clear()
	}
	c.Roots.Discard(c.Pool)
	log.LogBestMatch(best)
	return high
}
