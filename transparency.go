package sourceafis

import (
	"log"
	"sync"

	"github.com/jtejido/sourceafis/features"
	"github.com/jtejido/sourceafis/matcher"
)

// TransparencyContents receives diagnostic data about matching. Accepts is
// asked once per key when the logger is created and Accept is only called
// for accepted keys. Data is CBOR encoded.
type TransparencyContents interface {
	Accepts(key string) bool
	Accept(key, mime string, data []byte) error
}

const (
	KeyEdgeHash    = "edge-hash"
	KeyRoots       = "roots"
	KeyPairing     = "pairing"
	KeyScore       = "score"
	KeyBestPairing = "best-pairing"
	KeyBestScore   = "best-score"
	KeyBestMatch   = "best-match"
)

// TransparencyLogger forwards matcher internals to TransparencyContents. It
// serializes calls to the contents, so one logger can be shared by matchers
// running on many goroutines.
type TransparencyLogger struct {
	contents TransparencyContents

	edgeHash    bool
	roots       bool
	pairing     bool
	score       bool
	bestPairing bool
	bestScore   bool
	bestMatch   bool

	mu       sync.Mutex
	failOnce sync.Once
}

// NewTransparencyLogger wraps contents. A nil contents yields a logger that
// accepts nothing.
func NewTransparencyLogger(contents TransparencyContents) *TransparencyLogger {
	l := &TransparencyLogger{contents: contents}
	if contents == nil {
		return l
	}
	l.edgeHash = contents.Accepts(KeyEdgeHash)
	l.roots = contents.Accepts(KeyRoots)
	l.pairing = contents.Accepts(KeyPairing)
	l.score = contents.Accepts(KeyScore)
	l.bestPairing = contents.Accepts(KeyBestPairing)
	l.bestScore = contents.Accepts(KeyBestScore)
	l.bestMatch = contents.Accepts(KeyBestMatch)
	return l
}

func (l *TransparencyLogger) log(key string, value interface{}) {
	data, err := cborEncoder.Marshal(value)
	if err == nil {
		l.mu.Lock()
		err = l.contents.Accept(key, cborMime, data)
		l.mu.Unlock()
	}
	if err != nil {
		l.failOnce.Do(func() {
			log.Printf("sourceafis: transparency logging failed for %s: %v", key, err)
		})
	}
}

type transparencyBucket struct {
	Key   int                    `cbor:"key"`
	Edges []features.IndexedEdge `cbor:"edges"`
}

func (l *TransparencyLogger) logEdgeHash(hash *matcher.EdgeHash) {
	if !l.edgeHash {
		return
	}
	keys := hash.Keys()
	buckets := make([]transparencyBucket, len(keys))
	for i, k := range keys {
		buckets[i] = transparencyBucket{Key: k, Edges: hash.Bucket(k)}
	}
	l.log(KeyEdgeHash, buckets)
}

type transparencyPair struct {
	Probe     int `cbor:"probe"`
	Candidate int `cbor:"candidate"`
}

type transparencyEdge struct {
	ProbeFrom     int `cbor:"probeFrom"`
	ProbeTo       int `cbor:"probeTo"`
	CandidateFrom int `cbor:"candidateFrom"`
	CandidateTo   int `cbor:"candidateTo"`
}

type transparencyPairing struct {
	Root    transparencyPair   `cbor:"root"`
	Tree    []transparencyEdge `cbor:"tree"`
	Support []transparencyEdge `cbor:"support"`
}

func toEdge(pair *matcher.MinutiaPair) transparencyEdge {
	return transparencyEdge{
		ProbeFrom:     pair.ProbeRef,
		ProbeTo:       pair.Probe,
		CandidateFrom: pair.CandidateRef,
		CandidateTo:   pair.Candidate,
	}
}

func toPairing(pairing *matcher.PairingGraph) transparencyPairing {
	var p transparencyPairing
	if pairing.Count() > 0 {
		root := pairing.Tree[0]
		p.Root = transparencyPair{Probe: root.Probe, Candidate: root.Candidate}
	}
	p.Tree = make([]transparencyEdge, 0, len(pairing.Tree))
	for _, pair := range pairing.Tree[min(1, pairing.Count()):] {
		p.Tree = append(p.Tree, toEdge(pair))
	}
	p.Support = make([]transparencyEdge, 0, len(pairing.Support))
	for _, pair := range pairing.Support {
		p.Support = append(p.Support, toEdge(pair))
	}
	return p
}

func (l *TransparencyLogger) AcceptsPairing() bool {
	return l.pairing
}

func (l *TransparencyLogger) AcceptsBestPairing() bool {
	return l.bestPairing || l.bestScore
}

func (l *TransparencyLogger) LogRoots(roots []*matcher.MinutiaPair) {
	if !l.roots {
		return
	}
	pairs := make([]transparencyPair, len(roots))
	for i, root := range roots {
		pairs[i] = transparencyPair{Probe: root.Probe, Candidate: root.Candidate}
	}
	l.log(KeyRoots, pairs)
}

func (l *TransparencyLogger) LogPairing(pairing *matcher.PairingGraph) {
	if l.pairing {
		l.log(KeyPairing, toPairing(pairing))
	}
}

func (l *TransparencyLogger) LogScore(score *matcher.ScoringData) {
	if l.score {
		l.log(KeyScore, score)
	}
}

func (l *TransparencyLogger) LogBestPairing(pairing *matcher.PairingGraph) {
	if l.bestPairing {
		l.log(KeyBestPairing, toPairing(pairing))
	}
}

func (l *TransparencyLogger) LogBestScore(score *matcher.ScoringData) {
	if l.bestScore {
		l.log(KeyBestScore, score)
	}
}

func (l *TransparencyLogger) LogBestMatch(index int) {
	if l.bestMatch {
		l.log(KeyBestMatch, index)
	}
}
