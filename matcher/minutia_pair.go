package matcher

import "fmt"

// MinutiaPair is one tentative or committed correspondence. ProbeRef and
// CandidateRef name the committed pair whose star produced it.
type MinutiaPair struct {
	Probe           int `cbor:"probe"`
	Candidate       int `cbor:"candidate"`
	ProbeRef        int `cbor:"probeRef"`
	CandidateRef    int `cbor:"candidateRef"`
	Distance        int `cbor:"distance"`
	SupportingEdges int `cbor:"supportingEdges"`

	// queue position, breaks ties between equal distances
	sequence uint64
}

func (p *MinutiaPair) String() string {
	return fmt.Sprintf("%d->%d (via %d->%d, distance %d, support %d)",
		p.Probe, p.Candidate, p.ProbeRef, p.CandidateRef, p.Distance, p.SupportingEdges)
}

func (p *MinutiaPair) reset() {
	*p = MinutiaPair{}
}

// PairPool recycles MinutiaPair values within one Context. Released pairs
// are zeroed before they can be handed out again.
type PairPool struct {
	free        []*MinutiaPair
	outstanding int
}

func (p *PairPool) Allocate() *MinutiaPair {
	p.outstanding++
	if n := len(p.free); n > 0 {
		pair := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return pair
	}
	return new(MinutiaPair)
}

func (p *PairPool) Release(pair *MinutiaPair) {
	if pair == nil {
		panic("matcher: releasing nil minutia pair")
	}
	if p.outstanding == 0 {
		panic("matcher: minutia pair pool underflow")
	}
	p.outstanding--
	pair.reset()
	p.free = append(p.free, pair)
}

// Outstanding is the number of pairs handed out and not yet released.
func (p *PairPool) Outstanding() int {
	return p.outstanding
}

// Idle returns the released pairs waiting for reuse.
func (p *PairPool) Idle() []*MinutiaPair {
	return p.free
}
