package sourceafis

import (
	"context"
	"fmt"
	"sync"

	"github.com/jtejido/sourceafis/config"
	"github.com/jtejido/sourceafis/features"
	"github.com/jtejido/sourceafis/matcher"
)

// Matcher compares one probe template against candidates. Building it
// indexes the probe once; Match may then be called from many goroutines.
type Matcher struct {
	logger   *TransparencyLogger
	params   matcher.Parameters
	template *Template
	probe    matcher.Probe
	contexts sync.Pool
}

func NewMatcher(logger *TransparencyLogger, probe *Template) (*Matcher, error) {
	if probe == nil {
		return nil, ErrNilTemplate
	}
	if probe.EdgeTableNeighbors < 1 {
		return nil, fmt.Errorf("%w: star size not recorded, build templates with NewTemplate", ErrInvalidTemplate)
	}
	if logger == nil {
		logger = NewTransparencyLogger(nil)
	}
	params := matcher.NewParameters(config.Current().Matching)
	params.EdgeTableNeighbors = probe.EdgeTableNeighbors
	m := &Matcher{
		logger:   logger,
		params:   params,
		template: probe,
		probe: matcher.Probe{
			Minutiae: probe.Minutiae,
			Edges:    probe.Edges,
			Hash:     matcher.BuildEdgeHash(params, probe.Minutiae),
		},
	}
	m.contexts.New = func() interface{} {
		return m.NewContext()
	}
	logger.logEdgeHash(m.probe.Hash)
	return m, nil
}

// Probe returns the template the matcher was built for.
func (m *Matcher) Probe() *Template {
	return m.template
}

// NewContext allocates scratch state for MatchContext.
func (m *Matcher) NewContext() *matcher.Context {
	return matcher.NewContext(m.params)
}

// Match returns the similarity score of the probe and candidate. A nil
// candidate, a cancelled ctx or a template without usable edges score 0.
// ctx is only checked before the comparison starts; the comparison itself
// is bounded by the root enumeration limits.
func (m *Matcher) Match(ctx context.Context, candidate *Template) float64 {
	if candidate == nil || ctx.Err() != nil {
		return 0
	}
	mc := m.contexts.Get().(*matcher.Context)
	defer m.contexts.Put(mc)
	return m.MatchContext(mc, candidate)
}

// MatchContext is Match with caller owned scratch state. mc must come from
// NewContext of a matcher with the same parameters. A candidate whose stars
// were built with a different EdgeTableNeighbors than the probe gets its
// stars rebuilt for this comparison.
func (m *Matcher) MatchContext(mc *matcher.Context, candidate *Template) float64 {
	if candidate == nil {
		return 0
	}
	edges := candidate.Edges
	if candidate.EdgeTableNeighbors != m.template.EdgeTableNeighbors {
		edges = features.BuildEdgeTable(candidate.Minutiae, m.template.EdgeTableNeighbors)
	}
	return mc.Match(m.probe, matcher.Candidate{
		Minutiae: candidate.Minutiae,
		Edges:    edges,
	}, m.logger)
}
