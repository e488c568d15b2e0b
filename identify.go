package sourceafis

import (
	"context"

	"github.com/jtejido/sourceafis/config"
	"github.com/jtejido/sourceafis/matcher"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// Candidate is one gallery entry.
type Candidate struct {
	ID       string
	Template *Template
}

// Match is the score of one gallery entry against the probe.
type Match struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// Identify scores every candidate against the probe using up to
// config.Config.Workers goroutines. Results are ordered by descending score,
// ties by ID. It returns ctx.Err() if ctx is cancelled before all candidates
// are scored.
func (m *Matcher) Identify(ctx context.Context, candidates []Candidate) ([]Match, error) {
	matches := make([]Match, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, config.Current().Workers))
	for i := range candidates {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			mc := m.contexts.Get().(*matcher.Context)
			defer m.contexts.Put(mc)
			matches[i] = Match{
				ID:    candidates[i].ID,
				Score: m.MatchContext(mc, candidates[i].Template),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return matches, nil
}
