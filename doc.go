// Package sourceafis compares fingerprint templates.
//
// A Template is an immutable set of minutiae. A Matcher is built once for a
// probe template and then compared against any number of candidate
// templates, sequentially or from many goroutines at once:
//
//	config.LoadDefaultConfig()
//	probe, _ := sourceafis.NewTemplate(width, height, minutiae)
//	m, _ := sourceafis.NewMatcher(sourceafis.NewTransparencyLogger(nil), probe)
//	score := m.Match(ctx, candidate)
//
// Scores are not normalized. A score of 40 corresponds to a false match rate
// of about 0.01% and is a reasonable default threshold.
package sourceafis
