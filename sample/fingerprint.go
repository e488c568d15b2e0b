package main

import (
	"context"
	"log"

	"github.com/jtejido/sourceafis"
)

// TransparencyContents writes the size of every accepted record to the log.
// Keys listed in accept are the only ones requested.
type TransparencyContents struct {
	accept map[string]bool
}

func NewTransparencyContents(keys ...string) *TransparencyContents {
	c := &TransparencyContents{accept: make(map[string]bool, len(keys))}
	for _, k := range keys {
		c.accept[k] = true
	}
	return c
}

func (c *TransparencyContents) Accepts(key string) bool {
	return c.accept[key]
}

func (c *TransparencyContents) Accept(key, mime string, data []byte) error {
	log.Printf("transparency: %d B  %s %s", len(data), mime, key)
	return nil
}

func compareFingerprint(ctx context.Context, l *sourceafis.TransparencyLogger, probe, candidate *sourceafis.Template) (float64, error) {
	matcher, err := sourceafis.NewMatcher(l, probe)
	if err != nil {
		return 0, err
	}
	return matcher.Match(ctx, candidate), nil
}

func identifyFingerprint(ctx context.Context, l *sourceafis.TransparencyLogger, probe *sourceafis.Template, candidates []sourceafis.Candidate) ([]sourceafis.Match, error) {
	matcher, err := sourceafis.NewMatcher(l, probe)
	if err != nil {
		return nil, err
	}
	return matcher.Identify(ctx, candidates)
}
