package main

import (
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jtejido/sourceafis"
)

func parseMinutiaType(s string) (sourceafis.MinutiaType, bool) {
	switch strings.ToLower(s) {
	case "ending", "e":
		return sourceafis.Ending, true
	case "bifurcation", "b":
		return sourceafis.Bifurcation, true
	}
	return 0, false
}

// decodeTemplate turns a request payload into a template. Failures are
// fiber errors with status 400.
func decodeTemplate(name string, p *TemplatePayload) (*sourceafis.Template, error) {
	if p == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, name+" is required")
	}
	if p.Serialized != "" {
		data, err := base64.StdEncoding.DecodeString(p.Serialized)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Failed to decode base64 "+name+": "+err.Error())
		}
		t, err := sourceafis.DeserializeTemplate(data)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name+": "+err.Error())
		}
		return t, nil
	}
	minutiae := make([]sourceafis.Minutia, len(p.Minutiae))
	for i, m := range p.Minutiae {
		t, ok := parseMinutiaType(m.Type)
		if !ok {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name+": unknown minutia type "+m.Type)
		}
		minutiae[i] = sourceafis.NewMinutia(m.X, m.Y, m.Direction, t)
	}
	t, err := sourceafis.NewTemplate(p.Width, p.Height, minutiae)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name+": "+err.Error())
	}
	return t, nil
}

func encodeTemplate(t *sourceafis.Template) (string, error) {
	data, err := t.Serialize()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// confidence describes a score on the false match rate scale, where every
// 10 points make a random match ten times less likely.
func confidence(score, threshold float64) string {
	switch {
	case score >= threshold+10:
		return "very high"
	case score >= threshold:
		return "high"
	case score >= threshold/2:
		return "low"
	default:
		return "none"
	}
}
