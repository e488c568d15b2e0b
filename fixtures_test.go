package sourceafis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func spreadMinutiae() []Minutia {
	return []Minutia{
		NewMinutia(20, 30, 0.3, Ending),
		NewMinutia(130, 20, 1.7, Bifurcation),
		NewMinutia(250, 40, 2.9, Ending),
		NewMinutia(60, 140, 4.4, Ending),
		NewMinutia(190, 130, 5.1, Bifurcation),
		NewMinutia(30, 260, 0.9, Ending),
		NewMinutia(150, 250, 3.6, Bifurcation),
		NewMinutia(270, 200, 6.0, Ending),
	}
}

// transform rotates every minutia by a quarter turn around the origin and
// then moves it by (dx, dy). Integer positions stay exact.
func transform(minutiae []Minutia, dx, dy int) []Minutia {
	out := make([]Minutia, len(minutiae))
	for i, m := range minutiae {
		out[i] = NewMinutia(-m.Position.Y+dx, m.Position.X+dy, m.Direction+math.Pi/2, m.Type)
	}
	return out
}

// reversed keeps positions but points every minutia the other way, so no
// edge of it is compatible with the original.
func reversed(minutiae []Minutia) []Minutia {
	out := make([]Minutia, len(minutiae))
	for i, m := range minutiae {
		out[i] = NewMinutia(m.Position.X, m.Position.Y, m.Direction+math.Pi, m.Type)
	}
	return out
}

func mustTemplate(t testing.TB, minutiae []Minutia) *Template {
	t.Helper()
	template, err := NewTemplate(400, 400, minutiae)
	require.NoError(t, err)
	return template
}
