package sourceafis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/jtejido/sourceafis/config"
	"github.com/jtejido/sourceafis/features"
	"github.com/jtejido/sourceafis/primitives"
	"golang.org/x/exp/slices"
)

type (
	Minutia     = features.Minutia
	MinutiaType = features.MinutiaType
)

const (
	Ending      = features.Ending
	Bifurcation = features.Bifurcation
)

var (
	ErrNilTemplate        = errors.New("template is nil")
	ErrInvalidTemplate    = errors.New("invalid template")
	ErrUnsupportedVersion = errors.New("unsupported template version")
)

const templateFormatVersion = "sourceafis-go/1"

// NewMinutia builds a minutia with its direction wrapped into [0, 2π).
func NewMinutia(x, y int, direction float64, t MinutiaType) Minutia {
	return features.NewMinutia(x, y, direction, t)
}

// Template is the matcher's view of one fingerprint. It is read only after
// construction and may be shared between goroutines.
type Template struct {
	Width    int
	Height   int
	Minutiae []features.Minutia
	// Edges holds the star of every minutia, see features.BuildEdgeTable.
	Edges [][]features.NeighborEdge
	// EdgeTableNeighbors is the star size Edges was built with.
	EdgeTableNeighbors int
}

// NewTemplate copies the minutiae into canonical order and builds their
// edge table. The order is a fixed pseudo-random permutation of the
// positions, so consecutive indices are spread over the whole print.
func NewTemplate(width, height int, minutiae []Minutia) (*Template, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative size %dx%d", ErrInvalidTemplate, width, height)
	}
	sorted := make([]features.Minutia, len(minutiae))
	for i, m := range minutiae {
		if !m.Type.Valid() {
			return nil, fmt.Errorf("%w: minutia %d has type %v", ErrInvalidTemplate, i, m.Type)
		}
		sorted[i] = features.NewMinutia(m.Position.X, m.Position.Y, m.Direction, m.Type)
	}
	slices.SortFunc(sorted, compareMinutiae)
	neighbors := config.Current().Matching.EdgeTableNeighbors
	return &Template{
		Width:              width,
		Height:             height,
		Minutiae:           sorted,
		Edges:              features.BuildEdgeTable(sorted, neighbors),
		EdgeTableNeighbors: neighbors,
	}, nil
}

const shufflePrime = 1610612741

func shuffleKey(p primitives.IntPoint) int32 {
	return (int32(p.X)*shufflePrime + int32(p.Y)) * shufflePrime
}

func compareMinutiae(a, b features.Minutia) int {
	if ka, kb := shuffleKey(a.Position), shuffleKey(b.Position); ka != kb {
		return compare(ka, kb)
	}
	if a.Position.X != b.Position.X {
		return compare(a.Position.X, b.Position.X)
	}
	if a.Position.Y != b.Position.Y {
		return compare(a.Position.Y, b.Position.Y)
	}
	if a.Direction != b.Direction {
		return compare(a.Direction, b.Direction)
	}
	return compare(a.Type, b.Type)
}

func compare[T int | int32 | float64 | features.MinutiaType](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

type persistentTemplate struct {
	Version    string    `cbor:"version"`
	Width      int       `cbor:"width"`
	Height     int       `cbor:"height"`
	PositionsX []int     `cbor:"positionsX"`
	PositionsY []int     `cbor:"positionsY"`
	Directions []float64 `cbor:"directions"`
	Types      string    `cbor:"types"`
}

// Serialize encodes the template as canonical CBOR. Only minutiae are
// stored, edge tables are rebuilt on load.
func (t *Template) Serialize() ([]byte, error) {
	if t == nil {
		return nil, ErrNilTemplate
	}
	p := persistentTemplate{
		Version:    templateFormatVersion,
		Width:      t.Width,
		Height:     t.Height,
		PositionsX: make([]int, len(t.Minutiae)),
		PositionsY: make([]int, len(t.Minutiae)),
		Directions: make([]float64, len(t.Minutiae)),
	}
	var types strings.Builder
	for i, m := range t.Minutiae {
		p.PositionsX[i] = m.Position.X
		p.PositionsY[i] = m.Position.Y
		p.Directions[i] = m.Direction
		types.WriteByte(m.Type.Code())
	}
	p.Types = types.String()
	data, err := cborEncoder.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode template: %w", err)
	}
	return data, nil
}

// DeserializeTemplate decodes data written by Template.Serialize. Stars are
// rebuilt with the current edge_table_neighbors setting.
func DeserializeTemplate(data []byte) (*Template, error) {
	var p persistentTemplate
	if err := cbor.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	if p.Version != templateFormatVersion {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, p.Version)
	}
	n := len(p.PositionsX)
	if len(p.PositionsY) != n || len(p.Directions) != n || len(p.Types) != n {
		return nil, fmt.Errorf("%w: mismatched minutia arrays", ErrInvalidTemplate)
	}
	minutiae := make([]Minutia, n)
	for i := range minutiae {
		t, err := features.ParseMinutiaType(p.Types[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
		}
		minutiae[i] = NewMinutia(p.PositionsX[i], p.PositionsY[i], p.Directions[i], t)
	}
	return NewTemplate(p.Width, p.Height, minutiae)
}
