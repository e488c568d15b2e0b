// Package gallery stores enrolled templates by ID.
package gallery

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jtejido/sourceafis"
)

var (
	ErrNotFound  = errors.New("template not found")
	ErrInvalidID = errors.New("invalid template id")
)

// Store is a keyed collection of templates. Implementations are safe for
// concurrent use. List returns entries ordered by ID.
type Store interface {
	Put(ctx context.Context, id string, template *sourceafis.Template) error
	Get(ctx context.Context, id string) (*sourceafis.Template, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]sourceafis.Candidate, error)
	Len(ctx context.Context) (int, error)
}

// Enroll stores template under id, or under a fresh UUID when id is empty,
// and returns the ID used.
func Enroll(ctx context.Context, store Store, id string, template *sourceafis.Template) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if err := store.Put(ctx, id, template); err != nil {
		return "", err
	}
	return id, nil
}

func checkPut(id string, template *sourceafis.Template) error {
	if id == "" {
		return ErrInvalidID
	}
	if template == nil {
		return sourceafis.ErrNilTemplate
	}
	return nil
}
