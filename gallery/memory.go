package gallery

import (
	"context"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/jtejido/sourceafis"
)

// MemoryStore keeps templates in an ordered map.
type MemoryStore struct {
	mu        sync.RWMutex
	templates *treemap.Map
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{templates: treemap.NewWithStringComparator()}
}

func (s *MemoryStore) Put(_ context.Context, id string, template *sourceafis.Template) error {
	if err := checkPut(id, template); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates.Put(id, template)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*sourceafis.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.templates.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return v.(*sourceafis.Template), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.templates.Get(id); !ok {
		return ErrNotFound
	}
	s.templates.Remove(id)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]sourceafis.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidates := make([]sourceafis.Candidate, 0, s.templates.Size())
	it := s.templates.Iterator()
	for it.Next() {
		candidates = append(candidates, sourceafis.Candidate{
			ID:       it.Key().(string),
			Template: it.Value().(*sourceafis.Template),
		})
	}
	return candidates, nil
}

func (s *MemoryStore) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.templates.Size(), nil
}
