package repository

import (
	"context"
	"sync"

	"stylesuggest/internal/suggestion/model"
)

type MemoryRepository struct {
	mu          sync.RWMutex
	suggestions []model.Suggestion
}

func NewMemoryRepository(seed ...model.Suggestion) *MemoryRepository {
	items := make([]model.Suggestion, len(seed))
	copy(items, seed)
	return &MemoryRepository{suggestions: items}
}

func (r *MemoryRepository) List(ctx context.Context) ([]model.Suggestion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Suggestion, len(r.suggestions))
	copy(out, r.suggestions)
	return out, nil
}

func (r *MemoryRepository) Create(ctx context.Context, s model.Suggestion) (model.Suggestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suggestions = append(r.suggestions, s)
	return s, nil
}

func (r *MemoryRepository) Update(ctx context.Context, s model.Suggestion) (model.Suggestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.suggestions {
		if r.suggestions[i].ID == s.ID {
			r.suggestions[i] = s
			return s, nil
		}
	}
	return model.Suggestion{}, ErrNotFound
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.suggestions[:0]
	for _, s := range r.suggestions {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	r.suggestions = kept
	return nil
}
