package repository

import (
	"context"
	"errors"

	"stylesuggest/internal/suggestion/model"
)

var ErrNotFound = errors.New("suggestion not found")

// Repository is the storage contract behind the suggestion service.
// List returns records in insertion order; Update keeps a record's position;
// Delete of a missing id is not an error.
type Repository interface {
	List(ctx context.Context) ([]model.Suggestion, error)
	Create(ctx context.Context, s model.Suggestion) (model.Suggestion, error)
	Update(ctx context.Context, s model.Suggestion) (model.Suggestion, error)
	Delete(ctx context.Context, id string) error
}
