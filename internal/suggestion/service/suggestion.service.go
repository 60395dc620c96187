package service

import (
	"context"

	"stylesuggest/internal/suggestion/model"
	"stylesuggest/internal/suggestion/repository"
	"stylesuggest/socket"
)

type SuggestionService struct {
	Repo repository.Repository
	Hub  *socket.Hub // optional change feed
	IDs  *IDGenerator
}

func NewSuggestionService(repo repository.Repository, hub *socket.Hub) *SuggestionService {
	return &SuggestionService{Repo: repo, Hub: hub, IDs: NewIDGenerator(nil)}
}

func (s *SuggestionService) List(ctx context.Context) ([]model.Suggestion, error) {
	return s.Repo.List(ctx)
}

func (s *SuggestionService) Create(ctx context.Context, req model.SuggestionRequest) (model.Suggestion, error) {
	created, err := s.Repo.Create(ctx, model.Suggestion{
		ID:          s.IDs.Next(),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return model.Suggestion{}, err
	}
	s.publish(socket.CreatedType, created)
	return created, nil
}

// Update returns repository.ErrNotFound when id is unknown.
func (s *SuggestionService) Update(ctx context.Context, id string, req model.SuggestionRequest) (model.Suggestion, error) {
	updated, err := s.Repo.Update(ctx, model.Suggestion{ID: id, Name: req.Name, Description: req.Description})
	if err != nil {
		return model.Suggestion{}, err
	}
	s.publish(socket.UpdatedType, updated)
	return updated, nil
}

func (s *SuggestionService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(socket.DeletedType, model.Suggestion{ID: id})
	return nil
}

func (s *SuggestionService) publish(eventType string, sug model.Suggestion) {
	if s.Hub == nil {
		return
	}
	s.Hub.Publish(socket.Event{Type: eventType, Suggestion: &sug})
}
