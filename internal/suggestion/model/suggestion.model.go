package model

type Suggestion struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SuggestionRequest is the body accepted by create and update.
type SuggestionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

// DefaultSeed returns the records a fresh in-memory store starts with.
func DefaultSeed() []Suggestion {
	return []Suggestion{
		{ID: "1", Name: "Vestido Floral", Description: "Um vestido leve e florido."},
		{ID: "2", Name: "Camisa Jeans", Description: "Uma camisa clássica de jeans."},
	}
}
