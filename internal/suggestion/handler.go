package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"stylesuggest/internal/suggestion/model"
	"stylesuggest/internal/suggestion/repository"
	"stylesuggest/internal/suggestion/service"
	"stylesuggest/pkg/logger"

	"github.com/gorilla/mux"
)

type SuggestionHandler struct {
	Service *service.SuggestionService
}

func NewSuggestionHandler(service *service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{Service: service}
}

func (h *SuggestionHandler) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.Service.List(r.Context())
	if err != nil {
		logger.Sugar.Errorf("Error fetching suggestions: %v", err)
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Message: "failed to list suggestions"})
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (h *SuggestionHandler) CreateSuggestion(w http.ResponseWriter, r *http.Request) {
	var req model.SuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Message: "invalid request body"})
		return
	}

	created, err := h.Service.Create(r.Context(), req)
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to create suggestion: %v", err)
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Message: "failed to create suggestion"})
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *SuggestionHandler) UpdateSuggestion(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req model.SuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Message: "invalid request body"})
		return
	}

	updated, err := h.Service.Update(r.Context(), id, req)
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Message: repository.ErrNotFound.Error()})
		return
	}
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to update suggestion %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Message: "failed to update suggestion"})
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteSuggestion always answers 204, even for unknown ids.
func (h *SuggestionHandler) DeleteSuggestion(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Service.Delete(r.Context(), id); err != nil {
		logger.Sugar.Errorf("Handler: Failed to delete suggestion %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Message: "failed to delete suggestion"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Sugar.Errorf("Failed to encode response: %v", err)
	}
}
