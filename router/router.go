package router

import (
	"net/http"

	handler "stylesuggest/internal/suggestion"
	"stylesuggest/internal/suggestion/repository"
	"stylesuggest/internal/suggestion/service"
	"stylesuggest/middleware"
	"stylesuggest/socket"

	"github.com/gorilla/mux"
)

// Setup wires the suggestion API, the change feed and the health probe.
// jwtSecret may be empty to leave the API open.
func Setup(repo repository.Repository, hub *socket.Hub, jwtSecret string) http.Handler {
	r := mux.NewRouter()
	auth := middleware.AuthMiddleware(jwtSecret)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	// WebSocket change feed
	r.Handle("/ws", auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		socket.ServeWs(hub, w, r)
	}))).Methods(http.MethodGet)

	// REST API
	svc := service.NewSuggestionService(repo, hub)
	h := handler.NewSuggestionHandler(svc)

	api := r.PathPrefix("/suggestions").Subrouter()
	api.Use(auth)
	api.HandleFunc("", h.ListSuggestions).Methods(http.MethodGet)
	api.HandleFunc("", h.CreateSuggestion).Methods(http.MethodPost)
	api.HandleFunc("/{id}", h.UpdateSuggestion).Methods(http.MethodPut)
	api.HandleFunc("/{id}", h.DeleteSuggestion).Methods(http.MethodDelete)

	return middleware.CORSMiddleware(middleware.LoggingMiddleware(r))
}
