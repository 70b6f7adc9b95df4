package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"doc-intelligence/internal/domain"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(analysis *AnalysisHandler, profiles *ProfilesHandler, logger domain.Logger, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()
	router.Use(Recoverer(logger), RequestLogger(logger))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "doc-intelligence"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/analyze", analysis.Analyze).Methods(http.MethodPost)
	api.HandleFunc("/analyze/storage", analysis.AnalyzeStored).Methods(http.MethodPost)
	api.HandleFunc("/profiles", profiles.List).Methods(http.MethodGet)
	api.HandleFunc("/profiles/context", profiles.Context).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
