// Package api exposes the document store over a REST API. Documents travel
// either as their binary wire form (application/x-yad) or as the typed JSON
// view; all responses carry the standard envelope.
package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Routes builds the router with all endpoints and middleware configured.
func Routes(server *Server, config ServerConfig, metrics *Metrics) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", metrics.Handler())

	// API key authentication middleware for protected routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(requireAPIKey(config.APIKey)))

		// Health check
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// Document operations
		r.Put("/documents/{name}", metrics.InstrumentHandler("PUT", "/api/v1/documents/{name}", server.handlePut))
		r.Get("/documents/{name}", metrics.InstrumentHandler("GET", "/api/v1/documents/{name}", server.handleGet))
		r.Delete("/documents/{name}", metrics.InstrumentHandler("DELETE", "/api/v1/documents/{name}", server.handleDelete))
		r.Get("/documents", metrics.InstrumentHandler("GET", "/api/v1/documents", server.handleList))
		r.Get("/documents/{name}/history", metrics.InstrumentHandler("GET", "/api/v1/documents/{name}/history", server.handleHistory))

		// Diagnostics
		r.Get("/stats", metrics.InstrumentHandler("GET", "/api/v1/stats", server.handleStats))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured
func StartServer(store DocumentStore, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(store, config, metrics)
	r := Routes(server, config, metrics)

	addr := fmt.Sprintf(":%d", config.Port)
	log.Printf("Starting yad API server on %s", addr)
	return http.ListenAndServe(addr, r)
}
