package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Consolidated entity routes
	mux.HandleFunc("/entities", s.handleEntitiesRoute)                    // POST (batch), GET (multi-get), DELETE (multi-delete)
	mux.HandleFunc("/entities/search", s.app.EntityHandler.SearchHandler) // GET - cross-kind search
	mux.HandleFunc("/entities/", s.app.EntityHandler.KindRoutesHandler)   // GET /{kind} and /{kind}/{id}

	// Article routes
	mux.HandleFunc("/articles", s.app.ArticleHandler.CollectionHandler)    // GET (list), POST (create)
	mux.HandleFunc("/articles/search", s.app.ArticleHandler.SearchHandler) // GET - article search
	mux.HandleFunc("/articles/", s.app.ArticleHandler.ItemHandler)         // GET/PUT/DELETE /{id}

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)
	mux.HandleFunc("/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleEntitiesRoute routes /entities requests by method
func (s *Server) handleEntitiesRoute(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.app.EntityHandler.BatchHandler(w, r)
	case http.MethodGet:
		s.app.EntityHandler.GetByIDsHandler(w, r)
	case http.MethodDelete:
		s.app.EntityHandler.DeleteHandler(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
