package rest

import "net/http"

// routes wires every endpoint. Method+path patterns do the dispatch; the
// auth middleware guards everything except registration and token issuance.
func (s *RestServer) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/refresh", s.handleRefresh)

	mux.HandleFunc("GET /api/trackers", s.withAuth(s.handleListTrackers))
	mux.HandleFunc("POST /api/trackers", s.withAuth(s.handleCreateTracker))
	mux.HandleFunc("GET /api/trackers/{id}", s.withAuth(s.handleGetTracker))
	mux.HandleFunc("DELETE /api/trackers/{id}", s.withAuth(s.handleDeleteTracker))

	mux.HandleFunc("GET /api/trackers/{id}/entries", s.withAuth(s.handleListEntries))
	mux.HandleFunc("POST /api/trackers/{id}/entries", s.withAuth(s.handleAddEntry))
	mux.HandleFunc("GET /api/trackers/{id}/stats", s.withAuth(s.handleTrackerStats))

	mux.HandleFunc("PATCH /api/entries/{id}", s.withAuth(s.handleUpdateEntry))
	mux.HandleFunc("DELETE /api/entries/{id}", s.withAuth(s.handleDeleteEntry))

	return s.withLogging(mux)
}
