/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Allowed origins come from configuration

STATIC FILE SERVING:
  Serves the frontend from ./web when present; otherwise a minimal HTML
  page listing the API endpoints.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", h.Health)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/suggest", h.Suggest)
		r.Post("/distance", h.Distance)
		r.Post("/calc", h.Calculate)
		r.Get("/receipt/{id}.pdf", h.Receipt)
	})

	// Serve the static frontend when a build is present.
	staticDir := "./web"
	if _, err := os.Stat(staticDir); err == nil {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.Get("/*", fileServer.ServeHTTP)
	} else {
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>EcoTrip API</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>EcoTrip API</h1>
<p>The frontend is not deployed on this instance.</p>
<h2>API Endpoints</h2>
<ul>
<li><code>GET /health</code> - Liveness probe</li>
<li><code>GET /api/suggest?q=...</code> - Place autocomplete</li>
<li><code>POST /api/distance</code> - Routed distance between two places</li>
<li><code>POST /api/calc</code> - Calculate emissions and store a record</li>
<li><code>GET /api/receipt/{id}.pdf</code> - Receipt for a stored record</li>
</ul>
</body>
</html>`))
		})
	}

	return r
}
