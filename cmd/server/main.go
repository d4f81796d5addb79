/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the EcoTrip emission calculation server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment configuration, parse command-line flags
  2. Select the record store (in-memory by default, SQLite via -db)
  3. Create the ORS resolver and API handler
  4. Configure the HTTP router
  5. Start the server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides the PORT env var when set)
  -db      SQLite database path for the record store. Empty keeps the
           in-memory store (records lost on restart, MVP default).

ENVIRONMENT:
  ORS_API_KEY, ALLOWED_ORIGINS, PORT, ORS_BASE_URL - see config/config.go.
  A missing ORS_API_KEY does not prevent startup; calculation requests
  fail with an upstream error until it is configured.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the store
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/olimpus/ecotrip/api"
	"github.com/olimpus/ecotrip/config"
	"github.com/olimpus/ecotrip/record"
	memstore "github.com/olimpus/ecotrip/record/store"
	"github.com/olimpus/ecotrip/route"
	"github.com/olimpus/ecotrip/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 0, "HTTP server port (overrides PORT env var)")
	dbPath := flag.String("db", "", "SQLite path for the record store (empty: in-memory)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Port = *port
	}

	if cfg.ORSAPIKey == "" {
		log.Println("WARNING: ORS_API_KEY not set; calculation requests will fail until configured")
	}

	// Select store
	var recordStore record.Store
	if *dbPath != "" {
		sqlStore, err := sqlite.New(*dbPath)
		if err != nil {
			log.Fatalf("Failed to initialize record store: %v", err)
		}
		defer sqlStore.Close()
		recordStore = sqlStore
		log.Printf("Record store: sqlite (%s)", *dbPath)
	} else {
		recordStore = memstore.NewMemory()
		log.Println("Record store: in-memory (records lost on restart)")
	}

	resolver := route.NewClient(cfg.ORSAPIKey, cfg.ORSBaseURL)
	handler := api.NewHandler(recordStore, resolver)
	router := api.NewRouter(handler, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("App: http://localhost:%d", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
