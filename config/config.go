/*
config.go - Environment configuration

PURPOSE:
  Loads process configuration from environment variables once at startup.

VARIABLES:
  ORS_API_KEY      OpenRouteService credential. Required for calculation
                   requests; when absent the process still starts and
                   those requests fail with an upstream error.
  ALLOWED_ORIGINS  CSV of allowed CORS origins. Optional; defaults to the
                   fixed list below (local dev + the published frontend).
  PORT             HTTP listen port. Optional, default 3000.
  ORS_BASE_URL     Override for the ORS host (tests point it at a fake).
*/
package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port           int
	ORSAPIKey      string
	ORSBaseURL     string
	AllowedOrigins []string
}

var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"https://wvehuiah.github.io",
	"https://wvehuiah.github.io/DIO-EcoTrip",
}

func Load() *Config {
	port, err := strconv.Atoi(getEnv("PORT", "3000"))
	if err != nil || port <= 0 {
		port = 3000
	}

	return &Config{
		Port:           port,
		ORSAPIKey:      os.Getenv("ORS_API_KEY"),
		ORSBaseURL:     os.Getenv("ORS_BASE_URL"),
		AllowedOrigins: splitCSV(os.Getenv("ALLOWED_ORIGINS"), defaultAllowedOrigins),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitCSV parses a comma-separated list, trimming blanks. Empty input
// yields the fallback.
func splitCSV(raw string, fallback []string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
