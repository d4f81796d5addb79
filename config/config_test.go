package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ORS_API_KEY", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("ORS_BASE_URL", "")

	cfg := Load()

	assert.Equal(t, 3000, cfg.Port)
	assert.Empty(t, cfg.ORSAPIKey)
	assert.Equal(t, defaultAllowedOrigins, cfg.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("ORS_API_KEY", "key-123")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , https://b.example ,")

	cfg := Load()

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "key-123", cfg.ORSAPIKey)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoad_BadPortFallsBack(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	cfg := Load()

	assert.Equal(t, 3000, cfg.Port)
}
