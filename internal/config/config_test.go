package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DevelopmentDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction())
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 60*time.Second, cfg.GeminiTimeout)
	assert.Equal(t, int64(10), cfg.MaxUploadSizeMB)
	assert.NotEmpty(t, cfg.AllowedOrigins)
	// Отсутствие ключа не мешает старту: relay отказывает на уровне запроса.
	assert.Empty(t, cfg.GeminiAPIKey)
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://example.com")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_ParsesOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , https://b.example ,")
	t.Setenv("PUBLIC_BASE_URL", "https://cdn.example/")
	t.Setenv("CONTENT_CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "https://cdn.example", cfg.PublicBaseURL)
	assert.Equal(t, 30*time.Second, cfg.ContentCacheTTL)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("GEMINI_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_CacheTTL(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	t.Setenv("CONTENT_CACHE_TTL", "0s")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.ContentCacheTTL)

	t.Setenv("CONTENT_CACHE_TTL", "-1m")
	_, err = Load()
	assert.Error(t, err)
}

func TestGetDatabaseURL_FromParts(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRESQL_HOST", "db")
	t.Setenv("POSTGRESQL_USER", "site")
	t.Setenv("POSTGRESQL_PASSWORD", "p@ss")
	t.Setenv("POSTGRESQL_DBNAME", "portfolio")

	assert.Equal(t, "postgres://site:p%40ss@db:5432/portfolio?sslmode=disable", getDatabaseURL())
}
