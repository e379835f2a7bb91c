package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(DefaultPort), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 5, cfg.ShutdownTimeoutInSeconds)
	assert.Equal(t, DatabaseDriverSQLite, cfg.Database.Driver)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Empty(t, cfg.Database.DSN)
	assert.Equal(t, DefaultUploadsDir, cfg.Uploads.Dir)
	assert.Equal(t, int64(32), cfg.Uploads.MaxMemoryMB)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Empty(t, cfg.CORS.AllowedOrigins)
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("SHUTDOWN_TIMEOUT_IN_SECONDS", "10")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("DATABASE_DSN", "postgres://shelf@localhost/shelf")
	t.Setenv("UPLOADS_DIR", "/var/lib/ebookshelf/uploads")
	t.Setenv("UPLOAD_MAX_MEMORY_MB", "8")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")

	cfg := NewConfig()

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	assert.Equal(t, 10, cfg.ShutdownTimeoutInSeconds)
	assert.Equal(t, DatabaseDriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://shelf@localhost/shelf", cfg.Database.DSN)
	assert.Equal(t, "/var/lib/ebookshelf/uploads", cfg.Uploads.Dir)
	assert.Equal(t, int64(8), cfg.Uploads.MaxMemoryMB)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("UPLOADS_DIR=/from/dotenv\nLOG_LEVEL=warn\n"), 0600))

	t.Setenv("LOG_LEVEL", "error")
	// Registers cleanup so the variable loaded below does not leak
	t.Setenv("UPLOADS_DIR", "")
	require.NoError(t, os.Unsetenv("UPLOADS_DIR"))

	LoadDotEnv(filepath.Join(dir, "missing.env"), path)

	cfg := NewConfig()
	assert.Equal(t, "/from/dotenv", cfg.Uploads.Dir)
	assert.Equal(t, "error", cfg.Logging.Level, "existing environment wins over .env")
}
