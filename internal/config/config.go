package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DatabaseDriverSQLite   DatabaseDriver = "sqlite"   // Embedded file database (default)
	DatabaseDriverPostgres DatabaseDriver = "postgres" // External server, DATABASE_DSN required
)

type (
	Config struct {
		HTTP
		Global
		Database
		Uploads
		Logging
		CORS
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver DatabaseDriver
		Path   string // SQLite file
		DSN    string // Postgres connection string
	}
	Uploads struct {
		Dir         string
		MaxMemoryMB int64 // Multipart bytes kept in memory before spilling to disk
	}
	Logging struct {
		Level  string
		Format string // "console" or "json"
	}
	CORS struct {
		AllowedOrigins []string // Empty disables CORS
	}
)

// LoadDotEnv loads variables from the given files into the environment.
// Missing files are skipped and variables already set win.
func LoadDotEnv(paths ...string) {
	for _, path := range paths {
		_ = godotenv.Load(path)
	}
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_driver", string(DatabaseDriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("uploads_dir", DefaultUploadsDir)
	v.SetDefault("upload_max_memory_mb", 32)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("cors_allowed_origins", "")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver: DatabaseDriver(strings.ToLower(v.GetString("DATABASE_DRIVER"))),
			Path:   v.GetString("DATABASE_PATH"),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		Uploads: Uploads{
			Dir:         v.GetString("UPLOADS_DIR"),
			MaxMemoryMB: v.GetInt64("UPLOAD_MAX_MEMORY_MB"),
		},
		Logging: Logging{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		CORS: CORS{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}
}

// splitList parses a comma separated list, dropping empty items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
