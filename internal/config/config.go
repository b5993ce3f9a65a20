package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabasePath    string
	DatabaseURL     string
	SessionTTL      time.Duration
	SessionSweep    time.Duration // 0 disables the background sweep
	UploadMaxSize   int64
	UploadPath      string
	StaticFilesPath string
	TemplatesPath   string
	MigrationsPath  string
	CSRFSecret      string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./goboard.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		SessionTTL:      getDuration("SESSION_TTL", 5*time.Minute),
		SessionSweep:    getDuration("SESSION_SWEEP_INTERVAL", 0),
		UploadMaxSize:   getInt64("UPLOAD_MAX_SIZE", 16*1000*1000),
		UploadPath:      getEnv("UPLOAD_PATH", "./static/uploads"),
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),
		TemplatesPath:   getEnv("TEMPLATES_PATH", "./templates"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		CSRFSecret:      getEnv("CSRF_SECRET", "dev-only-csrf-secret"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration reads a duration environment variable (e.g. "5m", "1h")
func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getInt64 reads an integer environment variable
func getInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
