package config

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string
	LogLevel    string

	// Identity of the authenticated user. Session identity is assumed
	// given; this deployment serves a single user.
	UserID   string
	UserName string

	// DataDir is where the local fallback store keeps its snapshots.
	DataDir string

	// SeedDemo populates starter records on first run so the initial
	// screens are not empty.
	SeedDemo bool

	DBType     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "ivoice"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		UserID:      getenv("IVOICE_USER_ID", "1"),
		UserName:    getenv("IVOICE_USER_NAME", "Owner"),
		DataDir:     getenv("DATA_DIR", "data"),
		SeedDemo:    getenv("SEED_DEMO", "false") == "true",
		DBType:      getenv("DATABASE_TYPE", "postgres"),
		DBHost:      getenv("DATABASE_HOST", "localhost"),
		DBPort:      getenv("DATABASE_PORT", "5432"),
		DBName:      getenv("DATABASE_NAME", "ivoice"),
		DBUser:      getenv("DATABASE_USER", "postgres"),
		DBPassword:  getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:   getenv("DATABASE_SSLMODE", "disable"),
	}
}

var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewLetterheadHolder),
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
