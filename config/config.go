package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings holds all environment-sourced configuration. It is loaded once in
// main and passed explicitly to whatever needs it, so tests can build their
// own instance instead of poking at package-level state.
type Settings struct {
	Environment string // local | development | production

	// Full connection URL (mainly for local dev). Scheme selects the driver:
	// postgres://, mysql:// or sqlite://.
	DatabaseURL string

	// Discrete DB_* components for Kubernetes / RDS. Only used when host,
	// user, password and name are all present.
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBCharset  string

	// Connection pool tuning (ignored for the SQLite fallback).
	DBPoolSize        int
	DBPoolMaxOverflow int
	DBPoolRecycle     int // seconds
	SQLEcho           bool

	// Schema init retry.
	DBInitMaxAttempts    int
	DBInitBackoffSeconds int

	// Allowed CORS origins. Empty list means any origin is allowed.
	CORSOrigins []string

	// Used automatically when running locally without DB env vars.
	SQLiteFallbackPath string

	Port string
}

// Load reads environment variables and returns a fully populated Settings.
// A .env file is honored only for local runs; containers get plain env vars.
func Load() (*Settings, error) {
	env := strings.TrimSpace(os.Getenv("ENVIRONMENT"))
	if env == "" {
		env = "local"
	}
	switch env {
	case "local", "development", "production":
	default:
		return nil, fmt.Errorf("ENVIRONMENT must be local, development or production, got %q", env)
	}
	if env == "local" {
		_ = godotenv.Load()
	}

	origins, err := parseCORSOrigins(os.Getenv("CORS_ORIGINS"))
	if err != nil {
		return nil, err
	}

	s := &Settings{
		Environment:          env,
		DatabaseURL:          strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBHost:               strings.TrimSpace(os.Getenv("DB_HOST")),
		DBPort:               envInt("DB_PORT", 3306),
		DBUser:               strings.TrimSpace(os.Getenv("DB_USER")),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               strings.TrimSpace(os.Getenv("DB_NAME")),
		DBCharset:            envOrDefault("DB_CHARSET", "utf8mb4"),
		DBPoolSize:           envInt("DB_POOL_SIZE", 5),
		DBPoolMaxOverflow:    envInt("DB_POOL_MAX_OVERFLOW", 10),
		DBPoolRecycle:        envInt("DB_POOL_RECYCLE", 1800),
		SQLEcho:              envBool("SQL_ECHO"),
		DBInitMaxAttempts:    envInt("DB_INIT_MAX_ATTEMPTS", 8),
		DBInitBackoffSeconds: envInt("DB_INIT_BACKOFF_SECONDS", 1),
		CORSOrigins:          origins,
		SQLiteFallbackPath:   envOrDefault("SQLITE_FALLBACK_PATH", "student_surveys.db"),
		Port:                 envOrDefault("PORT", "8080"),
	}
	return s, nil
}

// HasDBComponents reports whether the discrete DB_* set is complete. A
// partially specified set is treated as absent, never as a target.
func (s *Settings) HasDBComponents() bool {
	return s.DBHost != "" && s.DBUser != "" && s.DBPassword != "" && s.DBName != ""
}

func (s *Settings) IsLocal() bool {
	return s.Environment == "local"
}

// parseCORSOrigins accepts either a JSON array or a comma-delimited string.
func parseCORSOrigins(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if strings.HasPrefix(raw, "[") {
		var parsed []string
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return nil, fmt.Errorf("CORS_ORIGINS must be a JSON list or comma-delimited string: %w", err)
		}
		origins := make([]string, 0, len(parsed))
		for _, o := range parsed {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		return origins, nil
	}
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			origins = append(origins, part)
		}
	}
	return origins, nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	return strings.EqualFold(raw, "true") || raw == "1"
}
