package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type Config struct {
	Port            string
	LogLevel        string
	StoreBackend    string
	SeedSuggestions bool
	JWTSecret       string
	DB              DBConfig

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool
}

type DBConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
	SSLMode  string
}

// DSN builds the lib/pq connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// Load reads a .env file when present and then the process environment.
func Load() (Config, error) {
	envFileLoaded := godotenv.Load() == nil

	cfg := Config{
		Port:            getEnv("PORT", "3000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		StoreBackend:    strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		SeedSuggestions: true,
		EnvFileLoaded:   envFileLoaded,
		JWTSecret:       strings.TrimSpace(os.Getenv("JWT_SECRET")),
		DB: DBConfig{
			User:     getEnv("DB_USER", "postgres"),
			Password: strings.TrimSpace(os.Getenv("DB_PASSWORD")),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "suggestions"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}

	if raw := strings.TrimSpace(os.Getenv("SEED_SUGGESTIONS")); raw != "" {
		seed, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid SEED_SUGGESTIONS %q: %w", raw, err)
		}
		cfg.SeedSuggestions = seed
	}

	switch cfg.StoreBackend {
	case BackendMemory, BackendPostgres:
	default:
		return Config{}, fmt.Errorf("config: unsupported STORE_BACKEND %q", cfg.StoreBackend)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
