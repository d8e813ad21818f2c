package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates every tunable part of the application.
type Config struct {
	App AppConfig
	DB  DBConfig
	Log LogConfig
}

// AppConfig contains settings related to the HTTP server.
type AppConfig struct {
	Port         string
	SeedDemoData bool
}

// DBConfig represents PostgreSQL connection settings.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds the postgres connection string from the individual fields.
func (db DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
		db.SSLMode,
	)
}

// LogConfig controls logger behavior.
type LogConfig struct {
	Level string
}

// Load reads environment variables and validates the final configuration.
func Load() (Config, error) {
	cfg := Config{
		App: AppConfig{
			Port:         getEnv("PORT", "8080"),
			SeedDemoData: getEnv("SEED_DEMO_DATA", "false") == "true",
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "subscription_tracker"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Log: LogConfig{
			Level: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (cfg Config) validate() error {
	if _, err := strconv.Atoi(cfg.App.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", cfg.App.Port)
	}
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		return fmt.Errorf("DB_PORT must be numeric, got %q", cfg.DB.Port)
	}
	return nil
}

func getEnv(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}
