package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends selectable with STORE.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
	Env             string        // application environment (e.g. "dev", "prod")
	Port            string        // HTTP port to listen on
	Store           string        // "postgres" or "memory"
	DatabaseURL     string        // PostgreSQL DSN, required for the postgres store
	SeedOnStart     bool          // load the demo venues, artists and shows at start-up
	LogLevel        string        // zap level name (debug, info, warn, error)
	RabbitMQURL     string        // broker URL; empty disables show events
	ShutdownTimeout time.Duration // grace period for in-flight requests
}

// Load reads an optional .env file and then the environment.  Variables
// already set in the environment win over the file.  Missing or invalid
// required values are reported together in one error.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var problems []string
	cfg := Config{
		Env:             envStr("APP_ENV", "dev"),
		Port:            envStr("APP_PORT", "8080"),
		Store:           strings.ToLower(envStr("STORE", StorePostgres)),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SeedOnStart:     envBool("SEED_ON_START", false),
		LogLevel:        envStr("LOG_LEVEL", "info"),
		RabbitMQURL:     firstNonEmpty(os.Getenv("RABBITMQ_URL"), os.Getenv("AMQP_URL")),
		ShutdownTimeout: envDur("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid APP_PORT: %q", cfg.Port))
	}
	switch cfg.Store {
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			problems = append(problems, "missing required env var: DATABASE_URL")
		}
	case StoreMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid STORE: %q", cfg.Store))
	}
	if len(problems) > 0 {
		return Config{}, errors.New(strings.Join(problems, "; "))
	}
	return cfg, nil
}

// Production reports whether APP_ENV names a production deployment.
func (c Config) Production() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	}
	return false
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
