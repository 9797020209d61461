// internal/infrastructure/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Journal drivers
const (
	JournalNone     = "none"
	JournalMongo    = "mongo"
	JournalPostgres = "postgres"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Serve        bool

	// Metrics
	MetricsNamespace string

	// Monitors
	MonitorNames []string
	FeedFile     string

	// Journal
	JournalDriver       string
	JournalWriteTimeout time.Duration

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL
	PostgresURI string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,
		Serve:        getEnvAsBool("SERVE", false),

		MetricsNamespace: getEnv("METRICS_NAMESPACE", "baggage"),

		MonitorNames: getEnvAsList("MONITOR_NAMES", []string{"BaggageClaimMonitor", "SecurityExit"}),
		FeedFile:     getEnv("FEED_FILE", ""),

		JournalDriver:       strings.ToLower(getEnv("JOURNAL_DRIVER", JournalNone)),
		JournalWriteTimeout: time.Duration(getEnvAsInt("JOURNAL_WRITE_TIMEOUT", 5)) * time.Second,

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "baggage"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresURI: getEnv("POSTGRES_DSN", ""),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that the configuration can be used to start the service
func (c *Config) Validate() error {
	if len(c.MonitorNames) == 0 {
		return fmt.Errorf("%w: MONITOR_NAMES must list at least one monitor", ErrInvalidConfig)
	}

	switch c.JournalDriver {
	case JournalNone, JournalMongo:
	case JournalPostgres:
		if c.PostgresURI == "" {
			return fmt.Errorf("%w: POSTGRES_DSN is required for the postgres journal", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown JOURNAL_DRIVER %q", ErrInvalidConfig, c.JournalDriver)
	}

	return nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma separated value, dropping empty items
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			values = append(values, item)
		}
	}
	return values
}
