// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/tripstore/internal/kv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// LogFile, when set, also writes logs to a rotated file.
	LogFile string

	// LogMaxSizeMB is the size at which LogFile is rotated. Defaults to 10.
	LogMaxSizeMB int

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:8081"] (Expo dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// Location decides calendar days for itinerary grouping and
	// start-of-today. Defaults to time.Local.
	Location *time.Location

	// Store selects and parameterises the backing store driver.
	Store kv.Config

	// StoreKeyPrefix namespaces every key, for backends shared between
	// deployments. Empty means no prefix.
	StoreKeyPrefix string

	// Breaker guards the backing store.
	Breaker kv.BreakerSettings
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first value that cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        os.Getenv("LOG_FILE"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:8081")),
		StoreKeyPrefix: os.Getenv("STORE_KEY_PREFIX"),
		Store: kv.Config{
			Driver:        kv.Driver(getEnv("STORE_DRIVER", string(kv.DriverFile))),
			DataDir:       getEnv("DATA_DIR", "./data"),
			SQLitePath:    getEnv("SQLITE_PATH", "./data/tripstore.db"),
			DatabaseURL:   os.Getenv("DATABASE_URL"),
			RedisAddr:     os.Getenv("REDIS_ADDR"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			MongoURI:      os.Getenv("MONGO_URI"),
			MongoDatabase: getEnv("MONGO_DATABASE", "tripstore"),
			S3: kv.S3Config{
				Bucket:   os.Getenv("S3_BUCKET"),
				Region:   getEnv("S3_REGION", "us-east-1"),
				Endpoint: os.Getenv("S3_ENDPOINT"),
			},
		},
		Breaker: kv.BreakerSettings{Name: "kv"},
	}

	var err error
	if cfg.LogMaxSizeMB, err = getInt("LOG_MAX_SIZE_MB", 10); err != nil {
		return Config{}, err
	}
	maxBody, err := getInt("MAX_BODY_BYTES", 1<<20)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxBodyBytes = int64(maxBody)
	if cfg.Store.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.Store.S3.PathStyle, err = getBool("S3_PATH_STYLE", false); err != nil {
		return Config{}, err
	}
	failures, err := getInt("BREAKER_FAILURES", 3)
	if err != nil {
		return Config{}, err
	}
	if failures < 1 {
		return Config{}, fmt.Errorf("BREAKER_FAILURES must be at least 1, got %d", failures)
	}
	cfg.Breaker.ConsecutiveFailures = uint32(failures)
	if cfg.Breaker.Timeout, err = getDuration("BREAKER_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.Location, err = getLocation("TIMEZONE"); err != nil {
		return Config{}, err
	}

	if !slices.Contains(kv.Drivers, cfg.Store.Driver) {
		return Config{}, fmt.Errorf("STORE_DRIVER %q is not one of %v", cfg.Store.Driver, kv.Drivers)
	}

	var missing []string
	switch cfg.Store.Driver {
	case kv.DriverPostgres:
		if cfg.Store.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case kv.DriverRedis:
		if cfg.Store.RedisAddr == "" {
			missing = append(missing, "REDIS_ADDR")
		}
	case kv.DriverMongo:
		if cfg.Store.MongoURI == "" {
			missing = append(missing, "MONGO_URI")
		}
	case kv.DriverS3:
		if cfg.Store.S3.Bucket == "" {
			missing = append(missing, "S3_BUCKET")
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, v)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %q is not a boolean", key, v)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a duration", key, v)
	}
	return d, nil
}

// getLocation resolves an IANA zone name. Empty or "Local" means time.Local.
func getLocation(key string) (*time.Location, error) {
	v := os.Getenv(key)
	if v == "" || v == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return loc, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
