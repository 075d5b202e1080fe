package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/chirpy/pkg/jwtx"
)

// Refresh token store backends.
const (
	TokenStoreSQL   = "sql"
	TokenStoreRedis = "redis"
)

type Config struct {
	Env       string // Environment (dev, staging, prod); /admin/reset only works in dev (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
	Port      int    // HTTP server port (default: 8080)

	DatabaseURL       string // sqlite file path or postgres:// URL (default: chirpy.db)
	RefreshTokenStore string // sql or redis (default: sql)
	RedisURL          string // Used when RefreshTokenStore is redis

	JWTSecret       string        // Required: HS256 signing secret
	AccessTokenTTL  time.Duration // Access token lifetime (default: 1h)
	RefreshTokenTTL time.Duration // Refresh token lifetime (default: 60 days)
	PepperFile      string        // Optional: argon2 pepper file, created when missing

	PolkaKey       string // Optional: webhook API key; empty rejects every webhook
	FileServerRoot string // Static files served under /app/ (default: ./app)

	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired token cleanup interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Env:                  getEnvOrDefault("PLATFORM", getEnvOrDefault("ENV", "dev")),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		DatabaseURL:          getEnvOrDefault("DB_URL", "chirpy.db"),
		RefreshTokenStore:    strings.ToLower(getEnvOrDefault("REFRESH_TOKEN_STORE", TokenStoreSQL)),
		RedisURL:             getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		AccessTokenTTL:       getEnvDurationOrDefault("JWT_EXPIRES_IN", time.Second, jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL:      getEnvDurationOrDefault("REFRESH_TOKEN_TTL", 24*time.Hour, jwtx.DefaultRefreshTokenTTL),
		PepperFile:           os.Getenv("PEPPER_FILE"),
		PolkaKey:             os.Getenv("POLKA_KEY"),
		FileServerRoot:       getEnvOrDefault("FILESERVER_ROOT", "./app"),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", time.Second, 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Minute, time.Hour),
	}
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var errs []error

	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if c.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRES_IN must be positive"))
	}
	if c.RefreshTokenTTL <= 0 {
		errs = append(errs, errors.New("REFRESH_TOKEN_TTL must be positive"))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DB_URL is required"))
	}
	switch c.RefreshTokenStore {
	case TokenStoreSQL:
	case TokenStoreRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis token store"))
		}
	default:
		errs = append(errs, fmt.Errorf("REFRESH_TOKEN_STORE %q is not sql or redis", c.RefreshTokenStore))
	}

	return errors.Join(errs...)
}

// UsePostgres reports whether DatabaseURL names a postgres server rather
// than a sqlite file.
func (c Config) UsePostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

// getEnvDurationOrDefault accepts a Go duration ("90s", "1h") or a bare
// integer counted in unit.
func getEnvDurationOrDefault(key string, unit, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	if n, err := strconv.Atoi(value); err == nil {
		return time.Duration(n) * unit
	}

	return defaultValue
}
