package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// EnvDevelopment enables verbose error bodies.
	EnvDevelopment = "development"
	// EnvTest selects the test database.
	EnvTest = "test"
	// EnvProduction hides internal error details.
	EnvProduction = "production"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort       string
	Env              string
	DBDriver         string
	DatabaseDSN      string
	TestDatabaseDSN  string
	RedisAddr        string
	RedisDB          int
	RedisPass        string
	JWTSecret        string
	JWTExpiry        time.Duration
	ClientOrigin     string
	LogLevel         string
	LoginMaxAttempts int
	LoginWindow      time.Duration
	SwaggerHost      string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:       getEnv("PORT", "8080"),
		Env:              getEnv("APP_ENV", EnvDevelopment),
		DBDriver:         getEnv("DB_DRIVER", "mysql"),
		DatabaseDSN:      getEnv("DATABASE_DSN", "user:password@tcp(localhost:3306)/bloggy?charset=utf8mb4&parseTime=True&loc=UTC"),
		TestDatabaseDSN:  getEnv("TEST_DATABASE_DSN", "file:bloggy_test?mode=memory&cache=shared"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTExpiry:        getEnvDuration("JWT_EXPIRY", 7*24*time.Hour),
		ClientOrigin:     getEnv("CLIENT_ORIGIN", "http://localhost:3000"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LoginMaxAttempts: getEnvInt("LOGIN_MAX_ATTEMPTS", 10),
		LoginWindow:      getEnvDuration("LOGIN_WINDOW", 15*time.Minute),
		SwaggerHost:      os.Getenv("SWAGGER_HOST"),
	}
}

// Validate reports configuration that the server cannot start with.
// A development process without JWT_SECRET gets a throwaway secret.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		if c.Env != EnvDevelopment {
			return fmt.Errorf("JWT_SECRET is required")
		}
		c.JWTSecret = "development-secret"
	}
	if c.JWTExpiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive")
	}
	switch c.DBDriver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

// DSN returns the database connection string for the current environment.
func (c *Config) DSN() string {
	if c.Env == EnvTest {
		return c.TestDatabaseDSN
	}
	return c.DatabaseDSN
}

// IsProduction reports whether internal error details must be hidden.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// ParseDuration accepts Go durations ("15m", "168h") and whole days ("7d").
func ParseDuration(s string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}
