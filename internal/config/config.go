package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yukikurage/disaster-relief-api/internal/constants"
	"github.com/yukikurage/disaster-relief-api/internal/utils"
)

// ErrMissingSessionSecret is returned when release mode runs without SESSION_SECRET.
var ErrMissingSessionSecret = errors.New("SESSION_SECRET must be set in release mode")

type Config struct {
	DBDriver           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBPath             string
	RedisHost          string
	RedisPort          string
	SessionSecret      string
	SessionTTL         time.Duration
	GinMode            string
	Port               string
	LoginPath          string
	CORSAllowedOrigins []string
	LogLevel           string
	LogFormat          string
	LoginRateLimit     float64
	LoginRateBurst     int
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		DBDriver:           getEnv("DB_DRIVER", "mysql"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "3306"),
		DBUser:             getEnv("DB_USER", "reliefuser"),
		DBPassword:         getEnv("DB_PASSWORD", "reliefpassword"),
		DBName:             getEnv("DB_NAME", "disaster_relief"),
		DBPath:             getEnv("DB_PATH", "disaster_relief.db"),
		RedisHost:          getEnv("REDIS_HOST", ""),
		RedisPort:          getEnv("REDIS_PORT", "6379"),
		SessionSecret:      getEnv("SESSION_SECRET", ""),
		GinMode:            getEnv("GIN_MODE", "debug"),
		Port:               getEnv("PORT", "8080"),
		LoginPath:          getEnv("LOGIN_PATH", "/login"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.SessionTTL, err = time.ParseDuration(getEnv("SESSION_TTL", constants.DefaultSessionTTL.String())); err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if cfg.LoginRateLimit, err = strconv.ParseFloat(getEnv("LOGIN_RATE_LIMIT", "1"), 64); err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_LIMIT: %w", err)
	}
	if cfg.LoginRateBurst, err = strconv.Atoi(getEnv("LOGIN_RATE_BURST", "5")); err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_BURST: %w", err)
	}

	if cfg.SessionSecret == "" {
		if cfg.IsProduction() {
			return nil, ErrMissingSessionSecret
		}
		// Tokens signed with a generated secret do not survive a restart.
		secret, err := utils.GenerateSecret(32)
		if err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		cfg.SessionSecret = secret
	}

	return cfg, nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// RedisAddr returns the flash store address, or "" when the cookie store is used.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
