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

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds environment-based settings
type Config struct {
	Environment   string
	ServerAddress string
	LogLevel      string

	StoreBackend   string
	DatabaseURL    string
	MigrationsPath string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	MQTTBrokerURL string
	MQTTClientID  string

	UseSpaces       bool
	SpacesEndpoint  string
	SpacesRegion    string
	SpacesBucket    string
	SpacesCDNURL    string
	SpacesAccessKey string
	SpacesSecretKey string
	ExportDir       string

	Timezone    *time.Location
	SaveDelay   time.Duration
	SubmitDelay time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
	// TrustedProxies may set X-Forwarded-For; empty trusts none.
	TrustedProxies []string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present; real env vars win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Environment:     getenv("APP_ENV", "development"),
		ServerAddress:   getenv("SERVER_ADDRESS", ":8080"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		StoreBackend:    getenv("STORE_BACKEND", BackendMemory),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		MigrationsPath:  getenv("MIGRATIONS_PATH", "./migrations"),
		RedisAddress:    os.Getenv("REDIS_ADDRESS"),
		RedisUsername:   os.Getenv("REDIS_USERNAME"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		MQTTBrokerURL:   os.Getenv("MQTT_BROKER_URL"),
		MQTTClientID:    getenv("MQTT_CLIENT_ID", "masjidfinder"),
		UseSpaces:       os.Getenv("USE_SPACES") == "true",
		SpacesEndpoint:  os.Getenv("SPACES_ENDPOINT"),
		SpacesRegion:    os.Getenv("SPACES_REGION"),
		SpacesBucket:    os.Getenv("SPACES_BUCKET"),
		SpacesCDNURL:    os.Getenv("SPACES_CDN_URL"),
		SpacesAccessKey: os.Getenv("SPACES_ACCESS_KEY"),
		SpacesSecretKey: os.Getenv("SPACES_SECRET_KEY"),
		ExportDir:       getenv("EXPORT_DIR", "./exports"),
	}

	var err error
	if cfg.Timezone, err = time.LoadLocation(getenv("TIMEZONE", "Local")); err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}
	if cfg.SaveDelay, err = time.ParseDuration(getenv("SAVE_DELAY", "1s")); err != nil {
		return nil, fmt.Errorf("SAVE_DELAY: %w", err)
	}
	if cfg.SubmitDelay, err = time.ParseDuration(getenv("SUBMIT_DELAY", "1500ms")); err != nil {
		return nil, fmt.Errorf("SUBMIT_DELAY: %w", err)
	}
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getenv("RATE_LIMIT_RPS", "20"), 64); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getenv("RATE_LIMIT_BURST", "40")); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}

	for _, p := range strings.Split(os.Getenv("TRUSTED_PROXIES"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			cfg.TrustedProxies = append(cfg.TrustedProxies, p)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisAddress == "" {
			return fmt.Errorf("REDIS_ADDRESS is required for the %s backend", c.StoreBackend)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s backend", c.StoreBackend)
		}
	default:
		return fmt.Errorf("STORE_BACKEND %q is not one of memory, redis, postgres", c.StoreBackend)
	}

	if c.UseSpaces {
		if c.SpacesEndpoint == "" || c.SpacesBucket == "" || c.SpacesAccessKey == "" || c.SpacesSecretKey == "" {
			return fmt.Errorf("SPACES_ENDPOINT, SPACES_BUCKET, SPACES_ACCESS_KEY and SPACES_SECRET_KEY are required when USE_SPACES=true")
		}
	}
	if c.SaveDelay < 0 || c.SubmitDelay < 0 {
		return fmt.Errorf("save delays must not be negative")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
