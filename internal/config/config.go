package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dharmasatrya/awardsearch/internal/cache"
	"github.com/dharmasatrya/awardsearch/internal/models"
	"github.com/dharmasatrya/awardsearch/internal/ratelimit"
)

const (
	ProviderModeStatic = "static"
	ProviderModeHTTP   = "http"
)

type ProviderConfig struct {
	Name      string          `yaml:"name"`
	BaseURL   string          `yaml:"base_url"`
	APIKeyEnv string          `yaml:"api_key_env"`
	Carriers  []string        `yaml:"carriers"`
	RateLimit ratelimit.Limit `yaml:"rate_limit"`
}

type Config struct {
	Port           string           `yaml:"port"`
	CacheEnabled   bool             `yaml:"cache_enabled"`
	RedisHost      string           `yaml:"redis_host"`
	RedisPort      string           `yaml:"redis_port"`
	RedisPassword  string           `yaml:"redis_password"`
	RedisTTL       time.Duration    `yaml:"redis_ttl"`
	PerMileValue   float64          `yaml:"per_mile_value"`
	FetchTimeout   time.Duration    `yaml:"fetch_timeout"`
	MaxRetries     int              `yaml:"max_retries"`
	RetryDelays    []time.Duration  `yaml:"retry_delays"`
	RatesFile      string           `yaml:"rates_file"`
	ProviderMode   string           `yaml:"provider_mode"`
	DefaultLimit   ratelimit.Limit  `yaml:"default_rate_limit"`
	Providers      []ProviderConfig `yaml:"providers"`
	StaticFailRate float64          `yaml:"static_failure_rate"`
}

func Default() Config {
	redis := cache.DefaultRedisConfig()
	return Config{
		Port:          "8080",
		CacheEnabled:  false,
		RedisHost:     redis.Host,
		RedisPort:     redis.Port,
		RedisPassword: redis.Password,
		RedisTTL:      redis.TTL,
		PerMileValue:  0.015,
		FetchTimeout:  3 * time.Second,
		MaxRetries:    2,
		RetryDelays: []time.Duration{
			100 * time.Millisecond,
			300 * time.Millisecond,
		},
		ProviderMode: ProviderModeStatic,
		DefaultLimit: ratelimit.DefaultLimit(),
	}
}

// Load layers defaults, the optional YAML file at path, a .env file in the
// working directory and finally process environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.CacheEnabled = getEnvBool("CACHE_ENABLED", cfg.CacheEnabled)
	cfg.RedisHost = getEnv("REDIS_HOST", cfg.RedisHost)
	cfg.RedisPort = getEnv("REDIS_PORT", cfg.RedisPort)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisTTL = getEnvDuration("REDIS_TTL", cfg.RedisTTL)
	cfg.PerMileValue = getEnvFloat("PER_MILE_VALUE", cfg.PerMileValue)
	cfg.FetchTimeout = getEnvDuration("FETCH_TIMEOUT", cfg.FetchTimeout)
	cfg.RatesFile = getEnv("RATES_FILE", cfg.RatesFile)
	cfg.ProviderMode = getEnv("PROVIDER_MODE", cfg.ProviderMode)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := models.ValidatePerMileValue(c.PerMileValue); err != nil {
		return fmt.Errorf("per_mile_value: %w", err)
	}
	switch c.ProviderMode {
	case ProviderModeStatic:
	case ProviderModeHTTP:
		if len(c.Providers) == 0 {
			return fmt.Errorf("provider_mode %q needs at least one provider", c.ProviderMode)
		}
	default:
		return fmt.Errorf("unknown provider_mode %q", c.ProviderMode)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}
