package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const configPathEnv = "CONFIG_FILE"

type HTTPConfig struct {
	Port string `yaml:"port" env:"KPI_HTTP_PORT"`
}

type RedisConfig struct {
	Enabled    bool   `yaml:"enabled" env:"KPI_REDIS_ENABLED"`
	Addr       string `yaml:"addr" env:"KPI_REDIS_ADDR"`
	Password   string `yaml:"password" env:"KPI_REDIS_PASSWORD"`
	DB         int    `yaml:"db" env:"KPI_REDIS_DB"`
	TTLSeconds int    `yaml:"ttlSeconds" env:"KPI_REDIS_TTL"`
}

type RateLimitConfig struct {
	Capacity      int `yaml:"capacity" env:"KPI_RATE_LIMIT_CAPACITY"`
	RefillSeconds int `yaml:"refillSeconds" env:"KPI_RATE_LIMIT_REFILL"`
}

type HistoryConfig struct {
	Capacity int `yaml:"capacity" env:"KPI_HISTORY_CAPACITY"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

// Config defines the KPI service configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Redis     RedisConfig     `yaml:"redis"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	History   HistoryConfig   `yaml:"history"`
	Log       LogConfig       `yaml:"log"`
}

func defaults() *Config {
	return &Config{
		HTTP:      HTTPConfig{Port: "8080"},
		Redis:     RedisConfig{Addr: "localhost:6379", TTLSeconds: 3600},
		RateLimit: RateLimitConfig{Capacity: 60, RefillSeconds: 60},
		History:   HistoryConfig{Capacity: 100},
		Log:       LogConfig{Level: "info"},
	}
}

// Load reads the optional YAML file named by CONFIG_FILE over the defaults,
// then applies environment overrides.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv(configPathEnv); path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromFile(path string, target *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read file: %w", err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("config: decode yaml: %w", err)
	}

	return nil
}

func (c *Config) validate() error {
	if c.Redis.Enabled && strings.TrimSpace(c.Redis.Addr) == "" {
		return errors.New("config: redis addr required when redis is enabled")
	}
	if c.RateLimit.Capacity <= 0 {
		return errors.New("config: rate limit capacity must be positive")
	}
	return nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// CacheTTL returns the Redis entry TTL. Zero means no expiry.
func (c *Config) CacheTTL() time.Duration {
	if c.Redis.TTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Redis.TTLSeconds) * time.Second
}

func (c *Config) RateLimitRefill() time.Duration {
	if c.RateLimit.RefillSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.RateLimit.RefillSeconds) * time.Second
}
