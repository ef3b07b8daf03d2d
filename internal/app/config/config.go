package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the server configuration.
type Config struct {
	LogLevel     LogLeveler   `mapstructure:"LOG_LEVEL"`
	HTTP         HTTP         `mapstructure:",squash"`
	Redis        Redis        `mapstructure:",squash"`
	Distribution Distribution `mapstructure:",squash"`
	Engine       Engine       `mapstructure:",squash"`
}

type HTTP struct {
	Port    int           `mapstructure:"HTTP_PORT"`
	Timeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
}

type Redis struct {
	Addr     string        `mapstructure:"REDIS_ADDR"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	Timeout  time.Duration `mapstructure:"REDIS_TIMEOUT"`
}

// Distribution holds the NDC distribution gateway configuration.
type Distribution struct {
	APIBaseURL   string        `mapstructure:"DISTRIBUTION_API_BASE_URL"`
	TokenURL     string        `mapstructure:"DISTRIBUTION_TOKEN_URL"`
	ClientID     string        `mapstructure:"DISTRIBUTION_CLIENT_ID"`
	ClientSecret string        `mapstructure:"DISTRIBUTION_CLIENT_SECRET"`
	Timeout      time.Duration `mapstructure:"DISTRIBUTION_TIMEOUT"`
	MaxRetries   int           `mapstructure:"DISTRIBUTION_MAX_RETRIES"`
	RateLimitRPS int           `mapstructure:"DISTRIBUTION_RATE_LIMIT"`
}

// Engine holds the offer transformation configuration.
type Engine struct {
	Workers         int           `mapstructure:"ENGINE_WORKERS"`
	AirportDataPath string        `mapstructure:"ENGINE_AIRPORT_DATA_PATH"`
	CacheExpiration time.Duration `mapstructure:"OFFER_CACHE_EXPIRATION"`
	LockTimeout     time.Duration `mapstructure:"OFFER_LOCK_TIMEOUT"`
}
