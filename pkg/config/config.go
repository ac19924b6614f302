package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Notion    NotionConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SUBTRACK_APP_ENV" required:"true"`
	Port         string `envconfig:"SUBTRACK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SUBTRACK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SUBTRACK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// NotionConfig carries the credentials for the Notion workspace that stores
// the subscription database. The token and database id are resolved once at
// startup and injected into the client.
type NotionConfig struct {
	Token      string        `envconfig:"SUBTRACK_NOTION_TOKEN"`
	DatabaseID string        `envconfig:"SUBTRACK_NOTION_DATABASE_ID" required:"true"`
	BaseURL    string        `envconfig:"SUBTRACK_NOTION_BASE_URL" default:"https://api.notion.com"`
	Version    string        `envconfig:"SUBTRACK_NOTION_VERSION" default:"2022-06-28"`
	Timeout    time.Duration `envconfig:"SUBTRACK_NOTION_TIMEOUT" default:"30s"`
}

// RedisConfig is optional; without a URL the rate limiter is disabled.
type RedisConfig struct {
	URL          string        `envconfig:"SUBTRACK_REDIS_URL"`
	Address      string        `envconfig:"SUBTRACK_REDIS_ADDR"`
	Password     string        `envconfig:"SUBTRACK_REDIS_PASSWORD"`
	DB           int           `envconfig:"SUBTRACK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SUBTRACK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SUBTRACK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SUBTRACK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SUBTRACK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SUBTRACK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type RateLimitConfig struct {
	WriteWindow  time.Duration `envconfig:"SUBTRACK_RATE_LIMIT_WRITE_WINDOW" default:"1m"`
	WriteIPLimit int           `envconfig:"SUBTRACK_RATE_LIMIT_WRITE_IP_LIMIT" default:"30"`
}
