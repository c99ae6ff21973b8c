// Package config loads the immutable process configuration from environment
// variables. The struct is built once at startup and passed by reference;
// nothing reads ambient environment state after that.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string `env:"PORT,        default=8080"`
	Env        string `env:"ENV,         default=development"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	CORSOrigin string `env:"CORS_ORIGIN, default=*"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	Media MediaConfig
}

// AuthConfig carries the token secrets and lifetimes. Access and refresh
// tokens are signed with distinct secrets.
type AuthConfig struct {
	AccessSecret  string        `env:"ACCESS_TOKEN_SECRET"`
	RefreshSecret string        `env:"REFRESH_TOKEN_SECRET"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_TTL, default=240h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=videotube"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// MediaConfig targets the S3-compatible media host. Endpoint is optional and
// only needed for non-AWS hosts; PublicBaseURL is prepended to object keys to
// form the stored URLs.
type MediaConfig struct {
	Bucket        string `env:"MEDIA_BUCKET"`
	Region        string `env:"MEDIA_REGION, default=us-east-1"`
	Endpoint      string `env:"MEDIA_ENDPOINT"`
	PublicBaseURL string `env:"MEDIA_PUBLIC_BASE_URL"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Auth.AccessSecret == "" || cfg.Auth.RefreshSecret == "" {
		return nil, fmt.Errorf("config: ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required")
	}
	return &cfg, nil
}
