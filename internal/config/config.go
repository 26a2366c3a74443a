package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// StoreConfig identifies the content project the service mutates. It is
// passed explicitly into the store wiring instead of living in a global
// client. ProjectID selects the database, Dataset the collection, CacheMode
// ("cached" | "fresh") whether read handlers may serve from the page cache.
// AccessToken and APIVersion are recognized for deployments whose store
// needs them; with MongoDB the credentials ride in the connection URI, so
// these two are surfaced on /ready (token masked) rather than used to
// authenticate.
type StoreConfig struct {
	ProjectID   string
	Dataset     string
	AccessToken string
	APIVersion  string
	CacheMode   string
}

type MongoDBConfig struct {
	URI     string
	Timeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// page cache entry lifetime
	PageTTL time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("STORE_PROJECT_ID", "blog")
	viper.SetDefault("STORE_DATASET", "production")
	viper.SetDefault("STORE_API_VERSION", "2025-10-31")
	viper.SetDefault("STORE_CACHE_MODE", "cached")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("PAGE_CACHE_TTL", 300)
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Store: StoreConfig{
			ProjectID:   viper.GetString("STORE_PROJECT_ID"),
			Dataset:     viper.GetString("STORE_DATASET"),
			AccessToken: os.Getenv("STORE_API_TOKEN"),
			APIVersion:  viper.GetString("STORE_API_VERSION"),
			CacheMode:   viper.GetString("STORE_CACHE_MODE"),
		},
		MongoDB: MongoDBConfig{
			URI:     viper.GetString("MONGODB_URI"),
			Timeout: time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
			PageTTL:  time.Duration(viper.GetInt("PAGE_CACHE_TTL")) * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	// Basic validation
	if cfg.MongoDB.URI == "" {
		log.Println("WARNING: MONGODB_URI is not set; falling back to the in-memory store")
	}

	return cfg, nil
}
