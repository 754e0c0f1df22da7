package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

const DefaultFeedURL = "https://srijandubey.github.io/campus-api-mock/SRM-C1-25.json"

type Config struct {
	App    AppConfig
	Feed   FeedConfig
	Redis  RedisConfig
	Rating RatingConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type FeedConfig struct {
	URL      string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// RatingConfig selects how ratings are filled in, since the feed carries none.
type RatingConfig struct {
	Mode string // "seeded" or "unknown"
	Seed uint64
}

func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

// LoadConfigFrom reads the given env file, falling back to process environment
// and defaults when the file does not exist.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	feedTimeout, err := time.ParseDuration(v.GetString("FEED_TIMEOUT"))
	if err != nil {
		feedTimeout = 10 * time.Second
	}

	cacheTTL, err := time.ParseDuration(v.GetString("FEED_CACHE_TTL"))
	if err != nil {
		cacheTTL = 5 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Feed: FeedConfig{
			URL:      v.GetString("FEED_URL"),
			Timeout:  feedTimeout,
			CacheTTL: cacheTTL,
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Rating: RatingConfig{
			Mode: v.GetString("RATING_MODE"),
			Seed: v.GetUint64("RATING_SEED"),
		},
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("FEED_URL", DefaultFeedURL)
	v.SetDefault("FEED_TIMEOUT", "10s")
	v.SetDefault("FEED_CACHE_TTL", "5m")
	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RATING_MODE", "seeded")
	v.SetDefault("RATING_SEED", 42)
}
