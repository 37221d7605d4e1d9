package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr         string        `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath           string        `env:"DB_PATH" envDefault:"data/cities.db"`
	LogLevel         slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir           string        `env:"SPA_DIR" envDefault:"../web/dist"`
	CityCount        int           `env:"CITY_COUNT" envDefault:"3"`
	RandomSeed       uint64        `env:"RANDOM_SEED" envDefault:"0"`
	SessionTTL       time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	SweepInterval    time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`
	GeohashPrecision int           `env:"GEOHASH_PRECISION" envDefault:"6"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	if c.CityCount < 2 {
		return fmt.Errorf("CITY_COUNT must be at least 2, got %d", c.CityCount)
	}
	if c.SessionTTL <= 0 || c.SweepInterval <= 0 {
		return errors.New("SESSION_TTL and SWEEP_INTERVAL must be positive")
	}
	if c.GeohashPrecision < 1 || c.GeohashPrecision > 12 {
		return fmt.Errorf("GEOHASH_PRECISION must be within 1-12, got %d", c.GeohashPrecision)
	}
	return nil
}
