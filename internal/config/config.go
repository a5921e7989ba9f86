// Package config loads settings from the environment and an optional .env
// file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string   `env:"THUMB_ADDR"            envDefault:":8080"`
	OutputDir      string   `env:"THUMB_OUTPUT_DIR"      envDefault:"thumbnails"`
	JPEGQuality    int      `env:"THUMB_JPEG_QUALITY"    envDefault:"95"`
	DefaultWidth   int      `env:"THUMB_DEFAULT_WIDTH"   envDefault:"320"`
	DefaultHeight  int      `env:"THUMB_DEFAULT_HEIGHT"  envDefault:"180"`
	Preview        bool     `env:"THUMB_PREVIEW"         envDefault:"false"`
	AllowedOrigins []string `env:"THUMB_ALLOWED_ORIGINS" envDefault:"http://localhost:*,http://127.0.0.1:*" envSeparator:","`
	LogLevel       string   `env:"LOG_LEVEL"             envDefault:"info"`
}

// Load reads the given .env files (".env" when none are named) without
// overriding variables that are already set, then parses the environment.
// Missing .env files are ignored.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("THUMB_JPEG_QUALITY must be within [1,100], got %d", c.JPEGQuality)
	}
	if c.DefaultWidth <= 0 || c.DefaultHeight <= 0 {
		return fmt.Errorf("default thumbnail size must be positive, got %dx%d", c.DefaultWidth, c.DefaultHeight)
	}
	if c.OutputDir == "" {
		return errors.New("THUMB_OUTPUT_DIR must not be empty")
	}
	return nil
}
