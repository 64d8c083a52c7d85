package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/Zachkp/zach-dev-waves/internal/live"
)

// Config is read from the environment; a .env file is loaded first.
type Config struct {
	Port             string        `env:"PORT" envDefault:"8080"`
	DatabasePath     string        `env:"DATABASE_PATH" envDefault:"portfolio.db"`
	AdminUsername    string        `env:"ADMIN_USERNAME"`
	AdminPassword    string        `env:"ADMIN_PASSWORD"`
	CookieSecure     bool          `env:"COOKIE_SECURE"`
	TrailTuningFile  string        `env:"TRAIL_TUNING_FILE"`
	TrailFrameRate   int           `env:"TRAIL_FRAME_RATE" envDefault:"60"`
	VisitorRetention time.Duration `env:"VISITOR_RETENTION" envDefault:"8760h"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TrailFrameRate <= 0 || cfg.TrailFrameRate > live.MaxFrameRate {
		return cfg, fmt.Errorf("TRAIL_FRAME_RATE must be between 1 and %d, got %d", live.MaxFrameRate, cfg.TrailFrameRate)
	}
	return cfg, nil
}
