// Package config loads editor settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	WindowWidth   int     `env:"TOKENSTAGE_WINDOW_WIDTH"   envDefault:"1280"`
	WindowHeight  int     `env:"TOKENSTAGE_WINDOW_HEIGHT"  envDefault:"720"`
	TargetFPS     int     `env:"TOKENSTAGE_TARGET_FPS"     envDefault:"120"`
	AssetDir      string  `env:"TOKENSTAGE_ASSET_DIR"      envDefault:"assets"`
	Layout        string  `env:"TOKENSTAGE_LAYOUT"         envDefault:"scene.yaml"`
	MaxTokenSize  int     `env:"TOKENSTAGE_MAX_TOKEN_SIZE" envDefault:"1024"`
	ImportWorkers int     `env:"TOKENSTAGE_IMPORT_WORKERS" envDefault:"4"`
	LogFile       string  `env:"TOKENSTAGE_LOG_FILE"`
	PickDistance  float32 `env:"TOKENSTAGE_PICK_DISTANCE"  envDefault:"1000"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.WindowWidth <= 0 || c.WindowHeight <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.WindowWidth, c.WindowHeight)
	case c.TargetFPS <= 0:
		return fmt.Errorf("%w: target fps %d", ErrInvalid, c.TargetFPS)
	case c.MaxTokenSize <= 0:
		return fmt.Errorf("%w: max token size %d", ErrInvalid, c.MaxTokenSize)
	case c.ImportWorkers <= 0:
		return fmt.Errorf("%w: import workers %d", ErrInvalid, c.ImportWorkers)
	case c.PickDistance <= 0:
		return fmt.Errorf("%w: pick distance %f", ErrInvalid, c.PickDistance)
	}
	return nil
}

// SetupLog sends log output to LogFile as well as stderr when one is set.
// The returned closer must be closed on exit.
func (c Config) SetupLog() (io.Closer, error) {
	if c.LogFile == "" {
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return f, nil
}
