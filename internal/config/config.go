// Package config handles meshtool configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ErrInvalidConfig is wrapped by every error Validate returns.
var ErrInvalidConfig = errors.New("invalid config")

// Generator kinds.
const (
	KindGrid = "grid"
	KindBox  = "box"
)

// Config holds all meshtool settings.
type Config struct {
	Parallel  ParallelConfig  `yaml:"parallel"`
	Generator GeneratorConfig `yaml:"generator"`
	Edits     EditsConfig     `yaml:"edits"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ParallelConfig controls the worker pool used by per-vertex and per-element loops.
type ParallelConfig struct {
	Workers           int  `yaml:"workers"` // 0 means one per CPU
	ForceSingleThread bool `yaml:"force_single_thread"`
}

// GeneratorConfig describes the mesh the tool starts from.
type GeneratorConfig struct {
	Kind      string  `yaml:"kind"`       // "grid" or "box"
	Width     int     `yaml:"width"`      // grid cells along X
	Height    int     `yaml:"height"`     // grid cells along Z
	Size      float32 `yaml:"size"`       // grid cell size or box edge length
	RowGroups bool    `yaml:"row_groups"` // grid polygroup layer "rows"
}

// EditsConfig drives the random edit session.
type EditsConfig struct {
	Count        int   `yaml:"count"`
	Seed         int64 `yaml:"seed"`
	SplitBowties bool  `yaml:"split_bowties"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Parallel: ParallelConfig{
			Workers: 0,
		},
		Generator: GeneratorConfig{
			Kind:   KindGrid,
			Width:  16,
			Height: 16,
			Size:   1,
		},
		Edits: EditsConfig{
			Count:        200,
			Seed:         1,
			SplitBowties: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every out-of-range setting at once.
func (c *Config) Validate() error {
	var err error
	if c.Parallel.Workers < 0 {
		err = multierr.Append(err, fmt.Errorf("parallel.workers %d: %w", c.Parallel.Workers, ErrInvalidConfig))
	}
	switch c.Generator.Kind {
	case KindGrid:
		if c.Generator.Width <= 0 || c.Generator.Height <= 0 {
			err = multierr.Append(err, fmt.Errorf("generator size %dx%d: %w",
				c.Generator.Width, c.Generator.Height, ErrInvalidConfig))
		}
	case KindBox:
	default:
		err = multierr.Append(err, fmt.Errorf("generator.kind %q: %w", c.Generator.Kind, ErrInvalidConfig))
	}
	if c.Generator.Size <= 0 {
		err = multierr.Append(err, fmt.Errorf("generator.size %g: %w", c.Generator.Size, ErrInvalidConfig))
	}
	if c.Edits.Count < 0 {
		err = multierr.Append(err, fmt.Errorf("edits.count %d: %w", c.Edits.Count, ErrInvalidConfig))
	}
	return err
}
