// Package config handles hueprobe configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all hueprobe settings.
type Config struct {
	Palette PaletteConfig `yaml:"palette"`
	Image   ImageConfig   `yaml:"image"`
	Logging LoggingConfig `yaml:"logging"`
}

// PaletteConfig selects the color table.
type PaletteConfig struct {
	Path    string `yaml:"path"`    // CSV with Nearest Color Name, Red, Green, Blue
	Builtin bool   `yaml:"builtin"` // Use the SVG color keywords instead of Path
}

// ImageConfig holds image preprocessing settings.
type ImageConfig struct {
	MaxWidth int `yaml:"max_width"` // Wider images are scaled down; 0 disables
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Palette: PaletteConfig{
			Path:    "data/colors.csv",
			Builtin: false,
		},
		Image: ImageConfig{
			MaxWidth: 600,
		},
		Logging: LoggingConfig{
			Level:   "warn",
			LogFile: "",
		},
	}
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks settings that would otherwise fail later in confusing ways.
func (c *Config) Validate() error {
	if c.Image.MaxWidth < 0 {
		return fmt.Errorf("image.max_width must not be negative, got %d", c.Image.MaxWidth)
	}
	if !c.Palette.Builtin && c.Palette.Path == "" {
		return errors.New("palette.path is empty and palette.builtin is off")
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}
	return nil
}
