// Package config handles objmesh configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/Faultbox/objmesh/pkg/mesh"
)

// Config holds all settings.
type Config struct {
	Parse   ParseConfig   `yaml:"parse" toml:"parse"`
	Watch   WatchConfig   `yaml:"watch" toml:"watch"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// ParseConfig holds mesh construction settings.
type ParseConfig struct {
	Normalize    string `yaml:"normalize" toml:"normalize"`         // full, rotate-only, none
	BoundsSeed   string `yaml:"bounds_seed" toml:"bounds_seed"`     // origin, first-vertex
	FaceGeometry string `yaml:"face_geometry" toml:"face_geometry"` // first-three, polygon
}

// WatchConfig holds file watching settings.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms" toml:"debounce_ms"` // Quiet period before re-parsing
}

// Debounce returns the quiet period as a duration.
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Parse: ParseConfig{
			Normalize:    mesh.NormalizeFull.String(),
			BoundsSeed:   mesh.SeedOrigin.String(),
			FaceGeometry: mesh.FaceFirstThree.String(),
		},
		Watch: WatchConfig{
			DebounceMS: 200,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// MeshOptions converts the parse section into builder options. The logger
// is left for the caller to set.
func (p ParseConfig) MeshOptions() (mesh.Options, error) {
	opts := mesh.DefaultOptions()

	var err error
	if opts.Normalize, err = mesh.ParseNormalizeMode(p.Normalize); err != nil {
		return opts, err
	}
	if opts.BoundsSeed, err = mesh.ParseBoundsSeed(p.BoundsSeed); err != nil {
		return opts, err
	}
	if opts.FaceGeometry, err = mesh.ParseFaceGeometry(p.FaceGeometry); err != nil {
		return opts, err
	}
	return opts, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := c.Parse.MeshOptions(); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch: negative debounce_ms %d", c.Watch.DebounceMS)
	}
	return nil
}
