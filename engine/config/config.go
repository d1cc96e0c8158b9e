// Package config reads and writes the YAML configuration file. Every field has a default, so a
// missing file or a partial file is valid.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file read when no path is given.
const DefaultPath = "config/hauntedhouse.yaml"

// Config is the complete application configuration.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Renderer RendererConfig `yaml:"renderer"`
	Controls ControlsConfig `yaml:"controls"`
	Clock    ClockConfig    `yaml:"clock"`
	Profiler ProfilerConfig `yaml:"profiler"`
	Log      LogConfig      `yaml:"log"`
	Debug    bool           `yaml:"debug"`

	// Textures maps a scene node name (floor, walls, roof, door) to an image file used as its
	// base color map.
	Textures map[string]string `yaml:"textures,omitempty"`

	// Props are optional glTF models placed around the house.
	Props []Prop `yaml:"props,omitempty"`
}

// WindowConfig sizes the window in logical pixels.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// RendererConfig selects surface and pipeline options.
type RendererConfig struct {
	VSync          bool `yaml:"vsync"`
	MSAA           bool `yaml:"msaa"`
	FrustumCulling bool `yaml:"frustum_culling"`
}

// ControlsConfig tunes the orbit controller.
type ControlsConfig struct {
	Damping         bool    `yaml:"damping"`
	DampingFactor   float32 `yaml:"damping_factor"`
	AutoRotate      bool    `yaml:"auto_rotate"`
	AutoRotateSpeed float32 `yaml:"auto_rotate_speed"`
}

// ClockConfig tunes the frame clock.
type ClockConfig struct {
	MaxDelta  time.Duration `yaml:"max_delta"`
	Timescale float64       `yaml:"timescale"`
}

// ProfilerConfig enables periodic frame rate and memory logging.
type ProfilerConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

// LogConfig selects the log level (debug, info, warn, error) and format (text, json).
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Prop places one glTF model. A zero scale keeps the model's own scale.
type Prop struct {
	Path     string     `yaml:"path"`
	Position [3]float32 `yaml:"position,flow"`
	Rotation [3]float32 `yaml:"rotation,flow"`
	Scale    [3]float32 `yaml:"scale,flow"`
}

// Default returns the configuration used when no file exists.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Haunted House",
			Width:  1280,
			Height: 720,
		},
		Renderer: RendererConfig{
			VSync:          true,
			MSAA:           true,
			FrustumCulling: true,
		},
		Controls: ControlsConfig{
			Damping:         true,
			DampingFactor:   0.05,
			AutoRotateSpeed: 2,
		},
		Clock: ClockConfig{
			MaxDelta:  100 * time.Millisecond,
			Timescale: 1,
		},
		Profiler: ProfilerConfig{
			Interval: time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the configuration at path over the defaults. A missing file yields Default()
// without error; a malformed or invalid file is an error.
//
// Parameters:
//   - path: the file to read, DefaultPath if empty
//
// Returns:
//   - Config: the configuration
//   - error: error if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
//
// Parameters:
//   - path: the file to write, DefaultPath if empty
//   - cfg: the configuration
//
// Returns:
//   - error: error if the file cannot be written
func Save(path string, cfg Config) error {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports every out-of-range field.
//
// Returns:
//   - error: the joined field errors, nil if valid
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Controls.DampingFactor <= 0 || c.Controls.DampingFactor > 1 {
		errs = append(errs, fmt.Errorf("controls.damping_factor must be in (0, 1], got %g", c.Controls.DampingFactor))
	}
	if c.Clock.MaxDelta < 0 {
		errs = append(errs, fmt.Errorf("clock.max_delta must not be negative, got %s", c.Clock.MaxDelta))
	}
	if c.Clock.Timescale < 0 {
		errs = append(errs, fmt.Errorf("clock.timescale must not be negative, got %g", c.Clock.Timescale))
	}
	for i, p := range c.Props {
		if p.Path == "" {
			errs = append(errs, fmt.Errorf("props[%d].path is empty", i))
		}
	}
	return errors.Join(errs...)
}
