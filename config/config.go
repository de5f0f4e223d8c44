package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Toggle keys understood by the application. They live in the "toggles"
// section so the settings window can flip them without knowing the struct.
const (
	AlwaysOnTop    = "always_on_top"
	ShapeWindow    = "shape_window"
	ShowMonitor    = "show_monitor"
	ShowNowPlaying = "show_now_playing"
)

var (
	ErrMissingKey = errors.New("config: key not found")
	ErrWrongKind  = errors.New("config: value has the wrong kind")
)

// Config mirrors config.yaml.
type Config struct {
	Title        string         `yaml:"title"`         // window title, also used to find the native window
	TPS          int            `yaml:"tps"`           // frame loop rate
	LogLevel     string         `yaml:"log_level"`     // debug, info, warn, error
	StartupTrack string         `yaml:"startup_track"` // asset name or path played at launch
	Toggles      map[string]any `yaml:"toggles"`
}

// NewDefault is used when no config file exists yet, and as the base every
// file is decoded over.
func NewDefault() *Config {
	return &Config{
		Title:        "Lofi Buddy",
		TPS:          30,
		LogLevel:     "info",
		StartupTrack: "lofi.mp3",
		Toggles: map[string]any{
			AlwaysOnTop:    true,
			ShapeWindow:    true,
			ShowMonitor:    false,
			ShowNowPlaying: true,
		},
	}
}

// DefaultPath returns <user config dir>/lofibuddy/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "lofibuddy", "config.yaml"), nil
}

// Load reads filename. A missing file is created from the defaults. A file
// that does not parse yields the defaults together with the parse error so
// the caller can warn and carry on.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := NewDefault()
			return cfg, Save(cfg, filename)
		}
		return nil, err
	}

	cfg := NewDefault()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return NewDefault(), fmt.Errorf("parse %s: %w", filename, err)
	}
	cfg.fill()
	return cfg, nil
}

// fill restores defaults for anything the file left out.
func (c *Config) fill() {
	def := NewDefault()
	if c.Title == "" {
		c.Title = def.Title
	}
	if c.TPS <= 0 {
		c.TPS = def.TPS
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Toggles == nil {
		c.Toggles = map[string]any{}
	}
	for k, v := range def.Toggles {
		if _, ok := c.Toggles[k]; !ok {
			c.Toggles[k] = v
		}
	}
}

// Save writes cfg to filename, creating parent directories. The file is
// written next to its destination and renamed over it, so readers never see
// a partly written config.
func Save(cfg *Config, filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filename)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filename)
}

// GetBool returns the toggle named key.
func (c *Config) GetBool(key string) (bool, error) {
	v, ok := c.Toggles[key]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrMissingKey, key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s is %T, want bool", ErrWrongKind, key, v)
	}
	return b, nil
}

// Enabled is GetBool for callers that treat a bad key as off.
func (c *Config) Enabled(key string) bool {
	b, _ := c.GetBool(key)
	return b
}

// SetBool sets the toggle named key.
func (c *Config) SetBool(key string, value bool) {
	if c.Toggles == nil {
		c.Toggles = map[string]any{}
	}
	c.Toggles[key] = value
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Toggles = make(map[string]any, len(c.Toggles))
	for k, v := range c.Toggles {
		out.Toggles[k] = v
	}
	return &out
}
