// Package config persists CLI preferences in ~/.config/midiplay/config.json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/leandrodaf/midiplay/internal/keymap"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// LayoutConfig selects the key layout used to turn notes into key combos.
type LayoutConfig struct {
	Name   string            `json:"name"`
	Sharps bool              `json:"sharps"`
	Keys   map[string]string `json:"keys,omitempty"` // note number -> combo, for Name "custom"
}

// WindowConfig names the window focused before playback.
type WindowConfig struct {
	Title string `json:"title,omitempty"`
	PID   uint32 `json:"pid,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	LowerLimit   uint8                  `json:"lowerLimit"`
	UpperLimit   uint8                  `json:"upperLimit"`
	BlackKeyMode contracts.BlackKeyMode `json:"blackKeyMode"`
	Layout       LayoutConfig           `json:"layout"`
	Target       WindowConfig           `json:"targetWindow"`
	StopTimeout  Duration               `json:"stopTimeout,omitempty"`
	LogLevel     string                 `json:"logLevel,omitempty"`
	Locale       string                 `json:"locale,omitempty"`
	MIDIDevice   int                    `json:"midiDevice,omitempty"`
}

// Duration is a time.Duration stored as a string such as "1s" or "500ms".
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LowerLimit:   contracts.DefaultLowerLimit,
		UpperLimit:   contracts.DefaultUpperLimit,
		BlackKeyMode: contracts.BlackKeyNone,
		Layout:       LayoutConfig{Name: keymap.TwentyOneKeyName, Sharps: true},
		StopTimeout:  Duration(time.Second),
		LogLevel:     "info",
		Locale:       "en",
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "midiplay"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. Fields missing from the file keep their
// defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating its directory.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// KeyLayout resolves the configured layout.
func (c *Config) KeyLayout() (keymap.Layout, error) {
	if len(c.Layout.Keys) > 0 {
		return keymap.Custom(c.Layout.Name, c.Layout.Keys)
	}
	return keymap.ByName(c.Layout.Name, c.Layout.Sharps)
}

// Level maps LogLevel to a contracts.LogLevel, defaulting to info.
func (c *Config) Level() contracts.LogLevel {
	level, _ := contracts.ParseLogLevel(c.LogLevel)
	return level
}

// AnalyzeOptions returns the analyzer options implied by the config.
func (c *Config) AnalyzeOptions() []contracts.AnalyzeOption {
	return []contracts.AnalyzeOption{
		contracts.WithNoteLimits(c.LowerLimit, c.UpperLimit),
		contracts.WithBlackKeyMode(c.BlackKeyMode),
		contracts.WithLocale(c.Locale),
	}
}

// FindWindow returns the first window matching the configured target, by
// pid when set, otherwise by exact title.
func (c *Config) FindWindow(windows []contracts.WindowInfo) (contracts.WindowInfo, bool) {
	if c.Target.PID == 0 && c.Target.Title == "" {
		return contracts.WindowInfo{}, false
	}
	for _, w := range windows {
		if c.Target.PID != 0 && w.PID == c.Target.PID {
			return w, true
		}
		if c.Target.PID == 0 && w.Title == c.Target.Title {
			return w, true
		}
	}
	return contracts.WindowInfo{}, false
}
