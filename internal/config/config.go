// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

// Package config loads the splitpick configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/janderssonse/splitpick/internal/platform"
	"github.com/pelletier/go-toml/v2"
)

// EnvConfigFile overrides the configuration file location.
const EnvConfigFile = "SPLITPICK_CONFIG"

// FileName is the configuration file name under the splitpick config directory.
const FileName = "config.toml"

const (
	defaultSearchDebounce = 200 * time.Millisecond
	defaultSaveDebounce   = 500 * time.Millisecond
)

// ErrInvalidConfig is returned for configuration values that fail validation.
var ErrInvalidConfig = errors.New("invalid configuration")

var validSources = []string{"auto", "desktop", "dpkg", "brew"} //nolint:gochecknoglobals

// Duration is a time.Duration written as a Go duration string ("200ms").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	*d = Duration(parsed)

	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// InventoryConfig selects where installed applications come from.
type InventoryConfig struct {
	Source string   `toml:"source"`
	Dirs   []string `toml:"dirs"`
}

// StoreConfig locates the user's disallowed list.
type StoreConfig struct {
	Path string `toml:"path"`
}

// MDMConfig locates the managed settings file.
type MDMConfig struct {
	Path string `toml:"path"`
}

// PickerConfig tunes the picker debounce windows.
type PickerConfig struct {
	SearchDebounce Duration `toml:"search_debounce"`
	SaveDebounce   Duration `toml:"save_debounce"`
}

// Config is the splitpick configuration file.
type Config struct {
	Inventory InventoryConfig `toml:"inventory"`
	Store     StoreConfig     `toml:"store"`
	MDM       MDMConfig       `toml:"mdm"`
	Picker    PickerConfig    `toml:"picker"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Inventory: InventoryConfig{Source: "auto"},
		Picker: PickerConfig{
			SearchDebounce: Duration(defaultSearchDebounce),
			SaveDebounce:   Duration(defaultSaveDebounce),
		},
	}
}

// ResolvePath returns the configuration path: the explicit flag value, then
// SPLITPICK_CONFIG, then $XDG_CONFIG_HOME/splitpick/config.toml.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return platform.ExpandPath(flagValue)
	}

	if env := os.Getenv(EnvConfigFile); env != "" {
		return platform.ExpandPath(env)
	}

	return platform.GetConfigPath(FileName)
}

// Load reads the configuration at path on top of the defaults. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) //nolint:gosec
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Decode merges a TOML document into cfg and validates the result.
func Decode(data []byte, cfg *Config) error {
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}

		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return cfg.Validate()
}

// Validate checks value ranges and normalizes the inventory source.
func (c *Config) Validate() error {
	c.Inventory.Source = strings.ToLower(strings.TrimSpace(c.Inventory.Source))
	if c.Inventory.Source == "" {
		c.Inventory.Source = "auto"
	}

	if !slices.Contains(validSources, c.Inventory.Source) {
		return fmt.Errorf("%w: inventory.source %q (want one of %s)",
			ErrInvalidConfig, c.Inventory.Source, strings.Join(validSources, ", "))
	}

	if c.Picker.SearchDebounce <= 0 {
		return fmt.Errorf("%w: picker.search_debounce must be positive", ErrInvalidConfig)
	}

	if c.Picker.SaveDebounce <= 0 {
		return fmt.Errorf("%w: picker.save_debounce must be positive", ErrInvalidConfig)
	}

	for i, dir := range c.Inventory.Dirs {
		c.Inventory.Dirs[i] = platform.ExpandPath(dir)
	}

	c.Store.Path = platform.ExpandPath(c.Store.Path)

	return nil
}
