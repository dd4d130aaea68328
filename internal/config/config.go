// Package config provides YAML-based configuration loading for Block Dude.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Config contains all configuration for the game and its commands.
type Config struct {
	Levels  LevelsConfig  `yaml:"levels"`
	Display DisplayConfig `yaml:"display"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
}

// LevelsConfig controls where levels are loaded from.
type LevelsConfig struct {
	// Dir is a directory of level files. Empty uses the built-in levels.
	Dir string `yaml:"dir"`

	// Sequence loads only level1, level2, ... stopping at the first gap,
	// instead of every level file in Dir.
	Sequence bool `yaml:"sequence"`

	// AllowDuplicateSingletons lets a later Player or Door record move the
	// earlier one instead of rejecting the level.
	AllowDuplicateSingletons bool `yaml:"allow_duplicate_singletons"`
}

// DisplayConfig defines the terminal presentation.
type DisplayConfig struct {
	ViewportW int    `yaml:"viewport_w"` // Visible blocks horizontally
	ViewportH int    `yaml:"viewport_h"` // Visible blocks vertically
	TickRate  int    `yaml:"tick_rate"`  // Redraws per second
	Theme     string `yaml:"theme"`      // default, classic or mono
}

// StorageConfig locates the runs database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig controls the charmbracelet logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file for the TUI; empty discards
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Validate checks the configuration for values the game cannot run with.
func (c Config) Validate() error {
	if c.Display.ViewportW < 4 || c.Display.ViewportW > 40 {
		return fmt.Errorf("config: display.viewport_w %d must be between 4 and 40", c.Display.ViewportW)
	}
	if c.Display.ViewportH < 4 || c.Display.ViewportH > 40 {
		return fmt.Errorf("config: display.viewport_h %d must be between 4 and 40", c.Display.ViewportH)
	}
	if c.Display.TickRate < 1 || c.Display.TickRate > 120 {
		return fmt.Errorf("config: display.tick_rate %d must be between 1 and 120", c.Display.TickRate)
	}
	if c.Storage.DBPath == "" {
		return fmt.Errorf("config: storage.db_path must be set")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level %q: %w", c.Log.Level, err)
	}
	if c.Server.Address == "" {
		return fmt.Errorf("config: server.address must be set")
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("config: server.idle_timeout must not be negative")
	}
	return nil
}

// LogLevel returns the parsed log level, defaulting to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}
