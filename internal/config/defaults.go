package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/blockdude.yaml
var defaultYAML []byte

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Levels: LevelsConfig{
			Dir:                      "",
			Sequence:                 false,
			AllowDuplicateSingletons: false,
		},
		Display: DisplayConfig{
			ViewportW: 12,
			ViewportH: 12,
			TickRate:  10,
			Theme:     "default",
		},
		Storage: StorageConfig{
			DBPath: "~/.blockdude/runs.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.blockdude/blockdude.log",
		},
		Server: ServerConfig{
			Address:     ":23234",
			HostKeyPath: "",
			IdleTimeout: 30 * time.Minute,
		},
	}
}
