package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user and local search paths at empty temp dirs.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home, work = t.TempDir(), t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func writeFile(t *testing.T, p, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestEmbeddedDefaultsMatchDefaultConfig(t *testing.T) {
	cfg, err := parse(defaultYAML)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	isolate(t)

	cfg, source, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "embedded", source)
	assert.Equal(t, 12, cfg.Display.ViewportW)
	assert.Equal(t, 30*time.Minute, cfg.Server.IdleTimeout)
}

func TestLoadCustomPathKeepsUnsetDefaults(t *testing.T) {
	isolate(t)
	p := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, p, "levels:\n  dir: ./mylevels\n  allow_duplicate_singletons: true\nlog:\n  level: debug\n")

	cfg, source, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, p, source)
	assert.Equal(t, "./mylevels", cfg.Levels.Dir)
	assert.True(t, cfg.Levels.AllowDuplicateSingletons)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	assert.Equal(t, 12, cfg.Display.ViewportH, "unset value keeps its default")
	assert.Equal(t, "~/.blockdude/runs.db", cfg.Storage.DBPath)
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolate(t)

	_, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "display: [not, a, map]\n")
	_, _, err = Load(bad)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestLoadSearchOrder(t *testing.T) {
	home, work := isolate(t)
	writeFile(t, filepath.Join(work, "configs", "blockdude.yaml"), "display:\n  tick_rate: 20\n")

	cfg, source, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("configs", "blockdude.yaml"), source)
	assert.Equal(t, 20, cfg.Display.TickRate)

	user := filepath.Join(home, ".blockdude", "config.yaml")
	writeFile(t, user, "display:\n  tick_rate: 30\n")

	cfg, source, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, user, source)
	assert.Equal(t, 30, cfg.Display.TickRate)
}

func TestLoadSkipsBrokenUserConfig(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".blockdude", "config.yaml"), "levels: [broken\n")

	_, source, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "embedded", source)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"defaults", func(*Config) {}, ""},
		{"narrow viewport", func(c *Config) { c.Display.ViewportW = 3 }, "viewport_w"},
		{"tall viewport", func(c *Config) { c.Display.ViewportH = 41 }, "viewport_h"},
		{"zero tick rate", func(c *Config) { c.Display.TickRate = 0 }, "tick_rate"},
		{"no db", func(c *Config) { c.Storage.DBPath = "" }, "db_path"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"no address", func(c *Config) { c.Server.Address = "" }, "server.address"},
		{"negative timeout", func(c *Config) { c.Server.IdleTimeout = -time.Second }, "idle_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, "runs.db"), ExpandPath("~/runs.db"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/abs/runs.db", ExpandPath("/abs/runs.db"))
	assert.Equal(t, "~user/x", ExpandPath("~user/x"))
}

func TestLogLevelFallsBackToInfo(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Level = "nonsense"
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())
}
