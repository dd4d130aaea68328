package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/blockdude/internal/config"
	"github.com/vovakirdan/blockdude/internal/core"
	bdcore "github.com/vovakirdan/blockdude/internal/games/blockdude/core"
	"github.com/vovakirdan/blockdude/internal/games/blockdude/levels"
	"github.com/vovakirdan/blockdude/internal/platform/tui"
)

// env is the state every command starts from: the merged config and a logger.
type env struct {
	cfg     config.Config
	source  string
	logger  *log.Logger
	logFile *os.File
}

// setup loads the config, applies command-line overrides and opens the
// logger. Interactive commands log to the configured file so the TUI is not
// overwritten; stderr is used otherwise.
func setup(interactive bool) *env {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		fatal("%v", err)
	}
	cfg = applyFlags(cfg, flagLevels, flagDBPath, flagLogLevel)
	if err := cfg.Validate(); err != nil {
		fatal("%v", err)
	}

	theme, err := tui.ThemeByName(cfg.Display.Theme)
	if err != nil {
		fatal("%v", err)
	}
	tui.SetTheme(theme)

	e := &env{cfg: cfg, source: source}
	e.logger, e.logFile = openLogger(cfg, interactive)
	e.logger.Debug("config loaded", "source", source)
	return e
}

// applyFlags overrides config values with the non-empty flag values.
func applyFlags(cfg config.Config, levelsDir, dbPath, logLevel string) config.Config {
	if levelsDir != "" {
		cfg.Levels.Dir = levelsDir
	}
	if dbPath != "" {
		cfg.Storage.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg
}

func openLogger(cfg config.Config, interactive bool) (*log.Logger, *os.File) {
	var (
		w    io.Writer = os.Stderr
		file *os.File
	)
	if interactive {
		w = io.Discard
		if cfg.Log.File != "" {
			p := config.ExpandPath(cfg.Log.File)
			if err := os.MkdirAll(filepath.Dir(p), 0o755); err == nil {
				if f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
					w, file = f, f
				}
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockdude",
	})
	logger.SetLevel(cfg.LogLevel())
	return logger, file
}

// close flushes and closes the log file, if any.
func (e *env) close() {
	if e.logFile != nil {
		e.logFile.Close()
	}
}

func (e *env) buildOptions() []bdcore.BuildOption {
	if e.cfg.Levels.AllowDuplicateSingletons {
		return []bdcore.BuildOption{bdcore.AllowDuplicateSingletons()}
	}
	return nil
}

func (e *env) loader() *levels.Loader {
	var l *levels.Loader
	if e.cfg.Levels.Dir == "" {
		l = levels.Builtin()
	} else {
		l = levels.NewDirLoader(config.ExpandPath(e.cfg.Levels.Dir))
	}
	return l.WithLogger(e.logger).WithBuildOptions(e.buildOptions()...)
}

// loadLevels returns the playable levels from the configured source.
func (e *env) loadLevels() []levels.Level {
	l := e.loader()

	var (
		lvls []levels.Level
		err  error
	)
	if e.cfg.Levels.Sequence {
		lvls, err = l.Sequence()
	} else {
		lvls, err = l.LoadAll()
	}
	if err != nil {
		fatal("%v", err)
	}
	if len(lvls) == 0 {
		fatal("no playable levels in %s", l.Name())
	}
	e.logger.Info("levels loaded", "source", l.Name(), "count", len(lvls))
	return lvls
}

// saveDir is where the editor writes levels.
func (e *env) saveDir() string {
	if e.cfg.Levels.Dir == "" {
		return "."
	}
	return config.ExpandPath(e.cfg.Levels.Dir)
}

// runtime builds the session config from the terminal size and display
// settings.
func (e *env) runtime() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = e.cfg.Display.TickRate
	cfg.ViewportW = e.cfg.Display.ViewportW
	cfg.ViewportH = e.cfg.Display.ViewportH
	if user := os.Getenv("USER"); user != "" {
		cfg.Player = user
	}
	return cfg
}
