// Package blockdude provides the Block Dude session: level sequencing, the
// mode machine, timing and the level editor on top of the simulation core.
package blockdude

import (
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	platformcore "github.com/vovakirdan/blockdude/internal/core"
	"github.com/vovakirdan/blockdude/internal/games/blockdude/core"
	"github.com/vovakirdan/blockdude/internal/games/blockdude/levels"
	"github.com/vovakirdan/blockdude/internal/registry"
)

// ErrNoLevels is returned by New when the level list is empty.
var ErrNoLevels = errors.New("blockdude: no levels")

// Recorder persists completed levels. *storage.Store satisfies it.
type Recorder interface {
	SaveRun(runID string, levelID, moves int, d time.Duration) (int64, error)
	SaveProgress(player string, level int) error
}

// Completion describes one finished level.
type Completion struct {
	LevelID  int
	Moves    int
	Duration time.Duration
}

// Game is one play session over an ordered list of levels.
type Game struct {
	levels    []levels.Level
	index     int
	start     int
	buildOpts []core.BuildOption

	grid     *core.Grid
	machine  *core.Machine
	editor   *core.Editor
	viewport Viewport

	cfg        platformcore.RuntimeConfig
	moves      int
	levelStart time.Time
	runStart   time.Time
	elapsed    time.Duration
	last       *Completion
	quit       bool
	status     string

	runID        string
	saveDir      string
	startEditing bool

	clock    func() time.Time
	logger   *log.Logger
	recorder Recorder
}

// Option configures a Game.
type Option func(*Game)

// WithClock replaces time.Now for level and run timing.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.clock = now }
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithRecorder stores completed levels and progress.
func WithRecorder(r Recorder) Option {
	return func(g *Game) { g.recorder = r }
}

// WithRunID sets the id runs are recorded under.
func WithRunID(id string) Option {
	return func(g *Game) { g.runID = id }
}

// WithStartLevel starts the session at the n-th level (1-indexed).
// Out of range values start at the first level.
func WithStartLevel(n int) Option {
	return func(g *Game) { g.start = n - 1 }
}

// WithSaveDir sets the directory the editor writes levels to.
func WithSaveDir(dir string) Option {
	return func(g *Game) { g.saveDir = dir }
}

// WithBuildOptions sets the options used to build each level grid.
func WithBuildOptions(opts ...core.BuildOption) Option {
	return func(g *Game) { g.buildOpts = opts }
}

// StartInEditor opens the editor on the first level after every Reset.
func StartInEditor() Option {
	return func(g *Game) { g.startEditing = true }
}

// New creates a session over lvls. Every level must build into a valid grid.
// Call Reset before the first Step.
func New(lvls []levels.Level, opts ...Option) (*Game, error) {
	if len(lvls) == 0 {
		return nil, ErrNoLevels
	}
	g := &Game{
		levels:  append([]levels.Level(nil), lvls...),
		clock:   time.Now,
		saveDir: ".",
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.start < 0 || g.start >= len(g.levels) {
		g.start = 0
	}
	for _, lvl := range g.levels {
		if _, err := lvl.Build(g.buildOpts...); err != nil {
			return nil, fmt.Errorf("blockdude: %s: %w", lvl.Title(), err)
		}
	}
	g.Reset(platformcore.DefaultConfig())
	return g, nil
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "blockdude"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Block Dude"
}

// Reset starts the session over from the start level.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.cfg = cfg
	g.viewport = NewViewport(cfg.ViewportW, cfg.ViewportH)
	g.machine = core.NewMachine()
	g.machine.Observe(func(t core.Transition) {
		g.logger.Debug("mode change", "from", t.From, "to", t.To, "level", g.Level().ID)
	})

	g.index = g.start
	g.elapsed = 0
	g.runStart = time.Time{}
	g.last = nil
	g.quit = false
	g.editor = nil
	g.status = ""
	g.loadLevel()

	if g.startEditing {
		g.openEditor()
	}
}

// Resize updates the screen size without touching the session.
func (g *Game) Resize(w, h int) {
	g.cfg.ScreenW = w
	g.cfg.ScreenH = h
}

// loadLevel rebuilds the grid for the current level from its data.
func (g *Game) loadLevel() {
	lvl := g.Level()
	// Every level was built once in New or before replacing it.
	grid, _ := lvl.Build(g.buildOpts...)
	g.grid = grid
	g.moves = 0
	g.viewport.Center(grid.Player(), grid.Width(), grid.Height())
	g.logger.Debug("level loaded", "level", lvl.ID, "path", lvl.Path, "size", fmt.Sprintf("%dx%d", lvl.Width, lvl.Height))
}

// Step applies one input frame.
func (g *Game) Step(input platformcore.InputFrame) platformcore.StepResult {
	var events []platformcore.Event

	if input.Has(platformcore.ActionQuit) {
		g.quit = true
		return platformcore.StepResult{State: g.State()}
	}

	switch g.machine.Mode() {
	case core.ModePre:
		g.stepPre(input)
	case core.ModePlaying:
		events = g.stepPlaying(input)
	case core.ModeGameOver:
		g.stepGameOver(input)
	case core.ModeEditing:
		events = g.stepEditing(input)
	}

	return platformcore.StepResult{State: g.State(), Events: events}
}

func (g *Game) stepPre(input platformcore.InputFrame) {
	switch {
	case input.Has(platformcore.ActionBack):
		g.quit = true
	case input.Has(platformcore.ActionEdit):
		g.openEditor()
	case input.Has(platformcore.ActionConfirm):
		if !g.transition(g.machine.Start) {
			return
		}
		now := g.clock()
		if g.runStart.IsZero() {
			g.runStart = now
		}
		g.levelStart = now
		g.status = ""
		g.logger.Info("level started", "level", g.Level().ID)
	}
}

func (g *Game) stepPlaying(input platformcore.InputFrame) []platformcore.Event {
	switch {
	case input.Has(platformcore.ActionBack):
		g.loadLevel()
		g.transition(g.machine.Abandon)
		return nil
	case input.Has(platformcore.ActionRestart):
		g.loadLevel()
		g.levelStart = g.clock()
		return nil
	case input.Has(platformcore.ActionEdit):
		g.openEditor()
		return nil
	}

	cmd := commandFor(input)
	if cmd == core.CmdNone {
		return nil
	}
	if core.Apply(g.grid, cmd) {
		g.moves++
	}
	g.viewport.Follow(g.grid.Player(), g.grid.Width(), g.grid.Height())

	if g.grid.Complete() {
		return g.completeLevel()
	}
	return nil
}

// commandFor maps the movement actions of a frame to an engine command.
func commandFor(input platformcore.InputFrame) core.Command {
	switch {
	case input.Has(platformcore.ActionLeft):
		return core.CmdLeft
	case input.Has(platformcore.ActionRight):
		return core.CmdRight
	case input.Has(platformcore.ActionJump):
		return core.CmdJump
	case input.Has(platformcore.ActionInteract):
		return core.CmdInteract
	}
	return core.CmdNone
}

func (g *Game) completeLevel() []platformcore.Event {
	now := g.clock()
	lvl := g.Level()
	c := Completion{LevelID: lvl.ID, Moves: g.moves, Duration: now.Sub(g.levelStart)}
	g.last = &c
	g.logger.Info("level complete", "level", c.LevelID, "moves", c.Moves, "duration", c.Duration)
	g.recordRun(c)

	events := []platformcore.Event{platformcore.EventLevelComplete}
	if g.index+1 < len(g.levels) {
		g.transition(g.machine.Next)
		g.index++
		g.loadLevel()
		g.recordProgress(g.Level().ID)
		return events
	}

	g.transition(g.machine.Finish)
	g.elapsed = now.Sub(g.runStart)
	g.recordProgress(lvl.ID)
	g.logger.Info("game complete", "levels", len(g.levels), "elapsed", g.elapsed)
	return append(events, platformcore.EventGameComplete)
}

func (g *Game) stepGameOver(input platformcore.InputFrame) {
	switch {
	case input.Has(platformcore.ActionBack), input.Has(platformcore.ActionConfirm):
		g.quit = true
	case input.Has(platformcore.ActionRestart):
		g.Reset(g.cfg)
	}
}

func (g *Game) stepEditing(input platformcore.InputFrame) []platformcore.Event {
	e := g.editor
	switch {
	case input.Has(platformcore.ActionBack):
		g.closeEditor()
		return nil
	case input.Has(platformcore.ActionSave):
		return g.saveEdits()
	case input.Has(platformcore.ActionLeft):
		e.MoveCursor(-1, 0)
	case input.Has(platformcore.ActionRight):
		e.MoveCursor(1, 0)
	case input.Has(platformcore.ActionJump):
		e.MoveCursor(0, 1)
	case input.Has(platformcore.ActionInteract):
		e.MoveCursor(0, -1)
	case input.Has(platformcore.ActionConfirm):
		e.Paint()
	case input.Has(platformcore.ActionErase):
		e.Erase()
	case input.Has(platformcore.ActionCycleTile):
		e.CycleBrush()
	}
	g.viewport.Follow(e.Cursor(), e.Grid().Width(), e.Grid().Height())
	return nil
}

// openEditor edits the current level as it was loaded, not as played.
func (g *Game) openEditor() {
	if !g.transition(g.machine.Edit) {
		return
	}
	lvl := g.Level()
	grid, _ := lvl.Build(g.buildOpts...)
	g.editor = core.NewEditor(grid, lvl.Name)
	g.status = ""
}

// closeEditor keeps valid edits for the rest of the session and returns to the
// pre-level screen.
func (g *Game) closeEditor() {
	if g.editor.Dirty() {
		if err := g.applyEdits(); err != nil {
			g.status = "edits discarded: " + err.Error()
		} else {
			g.status = "edits kept for this session (ctrl+s saves to disk)"
		}
	}
	g.editor = nil
	g.transition(g.machine.StopEditing)
	g.loadLevel()
}

func (g *Game) applyEdits() error {
	data, err := g.editor.Level()
	if err != nil {
		return err
	}
	if _, err := data.Build(g.buildOpts...); err != nil {
		return err
	}
	g.levels[g.index].LevelData = data
	return nil
}

func (g *Game) saveEdits() []platformcore.Event {
	if err := g.applyEdits(); err != nil {
		g.status = "not saved: " + err.Error()
		return nil
	}
	p := g.savePath()
	if err := levels.WriteFile(p, g.Level().LevelData); err != nil {
		g.status = "save failed: " + err.Error()
		g.logger.Error("saving level", "path", p, "err", err)
		return nil
	}
	g.editor.MarkSaved()
	g.status = "saved " + p
	g.logger.Info("level saved", "level", g.Level().ID, "path", p)
	return []platformcore.Event{platformcore.EventLevelSaved}
}

// savePath returns where the editor writes the current level. Levels keep
// their file name; levels without a writable one are saved as levelN.bdl.
func (g *Game) savePath() string {
	lvl := g.Level()
	name := path.Base(filepath.ToSlash(lvl.Path))
	if lvl.Path == "" || !registry.Supports(path.Ext(name)) {
		name = fmt.Sprintf("level%d.bdl", lvl.ID)
	}
	return filepath.Join(g.saveDir, name)
}

// transition runs a mode change and logs the rare illegal one.
func (g *Game) transition(fn func() error) bool {
	if err := fn(); err != nil {
		g.logger.Error("mode change rejected", "err", err)
		return false
	}
	return true
}

func (g *Game) recordRun(c Completion) {
	if g.recorder == nil {
		return
	}
	if _, err := g.recorder.SaveRun(g.runID, c.LevelID, c.Moves, c.Duration); err != nil {
		g.logger.Error("saving run", "level", c.LevelID, "err", err)
	}
}

func (g *Game) recordProgress(level int) {
	if g.recorder == nil {
		return
	}
	if err := g.recorder.SaveProgress(g.cfg.Player, level); err != nil {
		g.logger.Error("saving progress", "player", g.cfg.Player, "err", err)
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	mode := g.machine.Mode()
	return platformcore.GameState{
		Level:    g.Level().ID,
		Moves:    g.moves,
		GameOver: mode == core.ModeGameOver,
		Playing:  mode == core.ModePlaying,
		Editing:  mode == core.ModeEditing,
		Quit:     g.quit,
	}
}

// Mode returns the current session mode.
func (g *Game) Mode() core.Mode {
	return g.machine.Mode()
}

// Grid returns the grid being played.
func (g *Game) Grid() *core.Grid {
	return g.grid
}

// Editor returns the open editor, or nil.
func (g *Game) Editor() *core.Editor {
	return g.editor
}

// Level returns the current level.
func (g *Game) Level() levels.Level {
	return g.levels[g.index]
}

// LevelIndex returns the position of the current level (0-indexed).
func (g *Game) LevelIndex() int {
	return g.index
}

// LevelCount returns the number of levels in the session.
func (g *Game) LevelCount() int {
	return len(g.levels)
}

// Moves returns the number of grid-changing commands on the current level.
func (g *Game) Moves() int {
	return g.moves
}

// LastCompletion returns the most recently completed level.
func (g *Game) LastCompletion() (Completion, bool) {
	if g.last == nil {
		return Completion{}, false
	}
	return *g.last, true
}

// Elapsed returns the time since the first level was started, frozen once the
// last level is complete.
func (g *Game) Elapsed() time.Duration {
	switch {
	case g.machine.Mode() == core.ModeGameOver:
		return g.elapsed
	case g.runStart.IsZero():
		return 0
	default:
		return g.clock().Sub(g.runStart)
	}
}

// LevelElapsed returns the time spent on the current level.
func (g *Game) LevelElapsed() time.Duration {
	if g.machine.Mode() != core.ModePlaying {
		return 0
	}
	return g.clock().Sub(g.levelStart)
}

// Viewport returns the visible window.
func (g *Game) Viewport() Viewport {
	return g.viewport
}

// Status returns the last editor or session message.
func (g *Game) Status() string {
	return g.status
}

// RunID returns the id runs are recorded under.
func (g *Game) RunID() string {
	return g.runID
}

// Quitting reports whether the session asked to end.
func (g *Game) Quitting() bool {
	return g.quit
}

// TemplateLevel returns a playable starting point for a new level: a brick
// floor with the player at the left and the door at the right.
func TemplateLevel(id, width, height int) (core.LevelData, error) {
	if width < 3 || height < 2 {
		return core.LevelData{}, fmt.Errorf("blockdude: template needs at least 3x2 blocks, got %dx%d", width, height)
	}
	cells := make([]core.Cell, 0, width+2)
	for x := 0; x < width; x++ {
		cells = append(cells, core.At(core.Brick, x, 0))
	}
	cells = append(cells, core.At(core.Player, 0, 1), core.At(core.Door, width-1, 1))
	return core.LevelData{ID: id, Width: width, Height: height, Placements: cells}, nil
}
