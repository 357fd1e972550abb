package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/potato/levels"
	"github.com/milk9111/potato/obj"
	"github.com/milk9111/potato/prefabs"
	"github.com/milk9111/potato/system"
	"golang.org/x/image/colornames"
)

type GameOptions struct {
	Spec *prefabs.GameSpec
	// Level is the level name or path to load; empty uses the spec's level.
	Level string
	// ConfigPath is the spec file the game was started with, if any.
	ConfigPath string
	Debug      bool
	Watch      bool
	Logger     *log.Logger
}

type Game struct {
	frames int
	debug  bool

	input   *obj.Input
	session *system.Session
	hud     *HUD
	logger  *log.Logger

	pauseUI        *ebitenui.UI
	paused         bool
	restartPending bool
	quitPending    bool

	levelName  string
	configPath string
	watcher    *prefabs.Watcher

	now  func() time.Time
	last time.Time
}

func NewGame(opts GameOptions) (*Game, error) {
	if opts.Spec == nil {
		return nil, fmt.Errorf("game: spec is nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	levelName := opts.Level
	if levelName == "" {
		levelName = opts.Spec.Level.Name
	}

	session, err := system.NewSession(opts.Spec, system.FileLoader(levelName, opts.Spec))
	if err != nil {
		return nil, err
	}
	logger.Info("level loaded",
		"level", levelName,
		"platforms", len(session.Level.Platforms),
		"rows", session.Level.Rows,
		"cols", session.Level.Cols,
	)

	hud, err := NewHUD()
	if err != nil {
		return nil, err
	}

	g := &Game{
		debug:      opts.Debug,
		input:      obj.NewInput(),
		session:    session,
		hud:        hud,
		logger:     logger,
		levelName:  levelName,
		configPath: opts.ConfigPath,
		now:        time.Now,
	}
	g.pauseUI = NewPauseUI(g)

	if opts.Watch {
		if err := g.startWatcher(); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Game) startWatcher() error {
	var files []string
	if p := levels.DiskPath(g.levelName); p != "" {
		files = append(files, p)
	}
	if g.configPath != "" {
		files = append(files, g.configPath)
	} else if p := prefabs.DiskPath(prefabs.GameSpecFile); p != "" {
		files = append(files, p)
	}
	if len(files) == 0 {
		g.logger.Warn("watch requested but level and spec are embedded only")
		return nil
	}
	w, err := prefabs.NewWatcher(files...)
	if err != nil {
		return fmt.Errorf("game: watch: %w", err)
	}
	g.watcher = w
	g.logger.Debug("watching for changes", "files", files)
	return nil
}

// Close stops the file watcher, if any.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) Update() error {
	g.input.Update()
	return g.tick(*g.input)
}

// tick runs one frame against an already sampled input.
func (g *Game) tick(in obj.Input) error {
	g.frames++

	now := g.now()
	var dt time.Duration
	if !g.last.IsZero() {
		dt = now.Sub(g.last)
	}
	g.last = now

	if in.QuitPressed || g.quitPending {
		return ebiten.Termination
	}
	g.drainWatcher()

	if in.PausePressed && g.session.State == system.StatePlaying {
		g.paused = !g.paused
		g.logger.Debug("pause toggled", "paused", g.paused)
	}
	if g.paused {
		if g.pauseUI != nil {
			g.pauseUI.Update()
		}
		return nil
	}
	if g.restartPending {
		g.restartPending = false
		return g.restart("menu")
	}

	prevState := g.session.State
	prevRestarts := g.session.Restarts
	if err := g.session.Update(in, dt); err != nil {
		g.logger.Error("restart failed", "error", err)
		return err
	}
	g.logTransition(prevState, prevRestarts)
	return nil
}

func (g *Game) logTransition(prevState system.State, prevRestarts int) {
	s := g.session
	if s.Restarts != prevRestarts {
		g.logger.Info("session restarted", "restarts", s.Restarts, "trigger", "button")
		return
	}
	if prevState == system.StatePlaying && s.State == system.StateEnded {
		kv := []any{"outcome", s.Outcome, "elapsed", s.Elapsed.Round(time.Millisecond)}
		if s.Outcome == system.OutcomeFailed {
			kv = append(kv, "reason", s.Reason)
		}
		g.logger.Info("session ended", kv...)
	}
}

func (g *Game) restart(trigger string) error {
	if err := g.session.Reset(); err != nil {
		g.logger.Error("restart failed", "error", err)
		return err
	}
	g.paused = false
	g.logger.Info("session restarted", "restarts", g.session.Restarts, "trigger", trigger)
	return nil
}

// drainWatcher applies pending file changes without blocking the frame.
func (g *Game) drainWatcher() {
	for g.watcher != nil {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("watcher error", "error", err)
		default:
			return
		}
	}
}

// reload picks up a changed level or spec file and restarts the session.
// A file that fails to load leaves the current session untouched.
func (g *Game) reload(name string) {
	s := g.session
	spec := s.Spec
	if prefabs.IsSpecFile(name) {
		next, err := prefabs.LoadGameSpec(g.configPath)
		if err != nil {
			g.logger.Warn("spec reload failed", "file", name, "error", err)
			return
		}
		spec = next
	}
	if err := s.Replace(spec, system.FileLoader(g.levelName, spec)); err != nil {
		g.logger.Warn("level reload failed", "file", name, "error", err)
		return
	}
	g.paused = false
	g.logger.Info("reloaded", "file", name, "platforms", len(s.Level.Platforms))
}

func (g *Game) Draw(screen *ebiten.Image) {
	s := g.session
	win := s.Spec.Window

	screen.Fill(colornames.White)
	s.Player.Draw(screen)
	s.Goal.Draw(screen)
	for i := range s.Level.Platforms {
		s.Level.Platforms[i].Draw(screen)
	}
	vector.FillRect(screen, 0, win.FloorY(), float32(win.Width), float32(win.GroundHeight), colornames.Lime, false)

	if s.State == system.StateEnded {
		g.hud.DrawOutcome(screen, s)
	} else {
		g.hud.DrawTimer(screen, s)
	}

	if g.paused && g.pauseUI != nil {
		g.pauseUI.Draw(screen)
	}

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    State: %s    Elapsed: %s",
			g.frames, ebiten.ActualFPS(), s.State, s.Elapsed.Round(time.Millisecond)), 0, 20)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	win := g.session.Spec.Window
	return float64(win.Width), float64(win.Height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
