package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/potato/levels"
	"github.com/milk9111/potato/obj"
	"github.com/milk9111/potato/prefabs"
	"github.com/milk9111/potato/system"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestGame(t *testing.T, levelName string, load system.LevelLoader) (*Game, *fakeClock, *bytes.Buffer) {
	t.Helper()
	spec := prefabs.DefaultGameSpec()
	if load == nil {
		load = system.FileLoader(levelName, &spec)
	}
	session, err := system.NewSession(&spec, load)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	clk := &fakeClock{t: time.Unix(1700000000, 0)}
	var buf bytes.Buffer
	g := &Game{
		input:     obj.NewInput(),
		session:   session,
		logger:    log.New(&buf),
		levelName: levelName,
		now:       clk.Now,
	}
	return g, clk, &buf
}

func parseLoader(src string) system.LevelLoader {
	return func() (*levels.Level, error) {
		return levels.Parse(strings.NewReader(src), levels.DefaultGrid())
	}
}

func TestTickQuit(t *testing.T) {
	g, _, _ := newTestGame(t, "", parseLoader("&\n....@"))
	if err := g.tick(obj.Input{QuitPressed: true}); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("expected termination, got %v", err)
	}

	g.quitPending = true
	if err := g.tick(obj.Input{}); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("expected termination from the quit button, got %v", err)
	}
}

func TestTickUsesWallClock(t *testing.T) {
	g, clk, _ := newTestGame(t, "", parseLoader("&\n....@"))
	if err := g.tick(obj.Input{}); err != nil {
		t.Fatal(err)
	}
	if g.session.Elapsed != 0 {
		t.Fatalf("expected first frame to add no time, got %s", g.session.Elapsed)
	}
	clk.Advance(250 * time.Millisecond)
	if err := g.tick(obj.Input{}); err != nil {
		t.Fatal(err)
	}
	if g.session.Elapsed != 250*time.Millisecond {
		t.Fatalf("expected 250ms elapsed, got %s", g.session.Elapsed)
	}
}

func TestTickPauseFreezesSession(t *testing.T) {
	g, clk, _ := newTestGame(t, "", parseLoader("&\n....@"))
	steps := []struct {
		advance     time.Duration
		in          obj.Input
		wantPaused  bool
		wantElapsed time.Duration
	}{
		{0, obj.Input{}, false, 0},
		{time.Second, obj.Input{}, false, time.Second},
		{time.Second, obj.Input{PausePressed: true}, true, time.Second},
		{10 * time.Second, obj.Input{Right: true}, true, time.Second},
		{time.Second, obj.Input{PausePressed: true}, false, 2 * time.Second},
	}
	for i, st := range steps {
		clk.Advance(st.advance)
		x := g.session.Player.X
		if err := g.tick(st.in); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if g.paused != st.wantPaused {
			t.Fatalf("step %d: expected paused=%v", i, st.wantPaused)
		}
		if g.session.Elapsed != st.wantElapsed {
			t.Fatalf("step %d: expected elapsed %s, got %s", i, st.wantElapsed, g.session.Elapsed)
		}
		if g.paused && g.session.Player.X != x {
			t.Fatalf("step %d: player moved while paused", i)
		}
	}
}

func TestTickPauseIgnoredWhenEnded(t *testing.T) {
	g, _, buf := newTestGame(t, "", parseLoader("&\n.@"))
	if err := g.tick(obj.Input{Right: true}); err != nil {
		t.Fatal(err)
	}
	if g.session.State != system.StateEnded {
		t.Fatalf("expected the goal to end the session")
	}
	if !strings.Contains(buf.String(), "session ended") {
		t.Fatalf("expected end of session to be logged, got %q", buf.String())
	}
	if err := g.tick(obj.Input{PausePressed: true}); err != nil {
		t.Fatal(err)
	}
	if g.paused {
		t.Fatalf("pause should be ignored once the session has ended")
	}
}

func TestTickRestartButtonLogs(t *testing.T) {
	g, _, buf := newTestGame(t, "", parseLoader("&\n.@"))
	if err := g.tick(obj.Input{Right: true}); err != nil {
		t.Fatal(err)
	}
	if err := g.tick(obj.Input{Click: true, CursorX: 600, CursorY: 375}); err != nil {
		t.Fatal(err)
	}
	if g.session.State != system.StatePlaying || g.session.Restarts != 1 {
		t.Fatalf("expected a restart, got %s restarts=%d", g.session.State, g.session.Restarts)
	}
	if !strings.Contains(buf.String(), "session restarted") {
		t.Fatalf("expected restart to be logged, got %q", buf.String())
	}
}

func TestTickMenuRestart(t *testing.T) {
	g, clk, _ := newTestGame(t, "", parseLoader("&\n....@"))
	for i := 0; i < 5; i++ {
		clk.Advance(time.Second)
		if err := g.tick(obj.Input{Right: true}); err != nil {
			t.Fatal(err)
		}
	}
	g.restartPending = true
	if err := g.tick(obj.Input{}); err != nil {
		t.Fatal(err)
	}
	if g.restartPending {
		t.Fatalf("expected pending restart to be consumed")
	}
	if g.session.Elapsed != 0 || g.session.Player.X != 0 || g.session.Restarts != 1 {
		t.Fatalf("expected fresh session, got elapsed=%s x=%v restarts=%d",
			g.session.Elapsed, g.session.Player.X, g.session.Restarts)
	}
}

func TestReloadLevelFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "level.txt")
	if err := os.WriteFile(path, []byte("&\n.#\n....@"), 0o644); err != nil {
		t.Fatal(err)
	}
	g, _, _ := newTestGame(t, path, nil)
	if len(g.session.Level.Platforms) != 1 {
		t.Fatalf("expected 1 platform, got %d", len(g.session.Level.Platforms))
	}

	if err := os.WriteFile(path, []byte("&\n.##\n..##\n....@"), 0o644); err != nil {
		t.Fatal(err)
	}
	g.reload(path)
	if len(g.session.Level.Platforms) != 4 {
		t.Fatalf("expected 4 platforms after reload, got %d", len(g.session.Level.Platforms))
	}

	before := g.session.Level
	if err := os.WriteFile(path, []byte("###"), 0o644); err != nil {
		t.Fatal(err)
	}
	g.reload(path)
	if g.session.Level != before {
		t.Fatalf("a broken level must not replace the running one")
	}
}

func TestReloadSpecFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "game.yaml")
	if err := os.WriteFile(cfg, []byte("goal:\n  width: 90\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	g, _, _ := newTestGame(t, levels.DefaultLevel, nil)
	g.configPath = cfg
	g.reload(cfg)
	if g.session.Goal.Width != 90 {
		t.Fatalf("expected reloaded goal width 90, got %v", g.session.Goal.Width)
	}

	if err := os.WriteFile(cfg, []byte("window:\n  width: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	g.reload(cfg)
	if g.session.Spec.Goal.Width != 90 {
		t.Fatalf("an invalid spec must not replace the running one")
	}
}

func TestReloadSpecKeepsSessionWhenLevelFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "level.txt")
	if err := os.WriteFile(path, []byte("&\n.@"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(dir, "game.yaml")
	if err := os.WriteFile(cfg, []byte("window:\n  height: 800\nlevel:\n  player: P\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	g, _, _ := newTestGame(t, path, nil)
	g.configPath = cfg
	before := g.session.Spec
	level := g.session.Level

	g.reload(cfg)
	if g.session.Spec != before || g.session.Spec.Window.Height != 600 {
		t.Fatalf("a spec whose level fails to load must not replace the running one")
	}
	if g.session.Level != level {
		t.Fatalf("expected the running level to be kept")
	}

	if err := g.tick(obj.Input{Right: true}); err != nil {
		t.Fatal(err)
	}
	if g.session.Outcome != system.OutcomeSaved {
		t.Fatalf("expected saved, got %s", g.session.Outcome)
	}
	if err := g.tick(obj.Input{Click: true, CursorX: 600, CursorY: 375}); err != nil {
		t.Fatalf("restart after failed reload: %v", err)
	}
	if g.session.State != system.StatePlaying || g.session.Restarts != 1 {
		t.Fatalf("expected restart, got %s restarts=%d", g.session.State, g.session.Restarts)
	}
}

func TestPausePanelSize(t *testing.T) {
	cases := []struct {
		name  string
		win   prefabs.WindowSpec
		wantW int
		wantH int
	}{
		{name: "default", win: prefabs.DefaultGameSpec().Window, wantW: 300, wantH: 200},
		{name: "custom", win: prefabs.WindowSpec{Width: 800, Height: 900}, wantW: 200, wantH: 300},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, h := pausePanelSize(c.win)
			if w != c.wantW || h != c.wantH {
				t.Fatalf("expected %dx%d, got %dx%d", c.wantW, c.wantH, w, h)
			}
		})
	}
}
