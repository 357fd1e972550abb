package system

import (
	"fmt"
	"time"

	"github.com/milk9111/potato/levels"
	"github.com/milk9111/potato/obj"
	"github.com/milk9111/potato/prefabs"
)

type State int

const (
	StatePlaying State = iota
	StateEnded
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateEnded:
		return "ended"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSaved
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeSaved:
		return "saved"
	case OutcomeFailed:
		return "failed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// FailReason records why a session ended in OutcomeFailed.
type FailReason int

const (
	FailNone FailReason = iota
	FailOutOfBounds
	FailTimeUp
)

func (r FailReason) String() string {
	switch r {
	case FailNone:
		return "none"
	case FailOutOfBounds:
		return "out of bounds"
	case FailTimeUp:
		return "time up"
	}
	return fmt.Sprintf("FailReason(%d)", int(r))
}

// LevelLoader produces a freshly parsed level. It runs at session start and
// again on every restart.
type LevelLoader func() (*levels.Level, error)

// FileLoader loads the named level using the grid described by spec.
func FileLoader(name string, spec *prefabs.GameSpec) LevelLoader {
	return func() (*levels.Level, error) {
		return levels.Load(name, GridFor(spec))
	}
}

// GridFor maps a game spec onto the level grid.
func GridFor(spec *prefabs.GameSpec) levels.Grid {
	return levels.Grid{
		CellWidth:  spec.Level.CellWidth,
		CellHeight: spec.Level.CellHeight,
		FloorY:     spec.Window.FloorY(),
		Platform:   prefabs.Marker(spec.Level.Platform),
		Player:     prefabs.Marker(spec.Level.Player),
		Goal:       prefabs.Marker(spec.Level.Goal),
	}
}

// Session is one playthrough: level geometry, actors, the clock and the
// Playing/Ended state machine. It has no rendering dependencies.
type Session struct {
	Spec   *prefabs.GameSpec
	Level  *levels.Level
	Player *obj.Player
	Goal   *obj.Goal

	Elapsed time.Duration
	State   State
	Outcome Outcome
	Reason  FailReason
	// Restarts counts resets since the session was created.
	Restarts int

	load LevelLoader
}

// NewSession loads the first level and spawns the actors.
func NewSession(spec *prefabs.GameSpec, load LevelLoader) (*Session, error) {
	if spec == nil {
		return nil, fmt.Errorf("session: spec is nil")
	}
	if load == nil {
		return nil, fmt.Errorf("session: level loader is nil")
	}
	s := &Session{Spec: spec, load: load}
	if err := s.spawn(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset reloads the level and starts a fresh playthrough in place.
func (s *Session) Reset() error {
	if err := s.spawn(); err != nil {
		return err
	}
	s.Restarts++
	return nil
}

// Replace loads a level with load under spec and, only if that succeeds,
// makes both current and starts a fresh playthrough. On error the session
// keeps its spec, loader and running state.
func (s *Session) Replace(spec *prefabs.GameSpec, load LevelLoader) error {
	if spec == nil {
		return fmt.Errorf("session: spec is nil")
	}
	if load == nil {
		return fmt.Errorf("session: level loader is nil")
	}
	lvl, err := load()
	if err != nil {
		return fmt.Errorf("session: load level: %w", err)
	}
	s.Spec = spec
	s.load = load
	s.place(lvl)
	s.Restarts++
	return nil
}

func (s *Session) spawn() error {
	lvl, err := s.load()
	if err != nil {
		return fmt.Errorf("session: load level: %w", err)
	}
	s.place(lvl)
	return nil
}

func (s *Session) place(lvl *levels.Level) {
	physics := obj.Physics{
		Gravity:   s.Spec.Physics.Gravity,
		JumpSpeed: s.Spec.Physics.JumpSpeed,
		MoveStep:  s.Spec.Physics.MoveStep,
	}
	s.Level = lvl
	s.Player = obj.NewPlayer(lvl.PlayerSpawn.X, lvl.PlayerSpawn.Y, s.Spec.Player.Width, s.Spec.Player.Height, physics)
	s.Goal = obj.NewGoal(lvl.GoalSpawn.X, lvl.GoalSpawn.Y, s.Spec.Goal.Width, s.Spec.Goal.Height)
	s.Elapsed = 0
	s.State = StatePlaying
	s.Outcome = OutcomeNone
	s.Reason = FailNone
}

// Update advances the session by one frame. dt is the wall-clock time since
// the previous frame. While Ended only a click on the restart button does
// anything.
func (s *Session) Update(in obj.Input, dt time.Duration) error {
	if s.State == StateEnded {
		if in.Click {
			if _, err := s.Click(in.CursorX, in.CursorY); err != nil {
				return err
			}
		}
		return nil
	}

	if in.Left {
		s.Player.Nudge(-1)
	}
	if in.Right {
		s.Player.Nudge(1)
	}
	if in.Jump {
		s.Player.Jump()
	}
	s.Player.Step(s.Level.Platforms, s.Spec.Window.FloorY())
	s.Elapsed += dt
	s.evaluate()
	return nil
}

// evaluate checks the end conditions in a fixed order: reaching the goal,
// leaving the screen, then running out of time. The first match wins.
func (s *Session) evaluate() {
	p := s.Player
	switch {
	case p.Intersects(&s.Goal.Rect):
		s.end(OutcomeSaved, FailNone)
	case p.Y > float32(s.Spec.Window.Height) || p.X < 0 || p.X > float32(s.Spec.Window.Width):
		s.end(OutcomeFailed, FailOutOfBounds)
	case s.Elapsed > s.Spec.Session.TimeLimit:
		s.end(OutcomeFailed, FailTimeUp)
	}
}

func (s *Session) end(outcome Outcome, reason FailReason) {
	s.State = StateEnded
	s.Outcome = outcome
	s.Reason = reason
}

// Click hit-tests the restart button. It only reacts while Ended and
// reports whether the session was reset.
func (s *Session) Click(x, y float32) (bool, error) {
	if s.State != StateEnded {
		return false, nil
	}
	btn := s.RestartButton()
	if !btn.Contains(x, y) {
		return false, nil
	}
	if err := s.Reset(); err != nil {
		return false, err
	}
	return true, nil
}

// RestartButton returns the screen rectangle of the restart button.
func (s *Session) RestartButton() obj.Rect {
	b := s.Spec.RestartButton
	return obj.Rect{
		X:      float32(s.Spec.Window.Width)/2 - b.Width/2,
		Y:      float32(s.Spec.Window.Height)/2 + b.OffsetY,
		Width:  b.Width,
		Height: b.Height,
	}
}

// Remaining returns the time left before the session fails on time.
func (s *Session) Remaining() time.Duration {
	left := s.Spec.Session.TimeLimit - s.Elapsed
	if left < 0 {
		return 0
	}
	return left
}
