package prefabs

import (
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/milk9111/potato/common"
	"gopkg.in/yaml.v3"
)

// GameSpecFile is the embedded default game spec.
const GameSpecFile = "game.yaml"

var ErrInvalidSpec = errors.New("prefabs: invalid game spec")

type GameSpec struct {
	Name          string            `yaml:"name"`
	Window        WindowSpec        `yaml:"window"`
	Level         LevelSpec         `yaml:"level"`
	Physics       PhysicsSpec       `yaml:"physics"`
	Player        SizeSpec          `yaml:"player"`
	Goal          SizeSpec          `yaml:"goal"`
	Session       SessionSpec       `yaml:"session"`
	RestartButton RestartButtonSpec `yaml:"restart_button"`
	Messages      MessagesSpec      `yaml:"messages"`
}

type WindowSpec struct {
	Title        string `yaml:"title"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	GroundHeight int    `yaml:"ground_height"`
	TPS          int    `yaml:"tps"`
}

// FloorY is the y-coordinate of the top of the ground strip.
func (w WindowSpec) FloorY() float32 {
	return float32(w.Height - w.GroundHeight)
}

type LevelSpec struct {
	Name       string  `yaml:"name"`
	CellWidth  float32 `yaml:"cell_width"`
	CellHeight float32 `yaml:"cell_height"`
	Platform   string  `yaml:"platform"`
	Player     string  `yaml:"player"`
	Goal       string  `yaml:"goal"`
}

type PhysicsSpec struct {
	Gravity   float32 `yaml:"gravity"`
	JumpSpeed float32 `yaml:"jump_speed"`
	MoveStep  float32 `yaml:"move_step"`
}

type SizeSpec struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

type SessionSpec struct {
	TimeLimit time.Duration `yaml:"time_limit"`
}

// RestartButtonSpec places the restart button horizontally centred and
// OffsetY below the vertical centre of the window.
type RestartButtonSpec struct {
	Width   float32 `yaml:"width"`
	Height  float32 `yaml:"height"`
	OffsetY float32 `yaml:"offset_y"`
	Label   string  `yaml:"label"`
}

type MessagesSpec struct {
	Saved  string `yaml:"saved"`
	Failed string `yaml:"failed"`
}

// DefaultGameSpec mirrors game.yaml so partial spec files only need to list
// the values they change.
func DefaultGameSpec() GameSpec {
	return GameSpec{
		Name: "potato rescue",
		Window: WindowSpec{
			Title:        "Potato Rescue",
			Width:        common.BaseWidth,
			Height:       common.BaseHeight,
			GroundHeight: common.GroundHeight,
			TPS:          common.TPS,
		},
		Level: LevelSpec{
			Name:       "level.txt",
			CellWidth:  common.CellSize,
			CellHeight: common.CellSize,
			Platform:   "#",
			Player:     "&",
			Goal:       "@",
		},
		Physics:       PhysicsSpec{Gravity: 0.5, JumpSpeed: -10, MoveStep: 5},
		Player:        SizeSpec{Width: 50, Height: 50},
		Goal:          SizeSpec{Width: 50, Height: 30},
		Session:       SessionSpec{TimeLimit: 60 * time.Second},
		RestartButton: RestartButtonSpec{Width: 200, Height: 50, OffsetY: 50, Label: "Restart"},
		Messages:      MessagesSpec{Saved: "Potato saved!", Failed: "I turned into mash!"},
	}
}

// LoadGameSpec reads the game spec at path. An empty path loads game.yaml
// from prefabs/ on disk or the embedded copy.
func LoadGameSpec(path string) (*GameSpec, error) {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		path = GameSpecFile
		data, err = Load(GameSpecFile)
	}
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", path, err)
	}
	return ParseGameSpec(data)
}

// ParseGameSpec decodes YAML over the defaults and validates the result.
func ParseGameSpec(data []byte) (*GameSpec, error) {
	spec := DefaultGameSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal game spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *GameSpec) Validate() error {
	switch {
	case s.Window.Width <= 0 || s.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidSpec, s.Window.Width, s.Window.Height)
	case s.Window.GroundHeight < 0 || s.Window.GroundHeight >= s.Window.Height:
		return fmt.Errorf("%w: ground height %d", ErrInvalidSpec, s.Window.GroundHeight)
	case s.Window.TPS <= 0:
		return fmt.Errorf("%w: tps %d", ErrInvalidSpec, s.Window.TPS)
	case s.Level.CellWidth <= 0 || s.Level.CellHeight <= 0:
		return fmt.Errorf("%w: cell size %vx%v", ErrInvalidSpec, s.Level.CellWidth, s.Level.CellHeight)
	case s.Player.Width <= 0 || s.Player.Height <= 0:
		return fmt.Errorf("%w: player size %vx%v", ErrInvalidSpec, s.Player.Width, s.Player.Height)
	case s.Goal.Width <= 0 || s.Goal.Height <= 0:
		return fmt.Errorf("%w: goal size %vx%v", ErrInvalidSpec, s.Goal.Width, s.Goal.Height)
	case s.Session.TimeLimit <= 0:
		return fmt.Errorf("%w: time limit %s", ErrInvalidSpec, s.Session.TimeLimit)
	}
	for name, marker := range map[string]string{
		"platform": s.Level.Platform,
		"player":   s.Level.Player,
		"goal":     s.Level.Goal,
	} {
		if utf8.RuneCountInString(marker) != 1 {
			return fmt.Errorf("%w: %s marker %q must be a single character", ErrInvalidSpec, name, marker)
		}
	}
	return nil
}

// Marker returns the single rune of a validated marker string.
func Marker(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
