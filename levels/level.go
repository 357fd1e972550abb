package levels

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/milk9111/potato/common"
	"github.com/milk9111/potato/obj"
)

// Default grid markers.
const (
	PlatformMarker = '#'
	PlayerMarker   = '&'
	GoalMarker     = '@'
)

// ErrMissingSpawn is returned when a level has no player or goal marker.
var ErrMissingSpawn = errors.New("levels: missing spawn marker")

// MissingSpawnError names the spawn marker a level is missing.
type MissingSpawnError struct {
	Name   string
	Marker rune
}

func (e *MissingSpawnError) Error() string {
	return fmt.Sprintf("levels: missing %s spawn marker %q", e.Name, e.Marker)
}

func (e *MissingSpawnError) Is(target error) bool {
	return target == ErrMissingSpawn
}

// Grid maps grid cells to screen pixels. Row 0 is the first line of the
// file and sits at FloorY; each following line climbs one cell up.
type Grid struct {
	CellWidth  float32
	CellHeight float32
	FloorY     float32

	Platform rune
	Player   rune
	Goal     rune
}

// DefaultGrid matches the 1200x600 canvas with a 100px ground strip.
func DefaultGrid() Grid {
	return Grid{
		CellWidth:  common.CellSize,
		CellHeight: common.CellSize,
		FloorY:     common.FloorY,
		Platform:   PlatformMarker,
		Player:     PlayerMarker,
		Goal:       GoalMarker,
	}
}

// CellPosition returns the top-left pixel of the cell at col/row.
func (g Grid) CellPosition(col, row int) obj.Point {
	return obj.Point{
		X: float32(col) * g.CellWidth,
		Y: g.FloorY - float32(row)*g.CellHeight,
	}
}

// Level is the immutable geometry parsed from a text grid.
type Level struct {
	Name      string
	Platforms []obj.Platform

	PlayerSpawn obj.Point
	GoalSpawn   obj.Point

	// Rows and Cols describe the extent of the parsed grid.
	Rows, Cols int
}

// Load reads the named level from disk or the embedded levels and parses it.
func Load(name string, grid Grid) (*Level, error) {
	data, err := Read(name)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", name, err)
	}
	lvl, err := Parse(bytes.NewReader(data), grid)
	if err != nil {
		return nil, fmt.Errorf("parse level %s: %w", name, err)
	}
	lvl.Name = name
	return lvl, nil
}

// Parse scans every character of every line. Surrounding whitespace is
// trimmed before columns are counted, so rows are padded with a filler such
// as '.' rather than spaces. Unknown characters are ignored. When a spawn
// marker appears more than once the last one wins.
func Parse(r io.Reader, grid Grid) (*Level, error) {
	lvl := &Level{}
	var havePlayer, haveGoal bool

	scanner := bufio.NewScanner(r)
	row := 0
	for ; scanner.Scan(); row++ {
		col := 0
		for _, ch := range strings.TrimSpace(scanner.Text()) {
			switch ch {
			case grid.Platform:
				pos := grid.CellPosition(col, row)
				lvl.Platforms = append(lvl.Platforms, obj.NewPlatform(pos.X, pos.Y, grid.CellWidth, grid.CellHeight))
			case grid.Player:
				lvl.PlayerSpawn = grid.CellPosition(col, row)
				havePlayer = true
			case grid.Goal:
				lvl.GoalSpawn = grid.CellPosition(col, row)
				haveGoal = true
			}
			col++
		}
		if col > lvl.Cols {
			lvl.Cols = col
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	lvl.Rows = row

	if !havePlayer {
		return nil, &MissingSpawnError{Name: "player", Marker: grid.Player}
	}
	if !haveGoal {
		return nil, &MissingSpawnError{Name: "goal", Marker: grid.Goal}
	}
	return lvl, nil
}
