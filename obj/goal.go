package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

// Goal is the potato the player has to reach. It never moves.
type Goal struct {
	Rect
}

func NewGoal(x, y, width, height float32) *Goal {
	return &Goal{Rect: Rect{X: x, Y: y, Width: width, Height: height}}
}

func (g *Goal) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, g.X, g.Y, g.Width, g.Height, colornames.Orange, false)
}
