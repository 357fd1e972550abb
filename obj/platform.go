package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

// Platform is a static solid cell loaded from the level grid.
type Platform struct {
	Rect
}

func NewPlatform(x, y, width, height float32) Platform {
	return Platform{Rect: Rect{X: x, Y: y, Width: width, Height: height}}
}

func (p *Platform) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, p.X, p.Y, p.Width, p.Height, colornames.Lime, false)
}
