package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

// Physics holds the per-frame movement constants applied to the player.
type Physics struct {
	// Gravity is added to VelocityY once per frame.
	Gravity float32
	// JumpSpeed is the (negative, upward) velocity set by a jump.
	JumpSpeed float32
	// MoveStep is the horizontal nudge per frame per held direction key.
	MoveStep float32
}

type Player struct {
	Rect
	StartX, StartY float32
	VelocityY      float32
	Grounded       bool

	physics Physics
}

// NewPlayer spawns a grounded player with its top-left corner at (x, y).
func NewPlayer(x, y, width, height float32, physics Physics) *Player {
	return &Player{
		Rect: Rect{
			X:      x,
			Y:      y,
			Width:  width,
			Height: height,
		},
		StartX:   x,
		StartY:   y,
		Grounded: true,
		physics:  physics,
	}
}

// Nudge moves the player horizontally by one step in dir (-1 left, +1 right).
// Horizontal motion does not collide with anything.
func (p *Player) Nudge(dir float32) {
	p.X += dir * p.physics.MoveStep
}

// Jump launches the player upward. It has no effect while airborne.
func (p *Player) Jump() bool {
	if !p.Grounded {
		return false
	}
	p.VelocityY = p.physics.JumpSpeed
	p.Grounded = false
	return true
}

// Step advances the player by one frame: gravity, vertical motion, platform
// landing and the floor clamp. Platforms are checked in order and the first
// one the player overlaps while not moving upward wins.
func (p *Player) Step(platforms []Platform, floorY float32) {
	p.VelocityY += p.physics.Gravity
	p.Y += p.VelocityY

	p.Grounded = false
	for i := range platforms {
		plat := &platforms[i]
		if p.Intersects(&plat.Rect) && p.VelocityY >= 0 {
			p.SetBottom(plat.Y)
			p.VelocityY = 0
			p.Grounded = true
			break
		}
	}

	if p.Y >= floorY-p.Height {
		p.Y = floorY - p.Height
		p.VelocityY = 0
		p.Grounded = true
	}
}

func (p *Player) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, p.X, p.Y, p.Width, p.Height, colornames.Blue, false)
}
