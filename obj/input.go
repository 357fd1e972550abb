package obj

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const stickDeadzone = 0.3

// Input holds the input state sampled for the current frame.
type Input struct {
	// Left and Right are true while the matching direction is held.
	Left, Right bool
	// Jump is true while the jump key is held down.
	Jump bool
	// Click is true on the frame any mouse button was pressed.
	Click bool
	// CursorX/Y are the cursor position in logical screen pixels.
	CursorX, CursorY float32
	// PausePressed is true on the frame the pause key was pressed.
	PausePressed bool
	// QuitPressed is true on the frame the quit key was pressed.
	QuitPressed bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls keyboard, mouse and the first gamepad.
func (i *Input) Update() {
	i.Left = ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA)
	i.Right = ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD)
	i.Jump = ebiten.IsKeyPressed(ebiten.KeySpace)
	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	i.QuitPressed = inpututil.IsKeyJustPressed(ebiten.KeyF12)

	mx, my := ebiten.CursorPosition()
	i.CursorX = float32(mx)
	i.CursorY = float32(my)
	i.Click = anyMouseButton(inpututil.IsMouseButtonJustPressed)

	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]
		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			i.Left = i.Left || leftX < 0
			i.Right = i.Right || leftX > 0
		}
		i.Left = i.Left || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft)
		i.Right = i.Right || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight)
		i.Jump = i.Jump || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		i.PausePressed = i.PausePressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
	}
}

func anyMouseButton(pressed func(ebiten.MouseButton) bool) bool {
	for b := ebiten.MouseButton0; b <= ebiten.MouseButtonMax; b++ {
		if pressed(b) {
			return true
		}
	}
	return false
}
