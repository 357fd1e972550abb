package main

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/potato/system"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	outcomeFontSize = 56
	buttonFontSize  = 28
)

// HUD draws the countdown while playing and the outcome screen once a
// session has ended.
type HUD struct {
	outcomeFace text.Face
	buttonFace  text.Face
	timerFace   text.Face
}

func NewHUD() (*HUD, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("hud: load font: %w", err)
	}
	return &HUD{
		outcomeFace: &text.GoTextFace{Source: src, Size: outcomeFontSize},
		buttonFace:  &text.GoTextFace{Source: src, Size: buttonFontSize},
		timerFace:   text.NewGoXFace(basicfont.Face7x13),
	}, nil
}

func (h *HUD) DrawTimer(screen *ebiten.Image, s *system.Session) {
	secs := int(math.Ceil(s.Remaining().Seconds()))
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 4)
	op.ColorScale.ScaleWithColor(colornames.Black)
	text.Draw(screen, fmt.Sprintf("Time: %d", secs), h.timerFace, op)
}

func (h *HUD) DrawOutcome(screen *ebiten.Image, s *system.Session) {
	win := s.Spec.Window
	msg, col := s.Spec.Messages.Failed, color.Color(colornames.Red)
	if s.Outcome == system.OutcomeSaved {
		msg, col = s.Spec.Messages.Saved, colornames.Lime
	}
	drawCentered(screen, msg, h.outcomeFace, float64(win.Width)/2, float64(win.Height)/2, col)

	btn := s.RestartButton()
	vector.FillRect(screen, btn.X, btn.Y, btn.Width, btn.Height, colornames.Lime, false)
	drawCentered(screen, s.Spec.RestartButton.Label, h.buttonFace,
		float64(btn.X+btn.Width/2), float64(btn.Y+btn.Height/2), colornames.White)
}

func drawCentered(screen *ebiten.Image, msg string, face text.Face, x, y float64, col color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, msg, face, op)
}
