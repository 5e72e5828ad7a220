/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package render turns server snapshots into draw calls on a Canvas.
package render

import (
	"image/color"
	"strconv"

	"github.com/Seednode/pong/internal/pong"
)

const (
	dividerWidth = 2
	dividerDash  = 10

	labelOffsetX = 15
	scoreY       = 30
	labelRunes   = 8
)

var (
	Background   = color.Black
	DividerColor = color.RGBA{0x33, 0x33, 0x33, 0xff}
	BallColor    = color.White
	PaddleColor  = color.RGBA{0x00, 0xff, 0x00, 0xff}
	LabelColor   = color.White
)

// Canvas is a drawing surface in table coordinates. Text is positioned by its
// baseline.
type Canvas interface {
	Clear()
	DashedLine(x0, y0, x1, y1, width, dash float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	Text(s string, x, y float64, c color.Color)
}

// Draw repaints the whole canvas from s. A nil snapshot leaves only the
// center divider. Draw keeps no state and never modifies s.
func Draw(c Canvas, s *pong.Snapshot) {
	c.Clear()

	c.DashedLine(pong.TableWidth/2, 0, pong.TableWidth/2, pong.TableHeight, dividerWidth, dividerDash, DividerColor)

	if s == nil {
		return
	}

	c.FillCircle(s.Ball.X, s.Ball.Y, pong.BallRadius, BallColor)

	for i, p := range s.Players {
		x := pong.PaddleX(i)

		c.FillRect(x, p.Y-pong.PaddleHeight/2, pong.PaddleWidth, pong.PaddleHeight, PaddleColor)

		c.Text(Label(p), x+labelOffsetX, p.Y, LabelColor)
		c.Text(ScoreLabel(p.Score), x+labelOffsetX, scoreY, LabelColor)
	}
}

// Label is the short tag drawn next to a paddle: the first eight characters
// of the player's address, or of the player id when the server sent no
// address.
func Label(p pong.PlayerEntry) string {
	name := p.IP
	if name == "" {
		name = p.ID
	}

	runes := []rune(name)
	if len(runes) > labelRunes {
		runes = runes[:labelRunes]
	}

	return string(runes) + "..."
}

func ScoreLabel(score int) string {
	return "Score: " + strconv.Itoa(score)
}
