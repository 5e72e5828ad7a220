/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package display

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Seednode/pong/internal/render"
)

// Canvas draws onto an ebiten image in table coordinates.
type Canvas struct {
	dst  *ebiten.Image
	face text.Face
}

func NewCanvas(dst *ebiten.Image) *Canvas {
	return &Canvas{
		dst:  dst,
		face: text.NewGoXFace(basicfont.Face7x13),
	}
}

func (c *Canvas) Clear() {
	c.dst.Fill(render.Background)
}

func (c *Canvas) DashedLine(x0, y0, x1, y1, width, dash float64, col color.Color) {
	dx, dy := x1-x0, y1-y0

	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	if dash <= 0 {
		dash = length
	}

	ux, uy := dx/length, dy/length

	for d := 0.0; d < length; d += 2 * dash {
		end := math.Min(d+dash, length)

		vector.StrokeLine(c.dst,
			float32(x0+ux*d), float32(y0+uy*d),
			float32(x0+ux*end), float32(y0+uy*end),
			float32(width), col, false)
	}
}

func (c *Canvas) FillCircle(cx, cy, r float64, col color.Color) {
	vector.DrawFilledCircle(c.dst, float32(cx), float32(cy), float32(r), col, true)
}

func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	vector.DrawFilledRect(c.dst, float32(x), float32(y), float32(w), float32(h), col, false)
}

func (c *Canvas) Text(s string, x, y float64, col color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-c.face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(col)

	text.Draw(c.dst, s, c.face, op)
}
