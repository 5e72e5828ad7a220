/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Seednode/pong/internal/pong"
)

// ImageCanvas draws into an in-memory RGBA image.
type ImageCanvas struct {
	img  *image.RGBA
	face font.Face
}

func NewImageCanvas(width, height int) *ImageCanvas {
	return &ImageCanvas{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		face: basicfont.Face7x13,
	}
}

func (c *ImageCanvas) Image() *image.RGBA {
	return c.img
}

func (c *ImageCanvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
}

func (c *ImageCanvas) DashedLine(x0, y0, x1, y1, width, dash float64, col color.Color) {
	dx, dy := x1-x0, y1-y0

	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}

	src := image.NewUniform(col)
	half := width / 2

	for d := 0.0; d <= length; d++ {
		if dash > 0 && int(d/dash)%2 == 1 {
			continue
		}

		x := x0 + dx*d/length
		y := y0 + dy*d/length

		r := image.Rect(
			int(math.Floor(x-half)), int(math.Floor(y-half)),
			int(math.Ceil(x+half)), int(math.Ceil(y+half)),
		)
		draw.Draw(c.img, r, src, image.Point{}, draw.Over)
	}
}

func (c *ImageCanvas) FillCircle(cx, cy, r float64, col color.Color) {
	for py := int(math.Floor(cy - r)); py <= int(math.Ceil(cy+r)); py++ {
		for px := int(math.Floor(cx - r)); px <= int(math.Ceil(cx+r)); px++ {
			fx := float64(px) + 0.5 - cx
			fy := float64(py) + 0.5 - cy

			if fx*fx+fy*fy <= r*r {
				c.img.Set(px, py, col)
			}
		}
	}
}

func (c *ImageCanvas) FillRect(x, y, w, h float64, col color.Color) {
	r := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	)

	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *ImageCanvas) Text(s string, x, y float64, col color.Color) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.P(int(math.Round(x)), int(math.Round(y))),
	}

	d.DrawString(s)
}

// EncodePNG writes the canvas as a PNG. A scale other than 1 resizes the
// output with bilinear filtering.
func (c *ImageCanvas) EncodePNG(w io.Writer, scale float64) error {
	if scale <= 0 || scale == 1 {
		return png.Encode(w, c.img)
	}

	b := c.img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0,
		max(1, int(math.Round(float64(b.Dx())*scale))),
		max(1, int(math.Round(float64(b.Dy())*scale)))))

	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), c.img, b, draw.Src, nil)

	return png.Encode(w, dst)
}

// Snapshot renders s on a fresh table-sized canvas.
func Snapshot(s *pong.Snapshot) *ImageCanvas {
	c := NewImageCanvas(pong.TableWidth, pong.TableHeight)
	Draw(c, s)

	return c
}
