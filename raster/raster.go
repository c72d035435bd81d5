// Package raster renders the demos' shapes directly into drawable images:
// circles, clock hands, meter needles and the vinyl groove pattern. All
// drawing is opaque single pass work without anti-aliasing, fast enough for
// per-frame use on small displays.
package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/hifiberry/pidisplay/internal/num"
)

// Fill paints the whole image with c.
func Fill(dst draw.Image, c color.Color) {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
}

// HLine paints the horizontal span [x0, x1] on scanline y, clipped to dst.
func HLine(dst draw.Image, x0, x1, y int, c color.Color) {
	bounds := dst.Bounds()
	if y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x1 < bounds.Min.X || x0 >= bounds.Max.X {
		return
	}
	x0 = num.Clamp(x0, bounds.Min.X, bounds.Max.X-1)
	x1 = num.Clamp(x1, bounds.Min.X, bounds.Max.X-1)
	for x := x0; x <= x1; x++ {
		dst.Set(x, y, c)
	}
}

// Line draws a straight line from p0 to p1 using Bresenham's algorithm.
func Line(dst draw.Image, p0, p1 image.Point, c color.Color) {
	dx := num.Abs(p1.X - p0.X)
	dy := -num.Abs(p1.Y - p0.Y)
	sx, sy := 1, 1
	if p0.X > p1.X {
		sx = -1
	}
	if p0.Y > p1.Y {
		sy = -1
	}
	err := dx + dy

	x, y := p0.X, p0.Y
	for {
		dst.Set(x, y, c)
		if x == p1.X && y == p1.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// ThickLine simulates line width by drawing parallel lines offset along both
// axes. Cheap, but the effective width varies slightly with the line's
// steepness.
func ThickLine(dst draw.Image, p0, p1 image.Point, width int, c color.Color) {
	if width <= 1 {
		Line(dst, p0, p1, c)
		return
	}
	half := width / 2
	for offset := -half; offset <= half; offset++ {
		Line(dst, image.Pt(p0.X+offset, p0.Y), image.Pt(p1.X+offset, p1.Y), c)
		Line(dst, image.Pt(p0.X, p0.Y+offset), image.Pt(p1.X, p1.Y+offset), c)
	}
}
