package raster

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DrawString renders s with the builtin 7x13 face, p being the baseline
// origin.
func DrawString(dst draw.Image, p image.Point, c color.Color, s string) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(p.X, p.Y),
	}
	d.DrawString(s)
}

// StringWidth returns the advance of s in pixels with the builtin face.
func StringWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}
