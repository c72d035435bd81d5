package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Hand draws a radial hand from center at the given angle in radians (math
// convention, y-down screen space).
func Hand(dst draw.Image, center image.Point, angle float64, length, width int, c color.Color) {
	end := image.Pt(
		center.X+int(float64(length)*math.Cos(angle)),
		center.Y+int(float64(length)*math.Sin(angle)),
	)
	ThickLine(dst, center, end, width, c)
}
