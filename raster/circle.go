package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// FillCircle paints every pixel within radius r of center. Each scanline is
// filled as one horizontal span of half-chord width.
func FillCircle(dst draw.Image, center image.Point, r int, c color.Color) {
	for dy := -r; dy <= r; dy++ {
		dx := int(math.Sqrt(float64(r*r - dy*dy)))
		HLine(dst, center.X-dx, center.X+dx, center.Y+dy, c)
	}
}

// Outline draws a circle outline by sampling points every stepDeg degrees and
// connecting consecutive samples with line segments. A coarser step trades
// smoothness for speed.
func Outline(dst draw.Image, center image.Point, r int, stepDeg int, c color.Color) {
	if stepDeg <= 0 {
		stepDeg = 2
	}
	prev := OutlinePoint(center, r, 0)
	for deg := stepDeg; deg <= 360; deg += stepDeg {
		p := OutlinePoint(center, r, float64(deg))
		Line(dst, prev, p, c)
		prev = p
	}
}

// OutlinePoint returns the point on the circle at the given angle in degrees,
// 0° pointing right and angles increasing clockwise in screen space (y grows
// downwards).
func OutlinePoint(center image.Point, r int, deg float64) image.Point {
	rad := deg * math.Pi / 180
	return image.Pt(
		center.X+int(float64(r)*math.Cos(rad)),
		center.Y+int(float64(r)*math.Sin(rad)),
	)
}
