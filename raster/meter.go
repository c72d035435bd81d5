package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/hifiberry/pidisplay/internal/num"
)

// Meter renders a VU meter needle over a meter face.
type Meter struct {
	Center   image.Point // needle pivot
	Length   int
	MinAngle float64 // degrees, 0° is vertical
	MaxAngle float64
	Width    int
	Color    color.Color
	Rotation Rotation
}

// DrawNeedle draws the needle at the given angle in degrees, clamped to the
// meter's range. Thickness comes from parallel offset lines, with a filled
// dot covering the pivot.
func (m *Meter) DrawNeedle(dst draw.Image, angleDeg float64) {
	angleDeg = num.Clamp(angleDeg, m.MinAngle, m.MaxAngle)

	rad := NeedleAngle(angleDeg)
	end := image.Pt(
		m.Center.X+int(float64(m.Length)*math.Cos(rad)),
		m.Center.Y+int(float64(m.Length)*math.Sin(rad)),
	)

	bounds := dst.Bounds()
	pivot := m.Rotation.Apply(m.Center, bounds)
	end = m.Rotation.Apply(end, bounds)

	ThickLine(dst, pivot, end, m.Width, m.Color)
	FillCircle(dst, pivot, 5, m.Color)
}

// Face draws a plain placeholder meter face: dial outline, scale marks every
// 15° and a caption. Used when no meter artwork is available.
func Face(dst draw.Image, center image.Point, radius int, dial, marks, caption color.Color) {
	Fill(dst, color.RGBA{A: 0xff})
	Outline(dst, center, radius, 2, dial)

	for deg := -90; deg <= 90; deg += 15 {
		inner := OutlinePoint(center, radius-20, float64(deg))
		outer := OutlinePoint(center, radius-10, float64(deg))
		Line(dst, inner, outer, marks)
	}

	label := "VU METER"
	DrawString(dst, image.Pt(center.X-StringWidth(label)/2, center.Y+radius+30), caption, label)
}
