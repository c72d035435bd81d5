package raster

import (
	"image"
	"image/color"
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/hifiberry/pidisplay/framebuffer"
)

// Band classifies a pixel of the vinyl pattern by its distance from the
// record's center.
type Band int

const (
	BandSpindle Band = iota
	BandLabel
	BandLabelBorder
	BandGrooveDark
	BandGrooveLight
	BandVinyl
	BandBackground
)

// Vinyl renders a spinning record. The static pattern is rasterized once per
// pixel format, rotation is simulated by overlaying precomputed radial marks,
// one set per discrete rotation step, instead of redrawing the geometry every
// frame.
type Vinyl struct {
	Bounds        image.Rectangle
	RecordRadius  int
	LabelRadius   int
	SpindleRadius int
	GroovePeriod  int
	RPM           float64

	base  framebuffer.Image
	marks [][]image.Point
	mark  color.Color
}

// NewVinyl precomputes the base pattern in the given pixel format and the
// rotation marks for the given number of frames per revolution.
func NewVinyl(f framebuffer.PixelFormat, bounds image.Rectangle, frames int) *Vinyl {
	if frames < 1 {
		frames = 1
	}
	v := &Vinyl{
		Bounds:        bounds,
		RecordRadius:  300,
		LabelRadius:   60,
		SpindleRadius: 8,
		GroovePeriod:  8,
		RPM:           100.0 / 3, // 33⅓ RPM
	}

	vinylDark := colorful.Color{R: 20.0 / 255, G: 20.0 / 255, B: 20.0 / 255}
	white := colorful.Color{R: 1, G: 1, B: 1}
	shades := map[Band]color.Color{
		BandSpindle:     color.RGBA{A: 0xff},
		BandLabel:       color.RGBA{150, 30, 30, 0xff},
		BandLabelBorder: color.RGBA{200, 200, 200, 0xff},
		BandGrooveDark:  toRGBA(vinylDark.BlendRgb(white, -0.04)),
		BandGrooveLight: toRGBA(vinylDark.BlendRgb(white, 0.06)),
		BandVinyl:       toRGBA(vinylDark),
		BandBackground:  color.RGBA{A: 0xff},
	}
	v.mark = toRGBA(vinylDark.BlendRgb(white, 0.17))

	v.base = framebuffer.NewImage(f, bounds)
	center := v.center()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			distance := math.Hypot(float64(x-center.X), float64(y-center.Y))
			v.base.Set(x, y, shades[v.Classify(distance)])
		}
	}

	v.marks = make([][]image.Point, frames)
	for frame := range v.marks {
		v.marks[frame] = v.rotationMarks(frame, frames)
	}

	return v
}

// Classify maps a distance from the record's center to its band.
func (v *Vinyl) Classify(distance float64) Band {
	switch {
	case distance <= float64(v.SpindleRadius):
		return BandSpindle
	case distance <= float64(v.LabelRadius-10):
		return BandLabel
	case distance <= float64(v.LabelRadius):
		return BandLabelBorder
	case distance <= float64(v.RecordRadius):
		groove := math.Mod(distance-float64(v.LabelRadius), float64(v.GroovePeriod))
		switch {
		case groove < 1:
			return BandGrooveDark
		case groove < 2:
			return BandGrooveLight
		}
		return BandVinyl
	}
	return BandBackground
}

// rotationMarks samples twelve radial marks, every 30°, rotated to the given
// frame's angle.
func (v *Vinyl) rotationMarks(frame, frames int) []image.Point {
	center := v.center()
	rotation := float64(frame) / float64(frames) * 2 * math.Pi

	marks := make([]image.Point, 0, 12*(v.RecordRadius-v.LabelRadius)/3)
	for deg := 0; deg < 360; deg += 30 {
		angle := float64(deg)*math.Pi/180 + rotation
		for r := v.LabelRadius + 5; r < v.RecordRadius-20; r += 3 {
			p := image.Pt(
				center.X+int(float64(r)*math.Cos(angle)),
				center.Y+int(float64(r)*math.Sin(angle)),
			)
			if p.In(v.Bounds) {
				marks = append(marks, p)
			}
		}
	}
	return marks
}

// FrameCount returns the number of precomputed rotation steps.
func (v *Vinyl) FrameCount() int { return len(v.marks) }

// FrameDuration returns how long one rotation step is shown at the
// configured turntable speed.
func (v *Vinyl) FrameDuration() time.Duration {
	perRevolution := time.Duration(60 / v.RPM * float64(time.Second))
	return perRevolution / time.Duration(len(v.marks))
}

// RenderFrame draws rotation step idx. dst must have the same bounds and
// format the pattern was precomputed with.
func (v *Vinyl) RenderFrame(dst framebuffer.Image, idx int) {
	copy(dst.Bytes(), v.base.Bytes())
	for _, p := range v.marks[idx%len(v.marks)] {
		dst.Set(p.X, p.Y, v.mark)
	}
}

func (v *Vinyl) center() image.Point {
	return image.Pt(v.Bounds.Dx()/2, v.Bounds.Dy()/2)
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{r, g, b, 0xff}
}
