package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"
)

// ClockFace renders an analog clock with hour, minute and a smoothly moving
// second hand.
type ClockFace struct {
	Center image.Point
	Radius int

	Background  color.Color
	Face        color.Color
	Border      color.Color
	HourMarks   color.Color
	MinuteMarks color.Color
	HourHand    color.Color
	MinuteHand  color.Color
	SecondHand  color.Color
	CenterDot   color.Color
}

// NewClockFace returns a clock face centered in bounds with the classic
// black-on-white look.
func NewClockFace(bounds image.Rectangle, diameter int) *ClockFace {
	return &ClockFace{
		Center:      image.Pt(bounds.Dx()/2, bounds.Dy()/2),
		Radius:      diameter / 2,
		Background:  color.RGBA{A: 0xff},
		Face:        color.RGBA{0xff, 0xff, 0xff, 0xff},
		Border:      color.RGBA{0x32, 0x32, 0x32, 0xff},
		HourMarks:   color.RGBA{A: 0xff},
		MinuteMarks: color.RGBA{0x64, 0x64, 0x64, 0xff},
		HourHand:    color.RGBA{A: 0xff},
		MinuteHand:  color.RGBA{A: 0xff},
		SecondHand:  color.RGBA{0xff, 0x00, 0x00, 0xff},
		CenterDot:   color.RGBA{A: 0xff},
	}
}

// Render draws the complete clock for the given time, overwriting the whole
// image.
func (f *ClockFace) Render(dst draw.Image, now time.Time) {
	Fill(dst, f.Background)

	Outline(dst, f.Center, f.Radius+2, 2, f.Border)
	Outline(dst, f.Center, f.Radius, 2, f.Face)

	f.drawMarks(dst)

	seconds := float64(now.Second()) + float64(now.Nanosecond())/1e9
	hour := HourAngle(float64(now.Hour()), float64(now.Minute()), seconds)
	minute := MinuteAngle(float64(now.Minute()), seconds)
	second := SecondAngle(seconds)

	// Back to front: hour, minute, second.
	Hand(dst, f.Center, hour, f.Radius/2, 6, f.HourHand)
	Hand(dst, f.Center, minute, f.Radius*7/10, 4, f.MinuteHand)
	Hand(dst, f.Center, second, f.Radius*4/5, 2, f.SecondHand)

	FillCircle(dst, f.Center, 8, f.CenterDot)
}

func (f *ClockFace) drawMarks(dst draw.Image) {
	for hour := 0; hour < 12; hour++ {
		angle := float64(hour)*math.Pi/6 - math.Pi/2
		outer := f.radialPoint(angle, f.Radius-20)
		inner := f.radialPoint(angle, f.Radius-50)
		for offset := -1; offset <= 1; offset++ {
			Line(dst, inner.Add(image.Pt(offset, 0)), outer.Add(image.Pt(offset, 0)), f.HourMarks)
		}
	}

	// Quarter hours are skipped, the hour marks already cover them.
	for minute := 0; minute < 60; minute += 5 {
		if minute%15 == 0 {
			continue
		}
		angle := float64(minute)*math.Pi/30 - math.Pi/2
		outer := f.radialPoint(angle, f.Radius-10)
		inner := f.radialPoint(angle, f.Radius-25)
		Line(dst, inner, outer, f.MinuteMarks)
	}
}

func (f *ClockFace) radialPoint(angle float64, r int) image.Point {
	return image.Pt(
		f.Center.X+int(float64(r)*math.Cos(angle)),
		f.Center.Y+int(float64(r)*math.Sin(angle)),
	)
}
