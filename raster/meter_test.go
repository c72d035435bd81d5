package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestDrawNeedle(t *testing.T) {
	red := color.RGBA{0xff, 0x00, 0x00, 0xff}
	m := &Meter{
		Center:   image.Pt(64, 100),
		Length:   50,
		MinAngle: -35,
		MaxAngle: 18,
		Width:    3,
		Color:    red,
	}

	img := image.NewRGBA(image.Rect(0, 0, 128, 128))
	m.DrawNeedle(img, 0)

	// At 0° the needle points straight up from the pivot.
	if img.At(64, 100) != red {
		t.Error("pivot not drawn")
	}
	if img.At(64, 60) != red {
		t.Error("needle does not reach upwards")
	}

	// Angles outside the range clamp to the end stops, a huge angle must
	// not point past MaxAngle.
	clamped := image.NewRGBA(image.Rect(0, 0, 128, 128))
	m.DrawNeedle(clamped, 90)
	atMax := image.NewRGBA(image.Rect(0, 0, 128, 128))
	m.DrawNeedle(atMax, m.MaxAngle)
	for i := range clamped.Pix {
		if clamped.Pix[i] != atMax.Pix[i] {
			t.Fatal("needle at 90° differs from needle at MaxAngle")
		}
	}
}

func TestDrawNeedleRotated(t *testing.T) {
	red := color.RGBA{0xff, 0x00, 0x00, 0xff}
	m := &Meter{
		Center:   image.Pt(64, 100),
		Length:   50,
		MinAngle: -90,
		MaxAngle: 90,
		Width:    1,
		Color:    red,
		Rotation: Rotate180,
	}

	img := image.NewRGBA(image.Rect(0, 0, 128, 128))
	m.DrawNeedle(img, 0)

	// Rotated by 180° the pivot lands at (w-1-64, h-1-100) and the needle
	// points down from there.
	if img.At(63, 27) != red {
		t.Error("rotated pivot not drawn")
	}
	if img.At(63, 67) != red {
		t.Error("rotated needle does not point downwards")
	}
}

func TestFace(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 128, 128))
	dial := color.RGBA{0xc8, 0xc8, 0xc8, 0xff}
	Face(img, image.Pt(64, 64), 50, dial,
		color.RGBA{0x96, 0x96, 0x96, 0xff}, color.RGBA{0xff, 0xff, 0xff, 0xff})

	if img.At(64+50, 64) != dial {
		t.Error("dial outline not drawn at the radius")
	}
	if img.At(64, 64) != (color.RGBA{0x00, 0x00, 0x00, 0xff}) {
		t.Error("face center not blanked")
	}
}
