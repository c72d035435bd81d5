package raster

import (
	"image"
	"testing"
	"time"
)

func TestClockFaceRender(t *testing.T) {
	bounds := image.Rect(0, 0, 128, 128)
	face := NewClockFace(bounds, 120)

	img := image.NewRGBA(bounds)
	noon := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	face.Render(img, noon)

	// The center dot is drawn.
	if img.At(64, 64) != face.CenterDot {
		t.Errorf("center pixel = %v, want the center dot color", img.At(64, 64))
	}

	// At noon all hands point up. The second hand is drawn last, so the
	// column above the center shows its color.
	if img.At(64, 64-20) != face.SecondHand {
		t.Errorf("pixel above center = %v, want the second hand color", img.At(64, 64-20))
	}

	// At 3:00 the second hand is at 12 and the minute hand too, only the
	// hour hand points right.
	three := time.Date(2026, 8, 25, 3, 0, 0, 0, time.UTC)
	face.Render(img, three)
	if img.At(64+20, 64) != face.HourHand {
		t.Errorf("pixel right of center = %v, want the hour hand color", img.At(64+20, 64))
	}
}

func TestClockFaceFillsBackground(t *testing.T) {
	bounds := image.Rect(0, 0, 128, 128)
	face := NewClockFace(bounds, 60)

	img := image.NewRGBA(bounds)
	face.Render(img, time.Now())

	// Corners are far outside the dial.
	if img.At(2, 2) != face.Background {
		t.Errorf("corner pixel = %v, want the background color", img.At(2, 2))
	}
}
