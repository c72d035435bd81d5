package raster

import (
	"bytes"
	"image"
	"testing"
	"time"

	"github.com/hifiberry/pidisplay/framebuffer"
)

func TestVinylClassify(t *testing.T) {
	v := &Vinyl{RecordRadius: 300, LabelRadius: 60, SpindleRadius: 8, GroovePeriod: 8}

	tests := []struct {
		distance float64
		want     Band
	}{
		{0, BandSpindle},
		{8, BandSpindle},
		{9, BandLabel},
		{49, BandLabel},
		{51, BandLabelBorder},
		{60, BandLabelBorder},
		{60.5, BandGrooveDark}, // first groove starts right after the label
		{61.5, BandGrooveLight},
		{63, BandVinyl},
		{68.5, BandGrooveDark}, // grooves repeat every 8 pixels
		{299, BandVinyl},
		{301, BandBackground},
		{500, BandBackground},
	}
	for _, tc := range tests {
		if got := v.Classify(tc.distance); got != tc.want {
			t.Errorf("Classify(%v) = %v, want %v", tc.distance, got, tc.want)
		}
	}
}

func TestVinylFrameDuration(t *testing.T) {
	v := NewVinyl(framebuffer.RGBA32, image.Rect(0, 0, 64, 64), 60)

	if v.FrameCount() != 60 {
		t.Errorf("FrameCount() = %d, want 60", v.FrameCount())
	}

	// At 33⅓ RPM one revolution takes 1.8s, 30ms per frame at 60 steps.
	if got := v.FrameDuration(); got != 30*time.Millisecond {
		t.Errorf("FrameDuration() = %v, want 30ms", got)
	}
	total := v.FrameDuration() * time.Duration(v.FrameCount())
	if total != 1800*time.Millisecond {
		t.Errorf("revolution takes %v, want 1.8s", total)
	}
}

// A frame count below one clamps to a single static frame.
func TestVinylMinimumFrames(t *testing.T) {
	bounds := image.Rect(0, 0, 32, 32)
	v := NewVinyl(framebuffer.RGBA32, bounds, 0)

	if v.FrameCount() != 1 {
		t.Fatalf("FrameCount() = %d, want 1", v.FrameCount())
	}
	if v.FrameDuration() <= 0 {
		t.Errorf("FrameDuration() = %v, want positive", v.FrameDuration())
	}

	dst := framebuffer.NewImage(framebuffer.RGBA32, bounds)
	v.RenderFrame(dst, 0)
	v.RenderFrame(dst, 3)
}

func TestVinylRenderFrame(t *testing.T) {
	bounds := image.Rect(0, 0, 128, 128)
	v := NewVinyl(framebuffer.RGBA32, bounds, 4)
	v2 := NewVinyl(framebuffer.RGBA32, bounds, 4)

	a := framebuffer.NewImage(framebuffer.RGBA32, bounds)
	b := framebuffer.NewImage(framebuffer.RGBA32, bounds)

	v.RenderFrame(a, 0)
	v2.RenderFrame(b, 0)
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("same frame rendered differently")
	}

	v.RenderFrame(b, 1)
	if bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("consecutive frames are identical, marks did not rotate")
	}

	// Frame indices wrap around the precomputed set.
	v.RenderFrame(a, 5)
	v.RenderFrame(b, 1)
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("frame index did not wrap")
	}
}
