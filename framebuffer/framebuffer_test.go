package framebuffer

import (
	"image"
	"image/color"
	"testing"
)

func TestFramebufferSwap(t *testing.T) {
	fb := NewFramebuffer(BGRA32, image.Rect(0, 0, 2, 2))

	first := fb.Write()
	first.Set(0, 0, color.RGBA{0xff, 0x00, 0x00, 0xff})

	next := fb.Swap()
	if next == first {
		t.Fatal("Swap returned the buffer just rendered")
	}
	if fb.Read() != first {
		t.Fatal("rendered buffer did not become the read buffer")
	}

	// The rendered pixel is visible through the read buffer.
	r, _, _, _ := fb.Read().At(0, 0).RGBA()
	if r>>8 != 0xff {
		t.Errorf("read buffer pixel = %#x, want 0xff", r>>8)
	}

	// Swapping again hands the first buffer back for rendering.
	if fb.Swap() != first {
		t.Fatal("second Swap did not return the first buffer")
	}
}

func TestFramebufferGeometry(t *testing.T) {
	bounds := image.Rect(0, 0, 720, 720)
	fb := NewFramebuffer(RGB565, bounds)
	if fb.Bounds() != bounds {
		t.Errorf("Bounds() = %v, want %v", fb.Bounds(), bounds)
	}
	if fb.Format() != RGB565 {
		t.Errorf("Format() = %v, want RGB565", fb.Format())
	}
}
