package window

import (
	"testing"

	"github.com/hifiberry/pidisplay/drivers"
	"github.com/hifiberry/pidisplay/framebuffer"
)

func TestWriteFrame(t *testing.T) {
	s, err := Open("", drivers.Geometry{Width: 4, Height: 4, Format: framebuffer.BGRA32})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	frame := make([]byte, s.Geometry().BufferSize())
	frame[0] = 0xff
	if err := s.WriteFrame(frame); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	snap := make([]byte, len(frame))
	s.snapshot(snap)
	if snap[0] != 0xff {
		t.Error("snapshot did not pick the written frame up")
	}

	if err := s.WriteFrame(frame[:8]); err == nil {
		t.Error("expected error for a short frame")
	}
}

func TestWriteAfterClose(t *testing.T) {
	s, err := Open("", drivers.Geometry{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Geometry() != drivers.DefaultGeometry {
		t.Errorf("geometry = %+v, want default", s.Geometry())
	}

	s.Close()
	if err := s.WriteFrame(make([]byte, s.Geometry().BufferSize())); err == nil {
		t.Error("expected error writing to a closed surface")
	}
}
