package fbdev

import (
	"testing"

	"github.com/hifiberry/pidisplay/framebuffer"
)

func TestParseVirtualSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"720,720\n", 720, 720, false},
		{"1920,1080", 1920, 1080, false},
		{" 800 , 480 ", 800, 480, false},
		{"720", 0, 0, true},
		{"720,720,32", 0, 0, true},
		{"0,720", 0, 0, true},
		{"720,abc", 0, 0, true},
		{"", 0, 0, true},
	}
	for _, tc := range tests {
		w, h, err := parseVirtualSize(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseVirtualSize(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseVirtualSize(%q): %v", tc.in, err)
			continue
		}
		if w != tc.w || h != tc.h {
			t.Errorf("parseVirtualSize(%q) = %d,%d, want %d,%d", tc.in, w, h, tc.w, tc.h)
		}
	}
}

func TestFormatForDepth(t *testing.T) {
	tests := []struct {
		in      string
		want    framebuffer.PixelFormat
		wantErr bool
	}{
		{"16", framebuffer.RGB565, false},
		{"24", framebuffer.RGB24, false},
		{"32", framebuffer.BGRA32, false},
		{"8", 0, true},
		{"abc", 0, true},
	}
	for _, tc := range tests {
		format, err := formatForDepth(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("formatForDepth(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("formatForDepth(%q): %v", tc.in, err)
			continue
		}
		if format != tc.want {
			t.Errorf("formatForDepth(%q) = %v, want %v", tc.in, format, tc.want)
		}
	}
}

func TestProbeGeometryMissingDevice(t *testing.T) {
	if _, err := ProbeGeometry("/dev/fb99"); err == nil {
		t.Error("expected error for a device without sysfs entries")
	}
}
