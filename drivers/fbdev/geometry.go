// Direct access to Linux framebuffer devices (/dev/fbN) via mmap.
package fbdev

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/hifiberry/pidisplay/drivers"
	"github.com/hifiberry/pidisplay/framebuffer"
)

const sysfsGraphics = "/sys/class/graphics"

// ProbeGeometry reads a framebuffer's geometry from sysfs, e.g.
// /sys/class/graphics/fb0/{virtual_size,bits_per_pixel} for /dev/fb0.
//
// The kernel reports no channel order for 32bpp devices, BGRA is assumed
// because it matches the common ARM layout. Callers with true RGBA hardware
// must override the format in the requested geometry.
func ProbeGeometry(device string) (drivers.Geometry, errors.Error) {
	name := filepath.Base(device)

	size, errGo := os.ReadFile(filepath.Join(sysfsGraphics, name, "virtual_size"))
	if errGo != nil {
		return drivers.Geometry{}, errors.Wrap(errGo).With("device", device).
			With("stack", stack.Trace().TrimRuntime())
	}
	w, h, err := parseVirtualSize(string(size))
	if err != nil {
		return drivers.Geometry{}, err.With("device", device)
	}

	bits, errGo := os.ReadFile(filepath.Join(sysfsGraphics, name, "bits_per_pixel"))
	if errGo != nil {
		return drivers.Geometry{}, errors.Wrap(errGo).With("device", device).
			With("stack", stack.Trace().TrimRuntime())
	}
	format, err := formatForDepth(strings.TrimSpace(string(bits)))
	if err != nil {
		return drivers.Geometry{}, err.With("device", device)
	}

	return drivers.Geometry{Width: w, Height: h, Format: format}, nil
}

func parseVirtualSize(s string) (w, h int, err errors.Error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return 0, 0, errors.New("malformed virtual_size").With("value", s).
			With("stack", stack.Trace().TrimRuntime())
	}
	w, errGo := strconv.Atoi(strings.TrimSpace(parts[0]))
	if errGo == nil {
		h, errGo = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	if errGo != nil || w <= 0 || h <= 0 {
		return 0, 0, errors.New("malformed virtual_size").With("value", s).
			With("stack", stack.Trace().TrimRuntime())
	}
	return w, h, nil
}

func formatForDepth(s string) (framebuffer.PixelFormat, errors.Error) {
	bpp, errGo := strconv.Atoi(s)
	if errGo != nil {
		return 0, errors.Wrap(errGo).With("bits_per_pixel", s).
			With("stack", stack.Trace().TrimRuntime())
	}
	switch bpp {
	case 16:
		return framebuffer.RGB565, nil
	case 24:
		return framebuffer.RGB24, nil
	case 32:
		return framebuffer.BGRA32, nil
	}
	return 0, errors.New("unsupported color depth").With("bits_per_pixel", bpp).
		With("stack", stack.Trace().TrimRuntime())
}
