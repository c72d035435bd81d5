//go:build linux

package fbdev

import (
	"os"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	"golang.org/x/sys/unix"

	"github.com/hifiberry/pidisplay/drivers"
)

func init() {
	drivers.Register("fbdev", func(device string, req drivers.Geometry) (drivers.Surface, errors.Error) {
		return Open(device, req)
	})
}

// Surface is a memory mapped framebuffer device.
type Surface struct {
	geo  drivers.Geometry
	file *os.File
	mem  []byte
}

// Open memory maps the framebuffer device. If req specifies a geometry it is
// used as is, otherwise the geometry is probed from sysfs, falling back to
// DefaultGeometry if the probe fails. Opening fails if the device is missing
// or the caller lacks access, there is no retry.
func Open(device string, req drivers.Geometry) (*Surface, errors.Error) {
	if device == "" {
		device = "/dev/fb0"
	}

	geo := req
	if geo.Width == 0 || geo.Height == 0 {
		probed, err := ProbeGeometry(device)
		if err != nil {
			geo = drivers.DefaultGeometry
		} else {
			geo = probed
			// The kernel cannot report the channel order, so a requested
			// format of the same depth overrides the probed one.
			if req.Format.BytesPerPixel() == probed.Format.BytesPerPixel() &&
				req.Format != probed.Format {
				geo.Format = req.Format
			}
		}
	}

	file, errGo := os.OpenFile(device, os.O_RDWR, 0)
	if errGo != nil {
		err := errors.Wrap(errGo).With("device", device).
			With("stack", stack.Trace().TrimRuntime())
		if os.IsPermission(errGo) {
			return nil, err.With("hint", "add the user to the video group: sudo usermod -a -G video $USER")
		}
		return nil, err
	}

	mem, errGo := unix.Mmap(int(file.Fd()), 0, geo.BufferSize(),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if errGo != nil {
		file.Close()
		return nil, errors.Wrap(errGo).With("device", device).
			With("size", geo.BufferSize()).
			With("stack", stack.Trace().TrimRuntime())
	}

	return &Surface{geo: geo, file: file, mem: mem}, nil
}

func (s *Surface) Geometry() drivers.Geometry { return s.geo }

// WriteFrame overwrites the whole mapped region with p.
func (s *Surface) WriteFrame(p []byte) errors.Error {
	if len(p) != len(s.mem) {
		return errors.New("frame size mismatch").
			With("got", len(p)).With("want", len(s.mem)).
			With("stack", stack.Trace().TrimRuntime())
	}
	copy(s.mem, p)
	return nil
}

// Flush commits the mapped region to the device.
func (s *Surface) Flush() errors.Error {
	if errGo := unix.Msync(s.mem, unix.MS_SYNC); errGo != nil {
		return errors.Wrap(errGo).With("device", s.file.Name()).
			With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}

// Close blanks the display and releases the mapping.
func (s *Surface) Close() errors.Error {
	for i := range s.mem {
		s.mem[i] = 0
	}
	unix.Msync(s.mem, unix.MS_SYNC)
	errGo := unix.Munmap(s.mem)
	if errClose := s.file.Close(); errGo == nil {
		errGo = errClose
	}
	if errGo != nil {
		return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}
