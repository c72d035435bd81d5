// Drives a double buffered framebuffer on top of a drivers.Surface and paces
// the demos' render loops.
package display

import (
	"image"
	"time"

	"github.com/karlmutch/errors"

	"github.com/hifiberry/pidisplay/drivers"
	"github.com/hifiberry/pidisplay/framebuffer"
)

// Display presents completed frames on a surface.
type Display struct {
	surface drivers.Surface
	fb      *framebuffer.Framebuffer
	start   time.Time

	rendertime, frametime time.Duration
}

func NewDisplay(s drivers.Surface) *Display {
	geo := s.Geometry()
	fb := framebuffer.NewFramebuffer(geo.Format,
		image.Rect(0, 0, geo.Width, geo.Height))
	return &Display{surface: s, fb: fb, start: time.Now()}
}

// Swap presents the buffer returned by the last call and returns the next
// framebuffer for rendering. The buffer returned by the last call becomes
// invalid. Both buffers start out black, so the first call presents a blank
// frame.
func (p *Display) Swap() (framebuffer.Image, errors.Error) {
	p.rendertime = time.Since(p.start)

	next := p.fb.Swap()
	if err := p.surface.WriteFrame(p.fb.Read().Bytes()); err != nil {
		return nil, err
	}
	if err := p.surface.Flush(); err != nil {
		return nil, err
	}

	p.frametime = time.Since(p.start)
	p.start = time.Now()

	return next, nil
}

func (p *Display) FPS() float32 {
	return 1e9 / float32(p.frametime)
}

func (p *Display) Duration() time.Duration {
	return p.rendertime
}

func (p *Display) Bounds() image.Rectangle {
	return p.fb.Bounds()
}

// Framebuffer exposes the underlying double buffer, e.g. for use as a pix
// driver.
func (p *Display) Framebuffer() *framebuffer.Framebuffer {
	return p.fb
}

// Clear blanks the display immediately, bypassing the double buffer.
func (p *Display) Clear() errors.Error {
	black := make([]byte, p.surface.Geometry().BufferSize())
	if err := p.surface.WriteFrame(black); err != nil {
		return err
	}
	return p.surface.Flush()
}

// Close blanks the display and releases the surface.
func (p *Display) Close() errors.Error {
	err := p.Clear()
	if errClose := p.surface.Close(); err == nil {
		err = errClose
	}
	return err
}
