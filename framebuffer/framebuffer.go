package framebuffer

import (
	"image"
	"image/draw"
)

// Image is a drawable pixel buffer whose raw bytes are laid out in a device
// pixel encoding.
type Image interface {
	draw.Image
	Bytes() []byte
	Format() PixelFormat
}

// Framebuffer is a double buffered render target. Rendering goes to the write
// buffer while the read buffer holds the last completed frame, so a surface
// can present it without observing a half drawn frame.
type Framebuffer struct {
	bufs        [2]Image
	read, write Image
	fill        image.Uniform
}

func NewFramebuffer(f PixelFormat, r image.Rectangle) *Framebuffer {
	fb := &Framebuffer{}
	for i := range fb.bufs {
		fb.bufs[i] = NewImage(f, r)
	}
	fb.write = fb.bufs[0]
	fb.read = fb.bufs[1]
	return fb
}

// Swap makes the current write buffer the read buffer and returns the next
// buffer for rendering. The buffer returned by the last call becomes invalid.
func (fb *Framebuffer) Swap() Image {
	fb.read, fb.write = fb.write, fb.read
	return fb.write
}

// Read returns the last completed frame.
func (fb *Framebuffer) Read() Image { return fb.read }

// Write returns the buffer currently being rendered to.
func (fb *Framebuffer) Write() Image { return fb.write }

func (fb *Framebuffer) Bounds() image.Rectangle {
	return fb.write.Bounds()
}

func (fb *Framebuffer) Format() PixelFormat {
	return fb.write.Format()
}
