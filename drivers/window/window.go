// Desktop preview surface that shows frames in an ebiten window. Useful for
// developing the demos on a workstation without a framebuffer device.
package window

import (
	"image"
	"sync"

	"github.com/go-stack/stack"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/karlmutch/errors"

	"github.com/hifiberry/pidisplay/drivers"
	"github.com/hifiberry/pidisplay/framebuffer"
)

func init() {
	drivers.Register("window", func(device string, req drivers.Geometry) (drivers.Surface, errors.Error) {
		return Open(device, req)
	})
}

// Surface buffers the latest presented frame for the window to pick up. The
// render loop runs on its own goroutine and writes frames through the
// drivers.Surface interface while Run blocks the main goroutine on the
// window's event loop.
type Surface struct {
	geo drivers.Geometry

	mu     sync.Mutex
	frame  []byte
	closed bool
}

// Open creates a window surface. The device string is unused. A zero req
// selects DefaultGeometry.
func Open(_ string, req drivers.Geometry) (*Surface, errors.Error) {
	geo := req
	if geo.Width == 0 || geo.Height == 0 {
		geo = drivers.DefaultGeometry
	}
	return &Surface{
		geo:   geo,
		frame: make([]byte, geo.BufferSize()),
	}, nil
}

func (s *Surface) Geometry() drivers.Geometry { return s.geo }

func (s *Surface) WriteFrame(p []byte) errors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("window closed").With("stack", stack.Trace().TrimRuntime())
	}
	if len(p) != len(s.frame) {
		return errors.New("frame size mismatch").
			With("got", len(p)).With("want", len(s.frame)).
			With("stack", stack.Trace().TrimRuntime())
	}
	copy(s.frame, p)
	return nil
}

func (s *Surface) Flush() errors.Error { return nil }

// Close requests the window's event loop to terminate.
func (s *Surface) Close() errors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Surface) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Surface) snapshot(dst []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(dst, s.frame)
}

// Run opens the window and blocks until it is closed or the surface is
// closed. Must be called from the main goroutine.
func (s *Surface) Run(title string) errors.Error {
	g := &game{surface: s}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(s.geo.Width, s.geo.Height)
	ebiten.SetTPS(60)
	if errGo := ebiten.RunGame(g); errGo != nil && errGo != ebiten.Termination {
		return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}

type game struct {
	surface *Surface
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	view    framebuffer.Image
}

func (g *game) Update() error {
	if g.surface.isClosed() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	geo := g.surface.geo
	if g.img == nil {
		bounds := image.Rect(0, 0, geo.Width, geo.Height)
		g.img = image.NewRGBA(bounds)
		g.scratch = make([]byte, geo.BufferSize())
		g.fbImg = ebiten.NewImage(geo.Width, geo.Height)
		g.view = frameView(geo, g.scratch)
	}

	g.surface.snapshot(g.scratch)

	for y := 0; y < geo.Height; y++ {
		for x := 0; x < geo.Width; x++ {
			g.img.Set(x, y, g.view.At(x, y))
		}
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.surface.geo.Width, g.surface.geo.Height
}

// frameView wraps raw device bytes in the matching image type for decoding.
func frameView(geo drivers.Geometry, pix []byte) framebuffer.Image {
	bounds := image.Rect(0, 0, geo.Width, geo.Height)
	switch geo.Format {
	case framebuffer.RGB565:
		return &framebuffer.RGB565Image{Pix: pix, Stride: 2 * geo.Width, Rect: bounds}
	case framebuffer.RGB24:
		return &framebuffer.RGB24Image{Pix: pix, Stride: 3 * geo.Width, Rect: bounds}
	case framebuffer.BGRA32:
		return &framebuffer.BGRA32Image{Pix: pix, Stride: 4 * geo.Width, Rect: bounds}
	default:
		return &framebuffer.RGBA32Image{RGBA: image.RGBA{Pix: pix, Stride: 4 * geo.Width, Rect: bounds}}
	}
}
