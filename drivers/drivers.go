// Provides access to display devices through a common Surface interface.
// Concrete backends register themselves under a name and are selected at
// startup, so the render loops never care what kind of device they draw to.
package drivers

import (
	"sort"
	"sync"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/hifiberry/pidisplay/framebuffer"
)

// Geometry describes a display device's pixel buffer.
type Geometry struct {
	Width  int
	Height int
	Format framebuffer.PixelFormat
}

// DefaultGeometry is used whenever a device's real geometry cannot be
// determined.
var DefaultGeometry = Geometry{Width: 720, Height: 720, Format: framebuffer.BGRA32}

// BufferSize returns the length in bytes of one full frame.
func (g Geometry) BufferSize() int {
	return g.Width * g.Height * g.Format.BytesPerPixel()
}

// Surface is an open display device. A frame written to it must have exactly
// BufferSize bytes in the device's pixel encoding, and always overwrites the
// previous frame completely.
type Surface interface {
	Geometry() Geometry
	WriteFrame(p []byte) errors.Error
	Flush() errors.Error
	Close() errors.Error
}

// OpenFunc opens a backend's surface. The device string and the requested
// geometry are interpreted by the backend, both may be left zero for the
// backend's defaults.
type OpenFunc func(device string, req Geometry) (Surface, errors.Error)

var (
	backendsMu sync.Mutex
	backends   = map[string]OpenFunc{}
)

// Register makes a surface backend available under the given name. It is
// meant to be called from a backend package's init.
func Register(name string, open OpenFunc) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = open
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open opens the named backend's surface.
func Open(backend, device string, req Geometry) (Surface, errors.Error) {
	backendsMu.Lock()
	open, ok := backends[backend]
	backendsMu.Unlock()
	if !ok {
		return nil, errors.New("unknown display backend").
			With("backend", backend).With("known", Backends()).
			With("stack", stack.Trace().TrimRuntime())
	}
	return open(device, req)
}
