package raster

import (
	"image"
	"image/draw"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
)

// Rotation turns rendered coordinates by a multiple of 90° to match the
// display's mounting orientation.
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// ParseRotation validates a rotation angle given on the command line.
func ParseRotation(deg int) (Rotation, errors.Error) {
	switch deg {
	case 0, 90, 180, 270:
		return Rotation(deg), nil
	}
	return 0, errors.New("rotation must be 0, 90, 180 or 270").
		With("rotation", deg).With("stack", stack.Trace().TrimRuntime())
}

// Apply maps p from render coordinates into a screen of the given bounds.
func (r Rotation) Apply(p image.Point, bounds image.Rectangle) image.Point {
	w, h := bounds.Dx(), bounds.Dy()
	switch r {
	case Rotate90:
		return image.Pt(h-1-p.Y, p.X)
	case Rotate180:
		return image.Pt(w-1-p.X, h-1-p.Y)
	case Rotate270:
		return image.Pt(p.Y, w-1-p.X)
	}
	return p
}

// RotateImage copies src into dst with the rotation applied. Both images must
// be square and share the same bounds.
func (r Rotation) RotateImage(dst draw.Image, src image.Image) {
	bounds := src.Bounds()
	if r == Rotate0 {
		draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
		return
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			p := r.Apply(image.Pt(x, y), bounds)
			dst.Set(p.X, p.Y, src.At(x, y))
		}
	}
}
