package framebuffer

import (
	"image"
	"image/color"
)

// PixelFormat is the native pixel encoding of a display device.
type PixelFormat int

const (
	RGB565 PixelFormat = iota // 16bpp, little-endian rrrrrggggggbbbbb
	RGB24                     // 24bpp, r g b
	BGRA32                    // 32bpp, b g r a, common ARM framebuffer layout
	RGBA32                    // 32bpp, r g b a
)

func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case RGB565:
		return 2
	case RGB24:
		return 3
	default:
		return 4
	}
}

func (f PixelFormat) String() string {
	switch f {
	case RGB565:
		return "RGB565"
	case RGB24:
		return "RGB24"
	case BGRA32:
		return "BGRA32"
	case RGBA32:
		return "RGBA32"
	}
	return "unknown"
}

// Encode writes c in the receiver's encoding to dst, which must hold at least
// BytesPerPixel bytes. Alpha is forced to 255, there is no blending.
func (f PixelFormat) Encode(dst []byte, c color.Color) {
	r, g, b, _ := c.RGBA()
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
	switch f {
	case RGB565:
		v := uint16(r8>>3)<<11 | uint16(g8>>2)<<5 | uint16(b8>>3)
		dst[0] = uint8(v)
		dst[1] = uint8(v >> 8)
	case RGB24:
		dst[0], dst[1], dst[2] = r8, g8, b8
	case BGRA32:
		dst[0], dst[1], dst[2], dst[3] = b8, g8, r8, 0xff
	case RGBA32:
		dst[0], dst[1], dst[2], dst[3] = r8, g8, b8, 0xff
	}
}

// NewImage returns a drawable image whose Pix layout matches the format's
// device encoding, so the buffer can be handed to the device verbatim.
func NewImage(f PixelFormat, r image.Rectangle) Image {
	switch f {
	case RGB565:
		return NewRGB565Image(r)
	case RGB24:
		return NewRGB24Image(r)
	case BGRA32:
		return NewBGRA32Image(r)
	default:
		return &RGBA32Image{*image.NewRGBA(r)}
	}
}

// Stores pixels as 16bit RGB565, little-endian.
type RGB565Image struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

func NewRGB565Image(r image.Rectangle) *RGB565Image {
	return &RGB565Image{
		Pix:    make([]uint8, r.Dx()*r.Dy()*2),
		Stride: 2 * r.Dx(),
		Rect:   r,
	}
}

type colorRGB565 uint16

func (c colorRGB565) RGBA() (r, g, b, a uint32) {
	r = uint32(c>>11) * 255 / 31
	g = uint32(c>>5&0x3f) * 255 / 63
	b = uint32(c&0x1f) * 255 / 31
	return r | r<<8, g | g<<8, b | b<<8, 0xffff
}

var RGB565Model color.Model = color.ModelFunc(rgb565Model)

func rgb565Model(c color.Color) color.Color {
	if _, ok := c.(colorRGB565); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return colorRGB565(r>>11<<11 | g>>5&0x7e0 | b>>11)
}

func (p *RGB565Image) ColorModel() color.Model { return RGB565Model }

func (p *RGB565Image) Bounds() image.Rectangle { return p.Rect }

func (p *RGB565Image) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	offset := p.PixOffset(x, y)
	return colorRGB565(uint16(p.Pix[offset]) | uint16(p.Pix[offset+1])<<8)
}

func (p *RGB565Image) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	offset := p.PixOffset(x, y)
	col, _ := rgb565Model(c).(colorRGB565)
	p.Pix[offset] = uint8(col)
	p.Pix[offset+1] = uint8(col >> 8)
}

func (p *RGB565Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}

func (p *RGB565Image) Bytes() []byte       { return p.Pix }
func (p *RGB565Image) Format() PixelFormat { return RGB565 }

// Stores pixels as packed 24bit RGB.
type RGB24Image struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

func NewRGB24Image(r image.Rectangle) *RGB24Image {
	return &RGB24Image{
		Pix:    make([]uint8, r.Dx()*r.Dy()*3),
		Stride: 3 * r.Dx(),
		Rect:   r,
	}
}

var RGB24Model color.Model = color.ModelFunc(rgb24Model)

func rgb24Model(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 0xff}
}

func (p *RGB24Image) ColorModel() color.Model { return RGB24Model }

func (p *RGB24Image) Bounds() image.Rectangle { return p.Rect }

func (p *RGB24Image) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	offset := p.PixOffset(x, y)
	return color.RGBA{p.Pix[offset], p.Pix[offset+1], p.Pix[offset+2], 0xff}
}

func (p *RGB24Image) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	offset := p.PixOffset(x, y)
	r, g, b, _ := c.RGBA()
	p.Pix[offset] = uint8(r >> 8)
	p.Pix[offset+1] = uint8(g >> 8)
	p.Pix[offset+2] = uint8(b >> 8)
}

func (p *RGB24Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

func (p *RGB24Image) Bytes() []byte       { return p.Pix }
func (p *RGB24Image) Format() PixelFormat { return RGB24 }

// Stores pixels as 32bit BGRA with opaque alpha.
type BGRA32Image struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

func NewBGRA32Image(r image.Rectangle) *BGRA32Image {
	return &BGRA32Image{
		Pix:    make([]uint8, r.Dx()*r.Dy()*4),
		Stride: 4 * r.Dx(),
		Rect:   r,
	}
}

func (p *BGRA32Image) ColorModel() color.Model { return color.RGBAModel }

func (p *BGRA32Image) Bounds() image.Rectangle { return p.Rect }

func (p *BGRA32Image) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	offset := p.PixOffset(x, y)
	return color.RGBA{p.Pix[offset+2], p.Pix[offset+1], p.Pix[offset], 0xff}
}

func (p *BGRA32Image) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	offset := p.PixOffset(x, y)
	r, g, b, _ := c.RGBA()
	p.Pix[offset] = uint8(b >> 8)
	p.Pix[offset+1] = uint8(g >> 8)
	p.Pix[offset+2] = uint8(r >> 8)
	p.Pix[offset+3] = 0xff
}

func (p *BGRA32Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*4
}

func (p *BGRA32Image) Bytes() []byte       { return p.Pix }
func (p *BGRA32Image) Format() PixelFormat { return BGRA32 }

// RGBA32Image wraps image.RGBA for devices with true RGBA byte order.
type RGBA32Image struct {
	image.RGBA
}

func (p *RGBA32Image) Bytes() []byte       { return p.Pix }
func (p *RGBA32Image) Format() PixelFormat { return RGBA32 }
