// Exports the spinning record animation as an animated GIF, mainly for
// documentation and for eyeballing the frame set off-device.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"os"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/karlmutch/envflag"
	log "github.com/mgutz/logxi/v1"

	"github.com/hifiberry/pidisplay/framebuffer"
	"github.com/hifiberry/pidisplay/raster"
)

var (
	outOpt    = flag.String("out", "vinyl.gif", "output file")
	sizeOpt   = flag.Int("size", 720, "image width and height in pixels")
	framesOpt = flag.Int("frames", 60, "rotation steps per revolution")
)

func main() {
	envflag.Parse()
	logger := log.New("vinylframes")

	bounds := image.Rect(0, 0, *sizeOpt, *sizeOpt)
	vinyl := raster.NewVinyl(framebuffer.RGBA32, bounds, *framesOpt)

	// GIF delays are in hundredths of a second.
	delay := int(vinyl.FrameDuration().Milliseconds() / 10)
	if delay < 1 {
		delay = 1
	}

	logger.Info("rendering", "frames", vinyl.FrameCount(), "delay", delay)

	quantizer := quantize.MedianCutQuantizer{}
	frame := framebuffer.NewImage(framebuffer.RGBA32, bounds)

	anim := &gif.GIF{}
	for i := 0; i < vinyl.FrameCount(); i++ {
		vinyl.RenderFrame(frame, i)

		palette := quantizer.Quantize(make(color.Palette, 0, 256), frame)
		paletted := image.NewPaletted(bounds, palette)
		draw.Draw(paletted, bounds, frame, image.Point{}, draw.Src)

		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, delay)
	}

	f, errGo := os.Create(*outOpt)
	if errGo != nil {
		logger.Fatal("creating output", "file", *outOpt, "error", errGo.Error())
		os.Exit(1)
	}
	if errGo := gif.EncodeAll(f, anim); errGo != nil {
		f.Close()
		logger.Fatal("encoding gif", "file", *outOpt, "error", errGo.Error())
		os.Exit(1)
	}
	if errGo := f.Close(); errGo != nil {
		logger.Fatal("closing output", "file", *outOpt, "error", errGo.Error())
		os.Exit(1)
	}

	logger.Info("written", "file", *outOpt, "frames", len(anim.Image))
}
