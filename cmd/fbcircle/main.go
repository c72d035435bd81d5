// Draws a filled blue circle straight onto the display and leaves it up
// until interrupted. A quick check that the framebuffer device, geometry
// probing and pixel encoding work on a new board.
package main

import (
	"flag"
	"image"
	"image/color"
	"os"
	"os/signal"
	"syscall"

	"github.com/karlmutch/envflag"
	log "github.com/mgutz/logxi/v1"

	"github.com/hifiberry/pidisplay/drivers"
	"github.com/hifiberry/pidisplay/framebuffer"
	"github.com/hifiberry/pidisplay/raster"

	_ "github.com/hifiberry/pidisplay/drivers/fbdev"
)

var (
	deviceOpt = flag.String("device", "", "framebuffer device, default /dev/fb0")
	radiusOpt = flag.Int("radius", 300, "circle radius in pixels")
)

func main() {
	envflag.Parse()
	logger := log.New("fbcircle")

	surface, err := drivers.Open("fbdev", *deviceOpt, drivers.Geometry{})
	if err != nil {
		logger.Fatal("opening display", "error", err.Error())
		os.Exit(1)
	}
	defer surface.Close()

	geo := surface.Geometry()
	logger.Info("display open", "width", geo.Width, "height", geo.Height,
		"format", geo.Format.String())

	frame := framebuffer.NewImage(geo.Format, image.Rect(0, 0, geo.Width, geo.Height))
	raster.Fill(frame, color.RGBA{A: 0xff})
	raster.FillCircle(frame, image.Pt(geo.Width/2, geo.Height/2), *radiusOpt,
		color.RGBA{B: 0xff, A: 0xff})

	if err := surface.WriteFrame(frame.Bytes()); err != nil {
		logger.Fatal("writing frame", "error", err.Error())
		os.Exit(1)
	}
	if err := surface.Flush(); err != nil {
		logger.Fatal("flushing frame", "error", err.Error())
		os.Exit(1)
	}

	logger.Info("circle drawn, ctrl-c to clear and exit")

	stopC := make(chan os.Signal, 1)
	signal.Notify(stopC, os.Interrupt, syscall.SIGTERM)
	<-stopC

	black := make([]byte, geo.BufferSize())
	surface.WriteFrame(black)
	surface.Flush()
}
