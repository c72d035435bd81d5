// Renders an analog clock with a smoothly sweeping second hand.
package main

import (
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/karlmutch/envflag"
	log "github.com/mgutz/logxi/v1"

	"github.com/hifiberry/pidisplay/drivers"
	"github.com/hifiberry/pidisplay/drivers/display"
	"github.com/hifiberry/pidisplay/drivers/window"
	"github.com/hifiberry/pidisplay/framebuffer"
	"github.com/hifiberry/pidisplay/raster"

	_ "github.com/hifiberry/pidisplay/drivers/fbdev"
)

var (
	backendOpt  = flag.String("backend", "fbdev", "display backend (fbdev, window)")
	deviceOpt   = flag.String("device", "", "framebuffer device, default /dev/fb0")
	diameterOpt = flag.Int("diameter", 700, "clock face diameter in pixels")
	fpsOpt      = flag.Int("fps", 60, "target frame rate")
	showFPSOpt  = flag.Bool("show-fps", false, "log the achieved frame rate")
)

func main() {
	envflag.Parse()
	logger := log.New("analogclock")

	quitC := make(chan struct{})
	stopOnce := sync.Once{}
	stop := func() { stopOnce.Do(func() { close(quitC) }) }

	stopC := make(chan os.Signal, 1)
	signal.Notify(stopC, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stopC
		stop()
	}()

	surface, err := drivers.Open(*backendOpt, *deviceOpt, drivers.Geometry{})
	if err != nil {
		logger.Fatal("opening display", "error", err.Error())
		os.Exit(1)
	}

	d := display.NewDisplay(surface)
	defer d.Close()

	face := raster.NewClockFace(d.Bounds(), *diameterOpt)
	renderer := display.RendererFunc(func(dst framebuffer.Image, now time.Time) error {
		face.Render(dst, now)
		return nil
	})

	loop := display.NewLoop(d, *fpsOpt)
	loop.ShowFPS = *showFPSOpt

	run := func() {
		if err := loop.Run(renderer, quitC); err != nil {
			logger.Error("render loop stopped", "error", err.Error())
		}
	}

	if win, ok := surface.(*window.Surface); ok {
		go func() {
			run()
			win.Close()
		}()
		if err := win.Run("Analog Clock"); err != nil {
			logger.Error("window", "error", err.Error())
		}
		stop()
	} else {
		run()
	}
}
