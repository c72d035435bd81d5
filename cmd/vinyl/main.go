// Renders a record spinning at 33⅓ RPM. The rotation angle comes from
// wall-clock time, so the turntable speed holds even when frames are
// dropped.
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
	backendOpt = flag.String("backend", "fbdev", "display backend (fbdev, window)")
	deviceOpt  = flag.String("device", "", "framebuffer device, default /dev/fb0")
	framesOpt  = flag.Int("frames", 60, "rotation steps per revolution")
	fpsOpt     = flag.Int("fps", 30, "target frame rate")
	showFPSOpt = flag.Bool("show-fps", false, "log the achieved frame rate")
)

func main() {
	envflag.Parse()
	logger := log.New("vinyl")

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

	logger.Info("precomputing rotation frames", "frames", *framesOpt)
	vinyl := raster.NewVinyl(surface.Geometry().Format, d.Bounds(), *framesOpt)

	clock := display.Clock{
		Start:         time.Now(),
		FrameDuration: vinyl.FrameDuration(),
		FrameCount:    vinyl.FrameCount(),
	}
	renderer := display.RendererFunc(func(dst framebuffer.Image, now time.Time) error {
		vinyl.RenderFrame(dst, clock.FrameIndex(now))
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
		if err := win.Run("Vinyl"); err != nil {
			logger.Error("window", "error", err.Error())
		}
		stop()
	} else {
		run()
	}
}
