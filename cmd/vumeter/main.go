// An analog VU meter. The needle either follows the levels captured from an
// audio input device or, in demo mode, sweeps the scale so a meter face can
// be calibrated without a signal.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/draw"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/embeddedgo/display/pix"
	"github.com/karlmutch/envflag"
	log "github.com/mgutz/logxi/v1"

	"github.com/hifiberry/pidisplay/config"
	"github.com/hifiberry/pidisplay/drivers"
	"github.com/hifiberry/pidisplay/drivers/display"
	"github.com/hifiberry/pidisplay/drivers/window"
	"github.com/hifiberry/pidisplay/framebuffer"
	"github.com/hifiberry/pidisplay/raster"
	"github.com/hifiberry/pidisplay/vu"

	_ "github.com/hifiberry/pidisplay/drivers/fbdev"
)

var (
	backendOpt = flag.String("backend", "fbdev", "display backend (fbdev, window)")
	deviceOpt  = flag.String("device", "", "framebuffer device, default /dev/fb0")
	configOpt  = flag.String("config", "simple", "meter preset name or YAML file")
	modeOpt    = flag.String("mode", "demo", "needle source (demo, live)")
	channelOpt = flag.String("channel", "stereo", "channel selection (left, right, max, stereo)")
	rotateOpt  = flag.Int("rotate", 0, "rotate output by 0, 90, 180 or 270 degrees")
	rateOpt    = flag.Int("update-rate", 30, "level updates per second in live mode")
	averageOpt = flag.Int("average-readings", 3, "readings averaged for needle smoothing")
	fpsOpt     = flag.Int("fps", 30, "target frame rate")
	showFPSOpt = flag.Bool("show-fps", false, "log the achieved frame rate")
	listOpt    = flag.Bool("list-devices", false, "list audio input devices and exit")
)

func main() {
	envflag.Parse()
	logger := log.New("vumeter")

	if *listOpt {
		if err := vu.ListDevices(os.Stdout); err != nil {
			logger.Fatal("listing devices", "error", err.Error())
			os.Exit(1)
		}
		return
	}

	cfg, err := loadConfig(*configOpt)
	if err != nil {
		logger.Fatal("loading meter config", "error", err.Error())
		os.Exit(1)
	}
	channel, err := vu.ParseChannel(*channelOpt)
	if err != nil {
		logger.Fatal("parsing channel", "error", err.Error())
		os.Exit(1)
	}
	rotation, err := raster.ParseRotation(*rotateOpt)
	if err != nil {
		logger.Fatal("parsing rotation", "error", err.Error())
		os.Exit(1)
	}

	quitC := make(chan struct{})
	stopOnce := sync.Once{}
	stop := func() { stopOnce.Do(func() { close(quitC) }) }

	stopC := make(chan os.Signal, 1)
	signal.Notify(stopC, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stopC
		stop()
	}()

	surface, openErr := drivers.Open(*backendOpt, *deviceOpt, drivers.Geometry{})
	if openErr != nil {
		logger.Fatal("opening display", "error", openErr.Error())
		os.Exit(1)
	}

	d := display.NewDisplay(surface)
	defer d.Close()

	bounds := d.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	meter := &raster.Meter{
		Center:   image.Pt(int(cfg.CenterX*float64(w)), int(cfg.CenterY*float64(h))),
		Length:   int(cfg.Length * float64(w)),
		MinAngle: cfg.MinAngle,
		MaxAngle: cfg.MaxAngle,
		Width:    cfg.NeedleWidth,
		Color:    cfg.Color(),
		Rotation: rotation,
	}

	base := meterFace(surface.Geometry().Format, bounds, rotation)

	mapping := vu.Mapping{
		MinDb:    cfg.MinDb,
		MaxDb:    cfg.MaxDb,
		MinAngle: cfg.MinAngle,
		MaxAngle: cfg.MaxAngle,
	}

	var angleAt func(now time.Time) float64
	switch *modeOpt {
	case "demo":
		angleAt = demoSweep(cfg, time.Now())
	case "live":
		monitor := vu.NewMonitor(*rateOpt)
		if err := monitor.Start(); err != nil {
			logger.Fatal("starting capture", "error", err.Error())
			os.Exit(1)
		}
		defer monitor.Stop()

		smoother := vu.NewSmoother(*averageOpt)
		angleAt = func(time.Time) float64 {
			left, right := monitor.Levels()
			smoother.Add(channel.Select(left, right, vu.MinDb))
			return mapping.Angle(smoother.Average())
		}
	default:
		logger.Fatal("mode must be demo or live", "mode", *modeOpt)
		os.Exit(1)
	}

	// The static face is blitted into the write buffer through the pix
	// driver, the needle is rasterized on top.
	pixDisp := pix.NewDisplay(d.Framebuffer())
	area := pixDisp.NewArea(pixDisp.Bounds())

	renderer := display.RendererFunc(func(dst framebuffer.Image, now time.Time) error {
		area.Draw(bounds, base, bounds.Min, nil, image.Point{}, draw.Src)
		area.Flush()
		meter.DrawNeedle(dst, angleAt(now))
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
		if err := win.Run("VU Meter"); err != nil {
			logger.Error("window", "error", err.Error())
		}
		stop()
	} else {
		run()
	}
}

// loadConfig treats the argument as a YAML file when it exists on disk and
// as a preset name otherwise.
func loadConfig(name string) (config.MeterConfig, error) {
	if _, errGo := os.Stat(name); errGo == nil {
		cfg, err := config.Load(name)
		if err != nil {
			return config.MeterConfig{}, err
		}
		return cfg, nil
	}
	cfg, err := config.Preset(name)
	if err != nil {
		return config.MeterConfig{}, err
	}
	return cfg, nil
}

// meterFace rasterizes the static face once, rotated for the display's
// mounting orientation.
func meterFace(f framebuffer.PixelFormat, bounds image.Rectangle, rotation raster.Rotation) framebuffer.Image {
	w, h := bounds.Dx(), bounds.Dy()
	radius := min(w, h) * 2 / 5

	face := framebuffer.NewImage(f, bounds)
	raster.Face(face, image.Pt(w/2, h/2), radius,
		color.RGBA{0xc8, 0xc8, 0xc8, 0xff},
		color.RGBA{0x96, 0x96, 0x96, 0xff},
		color.RGBA{0xff, 0xff, 0xff, 0xff})

	if rotation == raster.Rotate0 {
		return face
	}
	rotated := framebuffer.NewImage(f, bounds)
	rotation.RotateImage(rotated, face)
	return rotated
}

// demoSweep moves the needle from the bottom of the scale to the top and
// back, one second each way.
func demoSweep(cfg config.MeterConfig, start time.Time) func(time.Time) float64 {
	return func(now time.Time) float64 {
		phase := now.Sub(start).Seconds()
		cycle := phase - 2*float64(int(phase/2))
		span := cfg.MaxAngle - cfg.MinAngle
		if cycle < 1 {
			return cfg.MinAngle + span*cycle
		}
		return cfg.MaxAngle - span*(cycle-1)
	}
}
