package display

import (
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	log "github.com/mgutz/logxi/v1"

	"github.com/hifiberry/pidisplay/framebuffer"
)

// Clock selects animation frames from elapsed wall-clock time. Deriving the
// index from elapsed time instead of a running counter keeps the animation
// phase correct regardless of scheduling jitter.
type Clock struct {
	Start         time.Time
	FrameDuration time.Duration
	FrameCount    int
}

// FrameIndex returns the frame to show at the given time. It is monotonic
// non-decreasing in elapsed time and wraps after
// FrameDuration*FrameCount.
func (c Clock) FrameIndex(now time.Time) int {
	if c.FrameDuration <= 0 || c.FrameCount <= 0 {
		return 0
	}
	elapsed := now.Sub(c.Start)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed/c.FrameDuration) % c.FrameCount
}

// Renderer produces one complete frame. Every call must overwrite the whole
// buffer, nothing from the previous frame is kept.
type Renderer interface {
	RenderFrame(dst framebuffer.Image, now time.Time) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(dst framebuffer.Image, now time.Time) error

func (f RendererFunc) RenderFrame(dst framebuffer.Image, now time.Time) error {
	return f(dst, now)
}

// State is the lifecycle of a render loop.
type State int

const (
	Idle State = iota
	Opening
	Running
	Stopping
	Closed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Opening:
		return "opening"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// Loop runs a renderer at a fixed target rate. After each frame it sleeps for
// whatever remains of the frame interval, so a slow frame never makes
// following frames drift.
type Loop struct {
	Display  *Display
	Interval time.Duration
	ShowFPS  bool
	Log      log.Logger

	state State
}

func NewLoop(d *Display, fps int) *Loop {
	if fps < 1 {
		fps = 30
	}
	return &Loop{
		Display:  d,
		Interval: time.Second / time.Duration(fps),
		Log:      log.New("display"),
		state:    Idle,
	}
}

func (l *Loop) State() State { return l.state }

// Run renders frames until quitC is closed or an unrecoverable error occurs
// on present. The display is left blanked on every exit path.
func (l *Loop) Run(r Renderer, quitC <-chan struct{}) errors.Error {
	l.state = Opening
	defer func() { l.state = Closed }()

	// The first swap presents a blank frame and verifies the surface works.
	// There is no retry, a dead surface fails the loop terminally.
	buf, err := l.Display.Swap()
	if err != nil {
		l.state = Stopping
		return err
	}
	l.state = Running

	frames := 0
	lastReport := time.Now()

	for {
		select {
		case <-quitC:
			l.state = Stopping
			return l.Display.Clear()
		default:
		}

		start := time.Now()
		if errGo := r.RenderFrame(buf, start); errGo != nil {
			l.state = Stopping
			l.Display.Clear()
			return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
		}
		if buf, err = l.Display.Swap(); err != nil {
			l.state = Stopping
			l.Display.Clear()
			return err
		}

		frames++
		if l.ShowFPS && time.Since(lastReport) >= time.Second {
			l.Log.Info("fps", "value", float64(frames)/time.Since(lastReport).Seconds())
			frames = 0
			lastReport = time.Now()
		}

		if sleep := l.Interval - time.Since(start); sleep > 0 {
			select {
			case <-quitC:
				l.state = Stopping
				return l.Display.Clear()
			case <-time.After(sleep):
			}
		}
	}
}
