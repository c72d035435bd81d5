package vu

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-stack/stack"
	"github.com/gordonklaus/portaudio"
	"github.com/karlmutch/errors"
	log "github.com/mgutz/logxi/v1"
)

const (
	defaultSampleRate = 44100
	defaultChunkSize  = 1024
	bufferSeconds     = 0.3
)

// Monitor captures stereo audio from the default input device and keeps a
// continuously updated dB level per channel. The PortAudio callback only
// appends samples to a bounded ring buffer, the heavier RMS work runs in a
// separate goroutine at the configured update rate.
type Monitor struct {
	SampleRate float64
	ChunkSize  int
	UpdateRate int // level recomputations per second

	logger log.Logger

	mu      sync.Mutex
	samples []float32 // interleaved stereo, newest at the tail
	leftDb  float64
	rightDb float64

	stream  *portaudio.Stream
	quitC   chan struct{}
	doneC   chan struct{}
	running bool
}

func NewMonitor(updateRate int) *Monitor {
	if updateRate < 1 {
		updateRate = 30
	}
	return &Monitor{
		SampleRate: defaultSampleRate,
		ChunkSize:  defaultChunkSize,
		UpdateRate: updateRate,
		logger:     log.New("vu"),
		leftDb:     MinDb,
		rightDb:    MinDb,
	}
}

// Start opens the capture stream and begins updating levels.
func (m *Monitor) Start() errors.Error {
	if m.running {
		return errors.New("monitor already started").With("stack", stack.Trace().TrimRuntime())
	}
	if err := portaudio.Initialize(); err != nil {
		return errors.Wrap(err).With("stack", stack.Trace().TrimRuntime())
	}

	stream, err := portaudio.OpenDefaultStream(2, 0, m.SampleRate, m.ChunkSize, m.capture)
	if err != nil {
		portaudio.Terminate()
		return errors.Wrap(err, "no capture stream, is an input device connected").
			With("stack", stack.Trace().TrimRuntime())
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return errors.Wrap(err).With("stack", stack.Trace().TrimRuntime())
	}

	m.stream = stream
	m.quitC = make(chan struct{})
	m.doneC = make(chan struct{})
	m.running = true

	m.logger.Info("capture started", "sampleRate", m.SampleRate, "updateRate", m.UpdateRate)
	go m.updateLoop()

	return nil
}

// capture runs on the PortAudio callback thread and must return quickly.
func (m *Monitor) capture(in []float32) {
	limit := int(m.SampleRate*bufferSeconds) * 2

	m.mu.Lock()
	m.samples = append(m.samples, in...)
	if excess := len(m.samples) - limit; excess > 0 {
		m.samples = append(m.samples[:0], m.samples[excess:]...)
	}
	m.mu.Unlock()
}

func (m *Monitor) updateLoop() {
	defer close(m.doneC)

	ticker := time.NewTicker(time.Second / time.Duration(m.UpdateRate))
	defer ticker.Stop()

	for {
		select {
		case <-m.quitC:
			return
		case <-ticker.C:
			m.update()
		}
	}
}

// update computes per channel RMS over the buffered samples and keeps a
// quarter chunk of overlap for the next round.
func (m *Monitor) update() {
	m.mu.Lock()
	if len(m.samples) < m.ChunkSize*2 {
		m.mu.Unlock()
		return
	}
	interleaved := make([]float32, len(m.samples))
	copy(interleaved, m.samples)
	keep := m.ChunkSize / 2
	m.samples = append(m.samples[:0], m.samples[len(m.samples)-keep:]...)
	m.mu.Unlock()

	left := make([]float32, 0, len(interleaved)/2)
	right := make([]float32, 0, len(interleaved)/2)
	for i := 0; i+1 < len(interleaved); i += 2 {
		left = append(left, interleaved[i])
		right = append(right, interleaved[i+1])
	}

	leftDb := RMSToDb(RMS(left))
	rightDb := RMSToDb(RMS(right))

	m.mu.Lock()
	m.leftDb, m.rightDb = leftDb, rightDb
	m.mu.Unlock()
}

// Levels returns the most recent left and right channel levels in dB.
func (m *Monitor) Levels() (left, right float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leftDb, m.rightDb
}

// Stop shuts the capture stream down and waits briefly for the update
// goroutine to drain.
func (m *Monitor) Stop() {
	if !m.running {
		return
	}
	m.running = false

	close(m.quitC)
	select {
	case <-m.doneC:
	case <-time.After(time.Second):
		m.logger.Warn("update goroutine did not stop in time")
	}

	if err := m.stream.Stop(); err != nil {
		m.logger.Warn("stopping capture stream", "error", err.Error())
	}
	m.stream.Close()
	portaudio.Terminate()
}

// ListDevices writes the available input devices to w, one per line.
func ListDevices(w io.Writer) errors.Error {
	if err := portaudio.Initialize(); err != nil {
		return errors.Wrap(err).With("stack", stack.Trace().TrimRuntime())
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return errors.Wrap(err).With("stack", stack.Trace().TrimRuntime())
	}

	for i, dev := range devices {
		if dev.MaxInputChannels == 0 {
			continue
		}
		fmt.Fprintf(w, "%2d: %s (%s, %d in, %.0f Hz)\n",
			i, dev.Name, dev.HostApi.Name, dev.MaxInputChannels, dev.DefaultSampleRate)
	}
	return nil
}
