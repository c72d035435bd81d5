// Package vu measures audio input levels and maps them onto a meter needle.
//
// A PortAudio capture stream feeds samples into a ring buffer from its
// callback, a periodic task drains the buffer into RMS based dB levels, and
// the render loop picks the latest level up through Levels. Levels are on the
// VU scale, dB relative to an RMS of 0.707.
package vu

import (
	"math"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/hifiberry/pidisplay/internal/num"
)

const (
	MinDb     = -60.0
	MaxDb     = 6.0
	Reference = 0.707 // RMS at 0 dB VU
)

// RMSToDb converts an RMS sample value to the VU dB scale, clamped to
// [MinDb, MaxDb].
func RMSToDb(rms float64) float64 {
	if rms <= 0 {
		return MinDb
	}
	return num.Clamp(20*math.Log10(rms/Reference), MinDb, MaxDb)
}

// RMS returns the root mean square of samples.
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// Channel selects how a stereo level pair is reduced to the single value
// driving the needle.
type Channel string

const (
	ChannelLeft   Channel = "left"
	ChannelRight  Channel = "right"
	ChannelMax    Channel = "max"
	ChannelStereo Channel = "stereo"
)

func ParseChannel(s string) (Channel, errors.Error) {
	switch Channel(s) {
	case ChannelLeft, ChannelRight, ChannelMax, ChannelStereo:
		return Channel(s), nil
	}
	return "", errors.New("channel must be left, right, max or stereo").
		With("channel", s).With("stack", stack.Trace().TrimRuntime())
}

// Select reduces a left/right dB pair. Stereo averages the channels in
// linear space, readings at or below floorDb count as silence there.
func (c Channel) Select(left, right, floorDb float64) float64 {
	switch c {
	case ChannelRight:
		return right
	case ChannelMax:
		return math.Max(left, right)
	case ChannelStereo:
		var l, r float64
		if left > floorDb {
			l = math.Pow(10, left/20)
		}
		if right > floorDb {
			r = math.Pow(10, right/20)
		}
		avg := (l + r) / 2
		if avg <= 0 {
			return floorDb
		}
		return 20 * math.Log10(avg)
	}
	return left
}

// Smoother keeps the last n readings in a ring buffer and reports their
// mean, taking the jitter out of the needle.
type Smoother struct {
	readings []float64
	next     int
	count    int
}

func NewSmoother(n int) *Smoother {
	if n < 1 {
		n = 1
	}
	return &Smoother{readings: make([]float64, n)}
}

func (s *Smoother) Add(v float64) {
	s.readings[s.next] = v
	s.next = (s.next + 1) % len(s.readings)
	if s.count < len(s.readings) {
		s.count++
	}
}

func (s *Smoother) Average() float64 {
	if s.count == 0 {
		return MinDb
	}
	var sum float64
	for _, v := range s.readings[:s.count] {
		sum += v
	}
	return sum / float64(s.count)
}

// Mapping converts a dB reading into a needle angle. The mapping is affine
// within the dB window and clamps outside it.
type Mapping struct {
	MinDb    float64
	MaxDb    float64
	MinAngle float64
	MaxAngle float64
}

func (m Mapping) Angle(db float64) float64 {
	normalized := num.Clamp((db-m.MinDb)/(m.MaxDb-m.MinDb), 0, 1)
	return num.Lerp(m.MinAngle, m.MaxAngle, normalized)
}
