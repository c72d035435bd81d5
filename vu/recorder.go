package vu

import (
	"strings"
	"time"

	"github.com/go-stack/stack"
	"github.com/gordonklaus/portaudio"
	"github.com/karlmutch/errors"
)

// Record captures duration worth of mono 16 bit PCM from an input device.
// device selects the first input whose name contains the given substring,
// case insensitively, an empty string picks the default input.
func Record(duration time.Duration, sampleRate float64, device string) (samples []int16, err errors.Error) {
	if errGo := portaudio.Initialize(); errGo != nil {
		return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	defer portaudio.Terminate()

	buf := make([]int16, defaultChunkSize)

	var stream *portaudio.Stream
	if device == "" {
		var errGo error
		stream, errGo = portaudio.OpenDefaultStream(1, 0, sampleRate, len(buf), buf)
		if errGo != nil {
			return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
		}
	} else {
		dev, err := findInput(device)
		if err != nil {
			return nil, err
		}
		params := portaudio.HighLatencyParameters(dev, nil)
		params.Input.Channels = 1
		params.SampleRate = sampleRate
		params.FramesPerBuffer = len(buf)

		var errGo error
		stream, errGo = portaudio.OpenStream(params, buf)
		if errGo != nil {
			return nil, errors.Wrap(errGo).With("device", dev.Name).
				With("stack", stack.Trace().TrimRuntime())
		}
	}
	defer stream.Close()

	if errGo := stream.Start(); errGo != nil {
		return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	defer stream.Stop()

	want := int(duration.Seconds() * sampleRate)
	samples = make([]int16, 0, want)
	for len(samples) < want {
		if errGo := stream.Read(); errGo != nil {
			return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
		}
		samples = append(samples, buf...)
	}
	return samples[:want], nil
}

func findInput(name string) (*portaudio.DeviceInfo, errors.Error) {
	devices, errGo := portaudio.Devices()
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	for _, dev := range devices {
		if dev.MaxInputChannels == 0 {
			continue
		}
		if strings.Contains(strings.ToLower(dev.Name), strings.ToLower(name)) {
			return dev, nil
		}
	}
	return nil, errors.New("no matching input device").With("device", name).
		With("stack", stack.Trace().TrimRuntime())
}
