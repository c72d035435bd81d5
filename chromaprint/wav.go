package chromaprint

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
)

// WriteWAV writes mono 16 bit PCM samples as a RIFF/WAVE stream.
func WriteWAV(w io.Writer, samples []int16, sampleRate int) errors.Error {
	const (
		channels      = 1
		bitsPerSample = 16
	)

	dataSize := len(samples) * 2
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	var header [44]byte
	copy(header[0:], "RIFF")
	binary.LittleEndian.PutUint32(header[4:], uint32(36+dataSize))
	copy(header[8:], "WAVE")
	copy(header[12:], "fmt ")
	binary.LittleEndian.PutUint32(header[16:], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:], 1)  // PCM
	binary.LittleEndian.PutUint16(header[22:], channels)
	binary.LittleEndian.PutUint32(header[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:], bitsPerSample)
	copy(header[36:], "data")
	binary.LittleEndian.PutUint32(header[40:], uint32(dataSize))

	if _, errGo := w.Write(header[:]); errGo != nil {
		return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	if errGo := binary.Write(w, binary.LittleEndian, samples); errGo != nil {
		return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}

// WriteWAVFile writes samples to a new file at path.
func WriteWAVFile(path string, samples []int16, sampleRate int) errors.Error {
	f, errGo := os.Create(path)
	if errGo != nil {
		return errors.Wrap(errGo).With("file", path).With("stack", stack.Trace().TrimRuntime())
	}
	if err := WriteWAV(f, samples, sampleRate); err != nil {
		f.Close()
		return err.With("file", path)
	}
	if errGo := f.Close(); errGo != nil {
		return errors.Wrap(errGo).With("file", path).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}
