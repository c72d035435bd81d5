// Package chromaprint wraps the fpcalc command line tool from the
// Chromaprint project to fingerprint audio files.
package chromaprint

import (
	"encoding/json"
	"os/exec"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
)

const fpcalcBin = "fpcalc"

// Available reports whether fpcalc is installed.
func Available() bool {
	_, err := exec.LookPath(fpcalcBin)
	return err == nil
}

// Fingerprint runs fpcalc on an audio file and returns the compressed
// fingerprint string and the audio duration in seconds.
func Fingerprint(path string) (fingerprint string, duration int, err errors.Error) {
	out, errGo := exec.Command(fpcalcBin, "-json", path).Output()
	if errGo != nil {
		if exitErr, ok := errGo.(*exec.ExitError); ok {
			return "", 0, errors.Wrap(errGo).With("file", path).
				With("stderr", string(exitErr.Stderr)).
				With("stack", stack.Trace().TrimRuntime())
		}
		return "", 0, errors.Wrap(errGo, "fpcalc not found, install the chromaprint tools").
			With("file", path).With("stack", stack.Trace().TrimRuntime())
	}

	var result struct {
		Duration    float64 `json:"duration"`
		Fingerprint string  `json:"fingerprint"`
	}
	if errGo := json.Unmarshal(out, &result); errGo != nil {
		return "", 0, errors.Wrap(errGo, "unexpected fpcalc output").
			With("file", path).With("stack", stack.Trace().TrimRuntime())
	}
	if result.Fingerprint == "" {
		return "", 0, errors.New("fpcalc produced no fingerprint").
			With("file", path).With("stack", stack.Trace().TrimRuntime())
	}

	return result.Fingerprint, int(result.Duration), nil
}
