// Records a snippet from an audio input, fingerprints it with Chromaprint
// and asks the AcoustID service what is playing.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/karlmutch/envflag"
	log "github.com/mgutz/logxi/v1"

	"github.com/hifiberry/pidisplay/acoustid"
	"github.com/hifiberry/pidisplay/chromaprint"
	"github.com/hifiberry/pidisplay/vu"
)

var (
	keyOpt        = flag.String("key", "", "AcoustID application API key (required)")
	deviceOpt     = flag.String("audio-device", "", "input device name substring, default input if empty")
	secondsOpt    = flag.Int("seconds", 15, "recording length")
	rateOpt       = flag.Int("rate", 44100, "recording sample rate")
	keepOpt       = flag.Bool("keep", false, "keep the recorded WAV file")
	continuousOpt = flag.Bool("continuous", false, "keep detecting until interrupted")
	intervalOpt   = flag.Duration("interval", 30*time.Second, "pause between detections in continuous mode")
)

func main() {
	envflag.Parse()
	logger := log.New("detectsong")

	if *keyOpt == "" {
		logger.Fatal("an AcoustID API key is required, register one at https://acoustid.org/new-application")
		os.Exit(1)
	}
	if !chromaprint.Available() {
		logger.Fatal("fpcalc not found, install the chromaprint tools")
		os.Exit(1)
	}

	quitC := make(chan struct{})
	stopC := make(chan os.Signal, 1)
	signal.Notify(stopC, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stopC
		close(quitC)
	}()

	client := acoustid.NewClient(*keyOpt)

	lastTrack := ""
	for {
		if err := detect(logger, client, &lastTrack); err != nil {
			logger.Error("detection failed", "error", err.Error())
			if !*continuousOpt {
				os.Exit(1)
			}
		}
		if !*continuousOpt {
			return
		}
		select {
		case <-quitC:
			return
		case <-time.After(*intervalOpt):
		}
	}
}

func detect(logger log.Logger, client *acoustid.Client, lastTrack *string) error {
	logger.Info("recording", "seconds", *secondsOpt)
	samples, err := vu.Record(time.Duration(*secondsOpt)*time.Second, float64(*rateOpt), *deviceOpt)
	if err != nil {
		return err
	}

	wav := filepath.Join(os.TempDir(), fmt.Sprintf("detectsong-%d.wav", time.Now().Unix()))
	if err := chromaprint.WriteWAVFile(wav, samples, *rateOpt); err != nil {
		return err
	}
	if !*keepOpt {
		defer os.Remove(wav)
	} else {
		logger.Info("recording saved", "file", wav)
	}

	fingerprint, duration, err := chromaprint.Fingerprint(wav)
	if err != nil {
		return err
	}

	logger.Info("looking up fingerprint", "duration", duration)
	resp, err := client.LookupFingerprint(fingerprint, duration)
	if err != nil {
		return err
	}

	match := resp.BestMatch()
	if match == nil {
		*lastTrack = ""
		fmt.Println("no match")
		return nil
	}
	if match.TrackID == *lastTrack {
		logger.Info("still playing", "track", match.Title)
		return nil
	}
	*lastTrack = match.TrackID
	fmt.Println(match)
	return nil
}
