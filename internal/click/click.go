package click

import (
	"bytes"
	"fmt"
	"log"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	beepwav "github.com/gopxl/beep/wav"
)

const sampleRate = 44100

// Player plays short audible ticks as key feedback. Press and release
// use different pitches so a hold reads as tick-down, tick-up.
type Player struct {
	pressData   []byte
	releaseData []byte
	enabled     bool
	logger      *log.Logger
	initOnce    sync.Once
	initErr     error
}

// New creates a Player. If pressPath/releasePath are empty, tones are
// synthesized in memory. If enabled is false, PlayPress/PlayRelease
// are no-ops.
func New(pressPath, releasePath string, enabled bool, logger *log.Logger) (*Player, error) {
	p := &Player{enabled: enabled, logger: logger}

	var err error
	p.pressData, err = toneWAV(1320, 30*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("synthesize press tone: %w", err)
	}
	p.releaseData, err = toneWAV(880, 30*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("synthesize release tone: %w", err)
	}

	if pressPath != "" {
		data, err := os.ReadFile(pressPath)
		if err != nil {
			return nil, fmt.Errorf("read press click %s: %w", pressPath, err)
		}
		p.pressData = data
	}
	if releasePath != "" {
		data, err := os.ReadFile(releasePath)
		if err != nil {
			return nil, fmt.Errorf("read release click %s: %w", releasePath, err)
		}
		p.releaseData = data
	}

	return p, nil
}

func (p *Player) initSpeaker(format beep.Format) {
	p.initOnce.Do(func() {
		p.initErr = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
	})
}

func (p *Player) play(data []byte) {
	if !p.enabled || len(data) == 0 {
		return
	}

	go func() {
		reader := bytes.NewReader(data)
		streamer, format, err := beepwav.Decode(reader)
		if err != nil {
			if p.logger != nil {
				p.logger.Printf("click: wav decode error: %v", err)
			}
			return
		}
		defer streamer.Close()

		p.initSpeaker(format)
		if p.initErr != nil {
			if p.logger != nil {
				p.logger.Printf("click: speaker init error: %v", p.initErr)
			}
			return
		}

		done := make(chan struct{})
		speaker.Play(beep.Seq(streamer, beep.Callback(func() {
			close(done)
		})))
		<-done
	}()
}

// PlayPress plays the key-down tick (non-blocking).
func (p *Player) PlayPress() {
	p.play(p.pressData)
}

// PlayRelease plays the key-up tick (non-blocking).
func (p *Player) PlayRelease() {
	p.play(p.releaseData)
}

// toneWAV synthesizes a sine tick with a fade-in/out envelope and
// encodes it as a mono 16-bit WAV in memory.
func toneWAV(freq float64, duration time.Duration) ([]byte, error) {
	n := int(float64(sampleRate) * duration.Seconds())
	samples := make([]int16, n)
	for i := range samples {
		t := float64(i) / float64(sampleRate)
		progress := float64(i) / float64(n)
		envelope := math.Sin(math.Pi * progress)
		samples[i] = int16(math.Sin(2*math.Pi*freq*t) * envelope * 12000)
	}
	return encodeWAV(samples, sampleRate)
}
