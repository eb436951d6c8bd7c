package click

import (
	"bytes"
	"io"
	"log"
	"testing"
	"time"

	beepwav "github.com/gopxl/beep/wav"
)

func TestToneWAVDecodes(t *testing.T) {
	data, err := toneWAV(1320, 30*time.Millisecond)
	if err != nil {
		t.Fatalf("toneWAV: %v", err)
	}
	streamer, format, err := beepwav.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode synthesized wav: %v", err)
	}
	defer streamer.Close()
	if int(format.SampleRate) != sampleRate {
		t.Errorf("sample rate = %d, want %d", format.SampleRate, sampleRate)
	}
	if streamer.Len() == 0 {
		t.Error("expected non-empty stream")
	}
}

func TestNewSynthesizesDefaults(t *testing.T) {
	p, err := New("", "", false, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(p.pressData) == 0 || len(p.releaseData) == 0 {
		t.Error("expected synthesized tone data")
	}
	if bytes.Equal(p.pressData, p.releaseData) {
		t.Error("press and release tones should differ")
	}
}

func TestDisabledPlayerIsNoop(t *testing.T) {
	p, err := New("", "", false, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Must not touch the audio device when disabled.
	p.PlayPress()
	p.PlayRelease()
}

func TestNewMissingCustomWav(t *testing.T) {
	if _, err := New("/nonexistent/press.wav", "", true, log.New(io.Discard, "", 0)); err == nil {
		t.Fatal("expected error for missing custom wav")
	}
}

func TestEncodeWAV(t *testing.T) {
	data, err := encodeWAV([]int16{0, 100, -100}, sampleRate)
	if err != nil {
		t.Fatalf("encodeWAV: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected encoded bytes")
	}
}
