package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()

	if cfg.Theme != "aurora" {
		t.Errorf("expected theme aurora, got %s", cfg.Theme)
	}
	if cfg.Listen.Until != "esc" {
		t.Errorf("expected until esc, got %s", cfg.Listen.Until)
	}
	if cfg.Listen.DelaySecondCharMs != 750 {
		t.Errorf("expected delay_second_char_ms 750, got %d", cfg.Listen.DelaySecondCharMs)
	}
	if cfg.Listen.DelayOtherCharsMs != 50 {
		t.Errorf("expected delay_other_chars_ms 50, got %d", cfg.Listen.DelayOtherCharsMs)
	}
	if !cfg.Listen.Lower {
		t.Error("expected lower enabled by default")
	}
	if cfg.Listen.Sequential {
		t.Error("expected sequential disabled by default")
	}
	if cfg.Listen.SleepMs != 10 {
		t.Errorf("expected sleep_ms 10, got %d", cfg.Listen.SleepMs)
	}
	if cfg.Click.Enabled {
		t.Error("expected click disabled by default")
	}
	if cfg.Journal.CopyToClipboard {
		t.Error("expected clipboard copy disabled by default")
	}
}

func TestDurationConversions(t *testing.T) {
	c := ListenConfig{DelaySecondCharMs: 750, DelayOtherCharsMs: 50, SleepMs: 10}
	if c.DelaySecondChar() != 750*time.Millisecond {
		t.Errorf("DelaySecondChar() = %v", c.DelaySecondChar())
	}
	if c.DelayOtherChars() != 50*time.Millisecond {
		t.Errorf("DelayOtherChars() = %v", c.DelayOtherChars())
	}
	if c.Sleep() != 10*time.Millisecond {
		t.Errorf("Sleep() = %v", c.Sleep())
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Listen.Until != "esc" {
		t.Errorf("expected default until esc, got %s", cfg.Listen.Until)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
theme = "mono"

[listen]
until = "q"
sequential = true
delay_second_char_ms = 500
delay_other_chars_ms = 30
lower = false
sleep_ms = 5
max_workers = 4

[click]
enabled = true
press_wav = "/tmp/press.wav"

[journal]
copy_to_clipboard = true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme != "mono" {
		t.Errorf("expected theme mono, got %s", cfg.Theme)
	}
	if cfg.Listen.Until != "q" {
		t.Errorf("expected until q, got %s", cfg.Listen.Until)
	}
	if !cfg.Listen.Sequential {
		t.Error("expected sequential enabled")
	}
	if cfg.Listen.DelaySecondCharMs != 500 {
		t.Errorf("expected delay_second_char_ms 500, got %d", cfg.Listen.DelaySecondCharMs)
	}
	if cfg.Listen.Lower {
		t.Error("expected lower disabled")
	}
	if cfg.Listen.MaxWorkers != 4 {
		t.Errorf("expected max_workers 4, got %d", cfg.Listen.MaxWorkers)
	}
	if !cfg.Click.Enabled {
		t.Error("expected click enabled")
	}
	if cfg.Click.PressWav != "/tmp/press.wav" {
		t.Errorf("expected press_wav /tmp/press.wav, got %s", cfg.Click.PressWav)
	}
	if !cfg.Journal.CopyToClipboard {
		t.Error("expected clipboard copy enabled")
	}
}

func TestLoadRejectsNegativeDurations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[listen]
delay_second_char_ms = -1
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for negative delay")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	cfg := Default()
	cfg.Theme = "gruvbox"
	cfg.Listen.Until = "x"
	cfg.Click.Enabled = true

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Theme != "gruvbox" {
		t.Errorf("expected theme gruvbox, got %s", loaded.Theme)
	}
	if loaded.Listen.Until != "x" {
		t.Errorf("expected until x, got %s", loaded.Listen.Until)
	}
	if !loaded.Click.Enabled {
		t.Error("expected click enabled after round trip")
	}
}
