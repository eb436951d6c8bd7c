package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// ListenConfig holds key listener settings.
type ListenConfig struct {
	Until             string `toml:"until"`
	Sequential        bool   `toml:"sequential"`
	DelaySecondCharMs int    `toml:"delay_second_char_ms"`
	DelayOtherCharsMs int    `toml:"delay_other_chars_ms"`
	Lower             bool   `toml:"lower"`
	SleepMs           int    `toml:"sleep_ms"`
	MaxWorkers        int    `toml:"max_workers"`
}

// DelaySecondChar returns the first-repeat threshold as a duration.
func (c ListenConfig) DelaySecondChar() time.Duration {
	return time.Duration(c.DelaySecondCharMs) * time.Millisecond
}

// DelayOtherChars returns the later-repeat threshold as a duration.
func (c ListenConfig) DelayOtherChars() time.Duration {
	return time.Duration(c.DelayOtherCharsMs) * time.Millisecond
}

// Sleep returns the poll interval as a duration.
func (c ListenConfig) Sleep() time.Duration {
	return time.Duration(c.SleepMs) * time.Millisecond
}

// ClickConfig holds audible key feedback settings. Empty WAV paths
// mean the built-in synthesized tones.
type ClickConfig struct {
	Enabled    bool   `toml:"enabled"`
	PressWav   string `toml:"press_wav"`
	ReleaseWav string `toml:"release_wav"`
}

// JournalConfig holds session journal settings.
type JournalConfig struct {
	CopyToClipboard bool `toml:"copy_to_clipboard"`
}

// Config is the top-level configuration.
type Config struct {
	Theme   string        `toml:"theme"`
	Listen  ListenConfig  `toml:"listen"`
	Click   ClickConfig   `toml:"click"`
	Journal JournalConfig `toml:"journal"`
}

// Default returns a Config populated with all default values.
func Default() *Config {
	return &Config{
		Theme: "aurora",
		Listen: ListenConfig{
			Until:             "esc",
			Sequential:        false,
			DelaySecondCharMs: 750,
			DelayOtherCharsMs: 50,
			Lower:             true,
			SleepMs:           10,
			MaxWorkers:        0,
		},
		Click: ClickConfig{
			Enabled:    false,
			PressWav:   "",
			ReleaseWav: "",
		},
		Journal: JournalConfig{
			CopyToClipboard: false,
		},
	}
}

// Validate rejects values the listener cannot work with.
func (c *Config) Validate() error {
	if c.Listen.DelaySecondCharMs < 0 {
		return fmt.Errorf("listen.delay_second_char_ms is negative: %d", c.Listen.DelaySecondCharMs)
	}
	if c.Listen.DelayOtherCharsMs < 0 {
		return fmt.Errorf("listen.delay_other_chars_ms is negative: %d", c.Listen.DelayOtherCharsMs)
	}
	if c.Listen.SleepMs < 0 {
		return fmt.Errorf("listen.sleep_ms is negative: %d", c.Listen.SleepMs)
	}
	if c.Listen.MaxWorkers < 0 {
		return fmt.Errorf("listen.max_workers is negative: %d", c.Listen.MaxWorkers)
	}
	return nil
}

// DefaultPath returns the default config file path (~/.config/keywatch/config.toml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "keywatch", "config.toml")
}

// Save writes the config as TOML to the given path, creating parent
// directories if needed. The write is atomic: data is written to a
// temporary file and renamed into place so a crash mid-write cannot
// corrupt the existing config.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".keywatch-config-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

// Load reads the TOML config from path. If the file does not exist,
// it returns the default config without error.
func Load(path string) (*Config, error) {
	cfg := Default()

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	_, err = toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
