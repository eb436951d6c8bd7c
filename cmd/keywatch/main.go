// Command keywatch listens to the terminal and prints key press and
// release events as they are inferred, with optional audible clicks
// and a session journal.
//
// Usage:
//
//	keywatch [flags]           live event stream
//	keywatch record [flags]    live stream plus a session transcript
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jlehtima/keywatch"
	"github.com/jlehtima/keywatch/internal/click"
	"github.com/jlehtima/keywatch/internal/config"
	"github.com/jlehtima/keywatch/internal/journal"
	"github.com/jlehtima/keywatch/internal/theme"
)

func main() {
	run()
}

func run() {
	// Handle the record subcommand before flag parsing
	record := len(os.Args) > 1 && os.Args[1] == "record"
	if record {
		os.Args = append(os.Args[:1:1], os.Args[2:]...)
	}

	var (
		cfgPath    = flag.String("config", config.DefaultPath(), "config file path")
		until      = flag.String("until", "", "terminating key (default from config, esc)")
		sequential = flag.Bool("sequential", false, "run handlers one at a time")
		delaySec   = flag.Int("delay-second", 0, "first-repeat silence threshold in ms")
		delayOther = flag.Int("delay-other", 0, "later-repeat silence threshold in ms")
		noLower    = flag.Bool("no-lower", false, "keep upper-case keys distinct")
		sleepMs    = flag.Int("sleep", 0, "poll interval in ms")
		workers    = flag.Int("workers", 0, "bound the concurrent dispatch pool")
		clickFlag  = flag.Bool("click", false, "audible tick on press and release")
		themeName  = flag.String("theme", "", "color theme: "+strings.Join(theme.Names(), ", "))
		copyFlag   = flag.Bool("copy", false, "copy the session transcript to the clipboard (record mode)")
		debug      = flag.Bool("debug", false, "enable debug logging to stderr")
	)
	flag.Parse()

	// Set up debug logger
	var dbg *log.Logger
	if *debug {
		dbg = log.New(os.Stderr, "[DEBUG] ", log.Ltime|log.Lmicroseconds)
	} else {
		dbg = log.New(io.Discard, "", 0)
	}

	// Load config, then apply any flags that were set explicitly
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "until":
			cfg.Listen.Until = *until
		case "sequential":
			cfg.Listen.Sequential = *sequential
		case "delay-second":
			cfg.Listen.DelaySecondCharMs = *delaySec
		case "delay-other":
			cfg.Listen.DelayOtherCharsMs = *delayOther
		case "no-lower":
			cfg.Listen.Lower = !*noLower
		case "sleep":
			cfg.Listen.SleepMs = *sleepMs
		case "workers":
			cfg.Listen.MaxWorkers = *workers
		case "click":
			cfg.Click.Enabled = *clickFlag
		case "theme":
			cfg.Theme = *themeName
		case "copy":
			cfg.Journal.CopyToClipboard = *copyFlag
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	styles := theme.NewStyles(theme.Get(cfg.Theme))

	clicker, err := click.New(cfg.Click.PressWav, cfg.Click.ReleaseWav, cfg.Click.Enabled, dbg)
	if err != nil {
		log.Fatalf("create click player: %v", err)
	}

	var jnl *journal.Journal
	if record {
		jnl = journal.New()
	}

	// Output and held-key tracking shared by concurrent handlers
	var (
		outMu  sync.Mutex
		heldAt = map[string]time.Time{}
	)

	kw := keywatch.DefaultConfig()
	kw.Until = cfg.Listen.Until
	kw.Sequential = cfg.Listen.Sequential
	kw.DelaySecondChar = cfg.Listen.DelaySecondChar()
	kw.DelayOtherChars = cfg.Listen.DelayOtherChars()
	kw.Lower = cfg.Listen.Lower
	kw.Sleep = cfg.Listen.Sleep()
	kw.MaxWorkers = cfg.Listen.MaxWorkers
	kw.Debug = *debug
	kw.Logger = dbg

	kw.OnPress = func(key string) error {
		clicker.PlayPress()
		if jnl != nil {
			jnl.Press(key)
		}
		outMu.Lock()
		defer outMu.Unlock()
		heldAt[key] = time.Now()
		fmt.Println(styles.PressLine(key))
		return nil
	}
	kw.OnRelease = func(key string) error {
		clicker.PlayRelease()
		if jnl != nil {
			jnl.Release(key)
		}
		outMu.Lock()
		defer outMu.Unlock()
		var held time.Duration
		if at, ok := heldAt[key]; ok {
			held = time.Since(at)
			delete(heldAt, key)
		}
		fmt.Println(styles.ReleaseLine(key, held))
		return nil
	}

	if kw.Until != "" {
		fmt.Println(styles.Hint(fmt.Sprintf("listening, press %q to stop", kw.Until)))
	} else {
		fmt.Println(styles.Hint("listening, interrupt to stop"))
	}

	l, err := keywatch.New(kw)
	if err != nil {
		log.Fatalf("create listener: %v", err)
	}
	if err := l.Listen(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorLine(fmt.Sprintf("listener error: %v", err)))
		os.Exit(1)
	}

	if jnl != nil {
		transcript := jnl.Transcript()
		if transcript == "" {
			fmt.Println(styles.Hint("no key events recorded"))
			return
		}
		fmt.Println()
		fmt.Println(styles.Hint("session transcript:"))
		fmt.Print(transcript)
		if seq := jnl.Sequence(); seq != "" {
			fmt.Println(styles.Hint("keys: " + seq))
		}
		if cfg.Journal.CopyToClipboard {
			if err := jnl.CopyToClipboard(); err != nil {
				dbg.Printf("clipboard: %v", err)
				fmt.Fprintln(os.Stderr, styles.ErrorLine(fmt.Sprintf("clipboard copy failed: %v", err)))
			} else {
				fmt.Println(styles.Hint("transcript copied to clipboard"))
			}
		}
	}
}
