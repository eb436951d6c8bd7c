package keywatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// Errors reported before the terminal is touched.
var (
	// ErrAlreadyRunning is returned when a listener starts while
	// another one holds the terminal. Only one listener may run per
	// process.
	ErrAlreadyRunning = errors.New("keywatch: listener already running")
	// ErrNoHandler is returned when neither OnPress nor OnRelease is
	// configured.
	ErrNoHandler = errors.New("keywatch: either OnPress or OnRelease must be set")
)

// KeyHandler receives a readable key name such as "a", "up" or "f5".
// A non-nil error stops the listener and is returned from Listen.
type KeyHandler func(key string) error

// Defaults used by DefaultConfig. The two delays are tuned to common
// terminal auto-repeat behavior: the second byte of a held key arrives
// after the key-repeat delay, later repeats follow much faster.
const (
	DefaultDelaySecondChar = 750 * time.Millisecond
	DefaultDelayOtherChars = 50 * time.Millisecond
	DefaultSleep           = 10 * time.Millisecond
	DefaultUntil           = "esc"
)

// Config describes one listening run. It is captured by New and not
// consulted again afterwards.
type Config struct {
	// OnPress is called when a key goes down. At least one of OnPress
	// and OnRelease must be set.
	OnPress KeyHandler
	// OnRelease is called when a key is considered released. Releases
	// are inferred from silence, since terminals report no key-up.
	OnRelease KeyHandler

	// Until names a key that stops the listener. The terminating key
	// itself produces no press or release event. Empty means listen
	// until Stop is called or the context is cancelled.
	Until string
	// Sequential runs handlers one at a time on the read loop,
	// preserving strict ordering at the cost of back-pressuring input.
	Sequential bool
	// DelaySecondChar is the silence tolerated between the first and
	// second byte of a held key before a release may be inferred.
	DelaySecondChar time.Duration
	// DelayOtherChars is the silence tolerated between later repeats.
	// Both thresholds must be exceeded before a release fires. This is
	// a heuristic: a very slow terminal or a loaded SSH link can still
	// produce a false release while a key is held.
	DelayOtherChars time.Duration
	// Lower folds keys to lower case so "A" and "a" are the same key.
	Lower bool
	// Debug logs unrecognized input sequences and read errors.
	Debug bool
	// MaxWorkers bounds the concurrent dispatch pool. Zero means one
	// goroutine per event. Ignored when Sequential is set.
	MaxWorkers int
	// Sleep is the pause between read attempts. Zero keeps the loop
	// hot but it still yields between iterations.
	Sleep time.Duration
	// Logger receives debug output when Debug is set. Nil means
	// stderr.
	Logger *log.Logger
	// Source overrides the platform terminal input, mainly for tests
	// and embedders. When set, the terminal is never put into raw
	// mode.
	Source Source
}

// DefaultConfig returns the baseline configuration: stop on esc,
// lower-case keys, 750ms/50ms release thresholds and a 10ms poll
// interval. Callers fill in the handlers.
func DefaultConfig() Config {
	return Config{
		Until:           DefaultUntil,
		DelaySecondChar: DefaultDelaySecondChar,
		DelayOtherChars: DefaultDelayOtherChars,
		Lower:           true,
		Sleep:           DefaultSleep,
	}
}

// listenerState tracks the held key across loop iterations. A fresh
// one is created for every run.
type listenerState struct {
	previous         string
	pressTime        time.Time
	initialPressTime time.Time
}

// Listener infers key press and release events from a terminal input
// stream and dispatches them to the configured handlers.
type Listener struct {
	cfg Config
	dbg *log.Logger
	clk clock

	stop atomic.Bool
}

// New validates cfg and returns a listener. Configuration errors are
// reported here, before any terminal state is touched.
func New(cfg Config) (*Listener, error) {
	if cfg.OnPress == nil && cfg.OnRelease == nil {
		return nil, ErrNoHandler
	}
	if cfg.DelaySecondChar < 0 {
		return nil, fmt.Errorf("keywatch: DelaySecondChar is negative: %v", cfg.DelaySecondChar)
	}
	if cfg.DelayOtherChars < 0 {
		return nil, fmt.Errorf("keywatch: DelayOtherChars is negative: %v", cfg.DelayOtherChars)
	}
	if cfg.Sleep < 0 {
		return nil, fmt.Errorf("keywatch: Sleep is negative: %v", cfg.Sleep)
	}
	if cfg.MaxWorkers < 0 {
		return nil, fmt.Errorf("keywatch: MaxWorkers is negative: %d", cfg.MaxWorkers)
	}

	dbg := log.New(io.Discard, "", 0)
	if cfg.Debug {
		dbg = cfg.Logger
		if dbg == nil {
			dbg = log.New(os.Stderr, "[keywatch] ", log.Ltime|log.Lmicroseconds)
		}
	}
	return &Listener{cfg: cfg, dbg: dbg, clk: realClock{}}, nil
}

// Listen blocks until the terminating key is read, Stop is called, ctx
// is cancelled or a handler fails. A clean stop returns nil; a handler
// failure is returned after the terminal has been restored.
func (l *Listener) Listen(ctx context.Context) error {
	if err := l.begin(); err != nil {
		return err
	}
	defer l.end()

	src := l.cfg.Source
	if src == nil {
		term, err := openTerminal(l.dbg)
		if err != nil {
			return fmt.Errorf("keywatch: %w", err)
		}
		defer term.Restore()
		src = term
	}

	disp := newDispatcher(ctx, l.cfg)
	now := l.clk.Now()
	st := listenerState{pressTime: now, initialPressTime: now}

	var runErr error
	for runErr == nil && !l.stop.Load() && ctx.Err() == nil && !disp.failed() {
		runErr = l.react(&st, src, disp)
		l.clk.Sleep(ctx, l.cfg.Sleep)
	}

	waitErr := disp.wait()
	if runErr != nil {
		return fmt.Errorf("keywatch: %w", runErr)
	}
	if waitErr != nil {
		return fmt.Errorf("keywatch: %w", waitErr)
	}
	return nil
}

// Start runs Listen on its own goroutine for callers that already
// drive a scheduler. The returned channel receives the final result
// once and is then closed.
func (l *Listener) Start(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- l.Listen(ctx)
		close(done)
	}()
	return done
}

// Stop requests the listener to stop at the top of its next iteration.
// It is idempotent, safe from inside handlers and a no-op when the
// listener is not running.
func (l *Listener) Stop() {
	l.stop.Store(true)
}

// react runs one iteration of the inference state machine, in fixed
// order: failed reads change nothing; a token releases the previously
// held key before pressing the new one; silence past both thresholds
// releases the held key.
func (l *Listener) react(st *listenerState, src Source, disp *dispatcher) error {
	tok, ok := src.ReadKey()
	if !ok {
		return nil
	}
	now := l.clk.Now()

	if tok != "" {
		if l.cfg.Lower {
			tok = strings.ToLower(tok)
		}
		if l.cfg.Until != "" && tok == l.cfg.Until {
			l.stop.Store(true)
			return nil
		}
		if st.previous != "" && tok != st.previous {
			if err := disp.dispatch(release, st.previous); err != nil {
				return err
			}
		}
		if tok != st.previous {
			if err := disp.dispatch(press, tok); err != nil {
				return err
			}
			st.initialPressTime = now
			st.previous = tok
		}
		// Same key again: auto-repeat, not a new press.
		st.pressTime = now
		return nil
	}

	// Nothing pending. Both thresholds must pass before a release is
	// inferred, so the slow gap before the second auto-repeat byte of
	// a freshly held key does not read as a release.
	if st.previous != "" &&
		now.Sub(st.initialPressTime) > l.cfg.DelaySecondChar &&
		now.Sub(st.pressTime) > l.cfg.DelayOtherChars {
		if err := disp.dispatch(release, st.previous); err != nil {
			return err
		}
		st.previous = ""
	}
	return nil
}
