package keywatch

import (
	"context"
	"sync"
)

// The terminal is a process-wide resource, so at most one listener may
// hold it. begin and end maintain the claim.
var (
	activeMu       sync.Mutex
	activeListener *Listener
)

func (l *Listener) begin() error {
	activeMu.Lock()
	defer activeMu.Unlock()
	if activeListener != nil {
		return ErrAlreadyRunning
	}
	l.stop.Store(false)
	activeListener = l
	return nil
}

func (l *Listener) end() {
	activeMu.Lock()
	activeListener = nil
	activeMu.Unlock()
}

// Listen creates a listener from cfg and blocks until it stops. See
// Listener.Listen for the stop conditions.
func Listen(cfg Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}
	return l.Listen(context.Background())
}

// Stop stops the active listener, if any. It is idempotent, safe to
// call from inside a handler or from another goroutine, and a no-op
// when nothing is listening.
func Stop() {
	activeMu.Lock()
	l := activeListener
	activeMu.Unlock()
	if l != nil {
		l.Stop()
	}
}
