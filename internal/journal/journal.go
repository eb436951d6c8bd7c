package journal

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
)

// Direction marks an entry as a press or a release.
type Direction int

const (
	Press Direction = iota
	Release
)

func (d Direction) String() string {
	if d == Press {
		return "press"
	}
	return "release"
}

// Entry is one observed key event.
type Entry struct {
	Key string
	Dir Direction
	At  time.Time
}

// Journal collects the key events of one listening session. It is safe
// for concurrent use, since handlers may record from dispatch
// goroutines.
type Journal struct {
	mu      sync.Mutex
	entries []Entry
}

func New() *Journal {
	return &Journal{}
}

// RecordAt appends an event with an explicit timestamp.
func (j *Journal) RecordAt(dir Direction, key string, at time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, Entry{Key: key, Dir: dir, At: at})
}

// Press records a key-down event at the current time.
func (j *Journal) Press(key string) {
	j.RecordAt(Press, key, time.Now())
}

// Release records a key-up event at the current time.
func (j *Journal) Release(key string) {
	j.RecordAt(Release, key, time.Now())
}

// Len returns the number of recorded events.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}

// Entries returns a copy of the recorded events in order.
func (j *Journal) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Transcript renders one line per event, offset from the first event,
// with the hold duration attached to each release:
//
//	0.000s press   a
//	0.812s release a (held 0.812s)
func (j *Journal) Transcript() string {
	entries := j.Entries()
	if len(entries) == 0 {
		return ""
	}

	start := entries[0].At
	pressAt := make(map[string]time.Time)
	var b strings.Builder
	for _, e := range entries {
		offset := e.At.Sub(start)
		switch e.Dir {
		case Press:
			pressAt[e.Key] = e.At
			fmt.Fprintf(&b, "%.3fs press   %s\n", offset.Seconds(), e.Key)
		case Release:
			if at, ok := pressAt[e.Key]; ok {
				fmt.Fprintf(&b, "%.3fs release %s (held %.3fs)\n",
					offset.Seconds(), e.Key, e.At.Sub(at).Seconds())
				delete(pressAt, e.Key)
			} else {
				fmt.Fprintf(&b, "%.3fs release %s\n", offset.Seconds(), e.Key)
			}
		}
	}
	return b.String()
}

// Sequence returns the pressed keys in order, separated by spaces.
func (j *Journal) Sequence() string {
	entries := j.Entries()
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Dir == Press {
			keys = append(keys, e.Key)
		}
	}
	return strings.Join(keys, " ")
}

// CopyToClipboard puts the transcript on the system clipboard.
func (j *Journal) CopyToClipboard() error {
	if err := clipboard.WriteAll(j.Transcript()); err != nil {
		return fmt.Errorf("copy transcript: %w", err)
	}
	return nil
}
