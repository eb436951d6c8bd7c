package keywatch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// direction tags a dispatched event.
type direction int

const (
	press direction = iota
	release
)

func (d direction) String() string {
	if d == press {
		return "press"
	}
	return "release"
}

// dispatcher runs key handlers either inline on the read loop or on an
// errgroup worker pool. A handler failure in either mode becomes the
// listener's stop condition.
type dispatcher struct {
	onPress    KeyHandler
	onRelease  KeyHandler
	sequential bool

	parent context.Context
	group  *errgroup.Group
	ctx    context.Context
}

func newDispatcher(ctx context.Context, cfg Config) *dispatcher {
	d := &dispatcher{
		onPress:    cfg.OnPress,
		onRelease:  cfg.OnRelease,
		sequential: cfg.Sequential,
		parent:     ctx,
		ctx:        ctx,
	}
	if !cfg.Sequential {
		d.group, d.ctx = errgroup.WithContext(ctx)
		if cfg.MaxWorkers > 0 {
			d.group.SetLimit(cfg.MaxWorkers)
		}
	}
	return d
}

// dispatch fires the handler for one event. Sequential mode reports
// the handler's error directly; concurrent mode hands the call to the
// pool and surfaces failures later through failed and wait. Submission
// order always matches input order, so a release handed off before a
// press is also started before it.
func (d *dispatcher) dispatch(dir direction, key string) error {
	h := d.onPress
	if dir == release {
		h = d.onRelease
	}
	if h == nil {
		return nil
	}
	if d.sequential {
		if err := h(key); err != nil {
			return fmt.Errorf("%s handler: %w", dir, err)
		}
		return nil
	}
	d.group.Go(func() error {
		if err := h(key); err != nil {
			return fmt.Errorf("%s handler: %w", dir, err)
		}
		return nil
	})
	return nil
}

// failed reports whether a concurrent handler has failed. External
// cancellation of the parent context is not a failure.
func (d *dispatcher) failed() bool {
	return d.group != nil && d.ctx.Err() != nil && d.parent.Err() == nil
}

// wait drains in-flight handlers and returns the first failure.
func (d *dispatcher) wait() error {
	if d.group == nil {
		return nil
	}
	return d.group.Wait()
}
