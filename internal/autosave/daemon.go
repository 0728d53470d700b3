// Package autosave is a timer- and change-driven backstop that flushes the
// profile and settings slots to the backend. Discrete mutations already
// write through; this daemon exists so a missed write is repaired within
// one interval. All three triggers (interval tick, debounced change,
// teardown) converge on the same idempotent Flush.
package autosave

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultInterval is the unconditional retry cadence while pending.
	DefaultInterval = 3 * time.Minute
	// DefaultDebounce is the quiet period after the last change before a
	// flush fires. Rapid consecutive changes keep deferring it.
	DefaultDebounce = 5 * time.Second

	// backgroundFlushTimeout bounds the timer-driven flushes; teardown
	// gets a much shorter budget so Close cannot stall shutdown.
	backgroundFlushTimeout = 10 * time.Second
	teardownTimeout        = 2 * time.Second
)

// FlushFunc upserts the full current profile and settings rows.
type FlushFunc func(context.Context) error

// Options tune the daemon; zero values take the defaults.
type Options struct {
	Interval time.Duration
	Debounce time.Duration
	Logger   *slog.Logger
}

// Daemon owns the pending-changes flag and all autosave timers.
type Daemon struct {
	flush  FlushFunc
	active func() bool
	log    *slog.Logger

	interval time.Duration
	debounce time.Duration

	mu       sync.Mutex
	pending  bool
	gen      uint64 // bumped on every MarkDirty so mid-flush changes survive
	timer    *time.Timer
	lastSave time.Time
	started  bool
	closed   bool

	stop chan struct{}
	done chan struct{}
}

// New builds a daemon. active gates every flush: when it reports false
// (no cloud mode) the daemon does nothing.
func New(flush FlushFunc, active func() bool, opts Options) *Daemon {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Daemon{
		flush:    flush,
		active:   active,
		log:      log,
		interval: interval,
		debounce: debounce,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the interval loop. It returns immediately.
func (d *Daemon) Start() {
	d.mu.Lock()
	if d.started || d.closed {
		d.mu.Unlock()
		return
	}
	d.started = true
	d.mu.Unlock()
	go func() {
		defer close(d.done)
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		for {
			select {
			case <-d.stop:
				return
			case <-ticker.C:
				d.flushNow()
			}
		}
	}()
}

// MarkDirty records a change to the watched state and (re)starts the
// debounce timer. Standard debounce: the flush fires once, timed from the
// last change, not the first.
func (d *Daemon) MarkDirty() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.pending = true
	d.gen++
	if d.timer == nil {
		d.timer = time.AfterFunc(d.debounce, d.flushNow)
	} else {
		d.timer.Reset(d.debounce)
	}
}

// Flush is the single idempotent flush entry point. It is a no-op when
// cloud mode is inactive or nothing is pending; calling it repeatedly is
// safe. On failure the pending flag stays set so the next trigger retries.
//
// active runs outside d.mu: it reads the caller's state through the
// caller's own locks, and MarkDirty arrives from under those same locks.
func (d *Daemon) Flush(ctx context.Context) error {
	if !d.active() {
		return nil
	}
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return nil
	}
	gen := d.gen
	d.mu.Unlock()

	err := d.flush(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		return err
	}
	// Changes that arrived mid-flush keep the flag for the next trigger.
	if d.gen == gen {
		d.pending = false
	}
	d.lastSave = time.Now()
	return nil
}

// LastSave returns the time of the last successful flush.
func (d *Daemon) LastSave() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastSave
}

// Pending reports whether unsaved profile/settings changes exist.
func (d *Daemon) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Daemon) flushNow() {
	ctx, cancel := context.WithTimeout(context.Background(), backgroundFlushTimeout)
	defer cancel()
	if err := d.Flush(ctx); err != nil {
		d.log.Warn("autosave flush failed", "err", err)
	}
}

// Close stops the timers and attempts one last best-effort flush. It must
// not block teardown for long and is allowed to silently fail.
func (d *Daemon) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	started := d.started
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	close(d.stop)
	if started {
		<-d.done
	}

	ctx, cancel := context.WithTimeout(context.Background(), teardownTimeout)
	defer cancel()
	if err := d.Flush(ctx); err != nil {
		d.log.Warn("teardown flush failed", "err", err)
	}
}
