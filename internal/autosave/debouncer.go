package autosave

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// SaveFunc persists the current document state.
type SaveFunc func()

// Debouncer coalesces bursts of edit notifications into a single save. Each
// Notify resets the timer, so only the last scheduled save within a quiet
// window executes.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	save     SaveFunc
	timer    *time.Timer
	dirty    bool
	stopped  bool
	logger   zerolog.Logger
}

// NewDebouncer creates a debouncer that invokes save after interval of
// inactivity following the last Notify.
func NewDebouncer(interval time.Duration, save SaveFunc, logger zerolog.Logger) *Debouncer {
	return &Debouncer{
		interval: interval,
		save:     save,
		logger:   logger.With().Str("component", "AutoSaveDebouncer").Logger(),
	}
}

// Notify records an edit and restarts the quiet-window timer. Calls after
// Stop are ignored.
func (d *Debouncer) Notify() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.dirty = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped || !d.dirty {
		d.mu.Unlock()
		return
	}
	d.dirty = false
	save := d.save
	d.mu.Unlock()

	d.logger.Debug().Msg("Auto-save triggered")
	save()
}

// Flush runs a pending save immediately and cancels the timer. Calling it
// with nothing pending is a no-op.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.stopped || !d.dirty {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.dirty = false
	save := d.save
	d.mu.Unlock()

	save()
}

// Stop cancels any pending save and ignores further notifications. Safe to
// call multiple times.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.stopped = true
	d.dirty = false
	if d.timer != nil {
		d.timer.Stop()
	}
}
