package debounce

import (
	"sync"
	"time"
)

// Debouncer is a single-slot debounce primitive: scheduling a new callback
// cancels any unfired prior one, so at most one callback is ever pending.
type Debouncer struct {
	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func New() *Debouncer {
	return &Debouncer{}
}

// Schedule arranges for fn to run after d. Any previously scheduled callback
// that has not fired yet is cancelled first.
func (db *Debouncer) Schedule(d time.Duration, fn func()) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.stopped {
		return
	}
	if db.timer != nil {
		db.timer.Stop()
	}
	db.timer = time.AfterFunc(d, fn)
}

// Stop cancels any pending callback and prevents further scheduling. It is
// called on view teardown.
func (db *Debouncer) Stop() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.stopped = true
	if db.timer != nil {
		db.timer.Stop()
		db.timer = nil
	}
}
