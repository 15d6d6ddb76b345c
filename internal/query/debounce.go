package query

import (
	"sync"
	"time"
)

// debouncer owns a single cancellable scheduled task. Re-arming cancels
// the previously scheduled fire (trailing-edge debounce).
type debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
}

func (d *debouncer) schedule(delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(delay, fn)
}

func (d *debouncer) cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
