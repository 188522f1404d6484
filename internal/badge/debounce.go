package badge

import (
	"sync"
	"time"
)

// Debouncer drops repeated scans of the same badge inside a short window.
// RFID readers can report one physical badge tap several times; without this
// filter a double report would reach the clock service as in-then-out.
//
// Seen tags are remembered for the lifetime of the process; at kiosk scale
// the map stays small.
type Debouncer struct {
	window time.Duration

	mu   sync.Mutex
	last map[string]time.Time
}

func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window, last: make(map[string]time.Time)}
}

// Allow reports whether a scan of tag at the given time should be processed,
// and records it as the latest scan when it is.
func (d *Debouncer) Allow(tag string, at time.Time) bool {
	if d.window <= 0 {
		return true
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.last[tag]; ok && at.Sub(prev) < d.window {
		return false
	}
	d.last[tag] = at
	return true
}
