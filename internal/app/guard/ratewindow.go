package guard

import "time"

// RateWindow caps calls per rolling window. The window restarts on the first
// call after it elapses rather than on a background timer.
type RateWindow struct {
	limit  int
	window time.Duration

	windowStart time.Time
	count       int
}

func NewRateWindow(limit int, window time.Duration) *RateWindow {
	return &RateWindow{limit: limit, window: window}
}

// Allow consumes one slot if the window has room.
func (r *RateWindow) Allow(now time.Time) bool {
	if r.windowStart.IsZero() || now.Sub(r.windowStart) >= r.window {
		r.windowStart = now
		r.count = 0
	}
	if r.count >= r.limit {
		return false
	}
	r.count++
	return true
}

// Used reports the slots consumed in the current window.
func (r *RateWindow) Used(now time.Time) int {
	if r.windowStart.IsZero() || now.Sub(r.windowStart) >= r.window {
		return 0
	}
	return r.count
}
