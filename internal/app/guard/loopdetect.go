package guard

import "time"

// LoopDetector counts visits per map cell inside a rolling window. Crossing
// the threshold signals once and zeroes that cell, so a stuck agent triggers
// one intervention per episode instead of one per cycle.
type LoopDetector struct {
	threshold int
	window    time.Duration

	windowStart time.Time
	visits      map[string]int
}

func NewLoopDetector(threshold int, window time.Duration) *LoopDetector {
	return &LoopDetector{
		threshold: threshold,
		window:    window,
		visits:    make(map[string]int),
	}
}

// Visit records one visit to the cell and reports whether the loop threshold
// was crossed by this visit.
func (l *LoopDetector) Visit(cell string, now time.Time) bool {
	if l.windowStart.IsZero() || now.Sub(l.windowStart) >= l.window {
		l.windowStart = now
		l.visits = make(map[string]int)
	}
	l.visits[cell]++
	if l.visits[cell] > l.threshold {
		l.visits[cell] = 0
		return true
	}
	return false
}
