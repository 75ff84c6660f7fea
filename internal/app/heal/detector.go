// Package heal turns repeated configuration conflict reports into directive
// neutralizations on the external config artifact. The artifact is owned by
// the host automation framework; we only ever comment lines out, never
// delete or rewrite them.
package heal

import "time"

// Detector debounces conflict signals: a single report may be noise, the
// same signal repeating within the interval is a real conflict.
type Detector struct {
	threshold int
	interval  time.Duration

	seen map[string][]time.Time
}

func NewDetector(threshold int, interval time.Duration) *Detector {
	return &Detector{
		threshold: threshold,
		interval:  interval,
		seen:      make(map[string][]time.Time),
	}
}

// Observe records one occurrence of the signal and reports whether the
// threshold was reached inside the interval. A firing observation clears the
// signal's history so one conflict heals once.
func (d *Detector) Observe(signal string, now time.Time) bool {
	cutoff := now.Add(-d.interval)
	kept := d.seen[signal][:0]
	for _, ts := range d.seen[signal] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	kept = append(kept, now)

	if len(kept) >= d.threshold {
		delete(d.seen, signal)
		return true
	}
	d.seen[signal] = kept
	return false
}
