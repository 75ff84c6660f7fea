package guard

import "time"

type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half_open"
)

// Breaker guards one remote tier. Consecutive failures open it; after the
// reset timeout exactly one trial call probes the tier, and the trial's
// outcome decides between closing again and re-opening.
type Breaker struct {
	failureThreshold int
	resetTimeout     time.Duration

	state         BreakerState
	failures      int
	openedAt      time.Time
	trialInFlight bool
}

func NewBreaker(failureThreshold int, resetTimeout time.Duration) *Breaker {
	return &Breaker{
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
		state:            BreakerClosed,
	}
}

// Allow reports whether a call may go out now. In the half-open state only
// the first caller gets through until its outcome is reported.
func (b *Breaker) Allow(now time.Time) bool {
	switch b.state {
	case BreakerClosed:
		return true
	case BreakerOpen:
		if now.Sub(b.openedAt) < b.resetTimeout {
			return false
		}
		b.state = BreakerHalfOpen
		b.trialInFlight = true
		return true
	case BreakerHalfOpen:
		if b.trialInFlight {
			return false
		}
		b.trialInFlight = true
		return true
	}
	return false
}

// CancelTrial releases a half-open trial reservation that never turned into a
// call, so a later check rejecting the attempt does not consume the trial.
func (b *Breaker) CancelTrial() {
	if b.state == BreakerHalfOpen {
		b.trialInFlight = false
	}
}

// RecordSuccess ignores the open state: no call is allowed out while open, so
// a late success report must not skip the half-open probe.
func (b *Breaker) RecordSuccess() {
	if b.state == BreakerOpen {
		return
	}
	b.state = BreakerClosed
	b.failures = 0
	b.trialInFlight = false
}

func (b *Breaker) RecordFailure(now time.Time) {
	b.trialInFlight = false
	if b.state == BreakerHalfOpen {
		b.state = BreakerOpen
		b.openedAt = now
		return
	}
	b.failures++
	if b.failures >= b.failureThreshold {
		b.state = BreakerOpen
		b.openedAt = now
	}
}

func (b *Breaker) State() BreakerState { return b.state }
