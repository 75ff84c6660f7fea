package guard

import "time"

// Cooldown names used by the orchestrator. emergency_pause suspends remote
// tiers only; the rest hold the whole cycle.
const (
	CooldownEmergencyPause = "emergency_pause"
	CooldownPostMove       = "post_move"
	CooldownZoneChange     = "zone_change"
	CooldownLoopBreak      = "loop_break"
)

// CooldownSet tracks named expiry timestamps.
type CooldownSet struct {
	until map[string]time.Time
}

func NewCooldownSet() *CooldownSet {
	return &CooldownSet{until: make(map[string]time.Time)}
}

// Engage starts or extends a cooldown. A shorter re-engage never truncates a
// running one.
func (c *CooldownSet) Engage(name string, d time.Duration, now time.Time) {
	expiry := now.Add(d)
	if expiry.After(c.until[name]) {
		c.until[name] = expiry
	}
}

func (c *CooldownSet) Active(name string, now time.Time) bool {
	return c.until[name].After(now)
}

// ActiveAny returns the first active cooldown among names, in the given order.
func (c *CooldownSet) ActiveAny(now time.Time, names ...string) (string, bool) {
	for _, name := range names {
		if c.Active(name, now) {
			return name, true
		}
	}
	return "", false
}

func (c *CooldownSet) Remaining(name string, now time.Time) time.Duration {
	if d := c.until[name].Sub(now); d > 0 {
		return d
	}
	return 0
}
