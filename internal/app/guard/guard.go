// Package guard holds the per-agent resilience state consulted by the
// decision orchestrator: circuit breakers for the remote tiers, the remote
// call rate window, movement loop detection, and named cooldowns. Nothing in
// here is shared between agents.
package guard

import (
	"sync"
	"time"

	"wardmind/internal/domain/engage"
)

type Config struct {
	BreakerFailureThreshold int
	BreakerResetTimeout     time.Duration
	RateLimit               int
	RateWindow              time.Duration
	EmergencyPause          time.Duration
	LoopThreshold           int
	LoopWindow              time.Duration
	LoopBreakCooldown       time.Duration
}

func DefaultConfig() Config {
	return Config{
		BreakerFailureThreshold: engage.DefaultBreakerFailureThreshold,
		BreakerResetTimeout:     engage.DefaultBreakerResetTimeout,
		RateLimit:               engage.DefaultRateLimit,
		RateWindow:              engage.DefaultRateWindow,
		EmergencyPause:          engage.DefaultEmergencyPause,
		LoopThreshold:           engage.DefaultLoopThreshold,
		LoopWindow:              engage.DefaultLoopWindow,
		LoopBreakCooldown:       engage.DefaultLoopBreakCooldown,
	}
}

// Guard is one agent's resilience state. All methods are safe for concurrent
// use; the decide and feedback usecases may touch the same guard at once.
type Guard struct {
	mu sync.Mutex

	cfg       Config
	breakers  map[string]*Breaker
	rate      *RateWindow
	cooldowns *CooldownSet
	loops     *LoopDetector
	lastCall  map[string]time.Time
}

func New(cfg Config) *Guard {
	return &Guard{
		cfg:       cfg,
		breakers:  make(map[string]*Breaker),
		rate:      NewRateWindow(cfg.RateLimit, cfg.RateWindow),
		cooldowns: NewCooldownSet(),
		loops:     NewLoopDetector(cfg.LoopThreshold, cfg.LoopWindow),
		lastCall:  make(map[string]time.Time),
	}
}

func (g *Guard) breaker(tier string) *Breaker {
	b, ok := g.breakers[tier]
	if !ok {
		b = NewBreaker(g.cfg.BreakerFailureThreshold, g.cfg.BreakerResetTimeout)
		g.breakers[tier] = b
	}
	return b
}

// RemoteAllowed decides whether one call to the named remote tier may go out
// now. Checks run cooldown, then breaker, then rate window; a rate rejection
// also engages the emergency pause so subsequent cycles skip remote tiers
// without burning through the checks again.
func (g *Guard) RemoteAllowed(tier string, now time.Time) (bool, string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cooldowns.Active(CooldownEmergencyPause, now) {
		return false, "emergency_pause"
	}
	br := g.breaker(tier)
	if !br.Allow(now) {
		return false, "breaker_open"
	}
	if !g.rate.Allow(now) {
		// Allow may have reserved the half-open trial; no call goes out, so
		// the reservation must not stand.
		br.CancelTrial()
		g.cooldowns.Engage(CooldownEmergencyPause, g.cfg.EmergencyPause, now)
		return false, "rate_limited"
	}
	return true, ""
}

// ReportOutcome feeds a remote call result to the tier's breaker.
func (g *Guard) ReportOutcome(tier string, success bool, now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if success {
		g.breaker(tier).RecordSuccess()
		return
	}
	g.breaker(tier).RecordFailure(now)
}

// ReportVisit records the agent's position cell for loop detection and, on a
// loop signal, engages the loop-break cooldown. Returns whether this visit
// signalled.
func (g *Guard) ReportVisit(cell string, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.loops.Visit(cell, now) {
		return false
	}
	g.cooldowns.Engage(CooldownLoopBreak, g.cfg.LoopBreakCooldown, now)
	return true
}

// HoldActive reports the first whole-cycle cooldown currently running.
// Loop break is deliberately not a hold: it redirects movement instead of
// freezing the agent in the loop it is trying to escape.
func (g *Guard) HoldActive(now time.Time) (string, time.Duration, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	name, ok := g.cooldowns.ActiveAny(now, CooldownPostMove, CooldownZoneChange)
	if !ok {
		return "", 0, false
	}
	return name, g.cooldowns.Remaining(name, now), true
}

// LoopBreakActive reports whether the loop-break cooldown is running.
func (g *Guard) LoopBreakActive(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cooldowns.Active(CooldownLoopBreak, now)
}

// EngageCooldown starts a named cooldown. The orchestrator uses this for
// post-move and zone-change holds after committing movement actions.
func (g *Guard) EngageCooldown(name string, d time.Duration, now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cooldowns.Engage(name, d, now)
}

// IntervalElapsed reports whether at least min has passed since the last
// stamped call to the tier. A tier never called before passes.
func (g *Guard) IntervalElapsed(tier string, min time.Duration, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	last, ok := g.lastCall[tier]
	return !ok || now.Sub(last) >= min
}

func (g *Guard) StampCall(tier string, now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastCall[tier] = now
}

func (g *Guard) BreakerState(tier string) BreakerState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.breaker(tier).State()
}

// Snapshot is the ops view of one agent's resilience state.
type Snapshot struct {
	Breakers  map[string]string `json:"breakers"`
	RateUsed  int               `json:"rate_used"`
	RateLimit int               `json:"rate_limit"`
	Cooldowns map[string]int64  `json:"cooldowns_remaining_ms"`
}

func (g *Guard) Snapshot(now time.Time) Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap := Snapshot{
		Breakers:  make(map[string]string, len(g.breakers)),
		RateUsed:  g.rate.Used(now),
		RateLimit: g.cfg.RateLimit,
		Cooldowns: make(map[string]int64),
	}
	for tier, b := range g.breakers {
		snap.Breakers[tier] = string(b.State())
	}
	for _, name := range []string{CooldownEmergencyPause, CooldownPostMove, CooldownZoneChange, CooldownLoopBreak} {
		if rem := g.cooldowns.Remaining(name, now); rem > 0 {
			snap.Cooldowns[name] = rem.Milliseconds()
		}
	}
	return snap
}

// Set hands out one Guard per agent. The HTTP layer serves any number of
// agents but their breakers, windows, and cooldowns never mix.
type Set struct {
	mu     sync.Mutex
	cfg    Config
	guards map[string]*Guard
}

func NewSet(cfg Config) *Set {
	return &Set{cfg: cfg, guards: make(map[string]*Guard)}
}

func (s *Set) For(agentID string) *Guard {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.guards[agentID]
	if !ok {
		g = New(s.cfg)
		s.guards[agentID] = g
	}
	return g
}

// Snapshots returns the ops view keyed by agent id.
func (s *Set) Snapshots(now time.Time) map[string]Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Snapshot, len(s.guards))
	for id, g := range s.guards {
		out[id] = g.Snapshot(now)
	}
	return out
}

// ComponentHealthy reports whether the named remote tier is callable for
// every known agent, for the health endpoint.
func (s *Set) ComponentHealthy(tier string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.guards {
		if g.BreakerState(tier) == BreakerOpen {
			return false
		}
	}
	return true
}
