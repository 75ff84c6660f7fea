// Package decide runs the escalation ladder for one agent cycle: reflex,
// then the policy bank, then deterministic rules, then the remote pattern
// and planner tiers, with the rule table as the unconditional floor. Every
// cycle with a usable snapshot commits exactly one decision.
package decide

import (
	"context"
	"errors"
	"sync"
	"time"

	"wardmind/internal/app/guard"
	"wardmind/internal/app/policy"
	"wardmind/internal/app/ports"
	"wardmind/internal/app/reflex"
	"wardmind/internal/app/rule"
	"wardmind/internal/domain/engage"
)

var ErrSnapshotNotReady = errors.New("snapshot not ready")

type Request struct {
	CycleID  string
	Snapshot engage.StateSnapshot
}

type Response struct {
	Decision engage.Decision
}

type UseCase struct {
	Reflex   reflex.Evaluator
	Policies *policy.Bank
	Rules    rule.Evaluator
	Pattern  ports.RemoteTier
	Planner  ports.RemoteTier
	Guards   *guard.Set

	Decisions ports.DecisionRepository
	Metrics   ports.DecisionMetrics

	PatternBudget      time.Duration
	PlannerBudget      time.Duration
	PlannerMinInterval time.Duration

	Now func() time.Time

	mu      sync.Mutex
	lastMap map[string]string
}

func (u *UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func (u *UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	s := req.Snapshot
	if !s.Ready() {
		return Response{}, ErrSnapshotNotReady
	}

	start := u.now()
	g := u.Guards.For(s.AgentID)

	u.noteZoneChange(g, s, start)

	if name, remaining, held := g.HoldActive(start); held {
		return u.commit(ctx, req, g, engage.CandidateAction{
			Kind:       engage.ActionNone,
			Params:     map[string]string{"cooldown": name},
			Confidence: 1.0,
			Rationale:  "holding for " + name + " cooldown, " + remaining.Truncate(time.Millisecond).String() + " left",
		}, engage.TierRule, start)
	}

	looping := g.ReportVisit(s.Position.CellKey(), start)
	if !looping {
		looping = g.LoopBreakActive(start)
	}

	action, tier := u.escalate(ctx, s, g, looping, start)
	return u.commit(ctx, req, g, action, tier, start)
}

func (u *UseCase) escalate(ctx context.Context, s engage.StateSnapshot, g *guard.Guard, looping bool, start time.Time) (engage.CandidateAction, engage.Tier) {
	if act, ok := u.Reflex.Evaluate(s); ok {
		return act, engage.TierReflex
	}

	var skip func(string) bool
	if looping {
		skip = func(name string) bool { return name == "navigation" }
	}
	if act, _, ok := u.Policies.First(s, skip); ok {
		return act, engage.TierPolicy
	}

	// Mid-ladder the rule table claims the cycle only when a concrete rule
	// fires; an idle result escalates to the remote tiers instead.
	if u.Rules.ShouldHandle(s) {
		if act := u.Rules.Decide(s); act.Kind != engage.ActionNone {
			return act, engage.TierRule
		}
	}

	if act, ok := u.consultRemote(ctx, u.Pattern, s, g, u.PatternBudget, false); ok {
		return act, engage.TierPattern
	}

	// A loop signal counts as a strategic trigger alongside the planner's
	// own milestone gate.
	if u.Planner != nil && g.IntervalElapsed(u.Planner.Name(), u.PlannerMinInterval, u.now()) {
		if act, ok := u.consultRemote(ctx, u.Planner, s, g, u.PlannerBudget, looping); ok {
			return act, engage.TierPlanner
		}
	}

	return u.Rules.Decide(s), engage.TierRule
}

// consultRemote runs one guarded exchange with a remote tier. Any failure
// counts against the tier's breaker and falls through to the next tier.
func (u *UseCase) consultRemote(ctx context.Context, tier ports.RemoteTier, s engage.StateSnapshot, g *guard.Guard, budget time.Duration, force bool) (engage.CandidateAction, bool) {
	if tier == nil || (!force && !tier.ShouldHandle(s)) {
		return engage.CandidateAction{}, false
	}
	now := u.now()
	if ok, _ := g.RemoteAllowed(tier.Name(), now); !ok {
		return engage.CandidateAction{}, false
	}
	g.StampCall(tier.Name(), now)

	callCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	act, err := tier.Decide(callCtx, s)
	if err != nil || act.IsZero() {
		g.ReportOutcome(tier.Name(), false, u.now())
		if u.Metrics != nil {
			u.Metrics.RecordCycleError()
		}
		return engage.CandidateAction{}, false
	}
	g.ReportOutcome(tier.Name(), true, u.now())
	return act, true
}

func (u *UseCase) commit(ctx context.Context, req Request, g *guard.Guard, act engage.CandidateAction, tier engage.Tier, start time.Time) (Response, error) {
	end := u.now()
	decision := engage.Decision{
		Action:  act,
		Tier:    tier,
		Latency: end.Sub(start),
		CycleID: req.CycleID,
	}

	if act.Kind == engage.ActionMove {
		g.EngageCooldown(guard.CooldownPostMove, engage.DefaultPostMoveCooldown, end)
	}

	if u.Metrics != nil {
		u.Metrics.RecordDecision(tier, decision.Latency)
	}
	if u.Decisions != nil {
		// Persistence is best effort; a full disk must not stop the agent.
		_ = u.Decisions.Append(ctx, ports.DecisionRecord{
			CycleID:   req.CycleID,
			AgentID:   req.Snapshot.AgentID,
			Action:    act,
			Tier:      tier,
			LatencyMS: decision.Latency.Milliseconds(),
			DecidedAt: end,
		})
	}
	return Response{Decision: decision}, nil
}

// noteZoneChange engages the zone-change hold when the snapshot arrives on a
// different map than the agent's previous cycle.
func (u *UseCase) noteZoneChange(g *guard.Guard, s engage.StateSnapshot, now time.Time) {
	u.mu.Lock()
	if u.lastMap == nil {
		u.lastMap = make(map[string]string)
	}
	prev, seen := u.lastMap[s.AgentID]
	u.lastMap[s.AgentID] = s.Position.Map
	u.mu.Unlock()

	if seen && prev != "" && s.Position.Map != "" && prev != s.Position.Map {
		g.EngageCooldown(guard.CooldownZoneChange, engage.DefaultZoneChangeCooldown, now)
	}
}
