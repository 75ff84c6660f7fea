package decide

import (
	"context"
	"time"

	"wardmind/internal/app/guard"
	"wardmind/internal/app/policy"
	"wardmind/internal/app/ports"
	"wardmind/internal/domain/engage"
)

var t0 = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

type stubTier struct {
	name   string
	handle bool
	act    engage.CandidateAction
	err    error
	calls  int
}

func (s *stubTier) Name() string                               { return s.name }
func (s *stubTier) ShouldHandle(engage.StateSnapshot) bool     { return s.handle }
func (s *stubTier) Decide(ctx context.Context, _ engage.StateSnapshot) (engage.CandidateAction, error) {
	s.calls++
	if s.err != nil {
		return engage.CandidateAction{}, s.err
	}
	return s.act, nil
}

type stubDecisionRepo struct {
	records []ports.DecisionRecord
	err     error
}

func (r *stubDecisionRepo) Append(ctx context.Context, rec ports.DecisionRecord) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *stubDecisionRepo) ListByAgentID(ctx context.Context, agentID string, limit int) ([]ports.DecisionRecord, error) {
	return r.records, nil
}

type stubMetrics struct {
	decisions map[engage.Tier]int
	errors    int
}

func (m *stubMetrics) RecordDecision(tier engage.Tier, _ time.Duration) {
	if m.decisions == nil {
		m.decisions = make(map[engage.Tier]int)
	}
	m.decisions[tier]++
}

func (m *stubMetrics) RecordCycleError() { m.errors++ }

type fixture struct {
	uc      *UseCase
	pattern *stubTier
	planner *stubTier
	repo    *stubDecisionRepo
	metrics *stubMetrics
	clock   *time.Time
}

func newFixture() *fixture {
	now := t0
	f := &fixture{
		pattern: &stubTier{name: "pattern"},
		planner: &stubTier{name: "planner"},
		repo:    &stubDecisionRepo{},
		metrics: &stubMetrics{},
		clock:   &now,
	}
	f.uc = &UseCase{
		Policies:           policy.DefaultBank(),
		Pattern:            f.pattern,
		Planner:            f.planner,
		Guards:             guard.NewSet(guard.DefaultConfig()),
		Decisions:          f.repo,
		Metrics:            f.metrics,
		PatternBudget:      engage.DefaultPatternBudget,
		PlannerBudget:      engage.DefaultPlannerBudget,
		PlannerMinInterval: engage.DefaultPlannerMinInterval,
		Now:                func() time.Time { return *f.clock },
	}
	return f
}

func (f *fixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

func healthySnapshot(agentID string) engage.StateSnapshot {
	return engage.StateSnapshot{
		AgentID:  agentID,
		Level:    42,
		Vitals:   engage.Vitals{HP: 100, MaxHP: 100, SP: 80, MaxSP: 100},
		Position: engage.Position{Map: "prt_fild08", X: 100, Y: 100},
	}
}

// distantHostileSnapshot escalates past every local tier: healthy vitals, a
// hostile too far for combat or the rule table, nothing else to do.
func distantHostileSnapshot(agentID string) engage.StateSnapshot {
	s := healthySnapshot(agentID)
	s.Hostiles = []engage.Hostile{{ID: "m1", Name: "wanderer", Distance: 15}}
	return s
}
