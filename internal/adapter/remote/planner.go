package remote

import (
	"context"

	"wardmind/internal/domain/engage"
)

// Planner is the slow strategic tier. Its gate is deliberately narrow: it is
// only worth a long remote exchange at level milestones, when the character's
// build and hunting grounds are due for review. The orchestrator adds the
// minimum interval between calls on top.
type Planner struct {
	client client
}

func NewPlanner(baseURL string) *Planner {
	return &Planner{client: newClient("planner", baseURL)}
}

func (p *Planner) Name() string { return "planner" }

func (p *Planner) ShouldHandle(s engage.StateSnapshot) bool {
	return s.Level >= engage.PlannerLevelMilestone && s.Level%engage.PlannerLevelMilestone == 0
}

func (p *Planner) Decide(ctx context.Context, s engage.StateSnapshot) (engage.CandidateAction, error) {
	return p.client.suggest(ctx, s)
}
