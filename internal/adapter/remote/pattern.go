package remote

import (
	"context"

	"wardmind/internal/domain/engage"
)

// Pattern is the learned-model tier. It is cheap enough to consult on any
// cycle that reaches it with hostiles on the field.
type Pattern struct {
	client client
}

func NewPattern(baseURL string) *Pattern {
	return &Pattern{client: newClient("pattern", baseURL)}
}

func (p *Pattern) Name() string { return "pattern" }

func (p *Pattern) ShouldHandle(s engage.StateSnapshot) bool {
	return len(s.Hostiles) > 0
}

func (p *Pattern) Decide(ctx context.Context, s engage.StateSnapshot) (engage.CandidateAction, error) {
	return p.client.suggest(ctx, s)
}
