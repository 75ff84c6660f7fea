// Package feedback ingests the executor's post-hoc reports on committed
// decisions. Outcomes of remote-tier actions feed the per-agent breakers;
// repeated configuration conflict reports trigger the self-heal pipeline.
package feedback

import (
	"context"
	"errors"
	"strings"
	"time"

	"wardmind/internal/app/guard"
	"wardmind/internal/app/heal"
	"wardmind/internal/domain/engage"
)

var ErrInvalidFeedback = errors.New("invalid feedback")

// ConflictPrefix marks reason codes that name a configuration conflict. The
// remainder of the code is the offending directive.
const ConflictPrefix = "config_conflict:"

type Response struct {
	Healed bool
}

type UseCase struct {
	Guards   *guard.Set
	Detector *heal.Detector
	Resolver *heal.Resolver

	Now func() time.Time
}

func (u *UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func (u *UseCase) Execute(ctx context.Context, fb engage.Feedback) (Response, error) {
	if fb.AgentID == "" || fb.CycleID == "" {
		return Response{}, ErrInvalidFeedback
	}
	switch fb.Status {
	case engage.FeedbackSuccess, engage.FeedbackFailed, engage.FeedbackPartial:
	default:
		return Response{}, ErrInvalidFeedback
	}

	now := u.now()

	// Execution outcomes of remote-tier actions count toward the breakers:
	// a planner whose plans keep failing in the world is as broken as one
	// that times out.
	if fb.Tier == engage.TierPattern || fb.Tier == engage.TierPlanner {
		u.Guards.For(fb.AgentID).ReportOutcome(string(fb.Tier), fb.Status == engage.FeedbackSuccess, now)
	}

	if fb.Status == engage.FeedbackSuccess || !strings.HasPrefix(fb.ReasonCode, ConflictPrefix) {
		return Response{}, nil
	}

	directive := strings.TrimSpace(strings.TrimPrefix(fb.ReasonCode, ConflictPrefix))
	if directive == "" || u.Detector == nil || u.Resolver == nil {
		return Response{}, nil
	}
	if !u.Detector.Observe(fb.ReasonCode, now) {
		return Response{}, nil
	}

	err := u.Resolver.Resolve(ctx, heal.Conflict{
		Reason:     fb.ReasonCode,
		Directives: []string{directive},
	})
	if errors.Is(err, heal.ErrNoMatchingDirective) {
		// The reported directive is not in the artifact; nothing to disable.
		return Response{}, nil
	}
	if err != nil {
		return Response{}, err
	}
	return Response{Healed: true}, nil
}
