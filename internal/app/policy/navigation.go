package policy

import (
	"fmt"

	"wardmind/internal/domain/engage"
)

// NavigationPolicy retreats when the position is swarmed: several aggressive
// hostiles inside safe distance make fighting in place a losing trade.
type NavigationPolicy struct{}

func (NavigationPolicy) Name() string { return "navigation" }

func (NavigationPolicy) Applicable(s engage.StateSnapshot) bool {
	return s.AggressiveWithin(engage.SafeDistance) >= engage.SwarmThreshold
}

func (NavigationPolicy) Decide(s engage.StateSnapshot) engage.CandidateAction {
	n := s.AggressiveWithin(engage.SafeDistance)
	return engage.CandidateAction{
		Kind:       engage.ActionMove,
		Params:     map[string]string{"direction": "away"},
		Confidence: 0.7,
		Rationale:  fmt.Sprintf("navigation: %d aggressive hostiles inside safe distance, retreating", n),
	}
}
