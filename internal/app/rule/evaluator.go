// Package rule is the deterministic fallback tier. Its Decide never returns
// an empty action: when every remote tier is unavailable or declined, the
// cycle still commits something from here.
package rule

import (
	"fmt"

	"wardmind/internal/domain/engage"
)

type Evaluator struct{}

// ShouldHandle gates the mid-ladder consultation. When it declines, the
// orchestrator goes on to the remote tiers; the unconditional fallback pass
// at the end of the cycle calls Decide directly.
func (Evaluator) ShouldHandle(s engage.StateSnapshot) bool {
	if len(s.Hostiles) > 0 {
		return true
	}
	ratio := s.HPRatio()
	return ratio < engage.HPHealRatio && ratio >= engage.HPCriticalRatio
}

// Decide walks the rule table in declared order and commits the first match.
func (Evaluator) Decide(s engage.StateSnapshot) engage.CandidateAction {
	ratio := s.HPRatio()

	if ratio < engage.HPHealRatio && ratio >= engage.HPCriticalRatio {
		if item, ok := s.BestItemOfKind(engage.ItemKindHealing); ok {
			return engage.CandidateAction{
				Kind:       engage.ActionUseItem,
				Params:     map[string]string{"item": item.Name},
				Confidence: 0.6,
				Rationale:  "rule: hp below heal threshold",
			}
		}
	}

	if s.AggressiveWithin(engage.SafeDistance) >= engage.SwarmThreshold {
		return engage.CandidateAction{
			Kind:       engage.ActionMove,
			Params:     map[string]string{"direction": "away"},
			Confidence: 0.6,
			Rationale:  "rule: swarmed, retreating",
		}
	}

	if ratio >= engage.HPLowRatio {
		if target, ok := s.NearestHostile(engage.AttackRange); ok {
			return engage.CandidateAction{
				Kind:       engage.ActionAttack,
				Params:     map[string]string{"target": target.ID},
				Confidence: 0.6,
				Rationale:  fmt.Sprintf("rule: engaging %s", target.Name),
			}
		}
	}

	return engage.CandidateAction{
		Kind:       engage.ActionNone,
		Confidence: 0.3,
		Rationale:  "rule: no condition matched, idling",
	}
}
