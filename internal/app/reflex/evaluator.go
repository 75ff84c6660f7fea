package reflex

import (
	"fmt"

	"wardmind/internal/domain/engage"
)

// Evaluator is the emergency tier: a fixed set of survival predicates over
// the snapshot, each mapped to one deterministic action. No I/O, no state.
// Precedence is fixed; the survival-health check outranks everything else.
type Evaluator struct{}

// Evaluate returns the emergency action and true when a predicate fires.
func (Evaluator) Evaluate(s engage.StateSnapshot) (engage.CandidateAction, bool) {
	if s.HPRatio() < engage.HPCriticalRatio {
		return healAction(s, "hp critical"), true
	}

	if effect, ok := s.HasDisablingStatus(); ok {
		if cure, found := s.BestItemOfKind(engage.ItemKindStatusCure); found {
			return action(engage.ActionUseItem, map[string]string{"item": cure.Name},
				fmt.Sprintf("reflex: disabling status %s, curing", effect)), true
		}
		return action(engage.ActionRest, nil,
			fmt.Sprintf("reflex: disabling status %s, no cure carried", effect)), true
	}

	if s.HPRatio() < engage.HPLowRatio && s.UnderAttack() {
		return healAction(s, "low hp under attack"), true
	}

	if s.WeightRatio() >= engage.WeightCriticalRatio {
		return action(engage.ActionCommand, map[string]string{"command": "storage"},
			"reflex: over carry capacity, storing"), true
	}

	if s.Vitals.MaxSP > 0 && s.SPRatio() < engage.SPCriticalRatio {
		if restore, found := s.BestItemOfKind(engage.ItemKindSPRestore); found {
			return action(engage.ActionUseItem, map[string]string{"item": restore.Name},
				"reflex: sp critically low"), true
		}
		return action(engage.ActionRest, nil, "reflex: sp critically low, no restore carried"), true
	}

	return engage.CandidateAction{}, false
}

func healAction(s engage.StateSnapshot, cause string) engage.CandidateAction {
	if item, ok := s.BestItemOfKind(engage.ItemKindHealing); ok {
		return action(engage.ActionUseItem, map[string]string{"item": item.Name},
			"reflex: "+cause+", emergency healing")
	}
	// Nothing to drink; sitting still is the only recovery left.
	return action(engage.ActionRest, nil, "reflex: "+cause+", no healing item carried")
}

func action(kind engage.ActionKind, params map[string]string, rationale string) engage.CandidateAction {
	return engage.CandidateAction{
		Kind:       kind,
		Params:     params,
		Confidence: 1.0,
		Rationale:  rationale,
	}
}
