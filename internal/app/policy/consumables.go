package policy

import "wardmind/internal/domain/engage"

// ConsumablesPolicy tops up health in the non-emergency band: below the heal
// threshold but above the reflex tier's critical line, with a potion carried.
type ConsumablesPolicy struct{}

func (ConsumablesPolicy) Name() string { return "consumables" }

func (ConsumablesPolicy) Applicable(s engage.StateSnapshot) bool {
	ratio := s.HPRatio()
	if ratio >= engage.HPHealRatio || ratio < engage.HPCriticalRatio {
		return false
	}
	item, ok := s.BestItemOfKind(engage.ItemKindHealing)
	if !ok {
		return false
	}
	// The last potion stays reserved for the critical-HP reflex.
	return s.CountItem(item.Name) > 1
}

func (ConsumablesPolicy) Decide(s engage.StateSnapshot) engage.CandidateAction {
	item, _ := s.BestItemOfKind(engage.ItemKindHealing)
	return engage.CandidateAction{
		Kind:       engage.ActionUseItem,
		Params:     map[string]string{"item": item.Name},
		Confidence: 0.75,
		Rationale:  "consumables: hp below heal threshold, topping up",
	}
}
