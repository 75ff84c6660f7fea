package policy

import (
	"fmt"

	"wardmind/internal/domain/engage"
)

// CombatPolicy engages hostiles inside attack range, aggressive-first and
// nearest-first, as long as the character is healthy enough to fight.
type CombatPolicy struct{}

func (CombatPolicy) Name() string { return "combat" }

func (CombatPolicy) Applicable(s engage.StateSnapshot) bool {
	if s.HPRatio() < engage.HPLowRatio {
		return false
	}
	_, ok := s.NearestHostile(engage.AttackRange)
	return ok
}

func (CombatPolicy) Decide(s engage.StateSnapshot) engage.CandidateAction {
	target, ok := s.NearestHostile(engage.AttackRange)
	if !ok {
		return engage.CandidateAction{
			Kind:       engage.ActionNone,
			Confidence: 0.5,
			Rationale:  "combat: no target in range",
		}
	}

	if s.SPRatio() > engage.SPSkillRatio {
		return engage.CandidateAction{
			Kind:       engage.ActionSkill,
			Params:     map[string]string{"target": target.ID},
			Confidence: 0.8,
			Rationale:  fmt.Sprintf("combat: skill attack on %s", target.Name),
		}
	}
	return engage.CandidateAction{
		Kind:       engage.ActionAttack,
		Params:     map[string]string{"target": target.ID},
		Confidence: 0.8,
		Rationale:  fmt.Sprintf("combat: basic attack on %s", target.Name),
	}
}
