package policy

import (
	"strconv"

	"wardmind/internal/domain/engage"
)

// ProgressionPolicy spends banked advancement points during quiet moments.
// It never competes with combat: the bank's ordering keeps it last, and its
// own gate requires an empty field.
type ProgressionPolicy struct{}

func (ProgressionPolicy) Name() string { return "progression" }

func (ProgressionPolicy) Applicable(s engage.StateSnapshot) bool {
	return s.FreeStatPoints > 0 && len(s.Hostiles) == 0
}

func (ProgressionPolicy) Decide(s engage.StateSnapshot) engage.CandidateAction {
	return engage.CandidateAction{
		Kind:       engage.ActionStat,
		Params:     map[string]string{"points": strconv.Itoa(s.FreeStatPoints)},
		Confidence: 0.9,
		Rationale:  "progression: allocating banked stat points",
	}
}
