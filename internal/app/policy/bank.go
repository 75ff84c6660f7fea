// Package policy holds the ordered bank of tactical policies consulted after
// the reflex tier. Each policy owns one concern and must keep Applicable and
// Decide free of side effects; the orchestrator commits the chosen action.
package policy

import "wardmind/internal/domain/engage"

type Policy interface {
	Name() string
	Applicable(s engage.StateSnapshot) bool
	Decide(s engage.StateSnapshot) engage.CandidateAction
}

// Bank walks its declared list in order and accepts the first applicable
// policy. Ordering is configuration, fixed at construction; confidences of
// unrelated policies are never compared.
type Bank struct {
	policies []Policy
}

func NewBank(policies ...Policy) *Bank {
	return &Bank{policies: policies}
}

// DefaultBank is the declared production ordering. Navigation outranks
// combat: a swarm inside safe distance is also inside attack range, so a
// combat-first bank would stand and fight every swarm it should flee.
func DefaultBank() *Bank {
	return NewBank(
		NavigationPolicy{},
		CombatPolicy{},
		ConsumablesPolicy{},
		ProgressionPolicy{},
	)
}

// First returns the first applicable policy's action and name. skip, when
// non-nil, lets the orchestrator suppress individual policies for a cycle
// (e.g. navigation while a loop-break cooldown runs) without reordering the
// bank or giving policies access to resilience state.
func (b *Bank) First(s engage.StateSnapshot, skip func(name string) bool) (engage.CandidateAction, string, bool) {
	for _, p := range b.policies {
		if skip != nil && skip(p.Name()) {
			continue
		}
		if !p.Applicable(s) {
			continue
		}
		return p.Decide(s), p.Name(), true
	}
	return engage.CandidateAction{}, "", false
}

// Names returns the declared order, mostly for ops introspection and tests.
func (b *Bank) Names() []string {
	out := make([]string, 0, len(b.policies))
	for _, p := range b.policies {
		out = append(out, p.Name())
	}
	return out
}
