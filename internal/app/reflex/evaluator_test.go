package reflex

import (
	"testing"

	"wardmind/internal/domain/engage"
)

func snapshotWithHP(hp, maxHP int) engage.StateSnapshot {
	return engage.StateSnapshot{
		AgentID: "agent-1",
		Vitals:  engage.Vitals{HP: hp, MaxHP: maxHP, SP: 50, MaxSP: 100},
		Inventory: []engage.CarriedItem{
			{Name: "white_potion", Amount: 5, Kind: engage.ItemKindHealing},
			{Name: "green_potion", Amount: 2, Kind: engage.ItemKindStatusCure},
		},
	}
}

func TestEvaluate_CriticalHPUsesBestHealingItem(t *testing.T) {
	s := snapshotWithHP(20, 100)
	act, ok := Evaluator{}.Evaluate(s)
	if !ok {
		t.Fatalf("critical hp must fire")
	}
	if act.Kind != engage.ActionUseItem {
		t.Fatalf("expected item action, got %s", act.Kind)
	}
	if act.Params["item"] != "white_potion" {
		t.Fatalf("expected best healing consumable, got %q", act.Params["item"])
	}
	if act.Confidence != 1.0 {
		t.Fatalf("reflex confidence must be 1.0, got %v", act.Confidence)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	s := snapshotWithHP(20, 100)
	first, ok1 := Evaluator{}.Evaluate(s)
	second, ok2 := Evaluator{}.Evaluate(s)
	if ok1 != ok2 || first.Kind != second.Kind || first.Params["item"] != second.Params["item"] {
		t.Fatalf("identical vitals must yield identical actions: %+v vs %+v", first, second)
	}
}

func TestEvaluate_SurvivalOutranksOtherPredicates(t *testing.T) {
	s := snapshotWithHP(10, 100)
	s.StatusEffects = []string{"stunned"}
	s.Weight, s.MaxWeight = 95, 100

	act, ok := Evaluator{}.Evaluate(s)
	if !ok || act.Params["item"] != "white_potion" {
		t.Fatalf("critical hp must outrank status and weight, got %+v", act)
	}
}

func TestEvaluate_DisablingStatus(t *testing.T) {
	s := snapshotWithHP(90, 100)
	s.StatusEffects = []string{"frozen"}
	act, ok := Evaluator{}.Evaluate(s)
	if !ok || act.Params["item"] != "green_potion" {
		t.Fatalf("expected status cure, got %+v ok=%v", act, ok)
	}
}

func TestEvaluate_Overweight(t *testing.T) {
	s := snapshotWithHP(90, 100)
	s.Weight, s.MaxWeight = 93, 100
	act, ok := Evaluator{}.Evaluate(s)
	if !ok || act.Kind != engage.ActionCommand || act.Params["command"] != "storage" {
		t.Fatalf("expected storage command, got %+v", act)
	}
}

func TestEvaluate_LowHPUnderAttack(t *testing.T) {
	s := snapshotWithHP(35, 100)
	s.Hostiles = []engage.Hostile{{ID: "m1", Distance: 2, Aggressive: true}}
	act, ok := Evaluator{}.Evaluate(s)
	if !ok || act.Kind != engage.ActionUseItem {
		t.Fatalf("low hp under attack must heal, got %+v ok=%v", act, ok)
	}
}

func TestEvaluate_NoEmergency(t *testing.T) {
	s := snapshotWithHP(90, 100)
	if _, ok := (Evaluator{}).Evaluate(s); ok {
		t.Fatalf("healthy snapshot must not fire a reflex")
	}
}

func TestEvaluate_CriticalHPWithoutItemsRests(t *testing.T) {
	s := engage.StateSnapshot{AgentID: "a", Vitals: engage.Vitals{HP: 5, MaxHP: 100}}
	act, ok := Evaluator{}.Evaluate(s)
	if !ok || act.Kind != engage.ActionRest {
		t.Fatalf("with no consumables the reflex should rest, got %+v", act)
	}
}
