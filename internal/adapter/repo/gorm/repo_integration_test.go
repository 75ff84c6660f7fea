package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"wardmind/internal/app/ports"
	"wardmind/internal/domain/engage"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("WARDMIND_DB_DSN")
	if dsn == "" {
		t.Skip("WARDMIND_DB_DSN is required for integration test")
	}
	return dsn
}

func TestDecisionRepo_AppendAndList(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	agentID := "it-decision-roundtrip"
	ctx := context.Background()
	_ = db.Exec("DELETE FROM decisions WHERE agent_id = ?", agentID).Error

	repo := NewDecisionRepo(db)
	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		err := repo.Append(ctx, ports.DecisionRecord{
			CycleID: "cycle-" + string(rune('a'+i)),
			AgentID: agentID,
			Action: engage.CandidateAction{
				Kind:       engage.ActionAttack,
				Params:     map[string]string{"target": "m1"},
				Confidence: 0.8,
				Rationale:  "integration seed",
			},
			Tier:      engage.TierPolicy,
			LatencyMS: int64(i),
			DecidedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := repo.ListByAgentID(ctx, agentID, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].CycleID != "cycle-c" {
		t.Fatalf("expected newest first, got %s", got[0].CycleID)
	}
	if got[0].Action.Params["target"] != "m1" {
		t.Fatalf("params lost: %+v", got[0].Action)
	}
}

func TestDecisionRepo_ListUnknownAgent(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	_, err = NewDecisionRepo(db).ListByAgentID(context.Background(), "it-no-such-agent", 10)
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestHealingAuditRepo_AppendAndList(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	reason := "config_conflict:it-attackAuto"
	_ = db.Exec("DELETE FROM healing_audit WHERE reason = ?", reason).Error

	repo := NewHealingAuditRepo(db)
	err = repo.Append(ctx, ports.HealingRecord{
		Reason:      reason,
		Directives:  []string{"attackAuto"},
		TriggeredAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := repo.List(ctx, 50)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	found := false
	for _, rec := range got {
		if rec.Reason == reason && len(rec.Directives) == 1 && rec.Directives[0] == "attackAuto" {
			found = true
		}
	}
	if !found {
		t.Fatalf("appended record not listed")
	}
}
