package ports

import (
	"context"
	"time"

	"wardmind/internal/domain/engage"
)

type DecisionRecord struct {
	CycleID   string
	AgentID   string
	Action    engage.CandidateAction
	Tier      engage.Tier
	LatencyMS int64
	DecidedAt time.Time
}

type DecisionRepository interface {
	Append(ctx context.Context, record DecisionRecord) error
	ListByAgentID(ctx context.Context, agentID string, limit int) ([]DecisionRecord, error)
}

type HealingRecord struct {
	Reason      string
	Directives  []string
	TriggeredAt time.Time
}

// HealingAuditRepository is append-only: self-heal mutations are never
// rewritten or deleted, only accumulated for audit.
type HealingAuditRepository interface {
	Append(ctx context.Context, record HealingRecord) error
	List(ctx context.Context, limit int) ([]HealingRecord, error)
}
