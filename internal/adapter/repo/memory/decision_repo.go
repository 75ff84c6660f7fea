// Package memory holds the in-process repositories used when no database is
// configured. The engine is a sidecar; losing history on restart is an
// accepted trade for a zero-dependency default deployment.
package memory

import (
	"context"
	"sync"

	"wardmind/internal/app/ports"
)

// maxDecisionsPerAgent bounds the in-memory history so a long-lived agent
// does not grow without limit.
const maxDecisionsPerAgent = 1000

type DecisionRepo struct {
	mu      sync.RWMutex
	byAgent map[string][]ports.DecisionRecord
}

func NewDecisionRepo() *DecisionRepo {
	return &DecisionRepo{byAgent: make(map[string][]ports.DecisionRecord)}
}

func (r *DecisionRepo) Append(_ context.Context, rec ports.DecisionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	records := append(r.byAgent[rec.AgentID], rec)
	if len(records) > maxDecisionsPerAgent {
		records = records[len(records)-maxDecisionsPerAgent:]
	}
	r.byAgent[rec.AgentID] = records
	return nil
}

func (r *DecisionRepo) ListByAgentID(_ context.Context, agentID string, limit int) ([]ports.DecisionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := r.byAgent[agentID]
	if len(records) == 0 {
		return nil, ports.ErrNotFound
	}

	// Newest first.
	out := make([]ports.DecisionRecord, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		out = append(out, records[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
