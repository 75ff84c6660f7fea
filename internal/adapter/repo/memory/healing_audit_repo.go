package memory

import (
	"context"
	"sync"

	"wardmind/internal/app/ports"
)

type HealingAuditRepo struct {
	mu      sync.RWMutex
	records []ports.HealingRecord
}

func NewHealingAuditRepo() *HealingAuditRepo {
	return &HealingAuditRepo{}
}

func (r *HealingAuditRepo) Append(_ context.Context, rec ports.HealingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func (r *HealingAuditRepo) List(_ context.Context, limit int) ([]ports.HealingRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ports.HealingRecord, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		out = append(out, r.records[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
