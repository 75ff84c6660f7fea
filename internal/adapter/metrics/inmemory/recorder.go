package inmemory

import (
	"sync"
	"time"

	"wardmind/internal/domain/engage"
)

type Snapshot struct {
	CycleTotal       uint64            `json:"cycle_total"`
	CycleErrors      uint64            `json:"cycle_errors"`
	ByTier           map[string]uint64 `json:"by_tier"`
	AvgLatencyMS     float64           `json:"avg_latency_ms"`
	AvgLatencyByTier map[string]float64 `json:"avg_latency_ms_by_tier"`
}

type Recorder struct {
	mu          sync.Mutex
	cycleErrors uint64
	byTier      map[string]uint64
	latencySum  map[string]time.Duration
}

func NewRecorder() *Recorder {
	return &Recorder{
		byTier:     map[string]uint64{},
		latencySum: map[string]time.Duration{},
	}
}

func (r *Recorder) RecordDecision(tier engage.Tier, latency time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byTier[string(tier)]++
	r.latencySum[string(tier)] += latency
}

func (r *Recorder) RecordCycleError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cycleErrors++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		CycleErrors:      r.cycleErrors,
		ByTier:           make(map[string]uint64, len(r.byTier)),
		AvgLatencyByTier: make(map[string]float64, len(r.byTier)),
	}
	var totalLatency time.Duration
	for tier, count := range r.byTier {
		out.CycleTotal += count
		out.ByTier[tier] = count
		totalLatency += r.latencySum[tier]
		if count > 0 {
			out.AvgLatencyByTier[tier] = float64(r.latencySum[tier].Microseconds()) / float64(count) / 1000
		}
	}
	if out.CycleTotal > 0 {
		out.AvgLatencyMS = float64(totalLatency.Microseconds()) / float64(out.CycleTotal) / 1000
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
