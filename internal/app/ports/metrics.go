package ports

import (
	"time"

	"wardmind/internal/domain/engage"
)

type DecisionMetrics interface {
	RecordDecision(tier engage.Tier, latency time.Duration)
	RecordCycleError()
}
