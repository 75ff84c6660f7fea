package ports

import (
	"context"
	"errors"
	"fmt"

	"wardmind/internal/domain/engage"
)

var ErrTierFailed = errors.New("remote tier failed")

// TierError wraps any remote-tier failure: transport errors, timeouts and
// malformed responses all look the same to the escalation ladder and count
// as exactly one failure against the tier's breaker.
type TierError struct {
	Tier   string
	Reason string
	Err    error
}

func (e *TierError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s tier: %s: %v", e.Tier, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s tier: %s", e.Tier, e.Reason)
}

func (e *TierError) Unwrap() error {
	return ErrTierFailed
}

// RemoteTier is the shared contract of the pattern and planner clients.
// ShouldHandle is a cheap local gate; Decide performs one remote exchange
// bounded by the caller's context deadline and must never retry inline.
type RemoteTier interface {
	Name() string
	ShouldHandle(s engage.StateSnapshot) bool
	Decide(ctx context.Context, s engage.StateSnapshot) (engage.CandidateAction, error)
}
