// Package remote implements the pattern and planner tiers as HTTP clients
// against their sidecar services. Both speak the same suggest protocol; only
// the local gates differ.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"wardmind/internal/app/ports"
	"wardmind/internal/domain/engage"
)

const suggestPath = "/api/v1/suggest"

// maxResponseBytes bounds how much of a misbehaving service's response we
// are willing to read.
const maxResponseBytes = 1 << 20

type suggestResponse struct {
	Action engage.CandidateAction `json:"action"`
}

type client struct {
	tier    string
	baseURL string
	http    *http.Client
}

func newClient(tier, baseURL string) client {
	return client{
		tier:    tier,
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// suggest performs one exchange. The caller's context carries the tier's
// time budget; there is no retry here, the breaker owns failure policy.
func (c client) suggest(ctx context.Context, s engage.StateSnapshot) (engage.CandidateAction, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return engage.CandidateAction{}, &ports.TierError{Tier: c.tier, Reason: "encode snapshot", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+suggestPath, bytes.NewReader(payload))
	if err != nil {
		return engage.CandidateAction{}, &ports.TierError{Tier: c.tier, Reason: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return engage.CandidateAction{}, &ports.TierError{Tier: c.tier, Reason: "exchange", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return engage.CandidateAction{}, &ports.TierError{Tier: c.tier, Reason: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	var decoded suggestResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&decoded); err != nil {
		return engage.CandidateAction{}, &ports.TierError{Tier: c.tier, Reason: "decode response", Err: err}
	}
	return c.validate(decoded.Action)
}

// validate rejects unusable suggestions instead of letting them reach the
// executor. A malformed suggestion counts as a tier failure.
func (c client) validate(act engage.CandidateAction) (engage.CandidateAction, error) {
	if act.Kind == "" || act.Kind == engage.ActionNone {
		return engage.CandidateAction{}, &ports.TierError{Tier: c.tier, Reason: "empty suggestion"}
	}
	if act.Confidence <= 0 {
		return engage.CandidateAction{}, &ports.TierError{Tier: c.tier, Reason: "non-positive confidence"}
	}
	if act.Confidence > 1 {
		act.Confidence = 1
	}
	return act, nil
}
