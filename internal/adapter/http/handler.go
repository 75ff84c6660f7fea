package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"wardmind/internal/adapter/configfile"
	"wardmind/internal/app/decide"
	"wardmind/internal/app/feedback"
	"wardmind/internal/app/guard"
	"wardmind/internal/app/ports"
	"wardmind/internal/domain/engage"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
)

type metricsSnapshotProvider interface {
	SnapshotAny() any
}

type Handler struct {
	DecideUC   *decide.UseCase
	FeedbackUC *feedback.UseCase

	Decisions    ports.DecisionRepository
	HealingAudit ports.HealingAuditRepository
	Guards       *guard.Set
	Metrics      metricsSnapshotProvider
	Directives   *configfile.Watcher

	Version   string
	StartedAt time.Time
	Now       func() time.Time
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	v1 := s.Group("/api/v1")
	v1.POST("/decide", h.decide)
	v1.POST("/feedback", h.feedback)
	v1.GET("/health", h.health)
	v1.GET("/metrics", h.metrics)
	v1.GET("/decisions", h.decisions)
	v1.GET("/healing", h.healing)

	s.GET("/ops/resilience", h.resilience)
}

func (h Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

type decideRequest struct {
	CycleID   string               `json:"cycle_id"`
	GameState engage.StateSnapshot `json:"game_state"`
}

type decideResponse struct {
	CycleID   string                 `json:"cycle_id"`
	TierUsed  engage.Tier            `json:"tier_used"`
	Action    engage.CandidateAction `json:"action"`
	LatencyMS int64                  `json:"latency_ms"`
}

func (h Handler) decide(c context.Context, ctx *app.RequestContext) {
	var body decideRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if body.CycleID == "" {
		body.CycleID = uuid.NewString()
	}

	resp, err := h.DecideUC.Execute(c, decide.Request{CycleID: body.CycleID, Snapshot: body.GameState})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, decideResponse{
		CycleID:   resp.Decision.CycleID,
		TierUsed:  resp.Decision.Tier,
		Action:    resp.Decision.Action,
		LatencyMS: resp.Decision.Latency.Milliseconds(),
	})
}

func (h Handler) feedback(c context.Context, ctx *app.RequestContext) {
	var body engage.Feedback
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.FeedbackUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"healed": resp.Healed})
}

func (h Handler) health(_ context.Context, ctx *app.RequestContext) {
	components := map[string]string{}
	status := "ok"

	for _, tier := range []string{"pattern", "planner"} {
		if h.Guards != nil && !h.Guards.ComponentHealthy(tier) {
			components[tier] = "degraded"
			status = "degraded"
		} else {
			components[tier] = "ok"
		}
	}
	if h.Directives != nil {
		snap := h.Directives.Snapshot()
		if snap.LoadError != "" {
			components["directives"] = "degraded"
			status = "degraded"
		} else {
			components["directives"] = "ok"
		}
	}

	ctx.JSON(consts.StatusOK, map[string]any{
		"status":         status,
		"version":        h.Version,
		"uptime_seconds": int64(h.now().Sub(h.StartedAt).Seconds()),
		"components":     components,
	})
}

func (h Handler) metrics(_ context.Context, ctx *app.RequestContext) {
	if h.Metrics == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "metrics recorder not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.Metrics.SnapshotAny())
}

func (h Handler) decisions(c context.Context, ctx *app.RequestContext) {
	agentID := strings.TrimSpace(string(ctx.Query("agent_id")))
	if agentID == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_agent_id", "agent_id query parameter is required")
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	records, err := h.Decisions.ListByAgentID(c, agentID, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"decisions": records})
}

func (h Handler) healing(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	records, err := h.HealingAudit.List(c, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"healing": records})
}

func (h Handler) resilience(_ context.Context, ctx *app.RequestContext) {
	out := map[string]any{"agents": h.Guards.Snapshots(h.now())}
	if h.Directives != nil {
		out["directives"] = h.Directives.Snapshot()
	}
	ctx.JSON(consts.StatusOK, out)
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, decide.ErrSnapshotNotReady):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "snapshot_not_ready", err.Error())
	case errors.Is(err, feedback.ErrInvalidFeedback):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_feedback", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
